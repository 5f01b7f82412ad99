package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"geminid-connect/internal/auth"
	"geminid-connect/internal/store"
)

// fakeTwilio approves exactly the code handed out via StartVerification.
type fakeTwilio struct {
	code            string
	lastVerifyPhone string
	lastCallbackURL string
}

func (f *fakeTwilio) StartVerification(phone string) error {
	f.lastVerifyPhone = phone
	if f.code == "" {
		f.code = "123456"
	}
	return nil
}

func (f *fakeTwilio) CheckVerification(phone, code string) (string, error) {
	if phone == f.lastVerifyPhone && code == f.code && f.code != "" {
		return "approved", nil
	}
	return "pending", nil
}

func (f *fakeTwilio) SendMessage(to, body string) (string, string, error) {
	return "SM0001", "queued", nil
}

func (f *fakeTwilio) StartCall(to, callbackURL string) (string, string, error) {
	f.lastCallbackURL = callbackURL
	return "CA0001", "queued", nil
}

func newTestRouter(fake *fakeTwilio) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter(Deps{
		Store:         store.New(),
		TokenConfig:   auth.TokenConfig{Secret: "secret", Expiry: 3 * time.Hour, Issuer: "test"},
		Twilio:        fake,
		ClientOrigin:  "http://localhost:5173",
		FromNumber:    "+15550001111",
		VoiceGreeting: "Hello from Geminid Connect",
	})
}

func doJSON(r *gin.Engine, method, path string, payload map[string]any, cookies []*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if payload != nil {
		body, _ := json.Marshal(payload)
		req = httptest.NewRequest(method, path, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == "token" {
			return c
		}
	}
	t.Fatalf("expected token cookie")
	return nil
}

func TestHealth(t *testing.T) {
	r := newTestRouter(&fakeTwilio{})
	w := doJSON(r, http.MethodGet, "/api/health", nil, nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"ok":true`) {
		t.Fatalf("unexpected health response: %d %s", w.Code, w.Body.String())
	}
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	r := newTestRouter(&fakeTwilio{})

	w := doJSON(r, http.MethodGet, "/api/activity", nil, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"error":"unauthenticated"`) {
		t.Fatalf("unexpected body %s", w.Body.String())
	}

	w = doJSON(r, http.MethodPost, "/api/sms", map[string]any{"to": "+1555", "body": "x"}, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	w = doJSON(r, http.MethodPost, "/api/call", map[string]any{"to": "+1555"}, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestOTPLoginFlow(t *testing.T) {
	fake := &fakeTwilio{code: "424242"}
	r := newTestRouter(fake)

	// request a code
	w := doJSON(r, http.MethodPost, "/auth/send-otp", map[string]any{"phone": "+15551234567"}, nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"sent":true`) {
		t.Fatalf("send-otp failed: %d %s", w.Code, w.Body.String())
	}

	// wrong code stays unauthenticated
	w = doJSON(r, http.MethodPost, "/auth/verify-otp", map[string]any{"phone": "+15551234567", "code": "000000"}, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong code, got %d", w.Code)
	}

	// correct code issues the cookie
	w = doJSON(r, http.MethodPost, "/auth/verify-otp", map[string]any{"phone": "+15551234567", "code": "424242"}, nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"ok":true`) {
		t.Fatalf("verify-otp failed: %d %s", w.Code, w.Body.String())
	}
	cookie := sessionCookie(t, w)

	// whoami sees the session
	w = doJSON(r, http.MethodGet, "/auth/whoami", nil, []*http.Cookie{cookie})
	var whoami struct {
		Authenticated bool `json:"authenticated"`
		User          struct {
			Sub string `json:"sub"`
		} `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &whoami); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !whoami.Authenticated || whoami.User.Sub != "+15551234567" {
		t.Fatalf("unexpected whoami: %s", w.Body.String())
	}
}

func TestSendSMSAndActivity(t *testing.T) {
	fake := &fakeTwilio{code: "424242"}
	r := newTestRouter(fake)

	doJSON(r, http.MethodPost, "/auth/send-otp", map[string]any{"phone": "+15551234567"}, nil)
	w := doJSON(r, http.MethodPost, "/auth/verify-otp", map[string]any{"phone": "+15551234567", "code": "424242"}, nil)
	cookie := sessionCookie(t, w)

	w = doJSON(r, http.MethodPost, "/api/sms", map[string]any{"to": "+15557654321", "body": "hi"}, []*http.Cookie{cookie})
	if w.Code != http.StatusOK {
		t.Fatalf("sms failed: %d %s", w.Code, w.Body.String())
	}
	var smsResp struct {
		Message string `json:"message"`
		SID     string `json:"sid"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &smsResp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if smsResp.Message != "SMS sent" || smsResp.SID == "" {
		t.Fatalf("unexpected sms response: %s", w.Body.String())
	}

	w = doJSON(r, http.MethodGet, "/api/activity", nil, []*http.Cookie{cookie})
	if w.Code != http.StatusOK {
		t.Fatalf("activity failed: %d %s", w.Code, w.Body.String())
	}
	var activity struct {
		Messages []struct {
			To     string `json:"to"`
			Body   string `json:"body"`
			Status string `json:"status"`
		} `json:"messages"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &activity); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(activity.Messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(activity.Messages))
	}
	got := activity.Messages[0]
	if got.To != "+15557654321" || got.Body != "hi" || got.Status != "queued" {
		t.Fatalf("unexpected activity entry: %+v", got)
	}
}

func TestBearerHeaderAlsoWorks(t *testing.T) {
	r := newTestRouter(&fakeTwilio{})
	tok, err := auth.CreateToken("+15551234567", auth.TokenConfig{Secret: "secret", Expiry: time.Hour, Issuer: "test"})
	if err != nil {
		t.Fatalf("CreateToken: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/activity", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestInboundWebhookThroughRouter(t *testing.T) {
	fake := &fakeTwilio{code: "424242"}
	r := newTestRouter(fake)

	form := url.Values{"From": {"+15551110000"}, "To": {"+15550001111"}, "Body": {"hey"}}
	req := httptest.NewRequest(http.MethodPost, "/twilio/sms", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "<Message") {
		t.Fatalf("unexpected webhook response: %d %s", w.Code, w.Body.String())
	}

	// the received entry shows up for an authenticated user
	doJSON(r, http.MethodPost, "/auth/send-otp", map[string]any{"phone": "+15551234567"}, nil)
	verified := doJSON(r, http.MethodPost, "/auth/verify-otp", map[string]any{"phone": "+15551234567", "code": "424242"}, nil)
	cookie := sessionCookie(t, verified)

	activity := doJSON(r, http.MethodGet, "/api/activity", nil, []*http.Cookie{cookie})
	if !strings.Contains(activity.Body.String(), `"status":"received"`) {
		t.Fatalf("expected received entry, got %s", activity.Body.String())
	}
}

func TestVoiceWebhookThroughRouter(t *testing.T) {
	r := newTestRouter(&fakeTwilio{})

	req := httptest.NewRequest(http.MethodGet, "/twilio/voice?say=ring+ring", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "ring ring") {
		t.Fatalf("expected say text, got %s", w.Body.String())
	}
}
