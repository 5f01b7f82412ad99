package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"geminid-connect/internal/auth"
	"geminid-connect/internal/twilio"
)

type AuthHandler struct {
	Twilio      twilio.Client
	TokenConfig auth.TokenConfig
}

type sendOTPBody struct {
	Phone string `json:"phone"`
}

type verifyOTPBody struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

func (h *AuthHandler) SendOTP(c *gin.Context) {
	var body sendOTPBody
	if err := c.ShouldBindJSON(&body); err != nil || body.Phone == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "phone required"})
		return
	}

	if err := h.Twilio.StartVerification(body.Phone); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sent": true})
}

func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var body verifyOTPBody
	if err := c.ShouldBindJSON(&body); err != nil || body.Phone == "" || body.Code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "phone and code required"})
		return
	}

	status, err := h.Twilio.CheckVerification(body.Phone, body.Code)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if status != twilio.StatusApproved {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid code"})
		return
	}

	token, err := auth.CreateToken(body.Phone, h.TokenConfig)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token creation failed"})
		return
	}

	setSessionCookie(c, token, h.TokenConfig.Expiry)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// WhoAmI reads the session cookie only and never errors; an absent or
// invalid cookie just reports unauthenticated.
func (h *AuthHandler) WhoAmI(c *gin.Context) {
	token, err := c.Cookie("token")
	if err != nil || token == "" {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}

	claims, err := auth.VerifyToken(token, h.TokenConfig)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"authenticated": true, "user": claims})
}

// Logout clears the cookie. Tokens are stateless, so there is no revocation
// beyond expiry.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("token", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// setSessionCookie stores the token as an HttpOnly, SameSite=Lax cookie.
// secure=false: the demo fronts plain HTTP.
func setSessionCookie(c *gin.Context, token string, expiry time.Duration) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("token", token, int(expiry/time.Second), "/", "", false, true)
}
