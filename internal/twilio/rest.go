package twilio

import (
	twilio "github.com/twilio/twilio-go"
	api "github.com/twilio/twilio-go/rest/api/v2010"
	verify "github.com/twilio/twilio-go/rest/verify/v2"
)

type Config struct {
	AccountSID       string
	AuthToken        string
	Number           string
	VerifyServiceSID string
}

type restClient struct {
	cfg  Config
	rest *twilio.RestClient
}

// NewRestClient builds the real provider client from account credentials.
func NewRestClient(cfg Config) Client {
	rest := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return &restClient{cfg: cfg, rest: rest}
}

func (c *restClient) StartVerification(phone string) error {
	params := &verify.CreateVerificationParams{}
	params.SetTo(phone)
	params.SetChannel("sms")

	_, err := c.rest.VerifyV2.CreateVerification(c.cfg.VerifyServiceSID, params)
	return err
}

func (c *restClient) CheckVerification(phone, code string) (string, error) {
	params := &verify.CreateVerificationCheckParams{}
	params.SetTo(phone)
	params.SetCode(code)

	check, err := c.rest.VerifyV2.CreateVerificationCheck(c.cfg.VerifyServiceSID, params)
	if err != nil {
		return "", err
	}
	return deref(check.Status), nil
}

func (c *restClient) SendMessage(to, body string) (string, string, error) {
	params := &api.CreateMessageParams{}
	params.SetFrom(c.cfg.Number)
	params.SetTo(to)
	params.SetBody(body)

	msg, err := c.rest.Api.CreateMessage(params)
	if err != nil {
		return "", "", err
	}
	return deref(msg.Sid), deref(msg.Status), nil
}

func (c *restClient) StartCall(to, callbackURL string) (string, string, error) {
	params := &api.CreateCallParams{}
	params.SetFrom(c.cfg.Number)
	params.SetTo(to)
	params.SetUrl(callbackURL)

	call, err := c.rest.Api.CreateCall(params)
	if err != nil {
		return "", "", err
	}
	return deref(call.Sid), deref(call.Status), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
