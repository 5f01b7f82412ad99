package handler

import "errors"

// fakeTwilio implements twilio.Client without touching the network. A code
// sent via StartVerification must be checked back exactly to be approved.
type fakeTwilio struct {
	code string

	verifyErr error
	sendErr   error
	callErr   error

	lastVerifyPhone string
	lastTo          string
	lastBody        string
	lastCallbackURL string
}

var errGateway = errors.New("provider unreachable")

func (f *fakeTwilio) StartVerification(phone string) error {
	if f.verifyErr != nil {
		return f.verifyErr
	}
	f.lastVerifyPhone = phone
	if f.code == "" {
		f.code = "123456"
	}
	return nil
}

func (f *fakeTwilio) CheckVerification(phone, code string) (string, error) {
	if f.verifyErr != nil {
		return "", f.verifyErr
	}
	if phone == f.lastVerifyPhone && code == f.code && f.code != "" {
		return "approved", nil
	}
	return "pending", nil
}

func (f *fakeTwilio) SendMessage(to, body string) (string, string, error) {
	if f.sendErr != nil {
		return "", "", f.sendErr
	}
	f.lastTo = to
	f.lastBody = body
	return "SM0001", "queued", nil
}

func (f *fakeTwilio) StartCall(to, callbackURL string) (string, string, error) {
	if f.callErr != nil {
		return "", "", f.callErr
	}
	f.lastTo = to
	f.lastCallbackURL = callbackURL
	return "CA0001", "queued", nil
}
