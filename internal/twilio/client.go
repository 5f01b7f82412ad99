package twilio

// Client is the narrow surface of the provider API this server uses. The
// real implementation talks to Twilio over REST; tests substitute a fake so
// nothing touches the network.
type Client interface {
	// StartVerification sends a one-time passcode to phone over SMS.
	StartVerification(phone string) error
	// CheckVerification checks a submitted code and returns the provider
	// verification status ("approved" on success).
	CheckVerification(phone, code string) (string, error)
	// SendMessage sends an SMS from the configured number.
	SendMessage(to, body string) (sid, status string, err error)
	// StartCall places a call from the configured number. The provider
	// fetches call instructions from callbackURL once the call connects.
	StartCall(to, callbackURL string) (sid, status string, err error)
}

// StatusApproved is the verification status the provider reports for a
// correct code.
const StatusApproved = "approved"
