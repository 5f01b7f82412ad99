package twilio

import "github.com/twilio/twilio-go/twiml"

// Voice identity used on every outbound call leg.
const voiceName = "alice"

// SpokenResponse renders the TwiML document that speaks say on the call
// leg and then hangs up.
func SpokenResponse(say string) (string, error) {
	return twiml.Voice([]twiml.Element{
		&twiml.VoiceSay{Message: say, Voice: voiceName},
		&twiml.VoiceHangup{},
	})
}

// MessageReply renders the TwiML document that replies to an inbound SMS
// with text.
func MessageReply(text string) (string, error) {
	return twiml.Messages([]twiml.Element{
		&twiml.MessagingMessage{Body: text},
	})
}
