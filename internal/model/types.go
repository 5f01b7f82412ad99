package model

// Activity statuses. Outbound entries are recorded as queued once the
// provider accepts them; inbound entries arrive via webhook as received.
const (
	StatusQueued   = "queued"
	StatusReceived = "received"
)

// Message is one outbound or inbound SMS in the activity log.
type Message struct {
	ID     string `json:"id"`
	To     string `json:"to"`
	From   string `json:"from"`
	Body   string `json:"body"`
	Status string `json:"status"`
	At     string `json:"at"`
}

// Call is one outbound voice call in the activity log. Say holds the text
// spoken to the callee when the call connects.
type Call struct {
	SID    string `json:"sid"`
	To     string `json:"to"`
	From   string `json:"from"`
	Say    string `json:"say"`
	Status string `json:"status"`
	At     string `json:"at"`
}
