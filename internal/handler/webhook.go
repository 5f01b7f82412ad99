package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"geminid-connect/internal/hub"
	"geminid-connect/internal/model"
	"geminid-connect/internal/store"
	"geminid-connect/internal/twilio"
)

// WebhookHandler serves the provider callbacks. These routes are invoked by
// the provider directly, carry no session auth, and always answer with
// well-formed TwiML; missing inbound form fields become empty strings.
type WebhookHandler struct {
	Store         *store.Store
	Hub           *hub.Hub
	VoiceGreeting string
}

const inboundReply = "Thanks! Received your message."

func (h *WebhookHandler) InboundSMS(c *gin.Context) {
	entry := model.Message{
		ID:     "in-" + uuid.NewString(),
		To:     c.PostForm("To"),
		From:   c.PostForm("From"),
		Body:   c.PostForm("Body"),
		Status: model.StatusReceived,
		At:     time.Now().UTC().Format(time.RFC3339),
	}
	h.Store.AppendMessage(entry)
	notify(h.Hub, "message", entry)

	xml, err := twilio.MessageReply(inboundReply)
	writeTwiML(c, xml, err)
}

// Voice serves call instructions for both inbound and outbound legs. The
// text to speak rides the say query parameter, falling back to the
// configured greeting.
func (h *WebhookHandler) Voice(c *gin.Context) {
	say := c.Query("say")
	if say == "" {
		say = h.VoiceGreeting
	}

	xml, err := twilio.SpokenResponse(say)
	writeTwiML(c, xml, err)
}

func writeTwiML(c *gin.Context, xml string, err error) {
	if err != nil {
		xml = "<Response></Response>"
	}
	c.Data(http.StatusOK, "text/xml", []byte(xml))
}
