package handler

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"geminid-connect/internal/hub"
	"geminid-connect/internal/model"
	"geminid-connect/internal/store"
	"geminid-connect/internal/twilio"
)

type MessagingHandler struct {
	Store         *store.Store
	Hub           *hub.Hub
	Twilio        twilio.Client
	FromNumber    string
	VoiceGreeting string
}

type sendSMSBody struct {
	To   string `json:"to"`
	Body string `json:"body"`
}

type placeCallBody struct {
	To  string `json:"to"`
	Say string `json:"say"`
}

func (h *MessagingHandler) SendSMS(c *gin.Context) {
	var body sendSMSBody
	if err := c.ShouldBindJSON(&body); err != nil || body.To == "" || body.Body == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to and body required"})
		return
	}

	sid, _, err := h.Twilio.SendMessage(body.To, body.Body)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	entry := model.Message{
		ID:     sid,
		To:     body.To,
		From:   h.FromNumber,
		Body:   body.Body,
		Status: model.StatusQueued,
		At:     time.Now().UTC().Format(time.RFC3339),
	}
	h.Store.AppendMessage(entry)
	notify(h.Hub, "message", entry)

	c.JSON(http.StatusOK, gin.H{"message": "SMS sent", "sid": sid})
}

// PlaceCall starts an outbound call. The text to speak rides the callback
// URL as a query parameter so the provider can fetch it from the voice
// webhook when the call connects.
func (h *MessagingHandler) PlaceCall(c *gin.Context) {
	var body placeCallBody
	if err := c.ShouldBindJSON(&body); err != nil || body.To == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to is required"})
		return
	}

	say := body.Say
	if say == "" {
		say = h.VoiceGreeting
	}
	callbackURL := fmt.Sprintf("%s://%s/twilio/voice?say=%s",
		requestScheme(c), c.Request.Host, url.QueryEscape(say))

	sid, _, err := h.Twilio.StartCall(body.To, callbackURL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	entry := model.Call{
		SID:    sid,
		To:     body.To,
		From:   h.FromNumber,
		Say:    body.Say,
		Status: model.StatusQueued,
		At:     time.Now().UTC().Format(time.RFC3339),
	}
	h.Store.AppendCall(entry)
	notify(h.Hub, "call", entry)

	c.JSON(http.StatusOK, gin.H{"message": "Call initiated", "sid": sid})
}

func (h *MessagingHandler) Activity(c *gin.Context) {
	messages, calls := h.Store.Snapshot()
	c.JSON(http.StatusOK, gin.H{"messages": messages, "calls": calls})
}

func requestScheme(c *gin.Context) string {
	if c.Request.TLS != nil {
		return "https"
	}
	return "http"
}
