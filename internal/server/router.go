package server

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"geminid-connect/internal/auth"
	"geminid-connect/internal/handler"
	"geminid-connect/internal/hub"
	"geminid-connect/internal/middleware"
	"geminid-connect/internal/store"
	"geminid-connect/internal/twilio"
)

type Deps struct {
	Store         *store.Store
	TokenConfig   auth.TokenConfig
	Twilio        twilio.Client
	ClientOrigin  string
	FromNumber    string
	VoiceGreeting string
}

func NewRouter(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	// Credentials on so the HttpOnly session cookie crosses origins.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{deps.ClientOrigin},
		AllowMethods:     []string{"OPTIONS", "GET", "POST"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	authHandler := &handler.AuthHandler{Twilio: deps.Twilio, TokenConfig: deps.TokenConfig}
	r.POST("/auth/send-otp", authHandler.SendOTP)
	r.POST("/auth/verify-otp", authHandler.VerifyOTP)
	r.GET("/auth/whoami", authHandler.WhoAmI)
	r.POST("/auth/logout", authHandler.Logout)

	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	wsHub := hub.New()

	messagingHandler := &handler.MessagingHandler{
		Store:         deps.Store,
		Hub:           wsHub,
		Twilio:        deps.Twilio,
		FromNumber:    deps.FromNumber,
		VoiceGreeting: deps.VoiceGreeting,
	}
	protected := r.Group("/api")
	protected.Use(middleware.RequireAuth(deps.TokenConfig))
	protected.POST("/sms", messagingHandler.SendSMS)
	protected.POST("/call", messagingHandler.PlaceCall)
	protected.GET("/activity", messagingHandler.Activity)

	// Provider webhooks stay publicly reachable.
	webhookHandler := &handler.WebhookHandler{Store: deps.Store, Hub: wsHub, VoiceGreeting: deps.VoiceGreeting}
	r.POST("/twilio/sms", webhookHandler.InboundSMS)
	r.POST("/twilio/voice", webhookHandler.Voice)
	r.GET("/twilio/voice", webhookHandler.Voice)

	wsHandler := &handler.WebSocketHandler{Hub: wsHub, TokenConfig: deps.TokenConfig}
	r.GET("/ws/activity", wsHandler.Serve)

	return r
}
