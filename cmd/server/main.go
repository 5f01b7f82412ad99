package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"geminid-connect/internal/auth"
	"geminid-connect/internal/config"
	"geminid-connect/internal/server"
	"geminid-connect/internal/store"
	"geminid-connect/internal/twilio"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	gin.SetMode(cfg.GinMode)

	tokenCfg := auth.TokenConfig{
		Secret: cfg.JWTSecret,
		Expiry: cfg.TokenExpiry,
		Issuer: "geminid-connect",
	}

	client := twilio.NewRestClient(twilio.Config{
		AccountSID:       cfg.TwilioAccountSID,
		AuthToken:        cfg.TwilioAuthToken,
		Number:           cfg.TwilioNumber,
		VerifyServiceSID: cfg.TwilioVerifySID,
	})

	router := server.NewRouter(server.Deps{
		Store:         store.New(),
		TokenConfig:   tokenCfg,
		Twilio:        client,
		ClientOrigin:  cfg.ClientOrigin,
		FromNumber:    cfg.TwilioNumber,
		VoiceGreeting: cfg.VoiceGreeting,
	})

	log.Printf("listening on %s", fmt.Sprintf(":%d", cfg.Port))
	log.Fatal(server.Run(cfg, router))
}
