package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        int
	GinMode     string
	TLSCertFile string
	TLSKeyFile  string

	JWTSecret   string
	TokenExpiry time.Duration

	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioNumber     string
	TwilioVerifySID  string

	ClientOrigin  string
	VoiceGreeting string
}

type Env interface {
	Getenv(key string) string
}

type osEnv struct{}

func (osEnv) Getenv(key string) string { return os.Getenv(key) }

func LoadConfig() (Config, error) {
	return LoadConfigFromEnv(osEnv{})
}

func LoadConfigFromEnv(env Env) (Config, error) {
	cfg := Config{
		Port:          4000,
		GinMode:       "release",
		TokenExpiry:   3 * time.Hour,
		ClientOrigin:  "http://localhost:5173",
		VoiceGreeting: "Hello from Geminid Connect",
	}

	if raw := env.Getenv("PORT"); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil || port <= 0 || port > 65535 {
			return Config{}, fmt.Errorf("invalid PORT")
		}
		cfg.Port = port
	}

	if raw := env.Getenv("GIN_MODE"); raw != "" {
		cfg.GinMode = raw
	}

	cfg.TLSCertFile = env.Getenv("TLS_CERT_FILE")
	cfg.TLSKeyFile = env.Getenv("TLS_KEY_FILE")

	if raw := env.Getenv("TOKEN_EXPIRY_SECONDS"); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			return Config{}, fmt.Errorf("invalid TOKEN_EXPIRY_SECONDS")
		}
		cfg.TokenExpiry = time.Duration(seconds) * time.Second
	}

	cfg.JWTSecret = env.Getenv("JWT_SECRET")
	cfg.TwilioAccountSID = env.Getenv("TWILIO_ACCOUNT_SID")
	cfg.TwilioAuthToken = env.Getenv("TWILIO_AUTH_TOKEN")
	cfg.TwilioNumber = env.Getenv("TWILIO_NUMBER")
	cfg.TwilioVerifySID = env.Getenv("TWILIO_VERIFY_SID")

	if raw := env.Getenv("CLIENT_ORIGIN"); raw != "" {
		cfg.ClientOrigin = raw
	}
	if raw := env.Getenv("VOICE_GREETING"); raw != "" {
		cfg.VoiceGreeting = raw
	}

	// Missing provider credentials warn instead of refusing to start;
	// provider calls will fail until the .env is filled in.
	for _, v := range []struct{ name, value string }{
		{"TWILIO_ACCOUNT_SID", cfg.TwilioAccountSID},
		{"TWILIO_AUTH_TOKEN", cfg.TwilioAuthToken},
		{"TWILIO_NUMBER", cfg.TwilioNumber},
		{"TWILIO_VERIFY_SID", cfg.TwilioVerifySID},
		{"JWT_SECRET", cfg.JWTSecret},
	} {
		if v.value == "" {
			log.Printf("[WARN] missing env var %s", v.name)
		}
	}

	return cfg, nil
}
