package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration required by the gateway process.
// All values must come from env (or env-file loaded by the process runner).
// Loaded once at startup and passed by reference into handlers; no business
// logic should depend on raw environment variables.
type Config struct {
	App     AppConfig
	Twilio  TwilioConfig
	Calling CallingConfig
	CORS    CORSConfig
}

type AppConfig struct {
	Env  string
	Port int
}

// TwilioConfig carries the provider credentials. The API key pair signs
// browser access tokens; the account SID/auth token pair identifies the
// account to the provider.
type TwilioConfig struct {
	AccountSID   string
	AuthToken    string
	APIKeySID    string
	APIKeySecret string
	AppSID       string

	// PhoneNumber is the provider-registered number used as caller ID
	// on outbound legs.
	PhoneNumber string
}

// CallingConfig is the static document served to the frontend and the
// routing input for the voice webhook. Immutable after Load.
type CallingConfig struct {
	// FixedNumber is the single destination every call is routed to.
	FixedNumber   string   `json:"fixed_number"`
	DisplayNumber string   `json:"display_number"`
	ServiceName   string   `json:"service_name"`
	Features      Features `json:"features"`
	Limits        Limits   `json:"limits"`
}

type Features struct {
	OutgoingCalls bool `json:"outgoing_calls"`
	IncomingCalls bool `json:"incoming_calls"`
	CallRecording bool `json:"call_recording"`
	Mute          bool `json:"mute"`
	Hold          bool `json:"hold"`
}

type Limits struct {
	// MaxCallDuration is in seconds.
	MaxCallDuration int `json:"max_call_duration"`
	ConcurrentCalls int `json:"concurrent_calls"`
}

type CORSConfig struct {
	Origins []string
}

const (
	defaultPort        = 5000
	defaultFixedNumber = "+18009359935"
	defaultServiceName = "Customer Service"
)

func Load() (Config, error) {
	c := Config{}
	var parseErrs []error

	c.App.Env = strings.TrimSpace(os.Getenv("APP_ENV"))
	if c.App.Env == "" {
		c.App.Env = "local"
	}
	{
		n, err := optionalInt("APP_PORT", defaultPort)
		if err != nil {
			parseErrs = append(parseErrs, err)
		}
		c.App.Port = n
	}

	c.Twilio.AccountSID = strings.TrimSpace(os.Getenv("TWILIO_ACCOUNT_SID"))
	c.Twilio.AuthToken = os.Getenv("TWILIO_AUTH_TOKEN")
	c.Twilio.APIKeySID = strings.TrimSpace(os.Getenv("TWILIO_API_KEY"))
	c.Twilio.APIKeySecret = os.Getenv("TWILIO_API_SECRET")
	c.Twilio.AppSID = strings.TrimSpace(os.Getenv("TWILIO_APP_SID"))
	c.Twilio.PhoneNumber = strings.TrimSpace(os.Getenv("TWILIO_PHONE_NUMBER"))

	c.Calling = defaultCalling()
	if v := strings.TrimSpace(os.Getenv("FIXED_CALL_NUMBER")); v != "" {
		c.Calling.FixedNumber = v
		c.Calling.DisplayNumber = v
	}
	if v := strings.TrimSpace(os.Getenv("SERVICE_NAME")); v != "" {
		c.Calling.ServiceName = v
	}

	c.CORS.Origins = splitOrigins(os.Getenv("CORS_ORIGINS"))

	if err := joinErrors(parseErrs); err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// defaultCalling returns the built-in feature/limit document.
// These values are served verbatim by the config endpoint; they are not
// enforced by this process (the provider owns call concurrency).
func defaultCalling() CallingConfig {
	return CallingConfig{
		FixedNumber:   defaultFixedNumber,
		DisplayNumber: defaultFixedNumber,
		ServiceName:   defaultServiceName,
		Features: Features{
			OutgoingCalls: true,
			IncomingCalls: false,
			CallRecording: false,
			Mute:          true,
			Hold:          false,
		},
		Limits: Limits{
			MaxCallDuration: 1800,
			ConcurrentCalls: 1,
		},
	}
}

func (c Config) Validate() error {
	var errs []error

	if !isValidEnv(c.App.Env) {
		errs = append(errs, fmt.Errorf("APP_ENV must be one of local, dev, staging, production, got %q", c.App.Env))
	}
	if c.App.Port <= 0 || c.App.Port > 65535 {
		errs = append(errs, fmt.Errorf("APP_PORT must be a valid port, got %d", c.App.Port))
	}

	if c.Twilio.AccountSID == "" {
		errs = append(errs, errors.New("TWILIO_ACCOUNT_SID is required"))
	}
	if c.Twilio.AuthToken == "" {
		errs = append(errs, errors.New("TWILIO_AUTH_TOKEN is required"))
	}
	if c.Twilio.APIKeySID == "" {
		errs = append(errs, errors.New("TWILIO_API_KEY is required"))
	}
	if c.Twilio.APIKeySecret == "" {
		errs = append(errs, errors.New("TWILIO_API_SECRET is required"))
	}
	if c.Twilio.AppSID == "" {
		errs = append(errs, errors.New("TWILIO_APP_SID is required"))
	}
	if c.Twilio.PhoneNumber == "" {
		errs = append(errs, errors.New("TWILIO_PHONE_NUMBER is required"))
	}

	if c.Calling.FixedNumber == "" {
		errs = append(errs, errors.New("FIXED_CALL_NUMBER must not be empty"))
	}

	return joinErrors(errs)
}

func (c Config) IsProduction() bool {
	return c.App.Env == "production"
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.App.Port)
}

func optionalInt(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, v)
	}
	return n, nil
}

// splitOrigins parses a comma-separated origin list. Defaults cover the
// local React and Vue dev servers.
func splitOrigins(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{"http://localhost:3000", "http://localhost:8080"}
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func isValidEnv(v string) bool {
	switch v {
	case "local", "dev", "staging", "production":
		return true
	default:
		return false
	}
}

func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return errs[0]
	}
	var b strings.Builder
	b.WriteString("config errors:\n")
	for _, e := range errs {
		b.WriteString("- ")
		b.WriteString(e.Error())
		b.WriteString("\n")
	}
	return errors.New(strings.TrimSpace(b.String()))
}
