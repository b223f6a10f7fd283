package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/goccy/go-yaml"

	"github.com/haivivi/callgear/pkg/hours"
)

const (
	// DefaultBaseDir is the base configuration directory name.
	DefaultBaseDir = ".callgear"
	// DefaultConfigFile is the default configuration filename.
	DefaultConfigFile = "config.yaml"

	// DefaultPort is the listening port when none is configured.
	DefaultPort = 8080

	// DefaultSystemPrompt seeds call transcripts when none is configured.
	DefaultSystemPrompt = "You are a friendly phone receptionist for a small business. " +
		"Keep answers short and conversational; they will be spoken aloud. " +
		"Offer to schedule an appointment when the caller asks for one."
)

// Default capability backend names, in "provider/model" form.
const (
	DefaultTranscribeName = "openai/whisper-1"
	DefaultCompleteName   = "openai/gpt-4o-mini"
	DefaultSynthesizeName = "openai/tts-1"
)

// Config is the process-wide configuration, read once at startup and shared
// read-only across all call sessions.
type Config struct {
	// OpenAIAPIKey authenticates the transcription, completion, and
	// synthesis APIs.
	OpenAIAPIKey string `yaml:"openai_api_key,omitempty"`

	// GeminiAPIKey enables the Gemini completion backend when set.
	GeminiAPIKey string `yaml:"gemini_api_key,omitempty"`

	// Twilio holds the telephony account credentials.
	Twilio TwilioConfig `yaml:"twilio,omitempty"`

	// SystemPrompt seeds each call's transcript.
	SystemPrompt string `yaml:"system_prompt,omitempty"`

	// Greeting is spoken before the media stream opens.
	Greeting string `yaml:"greeting,omitempty"`

	// AfterHoursMessage replaces AI replies outside business hours.
	AfterHoursMessage string `yaml:"after_hours_message,omitempty"`

	// SchedulingLink is embedded in follow-up messages. Leaving it empty
	// suppresses follow-up dispatch.
	SchedulingLink string `yaml:"scheduling_link,omitempty"`

	// NotifyContact receives follow-up messages. Leaving it empty
	// suppresses follow-up dispatch.
	NotifyContact string `yaml:"notify_contact,omitempty"`

	// Transcribe, Complete, and Synthesize select capability backends by
	// "provider/model" name.
	Transcribe string `yaml:"transcribe,omitempty"`
	Complete   string `yaml:"complete,omitempty"`
	Synthesize string `yaml:"synthesize,omitempty"`

	// Timezone is the IANA zone for business hours.
	Timezone string `yaml:"timezone,omitempty"`

	// OpenHour and CloseHour bound the weekday window [open, close).
	OpenHour  int `yaml:"open_hour,omitempty"`
	CloseHour int `yaml:"close_hour,omitempty"`

	// Port is the HTTP listening port.
	Port int `yaml:"port,omitempty"`

	// configPath is where the config was loaded from.
	configPath string
}

// TwilioConfig contains the telephony provider credentials.
type TwilioConfig struct {
	AccountSID string `yaml:"account_sid,omitempty"`
	AuthToken  string `yaml:"auth_token,omitempty"`
	FromNumber string `yaml:"from_number,omitempty"`
}

// DefaultConfigPath returns ~/.callgear/config.yaml.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cli: get home directory: %w", err)
	}
	return filepath.Join(home, DefaultBaseDir, DefaultConfigFile), nil
}

// LoadConfig loads configuration from the default path.
func LoadConfig() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadConfigWithPath(path)
}

// LoadConfigWithPath loads configuration from a custom path. A missing file
// is not an error: the config then comes entirely from environment
// variables and defaults.
func LoadConfigWithPath(path string) (*Config, error) {
	cfg := &Config{configPath: path}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("cli: parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		// Fall through to env and defaults.
	default:
		return nil, fmt.Errorf("cli: read %s: %w", path, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

// Path returns where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// applyEnv overrides fields from environment variables.
func (c *Config) applyEnv() {
	setString := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setString(&c.OpenAIAPIKey, "OPENAI_API_KEY")
	setString(&c.GeminiAPIKey, "GEMINI_API_KEY")
	setString(&c.Twilio.AccountSID, "TWILIO_ACCOUNT_SID")
	setString(&c.Twilio.AuthToken, "TWILIO_AUTH_TOKEN")
	setString(&c.Twilio.FromNumber, "TWILIO_FROM_NUMBER")
	setString(&c.SystemPrompt, "CALLGEAR_SYSTEM_PROMPT")
	setString(&c.SchedulingLink, "CALLGEAR_SCHEDULING_LINK")
	setString(&c.NotifyContact, "CALLGEAR_NOTIFY_CONTACT")
	setString(&c.Timezone, "CALLGEAR_TIMEZONE")

	if v := os.Getenv("CALLGEAR_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}
}

// applyDefaults fills unset fields.
func (c *Config) applyDefaults() {
	if c.SystemPrompt == "" {
		c.SystemPrompt = DefaultSystemPrompt
	}
	if c.Transcribe == "" {
		c.Transcribe = DefaultTranscribeName
	}
	if c.Complete == "" {
		c.Complete = DefaultCompleteName
	}
	if c.Synthesize == "" {
		c.Synthesize = DefaultSynthesizeName
	}
	if c.Timezone == "" {
		c.Timezone = hours.DefaultZone
	}
	if c.OpenHour == 0 && c.CloseHour == 0 {
		c.OpenHour = hours.DefaultOpenHour
		c.CloseHour = hours.DefaultCloseHour
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
}

// Validate checks that the config can run the server.
func (c *Config) Validate() error {
	if c.OpenAIAPIKey == "" {
		return errors.New("cli: openai_api_key is required (or set OPENAI_API_KEY)")
	}
	return nil
}

// DispatchEnabled reports whether follow-up dispatch is fully configured.
func (c *Config) DispatchEnabled() bool {
	return c.SchedulingLink != "" && c.NotifyContact != "" &&
		c.Twilio.AccountSID != "" && c.Twilio.AuthToken != "" && c.Twilio.FromNumber != ""
}

// Schedule builds the business-hours schedule from the config.
func (c *Config) Schedule() (hours.Schedule, error) {
	return hours.New(c.Timezone, c.OpenHour, c.CloseHour)
}

// Redacted returns a copy with credentials masked for display.
func (c *Config) Redacted() *Config {
	out := *c
	out.OpenAIAPIKey = mask(c.OpenAIAPIKey)
	out.GeminiAPIKey = mask(c.GeminiAPIKey)
	out.Twilio.AuthToken = mask(c.Twilio.AuthToken)
	return &out
}

// mask hides all but the last four characters of a secret.
func mask(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 4 {
		return "****"
	}
	return "****" + s[len(s)-4:]
}
