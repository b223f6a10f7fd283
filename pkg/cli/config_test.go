package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigWithPath(t *testing.T) {
	path := writeConfig(t, `
openai_api_key: sk-test-1234
twilio:
  account_sid: AC123
  auth_token: tok456
  from_number: "+15550100"
system_prompt: Answer the phone.
scheduling_link: https://example.com/book
notify_contact: "+15550199"
port: 9000
`)

	cfg, err := LoadConfigWithPath(path)
	if err != nil {
		t.Fatalf("LoadConfigWithPath error: %v", err)
	}

	if cfg.OpenAIAPIKey != "sk-test-1234" {
		t.Errorf("OpenAIAPIKey = %q", cfg.OpenAIAPIKey)
	}
	if cfg.Twilio.AccountSID != "AC123" || cfg.Twilio.FromNumber != "+15550100" {
		t.Errorf("Twilio = %+v", cfg.Twilio)
	}
	if cfg.SystemPrompt != "Answer the phone." {
		t.Errorf("SystemPrompt = %q", cfg.SystemPrompt)
	}
	if cfg.Port != 9000 {
		t.Errorf("Port = %d; want 9000", cfg.Port)
	}
	if !cfg.DispatchEnabled() {
		t.Error("DispatchEnabled() = false; want true")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfigWithPath(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("missing file should not be an error: %v", err)
	}

	if cfg.Transcribe != DefaultTranscribeName {
		t.Errorf("Transcribe = %q; want %q", cfg.Transcribe, DefaultTranscribeName)
	}
	if cfg.Complete != DefaultCompleteName {
		t.Errorf("Complete = %q; want %q", cfg.Complete, DefaultCompleteName)
	}
	if cfg.Port != DefaultPort {
		t.Errorf("Port = %d; want %d", cfg.Port, DefaultPort)
	}
	if cfg.SystemPrompt == "" {
		t.Error("SystemPrompt default missing")
	}
	if cfg.DispatchEnabled() {
		t.Error("DispatchEnabled() = true with nothing configured")
	}
	if _, err := cfg.Schedule(); err != nil {
		t.Errorf("Schedule error with defaults: %v", err)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-from-env")
	t.Setenv("CALLGEAR_PORT", "7070")

	path := writeConfig(t, "openai_api_key: sk-from-file\nport: 9000\n")
	cfg, err := LoadConfigWithPath(path)
	if err != nil {
		t.Fatalf("LoadConfigWithPath error: %v", err)
	}

	if cfg.OpenAIAPIKey != "sk-from-env" {
		t.Errorf("OpenAIAPIKey = %q; env should win", cfg.OpenAIAPIKey)
	}
	if cfg.Port != 7070 {
		t.Errorf("Port = %d; env should win", cfg.Port)
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()
	if err := cfg.Validate(); err == nil {
		t.Error("Validate without api key: want error")
	}
	cfg.OpenAIAPIKey = "sk-x"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate error: %v", err)
	}
}

func TestRedacted(t *testing.T) {
	cfg := &Config{
		OpenAIAPIKey: "sk-verysecret9999",
		Twilio:       TwilioConfig{AuthToken: "tok"},
	}
	red := cfg.Redacted()

	if strings.Contains(red.OpenAIAPIKey, "verysecret") {
		t.Errorf("Redacted OpenAIAPIKey = %q; still leaks", red.OpenAIAPIKey)
	}
	if !strings.HasSuffix(red.OpenAIAPIKey, "9999") {
		t.Errorf("Redacted OpenAIAPIKey = %q; want last four kept", red.OpenAIAPIKey)
	}
	if red.Twilio.AuthToken != "****" {
		t.Errorf("Redacted AuthToken = %q", red.Twilio.AuthToken)
	}
	if cfg.OpenAIAPIKey != "sk-verysecret9999" {
		t.Error("Redacted mutated the original")
	}
}
