package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/haivivi/callgear/pkg/ai"
	"github.com/haivivi/callgear/pkg/cli"
	"github.com/haivivi/callgear/pkg/convo"
)

func TestBuildEngineRegistersBackends(t *testing.T) {
	cfg := &cli.Config{OpenAIAPIKey: "sk-test"}

	engine, err := buildEngine(context.Background(), cfg)
	if err != nil {
		t.Fatalf("buildEngine error: %v", err)
	}

	// Gemini is not configured, so its provider must not resolve.
	_, err = engine.Complete(context.Background(), "gemini/gemini-2.0-flash",
		[]convo.Turn{{Role: convo.RoleSystem, Content: "sys"}})
	if !errors.Is(err, ai.ErrNoBackend) {
		t.Errorf("Complete via gemini = %v; want ErrNoBackend", err)
	}

	// Unknown providers never resolve.
	_, err = engine.Transcribe(context.Background(), "acme/asr", []byte("pcm"))
	if !errors.Is(err, ai.ErrNoBackend) {
		t.Errorf("Transcribe via acme = %v; want ErrNoBackend", err)
	}
}
