package ai

import (
	"context"
	"strings"
	"sync"

	"github.com/haivivi/callgear/pkg/convo"
)

// DefaultMux is the default multiplexer for capability backends.
var DefaultMux = NewMux()

// HandleTranscriber registers a Transcriber under the provider name with the
// default mux.
func HandleTranscriber(provider string, t Transcriber) {
	DefaultMux.HandleTranscriber(provider, t)
}

// HandleCompleter registers a Completer under the provider name with the
// default mux.
func HandleCompleter(provider string, c Completer) {
	DefaultMux.HandleCompleter(provider, c)
}

// HandleSynthesizer registers a Synthesizer under the provider name with the
// default mux.
func HandleSynthesizer(provider string, s Synthesizer) {
	DefaultMux.HandleSynthesizer(provider, s)
}

// Mux routes capability calls to registered backends by name.
//
// Names have the form "provider/model"; the provider segment selects the
// backend and the remainder is passed to it as the model. Registration
// happens at startup; dispatch is safe for concurrent use.
type Mux struct {
	mu           sync.RWMutex
	transcribers map[string]Transcriber
	completers   map[string]Completer
	synthesizers map[string]Synthesizer
}

// NewMux creates an empty multiplexer.
func NewMux() *Mux {
	return &Mux{
		transcribers: make(map[string]Transcriber),
		completers:   make(map[string]Completer),
		synthesizers: make(map[string]Synthesizer),
	}
}

// HandleTranscriber registers a Transcriber under the provider name.
func (m *Mux) HandleTranscriber(provider string, t Transcriber) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transcribers[provider] = t
}

// HandleCompleter registers a Completer under the provider name.
func (m *Mux) HandleCompleter(provider string, c Completer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.completers[provider] = c
}

// HandleSynthesizer registers a Synthesizer under the provider name.
func (m *Mux) HandleSynthesizer(provider string, s Synthesizer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.synthesizers[provider] = s
}

// Transcribe dispatches to the backend registered for name's provider.
func (m *Mux) Transcribe(ctx context.Context, name string, audio []byte) (string, error) {
	provider, model := splitName(name)
	m.mu.RLock()
	t := m.transcribers[provider]
	m.mu.RUnlock()
	if t == nil {
		return "", &Error{Op: OpTranscribe, Name: name, Err: ErrNoBackend}
	}
	return t.Transcribe(ctx, model, audio)
}

// Complete dispatches to the backend registered for name's provider.
func (m *Mux) Complete(ctx context.Context, name string, turns []convo.Turn) (string, error) {
	provider, model := splitName(name)
	m.mu.RLock()
	c := m.completers[provider]
	m.mu.RUnlock()
	if c == nil {
		return "", &Error{Op: OpComplete, Name: name, Err: ErrNoBackend}
	}
	return c.Complete(ctx, model, turns)
}

// Synthesize dispatches to the backend registered for name's provider.
func (m *Mux) Synthesize(ctx context.Context, name string, text string) ([]byte, error) {
	provider, model := splitName(name)
	m.mu.RLock()
	s := m.synthesizers[provider]
	m.mu.RUnlock()
	if s == nil {
		return nil, &Error{Op: OpSynthesize, Name: name, Err: ErrNoBackend}
	}
	return s.Synthesize(ctx, model, text)
}

// splitName splits "provider/model" into its segments. A name without a
// separator is all provider with an empty model, letting backends fall back
// to their defaults.
func splitName(name string) (provider, model string) {
	provider, model, _ = strings.Cut(name, "/")
	return provider, model
}
