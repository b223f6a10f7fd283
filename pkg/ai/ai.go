// Package ai provides the remote speech and language capabilities used by
// call sessions: transcription, chat completion, and speech synthesis.
//
// Each capability is a single blocking request to an external service.
// Backends register on a Mux under a provider name; callers select a backend
// with a "provider/model" name such as "openai/whisper-1" or
// "gemini/gemini-2.0-flash". No retries are performed; a failure is returned
// to the caller as an *Error carrying the failed operation.
package ai

import (
	"context"

	"github.com/haivivi/callgear/pkg/convo"
)

// Transcriber converts one utterance of audio into text.
type Transcriber interface {
	// Transcribe transcribes the audio using the given model.
	Transcribe(ctx context.Context, model string, audio []byte) (string, error)
}

// TranscribeFunc is an adapter to allow the use of ordinary functions as
// Transcribers.
type TranscribeFunc func(ctx context.Context, model string, audio []byte) (string, error)

// Transcribe calls the underlying function.
func (f TranscribeFunc) Transcribe(ctx context.Context, model string, audio []byte) (string, error) {
	return f(ctx, model, audio)
}

// Completer produces the next assistant reply for an ordered transcript.
type Completer interface {
	// Complete generates a reply from the full ordered transcript,
	// system turn included.
	Complete(ctx context.Context, model string, turns []convo.Turn) (string, error)
}

// CompleteFunc is an adapter to allow the use of ordinary functions as
// Completers.
type CompleteFunc func(ctx context.Context, model string, turns []convo.Turn) (string, error)

// Complete calls the underlying function.
func (f CompleteFunc) Complete(ctx context.Context, model string, turns []convo.Turn) (string, error) {
	return f(ctx, model, turns)
}

// Synthesizer converts text into speech audio.
type Synthesizer interface {
	// Synthesize renders the text as audio using the given model.
	Synthesize(ctx context.Context, model string, text string) ([]byte, error)
}

// SynthesizeFunc is an adapter to allow the use of ordinary functions as
// Synthesizers.
type SynthesizeFunc func(ctx context.Context, model string, text string) ([]byte, error)

// Synthesize calls the underlying function.
func (f SynthesizeFunc) Synthesize(ctx context.Context, model string, text string) ([]byte, error) {
	return f(ctx, model, text)
}
