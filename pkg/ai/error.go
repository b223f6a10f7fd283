package ai

import (
	"errors"
	"fmt"
)

// Op identifies which remote capability failed.
type Op string

const (
	OpTranscribe Op = "transcribe"
	OpComplete   Op = "complete"
	OpSynthesize Op = "synthesize"
)

// ErrNoBackend is returned when no backend is registered for a name.
var ErrNoBackend = errors.New("no backend registered")

// Error is a remote capability failure.
type Error struct {
	// Op is the capability that failed.
	Op Op

	// Name is the "provider/model" name the call was made with.
	Name string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("ai: %s %s: %v", e.Op, e.Name, e.Err)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// AsError extracts *Error from an error.
//
// Example:
//
//	if e, ok := ai.AsError(err); ok && e.Op == ai.OpTranscribe {
//	    // Transcription failed; drop the event.
//	}
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
