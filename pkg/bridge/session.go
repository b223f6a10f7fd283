// Package bridge connects a live telephone call to the remote speech and
// language services and speaks the replies back to the caller.
//
// The Gateway accepts one duplex media-stream connection per call and runs
// one Session for its lifetime. A Session owns the call's transcript and
// processes inbound media events strictly one at a time in arrival order:
// frames that arrive while an event is in flight queue up and drain FIFO.
// Sessions are fully independent of each other and share only the immutable
// process-wide Config.
package bridge

import (
	"context"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/haivivi/callgear/pkg/convo"
	"github.com/haivivi/callgear/pkg/hours"
	"github.com/haivivi/callgear/pkg/notify"
)

// Default spoken texts. Config fields override them.
const (
	// DefaultGreeting is spoken by the telephony provider before the
	// media stream opens.
	DefaultGreeting = "Please hold while we connect you to our assistant."

	// DefaultAfterHoursMessage is the fixed reply outside business hours.
	DefaultAfterHoursMessage = "Thank you for calling. Our office is currently closed. " +
		"Business hours are Monday through Friday, eight A M to six P M. " +
		"Please call back during business hours."
)

// Config holds the immutable process-wide settings shared by every session.
// It is constructed once at startup and never mutated afterwards.
type Config struct {
	// SystemPrompt seeds each session's transcript.
	SystemPrompt string

	// Greeting is the short spoken notice in the call-setup handshake.
	Greeting string

	// AfterHoursMessage is the fixed reply outside business hours.
	AfterHoursMessage string

	// SchedulingLink is embedded in the follow-up message. If empty,
	// follow-up dispatch is suppressed.
	SchedulingLink string

	// NotifyContact receives the follow-up message. If empty, follow-up
	// dispatch is suppressed.
	NotifyContact string

	// TranscribeName, CompleteName, and SynthesizeName select capability
	// backends by "provider/model" name.
	TranscribeName string
	CompleteName   string
	SynthesizeName string

	// Hours is the business-hours schedule, evaluated per event.
	Hours hours.Schedule
}

// Greeting and after-hours texts with defaults applied.

func (c *Config) greeting() string {
	if c.Greeting != "" {
		return c.Greeting
	}
	return DefaultGreeting
}

func (c *Config) afterHours() string {
	if c.AfterHoursMessage != "" {
		return c.AfterHoursMessage
	}
	return DefaultAfterHoursMessage
}

// Engine bundles the three remote capabilities the pipeline invokes. Each
// call blocks until the remote service responds; no timeouts or retries are
// applied here.
type Engine interface {
	Transcribe(ctx context.Context, name string, audio []byte) (string, error)
	Complete(ctx context.Context, name string, turns []convo.Turn) (string, error)
	Synthesize(ctx context.Context, name string, text string) ([]byte, error)
}

// State of a call session.
type State int32

const (
	StateActive State = iota
	StateTerminated
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// SendFunc delivers one encoded outbound frame to the caller.
type SendFunc func(frame []byte) error

// SessionParams configures a new call session.
type SessionParams struct {
	Config *Config
	Engine Engine

	// Dispatcher sends follow-up messages. May be nil when the telephony
	// messaging credentials are not configured.
	Dispatcher notify.Dispatcher

	Send SendFunc

	// Logger defaults to slog.Default.
	Logger *slog.Logger

	// Now defaults to time.Now. The business-hours policy is evaluated
	// with it once per event.
	Now func() time.Time
}

// Session owns one call's transcript and processing pipeline.
type Session struct {
	// ID identifies the session for the connection's lifetime.
	ID string

	cfg        *Config
	engine     Engine
	dispatcher notify.Dispatcher
	send       SendFunc
	logger     *slog.Logger
	now        func() time.Time

	transcript *convo.Transcript
	queue      *frameQueue
	state      atomic.Int32
	done       chan struct{}
}

// NewSession creates a session in the active state, seeds its transcript
// with the system prompt, and starts the worker that drains inbound frames.
func NewSession(p SessionParams) *Session {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := p.Now
	if now == nil {
		now = time.Now
	}
	s := &Session{
		ID:         uuid.NewString(),
		cfg:        p.Config,
		engine:     p.Engine,
		dispatcher: p.Dispatcher,
		send:       p.Send,
		now:        now,
		transcript: convo.NewTranscript(p.Config.SystemPrompt),
		queue:      newFrameQueue(),
		done:       make(chan struct{}),
	}
	s.logger = logger.With("session", s.ID)
	go s.run()
	return s
}

// State returns the current session state.
func (s *Session) State() State {
	return State(s.state.Load())
}

func (s *Session) terminated() bool {
	return s.State() == StateTerminated
}

// Transcript returns a copy of the session's ordered turns.
func (s *Session) Transcript() []convo.Turn {
	return s.transcript.Turns()
}

// Enqueue queues one inbound frame for processing. Frames enqueued after
// termination are ignored.
func (s *Session) Enqueue(f Frame) {
	if s.terminated() {
		return
	}
	s.queue.enqueue(f)
}

// Terminate moves the session to the terminated state. The first call wins;
// repeats are no-ops. An in-flight remote call is not cancelled, but its
// result is discarded instead of delivered, and queued events are dropped.
func (s *Session) Terminate() {
	if !s.state.CompareAndSwap(int32(StateActive), int32(StateTerminated)) {
		return
	}
	s.queue.close()
	s.logger.Info("session terminated", "turns", s.transcript.Len())
}

// Done is closed when the worker has exited.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// run drains the inbound queue one frame at a time. Event N+1 never starts
// before event N's pipeline has fully finished.
func (s *Session) run() {
	defer close(s.done)
	for {
		f, ok := s.queue.dequeue()
		if !ok {
			return
		}
		if s.terminated() {
			return
		}
		switch f.Kind {
		case FrameMedia:
			s.processMedia(f.Payload)
		case FrameStop:
			s.Terminate()
			return
		case FrameMalformed:
			s.logger.Warn("dropping malformed frame", "error", f.Err)
		}
	}
}

// processMedia runs the per-event pipeline for one utterance of caller
// audio. Every failure is logged here and drops the event; the session
// itself never terminates because of a pipeline error.
func (s *Session) processMedia(audio []byte) {
	ctx := context.Background()

	text, err := s.engine.Transcribe(ctx, s.cfg.TranscribeName, audio)
	if err != nil {
		s.logger.Error("transcription failed", "error", err)
		return
	}
	if s.terminated() {
		return
	}

	// An inaudible or silent chunk is a normal outcome, not an error.
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	s.transcript.AppendUser(text)
	s.logger.Debug("caller said", "text", text)

	// The policy is evaluated at the instant this event is processed;
	// hours may change mid-call.
	if !s.cfg.Hours.Within(s.now()) {
		s.transcript.AppendAssistant(s.cfg.afterHours())
		s.speak(ctx, s.cfg.afterHours())
		return
	}

	reply, err := s.engine.Complete(ctx, s.cfg.CompleteName, s.transcript.Turns())
	if err != nil {
		s.logger.Error("completion failed", "error", err)
		return
	}
	if s.terminated() {
		return
	}

	s.transcript.AppendAssistant(reply)
	s.logger.Debug("assistant replied", "text", reply)
	s.dispatchFollowUp(ctx, reply)
	s.speak(ctx, reply)
}

// dispatchFollowUp sends at most one follow-up message for the assistant
// turn. Dispatch failure never affects the turn or the audio reply.
func (s *Session) dispatchFollowUp(ctx context.Context, reply string) {
	if s.dispatcher == nil || s.cfg.SchedulingLink == "" || s.cfg.NotifyContact == "" {
		return
	}
	if !hasSchedulingIntent(reply) {
		return
	}
	body := notify.FollowUpBody(s.cfg.SchedulingLink)
	if err := s.dispatcher.Notify(ctx, s.cfg.NotifyContact, body); err != nil {
		s.logger.Warn("follow-up dispatch failed", "contact", s.cfg.NotifyContact, "error", err)
		return
	}
	s.logger.Info("follow-up dispatched", "contact", s.cfg.NotifyContact)
}

// hasSchedulingIntent reports whether the assistant text indicates a
// scheduling intent.
func hasSchedulingIntent(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "schedule") || strings.Contains(lower, "book")
}

// speak synthesizes the text and sends it to the caller as one outbound
// media frame. On synthesis failure the turn stays in the transcript even
// though no audio reaches the caller.
func (s *Session) speak(ctx context.Context, text string) {
	audio, err := s.engine.Synthesize(ctx, s.cfg.SynthesizeName, text)
	if err != nil {
		s.logger.Error("synthesis failed", "error", err)
		return
	}
	if s.terminated() {
		return
	}
	frame, err := EncodeMedia(audio)
	if err != nil {
		s.logger.Error("encode outbound frame failed", "error", err)
		return
	}
	if err := s.send(frame); err != nil {
		s.logger.Warn("send outbound frame failed", "error", err)
	}
}
