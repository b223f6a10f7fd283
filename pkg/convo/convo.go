// Package convo provides the conversation transcript shared by call sessions.
//
// A Transcript is append-only: turns are inserted in conversational order and
// are never mutated or removed. The first turn is always the system prompt,
// inserted at construction.
package convo

import "sync"

// Role tags a turn with its speaker.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message in a conversation transcript.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Transcript is an ordered, append-only sequence of turns. It is safe for
// concurrent use: one goroutine appends while others may read.
type Transcript struct {
	mu    sync.RWMutex
	turns []Turn
}

// NewTranscript creates a transcript seeded with the system prompt.
func NewTranscript(systemPrompt string) *Transcript {
	return &Transcript{
		turns: []Turn{{Role: RoleSystem, Content: systemPrompt}},
	}
}

// AppendUser appends a user turn.
func (t *Transcript) AppendUser(content string) {
	t.append(Turn{Role: RoleUser, Content: content})
}

// AppendAssistant appends an assistant turn.
func (t *Transcript) AppendAssistant(content string) {
	t.append(Turn{Role: RoleAssistant, Content: content})
}

func (t *Transcript) append(turn Turn) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.turns = append(t.turns, turn)
}

// Turns returns a copy of the ordered turns, system turn included.
func (t *Transcript) Turns() []Turn {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Turn, len(t.turns))
	copy(out, t.turns)
	return out
}

// Len returns the number of turns, system turn included.
func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.turns)
}

// Last returns the most recent turn.
func (t *Transcript) Last() Turn {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.turns[len(t.turns)-1]
}
