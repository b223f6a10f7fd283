package bridge

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
)

// FrameKind enumerates the inbound frame variants of the duplex stream.
type FrameKind int

const (
	// FrameMalformed is an inbound frame that could not be decoded. It is
	// routed into the session so the drop is logged at the one
	// event-processing boundary instead of failing the read loop.
	FrameMalformed FrameKind = iota

	// FrameMedia carries one utterance of caller audio.
	FrameMedia

	// FrameStop terminates the call session.
	FrameStop
)

// String returns the string representation of the kind.
func (k FrameKind) String() string {
	switch k {
	case FrameMedia:
		return "media"
	case FrameStop:
		return "stop"
	default:
		return "malformed"
	}
}

// Frame is one decoded inbound event from the duplex stream.
type Frame struct {
	Kind FrameKind

	// Payload is the decoded audio for FrameMedia.
	Payload []byte

	// Err is the decode failure for FrameMalformed.
	Err error
}

// wireFrame is the JSON envelope shared by inbound and outbound frames.
type wireFrame struct {
	Event string     `json:"event"`
	Media *wireMedia `json:"media,omitempty"`
}

type wireMedia struct {
	Payload string `json:"payload"`
}

// DecodeFrame parses one inbound frame. Decode failures never return an
// error; they yield a FrameMalformed frame carrying the cause.
func DecodeFrame(data []byte) Frame {
	var w wireFrame
	if err := json.Unmarshal(data, &w); err != nil {
		return Frame{Kind: FrameMalformed, Err: fmt.Errorf("bridge: decode frame: %w", err)}
	}
	switch w.Event {
	case "media":
		if w.Media == nil {
			return Frame{Kind: FrameMalformed, Err: errors.New("bridge: media frame without media body")}
		}
		audio, err := base64.StdEncoding.DecodeString(w.Media.Payload)
		if err != nil {
			return Frame{Kind: FrameMalformed, Err: fmt.Errorf("bridge: decode media payload: %w", err)}
		}
		return Frame{Kind: FrameMedia, Payload: audio}
	case "stop":
		return Frame{Kind: FrameStop}
	default:
		return Frame{Kind: FrameMalformed, Err: fmt.Errorf("bridge: unknown event %q", w.Event)}
	}
}

// EncodeMedia builds an outbound media frame carrying the audio payload.
func EncodeMedia(audio []byte) ([]byte, error) {
	data, err := json.Marshal(wireFrame{
		Event: "media",
		Media: &wireMedia{Payload: base64.StdEncoding.EncodeToString(audio)},
	})
	if err != nil {
		return nil, fmt.Errorf("bridge: encode media frame: %w", err)
	}
	return data, nil
}
