package bridge

import (
	"fmt"

	"github.com/twilio/twilio-go/twiml"
)

// voiceResponse builds the call-setup handshake document: play the greeting,
// then connect the call's audio to the duplex stream URL.
func voiceResponse(greeting, streamURL string) (string, error) {
	say := &twiml.VoiceSay{Message: greeting}
	stream := &twiml.VoiceStream{Url: streamURL}
	connect := &twiml.VoiceConnect{
		InnerElements: []twiml.Element{stream},
	}
	doc, err := twiml.Voice([]twiml.Element{say, connect})
	if err != nil {
		return "", fmt.Errorf("bridge: render voice response: %w", err)
	}
	return doc, nil
}
