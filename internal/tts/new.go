package tts

import (
	"github.com/gorilla/websocket"
)

type implSynthesizer struct {
	voice    string
	endpoint string
	dialer   *websocket.Dialer
}

// New creates a Synthesizer speaking with the given voice short name
// (e.g. "en-US-AriaNeural").
func New(voice string) Synthesizer {
	return &implSynthesizer{
		voice:    voice,
		endpoint: synthesisEndpoint,
		dialer:   websocket.DefaultDialer,
	}
}
