package tts

import "context"

// Synthesizer converts note text to speech, saved to a target file. The
// voice is fixed at construction; every call is an isolated request.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, outputPath string) error
}
