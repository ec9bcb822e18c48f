package pipeline

import (
	"github.com/nguyentantai21042004/slidecast/internal/deck"
	"github.com/nguyentantai21042004/slidecast/internal/encoder"
	"github.com/nguyentantai21042004/slidecast/internal/logger"
	"github.com/nguyentantai21042004/slidecast/internal/render"
	"github.com/nguyentantai21042004/slidecast/internal/tts"
)

type implPipeline struct {
	extractor   deck.Extractor
	synthesizer tts.Synthesizer
	renderer    render.Renderer
	encoder     encoder.Encoder
	logger      logger.Logger
}

// New creates a Pipeline wiring the four stage collaborators together.
func New(extractor deck.Extractor, synth tts.Synthesizer, rend render.Renderer, enc encoder.Encoder, log logger.Logger) Pipeline {
	return &implPipeline{
		extractor:   extractor,
		synthesizer: synth,
		renderer:    rend,
		encoder:     enc,
		logger:      log,
	}
}
