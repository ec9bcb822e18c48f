package main

import (
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/slidecast/internal/config"
	"github.com/nguyentantai21042004/slidecast/internal/deck"
	"github.com/nguyentantai21042004/slidecast/internal/encoder"
	"github.com/nguyentantai21042004/slidecast/internal/logger"
	"github.com/nguyentantai21042004/slidecast/internal/pipeline"
	"github.com/nguyentantai21042004/slidecast/internal/render"
	"github.com/nguyentantai21042004/slidecast/internal/tts"
	"github.com/nguyentantai21042004/slidecast/pkg/executor"
)

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func buildPipeline(cfg *config.Config, log logger.Logger) pipeline.Pipeline {
	exec := executor.New()
	return pipeline.New(
		deck.New(),
		tts.New(cfg.TTS.Voice),
		render.New(cfg, exec, log),
		encoder.New(cfg, exec, log),
		log,
	)
}

// outputName maps a deck filename to its video filename.
func outputName(deckPath string) string {
	base := filepath.Base(deckPath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".mp4"
}
