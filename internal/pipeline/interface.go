package pipeline

import "context"

// Pipeline converts one slide deck into one narrated video.
type Pipeline interface {
	// Convert runs the whole pipeline: extract notes, synthesize audio and
	// render images for the noted slides, mux per-slide clips, concatenate
	// into outputPath. Either the final video is fully produced or no
	// output exists; every intermediate artifact is removed when the run
	// ends, on success or failure.
	Convert(ctx context.Context, deckPath, outputPath string) error
}
