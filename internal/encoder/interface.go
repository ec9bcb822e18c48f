package encoder

import "context"

// Encoder combines per-slide artifacts into video files.
type Encoder interface {
	// Mux produces one clip showing the image for the audio's duration.
	Mux(ctx context.Context, imagePath, audioPath, outputPath string) error

	// Concat joins the clips, in order, into the final output. Video
	// streams are copied; audio is re-encoded to AAC at a fixed sample
	// rate so the clips share one container-compatible track.
	Concat(ctx context.Context, clipPaths []string, outputPath string) error
}
