package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"
)

// ErrNoNotes is returned when no slide in the deck carries a speaker note,
// so there is nothing to synthesize.
var ErrNoNotes = errors.New("no slides with speaker notes")

// ErrPairingMismatch means the audio and image branches came back with
// different lengths. It indicates an internal invariant violation, not a
// condition normal input can produce.
var ErrPairingMismatch = errors.New("audio/image sequence length mismatch")

// Convert runs the stages in order: notes -> selection -> the audio and
// image branches concurrently -> pairing check -> sequential muxing ->
// concatenation. The first failing stage cancels its siblings and aborts
// the run; the work area is removed on every exit path.
func (p *implPipeline) Convert(ctx context.Context, deckPath, outputPath string) error {
	startTime := time.Now()

	notes, err := p.extractor.Notes(deckPath)
	if err != nil {
		return fmt.Errorf("extract notes: %w", err)
	}

	kept := Select(notes)
	if len(kept) == 0 {
		return fmt.Errorf("deck %s: %w", deckPath, ErrNoNotes)
	}
	p.logger.Info(ctx, "Deck %s: %d of %d slides have notes", deckPath, len(kept), len(notes))

	wa, err := newWorkArea()
	if err != nil {
		return err
	}
	defer func() {
		if err := wa.Close(); err != nil {
			p.logger.Warn(ctx, "Failed to remove work area %s: %v", wa.root, err)
		}
	}()

	positions := make([]int, len(kept))
	for i, slide := range kept {
		positions[i] = slide.Position
	}

	// Both branches start together; the first error cancels the other.
	var audioPaths, imagePaths []string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		paths, err := p.synthesizeAll(gctx, kept, wa.audioDir)
		if err != nil {
			return fmt.Errorf("synthesize audio: %w", err)
		}
		audioPaths = paths
		return nil
	})
	g.Go(func() error {
		paths, err := p.renderer.Render(gctx, deckPath, wa.imageDir, positions)
		if err != nil {
			return fmt.Errorf("render images: %w", err)
		}
		imagePaths = paths
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if len(audioPaths) != len(kept) || len(imagePaths) != len(kept) {
		return fmt.Errorf("%w: %d kept slides, %d audio clips, %d images",
			ErrPairingMismatch, len(kept), len(audioPaths), len(imagePaths))
	}

	clipPaths := make([]string, len(kept))
	for i := range kept {
		clipPath := filepath.Join(wa.videoDir, fmt.Sprintf("video-%d.mp4", i+1))
		if err := p.encoder.Mux(ctx, imagePaths[i], audioPaths[i], clipPath); err != nil {
			return fmt.Errorf("mux clip %d (slide %d): %w", i+1, kept[i].Position, err)
		}
		clipPaths[i] = clipPath
	}

	if err := p.encoder.Concat(ctx, clipPaths, outputPath); err != nil {
		return fmt.Errorf("concatenate clips: %w", err)
	}

	p.logger.Info(ctx, "Converted %s to %s (%d slides, %s)",
		deckPath, outputPath, len(kept), time.Since(startTime).Round(time.Millisecond))
	return nil
}

// synthesizeAll fans out one synthesis call per kept slide. All calls run
// concurrently; the first failure cancels the in-flight siblings and fails
// the stage, so a partial audio set never reaches the muxer. The returned
// paths follow kept order regardless of completion order.
func (p *implPipeline) synthesizeAll(ctx context.Context, kept []KeptSlide, audioDir string) ([]string, error) {
	paths := make([]string, len(kept))

	g, gctx := errgroup.WithContext(ctx)
	for i, slide := range kept {
		outputPath := filepath.Join(audioDir, fmt.Sprintf("note-%d.mp3", i+1))
		paths[i] = outputPath

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := p.synthesizer.Synthesize(gctx, slide.Note, outputPath); err != nil {
				return fmt.Errorf("slide %d: %w", slide.Position, err)
			}
			p.logger.Info(gctx, "Synthesized note for slide %d: %s", slide.Position, outputPath)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}
