package encoder

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/slidecast/internal/config"
	"github.com/nguyentantai21042004/slidecast/internal/logger"
	"github.com/nguyentantai21042004/slidecast/pkg/executor"
)

type implEncoder struct {
	ffmpegPath string
	videoCodec string
	executor   executor.Executor
	logger     logger.Logger
}

// New creates an Encoder invoking the configured ffmpeg binary.
func New(cfg *config.Config, exec executor.Executor, log logger.Logger) Encoder {
	return &implEncoder{
		ffmpegPath: cfg.Tools.FFmpeg,
		videoCodec: cfg.Encode.VideoCodec,
		executor:   exec,
		logger:     log,
	}
}

func (e *implEncoder) Mux(ctx context.Context, imagePath, audioPath, outputPath string) error {
	if _, err := e.executor.Execute(ctx, e.ffmpegPath,
		"-loop", "1",
		"-i", imagePath,
		"-i", audioPath,
		"-c:v", e.videoCodec,
		"-c:a", "copy",
		"-shortest",
		"-y",
		outputPath,
	); err != nil {
		return fmt.Errorf("encoder: mux %s + %s: %w", imagePath, audioPath, err)
	}

	e.logger.Info(ctx, "Muxed clip: %s", outputPath)
	return nil
}

func (e *implEncoder) Concat(ctx context.Context, clipPaths []string, outputPath string) error {
	manifestDir, err := os.MkdirTemp("", "slidecast-concat-")
	if err != nil {
		return fmt.Errorf("encoder: create manifest dir: %w", err)
	}
	defer os.RemoveAll(manifestDir)

	manifestPath := filepath.Join(manifestDir, "concat.txt")
	if err := writeManifest(manifestPath, clipPaths); err != nil {
		return fmt.Errorf("encoder: %w", err)
	}

	if _, err := e.executor.Execute(ctx, e.ffmpegPath,
		"-f", "concat",
		"-safe", "0",
		"-i", manifestPath,
		"-c:v", "copy",
		"-c:a", "aac",
		"-ar", "48000",
		"-y",
		outputPath,
	); err != nil {
		return fmt.Errorf("encoder: concat %d clips: %w", len(clipPaths), err)
	}

	e.logger.Info(ctx, "Concatenated %d clips into %s", len(clipPaths), outputPath)
	return nil
}

// writeManifest writes the ffmpeg concat demuxer list, one absolute clip
// path per line.
func writeManifest(manifestPath string, clipPaths []string) error {
	var sb strings.Builder
	for _, clip := range clipPaths {
		abs, err := filepath.Abs(clip)
		if err != nil {
			return fmt.Errorf("resolve clip path %s: %w", clip, err)
		}
		fmt.Fprintf(&sb, "file '%s'\n", abs)
	}

	if err := os.WriteFile(manifestPath, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}
