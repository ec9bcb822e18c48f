package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
)

// workArea is the ephemeral directory tree holding one run's intermediate
// artifacts. Each stage owns exactly one subdirectory; the whole tree lives
// and dies with the run.
type workArea struct {
	root     string
	audioDir string
	imageDir string
	videoDir string
}

func newWorkArea() (*workArea, error) {
	root, err := os.MkdirTemp("", "slidecast-work-")
	if err != nil {
		return nil, fmt.Errorf("create work area: %w", err)
	}

	wa := &workArea{
		root:     root,
		audioDir: filepath.Join(root, "audio"),
		imageDir: filepath.Join(root, "images"),
		videoDir: filepath.Join(root, "videos"),
	}

	for _, dir := range []string{wa.audioDir, wa.imageDir, wa.videoDir} {
		if err := os.Mkdir(dir, 0755); err != nil {
			os.RemoveAll(root)
			return nil, fmt.Errorf("create work area subdirectory: %w", err)
		}
	}

	return wa, nil
}

// Close removes the whole tree, including any partial artifacts.
func (w *workArea) Close() error {
	return os.RemoveAll(w.root)
}
