package render

import (
	"github.com/nguyentantai21042004/slidecast/internal/config"
	"github.com/nguyentantai21042004/slidecast/internal/logger"
	"github.com/nguyentantai21042004/slidecast/pkg/executor"
)

type implRenderer struct {
	sofficePath string
	dpi         int
	workers     int
	executor    executor.Executor
	logger      logger.Logger
}

// New creates a Renderer using the configured LibreOffice binary and
// rasterization settings.
func New(cfg *config.Config, exec executor.Executor, log logger.Logger) Renderer {
	workers := cfg.Performance.RasterWorkers
	if workers <= 0 {
		workers = 4
	}
	return &implRenderer{
		sofficePath: cfg.Tools.Soffice,
		dpi:         cfg.Render.DPI,
		workers:     workers,
		executor:    exec,
		logger:      log,
	}
}
