package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/slidecast/internal/logger"
	"github.com/nguyentantai21042004/slidecast/internal/watcher"
)

func newWatchCommand() *cobra.Command {
	var (
		configPath string
		inputDir   string
		outputDir  string
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Convert every deck dropped into a directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			if cmd.Flags().Changed("input") {
				cfg.Paths.Input = inputDir
			}
			if cmd.Flags().Changed("output") {
				cfg.Paths.Output = outputDir
			}
			if err := cfg.ValidateWatch(); err != nil {
				return err
			}
			if err := os.MkdirAll(cfg.Paths.Output, 0755); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}

			log := logger.New(cfg.Logging.Level)
			p := buildPipeline(cfg, log)

			handler := func(ctx context.Context, deckPath string) error {
				outputPath := filepath.Join(cfg.Paths.Output, outputName(deckPath))
				return p.Convert(ctx, deckPath, outputPath)
			}

			w, err := watcher.New(cfg.Paths.Input, handler, log, cfg.Performance.MaxConcurrent)
			if err != nil {
				return err
			}
			defer w.Stop()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Configuration file path")
	cmd.Flags().StringVar(&inputDir, "input", "", "Directory to watch for decks")
	cmd.Flags().StringVar(&outputDir, "output", "", "Directory for finished videos")

	return cmd
}
