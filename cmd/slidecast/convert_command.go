package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/slidecast/internal/logger"
)

func newConvertCommand() *cobra.Command {
	var (
		configPath  string
		infile      string
		sofficePath string
		ffmpegPath  string
		dpi         int
		voice       string
	)

	cmd := &cobra.Command{
		Use:   "convert -i <deck> <outfile>",
		Short: "Convert one deck into a narrated video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}

			if cmd.Flags().Changed("soffice-file-path") {
				cfg.Tools.Soffice = sofficePath
			}
			if cmd.Flags().Changed("ffmpeg-file-path") {
				cfg.Tools.FFmpeg = ffmpegPath
			}
			if cmd.Flags().Changed("dpi") {
				cfg.Render.DPI = dpi
			}
			if cmd.Flags().Changed("voice") {
				cfg.TTS.Voice = voice
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			log := logger.New(cfg.Logging.Level)
			return buildPipeline(cfg, log).Convert(ctx, infile, args[0])
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Configuration file path")
	cmd.Flags().StringVarP(&infile, "infile", "i", "", "Deck file to convert")
	cmd.Flags().StringVar(&sofficePath, "soffice-file-path", "/usr/bin/soffice", "LibreOffice binary")
	cmd.Flags().StringVar(&ffmpegPath, "ffmpeg-file-path", "/usr/bin/ffmpeg", "ffmpeg binary")
	cmd.Flags().IntVar(&dpi, "dpi", 75, "Slide rasterization resolution")
	cmd.Flags().StringVar(&voice, "voice", "zh-CN-XiaoxiaoNeural", "Voice short name")
	cmd.MarkFlagRequired("infile")

	return cmd
}
