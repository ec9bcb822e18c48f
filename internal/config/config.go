package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Tools       ToolsConfig       `yaml:"tools"`
	TTS         TTSConfig         `yaml:"tts"`
	Render      RenderConfig      `yaml:"render"`
	Encode      EncodeConfig      `yaml:"encode"`
	Paths       PathsConfig       `yaml:"paths"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
}

type ToolsConfig struct {
	Soffice string `yaml:"soffice"`
	FFmpeg  string `yaml:"ffmpeg"`
}

type TTSConfig struct {
	Voice string `yaml:"voice"`
}

type RenderConfig struct {
	DPI int `yaml:"dpi"`
}

type EncodeConfig struct {
	VideoCodec string `yaml:"video_codec"`
}

// PathsConfig is only consulted by watch mode; the convert command takes
// explicit input/output paths instead.
type PathsConfig struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type PerformanceConfig struct {
	RasterWorkers int `yaml:"raster_workers"`
	MaxConcurrent int `yaml:"max_concurrent"`
}

// Default returns a Config with every field set to its built-in default.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads a YAML config file and fills in defaults for anything unset.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Render.DPI < 0 {
		return fmt.Errorf("render.dpi must be positive")
	}
	if c.Performance.RasterWorkers < 0 {
		return fmt.Errorf("performance.raster_workers must be positive")
	}
	if c.Performance.MaxConcurrent < 0 {
		return fmt.Errorf("performance.max_concurrent must be positive")
	}

	c.applyDefaults()
	return nil
}

// ValidateWatch checks the extra fields watch mode relies on.
func (c *Config) ValidateWatch() error {
	if c.Paths.Input == "" {
		return fmt.Errorf("paths.input is required for watch mode")
	}
	if c.Paths.Output == "" {
		return fmt.Errorf("paths.output is required for watch mode")
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Tools.Soffice == "" {
		c.Tools.Soffice = "/usr/bin/soffice"
	}
	if c.Tools.FFmpeg == "" {
		c.Tools.FFmpeg = "/usr/bin/ffmpeg"
	}
	if c.TTS.Voice == "" {
		c.TTS.Voice = "zh-CN-XiaoxiaoNeural"
	}
	if c.Render.DPI == 0 {
		c.Render.DPI = 75
	}
	if c.Encode.VideoCodec == "" {
		c.Encode.VideoCodec = "libx264"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Performance.RasterWorkers == 0 {
		c.Performance.RasterWorkers = 4
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 1
	}
}
