package core

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/hubastard/prism/engine/logger"
	"github.com/hubastard/prism/engine/resource"
)

var ErrInvalidConfig = errors.New("core: invalid config")

// PoolSizes is the slot capacity of each resource pool.
type PoolSizes struct {
	Mesh     int `toml:"mesh"`
	Texture  int `toml:"texture"`
	Shader   int `toml:"shader"`
	Pipeline int `toml:"pipeline"`
	Pass     int `toml:"pass"`
}

// Config for the graphics context and the window it renders into.
type Config struct {
	Title        string `toml:"title"`
	Width        int    `toml:"width"`
	Height       int    `toml:"height"`
	Windowed     bool   `toml:"windowed"`
	SwapInterval int    `toml:"swap_interval"`
	HighDPI      bool   `toml:"high_dpi"`

	ColorFormat PixelFormat `toml:"color_format"`
	DepthFormat PixelFormat `toml:"depth_format"`
	SampleCount int         `toml:"sample_count"`
	ClearColor  [4]float32  `toml:"clear_color"`

	PoolSizes PoolSizes `toml:"pool_sizes"`
	// UniformBufferSize is the per-frame uniform ring buffer size (Metal).
	UniformBufferSize int    `toml:"uniform_buffer_size"`
	ScratchCapacity   int    `toml:"scratch_capacity"`
	LogLevel          string `toml:"log_level"`
}

func DefaultConfig() Config {
	return Config{
		Title:        "prism",
		Width:        640,
		Height:       400,
		Windowed:     true,
		SwapInterval: 1,
		ColorFormat:  PixelFormatRGBA8,
		DepthFormat:  PixelFormatDEPTHSTENCIL,
		SampleCount:  1,
		ClearColor:   [4]float32{0, 0, 0, 1},
		PoolSizes: PoolSizes{
			Mesh:     128,
			Texture:  128,
			Shader:   32,
			Pipeline: 64,
			Pass:     16,
		},
		UniformBufferSize: 4 * 1024 * 1024,
		ScratchCapacity:   64 * 1024,
		LogLevel:          "info",
	}
}

// ParseConfig decodes toml on top of DefaultConfig and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, cfg.Validate()
}

// LoadConfig reads a toml config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("load config: %w", err)
	}
	return ParseConfig(data)
}

// PoolSize returns the capacity configured for a resource type.
func (c Config) PoolSize(t resource.Type) int {
	switch t {
	case ResourceMesh:
		return c.PoolSizes.Mesh
	case ResourceTexture:
		return c.PoolSizes.Texture
	case ResourceShader:
		return c.PoolSizes.Shader
	case ResourcePipeline:
		return c.PoolSizes.Pipeline
	case ResourcePass:
		return c.PoolSizes.Pass
	}
	return 0
}

// Level returns the parsed log level.
func (c Config) Level() logger.Level {
	l, err := logger.ParseLevel(c.LogLevel)
	if err != nil {
		return logger.LevelInfo
	}
	return l
}

// DisplayAttrs derives the requested display attributes.
func (c Config) DisplayAttrs() DisplayAttrs {
	return DisplayAttrs{
		WindowWidth:       c.Width,
		WindowHeight:      c.Height,
		FramebufferWidth:  c.Width,
		FramebufferHeight: c.Height,
		ColorPixelFormat:  c.ColorFormat,
		DepthPixelFormat:  c.DepthFormat,
		SampleCount:       c.SampleCount,
		Windowed:          c.Windowed,
		SwapInterval:      c.SwapInterval,
		WindowTitle:       c.Title,
	}
}

func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	if !c.ColorFormat.IsValidRenderTargetColorFormat() {
		return fmt.Errorf("%w: color format %s", ErrInvalidConfig, c.ColorFormat)
	}
	if c.DepthFormat != PixelFormatNone && !c.DepthFormat.IsValidRenderTargetDepthFormat() {
		return fmt.Errorf("%w: depth format %s", ErrInvalidConfig, c.DepthFormat)
	}
	if c.SampleCount < 1 {
		return fmt.Errorf("%w: sample count %d", ErrInvalidConfig, c.SampleCount)
	}
	p := c.PoolSizes
	for _, n := range []int{p.Mesh, p.Texture, p.Shader, p.Pipeline, p.Pass} {
		if n <= 0 || n >= 0xFFFF {
			return fmt.Errorf("%w: pool size %d", ErrInvalidConfig, n)
		}
	}
	if c.UniformBufferSize < 256 {
		return fmt.Errorf("%w: uniform buffer size %d", ErrInvalidConfig, c.UniformBufferSize)
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}
