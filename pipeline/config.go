// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pipeline

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/gogpu/gputypes"
	"go.uber.org/multierr"
)

// Default configuration values.
const (
	DefaultWidth         = 1280
	DefaultHeight        = 720
	DefaultShadowMapSize = 512
	DefaultTAABlend      = 0.1
	DefaultFogDensity    = 0.35
	DefaultBloomThresh   = 0.8
	DefaultTileCacheSize = 256
)

// Configuration errors.
var (
	// ErrInvalidSize is returned for zero viewport or shadow map sizes.
	ErrInvalidSize = errors.New("pipeline: invalid size")

	// ErrInvalidConfig is returned for out-of-range tuning values.
	ErrInvalidConfig = errors.New("pipeline: invalid config")
)

// Config holds configuration for a map frame pipeline.
type Config struct {
	// Width and Height are the viewport size in pixels.
	// Default: 1280x720.
	Width  uint32
	Height uint32

	// Format is the colour format of the screen and intermediate targets.
	// Default: RGBA8Unorm.
	Format gputypes.TextureFormat

	// ShadowMapSize is the edge length of the square shadow map.
	// Default: 512.
	ShadowMapSize uint32

	// Bloom and DepthOfField enable the optional post-processing passes.
	Bloom        bool
	DepthOfField bool

	// TAABlend is the weight of the current frame in the temporal
	// accumulation, in (0, 1]. Default: 0.1.
	TAABlend float64

	// FogDensity scales the distance fog, in [0, 1]. Zero disables fog.
	// Nil selects the default 0.35.
	FogDensity *float64

	// BloomThreshold is the luminance above which pixels bloom, in [0, 1].
	// Nil selects the default 0.8.
	BloomThreshold *float64

	// PanSpeed is the camera pan per frame in pixels.
	PanSpeed float64

	// Sky is the fog and background colour.
	Sky color.RGBA

	// Placeholder fills the terrain while tiles are not ready.
	Placeholder color.RGBA

	// PoolTTL is passed to the render graph. Zero selects the default.
	PoolTTL int

	// Workers is the number of goroutines drawing software passes. Zero
	// uses GOMAXPROCS; negative draws on the calling goroutine.
	Workers int

	// TileCacheSize is the number of terrain height tiles kept in memory.
	// Default: 256.
	TileCacheSize int
}

// DefaultConfig returns a Config with all defaults applied.
func DefaultConfig() Config {
	return Config{}.WithDefaults()
}

// Float returns a pointer to v, for the optional fields of Config.
func Float(v float64) *float64 { return &v }

// WithDefaults returns c with unset fields replaced by their defaults.
// New applies it before validating.
func (c Config) WithDefaults() Config {
	if c.Width == 0 {
		c.Width = DefaultWidth
	}
	if c.Height == 0 {
		c.Height = DefaultHeight
	}
	if c.Format == gputypes.TextureFormatUndefined {
		c.Format = gputypes.TextureFormatRGBA8Unorm
	}
	if c.ShadowMapSize == 0 {
		c.ShadowMapSize = DefaultShadowMapSize
	}
	if c.TAABlend == 0 {
		c.TAABlend = DefaultTAABlend
	}
	if c.FogDensity == nil {
		c.FogDensity = Float(DefaultFogDensity)
	}
	if c.BloomThreshold == nil {
		c.BloomThreshold = Float(DefaultBloomThresh)
	}
	if c.TileCacheSize <= 0 {
		c.TileCacheSize = DefaultTileCacheSize
	}
	if c.Sky == (color.RGBA{}) {
		c.Sky = color.RGBA{R: 170, G: 200, B: 230, A: 255}
	}
	if c.Placeholder == (color.RGBA{}) {
		c.Placeholder = color.RGBA{R: 96, G: 96, B: 96, A: 255}
	}
	return c
}

// Validate reports every out-of-range value of a config returned by
// WithDefaults.
func (c Config) Validate() error {
	var errs error
	switch c.Format {
	case gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatBGRA8Unorm:
	default:
		errs = multierr.Append(errs, fmt.Errorf("%w: format %v is not an 8-bit RGBA colour format", ErrInvalidConfig, c.Format))
	}
	if c.TAABlend <= 0 || c.TAABlend > 1 {
		errs = multierr.Append(errs, fmt.Errorf("%w: taa blend %v not in (0, 1]", ErrInvalidConfig, c.TAABlend))
	}
	if fog := c.fog(); fog < 0 || fog > 1 {
		errs = multierr.Append(errs, fmt.Errorf("%w: fog density %v not in [0, 1]", ErrInvalidConfig, fog))
	}
	if th := c.bloomThreshold(); th < 0 || th > 1 {
		errs = multierr.Append(errs, fmt.Errorf("%w: bloom threshold %v not in [0, 1]", ErrInvalidConfig, th))
	}
	if c.PanSpeed < 0 {
		errs = multierr.Append(errs, fmt.Errorf("%w: negative pan speed %v", ErrInvalidConfig, c.PanSpeed))
	}
	return errs
}

func (c Config) fog() float64 {
	if c.FogDensity == nil {
		return DefaultFogDensity
	}
	return *c.FogDensity
}

func (c Config) bloomThreshold() float64 {
	if c.BloomThreshold == nil {
		return DefaultBloomThresh
	}
	return *c.BloomThreshold
}
