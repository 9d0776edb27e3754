// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package config loads the HCL configuration of the mapframe command.
//
// A configuration file looks like:
//
//	backend = "software"
//	frames  = 8
//	output  = "frame.png"
//
//	viewport {
//	  width  = 640
//	  height = 360
//	  format = "rgba8"
//	}
//
//	effects {
//	  bloom       = true
//	  fog_density = 0.4
//	}
//
//	event "resize" {
//	  frame  = 4
//	  width  = 320
//	  height = 180
//	}
//
//	event "tiles" {
//	  frame   = 0
//	  enabled = false
//	}
//
// Every attribute and block is optional.
package config

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"go.uber.org/multierr"

	"github.com/gogpu/rendergraph"
	"github.com/gogpu/rendergraph/pipeline"
)

// Defaults applied to omitted values.
const (
	DefaultBackend = "software"
	DefaultFrames  = 1
	DefaultFormat  = "rgba8"
)

// Event kinds.
const (
	EventResize = "resize"
	EventBloom  = "bloom"
	EventDOF    = "dof"
	EventTiles  = "tiles"
)

var (
	// ErrParse is returned when a file is not valid HCL or does not match
	// the configuration schema.
	ErrParse = errors.New("config: parse failed")

	// ErrInvalid is returned for values out of range.
	ErrInvalid = errors.New("config: invalid value")
)

// File is a decoded configuration file.
type File struct {
	Backend       string    `hcl:"backend,optional"`
	Frames        int       `hcl:"frames,optional"`
	Output        string    `hcl:"output,optional"`
	ShadowMapSize int       `hcl:"shadow_map_size,optional"`
	PoolTTL       int       `hcl:"pool_ttl,optional"`
	PanSpeed      float64   `hcl:"pan_speed,optional"`
	Workers       int       `hcl:"workers,optional"`
	TileCacheSize int       `hcl:"tile_cache_size,optional"`
	Viewport      *Viewport `hcl:"viewport,block"`
	Effects       *Effects  `hcl:"effects,block"`
	Events        []*Event  `hcl:"event,block"`
}

// Viewport is the initial screen size and format.
type Viewport struct {
	Width  int    `hcl:"width,optional"`
	Height int    `hcl:"height,optional"`
	Format string `hcl:"format,optional"`
}

// Effects tunes the post-processing passes.
type Effects struct {
	Bloom          bool     `hcl:"bloom,optional"`
	BloomThreshold *float64 `hcl:"bloom_threshold,optional"`
	DepthOfField   bool     `hcl:"depth_of_field,optional"`
	TAABlend       float64  `hcl:"taa_blend,optional"`
	FogDensity     *float64 `hcl:"fog_density,optional"`
}

// Event is a change applied before a given frame is rendered.
type Event struct {
	Kind    string `hcl:"kind,label"`
	Frame   int    `hcl:"frame"`
	Width   int    `hcl:"width,optional"`
	Height  int    `hcl:"height,optional"`
	Enabled bool   `hcl:"enabled,optional"`
}

func (e *Event) String() string {
	switch e.Kind {
	case EventResize:
		return fmt.Sprintf("%s@%d(%dx%d)", e.Kind, e.Frame, e.Width, e.Height)
	default:
		return fmt.Sprintf("%s@%d(%t)", e.Kind, e.Frame, e.Enabled)
	}
}

// Load parses, defaults and validates the file at path.
func Load(path string) (*File, error) {
	rendergraph.Logger().Debug("config: loading", "path", path)
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %s: %s", ErrParse, path, diags.Error())
	}
	return decode(f, path)
}

// Parse is like Load but reads the configuration from src. The filename
// is only used in diagnostics.
func Parse(src []byte, filename string) (*File, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %s: %s", ErrParse, filename, diags.Error())
	}
	return decode(f, filename)
}

func decode(f *hcl.File, filename string) (*File, error) {
	var cfg File
	if diags := gohcl.DecodeBody(f.Body, nil, &cfg); diags.HasErrors() {
		return nil, fmt.Errorf("%w: %s: %s", ErrParse, filename, diags.Error())
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rendergraph.Logger().Debug("config: loaded", "path", filename, "backend", cfg.Backend, "frames", cfg.Frames, "events", len(cfg.Events))
	return &cfg, nil
}

// Default returns the configuration of an empty file.
func Default() *File {
	var f File
	f.applyDefaults()
	return &f
}

func (f *File) applyDefaults() {
	if f.Backend == "" {
		f.Backend = DefaultBackend
	}
	if f.Frames == 0 {
		f.Frames = DefaultFrames
	}
	if f.Viewport == nil {
		f.Viewport = &Viewport{}
	}
	if f.Viewport.Width == 0 {
		f.Viewport.Width = pipeline.DefaultWidth
	}
	if f.Viewport.Height == 0 {
		f.Viewport.Height = pipeline.DefaultHeight
	}
	if f.Viewport.Format == "" {
		f.Viewport.Format = DefaultFormat
	}
	if f.Effects == nil {
		f.Effects = &Effects{}
	}
}

// Validate reports every invalid value of a defaulted file.
func (f *File) Validate() error {
	var errs error
	invalid := func(format string, args ...any) {
		errs = multierr.Append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	switch f.Backend {
	case "software", "noop":
	default:
		invalid("unknown backend %q", f.Backend)
	}
	if f.Frames < 0 {
		invalid("negative frame count %d", f.Frames)
	}
	if f.ShadowMapSize < 0 {
		invalid("negative shadow map size %d", f.ShadowMapSize)
	}
	if f.PoolTTL < 0 {
		invalid("negative pool ttl %d", f.PoolTTL)
	}
	if f.TileCacheSize < 0 {
		invalid("negative tile cache size %d", f.TileCacheSize)
	}
	if f.Viewport.Width < 0 || f.Viewport.Height < 0 {
		invalid("viewport %dx%d", f.Viewport.Width, f.Viewport.Height)
	}
	if _, ok := formats[f.Viewport.Format]; !ok {
		invalid("unknown format %q", f.Viewport.Format)
	}

	for _, e := range f.Events {
		switch {
		case e.Frame < 0 || e.Frame >= f.Frames:
			invalid("event %s outside frames [0, %d)", e, f.Frames)
		case e.Kind == EventResize && (e.Width <= 0 || e.Height <= 0):
			invalid("event %s needs a positive size", e)
		case e.Kind != EventResize && e.Kind != EventBloom && e.Kind != EventDOF && e.Kind != EventTiles:
			invalid("unknown event kind %q", e.Kind)
		}
	}
	return errs
}

var formats = map[string]gputypes.TextureFormat{
	"rgba8": gputypes.TextureFormatRGBA8Unorm,
	"bgra8": gputypes.TextureFormatBGRA8Unorm,
}

// PipelineConfig converts the file to a pipeline configuration. Omitted
// values are left unset; pipeline.New fills them in with
// pipeline.Config.WithDefaults.
func (f *File) PipelineConfig() pipeline.Config {
	return pipeline.Config{
		Width:          uint32(f.Viewport.Width),
		Height:         uint32(f.Viewport.Height),
		Format:         formats[f.Viewport.Format],
		ShadowMapSize:  uint32(max(f.ShadowMapSize, 0)),
		Bloom:          f.Effects.Bloom,
		DepthOfField:   f.Effects.DepthOfField,
		TAABlend:       f.Effects.TAABlend,
		FogDensity:     f.Effects.FogDensity,
		BloomThreshold: f.Effects.BloomThreshold,
		PanSpeed:       f.PanSpeed,
		PoolTTL:        f.PoolTTL,
		Workers:        f.Workers,
		TileCacheSize:  f.TileCacheSize,
	}
}

// EventsAt returns the events scheduled before frame, in file order.
func (f *File) EventsAt(frame int) []*Event {
	var out []*Event
	for _, e := range f.Events {
		if e.Frame == frame {
			out = append(out, e)
		}
	}
	return out
}
