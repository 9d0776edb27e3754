// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Command mapframe renders map frames through the render graph pipeline.
//
// Usage:
//
//	mapframe -config mapframe.hcl -frames 10 -out frame.png
//
// Events in the configuration file resize the viewport or toggle effects
// before a given frame. On the software backend the last frame is written
// as a PNG image.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/png"
	"io"
	"log/slog"
	"os"

	"github.com/gogpu/rendergraph"
	"github.com/gogpu/rendergraph/backend"
	_ "github.com/gogpu/rendergraph/backend/native" // registers the noop backend
	"github.com/gogpu/rendergraph/internal/config"
	"github.com/gogpu/rendergraph/pipeline"
)

type options struct {
	configPath string
	backend    string
	frames     int
	output     string
	dot        string
	verbose    bool
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "HCL configuration file")
	flag.StringVar(&opts.backend, "backend", "", "render backend (software, noop)")
	flag.IntVar(&opts.frames, "frames", 0, "number of frames to render")
	flag.StringVar(&opts.output, "out", "", "PNG file for the last frame")
	flag.StringVar(&opts.dot, "dot", "", "Graphviz file for the last frame schedule")
	flag.BoolVar(&opts.verbose, "v", false, "debug logging")
	flag.Parse()

	if err := run(opts, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "mapframe:", err)
		os.Exit(1)
	}
}

func run(opts options, logOut io.Writer) error {
	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level}))
	rendergraph.SetLogger(log)

	file := config.Default()
	if opts.configPath != "" {
		var err error
		if file, err = config.Load(opts.configPath); err != nil {
			return err
		}
	}
	if opts.backend != "" {
		file.Backend = opts.backend
	}
	if opts.frames > 0 {
		file.Frames = opts.frames
	}
	if opts.output != "" {
		file.Output = opts.output
	}

	be, err := backend.Open(file.Backend)
	if err != nil {
		return err
	}
	defer be.Close()
	builder, err := be.Builder()
	if err != nil {
		return err
	}

	p, err := pipeline.New(builder, file.PipelineConfig())
	if err != nil {
		return err
	}
	defer func() { _ = p.Close() }()

	var sched *rendergraph.Schedule
	for frame := range file.Frames {
		for _, e := range file.EventsAt(frame) {
			if err := apply(p, e); err != nil {
				return err
			}
			log.Info("event", "frame", frame, "event", e.String())
		}
		s, err := p.RenderFrame()
		if s == nil {
			return fmt.Errorf("frame %d: %w", frame, err)
		}
		if err != nil {
			log.Warn("frame rendered with errors", "frame", frame, "err", err)
		}
		sched = s
		log.Info("frame", "stats", p.Graph().Stats().String())
	}
	log.Info("done", "pool", p.Graph().PoolStats().String(), "tiles", p.TileStats().String())

	if opts.dot != "" && sched != nil {
		if err := os.WriteFile(opts.dot, []byte(sched.DOT()), 0o644); err != nil { //nolint:gosec // user-chosen output file
			return err
		}
	}
	if file.Output != "" {
		return writePNG(p, file.Output, log)
	}
	return nil
}

// apply performs a configured event on the pipeline.
func apply(p *pipeline.Pipeline, e *config.Event) error {
	switch e.Kind {
	case config.EventResize:
		_, err := p.Resize(uint32(e.Width), uint32(e.Height)) //nolint:gosec // validated positive
		return err
	case config.EventBloom:
		p.SetBloom(e.Enabled)
	case config.EventDOF:
		p.SetDepthOfField(e.Enabled)
	case config.EventTiles:
		p.SetTilesReady(e.Enabled)
	default:
		return fmt.Errorf("%w: event kind %q", config.ErrInvalid, e.Kind)
	}
	return nil
}

var errNoImage = errors.New("backend has no readable screen image")

func writePNG(p *pipeline.Pipeline, path string, log *slog.Logger) error {
	img := p.ScreenImage()
	if img == nil {
		log.Warn("skipping PNG output", "path", path, "err", errNoImage)
		return nil
	}
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Info("saved", "path", path, "width", img.Rect.Dx(), "height", img.Rect.Dy())
	return nil
}
