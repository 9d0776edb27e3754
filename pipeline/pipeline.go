// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pipeline

import (
	"fmt"
	"image"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/rendergraph"
	"github.com/gogpu/rendergraph/backend/software"
	"github.com/gogpu/rendergraph/descriptor"
	"github.com/gogpu/rendergraph/internal/cache"
	"github.com/gogpu/rendergraph/internal/parallel"
)

// resources are the logical resources of the map frame.
type resources struct {
	shadow       *rendergraph.Resource
	scene        *rendergraph.Resource
	atmosphere   *rendergraph.Resource
	bloom        *rendergraph.Resource
	bloomScratch *rendergraph.Resource
	history      [2]*rendergraph.Resource
	dof          *rendergraph.Resource
	dofScratch   *rendergraph.Resource
	screen       *rendergraph.Resource
}

// Pipeline is a map frame renderer built on a render graph:
//
//	shadow -> terrain -> atmosphere -> [bloom] -> taa -> [dof] -> composite -> screen
//
// Bloom and depth of field are optional; turning one off unbinds its
// composite input and the graph culls the pass. Temporal AA reads and
// writes two persistent history textures that swap roles every frame.
//
// Pipeline is not safe for concurrent use.
type Pipeline struct {
	graph *rendergraph.RenderGraph
	st    *frameState
	res   resources

	shadow     *shadowPass
	terrain    *terrainPass
	atmosphere *atmospherePass
	bloom      *bloomPass
	taa        *taaPass
	dof        *dofPass
	composite  *compositePass

	// cur is the history texture the next frame resolves into.
	cur int
}

// New creates a pipeline whose physical resources come from builder.
func New(builder rendergraph.Builder, cfg Config) (*Pipeline, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g := rendergraph.New(builder, rendergraph.Config{PoolTTL: cfg.PoolTTL})
	p := &Pipeline{
		graph: g,
		st: &frameState{
			cfg:        cfg,
			tilesReady: true,
			tiles:      newTileCache(cfg.TileCacheSize),
		},
	}
	if cfg.Workers >= 0 {
		p.st.workers = parallel.NewPool(cfg.Workers)
	}

	d := descriptorsFor(cfg)
	p.res = resources{
		shadow:       g.NewResource("shadow", d.shadow),
		scene:        g.NewResource("scene", d.scene),
		atmosphere:   g.NewResource("atmosphere", d.color("atmosphere")),
		bloom:        g.NewResource("bloom", d.color("bloom")),
		bloomScratch: g.NewResource("bloom.scratch", d.quarter("bloom.scratch")),
		history: [2]*rendergraph.Resource{
			g.NewResource("history.0", d.color("history.0"), rendergraph.Persistent()),
			g.NewResource("history.1", d.color("history.1"), rendergraph.Persistent()),
		},
		dof:        g.NewResource("dof", d.color("dof")),
		dofScratch: g.NewResource("dof.scratch", d.quarter("dof.scratch")),
		screen:     g.NewResource("screen", d.color("screen"), rendergraph.Persistent(), rendergraph.UsedExternally()),
	}

	p.shadow = &shadowPass{st: p.st}
	p.shadow.slots.Map = rendergraph.OutputSlot(p.res.shadow)

	p.terrain = &terrainPass{st: p.st}
	p.terrain.slots.Shadow = rendergraph.InputSlot(p.res.shadow)
	p.terrain.slots.Scene = rendergraph.OutputSlot(p.res.scene)

	p.atmosphere = &atmospherePass{st: p.st}
	p.atmosphere.slots.Scene = rendergraph.InputSlot(p.res.scene)
	p.atmosphere.slots.Out = rendergraph.OutputSlot(p.res.atmosphere)

	p.bloom = &bloomPass{st: p.st}
	p.bloom.slots.Source = rendergraph.InputSlot(p.res.atmosphere)
	p.bloom.slots.Scratch = rendergraph.LocalSlot(p.res.bloomScratch)
	p.bloom.slots.Out = rendergraph.OutputSlot(p.res.bloom)

	p.taa = &taaPass{st: p.st}
	p.taa.slots.Current = rendergraph.InputSlot(p.res.atmosphere)
	p.taa.slots.History = rendergraph.InputSlot(nil)
	p.taa.slots.Resolved = rendergraph.OutputSlot(nil)

	p.dof = &dofPass{st: p.st}
	p.dof.slots.Source = rendergraph.InputSlot(nil)
	p.dof.slots.Scratch = rendergraph.LocalSlot(p.res.dofScratch)
	p.dof.slots.Out = rendergraph.OutputSlot(p.res.dof)

	p.composite = &compositePass{st: p.st}
	p.composite.slots.Color = rendergraph.InputSlot(nil)
	p.composite.slots.Bloom = rendergraph.InputSlot(nil)
	p.composite.slots.Screen = rendergraph.OutputSlot(p.res.screen)

	for _, pass := range []rendergraph.Pass{p.shadow, p.terrain, p.atmosphere, p.bloom, p.taa, p.dof, p.composite} {
		if err := g.AddPass(pass); err != nil {
			p.st.workers.Close()
			return nil, fmt.Errorf("pipeline: %w", err)
		}
	}
	p.bindFrame()
	return p, nil
}

// frameDescriptors are the descriptors derived from a config.
type frameDescriptors struct {
	cfg    Config
	shadow descriptor.Texture
	scene  descriptor.Target
}

func descriptorsFor(cfg Config) frameDescriptors {
	return frameDescriptors{
		cfg:    cfg,
		shadow: descriptor.NewTexture2D("shadow", cfg.ShadowMapSize, cfg.ShadowMapSize, gputypes.TextureFormatDepth24PlusStencil8),
		scene:  descriptor.NewTarget("scene", cfg.Width, cfg.Height, cfg.Format).WithDepth(gputypes.TextureFormatDepth24PlusStencil8),
	}
}

func (d frameDescriptors) color(label string) descriptor.Texture {
	return descriptor.NewTexture2D(label, d.cfg.Width, d.cfg.Height, d.cfg.Format)
}

func (d frameDescriptors) quarter(label string) descriptor.Texture {
	return d.color(label).Scaled(1, 4)
}

// bindFrame points the per-frame slots at this frame's resources.
func (p *Pipeline) bindFrame() {
	cfg := p.st.cfg
	resolved, prev := p.res.history[p.cur], p.res.history[1-p.cur]

	p.taa.slots.History.Bind(prev)
	p.taa.slots.Resolved.Bind(resolved)
	p.dof.slots.Source.Bind(resolved)

	if cfg.DepthOfField {
		p.composite.slots.Color.Bind(p.res.dof)
	} else {
		p.composite.slots.Color.Bind(resolved)
	}
	if cfg.Bloom {
		p.composite.slots.Bloom.Bind(p.res.bloom)
	} else {
		p.composite.slots.Bloom.Bind(nil)
	}
	p.st.pan = float64(p.graph.FrameIndex()) * cfg.PanSpeed
}

// RenderFrame renders one frame and returns its schedule.
func (p *Pipeline) RenderFrame() (*rendergraph.Schedule, error) {
	p.bindFrame()
	p.st.taaRan = false
	sched, err := p.graph.Execute()
	if p.st.taaRan {
		p.st.historyValid = true
		p.cur = 1 - p.cur
	}
	return sched, err
}

// Resize changes the viewport size. It reports whether anything changed;
// resizing to the current size is a no-op. The history is invalidated on
// change.
func (p *Pipeline) Resize(width, height uint32) (bool, error) {
	if width == 0 || height == 0 {
		return false, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	cfg := &p.st.cfg
	if cfg.Width == width && cfg.Height == height {
		return false, nil
	}
	cfg.Width, cfg.Height = width, height

	d := descriptorsFor(*cfg)
	p.res.scene.SetDescriptor(d.scene)
	for _, r := range []*rendergraph.Resource{
		p.res.atmosphere, p.res.bloom, p.res.history[0], p.res.history[1], p.res.dof, p.res.screen,
	} {
		r.SetDescriptor(d.color(r.Name()))
	}
	p.res.bloomScratch.SetDescriptor(d.quarter(p.res.bloomScratch.Name()))
	p.res.dofScratch.SetDescriptor(d.quarter(p.res.dofScratch.Name()))
	p.st.historyValid = false

	rendergraph.Logger().Info("pipeline: resized", "width", width, "height", height)
	return true, nil
}

// SetBloom enables or disables the bloom pass from the next frame on.
func (p *Pipeline) SetBloom(on bool) {
	p.st.cfg.Bloom = on
	rendergraph.Logger().Debug("pipeline: bloom", "enabled", on)
}

// SetDepthOfField enables or disables the depth of field pass from the
// next frame on.
func (p *Pipeline) SetDepthOfField(on bool) {
	p.st.cfg.DepthOfField = on
	rendergraph.Logger().Debug("pipeline: depth of field", "enabled", on)
}

// SetTilesReady tells the terrain pass whether map tiles are available.
// While they are not, the terrain is drawn as a flat placeholder.
func (p *Pipeline) SetTilesReady(ready bool) {
	p.st.tilesReady = ready
}

// Config returns the current configuration, including toggles and size.
func (p *Pipeline) Config() Config { return p.st.cfg }

// HistoryValid reports whether the temporal history holds a previous frame
// of the current size.
func (p *Pipeline) HistoryValid() bool { return p.st.historyValid }

// Graph returns the underlying render graph.
func (p *Pipeline) Graph() *rendergraph.RenderGraph { return p.graph }

// Screen returns the used-externally screen resource.
func (p *Pipeline) Screen() *rendergraph.Resource { return p.res.screen }

// ScreenImage returns the screen contents when running on the software
// backend, or nil otherwise.
func (p *Pipeline) ScreenImage() *image.RGBA {
	if t, ok := p.res.screen.Physical().(*software.Texture); ok {
		return t.RGBA()
	}
	return nil
}

// TileStats returns statistics of the terrain height tile cache.
func (p *Pipeline) TileStats() cache.Stats { return p.st.tiles.Stats() }

// Close disposes every physical resource of the pipeline and stops its
// workers.
func (p *Pipeline) Close() error {
	err := p.graph.Close()
	if err == nil {
		p.st.workers.Close()
		p.st.tiles.Clear()
	}
	return err
}
