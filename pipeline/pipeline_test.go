// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pipeline

import (
	"errors"
	"image/color"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/multierr"

	"github.com/gogpu/rendergraph"
	"github.com/gogpu/rendergraph/backend/native"
	"github.com/gogpu/rendergraph/backend/software"
)

func smallConfig() Config {
	return Config{Width: 64, Height: 48, ShadowMapSize: 32, PanSpeed: 2}
}

func newSoftware(t *testing.T, cfg Config) (*Pipeline, *software.Builder) {
	t.Helper()
	b := software.NewBuilder()
	p, err := New(b, cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = p.Close() })
	return p, b
}

func render(t *testing.T, p *Pipeline) *rendergraph.Schedule {
	t.Helper()
	sched, err := p.RenderFrame()
	if err != nil {
		t.Fatalf("RenderFrame() error = %v", err)
	}
	return sched
}

func TestPipeline_DefaultSchedule(t *testing.T) {
	p, _ := newSoftware(t, smallConfig())
	sched := render(t, p)

	want := []string{PassShadow, PassTerrain, PassAtmosphere, PassTAA, PassComposite}
	if diff := cmp.Diff(want, sched.Order); diff != "" {
		t.Errorf("Order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{PassBloom, PassDOF}, sched.Culled); diff != "" {
		t.Errorf("Culled mismatch (-want +got):\n%s", diff)
	}
}

func TestPipeline_OptionalPasses(t *testing.T) {
	p, _ := newSoftware(t, smallConfig())

	tests := []struct {
		name  string
		bloom bool
		dof   bool
		want  []string
	}{
		{"bloom", true, false, []string{PassShadow, PassTerrain, PassAtmosphere, PassBloom, PassTAA, PassComposite}},
		{"dof", false, true, []string{PassShadow, PassTerrain, PassAtmosphere, PassTAA, PassDOF, PassComposite}},
		{"both", true, true, []string{PassShadow, PassTerrain, PassAtmosphere, PassBloom, PassTAA, PassDOF, PassComposite}},
		{"none", false, false, []string{PassShadow, PassTerrain, PassAtmosphere, PassTAA, PassComposite}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p.SetBloom(tt.bloom)
			p.SetDepthOfField(tt.dof)
			sched := render(t, p)
			if diff := cmp.Diff(tt.want, sched.Order); diff != "" {
				t.Errorf("Order mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPipeline_HistoryPingPong(t *testing.T) {
	p, _ := newSoftware(t, smallConfig())
	if p.HistoryValid() {
		t.Fatal("history valid before the first frame")
	}

	render(t, p)
	h0, h1 := p.res.history[0].Physical(), p.res.history[1].Physical()
	if h0 == nil || h1 == nil {
		t.Fatal("history textures not attached")
	}
	if !p.HistoryValid() {
		t.Error("history not valid after a frame")
	}
	if p.taa.slots.Resolved.Resource() != p.res.history[0] {
		t.Error("frame 0 did not resolve into history.0")
	}

	render(t, p)
	if p.taa.slots.Resolved.Resource() != p.res.history[1] || p.taa.slots.History.Resource() != p.res.history[0] {
		t.Error("history roles did not swap on frame 1")
	}
	render(t, p)
	if p.res.history[0].Physical() != h0 || p.res.history[1].Physical() != h1 {
		t.Error("persistent history textures were reallocated")
	}
}

func TestPipeline_ResizeIdempotent(t *testing.T) {
	p, b := newSoftware(t, smallConfig())
	render(t, p)

	changed, err := p.Resize(64, 48)
	if err != nil || changed {
		t.Fatalf("Resize(same) = %v, %v; want false, nil", changed, err)
	}

	for range 2 {
		if _, err := p.Resize(80, 60); err != nil {
			t.Fatalf("Resize() error = %v", err)
		}
		render(t, p)
	}
	afterResize := b.Created()
	render(t, p)
	if b.Created() != afterResize {
		t.Errorf("steady frames allocated %d resources", b.Created()-afterResize)
	}
	if img := p.ScreenImage(); img == nil || img.Rect.Dx() != 80 || img.Rect.Dy() != 60 {
		t.Errorf("screen image = %v, want 80x60", img)
	}
	if got := p.Config(); got.Width != 80 || got.Height != 60 {
		t.Errorf("Config() size = %dx%d, want 80x60", got.Width, got.Height)
	}

	if _, err := p.Resize(0, 10); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("Resize(0, 10) error = %v, want ErrInvalidSize", err)
	}
}

func TestPipeline_ResizeInvalidatesHistory(t *testing.T) {
	p, _ := newSoftware(t, smallConfig())
	render(t, p)
	if _, err := p.Resize(32, 32); err != nil {
		t.Fatalf("Resize() error = %v", err)
	}
	if p.HistoryValid() {
		t.Error("history still valid after resize")
	}
	render(t, p)
	if !p.HistoryValid() {
		t.Error("history not revalidated after a frame")
	}
}

func TestPipeline_PlaceholderWhileTilesLoad(t *testing.T) {
	cfg := smallConfig()
	p, _ := newSoftware(t, cfg)
	p.SetTilesReady(false)
	render(t, p)

	c := p.Config()
	want := mix(c.Placeholder, c.Sky, *c.FogDensity)
	img := p.ScreenImage()
	for _, pt := range [][2]int{{0, 0}, {31, 20}, {63, 47}} {
		if got := img.RGBAAt(pt[0], pt[1]); got != want {
			t.Errorf("screen(%d,%d) = %v, want fogged placeholder %v", pt[0], pt[1], got, want)
		}
	}

	p.SetTilesReady(true)
	render(t, p)
	same := true
	for y := range 48 {
		for x := range 64 {
			if img := p.ScreenImage(); img.RGBAAt(x, y) != want {
				same = false
			}
		}
	}
	if same {
		t.Error("terrain not drawn once tiles are ready")
	}
}

func TestPipeline_BloomBrightens(t *testing.T) {
	cfg := smallConfig()
	cfg.BloomThreshold = Float(0.01)
	plain, _ := newSoftware(t, cfg)
	render(t, plain)

	cfg.Bloom = true
	bloomed, _ := newSoftware(t, cfg)
	render(t, bloomed)

	a, b := plain.ScreenImage(), bloomed.ScreenImage()
	var sumA, sumB int
	for i := range a.Pix {
		sumA += int(a.Pix[i])
		sumB += int(b.Pix[i])
	}
	if sumB <= sumA {
		t.Errorf("bloom did not brighten the frame: %d <= %d", sumB, sumA)
	}
}

func TestPipeline_ConfigValidation(t *testing.T) {
	cfg := smallConfig()
	cfg.TAABlend = 2
	cfg.FogDensity = Float(-1)
	cfg.Format = gputypes.TextureFormatR8Unorm

	_, err := New(software.NewBuilder(), cfg)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("New() error = %v, want ErrInvalidConfig", err)
	}
	if n := len(multierr.Errors(err)); n != 3 {
		t.Errorf("got %d errors, want 3: %v", n, err)
	}
}

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	if c.Width != DefaultWidth || c.Height != DefaultHeight || c.ShadowMapSize != DefaultShadowMapSize {
		t.Errorf("DefaultConfig() size = %dx%d shadow %d", c.Width, c.Height, c.ShadowMapSize)
	}
	if c.Format != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("DefaultConfig().Format = %v", c.Format)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
}

func TestConfig_WithDefaultsKeepsZero(t *testing.T) {
	c := Config{FogDensity: Float(0), BloomThreshold: Float(0)}.WithDefaults()
	if *c.FogDensity != 0 || *c.BloomThreshold != 0 {
		t.Errorf("WithDefaults() fog %v threshold %v, want 0 0", *c.FogDensity, *c.BloomThreshold)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}

	d := Config{}.WithDefaults()
	if *d.FogDensity != DefaultFogDensity || *d.BloomThreshold != DefaultBloomThresh {
		t.Errorf("WithDefaults() fog %v threshold %v, want %v %v",
			*d.FogDensity, *d.BloomThreshold, DefaultFogDensity, DefaultBloomThresh)
	}
}

func TestPipeline_ZeroFog(t *testing.T) {
	cfg := smallConfig()
	cfg.FogDensity = Float(0)
	p, _ := newSoftware(t, cfg)
	p.SetTilesReady(false)
	render(t, p)

	want := p.Config().Placeholder
	img := p.ScreenImage()
	for _, pt := range [][2]int{{0, 0}, {31, 20}, {63, 47}} {
		if got := img.RGBAAt(pt[0], pt[1]); got != want {
			t.Errorf("screen(%d,%d) = %v, want unfogged placeholder %v", pt[0], pt[1], got, want)
		}
	}
}

func TestPipeline_Close(t *testing.T) {
	p, _ := newSoftware(t, smallConfig())
	render(t, p)
	screen := p.Screen().Physical().(*software.Texture)
	if err := p.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !screen.IsDisposed() {
		t.Error("screen not disposed on Close")
	}
	if _, err := p.RenderFrame(); !errors.Is(err, rendergraph.ErrClosed) {
		t.Errorf("RenderFrame() after Close error = %v, want ErrClosed", err)
	}
}

func TestPipeline_NoopBackend(t *testing.T) {
	be := native.NewNoopBackend()
	if err := be.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer be.Close()
	builder, err := be.Builder()
	if err != nil {
		t.Fatalf("Builder() error = %v", err)
	}

	cfg := smallConfig()
	cfg.Bloom, cfg.DepthOfField = true, true
	p, err := New(builder, cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	for range 3 {
		render(t, p)
	}
	if _, ok := p.Screen().Physical().(*native.Texture); !ok {
		t.Errorf("screen physical = %T, want *native.Texture", p.Screen().Physical())
	}
	if p.ScreenImage() != nil {
		t.Error("ScreenImage() should be nil on the noop backend")
	}
	if err := p.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
}

func TestPaintHelpers(t *testing.T) {
	red := color.RGBA{R: 200, A: 255}
	blue := color.RGBA{B: 100, A: 255}
	if got := mix(red, blue, 0); got != red {
		t.Errorf("mix(t=0) = %v", got)
	}
	if got := mix(red, blue, 1); got != blue {
		t.Errorf("mix(t=1) = %v", got)
	}
	if got := shade(red, 0.5); got != (color.RGBA{R: 100, A: 255}) {
		t.Errorf("shade() = %v", got)
	}
	for _, h := range []float64{0, 0.2, 0.5, 0.9, 1} {
		if terrainColor(h).A != 255 {
			t.Errorf("terrainColor(%v) not opaque", h)
		}
	}
	if h := heightAt(123, 456); h < 0 || h > 1 {
		t.Errorf("heightAt() = %v, want [0, 1]", h)
	}
}

func TestPipeline_TileCache(t *testing.T) {
	cfg := smallConfig()
	cfg.PanSpeed = 0
	p, _ := newSoftware(t, cfg)

	render(t, p)
	if s := p.TileStats(); s.Misses != 4 || s.Hits != 0 || s.Len != 4 {
		t.Errorf("after frame 0: %v, want 4 misses", s)
	}
	render(t, p)
	if s := p.TileStats(); s.Misses != 4 || s.Hits != 4 {
		t.Errorf("after frame 1: %v, want 4 hits", s)
	}
}

func TestPipeline_TileCachePanning(t *testing.T) {
	cfg := smallConfig()
	cfg.PanSpeed = 16
	cfg.TileCacheSize = 4
	p, _ := newSoftware(t, cfg)

	for range 6 {
		render(t, p)
	}
	s := p.TileStats()
	if s.Len > 4 {
		t.Errorf("cache holds %d tiles, capacity 4", s.Len)
	}
	if s.Evictions == 0 {
		t.Error("panning past the cache capacity evicted nothing")
	}
}

func TestPipeline_ParallelMatchesInline(t *testing.T) {
	cfg := smallConfig()
	cfg.Bloom = true
	cfg.Workers = 4
	par, _ := newSoftware(t, cfg)
	cfg.Workers = -1
	inline, _ := newSoftware(t, cfg)

	for range 3 {
		render(t, par)
		render(t, inline)
	}
	if diff := cmp.Diff(inline.ScreenImage().Pix, par.ScreenImage().Pix); diff != "" {
		t.Errorf("parallel frame differs from inline frame (-inline +parallel):\n%s", diff)
	}
}

func TestFloorDiv(t *testing.T) {
	tests := []struct{ a, b, want int }{
		{0, 32, 0}, {31, 32, 0}, {32, 32, 1}, {-1, 32, -1}, {-32, 32, -1}, {-33, 32, -2},
	}
	for _, tt := range tests {
		if got := floorDiv(tt.a, tt.b); got != tt.want {
			t.Errorf("floorDiv(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
