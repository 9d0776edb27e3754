// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pipeline

import (
	"fmt"
	"image"
	"math"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/rendergraph"
	"github.com/gogpu/rendergraph/backend/software"
	"github.com/gogpu/rendergraph/internal/cache"
	"github.com/gogpu/rendergraph/internal/parallel"
)

// Pass names.
const (
	PassShadow     = "shadow"
	PassTerrain    = "terrain"
	PassAtmosphere = "atmosphere"
	PassBloom      = "bloom"
	PassTAA        = "taa"
	PassDOF        = "dof"
	PassComposite  = "composite"
)

// frameState is shared between the pipeline and its passes.
type frameState struct {
	cfg          Config
	tilesReady   bool
	historyValid bool
	taaRan       bool
	pan          float64

	workers *parallel.Pool
	tiles   *cache.Cache[tileKey, *heightTile]
}

// bandRows is the minimum number of rows a worker draws at once.
const bandRows = 16

// Passes draw only when the graph is backed by the software builder. On a
// GPU builder the physical resources are HAL objects and the pass bodies
// are left to the host's command encoder.

func texture(s *rendergraph.Slot) *software.Texture {
	t, _ := s.Physical().(*software.Texture)
	return t
}

func target(s *rendergraph.Slot) *software.Target {
	t, _ := s.Physical().(*software.Target)
	return t
}

// shadowPass renders the sun occlusion height map.
type shadowPass struct {
	st    *frameState
	slots struct {
		Map rendergraph.Slot
	}
}

func (p *shadowPass) Name() string { return PassShadow }

func (p *shadowPass) Slots() []*rendergraph.Slot { return []*rendergraph.Slot{&p.slots.Map} }

func (p *shadowPass) Render(*rendergraph.Frame) error {
	sm := texture(&p.slots.Map)
	if sm == nil {
		return nil
	}
	depth := sm.Depth()
	if depth == nil {
		return fmt.Errorf("shadow map is %s, want depth", sm.Kind())
	}
	n := sm.Width()
	sx := float64(p.st.cfg.Width) / float64(n)
	sy := float64(p.st.cfg.Height) / float64(sm.Height())
	p.st.workers.Rows(sm.Height(), bandRows, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := range n {
				depth[y*n+x] = float32(occlusionAt(p.st.pan+float64(x)*sx, float64(y)*sy))
			}
		}
	})
	return nil
}

// terrainPass draws the map tiles with shadows into the scene target, or a
// placeholder while tiles are loading.
type terrainPass struct {
	st    *frameState
	slots struct {
		Shadow rendergraph.Slot
		Scene  rendergraph.Slot
	}
}

func (p *terrainPass) Name() string { return PassTerrain }

func (p *terrainPass) Slots() []*rendergraph.Slot {
	return []*rendergraph.Slot{&p.slots.Shadow, &p.slots.Scene}
}

func (p *terrainPass) Render(*rendergraph.Frame) error {
	scene := target(&p.slots.Scene)
	if scene == nil {
		return nil
	}
	if !p.st.tilesReady {
		scene.Clear(p.st.cfg.Placeholder, 1)
		return nil
	}

	img := scene.Color(0).RGBA()
	var depth []float32
	if d := scene.DepthAttachment(); d != nil {
		depth = d.Depth()
	}
	var shadow []float32
	var sw, sh int
	if sm := texture(&p.slots.Shadow); sm != nil {
		shadow, sw, sh = sm.Depth(), sm.Width(), sm.Height()
	}

	w, h := img.Rect.Dx(), img.Rect.Dy()
	origin := int(math.Floor(p.st.pan))

	// One task per height tile overlapping the viewport.
	var tasks []func()
	for ty := 0; ty <= floorDiv(h-1, tileSize); ty++ {
		for tx := floorDiv(origin, tileSize); tx <= floorDiv(origin+w-1, tileSize); tx++ {
			key := tileKey{X: tx, Y: ty}
			tasks = append(tasks, func() {
				t := tile(p.st.tiles, key)
				x0, x1 := max(tx*tileSize-origin, 0), min((tx+1)*tileSize-origin, w)
				y0, y1 := ty*tileSize, min((ty+1)*tileSize, h)
				for y := y0; y < y1; y++ {
					for x := x0; x < x1; x++ {
						ht := t.at(x+origin-tx*tileSize, y-y0)
						c := terrainColor(ht)
						if shadow != nil {
							occ := float64(shadow[(y*sh/h)*sw+x*sw/w])
							if ht < occ-shadowBias {
								c = shade(c, 0.6)
							}
						}
						img.SetRGBA(x, y, c)
						if depth != nil {
							depth[y*w+x] = depthOf(max(ht, waterLevel))
						}
					}
				}
			})
		}
	}
	p.st.workers.Run(tasks)
	return nil
}

// atmospherePass applies distance fog from the scene depth.
type atmospherePass struct {
	st    *frameState
	slots struct {
		Scene rendergraph.Slot
		Out   rendergraph.Slot
	}
}

func (p *atmospherePass) Name() string { return PassAtmosphere }

func (p *atmospherePass) Slots() []*rendergraph.Slot {
	return []*rendergraph.Slot{&p.slots.Scene, &p.slots.Out}
}

func (p *atmospherePass) Render(*rendergraph.Frame) error {
	scene, out := target(&p.slots.Scene), texture(&p.slots.Out)
	if scene == nil || out == nil {
		return nil
	}
	src, dst := scene.Color(0).RGBA(), out.RGBA()
	var depth []float32
	if d := scene.DepthAttachment(); d != nil {
		depth = d.Depth()
	}
	if depth == nil {
		return software.Blit(out, scene.Color(0), xdraw.Src)
	}

	w := src.Rect.Dx()
	p.st.workers.Rows(src.Rect.Dy(), bandRows, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := range w {
				d := float64(depth[y*w+x])
				fog := p.st.cfg.fog() * min(max((d-0.5)*2, 0), 1)
				dst.SetRGBA(x, y, mix(src.RGBAAt(x, y), p.st.cfg.Sky, fog))
			}
		}
	})
	return nil
}

// bloomPass extracts bright areas at quarter resolution and scales them
// back up.
type bloomPass struct {
	st    *frameState
	slots struct {
		Source  rendergraph.Slot
		Scratch rendergraph.Slot
		Out     rendergraph.Slot
	}
}

func (p *bloomPass) Name() string { return PassBloom }

func (p *bloomPass) Slots() []*rendergraph.Slot {
	return []*rendergraph.Slot{&p.slots.Source, &p.slots.Scratch, &p.slots.Out}
}

func (p *bloomPass) Render(*rendergraph.Frame) error {
	src, scratch, out := texture(&p.slots.Source), texture(&p.slots.Scratch), texture(&p.slots.Out)
	if src == nil || scratch == nil || out == nil {
		return nil
	}
	if err := software.Downsample(scratch, src); err != nil {
		return err
	}
	threshold(scratch.RGBA(), p.st.cfg.bloomThreshold())
	return software.Blit(out, scratch, xdraw.Src)
}

// taaPass blends the current frame into the accumulated history. Its
// History and Resolved slots are swapped between two persistent textures
// every frame.
type taaPass struct {
	st    *frameState
	slots struct {
		Current  rendergraph.Slot
		History  rendergraph.Slot
		Resolved rendergraph.Slot
	}
}

func (p *taaPass) Name() string { return PassTAA }

func (p *taaPass) Slots() []*rendergraph.Slot {
	return []*rendergraph.Slot{&p.slots.Current, &p.slots.History, &p.slots.Resolved}
}

func (p *taaPass) Render(*rendergraph.Frame) error {
	p.st.taaRan = true
	cur, hist, out := texture(&p.slots.Current), texture(&p.slots.History), texture(&p.slots.Resolved)
	if cur == nil || hist == nil || out == nil {
		return nil
	}
	if !p.st.historyValid {
		return software.Blit(out, cur, xdraw.Src)
	}
	lerpImage(out.RGBA(), hist.RGBA(), cur.RGBA(), p.st.cfg.TAABlend)
	return nil
}

// dofPass blurs everything outside a horizontal focus band.
type dofPass struct {
	st    *frameState
	slots struct {
		Source  rendergraph.Slot
		Scratch rendergraph.Slot
		Out     rendergraph.Slot
	}
}

func (p *dofPass) Name() string { return PassDOF }

func (p *dofPass) Slots() []*rendergraph.Slot {
	return []*rendergraph.Slot{&p.slots.Source, &p.slots.Scratch, &p.slots.Out}
}

func (p *dofPass) Render(*rendergraph.Frame) error {
	src, scratch, out := texture(&p.slots.Source), texture(&p.slots.Scratch), texture(&p.slots.Out)
	if src == nil || scratch == nil || out == nil {
		return nil
	}
	if err := software.Downsample(scratch, src); err != nil {
		return err
	}
	if err := software.Blit(out, scratch, xdraw.Src); err != nil {
		return err
	}
	focus := focusBand(out.Bounds())
	xdraw.Draw(out.Image(), focus, src.Image(), focus.Min, xdraw.Src)
	return nil
}

// focusBand returns the middle third of r.
func focusBand(r image.Rectangle) image.Rectangle {
	h := r.Dy() / 3
	return image.Rect(r.Min.X, r.Min.Y+h, r.Max.X, r.Max.Y-h)
}

// compositePass writes the final image to the screen, adding bloom when
// its slot is bound.
type compositePass struct {
	st    *frameState
	slots struct {
		Color  rendergraph.Slot
		Bloom  rendergraph.Slot
		Screen rendergraph.Slot
	}
}

func (p *compositePass) Name() string { return PassComposite }

func (p *compositePass) Slots() []*rendergraph.Slot {
	return []*rendergraph.Slot{&p.slots.Color, &p.slots.Bloom, &p.slots.Screen}
}

func (p *compositePass) Render(*rendergraph.Frame) error {
	src, screen := texture(&p.slots.Color), texture(&p.slots.Screen)
	if src == nil || screen == nil {
		return nil
	}
	if err := software.Blit(screen, src, xdraw.Src); err != nil {
		return err
	}
	if bloom := texture(&p.slots.Bloom); bloom != nil {
		addImage(screen.RGBA(), bloom.RGBA(), 0.5)
	}
	return nil
}
