// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package software

import (
	"image"
	"image/color"

	"github.com/gogpu/gputypes"
	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/rendergraph/descriptor"
)

// Kind is the storage layout of a software texture.
type Kind uint8

const (
	// KindColor textures are backed by *image.RGBA.
	KindColor Kind = iota

	// KindGray textures are single-channel, backed by *image.Gray.
	KindGray

	// KindDepth textures hold one float32 per texel.
	KindDepth
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindColor:
		return "color"
	case KindGray:
		return "gray"
	case KindDepth:
		return "depth"
	default:
		return "unknown"
	}
}

// kindOf maps a texture format onto a storage layout.
func kindOf(f gputypes.TextureFormat) Kind {
	switch f {
	case gputypes.TextureFormatR8Unorm:
		return KindGray
	case gputypes.TextureFormatDepth24PlusStencil8:
		return KindDepth
	default:
		return KindColor
	}
}

// Texture is a CPU-backed physical texture. Only the base mip level of a
// single layer is allocated.
type Texture struct {
	desc  descriptor.Texture
	kind  Kind
	rgba  *image.RGBA
	gray  *image.Gray
	depth []float32

	disposed bool
}

func newTexture(desc descriptor.Texture) *Texture {
	t := &Texture{desc: desc, kind: kindOf(desc.Format)}
	rect := image.Rect(0, 0, int(desc.Width), int(desc.Height))
	switch t.kind {
	case KindGray:
		t.gray = image.NewGray(rect)
	case KindDepth:
		t.depth = make([]float32, int(desc.Width)*int(desc.Height))
	default:
		t.rgba = image.NewRGBA(rect)
	}
	return t
}

// Descriptor returns the description the texture was built from.
func (t *Texture) Descriptor() descriptor.Texture { return t.desc }

// Kind returns the storage layout.
func (t *Texture) Kind() Kind { return t.kind }

// Width returns the texture width in pixels.
func (t *Texture) Width() int { return int(t.desc.Width) }

// Height returns the texture height in pixels.
func (t *Texture) Height() int { return int(t.desc.Height) }

// Bounds returns the texture rectangle.
func (t *Texture) Bounds() image.Rectangle {
	return image.Rect(0, 0, t.Width(), t.Height())
}

// Image returns the texture as a drawable image, or nil for depth and
// disposed textures. The returned image shares memory with the texture.
func (t *Texture) Image() xdraw.Image {
	if t.disposed {
		return nil
	}
	switch t.kind {
	case KindColor:
		return t.rgba
	case KindGray:
		return t.gray
	default:
		return nil
	}
}

// RGBA returns the colour image, or nil for other kinds.
func (t *Texture) RGBA() *image.RGBA { return t.rgba }

// Depth returns the depth texels in row-major order, or nil for colour
// textures.
func (t *Texture) Depth() []float32 { return t.depth }

// Clear fills a colour or gray texture with c. Depth textures are left
// untouched; use ClearDepth.
func (t *Texture) Clear(c color.Color) {
	img := t.Image()
	if img == nil {
		return
	}
	xdraw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, xdraw.Src)
}

// ClearDepth fills a depth texture with v.
func (t *Texture) ClearDepth(v float32) {
	for i := range t.depth {
		t.depth[i] = v
	}
}

// Fill paints r (clipped to the texture) with c using op.
func (t *Texture) Fill(r image.Rectangle, c color.Color, op xdraw.Op) {
	img := t.Image()
	if img == nil {
		return
	}
	xdraw.Draw(img, r.Intersect(img.Bounds()), image.NewUniform(c), image.Point{}, op)
}

// At returns the colour at (x, y). Depth textures report their value as
// a gray level in [0, 1]. Disposed textures are transparent.
func (t *Texture) At(x, y int) color.Color {
	if t.disposed {
		return color.Transparent
	}
	switch t.kind {
	case KindColor:
		return t.rgba.At(x, y)
	case KindGray:
		return t.gray.At(x, y)
	default:
		if !(image.Point{X: x, Y: y}).In(t.Bounds()) {
			return color.Gray{}
		}
		v := t.depth[y*t.Width()+x]
		return color.Gray{Y: uint8(clamp01(v) * 255)}
	}
}

// Dispose releases the pixel storage. Disposing twice is a no-op.
func (t *Texture) Dispose() {
	if t.disposed {
		return
	}
	t.disposed = true
	t.rgba = nil
	t.gray = nil
	t.depth = nil
}

// IsDisposed reports whether Dispose was called.
func (t *Texture) IsDisposed() bool { return t.disposed }

func clamp01(v float32) float32 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
