// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package descriptor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/gputypes"
)

// DefaultTextureUsage is applied by Normalize when Usage is zero.
const DefaultTextureUsage = gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageTextureBinding

// Texture describes a single GPU texture.
//
// Zero-valued Depth, MipLevels, SampleCount and Usage fields mean 1, 1, 1
// and DefaultTextureUsage respectively; Key normalizes them so that a zero
// field and its default produce the same key. Use NewTexture2D for the
// common case.
type Texture struct {
	// Label is a debug label. It does not take part in the key.
	Label string

	Width  uint32
	Height uint32

	// Depth is the depth (3D) or array layer count.
	Depth uint32

	MipLevels   uint32
	SampleCount uint32

	Dimension gputypes.TextureDimension
	Format    gputypes.TextureFormat
	Usage     gputypes.TextureUsage
}

// NewTexture2D returns a single-sample 2D texture description.
func NewTexture2D(label string, width, height uint32, format gputypes.TextureFormat) Texture {
	return Texture{
		Label:     label,
		Width:     width,
		Height:    height,
		Dimension: gputypes.TextureDimension2D,
		Format:    format,
	}
}

// Normalize returns t with zero fields replaced by their defaults.
func (t Texture) Normalize() Texture {
	if t.Dimension == gputypes.TextureDimensionUndefined {
		t.Dimension = gputypes.TextureDimension2D
	}
	if t.Depth == 0 {
		t.Depth = 1
	}
	if t.MipLevels == 0 {
		t.MipLevels = 1
	}
	if t.SampleCount == 0 {
		t.SampleCount = 1
	}
	if t.Usage == 0 {
		t.Usage = DefaultTextureUsage
	}
	return t
}

// Key returns the canonical serialization of the texture shape.
func (t Texture) Key() string {
	n := t.Normalize()
	var b strings.Builder
	b.Grow(64)
	b.WriteString("tex:")
	writeExtent(&b, n.Width, n.Height, n.Depth)
	b.WriteString(":mip")
	b.WriteString(strconv.FormatUint(uint64(n.MipLevels), 10))
	b.WriteString(":s")
	b.WriteString(strconv.FormatUint(uint64(n.SampleCount), 10))
	fmt.Fprintf(&b, ":dim%v:fmt%v:use%v", n.Dimension, n.Format, n.Usage)
	return b.String()
}

// MemorySize estimates the texture size in bytes including its mip chain
// and samples.
func (t Texture) MemorySize() uint64 {
	n := t.Normalize()
	w, h := uint64(n.Width), uint64(n.Height)
	var total uint64
	for range n.MipLevels {
		total += w * h
		w = max(w/2, 1)
		h = max(h/2, 1)
	}
	return total * uint64(n.Depth) * uint64(n.SampleCount) * BytesPerTexel(n.Format)
}

// Resized returns a copy of t with new dimensions. Resizing to the current
// dimensions yields an identical key.
func (t Texture) Resized(width, height uint32) Texture {
	t.Width = width
	t.Height = height
	return t
}

// Scaled returns a copy of t with dimensions multiplied by num/den, clamped
// to at least one texel. Scaled(1, 2) gives a half-resolution texture.
func (t Texture) Scaled(num, den uint32) Texture {
	t.Width = scale(t.Width, num, den)
	t.Height = scale(t.Height, num, den)
	return t
}

// String returns the key prefixed with the label, if any.
func (t Texture) String() string {
	if t.Label == "" {
		return t.Key()
	}
	return t.Label + "(" + t.Key() + ")"
}

// BytesPerTexel returns the size of one texel of format f. Unknown formats
// are assumed to be 4 bytes wide.
func BytesPerTexel(f gputypes.TextureFormat) uint64 {
	switch f {
	case gputypes.TextureFormatR8Unorm:
		return 1
	case gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatBGRA8Unorm,
		gputypes.TextureFormatDepth24PlusStencil8:
		return 4
	default:
		return 4
	}
}

func scale(v, num, den uint32) uint32 {
	if den == 0 {
		return v
	}
	s := uint64(v) * uint64(num) / uint64(den)
	if s == 0 {
		return 1
	}
	return uint32(s) //nolint:gosec // G115: bounded by v*num/den with num/den <= v range
}

func writeExtent(b *strings.Builder, w, h, d uint32) {
	b.WriteString(strconv.FormatUint(uint64(w), 10))
	b.WriteByte('x')
	b.WriteString(strconv.FormatUint(uint64(h), 10))
	b.WriteByte('x')
	b.WriteString(strconv.FormatUint(uint64(d), 10))
}
