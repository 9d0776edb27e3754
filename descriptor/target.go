// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package descriptor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/gputypes"
)

// MaxColorAttachments is the number of colour attachments a Target can
// describe.
const MaxColorAttachments = 4

// Target describes a render target: a set of same-sized attachments used
// together by one render pass.
//
// Target is a comparable value type; the colour formats live in a fixed
// array so that copies never share state.
type Target struct {
	// Label is a debug label. It does not take part in the key.
	Label string

	Width  uint32
	Height uint32

	// SampleCount applies to every attachment. Zero means 1.
	SampleCount uint32

	colors     [MaxColorAttachments]gputypes.TextureFormat
	colorCount int

	// depth is TextureFormatUndefined when the target has no depth
	// attachment. Use NewTarget to construct a Target.
	depth gputypes.TextureFormat
}

// NewTarget returns a target description with the given colour
// attachments. Formats beyond MaxColorAttachments are ignored.
func NewTarget(label string, width, height uint32, colors ...gputypes.TextureFormat) Target {
	t := Target{
		Label:  label,
		Width:  width,
		Height: height,
		depth:  gputypes.TextureFormatUndefined,
	}
	t.colorCount = copy(t.colors[:], colors)
	return t
}

// WithDepth returns a copy of t with a depth attachment of the given
// format.
func (t Target) WithDepth(format gputypes.TextureFormat) Target {
	t.depth = format
	return t
}

// WithSamples returns a copy of t with the given MSAA sample count.
func (t Target) WithSamples(n uint32) Target {
	t.SampleCount = n
	return t
}

// Colors returns the colour attachment formats in attachment order.
func (t Target) Colors() []gputypes.TextureFormat {
	out := make([]gputypes.TextureFormat, t.colorCount)
	copy(out, t.colors[:t.colorCount])
	return out
}

// Depth returns the depth attachment format and whether there is one.
func (t Target) Depth() (gputypes.TextureFormat, bool) {
	return t.depth, t.depth != gputypes.TextureFormatUndefined
}

// Attachment returns the texture description of colour attachment i.
func (t Target) Attachment(i int) Texture {
	return Texture{
		Label:       fmt.Sprintf("%s.color%d", t.Label, i),
		Width:       t.Width,
		Height:      t.Height,
		SampleCount: t.SampleCount,
		Dimension:   gputypes.TextureDimension2D,
		Format:      t.colors[i],
		Usage:       gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopySrc,
	}
}

// DepthAttachment returns the texture description of the depth attachment.
// Only meaningful when Depth reports one.
func (t Target) DepthAttachment() Texture {
	return Texture{
		Label:       t.Label + ".depth",
		Width:       t.Width,
		Height:      t.Height,
		SampleCount: t.SampleCount,
		Dimension:   gputypes.TextureDimension2D,
		Format:      t.depth,
		Usage:       gputypes.TextureUsageRenderAttachment,
	}
}

// Key returns the canonical serialization of the attachment layout.
func (t Target) Key() string {
	samples := t.SampleCount
	if samples == 0 {
		samples = 1
	}
	var b strings.Builder
	b.Grow(64)
	b.WriteString("target:")
	writeExtent(&b, t.Width, t.Height, 1)
	b.WriteString(":s")
	b.WriteString(strconv.FormatUint(uint64(samples), 10))
	b.WriteString(":c[")
	for i := range t.colorCount {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%v", t.colors[i])
	}
	b.WriteString("]")
	if _, ok := t.Depth(); ok {
		fmt.Fprintf(&b, ":d%v", t.depth)
	}
	return b.String()
}

// MemorySize estimates the combined size of all attachments in bytes.
func (t Target) MemorySize() uint64 {
	var total uint64
	for i := range t.colorCount {
		total += t.Attachment(i).MemorySize()
	}
	if _, ok := t.Depth(); ok {
		total += t.DepthAttachment().MemorySize()
	}
	return total
}

// Resized returns a copy of t with new dimensions.
func (t Target) Resized(width, height uint32) Target {
	t.Width = width
	t.Height = height
	return t
}

// Scaled returns a copy of t with dimensions multiplied by num/den, clamped
// to at least one pixel.
func (t Target) Scaled(num, den uint32) Target {
	t.Width = scale(t.Width, num, den)
	t.Height = scale(t.Height, num, den)
	return t
}

// String returns the key prefixed with the label, if any.
func (t Target) String() string {
	if t.Label == "" {
		return t.Key()
	}
	return t.Label + "(" + t.Key() + ")"
}
