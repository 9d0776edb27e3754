// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package software

import (
	"image/color"

	"github.com/gogpu/rendergraph/descriptor"
)

// Target is a CPU render target: a set of same-sized colour attachments
// and an optional depth attachment.
type Target struct {
	desc   descriptor.Target
	colors []*Texture
	depth  *Texture
}

func newTarget(desc descriptor.Target) *Target {
	t := &Target{desc: desc}
	for i := range desc.Colors() {
		t.colors = append(t.colors, newTexture(desc.Attachment(i).Normalize()))
	}
	if _, ok := desc.Depth(); ok {
		t.depth = newTexture(desc.DepthAttachment().Normalize())
	}
	return t
}

// Descriptor returns the description the target was built from.
func (t *Target) Descriptor() descriptor.Target { return t.desc }

// Color returns colour attachment i, or nil if out of range.
func (t *Target) Color(i int) *Texture {
	if i < 0 || i >= len(t.colors) {
		return nil
	}
	return t.colors[i]
}

// ColorCount returns the number of colour attachments.
func (t *Target) ColorCount() int { return len(t.colors) }

// DepthAttachment returns the depth attachment, or nil.
func (t *Target) DepthAttachment() *Texture { return t.depth }

// Clear clears every colour attachment to c and the depth attachment to
// depth.
func (t *Target) Clear(c color.Color, depth float32) {
	for _, tex := range t.colors {
		tex.Clear(c)
	}
	if t.depth != nil {
		t.depth.ClearDepth(depth)
	}
}

// Dispose disposes all attachments.
func (t *Target) Dispose() {
	for _, tex := range t.colors {
		tex.Dispose()
	}
	if t.depth != nil {
		t.depth.Dispose()
	}
}

// Buffer is a CPU-backed physical buffer.
type Buffer struct {
	desc descriptor.Buffer
	data []byte
}

// Descriptor returns the description the buffer was built from.
func (b *Buffer) Descriptor() descriptor.Buffer { return b.desc }

// Bytes returns the buffer contents. The slice is nil after Dispose.
func (b *Buffer) Bytes() []byte { return b.data }

// Dispose releases the buffer storage.
func (b *Buffer) Dispose() { b.data = nil }
