// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package native

import (
	"fmt"

	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/rendergraph/descriptor"
)

// Texture is a GPU texture with its default view.
type Texture struct {
	device hal.Device
	desc   descriptor.Texture
	tex    hal.Texture
	view   hal.TextureView
}

func createTexture(device hal.Device, desc descriptor.Texture) (*Texture, error) {
	desc = desc.Normalize()
	if desc.Width == 0 || desc.Height == 0 {
		return nil, fmt.Errorf("%w: texture %s", ErrInvalidSize, desc)
	}

	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         desc.Label,
		Size:          hal.Extent3D{Width: desc.Width, Height: desc.Height, DepthOrArrayLayers: desc.Depth},
		MipLevelCount: desc.MipLevels,
		SampleCount:   desc.SampleCount,
		Dimension:     desc.Dimension,
		Format:        desc.Format,
		Usage:         desc.Usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create texture %q: %w", desc.Label, err)
	}

	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label: desc.Label + "_view",
	})
	if err != nil {
		device.DestroyTexture(tex)
		return nil, fmt.Errorf("create texture view %q: %w", desc.Label, err)
	}

	return &Texture{device: device, desc: desc, tex: tex, view: view}, nil
}

// Descriptor returns the normalized description the texture was built from.
func (t *Texture) Descriptor() descriptor.Texture { return t.desc }

// Raw returns the HAL texture, or nil after Dispose.
func (t *Texture) Raw() hal.Texture { return t.tex }

// View returns the default texture view, or nil after Dispose.
func (t *Texture) View() hal.TextureView { return t.view }

// IsDestroyed reports whether the texture has been disposed.
func (t *Texture) IsDestroyed() bool { return t.tex == nil }

// Dispose destroys the view and the texture. Disposing twice is a no-op.
func (t *Texture) Dispose() {
	if t.view != nil {
		t.device.DestroyTextureView(t.view)
		t.view = nil
	}
	if t.tex != nil {
		t.device.DestroyTexture(t.tex)
		t.tex = nil
	}
}

// Target is a set of GPU attachments created together.
type Target struct {
	desc   descriptor.Target
	colors []*Texture
	depth  *Texture
}

func createTarget(device hal.Device, desc descriptor.Target) (*Target, error) {
	if desc.Width == 0 || desc.Height == 0 {
		return nil, fmt.Errorf("%w: target %s", ErrInvalidSize, desc)
	}
	t := &Target{desc: desc}
	for i := range desc.Colors() {
		tex, err := createTexture(device, desc.Attachment(i))
		if err != nil {
			t.Dispose()
			return nil, err
		}
		t.colors = append(t.colors, tex)
	}
	if _, ok := desc.Depth(); ok {
		tex, err := createTexture(device, desc.DepthAttachment())
		if err != nil {
			t.Dispose()
			return nil, err
		}
		t.depth = tex
	}
	return t, nil
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

// DepthAttachment returns the depth attachment, or nil.
func (t *Target) DepthAttachment() *Texture { return t.depth }

// Dispose destroys every attachment in reverse creation order.
func (t *Target) Dispose() {
	if t.depth != nil {
		t.depth.Dispose()
	}
	for i := len(t.colors) - 1; i >= 0; i-- {
		t.colors[i].Dispose()
	}
}
