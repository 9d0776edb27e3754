// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package software

import (
	"errors"
	"fmt"

	"github.com/gogpu/rendergraph"
	"github.com/gogpu/rendergraph/descriptor"
)

// Software backend errors.
var (
	// ErrUnsupportedDescriptor is returned for descriptor types or shapes
	// the software backend cannot allocate.
	ErrUnsupportedDescriptor = errors.New("software: unsupported descriptor")

	// ErrInvalidSize is returned for zero-sized resources.
	ErrInvalidSize = errors.New("software: invalid size")

	// ErrNotDrawable is returned when drawing into or from a depth texture.
	ErrNotDrawable = errors.New("software: texture is not drawable")
)

// Builder creates CPU-backed physical resources from descriptor package
// descriptions. It implements rendergraph.Builder.
type Builder struct {
	created int
	bytes   uint64
}

// NewBuilder returns a software builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// CreateFromDescriptor allocates a *Texture, *Target or *Buffer.
func (b *Builder) CreateFromDescriptor(desc rendergraph.Descriptor) (rendergraph.PhysicalResource, error) {
	var res rendergraph.PhysicalResource
	switch d := desc.(type) {
	case descriptor.Texture:
		d = d.Normalize()
		if d.Width == 0 || d.Height == 0 {
			return nil, fmt.Errorf("%w: texture %s", ErrInvalidSize, d)
		}
		if d.Depth > 1 {
			return nil, fmt.Errorf("%w: layered texture %s", ErrUnsupportedDescriptor, d)
		}
		res = newTexture(d)
	case descriptor.Target:
		if d.Width == 0 || d.Height == 0 {
			return nil, fmt.Errorf("%w: target %s", ErrInvalidSize, d)
		}
		res = newTarget(d)
	case descriptor.Buffer:
		if d.Size == 0 {
			return nil, fmt.Errorf("%w: buffer %s", ErrInvalidSize, d)
		}
		res = &Buffer{desc: d, data: make([]byte, d.Size)}
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedDescriptor, desc)
	}

	b.created++
	b.bytes += desc.MemorySize()
	rendergraph.Logger().Debug("software: allocated", "key", desc.Key(), "bytes", desc.MemorySize())
	return res, nil
}

// Created returns the number of resources allocated so far.
func (b *Builder) Created() int { return b.created }

// AllocatedBytes returns the estimated bytes allocated so far.
func (b *Builder) AllocatedBytes() uint64 { return b.bytes }

var _ rendergraph.Builder = (*Builder)(nil)
