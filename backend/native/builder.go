// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package native

import (
	"errors"
	"fmt"

	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/rendergraph"
	"github.com/gogpu/rendergraph/descriptor"
)

// Native backend errors.
var (
	// ErrNilDevice is returned when creating a builder without a HAL device.
	ErrNilDevice = errors.New("native: HAL device is nil")

	// ErrInvalidSize is returned for zero-sized resources.
	ErrInvalidSize = errors.New("native: invalid size")

	// ErrUnsupportedDescriptor is returned for descriptor types the
	// builder does not know.
	ErrUnsupportedDescriptor = errors.New("native: unsupported descriptor")
)

// Builder creates GPU physical resources on a HAL device. It implements
// rendergraph.Builder. The builder does not own the device.
type Builder struct {
	device  hal.Device
	created int
}

// NewBuilder returns a builder creating resources on device.
func NewBuilder(device hal.Device) (*Builder, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	return &Builder{device: device}, nil
}

// Device returns the HAL device.
func (b *Builder) Device() hal.Device { return b.device }

// Created returns the number of resources created so far.
func (b *Builder) Created() int { return b.created }

// CreateFromDescriptor creates a *Texture, *Target or *Buffer.
func (b *Builder) CreateFromDescriptor(desc rendergraph.Descriptor) (rendergraph.PhysicalResource, error) {
	var (
		res rendergraph.PhysicalResource
		err error
	)
	switch d := desc.(type) {
	case descriptor.Texture:
		res, err = createTexture(b.device, d)
	case descriptor.Target:
		res, err = createTarget(b.device, d)
	case descriptor.Buffer:
		res, err = createBuffer(b.device, d)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedDescriptor, desc)
	}
	if err != nil {
		return nil, err
	}
	b.created++
	rendergraph.Logger().Debug("native: created", "key", desc.Key(), "bytes", desc.MemorySize())
	return res, nil
}

var _ rendergraph.Builder = (*Builder)(nil)
