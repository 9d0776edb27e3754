// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package native

import (
	"fmt"

	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/rendergraph/descriptor"
)

// bufferAlignment is the size granularity of GPU buffers.
const bufferAlignment = 4

// Buffer is a GPU buffer.
type Buffer struct {
	device hal.Device
	desc   descriptor.Buffer
	size   uint64
	buf    hal.Buffer
}

func createBuffer(device hal.Device, desc descriptor.Buffer) (*Buffer, error) {
	if desc.Size == 0 {
		return nil, fmt.Errorf("%w: buffer %s", ErrInvalidSize, desc)
	}
	size := (desc.Size + bufferAlignment - 1) &^ (bufferAlignment - 1)

	buf, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: desc.Label,
		Size:  size,
		Usage: desc.Usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create buffer %q: %w", desc.Label, err)
	}
	return &Buffer{device: device, desc: desc, size: size, buf: buf}, nil
}

// Descriptor returns the description the buffer was built from.
func (b *Buffer) Descriptor() descriptor.Buffer { return b.desc }

// Size returns the allocated size, rounded up to the buffer alignment.
func (b *Buffer) Size() uint64 { return b.size }

// Raw returns the HAL buffer, or nil after Dispose.
func (b *Buffer) Raw() hal.Buffer { return b.buf }

// Dispose destroys the buffer. Disposing twice is a no-op.
func (b *Buffer) Dispose() {
	if b.buf != nil {
		b.device.DestroyBuffer(b.buf)
		b.buf = nil
	}
}
