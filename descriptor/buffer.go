// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package descriptor

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// Buffer describes a GPU buffer (uniforms, tile vertex data, indirect
// arguments).
type Buffer struct {
	// Label is a debug label. It does not take part in the key.
	Label string

	Size  uint64
	Usage gputypes.BufferUsage
}

// Key returns the canonical serialization of the buffer shape.
func (b Buffer) Key() string {
	return fmt.Sprintf("buf:%d:use%v", b.Size, b.Usage)
}

// MemorySize returns Size.
func (b Buffer) MemorySize() uint64 {
	return b.Size
}

// String returns the key prefixed with the label, if any.
func (b Buffer) String() string {
	if b.Label == "" {
		return b.Key()
	}
	return b.Label + "(" + b.Key() + ")"
}
