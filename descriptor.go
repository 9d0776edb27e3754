// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package rendergraph

// Descriptor fully describes the shape of a resource: dimensions, format,
// attachment layout. The graph never interprets it beyond Key.
//
// Implementations must be immutable values. Two descriptors with equal keys
// describe interchangeable physical resources; the pool recycles by key
// equality only, never by object identity.
type Descriptor interface {
	// Key returns the canonical serialization of the descriptor. It must be
	// deterministic and depend only on content that affects the physical
	// resource (debug labels are excluded).
	Key() string

	// MemorySize returns an estimate of the physical resource size in bytes.
	// It is informational only.
	MemorySize() uint64
}

// PhysicalResource is the concrete GPU-side object (texture, render target,
// buffer) backing a logical Resource during a frame.
type PhysicalResource interface {
	// Dispose permanently releases the underlying object. The graph calls it
	// exactly once, when a pooled entry outlives the pool's time-to-live or
	// when the graph is closed.
	Dispose()
}

// Builder constructs physical resources from descriptors.
//
// CreateFromDescriptor must be a pure function of descriptor content:
// descriptors with equal keys must yield semantically interchangeable
// objects.
type Builder interface {
	CreateFromDescriptor(desc Descriptor) (PhysicalResource, error)
}

// BuilderFunc adapts an ordinary function to the Builder interface.
type BuilderFunc func(desc Descriptor) (PhysicalResource, error)

// CreateFromDescriptor calls f(desc).
func (f BuilderFunc) CreateFromDescriptor(desc Descriptor) (PhysicalResource, error) {
	return f(desc)
}
