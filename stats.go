// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package rendergraph

import "fmt"

// Stats describes the last executed frame.
type Stats struct {
	// Frame is the index of the frame.
	Frame uint64

	// PassesExecuted is the number of passes whose Render was called.
	PassesExecuted int

	// PassesCulled is the number of registered passes dropped by culling.
	PassesCulled int

	// ResourcesAttached is the number of resources bound this frame.
	ResourcesAttached int

	// Kept counts resources whose physical resource stayed attached from a
	// previous frame.
	Kept int

	// Recycled counts physical resources taken from the pool.
	Recycled int

	// Created counts physical resources built this frame.
	Created int

	// PoolDisposed counts pooled resources disposed at the end of the frame.
	PoolDisposed int

	// AttachedBytes is the sum of descriptor memory estimates of the
	// attached resources.
	AttachedBytes uint64
}

// String returns a human-readable string of frame stats.
func (s Stats) String() string {
	return fmt.Sprintf("Frame[%d: %d passes, %d culled, %d resources (%d kept, %d recycled, %d created), %d disposed, %.1f MB]",
		s.Frame,
		s.PassesExecuted,
		s.PassesCulled,
		s.ResourcesAttached,
		s.Kept,
		s.Recycled,
		s.Created,
		s.PoolDisposed,
		float64(s.AttachedBytes)/(1024*1024))
}
