// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package descriptor provides the resource descriptions used by the map
// renderer: textures, multi-attachment render targets and buffers.
//
// Every type is an immutable value implementing rendergraph.Descriptor.
// Keys contain only fields that affect the physical object, so two
// descriptions that differ only by label share pooled resources. Resized
// and Scaled return new values; resizing to the same dimensions twice
// produces the same key and therefore no reallocation.
package descriptor
