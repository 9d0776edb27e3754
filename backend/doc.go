// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package backend provides a pluggable registry of physical resource
// backends for render graphs.
//
// # Backend Registration
//
// Backends register themselves from init functions. The software backend
// is always available; the noop HAL backend registers on import:
//
//	import _ "github.com/gogpu/rendergraph/backend/native"
//
// # Backend Selection
//
// Open returns an initialized backend by name, or the best available one
// for an empty name:
//
//	b, err := backend.Open("software")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer b.Close()
//
//	builder, _ := b.Builder()
//	g := rendergraph.New(builder, rendergraph.Config{})
//	defer g.Close()
//
// Close the graph before the backend so that pooled resources are
// destroyed while their device is still alive.
//
// # Available Backends
//
//   - "software": CPU images (always available)
//   - "noop": wgpu-hal noop device (backend/native)
package backend
