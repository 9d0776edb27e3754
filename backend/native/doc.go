// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package native builds rendergraph physical resources on a wgpu-hal
// device.
//
// Textures are created together with a default view; targets create one
// texture per attachment; buffer sizes are rounded up to 4 bytes. Dispose
// destroys the HAL objects, so the render graph's pool is the only place
// GPU memory is released.
//
// Hosts with their own device wrap it directly:
//
//	builder, err := native.NewBuilder(device)
//	g := rendergraph.New(builder, rendergraph.Config{})
//
// Importing the package also registers the "noop" backend, which opens
// the wgpu-hal noop device for headless runs.
package native
