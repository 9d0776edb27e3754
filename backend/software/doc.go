// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package software implements rendergraph physical resources on the CPU.
//
// Colour textures are *image.RGBA, R8Unorm textures are *image.Gray and
// depth textures are plain float32 slices. The package is used for
// headless rendering, tests and as a reference for GPU backends:
//
//	g := rendergraph.New(software.NewBuilder(), rendergraph.Config{})
//	screen := g.NewResource("screen",
//	    descriptor.NewTexture2D("screen", 800, 600, gputypes.TextureFormatRGBA8Unorm),
//	    rendergraph.Persistent(), rendergraph.UsedExternally())
//
// Inside Pass.Render, type-assert the slot's physical resource:
//
//	tex := slot.Physical().(*software.Texture)
//	tex.Clear(color.Black)
package software
