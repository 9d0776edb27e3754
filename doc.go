// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package rendergraph is the frame scheduler of a real-time 3D map renderer.
//
// # Overview
//
// Rendering stages (shadow mapping, terrain shading, atmosphere, bloom,
// depth of field, ...) register themselves as passes. Each pass declares a
// fixed set of slots bound to logical resources. Every frame the graph:
//
//  1. links passes and resources from the current slot bindings,
//  2. culls every pass that does not contribute to a used-externally
//     resource,
//  3. orders the remaining passes topologically (Kahn's algorithm, FIFO
//     tie-breaking),
//  4. attaches physical resources, recycling them through a keyed pool,
//  5. executes the passes in order,
//  6. returns transient resources to the pool and disposes pooled entries
//     that stayed idle longer than the pool time-to-live.
//
// # Quick Start
//
//	g := rendergraph.New(software.NewBuilder(), rendergraph.Config{})
//
//	color := g.NewResource("color", descriptor.Texture{Width: 800, Height: 600, Format: gputypes.TextureFormatRGBA8Unorm})
//	screen := g.NewResource("screen", screenDesc, rendergraph.Persistent(), rendergraph.UsedExternally())
//
//	_ = g.AddPass(newScenePass(color))
//	_ = g.AddPass(newCompositePass(color, screen))
//
//	for running {
//	    if _, err := g.Execute(); err != nil {
//	        log.Fatal(err) // cycles are wiring defects
//	    }
//	}
//
// # Passes and slots
//
// A concrete pass stores its slots as named struct fields and returns
// pointers to them from Slots:
//
//	type compositePass struct {
//	    slots struct {
//	        Color  rendergraph.Slot
//	        Bloom  rendergraph.Slot
//	        Screen rendergraph.Slot
//	    }
//	}
//
// Optional features are switched by rebinding a slot with Slot.Bind; a nil
// binding disables it and the producing pass is culled automatically.
//
// # Architecture
//
// The core never issues graphics-API calls. Physical resources come from a
// Builder; the backend/native package builds wgpu HAL textures and buffers,
// the backend/software package builds CPU images. Descriptor value types
// live in the descriptor package. The pipeline package wires the map
// renderer's stages on top of the graph.
package rendergraph

// Version is the current version of the library.
const Version = "0.1.0"
