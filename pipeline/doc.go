// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package pipeline assembles a map frame out of rendergraph passes.
//
// The frame renders a sun shadow map, the terrain tiles, distance fog,
// optional bloom, temporal anti-aliasing, optional depth of field and a
// final composite into a persistent screen texture:
//
//	p, err := pipeline.New(software.NewBuilder(), pipeline.Config{
//	    Width: 800, Height: 600, Bloom: true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer p.Close()
//
//	for range 10 {
//	    if _, err := p.RenderFrame(); err != nil {
//	        log.Print(err)
//	    }
//	}
//	img := p.ScreenImage()
//
// On the software backend every pass draws procedurally generated map
// content. On other backends the passes are scheduled and their resources
// allocated, but drawing is left to the host.
package pipeline
