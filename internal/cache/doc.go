// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package cache provides a generic thread-safe LRU cache.
//
//	tiles := cache.New[tileKey, *heightTile](256)
//	t := tiles.GetOrCreate(key, func() *heightTile { return loadTile(key) })
//
// The pipeline keeps terrain height tiles in it so that panning only
// computes the tiles entering the viewport.
package cache
