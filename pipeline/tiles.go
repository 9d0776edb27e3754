// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pipeline

import (
	"github.com/gogpu/rendergraph/internal/cache"
)

// tileSize is the edge length of a height tile in world pixels.
const tileSize = 32

type tileKey struct{ X, Y int }

// heightTile holds the terrain heights of one tile, row-major.
type heightTile struct {
	h [tileSize * tileSize]float32
}

func (t *heightTile) at(x, y int) float64 { return float64(t.h[y*tileSize+x]) }

func loadTile(k tileKey) *heightTile {
	t := new(heightTile)
	x0, y0 := k.X*tileSize, k.Y*tileSize
	for y := range tileSize {
		for x := range tileSize {
			t.h[y*tileSize+x] = float32(heightAt(float64(x0+x), float64(y0+y)))
		}
	}
	return t
}

func newTileCache(size int) *cache.Cache[tileKey, *heightTile] {
	return cache.New[tileKey, *heightTile](size)
}

func tile(c *cache.Cache[tileKey, *heightTile], k tileKey) *heightTile {
	return c.GetOrCreate(k, func() *heightTile { return loadTile(k) })
}

// floorDiv divides rounding towards negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
