// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pipeline

import (
	"image/color"
	"math"
)

// Procedural map content drawn by the software passes. Coordinates are in
// world pixels; the camera pans along x.

// heightAt returns the terrain height in [0, 1] at world position (x, y).
func heightAt(x, y float64) float64 {
	h := 0.5 +
		0.25*math.Sin(x*0.031)*math.Cos(y*0.043) +
		0.15*math.Sin((x+y)*0.011) +
		0.08*math.Cos(x*0.13-y*0.07)
	return min(max(h, 0), 1)
}

const (
	waterLevel  = 0.38
	snowLevel   = 0.82
	sunSlope    = 0.012
	shadowSteps = 8
	shadowStep  = 6.0
	shadowBias  = 0.01
)

// occlusionAt returns the height a ray towards the sun must clear at
// (x, y): the highest terrain sample along +x, lowered by the sun slope.
func occlusionAt(x, y float64) float64 {
	occ := 0.0
	for k := 1; k <= shadowSteps; k++ {
		d := float64(k) * shadowStep
		occ = max(occ, heightAt(x+d, y)-d*sunSlope)
	}
	return occ
}

// terrainColor maps a height to a map palette colour.
func terrainColor(h float64) color.RGBA {
	switch {
	case h < waterLevel:
		return mix(color.RGBA{R: 20, G: 60, B: 140, A: 255}, color.RGBA{R: 60, G: 120, B: 190, A: 255}, h/waterLevel)
	case h < snowLevel:
		t := (h - waterLevel) / (snowLevel - waterLevel)
		return mix(color.RGBA{R: 70, G: 140, B: 60, A: 255}, color.RGBA{R: 140, G: 110, B: 70, A: 255}, t)
	default:
		return color.RGBA{R: 245, G: 245, B: 250, A: 255}
	}
}

// depthOf converts a height into a normalized view depth; higher terrain
// is closer to the camera.
func depthOf(h float64) float32 {
	return float32(1 - 0.5*h)
}
