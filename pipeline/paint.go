// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pipeline

import (
	"image"
	"image/color"
	"math"
)

// Per-pixel arithmetic on RGBA8 images. All helpers assume images that
// start at the origin and share dimensions unless noted.

// lerpImage writes dst = a + (b-a)*t.
func lerpImage(dst, a, b *image.RGBA, t float64) {
	w := int(math.Round(t * 256))
	for i := range dst.Pix {
		av, bv := int(a.Pix[i]), int(b.Pix[i])
		dst.Pix[i] = uint8(av + ((bv-av)*w)>>8) //nolint:gosec // G115: result stays within [0, 255]
	}
}

// addImage writes dst = min(dst + src*gain, 255) for the colour channels.
func addImage(dst, src *image.RGBA, gain float64) {
	g := int(math.Round(gain * 256))
	for i := 0; i+3 < len(dst.Pix); i += 4 {
		for c := range 3 {
			v := int(dst.Pix[i+c]) + (int(src.Pix[i+c])*g)>>8
			dst.Pix[i+c] = uint8(min(v, 255)) //nolint:gosec // G115: clamped
		}
	}
}

// threshold keeps pixels brighter than limit (luminance in [0, 1]) and
// blacks out the rest.
func threshold(img *image.RGBA, limit float64) {
	cut := limit * 255
	for i := 0; i+3 < len(img.Pix); i += 4 {
		if luminance(img.Pix[i], img.Pix[i+1], img.Pix[i+2]) < cut {
			img.Pix[i], img.Pix[i+1], img.Pix[i+2] = 0, 0, 0
		}
	}
}

// luminance returns the Rec. 709 luma of an 8-bit colour, in [0, 255].
func luminance(r, g, b uint8) float64 {
	return 0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(b)
}

// mix blends two colours by t in [0, 1].
func mix(a, b color.RGBA, t float64) color.RGBA {
	f := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return color.RGBA{R: f(a.R, b.R), G: f(a.G, b.G), B: f(a.B, b.B), A: f(a.A, b.A)}
}

// shade scales the colour channels of c by k in [0, 1].
func shade(c color.RGBA, k float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R)*k + 0.5),
		G: uint8(float64(c.G)*k + 0.5),
		B: uint8(float64(c.B)*k + 0.5),
		A: c.A,
	}
}
