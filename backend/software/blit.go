// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package software

import (
	"fmt"

	xdraw "golang.org/x/image/draw"
)

// Blit scales src onto the whole of dst with bilinear filtering. op is
// xdraw.Src to replace dst or xdraw.Over to composite onto it.
//
// Both textures must be colour or gray; depth textures cannot be blitted.
func Blit(dst, src *Texture, op xdraw.Op) error {
	di, si := dst.Image(), src.Image()
	if di == nil || si == nil {
		return fmt.Errorf("%w: blit %s -> %s", ErrNotDrawable, src.kind, dst.kind)
	}
	if di.Bounds().Eq(si.Bounds()) {
		xdraw.Draw(di, di.Bounds(), si, si.Bounds().Min, op)
		return nil
	}
	xdraw.BiLinear.Scale(di, di.Bounds(), si, si.Bounds(), op, nil)
	return nil
}

// Downsample blits src into a smaller dst with an approximate box filter,
// as used for bloom and depth-of-field mip chains.
func Downsample(dst, src *Texture) error {
	di, si := dst.Image(), src.Image()
	if di == nil || si == nil {
		return fmt.Errorf("%w: downsample %s -> %s", ErrNotDrawable, src.kind, dst.kind)
	}
	xdraw.ApproxBiLinear.Scale(di, di.Bounds(), si, si.Bounds(), xdraw.Src, nil)
	return nil
}
