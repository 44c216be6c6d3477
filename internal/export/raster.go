/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"
	xvector "golang.org/x/image/vector"

	"beri/internal/layout"
	"beri/internal/textlayout"
	"beri/internal/vector"
)

// DefaultScale is the number of pixels per layout unit.
const DefaultScale = 2

// RasterOptions controls bitmap output.
type RasterOptions struct {
	Scale      float32     // pixels per layout unit; <= 0 means DefaultScale
	Background color.Color // nil leaves the canvas transparent
}

func (o RasterOptions) scale() float32 {
	if o.Scale <= 0 {
		return DefaultScale
	}
	return o.Scale
}

// Raster draws a layout tree into a new image the size of the root's rect.
// Anything outside the root's rect is cut off.
func Raster(root *layout.Region, opt RasterOptions) *image.RGBA {
	if root == nil {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}
	s := opt.scale()
	w := int(math.Ceil(float64(root.Rect.W * s)))
	h := int(math.Ceil(float64(root.Rect.H * s)))
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if opt.Background != nil {
		draw.Draw(dst, dst.Bounds(), image.NewUniform(opt.Background), image.Point{}, draw.Src)
	}
	base := vector.Scale(s, s).Mul(vector.Translate(-root.Rect.X, -root.Rect.Y))
	(&rasterizer{}).region(dst, root, base)
	return dst
}

type rasterizer struct {
	lineHeights map[string]float32
}

// region paints r: its own fill, then its children (masked by r's shape
// when r clips), then its stroke on top.
func (z *rasterizer) region(dst *image.RGBA, r *layout.Region, parent vector.Affine2D) {
	xf := parent.Mul(r.Local())
	z.body(dst, r, xf)

	if len(r.Children) > 0 {
		target := dst
		if r.Clip {
			target = image.NewRGBA(dst.Bounds())
		}
		for _, c := range r.Children {
			z.region(target, c, xf)
		}
		if target != dst {
			if shape, ok := outline(r); ok {
				draw.DrawMask(dst, dst.Bounds(), target, image.Point{}, mask(dst.Bounds(), shape, xf), image.Point{}, draw.Over)
			}
		}
	}

	if r.Stroke.Enabled && r.Stroke.Width > 0 && r.Kind != layout.KindLine {
		if outer, inner, ok := strokeRing(r, r.Stroke.Width); ok {
			fill(dst, xf, nrgba(r.Stroke.Color), outer, inner)
		}
	}
}

func (z *rasterizer) body(dst *image.RGBA, r *layout.Region, xf vector.Affine2D) {
	switch r.Kind {
	case layout.KindRect, layout.KindRoundedRect, layout.KindCircle, layout.KindPath:
		if !r.Fill.Enabled {
			return
		}
		if shape, ok := outline(r); ok {
			fill(dst, xf, nrgba(r.Fill.Color), shape)
		}
	case layout.KindLine:
		if r.Stroke.Enabled {
			fill(dst, xf, nrgba(r.Stroke.Color), lineQuad(r))
		}
	case layout.KindText:
		z.text(dst, r, xf)
	case layout.KindImage:
		z.photo(dst, r, xf)
	case layout.KindGlyph:
		body, lens := glyphShapes(r.Rect)
		fill(dst, xf, nrgba(r.Fill.Color), body, lens.Reverse())
	}
}

func (z *rasterizer) lineHeight(style string) float32 {
	if lh, ok := z.lineHeights[style]; ok {
		return lh
	}
	if z.lineHeights == nil {
		z.lineHeights = map[string]float32{}
	}
	lh := textlayout.MustStyle(style).LineHeight(nil)
	z.lineHeights[style] = lh
	return lh
}

// text draws each line with the basic face at 1x into a scratch image and
// maps it into place with the full transform, so rotated cards get rotated
// text.
func (z *rasterizer) text(dst *image.RGBA, r *layout.Region, xf vector.Affine2D) {
	st := textlayout.MustStyle(r.Style)
	s := st.Scale()
	lh := z.lineHeight(r.Style)
	face := basicfont.Face7x13
	m := face.Metrics()
	h := (m.Ascent + m.Descent).Ceil()
	src := image.NewUniform(nrgba(r.Fill.Color))
	for i, ln := range r.Lines {
		if ln.Text == "" {
			continue
		}
		w := font.MeasureString(face, ln.Text).Ceil() + 1
		scratch := image.NewRGBA(image.Rect(0, 0, w, h))
		d := &font.Drawer{Dst: scratch, Src: src, Face: face, Dot: fixed.P(0, m.Ascent.Ceil())}
		for _, c := range ln.Text {
			d.DrawString(string(c))
			d.Dot.X += fixed.Int26_6(st.Tracking / s * 64)
		}
		at := xf.Mul(vector.Translate(r.Rect.X, r.Rect.Y+float32(i)*lh)).Mul(vector.Scale(s, s))
		xdraw.BiLinear.Transform(dst, aff3(at), scratch, scratch.Bounds(), xdraw.Over, nil)
	}
}

// photo scales the image to cover its rect and masks it to the rect's
// rounded shape. Undecodable blobs fall back to a gray fill.
func (z *rasterizer) photo(dst *image.RGBA, r *layout.Region, xf vector.Affine2D) {
	shape, _ := outline(r)
	img, _, err := decodePhoto(r.Image)
	if err != nil {
		fill(dst, xf, nrgba(vector.Gray.Opacity(0.15)), shape)
		return
	}
	b := img.Bounds()
	place := coverRect(r.Rect, b.Dx(), b.Dy())
	at := xf.Mul(vector.Translate(place.X, place.Y)).Mul(vector.Scale(place.W/float32(b.Dx()), place.H/float32(b.Dy())))
	layer := image.NewRGBA(dst.Bounds())
	xdraw.CatmullRom.Transform(layer, aff3(at.Mul(vector.Translate(-float32(b.Min.X), -float32(b.Min.Y)))), img, b, xdraw.Over, nil)
	draw.DrawMask(dst, dst.Bounds(), layer, image.Point{}, mask(dst.Bounds(), shape, xf), image.Point{}, draw.Over)
}

// fill rasterizes the union of the given closed paths. Paths wound in
// opposite directions cut holes.
func fill(dst draw.Image, xf vector.Affine2D, c color.Color, paths ...vector.Path) {
	b := dst.Bounds()
	z := xvector.NewRasterizer(b.Dx(), b.Dy())
	z.DrawOp = draw.Over
	if !addPaths(z, xf, paths...) {
		return
	}
	z.Draw(dst, b, image.NewUniform(c), image.Point{})
}

func mask(b image.Rectangle, shape vector.Path, xf vector.Affine2D) *image.Alpha {
	m := image.NewAlpha(b)
	z := xvector.NewRasterizer(b.Dx(), b.Dy())
	if addPaths(z, xf, shape) {
		z.Draw(m, b, image.Opaque, image.Point{})
	}
	return m
}

func addPaths(z *xvector.Rasterizer, xf vector.Affine2D, paths ...vector.Path) bool {
	drawn := false
	for _, p := range paths {
		pts := p.Points()
		if len(pts) < 3 {
			continue
		}
		for i, q := range pts {
			q = xf.Apply(q)
			if i == 0 {
				z.MoveTo(q.X, q.Y)
				continue
			}
			z.LineTo(q.X, q.Y)
		}
		z.ClosePath()
		drawn = true
	}
	return drawn
}

func nrgba(c vector.Color) color.NRGBA { return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A} }

func aff3(m vector.Affine2D) f64.Aff3 {
	return f64.Aff3{float64(m.A), float64(m.C), float64(m.E), float64(m.B), float64(m.D), float64(m.F)}
}
