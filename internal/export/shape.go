/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"

	_ "golang.org/x/image/webp"

	"beri/internal/layout"
	"beri/internal/vector"
)

// outline is the closed shape of a region in its own coordinates. Regions
// that are not closed shapes (groups, lines, text) report false.
func outline(r *layout.Region) (vector.Path, bool) {
	switch r.Kind {
	case layout.KindRect:
		return vector.RoundedRectPath(r.Rect, 0, false), true
	case layout.KindRoundedRect, layout.KindImage:
		return vector.RoundedRectPath(r.Rect, r.Radius, r.TopOnly), true
	case layout.KindCircle:
		return vector.EllipsePath(r.Rect), true
	case layout.KindPath:
		if r.Path == nil {
			return vector.Path{}, false
		}
		return *r.Path, true
	case layout.KindGroup:
		if r.Clip {
			return vector.RoundedRectPath(r.Rect, r.Radius, r.TopOnly), true
		}
	}
	return vector.Path{}, false
}

// strokeRing returns the outer and inner edges of a stroke of width w drawn
// centered on the region's outline.
func strokeRing(r *layout.Region, w float32) (outer, inner vector.Path, ok bool) {
	grow := r.Rect.Inset(-w/2, -w/2)
	shrink := r.Rect.Inset(w/2, w/2)
	switch r.Kind {
	case layout.KindCircle:
		return vector.EllipsePath(grow), vector.EllipsePath(shrink).Reverse(), true
	case layout.KindRect, layout.KindRoundedRect, layout.KindImage, layout.KindGroup:
		rad := r.Radius
		if r.Kind == layout.KindRect {
			rad = 0
		}
		outer = vector.RoundedRectPath(grow, rad+w/2, r.TopOnly)
		inner = vector.RoundedRectPath(shrink, max(rad-w/2, 0), r.TopOnly).Reverse()
		return outer, inner, true
	}
	return vector.Path{}, vector.Path{}, false
}

// lineQuad turns a line region into a quad of the stroke width. The line
// runs from Rect's min corner to its max corner.
func lineQuad(r *layout.Region) vector.Path {
	a, b := r.Rect.Min(), r.Rect.Max()
	w := r.Stroke.Width
	if w <= 0 {
		w = 1
	}
	dx, dy := b.X-a.X, b.Y-a.Y
	var nx, ny float32
	switch {
	case dx == 0:
		nx = w / 2
	case dy == 0:
		ny = w / 2
	default:
		l := float32(math.Hypot(float64(dx), float64(dy)))
		nx, ny = -dy/l*w/2, dx/l*w/2
	}
	return vector.Polygon(
		vector.Pt{X: a.X - nx, Y: a.Y - ny},
		vector.Pt{X: b.X - nx, Y: b.Y - ny},
		vector.Pt{X: b.X + nx, Y: b.Y + ny},
		vector.Pt{X: a.X + nx, Y: a.Y + ny},
	)
}

// glyphShapes draws the "photo" glyph as a camera body with a lens.
func glyphShapes(r vector.Rect) (body, lens vector.Path) {
	b := vector.R(r.X, r.Y+r.H*0.2, r.W, r.H*0.65)
	l := b.Center()
	rad := b.H * 0.28
	return vector.RoundedRectPath(b, r.W*0.15, false), vector.EllipsePath(vector.R(l.X-rad, l.Y-rad, 2*rad, 2*rad))
}

// decodePhoto decodes a JPEG, PNG or WebP blob.
func decodePhoto(blob []byte) (image.Image, string, error) {
	return image.Decode(bytes.NewReader(blob))
}

// coverRect returns the placement of an iw x ih image that fills r while
// keeping its aspect ratio, centered and overflowing on one axis.
func coverRect(r vector.Rect, iw, ih int) vector.Rect {
	if iw <= 0 || ih <= 0 {
		return r
	}
	s := max(r.W/float32(iw), r.H/float32(ih))
	w, h := float32(iw)*s, float32(ih)*s
	return vector.R(r.X+(r.W-w)/2, r.Y+(r.H-h)/2, w, h)
}
