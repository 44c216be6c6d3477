/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import "math"

// Path is a polyline/polygon used for decorations such as the folded corner
// of a sticky note. Curves are not needed by any layout, so only straight
// segments are supported.

type PathOp uint8

const (
	MoveTo PathOp = iota
	LineTo
	Close
)

type PathCmd struct {
	Op PathOp
	P  Pt
}

type Path struct{ Cmds []PathCmd }

func (p *Path) MoveTo(x, y float32) { p.Cmds = append(p.Cmds, PathCmd{Op: MoveTo, P: Pt{x, y}}) }
func (p *Path) LineTo(x, y float32) { p.Cmds = append(p.Cmds, PathCmd{Op: LineTo, P: Pt{x, y}}) }
func (p *Path) Close()              { p.Cmds = append(p.Cmds, PathCmd{Op: Close}) }

// Polygon builds a closed path through pts.
func Polygon(pts ...Pt) Path {
	var p Path
	for i, q := range pts {
		if i == 0 {
			p.MoveTo(q.X, q.Y)
			continue
		}
		p.LineTo(q.X, q.Y)
	}
	if len(pts) > 0 {
		p.Close()
	}
	return p
}

// Points returns the vertices of the path in order.
func (p Path) Points() []Pt {
	out := make([]Pt, 0, len(p.Cmds))
	for _, c := range p.Cmds {
		if c.Op != Close {
			out = append(out, c.P)
		}
	}
	return out
}

// Bounds returns the axis-aligned bounding box of the path vertices.
func (p Path) Bounds() Rect {
	pts := p.Points()
	if len(pts) == 0 {
		return Rect{}
	}
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, q := range pts[1:] {
		minX = min(minX, q.X)
		minY = min(minY, q.Y)
		maxX = max(maxX, q.X)
		maxY = max(maxY, q.Y)
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Translate returns a copy of the path moved by dx,dy.
func (p Path) Translate(dx, dy float32) Path {
	out := Path{Cmds: make([]PathCmd, len(p.Cmds))}
	for i, c := range p.Cmds {
		if c.Op != Close {
			c.P = Pt{c.P.X + dx, c.P.Y + dy}
		}
		out.Cmds[i] = c
	}
	return out
}

// Reverse returns the vertices of a closed path in opposite winding order.
func (p Path) Reverse() Path {
	pts := p.Points()
	for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
		pts[i], pts[j] = pts[j], pts[i]
	}
	return Polygon(pts...)
}

// arcSegments is how many straight segments approximate a quarter circle.
const arcSegments = 8

// RoundedRectPath outlines r clockwise (y-down) with corners of the given
// radius, clamped to half the shorter side. With topOnly the bottom corners
// stay square.
func RoundedRectPath(r Rect, radius float32, topOnly bool) Path {
	rad := max(min(radius, min(r.W, r.H)/2), 0)
	bottom := rad
	if topOnly {
		bottom = 0
	}
	var pts []Pt
	pts = appendArc(pts, Pt{r.X + rad, r.Y + rad}, rad, 180)
	pts = appendArc(pts, Pt{r.X + r.W - rad, r.Y + rad}, rad, 270)
	pts = appendArc(pts, Pt{r.X + r.W - bottom, r.Y + r.H - bottom}, bottom, 0)
	pts = appendArc(pts, Pt{r.X + bottom, r.Y + r.H - bottom}, bottom, 90)
	return Polygon(pts...)
}

// EllipsePath outlines the ellipse inscribed in r.
func EllipsePath(r Rect) Path {
	c := r.Center()
	n := 4 * arcSegments
	pts := make([]Pt, 0, n)
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts = append(pts, Pt{c.X + r.W/2*float32(math.Cos(a)), c.Y + r.H/2*float32(math.Sin(a))})
	}
	return Polygon(pts...)
}

func appendArc(pts []Pt, c Pt, rad float32, startDeg float64) []Pt {
	if rad <= 0 {
		return append(pts, c)
	}
	for i := 0; i <= arcSegments; i++ {
		a := (startDeg + 90*float64(i)/arcSegments) * math.Pi / 180
		pts = append(pts, Pt{c.X + rad*float32(math.Cos(a)), c.Y + rad*float32(math.Sin(a))})
	}
	return pts
}
