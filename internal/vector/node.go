/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

// Node is a hit-testable shape placed by a transform. The layout tree uses
// nodes to answer "which photo slot did the user tap" on rotated cards.
type Node interface {
	Bounds() Rect
	Transform() Affine2D
	SetTransform(Affine2D)
	Hit(p Pt) bool
}

type baseNode struct{ xf Affine2D }

func (b *baseNode) Transform() Affine2D     { return b.xf }
func (b *baseNode) SetTransform(m Affine2D) { b.xf = m }

// transformedBounds maps the four corners of r through m.
func transformedBounds(r Rect, m Affine2D) Rect {
	corners := [4]Pt{{r.X, r.Y}, {r.X + r.W, r.Y}, {r.X, r.Y + r.H}, {r.X + r.W, r.Y + r.H}}
	p := m.Apply(corners[0])
	minX, minY, maxX, maxY := p.X, p.Y, p.X, p.Y
	for _, c := range corners[1:] {
		p = m.Apply(c)
		minX = min(minX, p.X)
		minY = min(minY, p.Y)
		maxX = max(maxX, p.X)
		maxY = max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// RectNode is an axis-aligned rectangle before transform.
type RectNode struct {
	baseNode
	rect Rect
}

func NewRect(r Rect) *RectNode { return &RectNode{baseNode: baseNode{xf: Identity}, rect: r} }

func (n *RectNode) Bounds() Rect { return transformedBounds(n.rect, n.xf) }
func (n *RectNode) Hit(p Pt) bool {
	return n.rect.Contains(n.xf.Invert().Apply(p))
}

// RoundedRectNode uses a uniform corner radius.
type RoundedRectNode struct {
	baseNode
	rect Rect
	r    float32
}

func NewRoundedRect(r Rect, radius float32) *RoundedRectNode {
	return &RoundedRectNode{baseNode: baseNode{xf: Identity}, rect: r, r: radius}
}

func (n *RoundedRectNode) Bounds() Rect { return transformedBounds(n.rect, n.xf) }

func (n *RoundedRectNode) Hit(p Pt) bool {
	q := n.xf.Invert().Apply(p)
	if !n.rect.Contains(q) {
		return false
	}
	rad := min(n.r, min(n.rect.W, n.rect.H)/2)
	if rad <= 0 {
		return true
	}
	// inside the cross formed by insetting one axis at a time
	if q.X >= n.rect.X+rad && q.X <= n.rect.X+n.rect.W-rad {
		return true
	}
	if q.Y >= n.rect.Y+rad && q.Y <= n.rect.Y+n.rect.H-rad {
		return true
	}
	cx := n.rect.X + rad
	if q.X > n.rect.X+n.rect.W/2 {
		cx = n.rect.X + n.rect.W - rad
	}
	cy := n.rect.Y + rad
	if q.Y > n.rect.Y+n.rect.H/2 {
		cy = n.rect.Y + n.rect.H - rad
	}
	dx, dy := q.X-cx, q.Y-cy
	return dx*dx+dy*dy <= rad*rad
}

// Group holds child nodes; its transform applies before the children's.
type Group struct {
	baseNode
	Children []Node
}

func NewGroup(children ...Node) *Group {
	g := &Group{baseNode: baseNode{xf: Identity}}
	g.Children = append(g.Children, children...)
	return g
}

func (g *Group) Bounds() Rect {
	var b Rect
	for i, c := range g.Children {
		cb := c.Bounds()
		if i == 0 {
			b = cb
			continue
		}
		b = b.Union(cb)
	}
	return transformedBounds(b, g.xf)
}

// HitIndex returns the top-most child containing p, or -1.
func (g *Group) HitIndex(p Pt) int {
	q := g.xf.Invert().Apply(p)
	for i := len(g.Children) - 1; i >= 0; i-- {
		if g.Children[i].Hit(q) {
			return i
		}
	}
	return -1
}

func (g *Group) Hit(p Pt) bool { return g.HitIndex(p) >= 0 }
