/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package layout turns a widget description (template, size, text, photos)
// into a tree of drawable regions. Rendering is pure: the same input always
// yields an equal tree, and nothing here touches the filesystem or a UI
// toolkit. Drawing the tree is left to the ui package and the CLI.
package layout

import (
	"beri/internal/textlayout"
	"beri/internal/vector"
)

// Kind tells a drawer which primitive a region is.
type Kind string

const (
	KindGroup       Kind = "group"
	KindRect        Kind = "rect"
	KindRoundedRect Kind = "roundedRect"
	KindCircle      Kind = "circle"
	KindLine        Kind = "line"
	KindPath        Kind = "path"
	KindText        Kind = "text"
	KindImage       Kind = "image"
	KindGlyph       Kind = "glyph"
)

// Role names what a region is for, independent of how it is drawn.
type Role string

const (
	RoleFrame       Role = "frame"
	RoleTile        Role = "tile"
	RoleBackground  Role = "background"
	RoleCaption     Role = "caption"
	RoleSticky      Role = "sticky"
	RolePane        Role = "pane"
	RoleCard        Role = "card"
	RoleTape        Role = "tape"
	RoleTapeStripe  Role = "tapeStripe"
	RoleFold        Role = "fold"
	RoleHeader      Role = "header"
	RoleHole        Role = "hole"
	RoleRule        Role = "rule"
	RoleGrid        Role = "grid"
	RoleText        Role = "text"
	RolePolaroid    Role = "polaroid"
	RolePhoto       Role = "photo"
	RolePlaceholder Role = "placeholder"
	RoleGlyph       Role = "glyph"
	RoleFooter      Role = "footer"
)

// Region is one node of the layout tree. Rect is in frame coordinates before
// rotation. Rotation is in degrees (clockwise, y-down) about Rect's center
// and applies to the region and all of its descendants.
type Region struct {
	Kind     Kind          `json:"kind"`
	Role     Role          `json:"role"`
	Rect     vector.Rect   `json:"rect"`
	Radius   float32       `json:"radius,omitempty"`
	TopOnly  bool          `json:"topOnly,omitempty"` // only the top corners are rounded
	Rotation float32       `json:"rotation,omitempty"`
	Clip     bool          `json:"clip,omitempty"`
	Fill     vector.Fill   `json:"fill"`
	Stroke   vector.Stroke `json:"stroke"`
	Path     *vector.Path  `json:"path,omitempty"`

	Style string            `json:"style,omitempty"`
	Lines []textlayout.Line `json:"lines,omitempty"`
	Glyph string            `json:"glyph,omitempty"`

	// PhotoSlot is set on photo and placeholder regions.
	PhotoSlot *int   `json:"photoSlot,omitempty"`
	Image     []byte `json:"-"`

	Children []*Region `json:"children,omitempty"`
}

func (r *Region) add(children ...*Region) *Region {
	r.Children = append(r.Children, children...)
	return r
}

// Slot returns the photo slot index, or -1.
func (r *Region) Slot() int {
	if r == nil || r.PhotoSlot == nil {
		return -1
	}
	return *r.PhotoSlot
}

// Local is the transform the region applies to itself and its children.
func (r *Region) Local() vector.Affine2D {
	return vector.RotateAbout(r.Rotation, r.Rect.Center())
}

// Walk visits the tree depth-first in draw order.
func Walk(root *Region, fn func(*Region)) {
	WalkTransformed(root, func(r *Region, _ vector.Affine2D) { fn(r) })
}

// WalkTransformed is Walk with the accumulated transform of each region,
// including the region's own rotation.
func WalkTransformed(root *Region, fn func(*Region, vector.Affine2D)) {
	var visit func(r *Region, parent vector.Affine2D)
	visit = func(r *Region, parent vector.Affine2D) {
		if r == nil {
			return
		}
		xf := parent.Mul(r.Local())
		fn(r, xf)
		for _, c := range r.Children {
			visit(c, xf)
		}
	}
	visit(root, vector.Identity)
}

// Count returns how many regions in the tree have the given role.
func Count(root *Region, role Role) int {
	n := 0
	Walk(root, func(r *Region) {
		if r.Role == role {
			n++
		}
	})
	return n
}

// Find returns every region with the given role in draw order.
func Find(root *Region, role Role) []*Region {
	var out []*Region
	Walk(root, func(r *Region) {
		if r.Role == role {
			out = append(out, r)
		}
	})
	return out
}

// PhotoSlots returns the photo and placeholder regions ordered by slot.
func PhotoSlots(root *Region) []*Region {
	var out []*Region
	Walk(root, func(r *Region) {
		if r.PhotoSlot != nil {
			out = append(out, r)
		}
	})
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Slot() < out[j-1].Slot(); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// HitSlot reports which photo slot contains p, honouring rotations. When
// slots overlap the one drawn last wins.
func HitSlot(root *Region, p vector.Pt) (int, bool) {
	slot, ok := -1, false
	WalkTransformed(root, func(r *Region, xf vector.Affine2D) {
		if r.PhotoSlot == nil {
			return
		}
		n := vector.NewRoundedRect(r.Rect, r.Radius)
		n.SetTransform(xf)
		if n.Hit(p) {
			slot, ok = *r.PhotoSlot, true
		}
	})
	return slot, ok
}

// Bounds returns the union of every region's transformed bounds.
func Bounds(root *Region) vector.Rect {
	var b vector.Rect
	first := true
	WalkTransformed(root, func(r *Region, xf vector.Affine2D) {
		n := vector.NewRect(r.Rect)
		n.SetTransform(xf)
		rb := n.Bounds()
		if first {
			b, first = rb, false
			return
		}
		b = b.Union(rb)
	})
	return b
}
