/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package layout

import (
	"beri/internal/catalog"
	"beri/internal/textlayout"
	"beri/internal/vector"
)

const (
	previewRadius = 16

	cardRadius  = 10
	cardPadding = 12
	textPadding = 12

	tapeW, tapeH      = 46, 14
	tapeRotation      = -15
	tapeDX, tapeDY    = 6, -6
	tapeRadius        = 3
	tapeStripes       = 6
	tapeStripeW       = 2
	tapeStripeGap     = 4
	foldSize          = 20
	foldInset         = 4
	headerH           = 18
	ruledHoles        = 3
	ruleCount         = 8
	holeSize          = 8
	holeLeading       = 6
	holeVPad          = 8
	ruledTextDX       = 14
	ruledTextGap      = 4
	gridStep          = 10
	gridHoles         = 7
	gridHoleGap       = 8
	polaroidGap       = 8
	polaroidRadius    = 8
	footerH           = 18
	glyphSize         = 18
	polaroidTapeW     = 34
	polaroidTapeH     = 12
	polaroidTapeRot   = -8
	polaroidTapeDY    = -6
	paneGap           = 8
	panePadding       = 8
	paneShift         = 2
	leftPaneRotation  = -2
	rightPaneRotation = 3
	leftCardRotation  = -2
	rightCardRotation = 2
)

var (
	paper      = vector.White.Opacity(0.96)
	paperLight = vector.White.Opacity(0.98)
	cardEdge   = vector.Line(vector.Black.Opacity(0.08), 1)
	ink        = vector.Black.Opacity(0.85)
	inkStrong  = vector.Black.Opacity(0.9)
)

func (rd *Renderer) text(r vector.Rect, text, style string, color vector.Color) *Region {
	box := rd.layouter().Fit(text, textlayout.MustStyle(style), r.W, r.H)
	return &Region{Kind: KindText, Role: RoleText, Rect: r, Style: style, Fill: vector.Solid(color), Lines: box.Lines}
}

// tape is a strip of washi tape with evenly spaced light stripes.
func tape(r vector.Rect, rotation float32) *Region {
	t := &Region{
		Kind:     KindRoundedRect,
		Role:     RoleTape,
		Rect:     r,
		Radius:   tapeRadius,
		Rotation: rotation,
		Fill:     vector.Solid(vector.Purple.Opacity(0.7)),
		Stroke:   vector.Line(vector.Black.Opacity(0.06), 1),
	}
	total := float32(tapeStripes*tapeStripeW + (tapeStripes-1)*tapeStripeGap)
	x := r.Center().X - total/2
	for i := 0; i < tapeStripes; i++ {
		t.add(&Region{
			Kind: KindRect,
			Role: RoleTapeStripe,
			Rect: vector.R(x+float32(i*(tapeStripeW+tapeStripeGap)), r.Y, tapeStripeW, r.H),
			Fill: vector.Solid(vector.White.Opacity(0.45)),
		})
	}
	return t
}

// stickyCard is a padded note with a folded corner and tape at the top-left.
func (rd *Renderer) stickyCard(r vector.Rect, text string) *Region {
	card := r.Inset(cardPadding, cardPadding)
	g := &Region{Kind: KindGroup, Role: RoleSticky, Rect: r}
	fold := vector.R(card.X+card.W-foldSize-foldInset, card.Y+card.H-foldSize-foldInset, foldSize, foldSize)
	tri := vector.Polygon(
		vector.Pt{X: fold.X + fold.W, Y: fold.Y},
		vector.Pt{X: fold.X + fold.W, Y: fold.Y + fold.H},
		vector.Pt{X: fold.X, Y: fold.Y + fold.H},
	)
	return g.add(
		&Region{Kind: KindRoundedRect, Role: RoleCard, Rect: card, Radius: cardRadius, Fill: vector.Solid(paper), Stroke: cardEdge},
		&Region{Kind: KindPath, Role: RoleFold, Rect: fold, Path: &tri, Fill: vector.Solid(vector.White)},
		rd.text(card.Inset(textPadding, textPadding), text, "Sticky", ink),
		tape(vector.R(card.X+tapeDX, card.Y+tapeDY, tapeW, tapeH), tapeRotation),
	)
}

func buildSticky(rd *Renderer, r vector.Rect, in Input) []*Region {
	return []*Region{rd.stickyCard(r, in.Text)}
}

// buildRuled draws lined paper: a tinted header, binder holes on the leading
// edge and evenly spaced rules below the header.
func buildRuled(rd *Renderer, r vector.Rect, in Input) []*Region {
	card := r.Inset(cardPadding, cardPadding)
	out := []*Region{
		{Kind: KindRoundedRect, Role: RoleCard, Rect: card, Radius: cardRadius, Fill: vector.Solid(paperLight), Stroke: cardEdge},
		{Kind: KindRoundedRect, Role: RoleHeader, Rect: vector.R(card.X, card.Y, card.W, headerH), Radius: cardRadius, TopOnly: true, Fill: vector.Solid(vector.Purple.Opacity(0.18))},
	}
	top := card.Y + holeVPad
	span := card.H - 2*holeVPad - holeSize
	for i := 0; i < ruledHoles; i++ {
		y := top + span*float32(i)/float32(ruledHoles-1)
		out = append(out, &Region{
			Kind: KindCircle,
			Role: RoleHole,
			Rect: vector.R(card.X+holeLeading, y, holeSize, holeSize),
			Fill: vector.Solid(vector.Black.Opacity(0.1)),
		})
	}
	ruleTop := card.Y + holeVPad + headerH
	step := (card.Y + card.H - holeVPad - ruleTop) / ruleCount
	for i := 0; i < ruleCount; i++ {
		out = append(out, &Region{
			Kind: KindRect,
			Role: RoleRule,
			Rect: vector.R(card.X+textPadding, ruleTop+step*float32(i), card.W-2*textPadding, 1),
			Fill: vector.Solid(vector.Purple.Opacity(0.15)),
		})
	}
	textTop := card.Y + headerH + ruledTextGap
	textBox := vector.R(card.X+ruledTextDX, textTop, card.W-2*ruledTextDX, card.Y+card.H-holeVPad-textTop)
	return append(out, rd.text(textBox, in.Text, "Ruled", ink))
}

// buildGrid draws squared paper with stroked binder holes.
func buildGrid(rd *Renderer, r vector.Rect, in Input) []*Region {
	card := r.Inset(cardPadding, cardPadding)
	out := []*Region{{Kind: KindRoundedRect, Role: RoleCard, Rect: card, Radius: cardRadius, Fill: vector.Solid(paperLight), Clip: true}}
	line := vector.Line(vector.Purple.Opacity(0.15), 1)
	for x := float32(0); x <= card.W; x += gridStep {
		out = append(out, &Region{Kind: KindLine, Role: RoleGrid, Rect: vector.R(card.X+x, card.Y, 0, card.H), Stroke: line})
	}
	for y := float32(0); y <= card.H; y += gridStep {
		out = append(out, &Region{Kind: KindLine, Role: RoleGrid, Rect: vector.R(card.X, card.Y+y, card.W, 0), Stroke: line})
	}
	out = append(out, rd.text(card.Inset(textPadding, textPadding), in.Text, "Grid", inkStrong))
	total := float32(gridHoles*holeSize + (gridHoles-1)*gridHoleGap)
	y0 := card.Center().Y - total/2
	for i := 0; i < gridHoles; i++ {
		out = append(out, &Region{
			Kind:   KindCircle,
			Role:   RoleHole,
			Rect:   vector.R(card.X+holeLeading, y0+float32(i*(holeSize+gridHoleGap)), holeSize, holeSize),
			Stroke: vector.Line(vector.Black.Opacity(0.2), 1),
		})
	}
	return out
}

// buildPolaroid lays out RequiredPhotoCount cards side by side. A pair is
// fanned out slightly.
func buildPolaroid(rd *Renderer, r vector.Rect, in Input) []*Region {
	n := catalog.RequiredPhotoCount(in.Template)
	if n < 1 {
		n = 1
	}
	images := usableImages(in.Images, n)
	cols := r.Inset(cardPadding, cardPadding).SplitH(n, polaroidGap)
	out := make([]*Region, 0, n)
	for i, col := range cols {
		var rot float32
		if n == 2 {
			rot = rightCardRotation
			if i == 0 {
				rot = leftCardRotation
			}
		}
		out = append(out, polaroidCard(col, i, images[i], rot))
	}
	return out
}

func polaroidCard(r vector.Rect, slot int, img []byte, rotation float32) *Region {
	g := &Region{Kind: KindGroup, Role: RolePolaroid, Rect: r, Rotation: rotation}
	g.add(&Region{Kind: KindRoundedRect, Role: RoleCard, Rect: r, Radius: polaroidRadius, Fill: vector.Solid(vector.White), Stroke: cardEdge})

	photoH := max(r.H-footerH, 0)
	area := vector.R(r.X, r.Y, r.W, photoH)
	s := slot
	if len(img) > 0 {
		g.add(&Region{Kind: KindImage, Role: RolePhoto, Rect: area, Radius: polaroidRadius, TopOnly: true, Clip: true, PhotoSlot: &s, Image: img})
	} else {
		c := area.Center()
		ph := &Region{Kind: KindRoundedRect, Role: RolePlaceholder, Rect: area, Radius: polaroidRadius, TopOnly: true, PhotoSlot: &s, Fill: vector.Solid(vector.Gray.Opacity(0.15))}
		ph.add(&Region{Kind: KindGlyph, Role: RoleGlyph, Glyph: "photo", Rect: vector.R(c.X-glyphSize/2, c.Y-glyphSize/2, glyphSize, glyphSize), Fill: vector.Solid(vector.Gray)})
		g.add(ph)
	}
	g.add(&Region{Kind: KindRect, Role: RoleFooter, Rect: vector.R(r.X, r.Y+photoH, r.W, r.H-photoH), Fill: vector.Solid(vector.White)})
	return g.add(tape(vector.R(r.Center().X-polaroidTapeW/2, r.Y+polaroidTapeDY, polaroidTapeW, polaroidTapeH), polaroidTapeRot))
}

// buildTwoSticky places two sticky notes side by side with a slight tilt.
func buildTwoSticky(rd *Renderer, r vector.Rect, in Input) []*Region {
	cols := r.Inset(panePadding, panePadding).SplitH(2, paneGap)
	left := cols[0].Offset(0, paneShift)
	right := cols[1].Offset(0, -paneShift)
	return []*Region{
		(&Region{Kind: KindGroup, Role: RolePane, Rect: left, Rotation: leftPaneRotation}).add(rd.stickyCard(left, in.Text)),
		(&Region{Kind: KindGroup, Role: RolePane, Rect: right, Rotation: rightPaneRotation}).add(rd.stickyCard(right, in.Text)),
	}
}
