//go:build fyne

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"beri/internal/export"
	"beri/internal/layout"
	"beri/internal/vector"
)

// rasterScale is how many pixels one layout unit gets in the bitmap shown
// on screen; fyne scales it down to the widget size.
const rasterScale = 2

// RegionView shows a rendered layout tree scaled to fit, letterboxed to keep
// its aspect ratio. Taps on photo slots are reported through OnSlotTapped.
type RegionView struct {
	widget.BaseWidget
	root *layout.Region

	OnSlotTapped func(slot int)
}

func NewRegionView(root *layout.Region) *RegionView {
	v := &RegionView{root: root}
	v.ExtendBaseWidget(v)
	return v
}

// SetRegion swaps the tree and redraws.
func (v *RegionView) SetRegion(root *layout.Region) {
	v.root = root
	v.Refresh()
}

func (v *RegionView) Region() *layout.Region { return v.root }

func (v *RegionView) CreateRenderer() fyne.WidgetRenderer {
	img := &canvas.Image{FillMode: canvas.ImageFillContain, ScaleMode: canvas.ImageScaleSmooth}
	r := &regionViewRenderer{view: v, img: img}
	r.Refresh()
	return r
}

// Tapped implements fyne.Tappable.
func (v *RegionView) Tapped(e *fyne.PointEvent) {
	if v.OnSlotTapped == nil {
		return
	}
	if slot, ok := v.SlotAt(e.Position); ok {
		v.OnSlotTapped(slot)
	}
}

// SlotAt maps a widget position to the photo slot under it.
func (v *RegionView) SlotAt(pos fyne.Position) (int, bool) {
	p, ok := v.toLayout(pos)
	if !ok {
		return -1, false
	}
	return layout.HitSlot(v.root, p)
}

func (v *RegionView) toLayout(pos fyne.Position) (vector.Pt, bool) {
	if v.root == nil || v.root.Rect.W <= 0 || v.root.Rect.H <= 0 {
		return vector.Pt{}, false
	}
	size := v.Size()
	rw, rh := v.root.Rect.W, v.root.Rect.H
	s := min(size.Width/rw, size.Height/rh)
	if s <= 0 {
		return vector.Pt{}, false
	}
	ox := (size.Width - rw*s) / 2
	oy := (size.Height - rh*s) / 2
	return vector.Pt{X: (pos.X-ox)/s + v.root.Rect.X, Y: (pos.Y-oy)/s + v.root.Rect.Y}, true
}

type regionViewRenderer struct {
	view *RegionView
	img  *canvas.Image
}

func (r *regionViewRenderer) Destroy()                     {}
func (r *regionViewRenderer) Objects() []fyne.CanvasObject { return []fyne.CanvasObject{r.img} }

func (r *regionViewRenderer) MinSize() fyne.Size {
	if r.view.root == nil {
		return fyne.NewSize(0, 0)
	}
	return fyne.NewSize(r.view.root.Rect.W, r.view.root.Rect.H)
}

func (r *regionViewRenderer) Layout(size fyne.Size) {
	r.img.Resize(size)
	r.img.Move(fyne.NewPos(0, 0))
}

func (r *regionViewRenderer) Refresh() {
	r.img.Image = export.Raster(r.view.root, export.RasterOptions{Scale: rasterScale})
	r.img.Refresh()
}
