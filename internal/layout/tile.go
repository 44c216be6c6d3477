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
	"beri/internal/domain"
	"beri/internal/vector"
)

const (
	tileRadius   = 16
	captionGap   = 6
	captionLineH = 16
)

// ToVector converts a widget color to a paint color.
func ToVector(c domain.Color) vector.Color { return vector.Color{R: c.R, G: c.G, B: c.B, A: c.A} }

// Tile renders a widget for the home grid: the template drawn over a rounded
// background in the widget's color, with the size name as a caption below.
func Tile(w domain.UserWidget) *Region { return defaultRenderer.Tile(w) }

func (rd *Renderer) Tile(w domain.UserWidget) *Region {
	fp := catalog.PreviewSize(w.Size)
	body := vector.R(0, 0, fp.W, fp.H)
	root := &Region{Kind: KindGroup, Role: RoleTile, Rect: vector.R(0, 0, fp.W, fp.H+captionGap+captionLineH)}
	bg := &Region{Kind: KindRoundedRect, Role: RoleBackground, Rect: body, Radius: tileRadius, Clip: true, Fill: vector.Solid(ToVector(w.Color))}
	bg.add(rd.content(body, Input{Template: w.Template, Size: w.Size, Text: w.Text, Images: w.Images})...)
	caption := rd.text(vector.R(0, fp.H+captionGap, fp.W, captionLineH), w.Size.String(), "Caption", vector.Gray)
	caption.Role = RoleCaption
	return root.add(bg, caption)
}
