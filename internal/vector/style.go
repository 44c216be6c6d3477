/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

// Styles and paint definitions.

type Color struct{ R, G, B, A uint8 }

var (
	Black       = Color{0, 0, 0, 255}
	White       = Color{255, 255, 255, 255}
	Gray        = Color{142, 142, 147, 255}
	Purple      = Color{175, 82, 222, 255}
	Transparent = Color{0, 0, 0, 0}
)

// Opacity returns c with its alpha scaled by o in [0,1].
func (c Color) Opacity(o float32) Color {
	if o <= 0 {
		c.A = 0
		return c
	}
	if o >= 1 {
		return c
	}
	c.A = uint8(float32(c.A)*o + 0.5)
	return c
}

type Fill struct {
	Color   Color
	Enabled bool
}

// Solid is an enabled fill of color c.
func Solid(c Color) Fill { return Fill{Color: c, Enabled: true} }

type LineCap uint8

const (
	CapButt LineCap = iota
	CapRound
	CapSquare
)

type Stroke struct {
	Color   Color
	Width   float32
	Cap     LineCap
	Enabled bool
}

// Line is an enabled stroke of color c and width w.
func Line(c Color, w float32) Stroke { return Stroke{Color: c, Width: w, Enabled: true} }
