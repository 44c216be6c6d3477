/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

import "math"

type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// RGBAColor is the normalized form used by the shared slot. Each channel is
// in [0,1]; alpha is straight, not premultiplied.
type RGBAColor struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

// Palette colors from the app's design system, defined by their unit
// channels and rounded to 8 bits.
var (
	PalettePrimary     = Color{R: 77, G: 71, B: 166, A: 255} // 0.30, 0.28, 0.65
	PalettePrimaryDark = Color{R: 43, G: 41, B: 107, A: 255} // 0.17, 0.16, 0.42
)

// Normalized converts to channels in [0,1].
func (c Color) Normalized() RGBAColor {
	return RGBAColor{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
		A: float64(c.A) / 255,
	}
}

// Color converts back to 8-bit channels, clamping out-of-range input.
func (n RGBAColor) Color() Color {
	return Color{R: unit8(n.R), G: unit8(n.G), B: unit8(n.B), A: unit8(n.A)}
}

func unit8(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(v * 255))
}

// Luminance returns the relative luminance used to pick a contrasting text color.
func (c Color) Luminance() float64 {
	n := c.Normalized()
	return 0.2126*n.R + 0.7152*n.G + 0.0722*n.B
}

// Contrast returns black for light colors and white for dark ones.
func (c Color) Contrast() Color {
	if c.Luminance() > 0.6 {
		return Color{A: 255}
	}
	return Color{R: 255, G: 255, B: 255, A: 255}
}

// WithAlpha returns c with alpha set from an opacity in [0,1].
func (c Color) WithAlpha(opacity float64) Color {
	c.A = unit8(opacity)
	return c
}
