/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textlayout

// TextStyle is a named text preset used by the widget cards.
// Tracking and Leading are measured in pixels.
type TextStyle struct {
	Name     string
	Font     FontSpec
	Tracking float32 // px between glyphs (added per inter-glyph gap)
	Leading  float32 // extra px added to line height
}

// scale maps the basic 13px face onto the requested point size.
func (s TextStyle) scale() float32 {
	if s.Font.SizePt <= 0 {
		return 1
	}
	return s.Font.SizePt / basicPx
}

// Scale is the factor applied to the basic face to draw this style.
func (s TextStyle) Scale() float32 { return s.scale() }

// LineHeight is the distance between baselines of consecutive lines.
func (s TextStyle) LineHeight(provider Provider) float32 {
	return NewWordWrap(provider).Layout("", s, 0).LineHeight
}

var builtinStyles = map[string]TextStyle{
	"Sticky":  {Name: "Sticky", Font: FontSpec{SizePt: 16, Weight: 600}},
	"Ruled":   {Name: "Ruled", Font: FontSpec{SizePt: 16, Weight: 400}, Leading: 1},
	"Grid":    {Name: "Grid", Font: FontSpec{SizePt: 16, Weight: 500}},
	"Caption": {Name: "Caption", Font: FontSpec{SizePt: 12, Weight: 400}, Tracking: 0.25},
	"Title":   {Name: "Title", Font: FontSpec{SizePt: 34, Weight: 700}},
}

// GetStyle returns a builtin style preset by name. The second return value is false if
// the style is not found.
func GetStyle(name string) (TextStyle, bool) { s, ok := builtinStyles[name]; return s, ok }

// MustStyle returns a builtin style, falling back to Sticky.
func MustStyle(name string) TextStyle {
	if s, ok := builtinStyles[name]; ok {
		return s
	}
	return builtinStyles["Sticky"]
}

// ListStyles lists the names of the builtin styles in stable order.
func ListStyles() []string {
	return []string{"Sticky", "Ruled", "Grid", "Caption", "Title"}
}
