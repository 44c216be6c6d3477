/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textlayout

// Text measurement and line breaking for widget cards. All measurement goes
// through a Provider so results are deterministic in tests and headless runs.

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// FontSpec describes a requested font.
type FontSpec struct {
	SizePt float32
	Weight int // 100..900
}

// Metrics provides font metrics in pixels for the resolved face.
type Metrics struct {
	Ascent, Descent, LineGap float32
}

// Line is a single laid out line.
type Line struct {
	Text  string  `json:"text"`
	Width float32 `json:"width"`
}

// TextBox is the result of laying out text into a box width.
type TextBox struct {
	Lines      []Line
	Width      float32
	Height     float32
	LineHeight float32
	// Truncated is set by Fit when trailing lines were dropped.
	Truncated bool
}

// Texts returns the text of each line.
func (b TextBox) Texts() []string {
	out := make([]string, len(b.Lines))
	for i, l := range b.Lines {
		out[i] = l.Text
	}
	return out
}

// Provider maps FontSpec to a concrete font.Face.
type Provider interface {
	Resolve(FontSpec) (font.Face, Metrics)
}

// BasicProvider uses x/image/basicfont Face7x13 scaled to the requested size.
type BasicProvider struct{}

const basicPx = 13

func (BasicProvider) Resolve(spec FontSpec) (font.Face, Metrics) {
	f := basicfont.Face7x13
	m := f.Metrics()
	return f, Metrics{
		Ascent:  float32(m.Ascent.Round()),
		Descent: float32(m.Descent.Round()),
		LineGap: float32(m.Height.Round() - m.Ascent.Round() - m.Descent.Round()),
	}
}

// WordWrapLayouter breaks on spaces and newlines. Words wider than the box
// are split between runes. It does not shape or hyphenate.
type WordWrapLayouter struct{ Provider Provider }

func NewWordWrap(provider Provider) *WordWrapLayouter { return &WordWrapLayouter{Provider: provider} }

func (l *WordWrapLayouter) provider() Provider {
	if l == nil || l.Provider == nil {
		return BasicProvider{}
	}
	return l.Provider
}

// Layout wraps text into maxWidth (no limit when maxWidth <= 0). Empty text
// yields a single empty line so callers always get a line height.
func (l *WordWrapLayouter) Layout(text string, st TextStyle, maxWidth float32) TextBox {
	face, met := l.provider().Resolve(st.Font)
	d := &font.Drawer{Face: face}
	scale := st.scale()
	measure := func(s string) float32 { return textWidth(d, s, scale, st.Tracking) }

	box := TextBox{LineHeight: (met.Ascent+met.Descent+met.LineGap)*scale + st.Leading}
	push := func(s string) {
		w := measure(s)
		box.Lines = append(box.Lines, Line{Text: s, Width: w})
		if w > box.Width {
			box.Width = w
		}
		box.Height += box.LineHeight
	}
	for _, para := range strings.Split(text, "\n") {
		cur := ""
		for _, word := range strings.Fields(para) {
			for _, piece := range breakWord(word, maxWidth, measure) {
				cand := piece
				if cur != "" {
					cand = cur + " " + piece
				}
				if cur != "" && maxWidth > 0 && measure(cand) > maxWidth {
					push(cur)
					cur = piece
					continue
				}
				cur = cand
			}
		}
		push(cur)
	}
	return box
}

// Fit lays out text and drops lines that would overflow maxHeight. At least
// one line is always kept.
func (l *WordWrapLayouter) Fit(text string, st TextStyle, maxWidth, maxHeight float32) TextBox {
	box := l.Layout(text, st, maxWidth)
	if maxHeight <= 0 || box.LineHeight <= 0 {
		return box
	}
	keep := int(maxHeight / box.LineHeight)
	if keep < 1 {
		keep = 1
	}
	if keep >= len(box.Lines) {
		return box
	}
	box.Lines = box.Lines[:keep]
	box.Truncated = true
	box.Height = float32(keep) * box.LineHeight
	box.Width = 0
	for _, ln := range box.Lines {
		if ln.Width > box.Width {
			box.Width = ln.Width
		}
	}
	return box
}

func breakWord(w string, maxWidth float32, measure func(string) float32) []string {
	if maxWidth <= 0 || measure(w) <= maxWidth {
		return []string{w}
	}
	var out []string
	start := 0
	for i := range w {
		if i > start && measure(w[start:i+runeLen(w[i:])]) > maxWidth {
			out = append(out, w[start:i])
			start = i
		}
	}
	return append(out, w[start:])
}

func runeLen(s string) int {
	_, n := utf8.DecodeRuneInString(s)
	return n
}

func advance(d *font.Drawer, s string) float32 {
	return float32(d.MeasureString(s) >> 6) // fixed.Int26_6 to px
}

func textWidth(d *font.Drawer, s string, scale, tracking float32) float32 {
	w := advance(d, s) * scale
	if n := utf8.RuneCountInString(s); n > 1 {
		w += tracking * float32(n-1)
	}
	return w
}

// Measure returns the single-line width and the line height of text in st.
func Measure(provider Provider, text string, st TextStyle) (w, h float32) {
	if provider == nil {
		provider = BasicProvider{}
	}
	face, met := provider.Resolve(st.Font)
	scale := st.scale()
	return textWidth(&font.Drawer{Face: face}, text, scale, st.Tracking), (met.Ascent+met.Descent)*scale + st.Leading
}
