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
	"beri/internal/textlayout"
	"beri/internal/vector"
)

// Input is everything a render depends on.
type Input struct {
	Template domain.Template
	Size     domain.WidgetSize
	Text     string
	Images   [][]byte
}

// Renderer holds the text layouter. The zero value is usable.
type Renderer struct {
	Text *textlayout.WordWrapLayouter
}

// New returns a renderer measuring text with provider (nil uses the basic font).
func New(provider textlayout.Provider) *Renderer {
	return &Renderer{Text: textlayout.NewWordWrap(provider)}
}

var defaultRenderer = New(nil)

// Render builds the preview tree with the default renderer.
func Render(in Input) *Region { return defaultRenderer.Render(in) }

// builder draws one template family into r.
type builder func(rd *Renderer, r vector.Rect, in Input) []*Region

var families = map[catalog.Family]builder{
	catalog.FamilySticky:    buildSticky,
	catalog.FamilyRuled:     buildRuled,
	catalog.FamilyGrid:      buildGrid,
	catalog.FamilyPolaroid:  buildPolaroid,
	catalog.FamilyTwoSticky: buildTwoSticky,
}

// Render maps the input to a preview: the template family drawn into the
// size's preview frame, clipped to a rounded border. The size/template
// pairing is not checked here.
func (rd *Renderer) Render(in Input) *Region {
	fp := catalog.PreviewSize(in.Size)
	frame := vector.R(0, 0, fp.W, fp.H)
	root := &Region{
		Kind:   KindGroup,
		Role:   RoleFrame,
		Rect:   frame,
		Radius: previewRadius,
		Clip:   true,
		Stroke: vector.Line(vector.Purple.Opacity(0.18), 1),
	}
	return root.add(rd.content(frame, in)...)
}

func (rd *Renderer) content(r vector.Rect, in Input) []*Region {
	b, ok := families[catalog.FamilyOf(in.Template)]
	if !ok {
		b = buildSticky
	}
	return b(rd, r, in)
}

func (rd *Renderer) layouter() *textlayout.WordWrapLayouter {
	if rd == nil || rd.Text == nil {
		return defaultRenderer.Text
	}
	return rd.Text
}

// usableImages keeps the first n images; empty blobs stay as gaps.
func usableImages(images [][]byte, n int) [][]byte {
	out := make([][]byte, n)
	for i := 0; i < n && i < len(images); i++ {
		if len(images[i]) > 0 {
			out[i] = images[i]
		}
	}
	return out
}
