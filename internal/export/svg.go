/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"beri/internal/layout"
	"beri/internal/textlayout"
	"beri/internal/vector"
)

// SVGOptions controls SVG output. The viewBox is always in layout units.
type SVGOptions struct {
	Scale float32 // width/height attributes in pixels per layout unit; <= 0 means DefaultScale
}

// SVG renders the tree as a standalone SVG document. Rotations become
// rotate() transforms and clipping regions become clipPaths.
func SVG(root *layout.Region, opt SVGOptions) ([]byte, error) {
	if root == nil {
		return nil, fmt.Errorf("nothing to render")
	}
	s := opt.Scale
	if s <= 0 {
		s = DefaultScale
	}
	w := &svgWriter{}
	r := root.Rect
	w.wf("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	w.wf("<svg xmlns=\"http://www.w3.org/2000/svg\" version=\"1.1\" width=\"%spx\" height=\"%spx\" viewBox=\"%s %s %s %s\">\n",
		num(r.W*s), num(r.H*s), num(r.X), num(r.Y), num(r.W), num(r.H))
	w.region(root, 1)
	w.wf("</svg>\n")
	if w.err != nil {
		return nil, fmt.Errorf("build svg: %w", w.err)
	}
	return w.buf.Bytes(), nil
}

// WriteSVG writes the SVG document to path.
func WriteSVG(path string, root *layout.Region, opt SVGOptions) error {
	return writeWith(path, func(out io.Writer) error {
		b, err := SVG(root, opt)
		if err != nil {
			return err
		}
		if _, err := out.Write(b); err != nil {
			return fmt.Errorf("write svg: %w", err)
		}
		return nil
	})
}

type svgWriter struct {
	buf   bytes.Buffer
	err   error
	clips int
}

func (w *svgWriter) wf(format string, args ...any) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(&w.buf, format, args...)
}

func (w *svgWriter) region(r *layout.Region, depth int) {
	ind := strings.Repeat("  ", depth)
	if r.Rotation != 0 {
		c := r.Rect.Center()
		w.wf("%s<g transform=\"rotate(%s %s %s)\">\n", ind, num(r.Rotation), num(c.X), num(c.Y))
		depth++
		ind += "  "
	}

	w.body(r, ind)

	if len(r.Children) > 0 {
		clip := ""
		if r.Clip {
			if shape, ok := outline(r); ok {
				clip = w.clipPath(shape, ind)
			}
		}
		if clip != "" {
			w.wf("%s<g clip-path=\"url(#%s)\">\n", ind, clip)
		}
		for _, c := range r.Children {
			w.region(c, depth+1)
		}
		if clip != "" {
			w.wf("%s</g>\n", ind)
		}
	}

	if r.Stroke.Enabled && r.Stroke.Width > 0 && r.Kind != layout.KindLine {
		if shape, ok := strokeOutline(r); ok {
			w.wf("%s<path d=\"%s\" fill=\"none\" %s/>\n", ind, pathData(shape), strokeAttrs(r.Stroke))
		}
	}

	if r.Rotation != 0 {
		w.wf("%s</g>\n", strings.Repeat("  ", depth-1))
	}
}

func (w *svgWriter) body(r *layout.Region, ind string) {
	switch r.Kind {
	case layout.KindRect, layout.KindRoundedRect, layout.KindCircle, layout.KindPath:
		if !r.Fill.Enabled {
			return
		}
		if shape, ok := outline(r); ok {
			w.wf("%s<path d=\"%s\" %s/>\n", ind, pathData(shape), fillAttrs(r.Fill.Color))
		}
	case layout.KindLine:
		a, b := r.Rect.Min(), r.Rect.Max()
		w.wf("%s<line x1=\"%s\" y1=\"%s\" x2=\"%s\" y2=\"%s\" %s/>\n", ind, num(a.X), num(a.Y), num(b.X), num(b.Y), strokeAttrs(r.Stroke))
	case layout.KindText:
		st := textlayout.MustStyle(r.Style)
		_, met := textlayout.BasicProvider{}.Resolve(st.Font)
		lh := st.LineHeight(nil)
		for i, ln := range r.Lines {
			y := r.Rect.Y + float32(i)*lh + met.Ascent*st.Scale()
			w.wf("%s<text x=\"%s\" y=\"%s\" font-family=\"monospace\" font-size=\"%s\" font-weight=\"%d\" %s>%s</text>\n",
				ind, num(r.Rect.X), num(y), num(st.Font.SizePt), st.Font.Weight, fillAttrs(r.Fill.Color), escText(ln.Text))
		}
	case layout.KindImage:
		shape, _ := outline(r)
		clip := w.clipPath(shape, ind)
		w.wf("%s<image x=\"%s\" y=\"%s\" width=\"%s\" height=\"%s\" preserveAspectRatio=\"xMidYMid slice\" clip-path=\"url(#%s)\" href=\"data:%s;base64,%s\"/>\n",
			ind, num(r.Rect.X), num(r.Rect.Y), num(r.Rect.W), num(r.Rect.H), clip,
			escAttr(http.DetectContentType(r.Image)), base64.StdEncoding.EncodeToString(r.Image))
	case layout.KindGlyph:
		body, lens := glyphShapes(r.Rect)
		w.wf("%s<path d=\"%s %s\" fill-rule=\"evenodd\" %s/>\n", ind, pathData(body), pathData(lens), fillAttrs(r.Fill.Color))
	}
}

func (w *svgWriter) clipPath(shape vector.Path, ind string) string {
	w.clips++
	id := "clip" + strconv.Itoa(w.clips)
	w.wf("%s<clipPath id=\"%s\"><path d=\"%s\"/></clipPath>\n", ind, id, pathData(shape))
	return id
}

// strokeOutline is the centerline a stroke follows.
func strokeOutline(r *layout.Region) (vector.Path, bool) {
	if r.Kind == layout.KindGroup {
		return vector.RoundedRectPath(r.Rect, r.Radius, r.TopOnly), true
	}
	return outline(r)
}

func pathData(p vector.Path) string {
	var b strings.Builder
	for _, c := range p.Cmds {
		switch c.Op {
		case vector.MoveTo:
			b.WriteString("M" + num(c.P.X) + " " + num(c.P.Y))
		case vector.LineTo:
			b.WriteString("L" + num(c.P.X) + " " + num(c.P.Y))
		case vector.Close:
			b.WriteString("Z")
		}
	}
	return b.String()
}

func fillAttrs(c vector.Color) string {
	if c.A == 255 {
		return fmt.Sprintf("fill=\"%s\"", svgColor(c))
	}
	return fmt.Sprintf("fill=\"%s\" fill-opacity=\"%s\"", svgColor(c), opacity(c))
}

func strokeAttrs(s vector.Stroke) string {
	out := fmt.Sprintf("stroke=\"%s\" stroke-width=\"%s\"", svgColor(s.Color), num(s.Width))
	if s.Color.A != 255 {
		out += fmt.Sprintf(" stroke-opacity=\"%s\"", opacity(s.Color))
	}
	return out
}

func opacity(c vector.Color) string {
	return strconv.FormatFloat(float64(c.A)/255, 'f', 3, 64)
}

func num(v float32) string { return strconv.FormatFloat(float64(vector.FloatRound(v, 3)), 'f', -1, 32) }

func svgColor(c vector.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func escAttr(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch ch {
		case '"':
			out = append(out, '&', 'q', 'u', 'o', 't', ';')
		case '\n':
			out = append(out, ' ')
		case '\r':
		default:
			out = append(out, ch)
		}
	}
	return string(out)
}

func escText(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch ch {
		case '&':
			out = append(out, '&', 'a', 'm', 'p', ';')
		case '<':
			out = append(out, '&', 'l', 't', ';')
		case '>':
			out = append(out, '&', 'g', 't', ';')
		default:
			out = append(out, ch)
		}
	}
	return string(out)
}
