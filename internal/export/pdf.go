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
	"fmt"
	"image/png"
	"io"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"beri/internal/layout"
	"beri/internal/textlayout"
	"beri/internal/vector"
)

// PDFOptions controls PDF output. Units are points and the page is the
// root region's rect.
type PDFOptions struct {
	Title  string
	Author string
}

// PDF renders the tree as a single-page vector PDF. Photos are embedded as
// PNG; text uses the built-in Helvetica so nothing needs embedding.
func PDF(w io.Writer, root *layout.Region, opt PDFOptions) error {
	if root == nil {
		return fmt.Errorf("nothing to render")
	}
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: float64(root.Rect.W), Ht: float64(root.Rect.H)},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	if opt.Title != "" {
		pdf.SetTitle(opt.Title, true)
	}
	author := opt.Author
	if author == "" {
		author = "Beri"
	}
	pdf.SetAuthor(author, true)
	pdf.AddPage()

	p := &pdfPainter{pdf: pdf, origin: vector.Pt{X: root.Rect.X, Y: root.Rect.Y}}
	p.region(root)
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// WritePDF writes the PDF to path.
func WritePDF(path string, root *layout.Region, opt PDFOptions) error {
	return writeWith(path, func(w io.Writer) error { return PDF(w, root, opt) })
}

type pdfPainter struct {
	pdf    *gofpdf.Fpdf
	origin vector.Pt
	images int
}

func (p *pdfPainter) region(r *layout.Region) {
	if r.Rotation != 0 {
		c := p.pt(r.Rect.Center())
		p.pdf.TransformBegin()
		p.pdf.TransformRotate(-float64(r.Rotation), c.X, c.Y)
	}

	p.body(r)

	if len(r.Children) > 0 {
		clipped := false
		if r.Clip {
			if shape, ok := outline(r); ok {
				p.pdf.ClipPolygon(p.points(shape), false)
				clipped = true
			}
		}
		for _, c := range r.Children {
			p.region(c)
		}
		if clipped {
			p.pdf.ClipEnd()
		}
	}

	if r.Stroke.Enabled && r.Stroke.Width > 0 && r.Kind != layout.KindLine {
		if shape, ok := strokeOutline(r); ok {
			p.stroke(r.Stroke)
			p.pdf.Polygon(p.points(shape), "D")
		}
	}
	p.pdf.SetAlpha(1, "Normal")

	if r.Rotation != 0 {
		p.pdf.TransformEnd()
	}
}

func (p *pdfPainter) body(r *layout.Region) {
	switch r.Kind {
	case layout.KindRect, layout.KindRoundedRect, layout.KindCircle, layout.KindPath:
		if !r.Fill.Enabled {
			return
		}
		if shape, ok := outline(r); ok {
			p.fill(r.Fill.Color)
			p.pdf.Polygon(p.points(shape), "F")
		}
	case layout.KindLine:
		if !r.Stroke.Enabled {
			return
		}
		p.stroke(r.Stroke)
		a, b := p.pt(r.Rect.Min()), p.pt(r.Rect.Max())
		p.pdf.Line(a.X, a.Y, b.X, b.Y)
	case layout.KindText:
		p.text(r)
	case layout.KindImage:
		p.photo(r)
	case layout.KindGlyph:
		body, lens := glyphShapes(r.Rect)
		p.fill(r.Fill.Color)
		p.pdf.Polygon(p.points(body), "F")
		p.fill(vector.White)
		p.pdf.Polygon(p.points(lens), "F")
	}
}

func (p *pdfPainter) text(r *layout.Region) {
	st := textlayout.MustStyle(r.Style)
	_, met := textlayout.BasicProvider{}.Resolve(st.Font)
	lh := st.LineHeight(nil)
	style := ""
	if st.Font.Weight >= 600 {
		style = "B"
	}
	p.pdf.SetFont("Helvetica", style, float64(st.Font.SizePt))
	c := r.Fill.Color
	p.pdf.SetTextColor(int(c.R), int(c.G), int(c.B))
	p.pdf.SetAlpha(float64(c.A)/255, "Normal")
	for i, ln := range r.Lines {
		at := p.pt(vector.Pt{X: r.Rect.X, Y: r.Rect.Y + float32(i)*lh + met.Ascent*st.Scale()})
		p.pdf.Text(at.X, at.Y, ln.Text)
	}
}

// photo embeds the image re-encoded as PNG, covering its rect and clipped
// to the rect's rounded shape.
func (p *pdfPainter) photo(r *layout.Region) {
	shape, _ := outline(r)
	img, _, err := decodePhoto(r.Image)
	if err != nil {
		p.fill(vector.Gray.Opacity(0.15))
		p.pdf.Polygon(p.points(shape), "F")
		return
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return
	}
	p.images++
	name := "photo" + strconv.Itoa(p.images)
	opt := gofpdf.ImageOptions{ImageType: "PNG"}
	p.pdf.RegisterImageOptionsReader(name, opt, &buf)
	b := img.Bounds()
	place := coverRect(r.Rect, b.Dx(), b.Dy())
	at := p.pt(place.Min())
	p.pdf.ClipPolygon(p.points(shape), false)
	p.pdf.ImageOptions(name, at.X, at.Y, float64(place.W), float64(place.H), false, opt, 0, "")
	p.pdf.ClipEnd()
}

func (p *pdfPainter) fill(c vector.Color) {
	p.pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
	p.pdf.SetAlpha(float64(c.A)/255, "Normal")
}

func (p *pdfPainter) stroke(s vector.Stroke) {
	p.pdf.SetDrawColor(int(s.Color.R), int(s.Color.G), int(s.Color.B))
	p.pdf.SetLineWidth(float64(s.Width))
	p.pdf.SetAlpha(float64(s.Color.A)/255, "Normal")
}

func (p *pdfPainter) pt(q vector.Pt) gofpdf.PointType {
	return gofpdf.PointType{X: float64(q.X - p.origin.X), Y: float64(q.Y - p.origin.Y)}
}

func (p *pdfPainter) points(path vector.Path) []gofpdf.PointType {
	pts := path.Points()
	out := make([]gofpdf.PointType, len(pts))
	for i, q := range pts {
		out[i] = p.pt(q)
	}
	return out
}
