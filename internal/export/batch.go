/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"beri/internal/domain"
	"beri/internal/layout"
)

// PresetName selects default formats for a batch export.
type PresetName string

const (
	PresetWeb   PresetName = "web"
	PresetPrint PresetName = "print"
)

// BatchOptions controls exporting a set of widgets.
//
// Files are named widget-<id>.<format> under OutDir/<format>/. Tiles
// render the home-grid look (colored background plus caption) instead of
// the bare preview.
type BatchOptions struct {
	Preset  PresetName
	Formats []string // png, svg, pdf; empty means preset defaults
	OutDir  string
	Scale   float32
	Tiles   bool
}

// BatchExport renders every widget in each requested format and returns
// the written paths in order.
func BatchExport(widgets []domain.UserWidget, opt BatchOptions) ([]string, error) {
	if opt.OutDir == "" {
		return nil, fmt.Errorf("output directory is required")
	}
	formats := opt.Formats
	if len(formats) == 0 {
		formats = presetDefaultFormats(opt.Preset)
	}
	var written []string
	for _, w := range widgets {
		root := WidgetRegion(w, opt.Tiles)
		for _, f := range formats {
			f = strings.ToLower(strings.TrimSpace(f))
			out := filepath.Join(opt.OutDir, f, fmt.Sprintf("widget-%s.%s", w.ID, f))
			if err := Write(out, root, opt.Scale); err != nil {
				return written, fmt.Errorf("%s widget %s: %w", f, w.ID, err)
			}
			written = append(written, out)
		}
	}
	return written, nil
}

// WidgetRegion renders a stored widget either as its preview or as a home tile.
func WidgetRegion(w domain.UserWidget, tile bool) *layout.Region {
	if tile {
		return layout.Tile(w)
	}
	return layout.Render(layout.Input{Template: w.Template, Size: w.Size, Text: w.Text, Images: w.Images})
}

// Write picks the format from the file extension.
func Write(path string, root *layout.Region, scale float32) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return WritePNG(path, root, RasterOptions{Scale: scale})
	case ".svg":
		return WriteSVG(path, root, SVGOptions{Scale: scale})
	case ".pdf":
		return WritePDF(path, root, PDFOptions{Title: title(root)})
	default:
		return fmt.Errorf("unknown format: %q", ext)
	}
}

func title(root *layout.Region) string {
	for _, t := range layout.Find(root, layout.RoleText) {
		for _, ln := range t.Lines {
			if ln.Text != "" {
				return ln.Text
			}
		}
	}
	return "Beri widget"
}

func presetDefaultFormats(p PresetName) []string {
	switch p {
	case PresetPrint:
		return []string{"pdf", "png"}
	default:
		return []string{"png", "svg"}
	}
}
