/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package ui is the desktop shell: a splash screen, then Widgets, Home and
// Profile tabs. The fyne implementation is behind the "fyne" build tag; the
// default build only carries the helpers below and a stub Run.
package ui

import (
	"fmt"

	"beri/internal/app"
	"beri/internal/catalog"
	"beri/internal/config"
	"beri/internal/domain"
	"beri/internal/shared"
	"beri/internal/version"
)

// Options is what the entry point hands to Run.
type Options struct {
	Config config.AppConfig
	// Slot overrides the configured shared slot when set.
	Slot shared.Slot
}

// HomeColumns is the width of the home grid.
const HomeColumns = 2

// SizeNames lists the size picker entries in order.
func SizeNames() []string {
	sizes := domain.AllSizes()
	out := make([]string, len(sizes))
	for i, s := range sizes {
		out[i] = s.String()
	}
	return out
}

// TemplateLabel is the button caption for a template.
func TemplateLabel(t domain.Template) string {
	if n := catalog.RequiredPhotoCount(t); n > 0 {
		return fmt.Sprintf("%s (%d photo%s)", catalog.DisplayName(t), n, plural(n))
	}
	return catalog.DisplayName(t)
}

// PhotoStatus describes how many photo slots are filled; empty when the
// template takes no photos.
func PhotoStatus(filled, required int) string {
	if required == 0 {
		return ""
	}
	return fmt.Sprintf("Photos: %d of %d. Tap a photo slot in the preview to pick an image.", filled, required)
}

// SectionTitle is the heading above one size group on the home screen.
func SectionTitle(sec app.Section) string {
	return fmt.Sprintf("%s (%d)", sec.Title, len(sec.Tiles))
}

// ProfileLines is the static content of the Profile tab.
func ProfileLines(cfg config.AppConfig) []string {
	lines := []string{
		"Beri " + version.String(),
		"Shared slot: " + cfg.Shared.Backend,
		"App group: " + cfg.Shared.AppGroup,
	}
	if cfg.Shared.Backend == config.BackendSQLite || cfg.Shared.Backend == config.BackendFile {
		if p, err := cfg.SlotPath(); err == nil {
			lines = append(lines, "Slot path: "+p)
		}
	}
	return lines
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
