/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package catalog is the static registry of widget templates: which size each
// template belongs to, how many photos it needs, its display name and the
// layout family that draws it. It is the single source of truth for the
// size/template pairing.
package catalog

import "beri/internal/domain"

// Family names a layout builder. Several templates share a family and differ
// only in their outer frame size.
type Family uint8

const (
	FamilySticky Family = iota
	FamilyRuled
	FamilyGrid
	FamilyPolaroid
	FamilyTwoSticky
)

func (f Family) String() string {
	switch f {
	case FamilySticky:
		return "sticky"
	case FamilyRuled:
		return "ruled"
	case FamilyGrid:
		return "grid"
	case FamilyPolaroid:
		return "polaroid"
	case FamilyTwoSticky:
		return "twoSticky"
	default:
		return "unknown"
	}
}

// Families lists every family in declaration order.
func Families() []Family {
	return []Family{FamilySticky, FamilyRuled, FamilyGrid, FamilyPolaroid, FamilyTwoSticky}
}

// Entry describes one template.
type Entry struct {
	Template    domain.Template
	Size        domain.WidgetSize
	Family      Family
	Photos      int
	DisplayName string
	Icon        string
}

// entries is indexed by domain.Template.
var entries = [...]Entry{
	domain.SmallStickyNote:      {domain.SmallStickyNote, domain.Small, FamilySticky, 0, "Sticky note", "note.text"},
	domain.SmallNote:            {domain.SmallNote, domain.Small, FamilyRuled, 0, "Note", "list.bullet.rectangle"},
	domain.SmallMathNote:        {domain.SmallMathNote, domain.Small, FamilyGrid, 0, "Math note", "function"},
	domain.SmallPolaroid:        {domain.SmallPolaroid, domain.Small, FamilyPolaroid, 1, "Polaroid", "photo"},
	domain.MediumTwoStickyNotes: {domain.MediumTwoStickyNotes, domain.Medium, FamilyTwoSticky, 0, "Sticky notes", "note.text"},
	domain.MediumLongNote:       {domain.MediumLongNote, domain.Medium, FamilyRuled, 0, "Note", "list.bullet.rectangle"},
	domain.MediumLongMathNote:   {domain.MediumLongMathNote, domain.Medium, FamilyGrid, 0, "Math note", "function"},
	domain.MediumTwoPolaroids:   {domain.MediumTwoPolaroids, domain.Medium, FamilyPolaroid, 2, "Polaroids", "photo"},
	domain.LargeStickyNote:      {domain.LargeStickyNote, domain.Large, FamilySticky, 0, "Sticky note", "note.text"},
	domain.LargePolaroid:        {domain.LargePolaroid, domain.Large, FamilyPolaroid, 1, "Polaroid", "photo"},
	domain.LargeNote:            {domain.LargeNote, domain.Large, FamilyRuled, 0, "Note", "list.bullet.rectangle"},
	domain.LargeMathNote:        {domain.LargeMathNote, domain.Large, FamilyGrid, 0, "Math note", "function"},
}

// allowed keeps the declaration order used by pickers and default selection.
var allowed = map[domain.WidgetSize][]domain.Template{
	domain.Small:  {domain.SmallStickyNote, domain.SmallNote, domain.SmallMathNote, domain.SmallPolaroid},
	domain.Medium: {domain.MediumTwoStickyNotes, domain.MediumLongNote, domain.MediumLongMathNote, domain.MediumTwoPolaroids},
	domain.Large:  {domain.LargeStickyNote, domain.LargePolaroid, domain.LargeNote, domain.LargeMathNote},
}

// Lookup returns the catalog entry for t. Unknown templates fall back to the
// small sticky note so callers stay total.
func Lookup(t domain.Template) Entry {
	if !t.Valid() {
		return entries[domain.SmallStickyNote]
	}
	return entries[t]
}

// AllowedTemplates returns the templates valid for size in picker order.
func AllowedTemplates(size domain.WidgetSize) []domain.Template {
	src := allowed[size]
	return append([]domain.Template(nil), src...)
}

// DefaultTemplate is the first allowed template for size.
func DefaultTemplate(size domain.WidgetSize) domain.Template {
	if ts := allowed[size]; len(ts) > 0 {
		return ts[0]
	}
	return domain.SmallStickyNote
}

// Allows reports whether t may be used with size.
func Allows(size domain.WidgetSize, t domain.Template) bool {
	return t.Valid() && entries[t].Size == size
}

func RequiredPhotoCount(t domain.Template) int { return Lookup(t).Photos }
func DisplayName(t domain.Template) string     { return Lookup(t).DisplayName }
func SizeOf(t domain.Template) domain.WidgetSize {
	return Lookup(t).Size
}
func FamilyOf(t domain.Template) Family { return Lookup(t).Family }

// IconName is the glyph shown next to the template in the picker.
func IconName(t domain.Template) string { return Lookup(t).Icon }

// Footprint is a width/height pair in layout units.
type Footprint struct{ W, H float32 }

// PreviewSize returns the nominal preview footprint of a size class.
func PreviewSize(size domain.WidgetSize) Footprint {
	switch size {
	case domain.Medium:
		return Footprint{W: 240, H: 120}
	case domain.Large:
		return Footprint{W: 240, H: 240}
	default:
		return Footprint{W: 120, H: 120}
	}
}
