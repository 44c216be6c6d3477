/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package catalog

import (
	"testing"

	"beri/internal/domain"
)

func TestAllowedTemplatesPartitionBySize(t *testing.T) {
	seen := map[domain.Template]bool{}
	for _, size := range domain.AllSizes() {
		ts := AllowedTemplates(size)
		if len(ts) != 4 {
			t.Fatalf("size %s: expected 4 templates, got %d", size, len(ts))
		}
		for _, tpl := range ts {
			if SizeOf(tpl) != size {
				t.Fatalf("template %s listed under %s but SizeOf=%s", tpl, size, SizeOf(tpl))
			}
			if !Allows(size, tpl) {
				t.Fatalf("Allows(%s,%s) = false", size, tpl)
			}
			if seen[tpl] {
				t.Fatalf("template %s listed twice", tpl)
			}
			seen[tpl] = true
		}
		if DefaultTemplate(size) != ts[0] {
			t.Fatalf("default for %s should be first allowed", size)
		}
	}
	if len(seen) != 12 {
		t.Fatalf("expected all 12 templates covered, got %d", len(seen))
	}
}

func TestDeclarationOrder(t *testing.T) {
	want := []domain.Template{domain.LargeStickyNote, domain.LargePolaroid, domain.LargeNote, domain.LargeMathNote}
	got := AllowedTemplates(domain.Large)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("large order mismatch at %d: got %s want %s", i, got[i], want[i])
		}
	}
	// returned slice must be a copy
	got[0] = domain.SmallNote
	if AllowedTemplates(domain.Large)[0] != domain.LargeStickyNote {
		t.Fatalf("AllowedTemplates leaked internal slice")
	}
}

func TestRequiredPhotoCountTable(t *testing.T) {
	want := map[domain.Template]int{
		domain.SmallPolaroid:      1,
		domain.MediumTwoPolaroids: 2,
		domain.LargePolaroid:      1,
	}
	for _, tpl := range domain.AllTemplates() {
		n := RequiredPhotoCount(tpl)
		if n < 0 || n > 2 {
			t.Fatalf("%s: photo count %d out of range", tpl, n)
		}
		if n != want[tpl] {
			t.Fatalf("%s: photo count %d, want %d", tpl, n, want[tpl])
		}
	}
}

func TestDisplayNamesAndFamilies(t *testing.T) {
	cases := []struct {
		tpl    domain.Template
		name   string
		family Family
	}{
		{domain.SmallStickyNote, "Sticky note", FamilySticky},
		{domain.MediumTwoStickyNotes, "Sticky notes", FamilyTwoSticky},
		{domain.MediumLongNote, "Note", FamilyRuled},
		{domain.LargeMathNote, "Math note", FamilyGrid},
		{domain.MediumTwoPolaroids, "Polaroids", FamilyPolaroid},
	}
	for _, c := range cases {
		if DisplayName(c.tpl) != c.name {
			t.Fatalf("%s: display name %q, want %q", c.tpl, DisplayName(c.tpl), c.name)
		}
		if FamilyOf(c.tpl) != c.family {
			t.Fatalf("%s: family %s, want %s", c.tpl, FamilyOf(c.tpl), c.family)
		}
	}
	if Allows(domain.Small, domain.LargeNote) {
		t.Fatalf("large template must not be allowed for small size")
	}
}

func TestPreviewSize(t *testing.T) {
	if p := PreviewSize(domain.Small); p.W != 120 || p.H != 120 {
		t.Fatalf("small: %+v", p)
	}
	if p := PreviewSize(domain.Medium); p.W != 240 || p.H != 120 {
		t.Fatalf("medium: %+v", p)
	}
	if p := PreviewSize(domain.Large); p.W != 240 || p.H != 240 {
		t.Fatalf("large: %+v", p)
	}
}
