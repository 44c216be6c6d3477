/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

// This file defines the core data model for widgets: sizes, templates, colors
// and the user-created widget entity. The raw string tags are a wire format
// shared with the widget extension and must not change.

import (
	"time"

	"github.com/google/uuid"
)

// WidgetSize is the size class of a widget.
type WidgetSize uint8

const (
	Small WidgetSize = iota
	Medium
	Large
)

var sizeRaw = [...]string{Small: "Small", Medium: "Medium", Large: "Large"}

// String returns the raw tag ("Small", "Medium", "Large").
func (s WidgetSize) String() string {
	if int(s) < len(sizeRaw) {
		return sizeRaw[s]
	}
	return "Unknown"
}

// Valid reports whether s is one of the declared sizes.
func (s WidgetSize) Valid() bool { return int(s) < len(sizeRaw) }

// ParseSize maps a raw tag back to a WidgetSize.
func ParseSize(raw string) (WidgetSize, bool) {
	for i, r := range sizeRaw {
		if r == raw {
			return WidgetSize(i), true
		}
	}
	return 0, false
}

// Template is one of the twelve fixed visual layouts.
type Template uint8

const (
	SmallStickyNote Template = iota
	SmallNote
	SmallMathNote
	SmallPolaroid

	MediumTwoStickyNotes
	MediumLongNote
	MediumLongMathNote
	MediumTwoPolaroids

	LargeStickyNote
	LargePolaroid
	LargeNote
	LargeMathNote

	templateCount
)

var templateRaw = [...]string{
	SmallStickyNote:      "smallStickyNote",
	SmallNote:            "smallNote",
	SmallMathNote:        "smallMathNote",
	SmallPolaroid:        "smallPolaroid",
	MediumTwoStickyNotes: "mediumTwoStickyNotes",
	MediumLongNote:       "mediumLongNote",
	MediumLongMathNote:   "mediumLongMathNote",
	MediumTwoPolaroids:   "mediumTwoPolaroids",
	LargeStickyNote:      "largeStickyNote",
	LargePolaroid:        "largePolaroid",
	LargeNote:            "largeNote",
	LargeMathNote:        "largeMathNote",
}

// String returns the raw tag, e.g. "smallStickyNote".
func (t Template) String() string {
	if t < templateCount {
		return templateRaw[t]
	}
	return "unknown"
}

// Valid reports whether t is one of the declared templates.
func (t Template) Valid() bool { return t < templateCount }

// ParseTemplate maps a raw tag back to a Template.
func ParseTemplate(raw string) (Template, bool) {
	for i, r := range templateRaw {
		if r == raw {
			return Template(i), true
		}
	}
	return 0, false
}

// AllTemplates returns every template in declaration order.
func AllTemplates() []Template {
	out := make([]Template, 0, templateCount)
	for t := Template(0); t < templateCount; t++ {
		out = append(out, t)
	}
	return out
}

// AllSizes returns every size in declaration order.
func AllSizes() []WidgetSize { return []WidgetSize{Small, Medium, Large} }

// UserWidget is a widget created by the user. It is never mutated after
// creation; replace the whole value instead.
type UserWidget struct {
	ID        uuid.UUID
	Text      string
	Color     Color
	Size      WidgetSize
	Template  Template
	Images    [][]byte
	CreatedAt time.Time
}

// NewUserWidget builds a widget with a fresh id. Images beyond maxImages are
// dropped; the caller passes the template's required photo count.
func NewUserWidget(text string, c Color, size WidgetSize, tpl Template, images [][]byte, maxImages int, now time.Time) UserWidget {
	if maxImages < 0 {
		maxImages = 0
	}
	if len(images) > maxImages {
		images = images[:maxImages]
	}
	cp := make([][]byte, len(images))
	for i, b := range images {
		cp[i] = append([]byte(nil), b...)
	}
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return UserWidget{
		ID:        id,
		Text:      text,
		Color:     c,
		Size:      size,
		Template:  tpl,
		Images:    cp,
		CreatedAt: now,
	}
}
