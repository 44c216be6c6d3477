/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package creator is the widget editor session: the user's in-progress
// choice of size, template, text and photos, with a live preview.
package creator

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"beri/internal/app"
	"beri/internal/catalog"
	"beri/internal/domain"
	"beri/internal/layout"
	applog "beri/internal/log"
	"beri/internal/undo"
	"beri/internal/vector"
)

const (
	DefaultText          = "My Widget"
	DefaultMaxImageBytes = 5 * 1024 * 1024
)

// Session is driven by a single UI; it is not safe for concurrent use.
type Session struct {
	text     string
	size     domain.WidgetSize
	template domain.Template
	color    domain.Color
	// photos has one entry per slot of the template; nil marks an empty slot.
	photos [][]byte

	defaultText   string
	maxImageBytes int
	renderer      *layout.Renderer
	history       *undo.History
	now           func() time.Time
}

// Option configures a Session.
type Option func(*Session)

func WithDefaultText(s string) Option { return func(c *Session) { c.defaultText = s } }

// WithMaxImageBytes sets the per-photo limit; values <= 0 keep the default.
func WithMaxImageBytes(n int) Option {
	return func(c *Session) {
		if n > 0 {
			c.maxImageBytes = n
		}
	}
}

func WithRenderer(r *layout.Renderer) Option { return func(c *Session) { c.renderer = r } }

// WithHistory replaces the default undo limits.
func WithHistory(cfg undo.Config) Option { return func(c *Session) { c.history = undo.NewHistory(cfg) } }

// WithClock sets the time source used to merge bursts of edits.
func WithClock(now func() time.Time) Option { return func(c *Session) { c.now = now } }

// DefaultHistory bounds the undo stack of a session.
var DefaultHistory = undo.Config{MaxBytes: 32 * 1024 * 1024, MaxDepth: 50, MinInterval: time.Second}

// New starts a session with the default text, the Small size and its default
// template, in the primary palette color.
func New(opts ...Option) *Session {
	s := &Session{defaultText: DefaultText, maxImageBytes: DefaultMaxImageBytes}
	for _, o := range opts {
		o(s)
	}
	if s.renderer == nil {
		s.renderer = layout.New(nil)
	}
	if s.history == nil {
		s.history = undo.NewHistory(DefaultHistory)
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.reset()
	return s
}

// Reset restores the initial choices and drops all photos.
func (s *Session) Reset() {
	s.checkpoint("reset")
	s.reset()
}

func (s *Session) reset() {
	s.text = s.defaultText
	s.size = domain.Small
	s.template = catalog.DefaultTemplate(domain.Small)
	s.color = domain.PalettePrimary
	s.resetPhotos()
}

func (s *Session) resetPhotos() {
	s.photos = make([][]byte, catalog.RequiredPhotoCount(s.template))
}

func (s *Session) Text() string                 { return s.text }
func (s *Session) Size() domain.WidgetSize      { return s.size }
func (s *Session) Template() domain.Template    { return s.template }
func (s *Session) Color() domain.Color          { return s.color }
func (s *Session) MaxImageBytes() int           { return s.maxImageBytes }
func (s *Session) Templates() []domain.Template { return catalog.AllowedTemplates(s.size) }

// SetText replaces the widget text.
func (s *Session) SetText(t string) {
	if t == s.text {
		return
	}
	s.checkpoint("text")
	s.text = t
}

// SetSize switches the size class. The template falls back to the size's
// default and photos are cleared. Picking the current size changes nothing.
func (s *Session) SetSize(size domain.WidgetSize) {
	if !size.Valid() || size == s.size {
		return
	}
	s.checkpoint("size")
	s.size = size
	s.template = catalog.DefaultTemplate(size)
	s.resetPhotos()
}

// SelectTemplate picks a template of the current size and clears photos.
// Templates of another size are ignored.
func (s *Session) SelectTemplate(t domain.Template) bool {
	if !catalog.Allows(s.size, t) {
		return false
	}
	s.checkpoint("template")
	s.template = t
	s.resetPhotos()
	return true
}

// SetPhoto fills slot index. Blobs over the size limit and indexes outside
// the template's slots are ignored. The blob is kept as is (JPEG or PNG).
func (s *Session) SetPhoto(index int, blob []byte) bool {
	if index < 0 || index >= len(s.photos) || len(blob) == 0 || len(blob) > s.maxImageBytes {
		return false
	}
	s.checkpoint("photo")
	s.photos[index] = append([]byte(nil), blob...)
	return true
}

// ClearPhoto empties slot index.
func (s *Session) ClearPhoto(index int) {
	if index >= 0 && index < len(s.photos) && s.photos[index] != nil {
		s.checkpoint("photo")
		s.photos[index] = nil
	}
}

// Photos returns a copy of the slots; empty slots are nil.
func (s *Session) Photos() [][]byte {
	out := make([][]byte, len(s.photos))
	for i, p := range s.photos {
		if p != nil {
			out[i] = append([]byte(nil), p...)
		}
	}
	return out
}

// PhotoCount returns how many slots are filled and how many exist.
func (s *Session) PhotoCount() (filled, required int) {
	for _, p := range s.photos {
		if p != nil {
			filled++
		}
	}
	return filled, len(s.photos)
}

// Preview renders the current choices.
func (s *Session) Preview() *layout.Region {
	return s.renderer.Render(layout.Input{Template: s.template, Size: s.size, Text: s.text, Images: s.photos})
}

// SlotAt reports which photo slot of the preview p falls in.
func (s *Session) SlotAt(p vector.Pt) (int, bool) { return layout.HitSlot(s.Preview(), p) }

// Undo reverts the last edit, or the last burst of same-kind edits.
func (s *Session) Undo() bool {
	cur, ok := s.snapshot("undo")
	if !ok {
		return false
	}
	prev, ok := s.history.Undo(cur)
	return ok && s.load(prev.Blob)
}

// Redo reapplies the last undone edit.
func (s *Session) Redo() bool {
	cur, ok := s.snapshot("redo")
	if !ok {
		return false
	}
	next, ok := s.history.Redo(cur)
	return ok && s.load(next.Blob)
}

func (s *Session) CanUndo() bool { return s.history.CanUndo() }
func (s *Session) CanRedo() bool { return s.history.CanRedo() }

func (s *Session) checkpoint(kind string) {
	if snap, ok := s.snapshot(kind); ok {
		s.history.Push(snap)
	}
}

func (s *Session) snapshot(kind string) (undo.Snapshot, bool) {
	b, err := json.Marshal(s.Draft())
	if err != nil {
		applog.WithComponent("creator").Warn("snapshot failed", slog.String("kind", kind), slog.Any("err", err))
		return undo.Snapshot{}, false
	}
	return undo.Snapshot{Kind: kind, Blob: b, TS: s.now()}, true
}

func (s *Session) load(blob []byte) bool {
	var d Draft
	if err := json.Unmarshal(blob, &d); err != nil {
		return false
	}
	return s.apply(d)
}

// compacted returns the filled photos in slot order.
func (s *Session) compacted() [][]byte {
	var out [][]byte
	for _, p := range s.photos {
		if p != nil {
			out = append(out, p)
		}
	}
	return out
}

// Save adds the widget to the collection, mirrors it to the shared slot and
// switches to the Home tab. A failed mirror is logged and otherwise ignored.
func (s *Session) Save(ctx context.Context, st *app.State) uuid.UUID {
	images := s.compacted()
	id := st.Store.Add(s.text, s.color, s.size, s.template, images)
	ctx = applog.WithWidget(ctx, id.String(), s.template.String())
	if err := st.Bridge.SaveLatest(ctx, s.text, s.color, s.size, s.template, images); err != nil {
		applog.WithOperation(applog.WithComponent("creator"), "save").WarnContext(ctx, "shared slot not updated", slog.Any("err", err))
	}
	st.SelectTab(app.TabHome)
	return id
}
