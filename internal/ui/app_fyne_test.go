//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// These tests drive the fyne shell headlessly through the fyne test driver.
// They are gated behind the "fyne" build tag so CI does not need Fyne:
//
//	go test -tags fyne ./internal/ui
package ui

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"

	"beri/internal/app"
	"beri/internal/config"
	"beri/internal/creator"
	"beri/internal/domain"
	"beri/internal/shared"
	"beri/internal/store"
)

func newTestShell(t *testing.T) (*shell, *shared.MemorySlot) {
	t.Helper()
	a := test.NewTempApp(t)
	slot := shared.NewMemorySlot()
	sh := &shell{
		cfg:     config.Defaults(),
		log:     slog.New(slog.NewTextHandler(os.Stderr, nil)),
		state:   app.New(store.New(), shared.NewBridge(slot)),
		session: creator.New(),
		win:     a.NewWindow("test"),
	}
	sh.win.SetContent(sh.build())
	return sh, slot
}

func TestShell_StartsOnHomeWithEmptyMessage(t *testing.T) {
	sh, _ := newTestShell(t)
	if sh.tabs.SelectedIndex() != int(app.TabHome) {
		t.Fatalf("expected Home tab, got %d", sh.tabs.SelectedIndex())
	}
	if len(sh.home.Objects) != 1 {
		t.Fatalf("expected only the empty message, got %d objects", len(sh.home.Objects))
	}
	if l, ok := sh.home.Objects[0].(*widget.Label); !ok || l.Text != app.EmptyHomeMessage {
		t.Fatalf("unexpected home content: %#v", sh.home.Objects[0])
	}
}

func TestShell_SizeChangeRebuildsTemplates(t *testing.T) {
	sh, _ := newTestShell(t)
	if got := len(sh.templates.Objects); got != 4 {
		t.Fatalf("expected 4 small templates, got %d", got)
	}
	sh.sizes.SetSelected("Medium")
	if sh.session.Size() != domain.Medium || sh.session.Template() != domain.MediumTwoStickyNotes {
		t.Fatalf("session not updated: %s %s", sh.session.Size(), sh.session.Template())
	}
	if w := sh.preview.Region().Rect.W; w != 240 {
		t.Fatalf("preview not re-rendered, width %v", w)
	}
}

func TestShell_TextAndSave(t *testing.T) {
	sh, slot := newTestShell(t)
	sh.tabs.SelectIndex(int(app.TabWidgets))
	sh.text.SetText("My Widget!")
	if sh.session.Text() != "My Widget!" {
		t.Fatalf("entry not bound to session: %q", sh.session.Text())
	}
	sh.save()
	if sh.state.Store.Len() != 1 || sh.tabs.SelectedIndex() != int(app.TabHome) {
		t.Fatalf("save should store the widget and show Home")
	}
	if len(sh.home.Objects) != 2 {
		t.Fatalf("expected one section heading and grid, got %d objects", len(sh.home.Objects))
	}
	if _, err := slot.Get(context.Background(), shared.Key); err != nil {
		t.Fatalf("shared slot not written: %v", err)
	}
	if sh.status.Text != "Saved" {
		t.Fatalf("unexpected status %q", sh.status.Text)
	}
}

func TestShell_ResetRestoresDefaults(t *testing.T) {
	sh, _ := newTestShell(t)
	sh.sizes.SetSelected("Large")
	sh.text.SetText("changed")
	sh.session.Reset()
	sh.sync()
	if sh.sizes.Selected != "Small" || sh.text.Text != "My Widget" {
		t.Fatalf("controls not synced: %q %q", sh.sizes.Selected, sh.text.Text)
	}
}

func TestShell_UndoSizeChange(t *testing.T) {
	sh, _ := newTestShell(t)
	if !sh.undo.Disabled() || !sh.redo.Disabled() {
		t.Fatalf("history buttons should start disabled")
	}
	sh.sizes.SetSelected("Large")
	if sh.undo.Disabled() {
		t.Fatalf("undo should be enabled after an edit")
	}
	test.Tap(sh.undo)
	if sh.session.Size() != domain.Small || sh.sizes.Selected != "Small" {
		t.Fatalf("undo not applied: %s %q", sh.session.Size(), sh.sizes.Selected)
	}
	if sh.redo.Disabled() {
		t.Fatalf("redo should be enabled after undo")
	}
	sh.redoEdit()
	if sh.sizes.Selected != "Large" || len(sh.templates.Objects) != 4 {
		t.Fatalf("redo not applied: %q", sh.sizes.Selected)
	}
}

func TestShell_OfferDraftRestores(t *testing.T) {
	sh, _ := newTestShell(t)
	draft := creator.New()
	draft.SetText("from crash")
	dir := t.TempDir()
	path, err := draft.WriteDraft(dir)
	if err != nil {
		t.Fatalf("write draft: %v", err)
	}
	sh.offerDraft(dir)
	if _, ok := creator.LatestDraft(filepath.Dir(path)); !ok {
		t.Fatalf("draft should remain until the dialog is answered")
	}
}
