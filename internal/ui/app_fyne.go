//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package ui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	fstorage "fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"beri/internal/app"
	"beri/internal/config"
	"beri/internal/crash"
	"beri/internal/creator"
	"beri/internal/domain"
	"beri/internal/export"
	applog "beri/internal/log"
	"beri/internal/shared"
	"beri/internal/store"
)

const appID = "app.beri"

// Run starts the desktop app: the splash screen first, then the tabs.
func Run(opts Options) error {
	l := applog.WithComponent("ui")
	l.Info("starting UI")

	cfg := opts.Config
	fyneApp := fyneapp.NewWithID(appID)

	slot := opts.Slot
	closeSlot := func() error { return nil }
	if slot == nil {
		if cfg.Shared.Backend == config.BackendPreferences {
			slot = PreferencesSlot{Prefs: fyneApp.Preferences()}
		} else {
			s, c, err := shared.Open(cfg)
			if err != nil {
				return fmt.Errorf("open shared slot: %w", err)
			}
			slot, closeSlot = s, c
		}
	}
	defer func() {
		if err := closeSlot(); err != nil {
			l.Warn("closing shared slot failed", slog.Any("err", err))
		}
	}()

	sh := &shell{
		cfg:   cfg,
		log:   l,
		state: app.New(store.New(), shared.NewBridge(slot, shared.WithMaxImageBytes(cfg.Shared.MaxImageBytes))),
		session: creator.New(
			creator.WithDefaultText(cfg.Creator.DefaultText),
			creator.WithMaxImageBytes(cfg.Creator.MaxImageBytes),
		),
	}
	crashDir, _ := config.CrashDir()
	defer crash.Recover(crash.Options{Dir: crashDir, Autosave: sh.session.WriteDraft})

	w := fyneApp.NewWindow("Beri")
	sh.win = w
	prefs := fyneApp.Preferences()
	winW := max(prefs.IntWithFallback("window.width", 720), 480)
	winH := max(prefs.IntWithFallback("window.height", 760), 560)
	w.Resize(fyne.NewSize(float32(winW), float32(winH)))
	w.SetOnClosed(func() {
		sz := w.Canvas().Size()
		prefs.SetInt("window.width", int(sz.Width))
		prefs.SetInt("window.height", int(sz.Height))
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	content := sh.build()
	w.SetContent(splash())
	go func() {
		app.Splash(ctx)
		fyne.Do(func() {
			w.SetContent(content)
			sh.offerDraft(crashDir)
		})
	}()

	w.Canvas().AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyS, Modifier: fyne.KeyModifierShortcutDefault}, func(fyne.Shortcut) { sh.save() })
	w.Canvas().AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault}, func(fyne.Shortcut) { sh.undoEdit() })
	w.Canvas().AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault | fyne.KeyModifierShift}, func(fyne.Shortcut) { sh.redoEdit() })
	w.ShowAndRun()
	return nil
}

func splash() fyne.CanvasObject {
	title := canvas.NewText("Beri", theme.Color(theme.ColorNamePrimary))
	title.TextSize = 42
	title.TextStyle = fyne.TextStyle{Bold: true}
	title.Alignment = fyne.TextAlignCenter
	return container.NewCenter(container.NewVBox(title, widget.NewProgressBarInfinite()))
}

// shell owns the window content and keeps the controls in step with the
// creator session and the app state.
type shell struct {
	cfg     config.AppConfig
	log     *slog.Logger
	state   *app.State
	session *creator.Session
	win     fyne.Window

	tabs      *container.AppTabs
	preview   *RegionView
	sizes     *widget.RadioGroup
	templates *fyne.Container
	text      *widget.Entry
	photos    *widget.Label
	undo      *widget.Button
	redo      *widget.Button
	status    *widget.Label
	home      *fyne.Container
	profile   *fyne.Container
	syncing   bool
}

func (s *shell) build() fyne.CanvasObject {
	s.tabs = container.NewAppTabs(
		container.NewTabItem(app.TabWidgets.String(), s.buildCreator()),
		container.NewTabItem(app.TabHome.String(), s.buildHome()),
		container.NewTabItem(app.TabProfile.String(), s.buildProfile()),
	)
	s.tabs.OnSelected = func(item *container.TabItem) {
		s.state.SelectTab(app.Tab(s.tabs.SelectedIndex()))
		if s.state.Tab() == app.TabProfile {
			s.refreshProfile()
		}
	}
	s.tabs.SelectIndex(int(s.state.Tab()))
	s.status = widget.NewLabel("Ready")
	return container.NewBorder(nil, s.status, nil, nil, s.tabs)
}

func (s *shell) buildCreator() fyne.CanvasObject {
	s.preview = NewRegionView(s.session.Preview())
	s.preview.OnSlotTapped = s.pickPhoto

	s.sizes = widget.NewRadioGroup(SizeNames(), func(v string) {
		if s.syncing {
			return
		}
		if size, ok := domain.ParseSize(v); ok {
			s.session.SetSize(size)
			s.sync()
		}
	})
	s.sizes.Horizontal = true
	s.sizes.Required = true

	s.templates = container.NewGridWithColumns(2)

	s.text = widget.NewEntry()
	s.text.SetPlaceHolder("Enter text")
	s.text.OnChanged = func(v string) {
		if s.syncing {
			return
		}
		s.session.SetText(v)
		s.preview.SetRegion(s.session.Preview())
		s.refreshHistory()
	}

	s.photos = widget.NewLabel("")
	s.photos.Wrapping = fyne.TextWrapWord

	reset := widget.NewButton("Reset", func() {
		s.session.Reset()
		s.sync()
		s.setStatus("Reset")
	})
	save := widget.NewButton("Save", s.save)
	save.Importance = widget.HighImportance
	s.undo = widget.NewButtonWithIcon("", theme.ContentUndoIcon(), s.undoEdit)
	s.redo = widget.NewButtonWithIcon("", theme.ContentRedoIcon(), s.redoEdit)

	s.sync()
	form := container.NewVBox(
		heading("Preview"),
		container.NewCenter(s.preview),
		heading("Size"), s.sizes,
		heading("Template"), s.templates,
		s.photos,
		heading("Text"), s.text,
		container.NewBorder(nil, nil, container.NewHBox(reset, s.undo, s.redo), save),
	)
	return container.NewVScroll(container.NewPadded(form))
}

// sync pushes the session into every creator control without firing their
// change handlers.
func (s *shell) sync() {
	s.syncing = true
	defer func() { s.syncing = false }()

	s.sizes.SetSelected(s.session.Size().String())
	s.text.SetText(s.session.Text())

	s.templates.Objects = nil
	for _, t := range s.session.Templates() {
		b := widget.NewButton(TemplateLabel(t), func() {
			if s.session.SelectTemplate(t) {
				s.sync()
			}
		})
		if t == s.session.Template() {
			b.Importance = widget.HighImportance
		}
		s.templates.Add(b)
	}
	s.templates.Refresh()
	s.refreshPreview()
}

func (s *shell) refreshPreview() {
	s.preview.SetRegion(s.session.Preview())
	filled, required := s.session.PhotoCount()
	s.photos.SetText(PhotoStatus(filled, required))
	if required == 0 {
		s.photos.Hide()
	} else {
		s.photos.Show()
	}
	s.refreshHistory()
}

func (s *shell) refreshHistory() {
	if s.undo == nil {
		return
	}
	enable(s.undo, s.session.CanUndo())
	enable(s.redo, s.session.CanRedo())
}

func enable(b *widget.Button, on bool) {
	if on {
		b.Enable()
	} else {
		b.Disable()
	}
}

func (s *shell) undoEdit() {
	if s.session.Undo() {
		s.sync()
	}
}

func (s *shell) redoEdit() {
	if s.session.Redo() {
		s.sync()
	}
}

// pickPhoto opens a file picker for one photo slot.
func (s *shell) pickPhoto(slot int) {
	d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, s.win)
			return
		}
		if rc == nil {
			return
		}
		defer rc.Close()
		limit := int64(s.session.MaxImageBytes())
		blob, err := io.ReadAll(io.LimitReader(rc, limit+1))
		if err != nil {
			dialog.ShowError(fmt.Errorf("read image: %w", err), s.win)
			return
		}
		if !s.session.SetPhoto(slot, blob) {
			s.setStatus(fmt.Sprintf("Image not added: larger than %d MB", limit/(1024*1024)))
			return
		}
		s.refreshPreview()
		s.setStatus(fmt.Sprintf("Photo %d added", slot+1))
	}, s.win)
	d.SetFilter(fstorage.NewExtensionFileFilter([]string{".png", ".jpg", ".jpeg"}))
	d.Show()
}

func (s *shell) save() {
	id := s.session.Save(context.Background(), s.state)
	s.log.Info("widget saved", slog.String("id", id.String()), slog.String("template", s.session.Template().String()))
	s.refreshHome()
	s.tabs.SelectIndex(int(s.state.Tab()))
	s.setStatus("Saved")
}

func (s *shell) buildHome() fyne.CanvasObject {
	s.home = container.NewVBox()
	s.refreshHome()
	exp := widget.NewButton("Export…", s.exportAll)
	return container.NewBorder(container.NewHBox(heading("Your widgets"), exp), nil, nil, nil, container.NewVScroll(container.NewPadded(s.home)))
}

func (s *shell) refreshHome() {
	s.home.Objects = nil
	sections := s.state.Home()
	if len(sections) == 0 {
		msg := widget.NewLabel(app.EmptyHomeMessage)
		msg.Wrapping = fyne.TextWrapWord
		s.home.Add(msg)
	}
	for _, sec := range sections {
		grid := container.NewGridWithColumns(HomeColumns)
		for _, tile := range sec.Tiles {
			grid.Add(NewRegionView(tile.Region))
		}
		s.home.Add(heading(SectionTitle(sec)))
		s.home.Add(grid)
	}
	s.home.Refresh()
}

// exportAll writes every widget as home tiles into a chosen folder.
func (s *shell) exportAll() {
	widgets := s.state.Store.List()
	if len(widgets) == 0 {
		dialog.ShowInformation("Export", app.EmptyHomeMessage, s.win)
		return
	}
	dialog.ShowFolderOpen(func(dir fyne.ListableURI, err error) {
		if err != nil {
			dialog.ShowError(err, s.win)
			return
		}
		if dir == nil {
			return
		}
		paths, err := export.BatchExport(widgets, export.BatchOptions{Preset: export.PresetWeb, OutDir: dir.Path(), Tiles: true})
		if err != nil {
			s.log.Error("export failed", slog.Any("err", err))
			dialog.ShowError(err, s.win)
			return
		}
		s.setStatus(fmt.Sprintf("Exported %d files to %s", len(paths), dir.Path()))
	}, s.win)
}

func (s *shell) buildProfile() fyne.CanvasObject {
	s.profile = container.NewVBox()
	s.refreshProfile()
	return container.NewPadded(s.profile)
}

// refreshProfile lists app facts and what the home-screen widget would show.
func (s *shell) refreshProfile() {
	s.profile.Objects = nil
	s.profile.Add(heading("Profile"))
	for _, line := range ProfileLines(s.cfg) {
		s.profile.Add(widget.NewLabel(line))
	}
	s.profile.Add(widget.NewSeparator())
	s.profile.Add(heading("Home screen widget"))
	latest, ok := s.state.Bridge.LoadLatest(context.Background())
	if !ok {
		s.profile.Add(widget.NewLabel("Nothing shared yet."))
		s.profile.Refresh()
		return
	}
	s.profile.Add(widget.NewLabel(fmt.Sprintf("%s, %s: %q", latest.SizeRaw, latest.TemplateRaw, latest.Text)))
	s.profile.Add(widget.NewLabel("Saved " + latest.CreatedAt.Local().Format("2006-01-02 15:04")))
	s.profile.Refresh()
}

// offerDraft asks whether to restore work saved during a crash. The draft
// file is removed either way.
func (s *shell) offerDraft(dir string) {
	path, ok := creator.LatestDraft(dir)
	if !ok {
		return
	}
	d, err := creator.ReadDraft(path)
	if err != nil {
		s.log.Warn("unreadable draft", slog.String("path", path), slog.Any("err", err))
		return
	}
	dialog.ShowConfirm("Restore draft", "Beri closed unexpectedly. Restore the widget you were editing?", func(yes bool) {
		if yes && s.session.Restore(d) {
			s.sync()
			s.tabs.SelectIndex(int(app.TabWidgets))
			s.setStatus("Draft restored")
		}
		if err := os.Remove(path); err != nil {
			s.log.Warn("removing draft failed", slog.String("path", path), slog.Any("err", err))
		}
	}, s.win)
}

func (s *shell) setStatus(msg string) {
	if s.status != nil {
		s.status.SetText(msg)
	}
}

func heading(text string) *widget.Label {
	return widget.NewLabelWithStyle(text, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
}
