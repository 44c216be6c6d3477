/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"beri/internal/app"
	"beri/internal/catalog"
	"beri/internal/config"
	"beri/internal/crash"
	"beri/internal/creator"
	"beri/internal/domain"
	"beri/internal/export"
	"beri/internal/layout"
	applog "beri/internal/log"
	"beri/internal/shared"
	"beri/internal/store"
	"beri/internal/ui"
	"beri/internal/version"
)

func usage(w io.Writer) {
	fmt.Fprintln(w, "Beri: home screen widget maker")
	fmt.Fprintf(w, "Version: %s\n", version.String())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  beri version|-v|--version                    Show version")
	fmt.Fprintln(w, "  beri templates [size]                        List templates, optionally for one size")
	fmt.Fprintln(w, "  beri render <template> [text] [image...]     Print the preview layout as JSON")
	fmt.Fprintln(w, "                [-o out.png|out.svg|out.pdf]  or draw it to a file")
	fmt.Fprintln(w, "  beri save <template> <text> [image...]       Save a widget to the shared slot")
	fmt.Fprintln(w, "  beri latest [-o out.png|out.svg|out.pdf]     Show the widget in the shared slot")
	fmt.Fprintln(w, "  beri schema                                  Print the shared record JSON schema")
	fmt.Fprintln(w, "  beri config                                  Print the effective configuration")
	fmt.Fprintln(w, "  beri ui                                      Launch desktop UI (build with -tags fyne)")
}

func main() {
	applog.Init(applog.FromEnv())
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	applog.Init(logOptions(cfg.Logging))
	crashDir, _ := config.CrashDir()
	defer crash.Recover(crash.Options{Dir: crashDir})

	if code := run(cfg, os.Args[1:], os.Stdout, os.Stderr); code != 0 {
		os.Exit(code)
	}
}

func logOptions(c config.LoggingConfig) applog.Options {
	return applog.Options{
		Level:      c.Level,
		Format:     c.Format,
		AddSource:  c.Source,
		File:       c.File,
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
	}
}

// run executes one command and returns the process exit code: 0 on
// success, 1 on failure, 2 on bad usage.
func run(cfg config.AppConfig, args []string, stdout, stderr io.Writer) int {
	l := applog.WithComponent("cli")
	l.Debug("start", slog.Int("args", len(args)))
	if len(args) == 0 {
		usage(stdout)
		return 0
	}
	fail := func(err error) int {
		l.Error(args[0]+" failed", slog.Any("err", err))
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	bad := func(msg string) int {
		fmt.Fprintln(stderr, msg)
		usage(stderr)
		return 2
	}

	switch args[0] {
	case "version", "--version", "-v":
		fmt.Fprintln(stdout, "Beri")
		fmt.Fprintln(stdout, version.String())
		return 0
	case "templates":
		sizes := domain.AllSizes()
		if len(args) > 1 {
			size, ok := domain.ParseSize(args[1])
			if !ok {
				return bad(fmt.Sprintf("unknown size %q (want Small, Medium or Large)", args[1]))
			}
			sizes = []domain.WidgetSize{size}
		}
		listTemplates(stdout, sizes)
		return 0
	case "render":
		rest, out := outFlag(args[1:])
		if len(rest) < 1 {
			return bad("render requires <template>")
		}
		s, err := session(cfg, rest[0], rest[1:])
		if err != nil {
			return fail(err)
		}
		if out != "" {
			if err := export.Write(out, s.Preview(), 0); err != nil {
				return fail(err)
			}
			fmt.Fprintln(stdout, "Wrote", out)
			return 0
		}
		if err := writeJSON(stdout, s.Preview()); err != nil {
			return fail(err)
		}
		return 0
	case "save":
		if len(args) < 3 {
			return bad("save requires <template> and <text>")
		}
		s, err := session(cfg, args[1], args[2:])
		if err != nil {
			return fail(err)
		}
		bridge, closeSlot, err := openBridge(cfg)
		if err != nil {
			return fail(err)
		}
		defer closeSlot()
		state := app.New(store.New(), bridge)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		id := s.Save(ctx, state)
		fmt.Fprintln(stdout, "Saved widget", id)
		if rec, ok := bridge.LoadLatest(ctx); !ok || rec.Text != s.Text() || rec.TemplateRaw != s.Template().String() {
			fmt.Fprintln(stderr, "Warning: the shared slot was not updated; see the log for details")
		}
		return 0
	case "latest":
		rest, out := outFlag(args[1:])
		if len(rest) > 0 {
			return bad("latest takes no arguments besides -o")
		}
		bridge, closeSlot, err := openBridge(cfg)
		if err != nil {
			return fail(err)
		}
		defer closeSlot()
		rec, ok := bridge.LoadLatest(context.Background())
		if !ok {
			fmt.Fprintln(stdout, "No widget shared yet.")
			return 0
		}
		if out != "" {
			root, err := recordRegion(rec)
			if err != nil {
				return fail(err)
			}
			if err := export.Write(out, root, 0); err != nil {
				return fail(err)
			}
			fmt.Fprintln(stdout, "Wrote", out)
			return 0
		}
		if err := writeJSON(stdout, summarize(rec)); err != nil {
			return fail(err)
		}
		return 0
	case "schema":
		if _, err := stdout.Write(shared.Schema()); err != nil {
			return fail(err)
		}
		return 0
	case "config":
		path, _ := config.ConfigPath()
		fmt.Fprintf(stdout, "# %s\n", path)
		b, err := yaml.Marshal(cfg)
		if err != nil {
			return fail(err)
		}
		_, _ = stdout.Write(b)
		return 0
	case "ui":
		if err := ui.Run(ui.Options{Config: cfg}); err != nil {
			return fail(err)
		}
		return 0
	case "help", "-h", "--help":
		usage(stdout)
		return 0
	}
	return bad(fmt.Sprintf("unknown command %q", args[0]))
}

func listTemplates(w io.Writer, sizes []domain.WidgetSize) {
	for _, size := range sizes {
		fmt.Fprintf(w, "%s:\n", size)
		def := catalog.DefaultTemplate(size)
		for _, t := range catalog.AllowedTemplates(size) {
			mark := " "
			if t == def {
				mark = "*"
			}
			fmt.Fprintf(w, " %s %-22s %-18s photos=%d\n", mark, t, catalog.DisplayName(t), catalog.RequiredPhotoCount(t))
		}
	}
}

// outFlag pulls "-o <path>" out of args.
func outFlag(args []string) (rest []string, out string) {
	for i := 0; i < len(args); i++ {
		if (args[i] == "-o" || args[i] == "--out") && i+1 < len(args) {
			out = args[i+1]
			i++
			continue
		}
		rest = append(rest, args[i])
	}
	return rest, out
}

// session builds a creator session for a template with optional text and
// image files, in that order.
func session(cfg config.AppConfig, rawTemplate string, rest []string) (*creator.Session, error) {
	tpl, ok := domain.ParseTemplate(rawTemplate)
	if !ok {
		return nil, fmt.Errorf("unknown template %q (see: beri templates)", rawTemplate)
	}
	s := creator.New(creator.WithDefaultText(cfg.Creator.DefaultText), creator.WithMaxImageBytes(cfg.Creator.MaxImageBytes))
	s.SetSize(catalog.SizeOf(tpl))
	s.SelectTemplate(tpl)
	if len(rest) > 0 {
		s.SetText(rest[0])
		rest = rest[1:]
	}
	for i, path := range rest {
		blob, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read image: %w", err)
		}
		if !s.SetPhoto(i, blob) {
			return nil, fmt.Errorf("%s not added: empty, over %d bytes, or %s has no photo slot %d", path, s.MaxImageBytes(), tpl, i+1)
		}
	}
	return s, nil
}

func openBridge(cfg config.AppConfig) (*shared.Bridge, func(), error) {
	slot, closeFn, err := shared.Open(cfg)
	if errors.Is(err, shared.ErrNeedsUI) {
		return nil, func() {}, fmt.Errorf("%w: run `beri ui` or pick another backend with %s", err, config.EnvSlotBackend)
	}
	if err != nil {
		return nil, func() {}, fmt.Errorf("open shared slot: %w", err)
	}
	closeSlot := func() {
		if err := closeFn(); err != nil {
			applog.WithComponent("cli").Warn("closing shared slot failed", slog.Any("err", err))
		}
	}
	return shared.NewBridge(slot, shared.WithMaxImageBytes(cfg.Shared.MaxImageBytes)), closeSlot, nil
}

func recordRegion(rec domain.SharedWidgetData) (*layout.Region, error) {
	size, ok := rec.Size()
	if !ok {
		return nil, fmt.Errorf("shared record has unknown size %q", rec.SizeRaw)
	}
	tpl, ok := rec.Template()
	if !ok {
		return nil, fmt.Errorf("shared record has unknown template %q", rec.TemplateRaw)
	}
	return layout.Render(layout.Input{Template: tpl, Size: size, Text: rec.Text, Images: rec.Images()}), nil
}

type recordSummary struct {
	Text      string           `json:"text"`
	Color     domain.RGBAColor `json:"color"`
	Size      string           `json:"sizeRaw"`
	Template  string           `json:"templateRaw"`
	Images    []int            `json:"imageBytes"`
	CreatedAt time.Time        `json:"createdAt"`
}

// summarize replaces image payloads with their sizes.
func summarize(rec domain.SharedWidgetData) recordSummary {
	sum := recordSummary{Text: rec.Text, Color: rec.Color, Size: rec.SizeRaw, Template: rec.TemplateRaw, CreatedAt: rec.CreatedAt, Images: []int{}}
	for _, img := range rec.Images() {
		sum.Images = append(sum.Images, len(img))
	}
	return sum
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
