/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"beri/internal/config"
	"beri/internal/version"
)

func testConfig(t *testing.T) config.AppConfig {
	t.Helper()
	cfg := config.Defaults()
	cfg.Shared.Backend = config.BackendFile
	cfg.Shared.Path = t.TempDir()
	return cfg
}

func runCmd(t *testing.T, cfg config.AppConfig, args ...string) (int, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code := run(cfg, args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func writePhoto(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	path := filepath.Join(t.TempDir(), "photo.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return path
}

func TestNoArgsPrintsUsage(t *testing.T) {
	code, out, _ := runCmd(t, testConfig(t))
	if code != 0 || !strings.Contains(out, "Usage:") {
		t.Fatalf("code=%d out=%q", code, out)
	}
}

func TestVersionPrintsBuildVersion(t *testing.T) {
	old := version.Version
	version.Version = "v0.9.1"
	t.Cleanup(func() { version.Version = old })
	for _, arg := range []string{"version", "-v", "--version"} {
		code, out, _ := runCmd(t, testConfig(t), arg)
		if code != 0 || out != "Beri\nv0.9.1\n" {
			t.Fatalf("%s: code=%d out=%q", arg, code, out)
		}
	}
}

func TestUnknownCommand(t *testing.T) {
	code, _, errOut := runCmd(t, testConfig(t), "frobnicate")
	if code != 2 || !strings.Contains(errOut, `unknown command "frobnicate"`) {
		t.Fatalf("code=%d stderr=%q", code, errOut)
	}
}

func TestTemplatesMarksDefault(t *testing.T) {
	code, out, _ := runCmd(t, testConfig(t), "templates", "Medium")
	if code != 0 {
		t.Fatalf("code=%d", code)
	}
	if !strings.Contains(out, "Medium:") || strings.Contains(out, "Small:") {
		t.Fatalf("unexpected sections:\n%s", out)
	}
	if !strings.Contains(out, "* mediumTwoStickyNotes") {
		t.Fatalf("default not marked:\n%s", out)
	}
	if !strings.Contains(out, "mediumTwoPolaroids") || !strings.Contains(out, "photos=2") {
		t.Fatalf("missing polaroids row:\n%s", out)
	}
	if code, _, _ := runCmd(t, testConfig(t), "templates", "Huge"); code != 2 {
		t.Fatalf("bad size code=%d", code)
	}
}

func TestRenderPrintsLayoutJSON(t *testing.T) {
	code, out, errOut := runCmd(t, testConfig(t), "render", "smallNote", "Buy milk")
	if code != 0 {
		t.Fatalf("code=%d stderr=%q", code, errOut)
	}
	var root struct {
		Kind     string            `json:"kind"`
		Children []json.RawMessage `json:"children"`
	}
	if err := json.Unmarshal([]byte(out), &root); err != nil {
		t.Fatalf("json: %v\n%s", err, out)
	}
	if root.Kind == "" || len(root.Children) == 0 {
		t.Fatalf("root = %+v", root)
	}
	var words []string
	var collect func(raw json.RawMessage)
	collect = func(raw json.RawMessage) {
		var n struct {
			Lines    []struct{ Text string } `json:"lines"`
			Children []json.RawMessage       `json:"children"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			t.Fatalf("json: %v", err)
		}
		for _, ln := range n.Lines {
			words = append(words, strings.Fields(ln.Text)...)
		}
		for _, c := range n.Children {
			collect(c)
		}
	}
	collect(json.RawMessage(out))
	// the small note wraps the text, so compare words rather than one line
	if strings.Join(words, " ") != "Buy milk" {
		t.Fatalf("text lines = %q", words)
	}
}

func TestRenderWritesFiles(t *testing.T) {
	cfg := testConfig(t)
	photo := writePhoto(t)
	dir := t.TempDir()
	for _, name := range []string{"w.png", "w.svg", "w.pdf"} {
		out := filepath.Join(dir, name)
		code, _, errOut := runCmd(t, cfg, "render", "smallPolaroid", "Hi", photo, "-o", out)
		if code != 0 {
			t.Fatalf("%s: code=%d stderr=%q", name, code, errOut)
		}
		if fi, err := os.Stat(out); err != nil || fi.Size() == 0 {
			t.Fatalf("%s not written: %v", name, err)
		}
	}
}

func TestRenderRejectsUnknownTemplateAndExtraPhotos(t *testing.T) {
	cfg := testConfig(t)
	if code, _, errOut := runCmd(t, cfg, "render", "bigNote"); code != 1 || !strings.Contains(errOut, "unknown template") {
		t.Fatalf("code=%d stderr=%q", code, errOut)
	}
	photo := writePhoto(t)
	code, _, errOut := runCmd(t, cfg, "render", "smallNote", "x", photo)
	if code != 1 || !strings.Contains(errOut, "no photo slot 1") {
		t.Fatalf("code=%d stderr=%q", code, errOut)
	}
}

func TestSaveThenLatest(t *testing.T) {
	cfg := testConfig(t)
	code, out, errOut := runCmd(t, cfg, "latest")
	if code != 0 || !strings.Contains(out, "No widget shared yet.") {
		t.Fatalf("empty latest: code=%d out=%q stderr=%q", code, out, errOut)
	}

	photo := writePhoto(t)
	code, out, errOut = runCmd(t, cfg, "save", "mediumTwoPolaroids", "Trip", photo)
	if code != 0 || !strings.HasPrefix(out, "Saved widget ") {
		t.Fatalf("save: code=%d out=%q stderr=%q", code, out, errOut)
	}
	if errOut != "" {
		t.Fatalf("unexpected warning: %q", errOut)
	}

	code, out, _ = runCmd(t, cfg, "latest")
	if code != 0 {
		t.Fatalf("latest code=%d", code)
	}
	var sum recordSummary
	if err := json.Unmarshal([]byte(out), &sum); err != nil {
		t.Fatalf("json: %v\n%s", err, out)
	}
	if sum.Text != "Trip" || sum.Size != "Medium" || sum.Template != "mediumTwoPolaroids" {
		t.Fatalf("summary = %+v", sum)
	}
	if len(sum.Images) != 1 || sum.Images[0] == 0 {
		t.Fatalf("images = %v", sum.Images)
	}

	outPath := filepath.Join(t.TempDir(), "latest.png")
	if code, _, errOut := runCmd(t, cfg, "latest", "-o", outPath); code != 0 {
		t.Fatalf("latest -o: code=%d stderr=%q", code, errOut)
	}
	if _, err := os.Stat(outPath); err != nil {
		t.Fatalf("stat: %v", err)
	}
}

func TestSaveNeedsTemplateAndText(t *testing.T) {
	if code, _, _ := runCmd(t, testConfig(t), "save", "smallNote"); code != 2 {
		t.Fatalf("code=%d", code)
	}
}

func TestPreferencesBackendNeedsUI(t *testing.T) {
	cfg := testConfig(t)
	cfg.Shared.Backend = config.BackendPreferences
	code, _, errOut := runCmd(t, cfg, "latest")
	if code != 1 || !strings.Contains(errOut, config.EnvSlotBackend) {
		t.Fatalf("code=%d stderr=%q", code, errOut)
	}
}

func TestSchemaAndConfig(t *testing.T) {
	cfg := testConfig(t)
	code, out, _ := runCmd(t, cfg, "schema")
	if code != 0 || !json.Valid([]byte(out)) || !strings.Contains(out, "imageBlobsBase64") {
		t.Fatalf("schema: code=%d out=%q", code, out)
	}
	t.Setenv(config.EnvConfigPath, filepath.Join(t.TempDir(), "config.yaml"))
	code, out, _ = runCmd(t, cfg, "config")
	if code != 0 || !strings.Contains(out, "backend: file") {
		t.Fatalf("config: code=%d out=%q", code, out)
	}
}

func TestLogOptionsFromConfig(t *testing.T) {
	o := logOptions(config.LoggingConfig{Level: "debug", Format: "json", Source: true, File: "x.log", MaxBackups: 7})
	if o.Level != "debug" || o.Format != "json" || !o.AddSource || o.File != "x.log" || o.MaxBackups != 7 {
		t.Fatalf("opts = %+v", o)
	}
}
