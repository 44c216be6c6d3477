/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package crash

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRecover_Panicking(t *testing.T) {
	code, out := captureExit(t)
	dir := t.TempDir()
	var autosaveDir string
	func() {
		defer Recover(Options{Dir: dir, Autosave: func(d string) (string, error) {
			autosaveDir = d
			return filepath.Join(d, "draft.json"), nil
		}})
		panic("boom")
	}()

	reports, _ := filepath.Glob(filepath.Join(dir, "crash-*.log"))
	if len(reports) != 1 {
		t.Fatalf("expected one crash report under %s, got %v", dir, reports)
	}
	b, err := os.ReadFile(reports[0])
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !strings.Contains(string(b), "Panic: boom") || !strings.Contains(string(b), "Draft: "+filepath.Join(dir, "draft.json")) {
		t.Fatalf("report content: %s", b)
	}
	if autosaveDir != dir {
		t.Fatalf("autosave hook not run with report dir, got %q", autosaveDir)
	}
	if *code != 2 {
		t.Fatalf("expected exit code 2, got %d", *code)
	}
	if !strings.Contains(out.String(), reports[0]) || !strings.Contains(out.String(), "unsaved widget") {
		t.Fatalf("stderr message: %q", out.String())
	}
}

func TestRecover_FailedAutosaveStillReports(t *testing.T) {
	code, out := captureExit(t)
	dir := t.TempDir()
	func() {
		defer Recover(Options{Dir: dir, Autosave: func(string) (string, error) { return "", errors.New("read-only") }})
		panic("boom")
	}()
	if *code != 2 {
		t.Fatalf("expected exit code 2, got %d", *code)
	}
	if strings.Contains(out.String(), "unsaved widget") {
		t.Fatalf("no draft should be announced: %q", out.String())
	}
	if reports, _ := filepath.Glob(filepath.Join(dir, "crash-*.log")); len(reports) != 1 {
		t.Fatalf("report missing: %v", reports)
	}
}

func TestRecover_NoPanicIsNoop(t *testing.T) {
	code, _ := captureExit(t)
	func() {
		defer Recover(Options{})
	}()
	if *code != -1 {
		t.Fatalf("exit must not be called without a panic")
	}
}
