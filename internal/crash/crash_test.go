/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package crash

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteReportCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "crash")
	path, err := writeReport(dir, report{panicVal: "kaboom", stack: []byte("stack"), draft: "/tmp/draft-1.json"})
	if err != nil {
		t.Fatalf("writeReport error: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Fatalf("expected crash report under %s, got %s", dir, path)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	s := string(b)
	for _, want := range []string{"Beri Crash Report", "Panic: kaboom", "Draft: /tmp/draft-1.json", "Stack:\nstack"} {
		if !strings.Contains(s, want) {
			t.Fatalf("report missing %q:\n%s", want, s)
		}
	}
}

func TestReportDirDefaultsToTemp(t *testing.T) {
	if reportDir("") != os.TempDir() || reportDir("x") != "x" {
		t.Fatalf("unexpected report dirs")
	}
}

func TestPruneKeepsNewest(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 5; i++ {
		name := fmt.Sprintf("crash-20250101-00000%d.000.log", i)
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "draft-20240101-000000.json"), nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	prune(dir, 2)
	left, _ := filepath.Glob(filepath.Join(dir, "crash-*.log"))
	if len(left) != 2 || !strings.HasSuffix(left[1], "000004.000.log") {
		t.Fatalf("unexpected reports left: %v", left)
	}
	if _, err := os.Stat(filepath.Join(dir, "draft-20240101-000000.json")); err != nil {
		t.Fatalf("draft must survive pruning: %v", err)
	}
}

func TestAutosavePanicBecomesError(t *testing.T) {
	_, err := autosave(func(string) (string, error) { panic("again") }, t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "again") {
		t.Fatalf("expected error from panicking hook, got %v", err)
	}
	_, err = autosave(func(string) (string, error) { return "", errors.New("disk full") }, t.TempDir())
	if err == nil || err.Error() != "disk full" {
		t.Fatalf("hook error not passed through: %v", err)
	}
}

func captureExit(t *testing.T) (*int, *bytes.Buffer) {
	t.Helper()
	code := -1
	var out bytes.Buffer
	oldExit, oldErr := exitFn, stderr
	exitFn = func(c int) { code = c }
	stderr = &out
	t.Cleanup(func() { exitFn, stderr = oldExit, oldErr })
	return &code, &out
}
