/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package crash turns a panic into a logged error, a crash report on disk and
// a best-effort autosave of whatever the user was editing.
package crash

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"sort"
	"strings"
	"time"

	applog "beri/internal/log"
	"beri/internal/version"
)

// exitFn and stderr are swapped out by tests.
var (
	exitFn           = os.Exit
	stderr io.Writer = os.Stderr
)

// DefaultKeep is how many crash reports Recover leaves in Dir.
const DefaultKeep = 10

// Options tells Recover where to put the report and how to autosave.
type Options struct {
	// Dir receives crash-<stamp>.log; empty uses the OS temp dir.
	Dir string
	// Autosave, when set, persists unsaved work into Dir and returns its path.
	Autosave func(dir string) (string, error)
	// Keep bounds the number of reports in Dir; 0 means DefaultKeep.
	Keep int
}

// Recover captures a panic, runs the autosave hook, writes a report that
// names the autosaved draft and exits with status 2.
//
// Usage: defer crash.Recover(opts)
func Recover(opts Options) {
	r := recover()
	if r == nil {
		return
	}
	l := applog.WithComponent("crash")
	stack := debug.Stack()
	l.Error("panic recovered", slog.Any("panic", r), slog.String("stack", string(stack)))

	dir := reportDir(opts.Dir)
	var draft string
	if opts.Autosave != nil {
		path, err := autosave(opts.Autosave, dir)
		if err != nil {
			l.Error("autosave after crash failed", slog.Any("err", err))
		} else {
			draft = path
			l.Info("autosave after crash written", slog.String("path", path))
		}
	}

	reportPath, err := writeReport(dir, report{panicVal: r, stack: stack, draft: draft})
	if err != nil {
		l.Error("crash report not written", slog.Any("err", err))
	}
	prune(dir, opts.Keep)

	fmt.Fprintf(stderr, "Beri stopped after an unexpected error. Report: %s\n", reportPath)
	if draft != "" {
		fmt.Fprintf(stderr, "Your unsaved widget was kept in %s and will be offered on the next start.\n", draft)
	}
	exitFn(2)
}

// autosave runs the hook and turns a second panic into an error.
func autosave(hook func(string) (string, error), dir string) (path string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("autosave panicked: %v", r)
		}
	}()
	return hook(dir)
}

func reportDir(dir string) string {
	if dir == "" {
		return os.TempDir()
	}
	return dir
}

type report struct {
	panicVal any
	stack    []byte
	draft    string
}

func writeReport(dir string, rep report) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create crash dir: %w", err)
	}
	now := time.Now()
	path := filepath.Join(dir, fmt.Sprintf("crash-%s.log", now.Format("20060102-150405.000")))

	var b strings.Builder
	fmt.Fprintf(&b, "Beri Crash Report\n")
	fmt.Fprintf(&b, "Timestamp: %s\n", now.Format(time.RFC3339))
	fmt.Fprintf(&b, "Version: %s\n", version.String())
	fmt.Fprintf(&b, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	if rep.draft != "" {
		fmt.Fprintf(&b, "Draft: %s\n", rep.draft)
	}
	fmt.Fprintf(&b, "\nPanic: %v\n\n", rep.panicVal)
	fmt.Fprintf(&b, "Stack:\n%s\n", rep.stack)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return path, err
	}
	if _, err := io.WriteString(f, b.String()); err != nil {
		_ = f.Close()
		return path, err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return path, err
	}
	return path, f.Close()
}

// prune removes the oldest crash reports beyond keep. Drafts are left alone.
func prune(dir string, keep int) {
	if keep <= 0 {
		keep = DefaultKeep
	}
	matches, err := filepath.Glob(filepath.Join(dir, "crash-*.log"))
	if err != nil || len(matches) <= keep {
		return
	}
	sort.Strings(matches)
	for _, p := range matches[:len(matches)-keep] {
		if err := os.Remove(p); err != nil {
			applog.WithComponent("crash").Warn("old crash report not removed", slog.String("path", p), slog.Any("err", err))
		}
	}
}
