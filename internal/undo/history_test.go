/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package undo

import (
	"testing"
	"time"
)

func snap(kind, blob string, ts time.Time) Snapshot {
	return Snapshot{Kind: kind, Blob: []byte(blob), TS: ts}
}

func TestUndoRedoBasic(t *testing.T) {
	h := NewHistory(Config{MaxBytes: 1024 * 1024, MaxDepth: 10, MinInterval: 10 * time.Millisecond})
	t0 := time.Now()
	h.Push(snap("text", "a", t0))
	h.Push(snap("text", "b", t0.Add(20*time.Millisecond)))
	if _, depth, _ := h.Stats(); depth != 2 {
		t.Fatalf("expected 2 undo steps, got %d", depth)
	}
	s, ok := h.Undo(snap("text", "c", t0))
	if !ok || string(s.Blob) != "b" {
		t.Fatalf("undo expected 'b', got ok=%v blob=%q", ok, string(s.Blob))
	}
	if !h.CanRedo() {
		t.Fatal("expected a redo step")
	}
	s, ok = h.Redo(snap("text", "b", t0))
	if !ok || string(s.Blob) != "c" {
		t.Fatalf("redo expected 'c', got ok=%v blob=%q", ok, string(s.Blob))
	}
	if _, ok := h.Redo(snap("", "", t0)); ok {
		t.Fatal("redo stack should be empty")
	}
}

func TestCoalesceKeepsOldestOfBurst(t *testing.T) {
	h := NewHistory(Config{MinInterval: 50 * time.Millisecond})
	t0 := time.Now()
	h.Push(snap("text", "1", t0))
	h.Push(snap("text", "2", t0.Add(10*time.Millisecond)))
	h.Push(snap("text", "3", t0.Add(40*time.Millisecond)))
	if _, depth, _ := h.Stats(); depth != 1 {
		t.Fatalf("expected one coalesced step, got %d", depth)
	}
	s, ok := h.Undo(snap("text", "now", t0))
	if !ok || string(s.Blob) != "1" {
		t.Fatalf("expected '1', got ok=%v blob=%q", ok, string(s.Blob))
	}
}

func TestDifferentKindsDoNotCoalesce(t *testing.T) {
	h := NewHistory(Config{MinInterval: time.Hour})
	t0 := time.Now()
	h.Push(snap("text", "1", t0))
	h.Push(snap("size", "2", t0))
	h.Push(snap("size", "3", t0))
	if _, depth, _ := h.Stats(); depth != 2 {
		t.Fatalf("expected 2 steps, got %d", depth)
	}
}

func TestPushClearsRedo(t *testing.T) {
	h := NewHistory(Config{})
	t0 := time.Now()
	h.Push(snap("text", "a", t0))
	h.Undo(snap("text", "b", t0))
	h.Push(snap("size", "c", t0))
	if h.CanRedo() {
		t.Fatal("new edit should clear redo")
	}
	if total, _, _ := h.Stats(); total != 1 {
		t.Fatalf("bytes = %d, want 1", total)
	}
}

func TestCaps(t *testing.T) {
	h := NewHistory(Config{MaxBytes: 1 << 20, MaxDepth: 2})
	t0 := time.Now()
	for i := 0; i < 10; i++ {
		h.Push(snap("text", "xxxxx", t0.Add(time.Duration(i)*time.Second)))
	}
	if _, depth, _ := h.Stats(); depth != 2 {
		t.Fatalf("expected MaxDepth cap to limit to 2, got %d", depth)
	}

	h = NewHistory(Config{MaxBytes: 12})
	for i := 0; i < 10; i++ {
		h.Push(snap("text", "xxxxx", t0.Add(time.Duration(i)*time.Second)))
	}
	if total, depth, _ := h.Stats(); depth != 2 || total != 10 {
		t.Fatalf("byte cap: total=%d depth=%d", total, depth)
	}

	h = NewHistory(Config{MaxBytes: 2})
	h.Push(snap("text", "xxxxx", t0))
	if !h.CanUndo() {
		t.Fatal("the newest step must survive the byte cap")
	}
}

func TestClear(t *testing.T) {
	h := NewHistory(Config{})
	h.Push(snap("text", "a", time.Now()))
	h.Clear()
	if h.CanUndo() || h.CanRedo() {
		t.Fatal("expected empty history")
	}
}
