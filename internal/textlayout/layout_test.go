/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textlayout

import (
	"strings"
	"testing"
)

func TestWordWrap_Naive(t *testing.T) {
	l := NewWordWrap(BasicProvider{})
	box := l.Layout("Hello world from Go", TextStyle{}, 50)
	if len(box.Lines) < 2 {
		t.Fatalf("expected wrapping into multiple lines, got %d", len(box.Lines))
	}
	if box.Width <= 0 || box.Height <= 0 {
		t.Fatalf("expected positive box size: %+v", box)
	}
	for _, ln := range box.Lines {
		if ln.Width > 50 {
			t.Fatalf("line %q exceeds width: %v", ln.Text, ln.Width)
		}
	}
}

func TestWordWrap_KeepsWordsAndNewlines(t *testing.T) {
	l := NewWordWrap(nil)
	box := l.Layout("buy milk\ncall mom", TextStyle{}, 0)
	got := box.Texts()
	if len(got) != 2 || got[0] != "buy milk" || got[1] != "call mom" {
		t.Fatalf("unexpected lines: %q", got)
	}
}

func TestWordWrap_BreaksLongWord(t *testing.T) {
	l := NewWordWrap(BasicProvider{})
	word := strings.Repeat("x", 20) // 140px in the 7px basic face
	box := l.Layout(word, TextStyle{}, 50)
	if len(box.Lines) < 3 {
		t.Fatalf("expected long word to be split, got %q", box.Texts())
	}
	if strings.Join(box.Texts(), "") != word {
		t.Fatalf("split lost characters: %q", box.Texts())
	}
}

func TestWordWrap_EmptyTextHasOneLine(t *testing.T) {
	box := NewWordWrap(nil).Layout("", TextStyle{}, 100)
	if len(box.Lines) != 1 || box.Lines[0].Text != "" || box.Height <= 0 {
		t.Fatalf("unexpected empty layout: %+v", box)
	}
}

func TestFit_DropsOverflowingLines(t *testing.T) {
	l := NewWordWrap(BasicProvider{})
	full := l.Layout("one two three four five six", TextStyle{}, 40)
	fit := l.Fit("one two three four five six", TextStyle{}, 40, full.LineHeight*2+1)
	if len(fit.Lines) != 2 || !fit.Truncated {
		t.Fatalf("expected 2 lines truncated, got %d (truncated=%v)", len(fit.Lines), fit.Truncated)
	}
	if tiny := l.Fit("a b c", TextStyle{}, 7, 1); len(tiny.Lines) != 1 {
		t.Fatalf("fit must keep at least one line, got %d", len(tiny.Lines))
	}
	if same := l.Fit("short", TextStyle{}, 200, 200); same.Truncated {
		t.Fatalf("short text must not be truncated")
	}
}

func TestMeasure_Deterministic(t *testing.T) {
	w1, h1 := Measure(BasicProvider{}, "ABC", TextStyle{})
	w2, h2 := Measure(nil, "ABC", TextStyle{})
	if w1 != w2 || h1 != h2 {
		t.Fatalf("expected same measure, got w1=%v h1=%v vs w2=%v h2=%v", w1, h1, w2, h2)
	}
	if w1 != 21 {
		t.Fatalf("expected 3 glyphs of 7px, got %v", w1)
	}
}
