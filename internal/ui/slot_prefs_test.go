//go:build fyne

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
	"errors"
	"testing"

	"fyne.io/fyne/v2/test"

	"beri/internal/shared"
)

func TestPreferencesSlot_RoundTrip(t *testing.T) {
	a := test.NewTempApp(t)
	slot := PreferencesSlot{Prefs: a.Preferences()}
	ctx := context.Background()
	if _, err := slot.Get(ctx, shared.Key); !errors.Is(err, shared.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := slot.Set(ctx, shared.Key, []byte(`{"text":"hi"}`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := slot.Get(ctx, shared.Key)
	if err != nil || string(got) != `{"text":"hi"}` {
		t.Fatalf("unexpected value %q, err %v", got, err)
	}
}

func TestPreferencesSlot_UndecodableValue(t *testing.T) {
	a := test.NewTempApp(t)
	a.Preferences().SetString(shared.Key, "%%%")
	if _, err := (PreferencesSlot{Prefs: a.Preferences()}).Get(context.Background(), shared.Key); err == nil {
		t.Fatalf("expected decode error")
	}
}
