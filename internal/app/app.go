/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package app holds the application state shared by the screens: the widget
// collection, the shared-slot bridge and the selected tab. It is created once
// by the entry point and passed to whoever needs it.
package app

import (
	"context"
	"sync"
	"time"

	"beri/internal/domain"
	"beri/internal/layout"
	"beri/internal/shared"
	"beri/internal/store"
)

// Tab is a top-level screen.
type Tab int

const (
	TabWidgets Tab = iota
	TabHome
	TabProfile
)

func (t Tab) String() string {
	switch t {
	case TabWidgets:
		return "Widgets"
	case TabHome:
		return "Home"
	case TabProfile:
		return "Profile"
	default:
		return "Unknown"
	}
}

// EmptyHomeMessage is shown when no widget has been created yet.
const EmptyHomeMessage = "No widgets yet. Create one in the Widgets tab."

// SplashDelay is how long the splash screen stays up.
const SplashDelay = 1200 * time.Millisecond

// State is the single owner of the collection and the selected tab.
type State struct {
	Store  *store.Store
	Bridge *shared.Bridge

	mu  sync.RWMutex
	tab Tab
}

// New returns state starting on the Home tab.
func New(st *store.Store, br *shared.Bridge) *State {
	if st == nil {
		st = store.New()
	}
	return &State{Store: st, Bridge: br, tab: TabHome}
}

func (s *State) Tab() Tab {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tab
}

// SelectTab switches screens; unknown tabs are ignored.
func (s *State) SelectTab(t Tab) {
	if t < TabWidgets || t > TabProfile {
		return
	}
	s.mu.Lock()
	s.tab = t
	s.mu.Unlock()
}

// Tile pairs a widget with its rendered home tile.
type Tile struct {
	Widget domain.UserWidget
	Region *layout.Region
}

// Section is one size group of the home screen.
type Section struct {
	Size  domain.WidgetSize
	Title string
	Tiles []Tile
}

// Home renders every stored widget, grouped Small, Medium, Large with the
// most recent first inside each group. Empty groups are omitted.
func (s *State) Home() []Section {
	var out []Section
	for _, sec := range s.Store.Sections() {
		tiles := make([]Tile, 0, len(sec.Widgets))
		for _, w := range sec.Widgets {
			tiles = append(tiles, Tile{Widget: w, Region: layout.Tile(w)})
		}
		out = append(out, Section{Size: sec.Size, Title: sec.Size.String(), Tiles: tiles})
	}
	return out
}

// Splash blocks for SplashDelay. A done context ends it early, which only
// happens on shutdown or in tests.
func Splash(ctx context.Context) { SplashFor(ctx, SplashDelay) }

// SplashFor is Splash with an explicit delay.
func SplashFor(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
