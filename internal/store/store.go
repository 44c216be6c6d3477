/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package store holds the in-memory widget collection shown on the home
// screen. Widgets are only ever added; readers always get a copy.
package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"beri/internal/catalog"
	"beri/internal/domain"
)

// Store is safe for concurrent use. Widgets are kept most recent first.
type Store struct {
	mu      sync.RWMutex
	widgets []domain.UserWidget
	now     func() time.Time
}

// New returns an empty store.
func New() *Store { return &Store{now: time.Now} }

// Add creates a widget and inserts it at the front. Images beyond the
// template's photo count are dropped.
func (s *Store) Add(text string, c domain.Color, size domain.WidgetSize, tpl domain.Template, images [][]byte) uuid.UUID {
	w := domain.NewUserWidget(text, c, size, tpl, images, catalog.RequiredPhotoCount(tpl), s.clock())
	s.mu.Lock()
	defer s.mu.Unlock()
	s.widgets = append([]domain.UserWidget{w}, s.widgets...)
	return w.ID
}

func (s *Store) clock() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}

// List returns a snapshot, most recent first.
func (s *Store) List() []domain.UserWidget {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.UserWidget(nil), s.widgets...)
}

// GroupBySize returns the widgets of one size, order preserved.
func (s *Store) GroupBySize(size domain.WidgetSize) []domain.UserWidget {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.UserWidget
	for _, w := range s.widgets {
		if w.Size == size {
			out = append(out, w)
		}
	}
	return out
}

// Get looks a widget up by id.
func (s *Store) Get(id uuid.UUID) (domain.UserWidget, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, w := range s.widgets {
		if w.ID == id {
			return w, true
		}
	}
	return domain.UserWidget{}, false
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.widgets)
}

// Section groups the widgets of one size for display.
type Section struct {
	Size    domain.WidgetSize
	Widgets []domain.UserWidget
}

// Sections splits a snapshot into Small, Medium and Large groups. Sizes
// without widgets are left out.
func (s *Store) Sections() []Section {
	snap := s.List()
	var out []Section
	for _, size := range domain.AllSizes() {
		var ws []domain.UserWidget
		for _, w := range snap {
			if w.Size == size {
				ws = append(ws, w)
			}
		}
		if len(ws) > 0 {
			out = append(out, Section{Size: size, Widgets: ws})
		}
	}
	return out
}
