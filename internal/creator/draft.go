/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package creator

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"beri/internal/catalog"
	"beri/internal/domain"
)

// Draft is the on-disk form of an unsaved session, written after a crash.
// It reuses the shared record layout so the same tooling can read both.
type Draft = domain.SharedWidgetData

// Draft captures the current choices. Empty slots are stored as "".
func (s *Session) Draft() Draft {
	return Draft{
		Text:             s.text,
		Color:            s.color.Normalized(),
		SizeRaw:          s.size.String(),
		TemplateRaw:      s.template.String(),
		ImageBlobsBase64: domain.EncodeImages(s.photos),
		CreatedAt:        s.now().UTC(),
	}
}

// Restore loads a draft. Unknown sizes or templates leave the session as is;
// a template that does not belong to the size falls back to the size default.
// Restoring can be undone.
func (s *Session) Restore(d Draft) bool {
	if _, ok := d.Size(); !ok {
		return false
	}
	if _, ok := d.Template(); !ok {
		return false
	}
	s.checkpoint("restore")
	return s.apply(d)
}

func (s *Session) apply(d Draft) bool {
	size, ok := d.Size()
	if !ok {
		return false
	}
	tpl, ok := d.Template()
	if !ok {
		return false
	}
	if !catalog.Allows(size, tpl) {
		tpl = catalog.DefaultTemplate(size)
	}
	s.size, s.template = size, tpl
	s.text = d.Text
	s.color = d.Color.Color()
	s.resetPhotos()
	for i, img := range d.Images() {
		if i < len(s.photos) && len(img) > 0 && len(img) <= s.maxImageBytes {
			s.photos[i] = img
		}
	}
	return true
}

// WriteDraft stores the draft as draft-<stamp>.json in dir and returns its path.
func (s *Session) WriteDraft(dir string) (string, error) {
	data, err := json.MarshalIndent(s.Draft(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal draft: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create draft dir: %w", err)
	}
	// a taken name moves the stamp on by a nanosecond so names still sort by age
	for stamp := s.now(); ; stamp = stamp.Add(time.Nanosecond) {
		path := filepath.Join(dir, fmt.Sprintf("draft-%s.json", stamp.Format(draftStamp)))
		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("write draft: %w", err)
		}
		_, werr := f.Write(append(data, '\n'))
		if cerr := f.Close(); werr == nil {
			werr = cerr
		}
		if werr != nil {
			_ = os.Remove(path)
			return "", fmt.Errorf("write draft: %w", werr)
		}
		return path, nil
	}
}

// draftStamp has a fixed width so names sort in time order.
const draftStamp = "20060102-150405.000000000"

// ReadDraft loads a draft written by WriteDraft.
func ReadDraft(path string) (Draft, error) {
	var d Draft
	data, err := os.ReadFile(path)
	if err != nil {
		return d, err
	}
	if err := json.Unmarshal(data, &d); err != nil {
		return d, fmt.Errorf("decode draft: %w", err)
	}
	return d, nil
}

// LatestDraft returns the newest draft in dir, if any.
func LatestDraft(dir string) (string, bool) {
	matches, err := filepath.Glob(filepath.Join(dir, "draft-*.json"))
	if err != nil || len(matches) == 0 {
		return "", false
	}
	sort.Strings(matches)
	return matches[len(matches)-1], true
}
