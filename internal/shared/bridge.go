/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package shared mirrors the most recently saved widget into a key/value
// slot that the home-screen widget reads. Only one record is kept: every
// save overwrites the previous one.
package shared

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"beri/internal/catalog"
	"beri/internal/domain"
	applog "beri/internal/log"
)

// Key is the slot key of the latest widget record.
const Key = "latest_widget"

// DefaultMaxImageBytes caps each shared image blob.
const DefaultMaxImageBytes = 1 << 20

// ErrNotFound is returned by slots when a key has never been written.
var ErrNotFound = errors.New("shared: key not found")

// Slot is a small key/value store reachable by both the app and the widget.
type Slot interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Bridge writes and reads the latest widget record.
type Bridge struct {
	slot          Slot
	maxImageBytes int
	now           func() time.Time
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithMaxImageBytes sets the per-image cap; 0 disables shrinking.
func WithMaxImageBytes(n int) Option { return func(b *Bridge) { b.maxImageBytes = n } }

// WithClock overrides the time source used for createdAt.
func WithClock(now func() time.Time) Option { return func(b *Bridge) { b.now = now } }

// NewBridge returns a bridge over slot.
func NewBridge(slot Slot, opts ...Option) *Bridge {
	b := &Bridge{slot: slot, maxImageBytes: DefaultMaxImageBytes, now: time.Now}
	for _, o := range opts {
		o(b)
	}
	return b
}

// SaveLatest flattens the widget and overwrites the slot. Images beyond the
// template's photo count are dropped. Images over the
// size cap are downscaled; an image that cannot be brought under the cap is
// stored empty so the slot positions stay stable.
func (b *Bridge) SaveLatest(ctx context.Context, text string, c domain.Color, size domain.WidgetSize, tpl domain.Template, images [][]byte) error {
	l := applog.WithOperation(applog.WithComponent("shared"), "save_latest")
	if b == nil || b.slot == nil {
		return errors.New("shared: no slot configured")
	}
	if n := catalog.RequiredPhotoCount(tpl); len(images) > n {
		images = images[:n]
	}
	blobs := make([][]byte, len(images))
	for i, img := range images {
		out, ok := Shrink(img, b.maxImageBytes)
		if !ok {
			l.WarnContext(ctx, "image dropped", slog.Int("slot", i), slog.Int("bytes", len(img)))
			continue
		}
		blobs[i] = out
	}
	rec := domain.SharedWidgetData{
		Text:             text,
		Color:            c.Normalized(),
		SizeRaw:          size.String(),
		TemplateRaw:      tpl.String(),
		ImageBlobsBase64: domain.EncodeImages(blobs),
		CreatedAt:        b.now().UTC(),
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal shared record: %w", err)
	}
	if err := Validate(data); err != nil {
		return err
	}
	if err := b.slot.Set(ctx, Key, data); err != nil {
		return fmt.Errorf("write %s: %w", Key, err)
	}
	l.DebugContext(ctx, "latest widget saved", slog.Int("bytes", len(data)))
	return nil
}

// LoadLatest returns the last saved record. Absent or undecodable data
// reports false.
func (b *Bridge) LoadLatest(ctx context.Context) (domain.SharedWidgetData, bool) {
	if b == nil || b.slot == nil {
		return domain.SharedWidgetData{}, false
	}
	data, err := b.slot.Get(ctx, Key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			applog.WithComponent("shared").Warn("read latest widget failed", slog.Any("err", err))
		}
		return domain.SharedWidgetData{}, false
	}
	var rec domain.SharedWidgetData
	if err := json.Unmarshal(data, &rec); err != nil {
		applog.WithComponent("shared").Warn("latest widget undecodable", slog.Any("err", err))
		return domain.SharedWidgetData{}, false
	}
	return rec, true
}
