/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package shared

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"path/filepath"
	"strings"
	"testing"
	"time"

	keyring "github.com/zalando/go-keyring"

	"beri/internal/config"
	"beri/internal/domain"
)

var fixedNow = time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)

func newTestBridge(slot Slot, opts ...Option) *Bridge {
	return NewBridge(slot, append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)...)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	b := newTestBridge(NewMemorySlot())
	red := domain.RGBAColor{R: 1, G: 0, B: 0, A: 1}.Color()
	if err := b.SaveLatest(ctx, "Hi", red, domain.Small, domain.SmallStickyNote, nil); err != nil {
		t.Fatalf("SaveLatest: %v", err)
	}
	got, ok := b.LoadLatest(ctx)
	if !ok {
		t.Fatalf("expected a record")
	}
	if got.Text != "Hi" || got.SizeRaw != "Small" || got.TemplateRaw != "smallStickyNote" {
		t.Fatalf("unexpected record: %+v", got)
	}
	if got.Color != (domain.RGBAColor{R: 1, G: 0, B: 0, A: 1}) {
		t.Fatalf("unexpected color: %+v", got.Color)
	}
	if got.ImageBlobsBase64 == nil || len(got.ImageBlobsBase64) != 0 {
		t.Fatalf("expected empty image list, got %#v", got.ImageBlobsBase64)
	}
	if !got.CreatedAt.Equal(fixedNow) {
		t.Fatalf("unexpected createdAt %v", got.CreatedAt)
	}
}

func TestLastWriteWins(t *testing.T) {
	ctx := context.Background()
	b := newTestBridge(NewMemorySlot())
	_ = b.SaveLatest(ctx, "first", domain.PalettePrimary, domain.Small, domain.SmallNote, nil)
	_ = b.SaveLatest(ctx, "second", domain.PalettePrimary, domain.Large, domain.LargePolaroid, [][]byte{{1, 2}})
	got, ok := b.LoadLatest(ctx)
	if !ok || got.Text != "second" || got.TemplateRaw != "largePolaroid" {
		t.Fatalf("expected second record, got %+v", got)
	}
	imgs := got.Images()
	if len(imgs) != 1 || !bytes.Equal(imgs[0], []byte{1, 2}) {
		t.Fatalf("unexpected images: %v", imgs)
	}
}

func TestLoadAbsentAndUndecodable(t *testing.T) {
	ctx := context.Background()
	slot := NewMemorySlot()
	b := newTestBridge(slot)
	if _, ok := b.LoadLatest(ctx); ok {
		t.Fatalf("empty slot must report absent")
	}
	_ = slot.Set(ctx, Key, []byte("{not json"))
	if _, ok := b.LoadLatest(ctx); ok {
		t.Fatalf("garbage must report absent")
	}
	var nilBridge *Bridge
	if _, ok := nilBridge.LoadLatest(ctx); ok {
		t.Fatalf("nil bridge must report absent")
	}
}

func TestSaveTruncatesExtraImages(t *testing.T) {
	ctx := context.Background()
	slot := NewMemorySlot()
	b := newTestBridge(slot)
	if err := b.SaveLatest(ctx, "p", domain.PalettePrimary, domain.Small, domain.SmallPolaroid, [][]byte{{1}, {2}, {3}}); err != nil {
		t.Fatalf("SaveLatest: %v", err)
	}
	got, _ := b.LoadLatest(ctx)
	if len(got.ImageBlobsBase64) != 1 {
		t.Fatalf("expected one image, got %d", len(got.ImageBlobsBase64))
	}
}

func TestSaveRejectsUnknownTags(t *testing.T) {
	b := newTestBridge(NewMemorySlot())
	err := b.SaveLatest(context.Background(), "x", domain.PalettePrimary, domain.WidgetSize(9), domain.SmallNote, nil)
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestRecordFieldNames(t *testing.T) {
	ctx := context.Background()
	slot := NewMemorySlot()
	b := newTestBridge(slot)
	_ = b.SaveLatest(ctx, "Hi", domain.PalettePrimary, domain.Medium, domain.MediumTwoPolaroids, nil)
	raw, err := slot.Get(ctx, Key)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, k := range []string{"text", "color", "sizeRaw", "templateRaw", "imageBlobsBase64", "createdAt"} {
		if _, ok := m[k]; !ok {
			t.Fatalf("missing field %q in %s", k, raw)
		}
	}
	if err := Validate(raw); err != nil {
		t.Fatalf("stored record must validate: %v", err)
	}
}

func TestValidateRejectsBadColor(t *testing.T) {
	doc := `{"text":"x","color":{"r":2,"g":0,"b":0,"a":1},"sizeRaw":"Small","templateRaw":"smallNote","imageBlobsBase64":[],"createdAt":"2025-01-01T00:00:00Z"}`
	if err := Validate([]byte(doc)); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func noisyPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	r := rand.New(rand.NewSource(1))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{uint8(r.Intn(256)), uint8(r.Intn(256)), uint8(r.Intn(256)), 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

func TestShrink(t *testing.T) {
	small := []byte{1, 2, 3}
	if out, ok := Shrink(small, 10); !ok || !bytes.Equal(out, small) {
		t.Fatalf("small blob should pass through")
	}
	if out, ok := Shrink(small, 0); !ok || !bytes.Equal(out, small) {
		t.Fatalf("zero limit disables shrinking")
	}
	big := noisyPNG(t, 256, 256)
	limit := len(big) / 4
	out, ok := Shrink(big, limit)
	if !ok || len(out) > limit {
		t.Fatalf("expected shrink under %d, got %d ok=%v", limit, len(out), ok)
	}
	if _, _, err := image.Decode(bytes.NewReader(out)); err != nil {
		t.Fatalf("shrunk image must decode: %v", err)
	}
	if _, ok := Shrink(bytes.Repeat([]byte{0xAB}, 100), 10); ok {
		t.Fatalf("undecodable oversized blob must be dropped")
	}
}

func TestSaveKeepsSlotForDroppedImage(t *testing.T) {
	ctx := context.Background()
	b := newTestBridge(NewMemorySlot(), WithMaxImageBytes(10))
	garbage := bytes.Repeat([]byte{0xAB}, 100)
	if err := b.SaveLatest(ctx, "p", domain.PalettePrimary, domain.Medium, domain.MediumTwoPolaroids, [][]byte{garbage, {1}}); err != nil {
		t.Fatalf("SaveLatest: %v", err)
	}
	got, _ := b.LoadLatest(ctx)
	imgs := got.Images()
	if len(imgs) != 2 || len(imgs[0]) != 0 || !bytes.Equal(imgs[1], []byte{1}) {
		t.Fatalf("unexpected images: %v", imgs)
	}
}

func TestFileSlot(t *testing.T) {
	ctx := context.Background()
	slot := FileSlot{Dir: filepath.Join(t.TempDir(), "slots")}
	if _, err := slot.Get(ctx, Key); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	b := newTestBridge(slot)
	if err := b.SaveLatest(ctx, "file", domain.PalettePrimary, domain.Small, domain.SmallNote, nil); err != nil {
		t.Fatalf("SaveLatest: %v", err)
	}
	if err := b.SaveLatest(ctx, "file2", domain.PalettePrimary, domain.Small, domain.SmallNote, nil); err != nil {
		t.Fatalf("SaveLatest: %v", err)
	}
	if got, ok := b.LoadLatest(ctx); !ok || got.Text != "file2" {
		t.Fatalf("unexpected record %+v", got)
	}
	if err := slot.Set(ctx, "../escape", []byte("x")); err == nil {
		t.Fatalf("path keys must be rejected")
	}
}

func TestSQLiteSlot(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "shared.sqlite")
	slot, err := OpenSQLiteSlot(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := slot.Get(ctx, Key); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	b := newTestBridge(slot)
	_ = b.SaveLatest(ctx, "one", domain.PalettePrimary, domain.Small, domain.SmallNote, nil)
	_ = b.SaveLatest(ctx, "two", domain.PalettePrimary, domain.Large, domain.LargeMathNote, nil)
	if err := slot.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := OpenSQLiteSlot(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	t.Cleanup(func() { _ = reopened.Close() })
	got, ok := newTestBridge(reopened).LoadLatest(ctx)
	if !ok || got.Text != "two" || got.TemplateRaw != "largeMathNote" {
		t.Fatalf("expected persisted second record, got %+v", got)
	}
	if _, err := OpenSQLiteSlot("  "); err == nil {
		t.Fatalf("blank path must fail")
	}
}

func TestKeyringSlot(t *testing.T) {
	keyring.MockInit()
	ctx := context.Background()
	slot := KeyringSlot{Service: "beri-test"}
	if _, err := slot.Get(ctx, Key); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	b := newTestBridge(slot)
	if err := b.SaveLatest(ctx, "secret", domain.PalettePrimary, domain.Small, domain.SmallStickyNote, nil); err != nil {
		t.Fatalf("SaveLatest: %v", err)
	}
	if got, ok := b.LoadLatest(ctx); !ok || got.Text != "secret" {
		t.Fatalf("unexpected record %+v", got)
	}
}

func TestOpenBackends(t *testing.T) {
	dir := t.TempDir()
	for _, backend := range []string{config.BackendMemory, config.BackendFile, config.BackendSQLite, config.BackendKeyring} {
		cfg := config.Defaults()
		cfg.Shared.Backend = backend
		cfg.Shared.Path = filepath.Join(dir, backend)
		slot, closeFn, err := Open(cfg)
		if err != nil || slot == nil {
			t.Fatalf("%s: open failed: %v", backend, err)
		}
		if err := closeFn(); err != nil {
			t.Fatalf("%s: close: %v", backend, err)
		}
	}
	cfg := config.Defaults()
	cfg.Shared.Backend = config.BackendPreferences
	if _, _, err := Open(cfg); !errors.Is(err, ErrNeedsUI) {
		t.Fatalf("expected ErrNeedsUI, got %v", err)
	}
	cfg.Shared.Backend = "redis"
	if _, closeFn, err := Open(cfg); err == nil || !strings.Contains(err.Error(), "redis") || closeFn == nil {
		t.Fatalf("expected unknown backend error")
	}
}
