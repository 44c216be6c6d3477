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
	"encoding/base64"
	"fmt"

	"fyne.io/fyne/v2"

	"beri/internal/shared"
)

// PreferencesSlot keeps shared records in the fyne app preferences, which
// fyne persists per app id. Values are base64 encoded since preferences
// only hold strings.
type PreferencesSlot struct {
	Prefs fyne.Preferences
}

func (p PreferencesSlot) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	v := p.Prefs.String(key)
	if v == "" {
		return nil, shared.ErrNotFound
	}
	b, err := base64.StdEncoding.DecodeString(v)
	if err != nil {
		return nil, fmt.Errorf("decode preference %s: %w", key, err)
	}
	return b, nil
}

func (p PreferencesSlot) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.Prefs.SetString(key, base64.StdEncoding.EncodeToString(value))
	return nil
}
