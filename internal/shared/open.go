/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package shared

import (
	"errors"
	"fmt"

	"beri/internal/config"
)

// ErrNeedsUI is returned by Open for backends only the desktop ui provides.
var ErrNeedsUI = errors.New("slot backend is only available in the desktop ui")

// Open builds the slot selected by cfg. The returned close func is never nil.
func Open(cfg config.AppConfig) (Slot, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Shared.Backend {
	case config.BackendMemory:
		return NewMemorySlot(), noop, nil
	case config.BackendPreferences:
		return nil, noop, ErrNeedsUI
	case config.BackendKeyring:
		return KeyringSlot{Service: cfg.Shared.AppGroup}, noop, nil
	case config.BackendFile, config.BackendSQLite:
		path, err := cfg.SlotPath()
		if err != nil {
			return nil, noop, err
		}
		if cfg.Shared.Backend == config.BackendFile {
			return FileSlot{Dir: path}, noop, nil
		}
		s, err := OpenSQLiteSlot(path)
		if err != nil {
			return nil, noop, err
		}
		return s, s.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown slot backend %q", cfg.Shared.Backend)
	}
}
