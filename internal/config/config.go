/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// AppConfig is the user-editable configuration persisted to a YAML file in the user scope.
// Environment variables are treated as read-only overrides at runtime.
//
// config_version: bump when the structure changes in a backward-incompatible way.
// Unknown fields are ignored on unmarshal.

type SharedConfig struct {
	// Backend is one of sqlite, file, keyring, memory, preferences.
	Backend string `yaml:"backend"`
	// Path is the sqlite database file or the file slot directory.
	// Empty resolves under DataDir.
	Path     string `yaml:"path"`
	AppGroup string `yaml:"app_group"` // keyring service name
	// MaxImageBytes caps each image mirrored to the slot; 0 disables shrinking.
	MaxImageBytes int `yaml:"max_image_bytes"`
}

type CreatorConfig struct {
	MaxImageBytes int    `yaml:"max_image_bytes"`
	DefaultText   string `yaml:"default_text"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
	// Rotation limits for File; 0 keeps the logger defaults.
	MaxSizeMB  int `yaml:"max_size_mb"`
	MaxBackups int `yaml:"max_backups"`
}

type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	Shared        SharedConfig  `yaml:"shared"`
	Creator       CreatorConfig `yaml:"creator"`
	Logging       LoggingConfig `yaml:"logging"`
}

// Slot backends.
const (
	BackendSQLite  = "sqlite"
	BackendFile    = "file"
	BackendKeyring = "keyring"
	BackendMemory  = "memory"
	// BackendPreferences stores the slot in the desktop app's preferences.
	// Only the ui command can open it.
	BackendPreferences = "preferences"
)

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		Shared:        SharedConfig{Backend: BackendSQLite, AppGroup: "group.app.beri.shared", MaxImageBytes: 1 << 20},
		Creator:       CreatorConfig{MaxImageBytes: 5 * 1024 * 1024, DefaultText: "My Widget"},
		Logging:       LoggingConfig{Level: "info", Format: "console", Source: false, File: ""},
	}
}

// Env var names used as overrides.
const (
	EnvConfigPath       = "BERI_CONFIG"
	EnvDataDir          = "BERI_DATA_DIR"
	EnvSlotBackend      = "BERI_SLOT_BACKEND"
	EnvSlotPath         = "BERI_SLOT_PATH"
	EnvMaxImageBytes    = "BERI_MAX_IMAGE_BYTES"
	EnvSharedImageBytes = "BERI_SHARED_IMAGE_BYTES"
	// EnvLogLevel Logging envs
	EnvLogLevel  = "BERI_LOG_LEVEL"
	EnvLogFormat = "BERI_LOG_FORMAT"
	EnvLogSource = "BERI_LOG_SOURCE"
	EnvLogFile   = "BERI_LOG_FILE"
)

// userBase returns the per-OS application directory for kind ("config" or "data").
func userBase(kind string) string {
	switch runtime.GOOS {
	case "windows":
		base := os.Getenv("AppData")
		if base == "" { // fallback
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		return filepath.Join(base, "Beri")
	case "darwin":
		return filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "Beri")
	default: // linux and others
		if kind == "data" {
			if x := os.Getenv("XDG_DATA_HOME"); x != "" {
				return filepath.Join(x, "beri")
			}
			return filepath.Join(os.Getenv("HOME"), ".local", "share", "beri")
		}
		if x := os.Getenv("XDG_CONFIG_HOME"); x != "" {
			return filepath.Join(x, "beri")
		}
		return filepath.Join(os.Getenv("HOME"), ".config", "beri")
	}
}

// ConfigPath returns the per-user config file path.
func ConfigPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p, nil
	}
	base := userBase("config")
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// DataDir returns the directory for slot files and crash reports.
func DataDir() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvDataDir)); p != "" {
		return p, nil
	}
	base := userBase("data")
	if base == "" {
		return "", errors.New("cannot resolve data directory")
	}
	return base, nil
}

// CrashDir is where crash reports and autosaved drafts go.
func CrashDir() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "crash"), nil
}

// SlotPath resolves the effective slot location for the configured backend.
func (c AppConfig) SlotPath() (string, error) {
	if p := strings.TrimSpace(c.Shared.Path); p != "" {
		return p, nil
	}
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	if c.Shared.Backend == BackendFile {
		return filepath.Join(dir, "slots"), nil
	}
	return filepath.Join(dir, "shared.sqlite"), nil
}

// Validate reports configuration values that cannot be used.
func (c AppConfig) Validate() error {
	switch c.Shared.Backend {
	case BackendSQLite, BackendFile, BackendKeyring, BackendMemory, BackendPreferences:
	default:
		return fmt.Errorf("unknown slot backend %q", c.Shared.Backend)
	}
	if c.Shared.MaxImageBytes < 0 {
		return fmt.Errorf("shared.max_image_bytes must be >= 0, got %d", c.Shared.MaxImageBytes)
	}
	if c.Creator.MaxImageBytes <= 0 {
		return fmt.Errorf("creator.max_image_bytes must be > 0, got %d", c.Creator.MaxImageBytes)
	}
	return nil
}

// Load reads user config file (if present), applies defaults, and merges environment overrides.
func Load() (AppConfig, error) {
	cfg := Defaults()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	if data, err := os.ReadFile(path); err == nil {
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
		mergeInto(&cfg, &fileCfg)
	}
	applyEnvOverrides(&cfg)
	return cfg, cfg.Validate()
}

// Save writes the user config YAML.
func Save(cfg AppConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if v := strings.ToLower(strings.TrimSpace(src.Shared.Backend)); v != "" {
		dst.Shared.Backend = v
	}
	if strings.TrimSpace(src.Shared.Path) != "" {
		dst.Shared.Path = strings.TrimSpace(src.Shared.Path)
	}
	if strings.TrimSpace(src.Shared.AppGroup) != "" {
		dst.Shared.AppGroup = strings.TrimSpace(src.Shared.AppGroup)
	}
	if src.Shared.MaxImageBytes != 0 {
		dst.Shared.MaxImageBytes = src.Shared.MaxImageBytes
	}
	if src.Creator.MaxImageBytes != 0 {
		dst.Creator.MaxImageBytes = src.Creator.MaxImageBytes
	}
	if src.Creator.DefaultText != "" {
		dst.Creator.DefaultText = src.Creator.DefaultText
	}
	// logging
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	dst.Logging.Source = src.Logging.Source
	if src.Logging.MaxSizeMB > 0 {
		dst.Logging.MaxSizeMB = src.Logging.MaxSizeMB
	}
	if src.Logging.MaxBackups > 0 {
		dst.Logging.MaxBackups = src.Logging.MaxBackups
	}
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
}

func truthy(v string) bool {
	lv := strings.ToLower(v)
	return lv == "1" || lv == "true" || lv == "on" || lv == "yes"
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvSlotBackend)); v != "" {
		cfg.Shared.Backend = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvSlotPath)); v != "" {
		cfg.Shared.Path = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvMaxImageBytes)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Creator.MaxImageBytes = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvSharedImageBytes)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Shared.MaxImageBytes = n
		}
	}
	// logging overrides
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		cfg.Logging.Source = truthy(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

var envKeys = map[string]string{
	"shared.backend":          EnvSlotBackend,
	"shared.path":             EnvSlotPath,
	"shared.max_image_bytes":  EnvSharedImageBytes,
	"creator.max_image_bytes": EnvMaxImageBytes,
	"logging.level":           EnvLogLevel,
	"logging.format":          EnvLogFormat,
	"logging.source":          EnvLogSource,
	"logging.file":            EnvLogFile,
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	env, ok := envKeys[key]
	if !ok || os.Getenv(env) == "" {
		return "", false
	}
	return env, true
}
