// Copyright © 2025 Scrollkit contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/config.go
// Summary: JSON tuning configuration for scrollkit hosts. Lazily loaded
// from the user config dir; a missing file silently yields the defaults.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/framegrace/scrollkit/scroll"
)

const (
	dirName  = "scrollkit"
	fileName = "scrollview.json"
)

// File is the on-disk configuration shape.
type File struct {
	// Tuning maps directly onto the engine's Config; zero fields fall
	// back to the engine defaults.
	Tuning scroll.Config `json:"tuning"`

	// FrameIntervalMs is the inertia tick cadence in milliseconds.
	FrameIntervalMs int `json:"frameIntervalMs"`
}

// Default returns the stock configuration.
func Default() File {
	return File{
		Tuning:          scroll.DefaultConfig(),
		FrameIntervalMs: 16,
	}
}

// FrameInterval returns the tick cadence as a duration, defaulting to 16ms
// for unset or nonsense values.
func (f File) FrameInterval() time.Duration {
	if f.FrameIntervalMs <= 0 {
		return 16 * time.Millisecond
	}
	return time.Duration(f.FrameIntervalMs) * time.Millisecond
}

var (
	mu      sync.RWMutex
	once    sync.Once
	current File
	loadErr error
)

func initStore() {
	path, err := Path()
	if err != nil {
		current, loadErr = Default(), err
		return
	}
	current, loadErr = LoadFrom(path)
}

// Load returns the active configuration, reading it on first use.
func Load() File {
	once.Do(initStore)
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Err returns the most recent load error. A missing config file is not an
// error; the defaults apply.
func Err() error {
	once.Do(initStore)
	mu.RLock()
	defer mu.RUnlock()
	return loadErr
}

// Reload re-reads the configuration from disk.
func Reload() error {
	once.Do(initStore)
	mu.Lock()
	defer mu.Unlock()
	path, err := Path()
	if err != nil {
		loadErr = err
		return err
	}
	current, loadErr = LoadFrom(path)
	return loadErr
}

// Set replaces the in-memory configuration.
func Set(f File) {
	once.Do(initStore)
	mu.Lock()
	defer mu.Unlock()
	current = f
}

// Save persists the active configuration, creating the config dir if
// needed.
func Save() error {
	once.Do(initStore)
	mu.RLock()
	f := current
	mu.RUnlock()

	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Path returns the config file location under the user config dir.
func Path() (string, error) {
	root, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, dirName, fileName), nil
}

// LoadFrom reads a configuration file, layering it over the defaults so a
// partial file only overrides what it mentions. A missing file yields the
// defaults with no error.
func LoadFrom(path string) (File, error) {
	f := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return f, nil
	}
	if err != nil {
		return f, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, &f); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	return f, nil
}
