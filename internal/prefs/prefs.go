// Package prefs persists the small set of UI choices a viewer makes at
// runtime so the next session starts the same way.
package prefs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Prefs holds the persisted UI state.
type Prefs struct {
	Theme   string `toml:"theme"`
	ShowHUD bool   `toml:"show_hud"`
}

// Default returns the preferences used when nothing was saved yet.
func Default() Prefs {
	return Prefs{Theme: ThemeDark}
}

// Dark reports whether the dark theme is selected.
func (p Prefs) Dark() bool { return p.Theme != ThemeLight }

// SetDark selects the theme.
func (p *Prefs) SetDark(dark bool) {
	if dark {
		p.Theme = ThemeDark
	} else {
		p.Theme = ThemeLight
	}
}

// DefaultPath returns prefs.toml under the user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("prefs: %w", err)
	}
	return filepath.Join(dir, "flockbg", "prefs.toml"), nil
}

// Load reads preferences from path. A missing file yields the defaults and
// no error.
func Load(path string) (Prefs, error) {
	p := Default()
	if _, err := toml.DecodeFile(path, &p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("prefs: load %s: %w", path, err)
	}
	if p.Theme != ThemeDark && p.Theme != ThemeLight {
		p.Theme = ThemeDark
	}
	return p, nil
}

// Save writes p to path, creating parent directories as needed. The file is
// replaced atomically.
func Save(path string, p Prefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("prefs: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".prefs-*.toml")
	if err != nil {
		return fmt.Errorf("prefs: %w", err)
	}
	defer os.Remove(tmp.Name())
	if err := toml.NewEncoder(tmp).Encode(p); err != nil {
		tmp.Close()
		return fmt.Errorf("prefs: encode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("prefs: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("prefs: %w", err)
	}
	return nil
}
