// Package theme decides between the light and dark palettes.
//
// An explicitly stored preference always wins. Without one the theme
// follows the operating system's dark-mode setting, including changes
// reported after startup.
package theme

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/abelbrown/trendwatch/internal/logging"
)

// Mode is a palette choice.
type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

// PrefKey is the preference key the theme is stored under.
const PrefKey = "theme"

// Prefs is the preference storage the theme needs. *store.Store satisfies it.
type Prefs interface {
	Preference(key string) (string, bool, error)
	SetPreference(key, value string) error
	ClearPreference(key string) error
}

// Detector reports whether the OS currently prefers a dark appearance.
type Detector func() (bool, error)

// Manager owns the current theme. It is used from the UI loop only.
type Manager struct {
	prefs    Prefs
	mode     Mode
	explicit bool
	osDark   bool
}

// New reads the stored preference, falling back to detect when none is
// stored or the stored value is not a known mode. A failing detector
// means light.
func New(prefs Prefs, detect Detector) (*Manager, error) {
	m := &Manager{prefs: prefs}

	if detect != nil {
		dark, err := detect()
		if err != nil {
			logger().Debug("os theme detection failed", "err", err)
		}
		m.osDark = dark && err == nil
	}

	stored, ok, err := prefs.Preference(PrefKey)
	if err != nil {
		return nil, fmt.Errorf("read theme preference: %w", err)
	}
	if ok {
		if mode, valid := parseMode(stored); valid {
			m.mode = mode
			m.explicit = true
			return m, nil
		}
		logger().Warn("ignoring unknown stored theme", "value", stored)
	}

	m.mode = fromDark(m.osDark)
	return m, nil
}

// Mode is the active palette.
func (m *Manager) Mode() Mode {
	return m.mode
}

// Dark reports whether the dark palette is active.
func (m *Manager) Dark() bool {
	return m.mode == Dark
}

// Explicit reports whether a user choice is stored.
func (m *Manager) Explicit() bool {
	return m.explicit
}

// Set stores mode as the explicit preference and applies it.
func (m *Manager) Set(mode Mode) error {
	if _, valid := parseMode(string(mode)); !valid {
		return fmt.Errorf("unknown theme %q", mode)
	}
	if err := m.prefs.SetPreference(PrefKey, string(mode)); err != nil {
		return err
	}
	m.mode = mode
	m.explicit = true
	logger().Info("theme set", "mode", mode)
	return nil
}

// Toggle switches to the other palette and stores it.
func (m *Manager) Toggle() (Mode, error) {
	next := Dark
	if m.mode == Dark {
		next = Light
	}
	if err := m.Set(next); err != nil {
		return m.mode, err
	}
	return next, nil
}

// FollowSystem forgets the stored choice and returns to the last OS
// reading.
func (m *Manager) FollowSystem() error {
	if err := m.prefs.ClearPreference(PrefKey); err != nil {
		return err
	}
	m.explicit = false
	m.mode = fromDark(m.osDark)
	logger().Info("theme follows system", "mode", m.mode)
	return nil
}

// OSChanged records a new OS reading. The active mode follows it only
// while no explicit preference is stored. It reports whether the active
// mode changed.
func (m *Manager) OSChanged(dark bool) bool {
	m.osDark = dark
	if m.explicit {
		return false
	}
	next := fromDark(dark)
	if next == m.mode {
		return false
	}
	m.mode = next
	logger().Debug("theme followed os", "mode", next)
	return true
}

func fromDark(dark bool) Mode {
	if dark {
		return Dark
	}
	return Light
}

func parseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case Light, Dark:
		return Mode(s), true
	}
	return "", false
}

func logger() *log.Logger {
	return logging.WithPrefix("theme")
}
