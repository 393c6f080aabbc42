package uiprefs

import (
	"sync"

	"github.com/carpediem/console/internal/accesspolicy"
)

// Preferences are per-person console settings. They live in memory only: a
// restart resets everyone to the defaults, which matches how the portal
// treats them as cosmetic state rather than data.
type Preferences struct {
	Theme       string `json:"theme"`
	SidebarOpen bool   `json:"sidebar_open"`
}

func defaultPreferences() Preferences {
	return Preferences{
		Theme:       accesspolicy.ThemeLight,
		SidebarOpen: true,
	}
}

// Store keeps preferences keyed by auth id.
type Store struct {
	mu    sync.RWMutex
	prefs map[string]Preferences
}

func NewStore() *Store {
	return &Store{prefs: make(map[string]Preferences)}
}

func (s *Store) Get(authID string) Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if p, ok := s.prefs[authID]; ok {
		return p
	}
	return defaultPreferences()
}

// Set stores the preferences, coercing an unknown theme to light.
func (s *Store) Set(authID string, p Preferences) Preferences {
	if p.Theme != accesspolicy.ThemeLight && p.Theme != accesspolicy.ThemeDark {
		p.Theme = accesspolicy.ThemeLight
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs[authID] = p
	return p
}
