package boing

import (
	"fmt"
	"image"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const (
	prefsObject   = "window"
	prefsProperty = "state"
)

// WindowPrefs is the window state remembered between runs.
type WindowPrefs struct {
	X       int   `yaml:"x"`
	Y       int   `yaml:"y"`
	Topmost *bool `yaml:"topmost,omitempty"` // nil keeps the config value
}

// Position returns the saved window position.
func (p WindowPrefs) Position() image.Point { return image.Pt(p.X, p.Y) }

// PrefsStore persists WindowPrefs through gdata. A store with a nil manager
// keeps prefs in memory only.
type PrefsStore struct {
	m     *gdata.Manager
	prefs WindowPrefs
	saved bool
}

// OpenPrefsStore opens the gdata storage for appName. If storage cannot be
// opened the returned store still works, in memory only, and the error is
// returned for logging.
func OpenPrefsStore(appName string) (*PrefsStore, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return NewPrefsStore(nil), fmt.Errorf("boing: open prefs: %w", err)
	}
	return NewPrefsStore(m), nil
}

// NewPrefsStore wraps m, which may be nil.
func NewPrefsStore(m *gdata.Manager) *PrefsStore {
	return &PrefsStore{m: m}
}

// Load returns the saved prefs. ok is false when nothing has been saved yet.
func (s *PrefsStore) Load() (prefs WindowPrefs, ok bool, err error) {
	if s.m == nil {
		return s.prefs, s.saved, nil
	}
	if !s.m.ObjectPropExists(prefsObject, prefsProperty) {
		return WindowPrefs{}, false, nil
	}
	data, err := s.m.LoadObjectProp(prefsObject, prefsProperty)
	if err != nil {
		return WindowPrefs{}, false, fmt.Errorf("boing: load prefs: %w", err)
	}
	if err := yaml.Unmarshal(data, &prefs); err != nil {
		return WindowPrefs{}, false, fmt.Errorf("boing: parse prefs: %w", err)
	}
	return prefs, true, nil
}

// Save stores prefs.
func (s *PrefsStore) Save(prefs WindowPrefs) error {
	s.prefs, s.saved = prefs, true
	if s.m == nil {
		return nil
	}
	data, err := yaml.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("boing: marshal prefs: %w", err)
	}
	if err := s.m.SaveObjectProp(prefsObject, prefsProperty, data); err != nil {
		return fmt.Errorf("boing: save prefs: %w", err)
	}
	log.Printf("[boing] prefs saved: %+v", prefs)
	return nil
}
