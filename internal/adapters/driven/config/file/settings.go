package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/wrenchworks/wrench-cli/internal/core/domain"
)

// SettingsStore persists AppSettings as a TOML file.
// If configDir is empty, defaults to ~/.wrench/config.toml.
type SettingsStore struct {
	mu       sync.RWMutex
	filePath string
	settings domain.AppSettings
}

// NewSettingsStore creates a settings store, loading the existing file
// if present. A missing file yields defaults.
func NewSettingsStore(configDir string) (*SettingsStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		configDir = filepath.Join(home, ".wrench")
	}

	// Ensure directory exists
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	s := &SettingsStore{
		filePath: filepath.Join(configDir, "config.toml"),
		settings: domain.DefaultAppSettings(),
	}

	if err := s.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return s, nil
}

// Settings returns a copy of the current settings.
func (s *SettingsStore) Settings() domain.AppSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Update replaces the settings and persists immediately.
func (s *SettingsStore) Update(settings domain.AppSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings = settings
	return s.save()
}

// save writes settings to the TOML file (caller must hold lock).
func (s *SettingsStore) save() error {
	data, err := toml.Marshal(s.settings)
	if err != nil {
		return fmt.Errorf("marshalling settings: %w", err)
	}

	// Restricted permissions: the file may hold an API key.
	if err := os.WriteFile(s.filePath, data, 0600); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	return nil
}

// Load reads settings from the TOML file. Fields absent from the file
// keep their defaults.
func (s *SettingsStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			// No config file yet, keep defaults.
			return nil
		}
		return fmt.Errorf("reading settings: %w", err)
	}

	settings := domain.DefaultAppSettings()
	if err := toml.Unmarshal(data, &settings); err != nil {
		return fmt.Errorf("parsing settings: %w", err)
	}

	s.settings = settings
	return nil
}

// Path returns the configuration file path.
func (s *SettingsStore) Path() string {
	return s.filePath
}
