package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Config holds all user-configurable settings loaded from config.json
type Config struct {
	Gesture  GestureConfig  `json:"gesture"`
	Exercise ExerciseConfig `json:"exercise"`
	UI       UIConfig       `json:"ui"`
	Store    StoreConfig    `json:"store"`
	Hotkeys  HotkeysConfig  `json:"hotkeys"`
}

// GestureConfig holds drag and click thresholds
type GestureConfig struct {
	PointerThreshold  float32 `json:"pointerThreshold"`  // px before a mouse press becomes a drag
	TouchThreshold    float32 `json:"touchThreshold"`    // px before a touch press becomes a drag
	DoubleClickWindow int     `json:"doubleClickWindow"` // ms between clicks on the same kitten
}

// ExerciseConfig holds basket exercise settings
type ExerciseConfig struct {
	MinKittens int    `json:"minKittens"`
	MaxKittens int    `json:"maxKittens"`
	Seed       uint32 `json:"seed"` // 0 picks a random seed per exercise
}

// UIConfig holds UI-related settings
type UIConfig struct {
	Theme        string `json:"theme"` // "light" or "dark"
	WindowWidth  int    `json:"windowWidth"`
	WindowHeight int    `json:"windowHeight"`
}

// StoreConfig holds attempt log settings
type StoreConfig struct {
	DataDir string `json:"dataDir"`
	UserID  string `json:"userId"`
}

// Manager handles loading, saving, and accessing configuration
type Manager struct {
	mu       sync.RWMutex
	config   *Config
	path     string
	parseErr error // Stores parsing error if config failed to load
}

// NewManager creates a new configuration manager
func NewManager() *Manager {
	return &Manager{
		config: DefaultConfig(),
		path:   ConfigPath(),
	}
}

// NewManagerAt creates a manager bound to a specific config file
func NewManagerAt(path string) *Manager {
	return &Manager{
		config: DefaultConfig(),
		path:   path,
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Gesture: GestureConfig{
			PointerThreshold:  5,
			TouchThreshold:    10,
			DoubleClickWindow: 400,
		},
		Exercise: ExerciseConfig{
			MinKittens: 6,
			MaxKittens: 12,
		},
		UI: UIConfig{
			Theme:        "light",
			WindowWidth:  1000,
			WindowHeight: 700,
		},
		Store: StoreConfig{
			DataDir: DefaultDataDir(),
		},
		Hotkeys: DefaultHotkeys(),
	}
}

// ConfigPath returns the config file path: ~/.config/ratforge/config.json
func ConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "ratforge", "config.json")
}

// DefaultDataDir returns ~/.local/share/ratforge
func DefaultDataDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "ratforge")
}

// Load reads the configuration from the config file
// If the file doesn't exist, creates it with defaults
// If parsing fails, stores the error and returns defaults
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.parseErr = nil

	configDir := filepath.Dir(m.path)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		log.Printf("Config: failed to create directory %s: %v", configDir, err)
		return err
	}

	data, err := os.ReadFile(m.path)
	if os.IsNotExist(err) {
		log.Printf("Config: creating default config at %s", m.path)
		m.config = DefaultConfig()
		m.config.Store.UserID = uuid.NewString()
		if saveErr := m.saveUnlocked(); saveErr != nil {
			log.Printf("Config: failed to save default config: %v", saveErr)
			return saveErr
		}
		return nil
	}
	if err != nil {
		log.Printf("Config: failed to read %s: %v", m.path, err)
		return err
	}

	// Missing keys keep their defaults
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		log.Printf("Config: JSON parse error: %v", err)
		m.parseErr = err
		m.config = DefaultConfig()
		return nil // Don't return error - we're using defaults
	}

	m.config = cfg
	m.normalize()
	if m.config.Store.UserID == "" {
		m.config.Store.UserID = uuid.NewString()
		if err := m.saveUnlocked(); err != nil {
			log.Printf("Config: failed to persist user id: %v", err)
		}
	}

	log.Printf("Config: loaded from %s", m.path)
	return nil
}

// normalize replaces out-of-range values with defaults (caller must hold lock)
func (m *Manager) normalize() {
	def := DefaultConfig()
	g := &m.config.Gesture
	if g.PointerThreshold <= 0 {
		g.PointerThreshold = def.Gesture.PointerThreshold
	}
	if g.TouchThreshold <= 0 {
		g.TouchThreshold = def.Gesture.TouchThreshold
	}
	if g.DoubleClickWindow <= 0 {
		g.DoubleClickWindow = def.Gesture.DoubleClickWindow
	}
	e := &m.config.Exercise
	if e.MinKittens <= 0 || e.MaxKittens < e.MinKittens {
		e.MinKittens, e.MaxKittens = def.Exercise.MinKittens, def.Exercise.MaxKittens
	}
	if m.config.Store.DataDir == "" {
		m.config.Store.DataDir = def.Store.DataDir
	}
}

// saveUnlocked saves config without acquiring lock (caller must hold lock)
func (m *Manager) saveUnlocked() error {
	data, err := json.MarshalIndent(m.config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(m.path, data, 0o644)
}

// Save writes the current configuration to disk
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveUnlocked()
}

// Get returns a copy of the current configuration
func (m *Manager) Get() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.config == nil {
		return *DefaultConfig()
	}
	return *m.config
}

// ParseError returns the parsing error if config failed to load
func (m *Manager) ParseError() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.parseErr
}

// SetTheme updates the theme setting
func (m *Manager) SetTheme(theme string) {
	m.mu.Lock()
	m.config.UI.Theme = theme
	m.mu.Unlock()
	m.Save()
}

// IsDarkMode returns true if dark mode is enabled
func (m *Manager) IsDarkMode() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config.UI.Theme == "dark"
}

// GetHotkeys returns the parsed keyboard shortcuts
func (m *Manager) GetHotkeys() *HotkeyMatcher {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return NewHotkeyMatcher(m.config.Hotkeys)
}

// DoubleClickWindow returns the double-click interval
func (m *Manager) DoubleClickWindow() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return time.Duration(m.config.Gesture.DoubleClickWindow) * time.Millisecond
}

// DBPath returns the attempt log location for the configured user
func (m *Manager) DBPath() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user := m.config.Store.UserID
	if user == "" {
		user = "anonymous"
	}
	return filepath.Join(m.config.Store.DataDir, user, "events.db")
}

// GenerateConfig backs up the config at path and writes fresh defaults,
// keeping the user id so the attempt history stays attached.
// Returns the backup path if a backup was created, or empty string if no existing config
func GenerateConfig(path string) (backupPath string, err error) {
	defaultCfg := DefaultConfig()

	if data, err := os.ReadFile(path); err == nil {
		timestamp := time.Now().Format("20060102-150405")
		backupPath = filepath.Join(filepath.Dir(path), "config.backup."+timestamp+".json")
		if err := os.WriteFile(backupPath, data, 0o644); err != nil {
			return "", fmt.Errorf("failed to write backup: %w", err)
		}
		var old Config
		if json.Unmarshal(data, &old) == nil {
			defaultCfg.Store.UserID = old.Store.UserID
		}
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to read existing config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return backupPath, fmt.Errorf("failed to create config directory: %w", err)
	}
	if defaultCfg.Store.UserID == "" {
		defaultCfg.Store.UserID = uuid.NewString()
	}

	data, err := json.MarshalIndent(defaultCfg, "", "  ")
	if err != nil {
		return backupPath, fmt.Errorf("failed to marshal default config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return backupPath, fmt.Errorf("failed to write config: %w", err)
	}
	return backupPath, nil
}
