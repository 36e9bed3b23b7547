package config

import (
	"strings"

	"gioui.org/io/event"
	"gioui.org/io/key"
)

// HotkeysConfig holds the keyboard shortcuts of the exercise screen
type HotkeysConfig struct {
	CheckAnswer    string `json:"checkAnswer"`
	StartOver      string `json:"startOver"`
	ClearSelection string `json:"clearSelection"`
	DropSelection  string `json:"dropSelection"` // sends the selection to the basket
	ToggleTheme    string `json:"toggleTheme"`
}

// Hotkey represents a parsed keyboard shortcut
type Hotkey struct {
	Key       key.Name
	Modifiers key.Modifiers
}

var modifierNames = map[string]key.Modifiers{
	"ctrl":    key.ModCtrl,
	"control": key.ModCtrl,
	"shift":   key.ModShift,
	"alt":     key.ModAlt,
	"option":  key.ModAlt,
	"cmd":     key.ModCommand,
	"command": key.ModCommand,
	"super":   key.ModSuper,
	"meta":    key.ModSuper,
}

var keyNames = map[string]key.Name{
	"enter":     key.NameReturn,
	"return":    key.NameReturn,
	"space":     key.NameSpace,
	"tab":       key.NameTab,
	"escape":    key.NameEscape,
	"esc":       key.NameEscape,
	"delete":    key.NameDeleteForward,
	"backspace": key.NameDeleteBackward,
	"up":        key.NameUpArrow,
	"down":      key.NameDownArrow,
	"left":      key.NameLeftArrow,
	"right":     key.NameRightArrow,
	"f1":        key.NameF1,
	"f2":        key.NameF2,
	"f5":        key.NameF5,
}

// ParseHotkey parses a hotkey string like "Ctrl+Shift+N" into a Hotkey struct
func ParseHotkey(s string) Hotkey {
	if s == "" {
		return Hotkey{}
	}

	var h Hotkey
	for _, part := range strings.Split(s, "+") {
		part = strings.TrimSpace(part)
		if mod, ok := modifierNames[strings.ToLower(part)]; ok {
			h.Modifiers |= mod
			continue
		}
		h.Key = parseKeyName(part)
	}
	return h
}

// parseKeyName converts a key string to Gio's key.Name
func parseKeyName(s string) key.Name {
	// Gio reports letters in upper case
	if len(s) == 1 {
		return key.Name(strings.ToUpper(s))
	}
	if name, ok := keyNames[strings.ToLower(s)]; ok {
		return name
	}
	return key.Name(s)
}

// Matches checks if a key event matches this hotkey exactly
func (h Hotkey) Matches(k key.Event) bool {
	if h.Key == "" {
		return false
	}
	return k.Name == h.Key && k.Modifiers == h.Modifiers
}

// IsEmpty returns true if the hotkey is not configured
func (h Hotkey) IsEmpty() bool {
	return h.Key == ""
}

// String returns a human-readable representation of the hotkey
func (h Hotkey) String() string {
	if h.Key == "" {
		return ""
	}

	var parts []string
	if h.Modifiers.Contain(key.ModCtrl) {
		parts = append(parts, "Ctrl")
	}
	if h.Modifiers.Contain(key.ModCommand) {
		parts = append(parts, "Cmd")
	}
	if h.Modifiers.Contain(key.ModShift) {
		parts = append(parts, "Shift")
	}
	if h.Modifiers.Contain(key.ModAlt) {
		parts = append(parts, "Alt")
	}
	if h.Modifiers.Contain(key.ModSuper) {
		parts = append(parts, "Super")
	}
	parts = append(parts, string(h.Key))
	return strings.Join(parts, "+")
}

// Filter returns a key.Filter that matches this hotkey
func (h Hotkey) Filter(focus event.Tag) key.Filter {
	return key.Filter{
		Focus:    focus,
		Name:     h.Key,
		Required: h.Modifiers,
	}
}

// HotkeyMatcher holds the parsed shortcuts
type HotkeyMatcher struct {
	CheckAnswer    Hotkey
	StartOver      Hotkey
	ClearSelection Hotkey
	DropSelection  Hotkey
	ToggleTheme    Hotkey
}

// NewHotkeyMatcher creates a matcher from config
func NewHotkeyMatcher(cfg HotkeysConfig) *HotkeyMatcher {
	return &HotkeyMatcher{
		CheckAnswer:    ParseHotkey(cfg.CheckAnswer),
		StartOver:      ParseHotkey(cfg.StartOver),
		ClearSelection: ParseHotkey(cfg.ClearSelection),
		DropSelection:  ParseHotkey(cfg.DropSelection),
		ToggleTheme:    ParseHotkey(cfg.ToggleTheme),
	}
}

// All returns every configured hotkey, for building key filters
func (m *HotkeyMatcher) All() []Hotkey {
	var out []Hotkey
	for _, h := range []Hotkey{m.CheckAnswer, m.StartOver, m.ClearSelection, m.DropSelection, m.ToggleTheme} {
		if !h.IsEmpty() {
			out = append(out, h)
		}
	}
	return out
}
