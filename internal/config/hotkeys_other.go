//go:build !darwin

package config

// DefaultHotkeys returns the default keyboard shortcuts for Windows/Linux
func DefaultHotkeys() HotkeysConfig {
	return HotkeysConfig{
		CheckAnswer:    "Enter",
		StartOver:      "Ctrl+R",
		ClearSelection: "Escape",
		DropSelection:  "Space",
		ToggleTheme:    "Ctrl+Shift+D",
	}
}
