//go:build darwin

package config

// DefaultHotkeys returns the default keyboard shortcuts for macOS
func DefaultHotkeys() HotkeysConfig {
	return HotkeysConfig{
		CheckAnswer:    "Enter",
		StartOver:      "Cmd+R",
		ClearSelection: "Escape",
		DropSelection:  "Space",
		ToggleTheme:    "Cmd+Shift+D",
	}
}
