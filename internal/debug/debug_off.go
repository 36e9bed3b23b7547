//go:build !debug

// Package debug provides a centralized, categorized debug logging system.
// This is the no-op version for release builds.
package debug

import "io"

// Enabled indicates whether debug logging is active
const Enabled = false

// Category represents a debug logging category
type Category string

const (
	APP       Category = "APP"
	DRAG      Category = "DRAG"
	SELECT    Category = "SELECT"
	ZONE      Category = "ZONE"
	STORE     Category = "STORE"
	UI        Category = "UI"
	EXERCISE  Category = "EXERCISE"
	UI_EVENT  Category = "UI_EVENT"
	UI_LAYOUT Category = "UI_LAYOUT"
)

// SetOutput is a no-op in release builds
func SetOutput(w io.Writer) {}

// Log is a no-op in release builds
func Log(cat Category, format string, args ...interface{}) {}

// Configure is a no-op in release builds
func Configure(list string) {}

// IsEnabled always returns false in release builds
func IsEnabled(cat Category) bool { return false }

// EnableAll is a no-op in release builds
func EnableAll() {}

// DisableAll is a no-op in release builds
func DisableAll() {}

// SetCategories is a no-op in release builds
func SetCategories(cats map[Category]bool) {}

// ListEnabled returns nil in release builds
func ListEnabled() []Category { return nil }
