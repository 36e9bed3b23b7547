//go:build debug

// Package debug provides a centralized, categorized debug logging system.
// Build with -tags debug to enable logging.
package debug

import (
	"fmt"
	"io"
	"log"
	"os"
	"slices"
	"strings"
	"sync"
)

// Enabled indicates whether debug logging is active
const Enabled = true

// Category represents a debug logging category
type Category string

const (
	// Core categories
	APP      Category = "APP"      // Window loop, wiring, exercise lifecycle
	DRAG     Category = "DRAG"     // Drag sessions: start, commit, cancel
	SELECT   Category = "SELECT"   // Selection set changes
	ZONE     Category = "ZONE"     // Drop zone enter/leave/reject, zone exits
	STORE    Category = "STORE"    // Event log database
	UI       Category = "UI"       // Rendering and widget state
	EXERCISE Category = "EXERCISE" // Exercise generation and grading

	// Detailed subcategories (use sparingly - can be verbose)
	UI_EVENT  Category = "UI_EVENT"  // Every pointer/touch event fed to the manager
	UI_LAYOUT Category = "UI_LAYOUT" // Layout calculations (extremely verbose)
)

var (
	// enabledCategories controls which categories are active
	// By default, all main categories are enabled
	enabledCategories = map[Category]bool{
		APP:      true,
		DRAG:     true,
		SELECT:   true,
		ZONE:     true,
		STORE:    true,
		UI:       true,
		EXERCISE: true,
		// Verbose categories disabled by default
		UI_EVENT:  false,
		UI_LAYOUT: false,
	}
	categoryMu sync.RWMutex

	// Output destination
	logger = log.New(os.Stderr, "", log.Ltime|log.Lmicroseconds)
)

func init() {
	// Format: RATFORGE_DEBUG=DRAG,ZONE or RATFORGE_DEBUG=all or RATFORGE_DEBUG=none
	Configure(os.Getenv("RATFORGE_DEBUG"))
}

// Configure applies a category list: "all", "none" or comma separated
// category names. Listed categories are enabled and all others disabled.
// An empty list changes nothing.
func Configure(list string) {
	list = strings.ToUpper(strings.TrimSpace(list))
	switch list {
	case "":
		return
	case "ALL":
		EnableAll()
		return
	case "NONE":
		DisableAll()
		return
	}

	cats := make(map[Category]bool)
	categoryMu.RLock()
	for cat := range enabledCategories {
		cats[cat] = false
	}
	categoryMu.RUnlock()
	for _, name := range strings.Split(list, ",") {
		if name = strings.TrimSpace(name); name != "" {
			cats[Category(name)] = true
		}
	}
	SetCategories(cats)
}

// Log logs a debug message for the specified category
func Log(cat Category, format string, args ...interface{}) {
	categoryMu.RLock()
	enabled := enabledCategories[cat]
	categoryMu.RUnlock()

	if !enabled {
		return
	}

	msg := fmt.Sprintf(format, args...)
	logger.Printf("[%s] %s", cat, msg)
}

// SetOutput redirects debug output, e.g. into a test buffer.
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

// IsEnabled returns whether a category is enabled
func IsEnabled(cat Category) bool {
	categoryMu.RLock()
	defer categoryMu.RUnlock()
	return enabledCategories[cat]
}

// EnableAll enables all debug categories including verbose ones
func EnableAll() {
	categoryMu.Lock()
	for cat := range enabledCategories {
		enabledCategories[cat] = true
	}
	categoryMu.Unlock()
}

// DisableAll disables all debug categories
func DisableAll() {
	categoryMu.Lock()
	for cat := range enabledCategories {
		enabledCategories[cat] = false
	}
	categoryMu.Unlock()
}

// SetCategories sets the enabled state for multiple categories
func SetCategories(cats map[Category]bool) {
	categoryMu.Lock()
	for cat, enabled := range cats {
		enabledCategories[cat] = enabled
	}
	categoryMu.Unlock()
}

// ListEnabled returns the enabled categories in name order
func ListEnabled() []Category {
	categoryMu.RLock()
	defer categoryMu.RUnlock()

	var enabled []Category
	for cat, on := range enabledCategories {
		if on {
			enabled = append(enabled, cat)
		}
	}
	slices.Sort(enabled)
	return enabled
}
