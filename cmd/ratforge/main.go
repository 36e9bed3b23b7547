package main

import (
	"flag"
	"log"

	"github.com/ratforge/ratforge/internal/app"
	"github.com/ratforge/ratforge/internal/config"
	debugpkg "github.com/ratforge/ratforge/internal/debug"
)

func main() {
	debug := flag.Bool("debug", false, "Enable verbose debug logging")
	categories := flag.String("debug-categories", "", "Debug categories to log, e.g. DRAG,ZONE (overrides RATFORGE_DEBUG)")
	resetConfig := flag.Bool("reset-config", false, "Back up the config file and rewrite it with defaults")
	flag.Parse()

	// Handle OS-specific console visibility
	manageConsole(*debug)

	switch {
	case *categories != "":
		debugpkg.Configure(*categories)
	case *debug:
		debugpkg.EnableAll()
	}

	if *resetConfig {
		path := config.ConfigPath()
		backup, err := config.GenerateConfig(path)
		if err != nil {
			log.Fatalf("Config: %v", err)
		}
		if backup != "" {
			log.Printf("Config: previous file saved as %s", backup)
		}
		log.Printf("Config: wrote defaults to %s", path)
	}

	app.Main(*debug)
}
