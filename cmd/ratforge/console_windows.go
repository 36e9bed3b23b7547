//go:build windows

package main

import "golang.org/x/sys/windows"

// manageConsole detaches the console window unless debug output is wanted.
func manageConsole(debug bool) {
	if debug {
		return
	}
	// Launched from Explorer this prevents a persistent console window.
	windows.NewLazySystemDLL("kernel32.dll").NewProc("FreeConsole").Call()
}
