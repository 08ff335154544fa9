//go:build unix

// File: spectator/terminal_unix.go
package main

import (
	"os"

	"golang.org/x/sys/unix"
)

const defaultColumns = 80

// terminalColumns returns the width of the terminal on stdout.
func terminalColumns() int {
	ws, err := unix.IoctlGetWinsize(int(os.Stdout.Fd()), unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 {
		return defaultColumns
	}
	return int(ws.Col)
}
