//go:build !unix

// File: spectator/terminal_other.go
package main

const defaultColumns = 80

func terminalColumns() int { return defaultColumns }
