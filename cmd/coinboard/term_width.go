package main

import (
	"os"
	"strconv"
)

// detectTerminalWidth reports the stdout column count, falling back to
// $COLUMNS. 0 means unknown and leaves table rows unbounded.
func detectTerminalWidth() int {
	if n := ttyWidth(); n > 0 {
		return n
	}
	if cols, ok := os.LookupEnv("COLUMNS"); ok {
		if n, err := strconv.Atoi(cols); err == nil && n > 0 {
			return n
		}
	}
	return 0
}
