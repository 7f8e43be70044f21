//go:build !windows

package main

import (
	"os"

	"golang.org/x/sys/unix"
)

func ttyWidth() int {
	ws, err := unix.IoctlGetWinsize(int(os.Stdout.Fd()), unix.TIOCGWINSZ)
	if err != nil || ws == nil {
		return 0
	}
	return int(ws.Col)
}
