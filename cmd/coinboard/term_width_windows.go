//go:build windows

package main

// ttyWidth has no console query on windows; $COLUMNS is the only source.
func ttyWidth() int { return 0 }
