package main

import "github.com/fatih/color"

// Output colors
var (
	Subtle = color.New(color.FgHiBlack)
	Good   = color.New(color.FgGreen)
	Bad    = color.New(color.FgRed)
	Accent = color.New(color.FgCyan, color.Bold)
)

// statusIcon returns a check or cross.
func statusIcon(ok bool) string {
	if ok {
		return Good.Sprint("✓")
	}
	return Bad.Sprint("✗")
}
