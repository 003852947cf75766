// Package display provides the character-grid surface the panel draws on.
// The real implementation writes ANSI escape sequences to a terminal; the
// fake keeps the grid in memory for tests and headless runs.
package display

import "fmt"

// Color identifies one of the 16 panel colors (the standard and bright
// terminal colors).
type Color int

const (
	Black Color = iota
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White
	BrightBlack
	BrightRed
	BrightGreen
	BrightYellow
	BrightBlue
	BrightMagenta
	BrightCyan
	BrightWhite
)

var colorNames = map[string]Color{
	"black":          Black,
	"red":            Red,
	"green":          Green,
	"yellow":         Yellow,
	"blue":           Blue,
	"magenta":        Magenta,
	"cyan":           Cyan,
	"white":          White,
	"bright-black":   BrightBlack,
	"bright-red":     BrightRed,
	"bright-green":   BrightGreen,
	"bright-yellow":  BrightYellow,
	"bright-blue":    BrightBlue,
	"bright-magenta": BrightMagenta,
	"bright-cyan":    BrightCyan,
	"bright-white":   BrightWhite,
}

// ParseColor maps a color name (e.g. "bright-red") to its Color. Used by
// the palette flags.
func ParseColor(name string) (Color, error) {
	c, ok := colorNames[name]
	if !ok {
		return Black, fmt.Errorf("unknown color %q", name)
	}
	return c, nil
}

// Surface is a fixed-size character grid. Coordinates are zero-based; all
// calls succeed, and out-of-bounds cells are silently clipped.
type Surface interface {
	// Resolution returns the grid size in cells. Fixed for the session.
	Resolution() (w, h int)

	// SetForeground sets the color used by subsequent Fill and Write calls.
	SetForeground(c Color)

	// SetBackground sets the background color used by subsequent calls.
	SetBackground(c Color)

	// Fill writes the rune into every cell of the rectangle using the
	// current colors.
	Fill(x, y, w, h int, r rune)

	// Write draws text starting at (x, y) using the current colors.
	Write(x, y int, text string)

	// Flush pushes the composed frame to the output device.
	Flush()

	// Close restores the output device.
	Close()
}
