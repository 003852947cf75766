//go:build linux

package display

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/sys/unix"
)

// ANSI screen control sequences.
const (
	escReset   = "\033[0m"
	escHome    = "\033[H"
	escClear   = "\033[2J\033[H"
	escAltOn   = "\033[?1049h"
	escAltOff  = "\033[?1049l"
	escHideCur = "\033[?25l"
	escShowCur = "\033[?25h"
)

type cell struct {
	r  rune
	fg Color
	bg Color
}

// Term renders the grid to an ANSI terminal using the alternate screen.
// Draw calls mutate an in-memory cell buffer; Flush writes the whole frame
// in one chunk.
type Term struct {
	out    *os.File
	w, h   int
	cells  []cell
	fg, bg Color
}

// NewTerm queries the terminal size and switches to the alternate screen.
// The grid size is fixed for the session.
func NewTerm(out *os.File) (*Term, error) {
	ws, err := unix.IoctlGetWinsize(int(out.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return nil, fmt.Errorf("query terminal size: %w", err)
	}
	if ws.Col == 0 || ws.Row == 0 {
		return nil, fmt.Errorf("terminal reports zero size %dx%d", ws.Col, ws.Row)
	}

	t := &Term{
		out: out,
		w:   int(ws.Col),
		h:   int(ws.Row),
		fg:  White,
		bg:  Black,
	}
	t.cells = make([]cell, t.w*t.h)
	for i := range t.cells {
		t.cells[i] = cell{r: ' ', fg: White, bg: Black}
	}

	fmt.Fprint(out, escAltOn+escHideCur+escClear)
	return t, nil
}

// Resolution returns the grid size in cells.
func (t *Term) Resolution() (int, int) {
	return t.w, t.h
}

// SetForeground sets the current foreground color.
func (t *Term) SetForeground(c Color) {
	t.fg = c
}

// SetBackground sets the current background color.
func (t *Term) SetBackground(c Color) {
	t.bg = c
}

// Fill writes the rune into every cell of the rectangle.
func (t *Term) Fill(x, y, w, h int, r rune) {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			t.set(xx, yy, r)
		}
	}
}

// Write draws text starting at (x, y).
func (t *Term) Write(x, y int, text string) {
	for i, r := range []rune(text) {
		t.set(x+i, y, r)
	}
}

func (t *Term) set(x, y int, r rune) {
	if x < 0 || y < 0 || x >= t.w || y >= t.h {
		return
	}
	t.cells[y*t.w+x] = cell{r: r, fg: t.fg, bg: t.bg}
}

// Flush writes the whole frame, emitting SGR codes only on color changes.
func (t *Term) Flush() {
	var b strings.Builder
	b.WriteString(escHome)

	lastFg, lastBg := Color(-1), Color(-1)
	for y := 0; y < t.h; y++ {
		if y > 0 {
			b.WriteString("\r\n")
		}
		for x := 0; x < t.w; x++ {
			c := t.cells[y*t.w+x]
			if c.fg != lastFg || c.bg != lastBg {
				fmt.Fprintf(&b, "\033[%d;%dm", sgrFg(c.fg), sgrBg(c.bg))
				lastFg, lastBg = c.fg, c.bg
			}
			b.WriteRune(c.r)
		}
	}
	b.WriteString(escReset)
	fmt.Fprint(t.out, b.String())
}

// Close leaves the alternate screen and restores the cursor.
func (t *Term) Close() {
	fmt.Fprint(t.out, escReset+escShowCur+escAltOff)
}

// sgrFg maps a Color to its ANSI foreground code (30-37, 90-97).
func sgrFg(c Color) int {
	if c >= BrightBlack {
		return 90 + int(c-BrightBlack)
	}
	return 30 + int(c)
}

// sgrBg maps a Color to its ANSI background code (40-47, 100-107).
func sgrBg(c Color) int {
	if c >= BrightBlack {
		return 100 + int(c-BrightBlack)
	}
	return 40 + int(c)
}
