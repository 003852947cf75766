package display

// FakeSurface is an in-memory grid. Tests assert on the final cell
// contents, including colors; headless runs use it as a null device.
type FakeSurface struct {
	W, H int

	// Runes, Fg, and Bg hold the grid contents, indexed [y][x].
	Runes [][]rune
	Fg    [][]Color
	Bg    [][]Color

	// Flushes counts Flush calls.
	Flushes int

	// Closed tracks if Close was called.
	Closed bool

	fg, bg Color
}

// NewFakeSurface creates a blank grid of the given size.
func NewFakeSurface(w, h int) *FakeSurface {
	f := &FakeSurface{W: w, H: h, fg: White, bg: Black}
	f.Runes = make([][]rune, h)
	f.Fg = make([][]Color, h)
	f.Bg = make([][]Color, h)
	for y := 0; y < h; y++ {
		f.Runes[y] = make([]rune, w)
		f.Fg[y] = make([]Color, w)
		f.Bg[y] = make([]Color, w)
		for x := 0; x < w; x++ {
			f.Runes[y][x] = ' '
			f.Fg[y][x] = White
			f.Bg[y][x] = Black
		}
	}
	return f
}

// Resolution returns the grid size.
func (f *FakeSurface) Resolution() (int, int) {
	return f.W, f.H
}

// SetForeground sets the current foreground color.
func (f *FakeSurface) SetForeground(c Color) {
	f.fg = c
}

// SetBackground sets the current background color.
func (f *FakeSurface) SetBackground(c Color) {
	f.bg = c
}

// Fill writes the rune into every cell of the rectangle.
func (f *FakeSurface) Fill(x, y, w, h int, r rune) {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			f.set(xx, yy, r)
		}
	}
}

// Write draws text starting at (x, y).
func (f *FakeSurface) Write(x, y int, text string) {
	for i, r := range []rune(text) {
		f.set(x+i, y, r)
	}
}

func (f *FakeSurface) set(x, y int, r rune) {
	if x < 0 || y < 0 || x >= f.W || y >= f.H {
		return
	}
	f.Runes[y][x] = r
	f.Fg[y][x] = f.fg
	f.Bg[y][x] = f.bg
}

// Flush counts the frame.
func (f *FakeSurface) Flush() {
	f.Flushes++
}

// Close marks the surface as closed.
func (f *FakeSurface) Close() {
	f.Closed = true
}

// Row returns row y as a string, for readable assertions.
func (f *FakeSurface) Row(y int) string {
	return string(f.Runes[y])
}
