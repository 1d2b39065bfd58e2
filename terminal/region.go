package terminal

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// LineType specifies box drawing character style
type LineType uint8

const (
	LineSingle  LineType = iota // ┌─┐│└┘
	LineDouble                  // ╔═╗║╚╝
	LineRounded                 // ╭─╮│╰╯
)

var boxChars = [...][6]rune{
	LineSingle:  {'┌', '─', '┐', '│', '└', '┘'},
	LineDouble:  {'╔', '═', '╗', '║', '╚', '╝'},
	LineRounded: {'╭', '─', '╮', '│', '╰', '╯'},
}

const (
	boxTL = iota
	boxH
	boxTR
	boxV
	boxBL
	boxBR
)

// Region is a clipped rectangle of the screen; coordinates are relative to its origin
type Region struct {
	screen tcell.Screen
	X, Y   int
	W, H   int
}

// FullRegion covers the whole screen
func FullRegion(s tcell.Screen) Region {
	w, h := s.Size()
	return Region{screen: s, W: w, H: h}
}

// Sub returns a nested region clipped to the parent
func (r Region) Sub(x, y, w, h int) Region {
	if x < 0 {
		w += x
		x = 0
	}
	if y < 0 {
		h += y
		y = 0
	}
	if x+w > r.W {
		w = r.W - x
	}
	if y+h > r.H {
		h = r.H - y
	}
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Region{screen: r.screen, X: r.X + x, Y: r.Y + y, W: w, H: h}
}

// Inset returns a region shrunk by n cells on all sides
func (r Region) Inset(n int) Region {
	return r.Sub(n, n, r.W-2*n, r.H-2*n)
}

// Contains reports whether absolute screen cell (x, y) lies inside the region
func (r Region) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Cell sets a single cell, ignoring positions outside the region
func (r Region) Cell(x, y int, ch rune, style tcell.Style) {
	if x < 0 || x >= r.W || y < 0 || y >= r.H {
		return
	}
	r.screen.SetContent(r.X+x, r.Y+y, ch, nil, style)
}

// Text renders s at (x, y), truncated at the region edge; it returns the cells used
func (r Region) Text(x, y int, s string, style tcell.Style) int {
	col := 0
	for _, ch := range s {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		if x+col+w > r.W {
			break
		}
		r.Cell(x+col, y, ch, style)
		col += w
	}
	return col
}

// TextCenter renders s centered on row y
func (r Region) TextCenter(y int, s string, style tcell.Style) {
	r.Text((r.W-runewidth.StringWidth(s))/2, y, s, style)
}

// Block renders lines one per row starting at (x, y)
func (r Region) Block(x, y int, lines []string, style tcell.Style) {
	for i, line := range lines {
		r.Text(x, y+i, line, style)
	}
}

// Fill paints every cell of the region
func (r Region) Fill(ch rune, style tcell.Style) {
	for y := 0; y < r.H; y++ {
		for x := 0; x < r.W; x++ {
			r.Cell(x, y, ch, style)
		}
	}
}

// Box draws a border around the region edge
func (r Region) Box(line LineType, style tcell.Style) {
	if r.W < 2 || r.H < 2 {
		return
	}
	if int(line) >= len(boxChars) {
		line = LineSingle
	}
	chars := boxChars[line]

	r.Cell(0, 0, chars[boxTL], style)
	r.Cell(r.W-1, 0, chars[boxTR], style)
	r.Cell(0, r.H-1, chars[boxBL], style)
	r.Cell(r.W-1, r.H-1, chars[boxBR], style)

	for x := 1; x < r.W-1; x++ {
		r.Cell(x, 0, chars[boxH], style)
		r.Cell(x, r.H-1, chars[boxH], style)
	}
	for y := 1; y < r.H-1; y++ {
		r.Cell(0, y, chars[boxV], style)
		r.Cell(r.W-1, y, chars[boxV], style)
	}
}

// Card draws a titled border and returns the inner content region
func (r Region) Card(title string, line LineType, style tcell.Style) Region {
	r.Box(line, style)
	if title != "" && r.W > 4 {
		label := " " + runewidth.Truncate(title, r.W-4, "…") + " "
		r.Text((r.W-runewidth.StringWidth(label))/2, 0, label, style.Bold(true))
	}
	return r.Inset(1)
}
