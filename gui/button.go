package gui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Button is a labelled rectangle with a clicked state.
// A once button latches on its first click; a toggle button flips on every click.
type Button struct {
	Label   string
	Rect    image.Rectangle
	once    bool
	clicked bool
}

// NewButton creates a toggle button
func NewButton(label string, r image.Rectangle) *Button {
	return &Button{Label: label, Rect: r}
}

// NewOnceButton creates a button that can be clicked only until Reset
func NewOnceButton(label string, r image.Rectangle) *Button {
	return &Button{Label: label, Rect: r, once: true}
}

// Contains reports whether the point lies on the button
func (b *Button) Contains(x, y int) bool {
	return image.Pt(x, y).In(b.Rect)
}

// CheckClick applies a click at (x, y) and reports whether the state changed
func (b *Button) CheckClick(x, y int) bool {
	if !b.Contains(x, y) || (b.once && b.clicked) {
		return false
	}
	b.clicked = !b.clicked
	return true
}

// Clicked returns the current state
func (b *Button) Clicked() bool { return b.clicked }

// Set forces the state, used to follow changes made from the keyboard
func (b *Button) Set(clicked bool) { b.clicked = clicked }

// Reset re-arms a once button
func (b *Button) Reset() { b.clicked = false }

// Draw renders the button; a latched or toggled button is drawn filled
func (b *Button) Draw(dst *ebiten.Image, disabled bool) {
	x, y := float32(b.Rect.Min.X), float32(b.Rect.Min.Y)
	w, h := float32(b.Rect.Dx()), float32(b.Rect.Dy())

	border := colorButton
	if disabled {
		border = colorMuted
	}
	if b.clicked {
		vector.DrawFilledRect(dst, x, y, w, h, colorButtonOn, true)
	}
	vector.StrokeRect(dst, x, y, w, h, 2, border, true)

	tx := b.Rect.Min.X + (b.Rect.Dx()-len(b.Label)*glyphW)/2
	ty := b.Rect.Min.Y + (b.Rect.Dy()-glyphH)/2
	ebitenutil.DebugPrintAt(dst, b.Label, tx, ty)
}

var (
	colorButton   = color.RGBA{0xe0, 0xc0, 0x40, 0xff}
	colorButtonOn = color.RGBA{0x60, 0x50, 0x10, 0xff}
	colorMuted    = color.RGBA{0x60, 0x60, 0x60, 0xff}
)
