package gui

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/lixenwraith/cmd-hangman/art"
	"github.com/lixenwraith/cmd-hangman/conductor"
	"github.com/lixenwraith/cmd-hangman/game"
	"github.com/lixenwraith/cmd-hangman/settings"
)

var (
	colorBackground = color.RGBA{0x12, 0x12, 0x1a, 0xff}
	colorFrame      = color.RGBA{0x90, 0x90, 0x90, 0xff}
	colorStart      = color.RGBA{0x40, 0xc0, 0x40, 0xff}
	colorError      = color.RGBA{0xd0, 0x30, 0x30, 0xff}
	colorPositive   = color.RGBA{0x40, 0x70, 0xe0, 0xff}
	colorTitle      = color.RGBA{0xe0, 0xc0, 0x40, 0xff}
	colorCursor     = color.RGBA{0x50, 0x50, 0x70, 0xff}
	colorWood       = color.RGBA{0x8b, 0x5a, 0x2b, 0xff}
	colorFigure     = color.RGBA{0xe8, 0xe8, 0xe8, 0xff}
)

// Draw renders one frame
func (h *Hangman) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	ebitenutil.DebugPrintAt(screen, art.ShortTitle, (ScreenWidth-len(art.ShortTitle)*glyphW)/2, 12)

	h.drawMessage(screen)

	parts, hanged := 0, false
	if st := h.session.Status(); st != nil {
		parts, hanged = st.Penalty, st.Hanged()
	}
	drawGallows(screen, gallowsRect, parts, hanged)

	switch {
	case h.session.Phase() == game.PhaseChooseDifficulty:
		for _, b := range h.difficulties {
			b.Draw(screen, false)
		}
	case h.session.Status() != nil && h.session.Status().Round > 0:
		h.drawWord(screen)
	}

	h.drawStatus(screen)

	h.start.Draw(screen, h.start.Clicked())
	h.pause.Draw(screen, h.session.Phase() != game.PhaseRound)
	if h.mute != nil {
		h.mute.Draw(screen, false)
	}
}

// drawMessage draws the conductor's box; clicking it advances the dialogue
func (h *Hangman) drawMessage(dst *ebiten.Image) {
	r := messageRect
	c := h.session.Conductor()
	vector.StrokeRect(dst, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), 2, sectionColor(c.Section()), true)

	cols := (r.Dx() - 24) / glyphW
	rows := (r.Dy() - 24) / glyphH
	var lines []string
	for _, l := range c.Shown() {
		lines = append(lines, art.Wrap(l, cols)...)
	}
	if extra := len(lines) - rows; extra > 0 {
		lines = lines[extra:]
	}
	ebitenutil.DebugPrintAt(dst, strings.Join(lines, "\n"), r.Min.X+12, r.Min.Y+12)

	if !c.Typing() && h.session.Phase() != game.PhaseRound {
		hint := "click to continue"
		ebitenutil.DebugPrintAt(dst, hint, r.Max.X-12-len(hint)*glyphW, r.Max.Y-glyphH-6)
	}
}

func (h *Hangman) drawWord(dst *ebiten.Image) {
	st := h.session.Status()
	inRound := h.session.Phase() == game.PhaseRound

	word := st.Word
	clr := color.Color(colorFrame)
	if !inRound {
		word = []rune(h.session.LastWord())
		clr = colorError
		if h.session.LastWon() {
			clr = colorPositive
		}
	}

	for i, ch := range word {
		r := letterRect(i, len(word))
		x, y := float32(r.Min.X), float32(r.Min.Y)
		bw, bh := float32(r.Dx()), float32(r.Dy())
		if inRound && i == st.Cursor {
			vector.DrawFilledRect(dst, x, y, bw, bh, colorCursor, true)
		}
		vector.StrokeRect(dst, x, y, bw, bh, 2, clr, true)

		glyph := ch
		if inRound && !st.Revealed(i) {
			glyph = game.HiddenRune
		}
		ebitenutil.DebugPrintAt(dst, string(glyph), r.Min.X+(r.Dx()-glyphW)/2, r.Min.Y+(r.Dy()-glyphH)/2)
	}
}

func (h *Hangman) drawStatus(dst *ebiten.Image) {
	var parts []string
	if st := h.session.Status(); st != nil && st.Round > 0 {
		s := st.Setting()
		parts = append(parts,
			fmt.Sprintf("Round %d/%d", st.Round, s.TotalRounds),
			s.Name,
			"Time "+art.Clock(h.session.Remaining()),
			fmt.Sprintf("Hints %d", st.HintsLeft()),
			fmt.Sprintf("Score %d", st.Score),
		)
	}
	if h.session.Finished() {
		parts = append(parts, fmt.Sprintf("Final %d%%", h.session.FinalPercent()))
	}
	if h.session.Paused() {
		parts = append(parts, "PAUSED")
	}
	ebitenutil.DebugPrintAt(dst, strings.Join(parts, "  |  "), 20, statusY)
	ebitenutil.DebugPrintAt(dst, h.notice, 20, noticeY)

	if h.session.Phase() == game.PhaseChooseDifficulty {
		ebitenutil.DebugPrintAt(dst, "Choose a difficulty (1-"+fmt.Sprint(len(settings.Difficulties()))+")", 20, menuTop-24)
	}
}

// drawGallows draws the scaffold and the first parts body parts inside r
func drawGallows(dst *ebiten.Image, r image.Rectangle, parts int, hanged bool) {
	line := func(x0, y0, x1, y1 int, width float32, clr color.Color) {
		vector.StrokeLine(dst, float32(r.Min.X+x0), float32(r.Min.Y+y0), float32(r.Min.X+x1), float32(r.Min.Y+y1), width, clr, true)
	}

	// scaffold
	line(20, 280, 260, 280, 6, colorWood)
	line(60, 280, 60, 20, 6, colorWood)
	line(60, 20, 180, 20, 6, colorWood)
	line(60, 60, 100, 20, 4, colorWood)
	line(180, 20, 180, 60, 2, colorFrame)

	figure := color.Color(colorFigure)
	if hanged {
		figure = colorError
	}

	for p := art.Part(0); p < art.PartCount && int(p) < parts; p++ {
		switch p {
		case art.Head:
			vector.StrokeCircle(dst, float32(r.Min.X+180), float32(r.Min.Y+80), 20, 3, figure, true)
		case art.Body:
			line(180, 100, 180, 170, 3, figure)
		case art.LeftArm:
			line(180, 115, 150, 145, 3, figure)
		case art.RightArm:
			line(180, 115, 210, 145, 3, figure)
		case art.LeftLeg:
			line(180, 170, 155, 215, 3, figure)
		case art.RightLeg:
			line(180, 170, 205, 215, 3, figure)
		case art.LeftFoot:
			line(155, 215, 140, 215, 3, figure)
		case art.RightFoot:
			line(205, 215, 220, 215, 3, figure)
		}
	}
}

// sectionColor colors the message frame by what the conductor announces
func sectionColor(s conductor.Section) color.Color {
	switch s {
	case conductor.StartGame, conductor.StartRound:
		return colorStart
	case conductor.OnError, conductor.EndWrongRound:
		return colorError
	case conductor.EndPositiveRound:
		return colorPositive
	case conductor.EndGame:
		return colorTitle
	default:
		return colorFrame
	}
}
