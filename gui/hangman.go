// Package gui is the windowed frontend, built on ebiten.
// It shares the game.Session with the terminal frontend and differs only in
// input and drawing: buttons and a clickable message box replace the key help.
package gui

import (
	"errors"
	"image"
	"unicode"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/cmd-hangman/game"
	"github.com/lixenwraith/cmd-hangman/settings"
)

// Logical screen size
const (
	ScreenWidth  = 960
	ScreenHeight = 640
)

// debug font cell
const (
	glyphW = 6
	glyphH = 16
)

// Layout
var (
	messageRect = image.Rect(20, 40, 640, 240)
	gallowsRect = image.Rect(660, 40, 940, 340)
	wordTop     = 270
	letterSize  = 36
	letterGap   = 8
	menuTop     = 330
	statusY     = 540
	noticeY     = 560
)

// AudioControl is the part of the sound system the player can toggle
type AudioControl interface {
	ToggleMute() bool
}

// Hangman implements ebiten.Game on top of a session
type Hangman struct {
	session *game.Session
	audio   AudioControl
	log     zerolog.Logger

	start        *Button
	pause        *Button
	mute         *Button
	difficulties []*Button

	notice string
	chars  []rune
}

// Option configures a Hangman
type Option func(*Hangman)

// WithAudio adds the sound button
func WithAudio(a AudioControl) Option {
	return func(h *Hangman) { h.audio = a }
}

// WithLogger attaches a logger
func WithLogger(l zerolog.Logger) Option {
	return func(h *Hangman) { h.log = l.With().Str("component", "gui").Logger() }
}

// New creates the windowed frontend
func New(session *game.Session, opts ...Option) *Hangman {
	h := &Hangman{
		session: session,
		log:     zerolog.Nop(),
		start:   NewOnceButton("Start", image.Rect(20, 590, 140, 626)),
		pause:   NewButton("Pause", image.Rect(160, 590, 280, 626)),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.audio != nil {
		h.mute = NewButton("Mute", image.Rect(300, 590, 420, 626))
	}

	for i, d := range settings.Difficulties() {
		x := 20 + i*124
		h.difficulties = append(h.difficulties, NewButton(d.String(), image.Rect(x, menuTop, x+116, menuTop+40)))
	}
	return h
}

// Update reads input and advances the session by one tick
func (h *Hangman) Update() error {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		h.Click(ebiten.CursorPosition())
	}

	for _, k := range []ebiten.Key{
		ebiten.KeyEscape, ebiten.KeyEnter, ebiten.KeyArrowLeft, ebiten.KeyArrowRight,
		ebiten.KeyArrowUp, ebiten.KeyArrowDown, ebiten.KeyHome, ebiten.KeyEnd, ebiten.KeyF2,
	} {
		if inpututil.IsKeyJustPressed(k) && !h.Press(k) {
			return ebiten.Termination
		}
	}

	h.chars = ebiten.AppendInputChars(h.chars[:0])
	for _, r := range h.chars {
		h.Type(r)
	}

	h.session.Tick()
	h.sync()
	return nil
}

// sync keeps button states in line with the session
func (h *Hangman) sync() {
	h.pause.Set(h.session.Paused())
	switch h.session.Phase() {
	case game.PhaseIntro, game.PhaseGameOver:
		h.start.Reset()
	default:
		h.start.Set(true)
	}
}

// Click handles a left click at (x, y)
func (h *Hangman) Click(x, y int) {
	h.notice = ""
	defer h.sync()

	switch {
	case h.start.CheckClick(x, y):
		h.startGame()
	case h.pause.CheckClick(x, y):
		if h.session.Phase() == game.PhaseRound {
			h.session.TogglePause()
		}
	case h.mute != nil && h.mute.Contains(x, y):
		h.toggleMute()
	case image.Pt(x, y).In(messageRect):
		h.advance()
	case h.session.Phase() == game.PhaseChooseDifficulty:
		for i, b := range h.difficulties {
			if b.Contains(x, y) {
				h.choose(settings.Difficulties()[i])
				return
			}
		}
	case h.session.Phase() == game.PhaseRound:
		n := len(h.session.Status().Word)
		for i := 0; i < n; i++ {
			if image.Pt(x, y).In(letterRect(i, n)) {
				h.session.SetCursor(i)
				return
			}
		}
	}
}

// Press handles a non-character key; it returns false when the player quits
func (h *Hangman) Press(k ebiten.Key) bool {
	h.notice = ""
	switch k {
	case ebiten.KeyEscape:
		h.log.Info().Str("phase", h.session.Phase().String()).Msg("player quit")
		return false
	case ebiten.KeyF2:
		h.toggleMute()
	case ebiten.KeyEnter:
		h.advance()
	case ebiten.KeyArrowLeft, ebiten.KeyArrowUp:
		h.session.MoveCursor(-1)
	case ebiten.KeyArrowRight, ebiten.KeyArrowDown:
		h.session.MoveCursor(1)
	case ebiten.KeyHome:
		h.session.SetCursor(0)
	case ebiten.KeyEnd:
		if st := h.session.Status(); st != nil {
			h.session.SetCursor(len(st.Word) - 1)
		}
	}
	return true
}

// Type handles a typed character
func (h *Hangman) Type(r rune) {
	h.notice = ""
	switch h.session.Phase() {
	case game.PhaseChooseDifficulty:
		diffs := settings.Difficulties()
		if r >= '1' && int(r-'1') < len(diffs) {
			h.choose(diffs[r-'1'])
		}
	case game.PhaseRound:
		switch {
		case r == ' ':
			h.session.TogglePause()
		case r == '?':
			_, err := h.session.Hint()
			h.report(err)
		case unicode.IsLetter(r):
			_, err := h.session.Guess(r)
			h.report(err)
		}
	}
	h.sync()
}

// startGame skips the opening dialogue, or returns to the menu after a game
func (h *Hangman) startGame() {
	switch h.session.Phase() {
	case game.PhaseIntro:
		for h.session.Phase() == game.PhaseIntro {
			h.advance()
		}
	case game.PhaseGameOver:
		h.session.Restart()
	}
}

func (h *Hangman) choose(d settings.Difficulty) {
	h.report(h.session.ChooseDifficulty(d))
}

func (h *Hangman) advance() {
	h.report(h.session.Continue())
}

func (h *Hangman) toggleMute() {
	if h.audio == nil {
		return
	}
	on := h.audio.ToggleMute()
	if h.mute != nil {
		h.mute.Set(!on)
	}
}

func (h *Hangman) report(err error) {
	switch {
	case err == nil:
	case errors.Is(err, game.ErrPaused):
		h.notice = "Paused: press Pause to resume"
	case errors.Is(err, game.ErrNoHintsLeft):
		h.notice = "No hints left for this word"
	case errors.Is(err, game.ErrPositionRevealed):
		h.notice = "That letter is already shown"
	default:
		h.notice = err.Error()
		h.log.Warn().Err(err).Str("phase", h.session.Phase().String()).Msg("action failed")
	}
}

// Notice returns the feedback line
func (h *Hangman) Notice() string { return h.notice }

// Layout fixes the logical screen size; ebiten scales it to the window
func (h *Hangman) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

// letterRect is the box of letter i in a word of n letters, centered under the message box.
// Long words shrink the boxes to fit.
func letterRect(i, n int) image.Rectangle {
	size := letterSize
	if fit := (messageRect.Dx() - (n-1)*letterGap) / n; fit < size {
		size = fit
	}
	width := n*size + (n-1)*letterGap
	x0 := messageRect.Min.X + (messageRect.Dx()-width)/2
	x := x0 + i*(size+letterGap)
	return image.Rect(x, wordTop, x+size, wordTop+size)
}
