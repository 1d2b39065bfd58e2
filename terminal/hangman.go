package terminal

import (
	"errors"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/cmd-hangman/game"
	"github.com/lixenwraith/cmd-hangman/settings"
)

// AudioControl is the part of the sound system the player can toggle
type AudioControl interface {
	ToggleMute() bool
}

// TerminalHangman runs a session on a tcell screen
type TerminalHangman struct {
	screen  tcell.Screen
	session *game.Session
	audio   AudioControl
	log     zerolog.Logger
	onCrash func(any)

	menu    int
	notice  string
	buttons tcell.ButtonMask

	// hit areas of the last frame, in screen coordinates
	letters  []Region
	items    []Region
	dialogue Region
}

// Option configures a TerminalHangman
type Option func(*TerminalHangman)

// WithAudio lets F2 mute and unmute
func WithAudio(a AudioControl) Option {
	return func(t *TerminalHangman) { t.audio = a }
}

// WithLogger attaches a logger
func WithLogger(l zerolog.Logger) Option {
	return func(t *TerminalHangman) { t.log = l.With().Str("component", "terminal").Logger() }
}

// WithDifficulty preselects a menu entry
func WithDifficulty(d settings.Difficulty) Option {
	return func(t *TerminalHangman) {
		for i, m := range settings.Difficulties() {
			if m == d {
				t.menu = i
			}
		}
	}
}

// WithCrashHandler is called with the recovered value if the input goroutine panics
func WithCrashHandler(h func(any)) Option {
	return func(t *TerminalHangman) { t.onCrash = h }
}

// New creates a frontend on an initialized screen
func New(screen tcell.Screen, session *game.Session, opts ...Option) *TerminalHangman {
	t := &TerminalHangman{
		screen:  screen,
		session: session,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Run drives the session until the player quits
func (t *TerminalHangman) Run() {
	ticker := time.NewTicker(game.TickInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go t.pollEvents(eventChan)

	t.Draw()
	for {
		select {
		case ev, ok := <-eventChan:
			if !ok || !t.HandleEvent(ev) {
				return
			}
			t.Draw()

		case <-ticker.C:
			t.session.Tick()
			t.Draw()
		}
	}
}

func (t *TerminalHangman) pollEvents(out chan<- tcell.Event) {
	defer func() {
		if r := recover(); r != nil && t.onCrash != nil {
			t.onCrash(r)
		}
	}()
	defer close(out)

	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return // screen finalized
		}
		out <- ev
	}
}

// HandleEvent applies one input event; it returns false when the player quits
func (t *TerminalHangman) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return t.handleKey(ev)
	case *tcell.EventMouse:
		t.handleMouse(ev)
	case *tcell.EventResize:
		t.screen.Sync()
	}
	return true
}

func (t *TerminalHangman) handleKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
		t.log.Info().Str("phase", t.session.Phase().String()).Msg("player quit")
		return false
	}
	t.notice = ""

	if ev.Key() == tcell.KeyF2 && t.audio != nil {
		if t.audio.ToggleMute() {
			t.notice = "sound on"
		} else {
			t.notice = "sound off"
		}
		return true
	}

	switch t.session.Phase() {
	case game.PhaseChooseDifficulty:
		t.handleMenuKey(ev)
	case game.PhaseRound:
		t.handleRoundKey(ev)
	case game.PhaseGameOver:
		if ev.Key() == tcell.KeyEnter {
			t.advance()
		}
	default:
		if ev.Key() == tcell.KeyEnter || (ev.Key() == tcell.KeyRune && ev.Rune() == ' ') {
			t.advance()
		}
	}
	return true
}

func (t *TerminalHangman) handleMenuKey(ev *tcell.EventKey) {
	n := len(settings.Difficulties())
	switch ev.Key() {
	case tcell.KeyUp:
		t.menu = (t.menu + n - 1) % n
	case tcell.KeyDown, tcell.KeyTab:
		t.menu = (t.menu + 1) % n
	case tcell.KeyEnter:
		if t.session.Conductor().Typing() {
			t.advance()
			return
		}
		t.choose(t.menu)
	case tcell.KeyRune:
		if r := ev.Rune(); r >= '1' && int(r-'1') < n {
			t.choose(int(r - '1'))
		}
	}
}

func (t *TerminalHangman) handleRoundKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyLeft, tcell.KeyBacktab:
		t.session.MoveCursor(-1)
	case tcell.KeyRight, tcell.KeyTab:
		t.session.MoveCursor(1)
	case tcell.KeyHome:
		t.session.SetCursor(0)
	case tcell.KeyEnd:
		t.session.SetCursor(len(t.session.Status().Word) - 1)
	case tcell.KeyEnter:
		t.advance()
	case tcell.KeyRune:
		switch r := ev.Rune(); {
		case r == ' ':
			t.session.TogglePause()
		case r == '?':
			_, err := t.session.Hint()
			t.report(err)
		case unicode.IsLetter(r):
			_, err := t.session.Guess(r)
			t.report(err)
		}
	}
}

func (t *TerminalHangman) handleMouse(ev *tcell.EventMouse) {
	pressed := ev.Buttons()&tcell.Button1 != 0 && t.buttons&tcell.Button1 == 0
	t.buttons = ev.Buttons()
	if !pressed {
		return
	}

	x, y := ev.Position()
	for i, r := range t.letters {
		if r.Contains(x, y) {
			t.session.SetCursor(i)
			return
		}
	}
	for i, r := range t.items {
		if r.Contains(x, y) {
			t.menu = i
			t.choose(i)
			return
		}
	}
	if t.dialogue.Contains(x, y) && t.session.Phase() != game.PhaseRound {
		t.advance()
	}
}

func (t *TerminalHangman) choose(i int) {
	d := settings.Difficulties()[i]
	if err := t.session.ChooseDifficulty(d); err != nil {
		t.report(err)
	}
}

// advance moves the dialogue on; a finished game-over script returns to the menu
func (t *TerminalHangman) advance() {
	if t.session.Phase() == game.PhaseGameOver && t.session.Conductor().Finished() {
		t.session.Restart()
		return
	}
	if err := t.session.Continue(); err != nil {
		t.report(err)
	}
}

// report turns an action error into the notice line
func (t *TerminalHangman) report(err error) {
	switch {
	case err == nil:
	case errors.Is(err, game.ErrPaused):
		t.notice = "paused: press space to resume"
	case errors.Is(err, game.ErrNoHintsLeft):
		t.notice = "no hints left for this word"
	case errors.Is(err, game.ErrPositionRevealed):
		t.notice = "that letter is already shown"
	default:
		t.notice = err.Error()
		t.log.Warn().Err(err).Str("phase", t.session.Phase().String()).Msg("action failed")
	}
}

// Notice returns the feedback line shown under the status bar
func (t *TerminalHangman) Notice() string {
	return t.notice
}

// Menu returns the highlighted difficulty entry
func (t *TerminalHangman) Menu() int {
	return t.menu
}
