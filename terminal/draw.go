package terminal

import (
	"fmt"
	"strings"

	"github.com/lixenwraith/cmd-hangman/art"
	"github.com/lixenwraith/cmd-hangman/game"
	"github.com/lixenwraith/cmd-hangman/settings"
)

// Layout constants
const (
	gallowsCardW = 23
	stageH       = 14 // conductor and gallows cards
	wordCardH    = 5
	letterCellW  = 4 // "[x]" plus a gap
	minPortraitW = 70
)

// Draw renders one frame
func (t *TerminalHangman) Draw() {
	t.screen.Clear()
	t.letters = t.letters[:0]
	t.items = t.items[:0]

	screen := FullRegion(t.screen)
	y := t.drawTitle(screen)

	stage := screen.Sub(0, y, screen.W, stageH)
	t.drawStage(stage)
	y += stageH

	lower := screen.Sub(0, y, screen.W, screen.H-y-2)
	switch {
	case t.session.Phase() == game.PhaseChooseDifficulty:
		t.drawMenu(lower)
	case t.session.Status() != nil && t.session.Status().Round > 0:
		t.drawWord(lower)
	}

	t.drawStatus(screen.Sub(0, screen.H-2, screen.W, 2))
	t.screen.Show()
}

func (t *TerminalHangman) drawTitle(r Region) int {
	if r.W >= art.Width(art.Title) && r.H >= 30 {
		for i, line := range art.Title {
			r.TextCenter(i, line, styleTitle)
		}
		return len(art.Title) + 1
	}
	r.TextCenter(0, art.ShortTitle, styleTitle)
	return 2
}

// drawStage draws the conductor card on the left and the gallows on the right
func (t *TerminalHangman) drawStage(r Region) {
	gallowsW := gallowsCardW
	if r.W < gallowsW*2 {
		gallowsW = 0
	}

	left := r.Sub(0, 0, r.W-gallowsW, r.H)
	t.dialogue = left
	inner := left.Card("Conductor", LineRounded, styleBorder)

	c := t.session.Conductor()
	style := sectionStyle(c.Section())

	textX := 0
	if r.W >= minPortraitW {
		inner.Block(1, 0, art.Conductor, styleDefault)
		textX = art.Width(art.Conductor) + 3
	}

	text := inner.Sub(textX, 0, inner.W-textX-1, inner.H)
	var lines []string
	for _, l := range c.Shown() {
		lines = append(lines, art.Wrap(l, text.W)...)
	}
	if c.Typing() {
		lines = appendCaret(lines, text.W)
	}
	// keep the newest lines when the section overflows the card
	if extra := len(lines) - text.H; extra > 0 {
		lines = lines[extra:]
	}
	text.Block(0, 0, lines, style)

	if !c.Typing() && t.session.Phase() != game.PhaseRound {
		text.Text(text.W-len("[Enter]"), text.H-1, "[Enter]", styleStatus)
	}

	if gallowsW == 0 {
		return
	}
	right := r.Sub(r.W-gallowsW, 0, gallowsW, r.H)
	gallows := right.Card("Gallows", LineRounded, styleBorder)
	parts, hangStyle := 0, styleDefault
	if st := t.session.Status(); st != nil {
		parts = st.Penalty
		if st.Hanged() {
			hangStyle = styleError
		}
	}
	gallows.Block(1, 0, art.Hangman(parts), hangStyle)
}

func appendCaret(lines []string, width int) []string {
	if len(lines) == 0 {
		return []string{"▌"}
	}
	last := lines[len(lines)-1]
	if len([]rune(last)) < width {
		lines[len(lines)-1] = last + "▌"
	}
	return lines
}

// drawWord draws one box per letter and records the boxes for mouse hits
func (t *TerminalHangman) drawWord(r Region) {
	st := t.session.Status()
	card := r.Sub(0, 0, r.W, wordCardH)

	title := fmt.Sprintf("Round %d", st.Round)
	word := st.Word
	showAll := t.session.Phase() != game.PhaseRound
	style := styleDefault
	if showAll {
		word = []rune(t.session.LastWord())
		if t.session.LastWon() {
			style, title = stylePositive, "Solved"
		} else {
			style, title = styleError, "The word was"
			if t.session.TimedOut() {
				title = "Time's up! The word was"
			}
		}
	}

	inner := card.Card(title, LineSingle, styleBorder)
	width := len(word) * letterCellW
	x0 := (inner.W - width) / 2
	if x0 < 0 {
		x0 = 0
	}

	for i, ch := range word {
		cell := inner.Sub(x0+i*letterCellW, 1, 3, 1)
		letterStyle := style
		glyph := ch
		if !showAll && !st.Revealed(i) {
			glyph, letterStyle = game.HiddenRune, styleHidden
		}
		if !showAll && i == st.Cursor {
			letterStyle = styleCursor
		}
		cell.Text(0, 0, "["+string(glyph)+"]", letterStyle)
		t.letters = append(t.letters, cell)
	}
	if showAll {
		t.letters = t.letters[:0]
	}
}

// drawMenu lists the difficulties with their main parameters
func (t *TerminalHangman) drawMenu(r Region) {
	diffs := settings.Difficulties()
	card := r.Sub(0, 0, r.W, len(diffs)+2)
	inner := card.Card("Choose difficulty", LineDouble, styleTitle)

	for i, d := range diffs {
		row := inner.Sub(1, i, inner.W-2, 1)
		label := fmt.Sprintf("%d. %s", i+1, d)
		if s, err := t.session.Table().Get(d); err == nil {
			label = fmt.Sprintf("%d. %-10s letters %-6s %s per round", i+1, d, s.WordLength, art.Clock(s.MaxRoundTime))
		}
		style := styleDefault
		if i == t.menu {
			style = styleSelected
			label = "> " + label
		} else {
			label = "  " + label
		}
		row.Text(0, 0, label, style)
		t.items = append(t.items, row)
	}
}

// drawStatus writes the status bar and the help or notice line
func (t *TerminalHangman) drawStatus(r Region) {
	var parts []string
	if st := t.session.Status(); st != nil && st.Round > 0 {
		s := st.Setting()
		parts = append(parts,
			fmt.Sprintf("Round %d/%d", st.Round, s.TotalRounds),
			s.Name,
			"Time "+art.Clock(t.session.Remaining()),
			fmt.Sprintf("Hints %d", st.HintsLeft()),
			fmt.Sprintf("Score %d", st.Score),
		)
	}
	if t.session.Finished() {
		parts = append(parts, fmt.Sprintf("Final %d%%", t.session.FinalPercent()))
	}
	if t.session.Paused() {
		parts = append(parts, "PAUSED")
	}
	r.Text(0, 0, strings.Join(parts, " │ "), styleStatus)

	if t.notice != "" {
		r.Text(0, 1, t.notice, styleWarn)
		return
	}
	r.Text(0, 1, t.help(), styleStatus)
}

func (t *TerminalHangman) help() string {
	switch t.session.Phase() {
	case game.PhaseChooseDifficulty:
		return "↑/↓ select  Enter/1-5 choose  F2 sound  Esc quit"
	case game.PhaseRound:
		return "←/→ move  letters guess  ? hint  Space pause  F2 sound  Esc quit"
	case game.PhaseGameOver:
		return "Enter new game  Esc quit"
	default:
		return "Enter continue  Esc quit"
	}
}
