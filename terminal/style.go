package terminal

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/cmd-hangman/conductor"
)

// Theme colors
var (
	styleDefault  = tcell.StyleDefault
	styleTitle    = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleStart    = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleError    = tcell.StyleDefault.Foreground(tcell.ColorRed)
	stylePositive = tcell.StyleDefault.Foreground(tcell.ColorBlue).Bold(true)
	styleBorder   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleHidden   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleCursor   = tcell.StyleDefault.Reverse(true).Bold(true)
	styleSelected = tcell.StyleDefault.Foreground(tcell.ColorYellow).Reverse(true)
	styleStatus   = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleWarn     = tcell.StyleDefault.Foreground(tcell.ColorOrange).Bold(true)
)

// sectionStyle colors the conductor's dialogue by what it announces
func sectionStyle(s conductor.Section) tcell.Style {
	switch s {
	case conductor.StartGame, conductor.StartRound:
		return styleStart
	case conductor.OnError, conductor.EndWrongRound:
		return styleError
	case conductor.EndPositiveRound:
		return stylePositive
	case conductor.EndGame:
		return styleTitle
	default:
		return styleDefault
	}
}
