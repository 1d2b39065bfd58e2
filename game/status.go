package game

import (
	"errors"
	"strings"
	"unicode"

	"github.com/lixenwraith/cmd-hangman/settings"
)

// HiddenRune stands for an unrevealed letter in WordState
const HiddenRune = '_'

// Sentinel errors
var (
	ErrNoRound          = errors.New("no round in progress")
	ErrPositionRevealed = errors.New("letter already revealed")
	ErrNoHintsLeft      = errors.New("no hints left for this word")
	ErrSolved           = errors.New("word already solved")
)

// GuessResult tells the caller what a guess did
type GuessResult int

const (
	GuessCorrect GuessResult = iota
	GuessWrong
)

// Status is the mutable per-round record of a game
type Status struct {
	setting settings.GameSetting

	Round        int
	Word         []rune
	Mask         []bool
	GuessedCount int
	WrongCount   int
	UsedHints    int
	HintCap      int
	Deducted     int // hint penalty charged against this round's award
	Score        int
	Penalty      int // body parts drawn
	Cursor       int
}

// NewStatus creates a status for a game played with setting
func NewStatus(setting settings.GameSetting) *Status {
	return &Status{setting: setting}
}

// Setting returns the parameters the status applies
func (s *Status) Setting() settings.GameSetting {
	return s.setting
}

// NextRound starts the following round on word
func (s *Status) NextRound(word string) {
	s.Round++
	s.Word = []rune(word)
	s.Mask = make([]bool, len(s.Word))
	s.GuessedCount = 0
	s.WrongCount = 0
	s.UsedHints = 0
	s.Deducted = 0
	s.Penalty = 0
	s.HintCap = s.setting.HintCap(len(s.Word))

	for _, i := range s.setting.Reveal.Positions(len(s.Word)) {
		s.Mask[i] = true
	}

	s.Cursor = s.firstHidden()
}

// Guess compares r with the secret letter under the cursor
func (s *Status) Guess(r rune) (GuessResult, error) {
	if len(s.Word) == 0 {
		return GuessWrong, ErrNoRound
	}
	if s.Solved() {
		return GuessWrong, ErrSolved
	}
	if s.Mask[s.Cursor] {
		return GuessWrong, ErrPositionRevealed
	}

	if sameLetter(r, s.Word[s.Cursor]) {
		s.Mask[s.Cursor] = true
		s.GuessedCount++
		s.Cursor = s.nextHidden(s.Cursor)
		return GuessCorrect, nil
	}

	s.WrongCount++
	s.Penalty = s.setting.PartsForWrong(s.WrongCount)
	return GuessWrong, nil
}

// Hint reveals the letter under the cursor, or the first hidden one,
// and returns its index. The round's award drops only when the hint penalty is set.
func (s *Status) Hint() (int, error) {
	if len(s.Word) == 0 {
		return -1, ErrNoRound
	}
	if s.Solved() {
		return -1, ErrSolved
	}
	if s.UsedHints >= s.HintCap {
		return -1, ErrNoHintsLeft
	}

	i := s.Cursor
	if s.Mask[i] {
		i = s.firstHidden()
	}
	s.Mask[i] = true
	s.UsedHints++

	s.Deducted += s.setting.HintDeduction(len(s.Word))

	s.Cursor = s.nextHidden(i)
	return i, nil
}

// HintsLeft returns how many hints the current word still allows
func (s *Status) HintsLeft() int {
	return s.HintCap - s.UsedHints
}

// MoveCursor shifts the cursor by delta letters, clamped to the word
func (s *Status) MoveCursor(delta int) {
	s.SetCursor(s.Cursor + delta)
}

// SetCursor places the cursor on letter i, clamped to the word
func (s *Status) SetCursor(i int) {
	if len(s.Word) == 0 {
		s.Cursor = 0
		return
	}
	if i < 0 {
		i = 0
	}
	if i >= len(s.Word) {
		i = len(s.Word) - 1
	}
	s.Cursor = i
}

// Revealed reports whether letter i is shown
func (s *Status) Revealed(i int) bool {
	return i >= 0 && i < len(s.Mask) && s.Mask[i]
}

// RevealedCount returns how many letters are shown
func (s *Status) RevealedCount() int {
	n := 0
	for _, shown := range s.Mask {
		if shown {
			n++
		}
	}
	return n
}

// Solved reports whether every letter is shown
func (s *Status) Solved() bool {
	return len(s.Word) > 0 && s.RevealedCount() == len(s.Word)
}

// Hanged reports whether the whole body has been drawn
func (s *Status) Hanged() bool {
	return s.Penalty >= settings.TotalParts
}

// WordState renders the word with hidden letters as HiddenRune
func (s *Status) WordState() string {
	var b strings.Builder
	for i, r := range s.Word {
		if s.Mask[i] {
			b.WriteRune(r)
		} else {
			b.WriteRune(HiddenRune)
		}
	}
	return b.String()
}

// RoundAward is the score a solved round earns, reduced by the body parts drawn
// and the hints charged, never below zero
func (s *Status) RoundAward() int {
	award := s.setting.MaxRoundScore*(settings.TotalParts-s.Penalty)/settings.TotalParts - s.Deducted
	if award < 0 {
		return 0
	}
	return award
}

// firstHidden returns the lowest hidden index, 0 when none is hidden
func (s *Status) firstHidden() int {
	for i, shown := range s.Mask {
		if !shown {
			return i
		}
	}
	return 0
}

// nextHidden returns the first hidden index after from, wrapping around;
// from itself when nothing else is hidden
func (s *Status) nextHidden(from int) int {
	n := len(s.Mask)
	for step := 1; step <= n; step++ {
		i := (from + step) % n
		if !s.Mask[i] {
			return i
		}
	}
	return from
}

func sameLetter(a, b rune) bool {
	return a == b || unicode.ToLower(a) == unicode.ToLower(b)
}
