package game

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/cmd-hangman/clock"
	"github.com/lixenwraith/cmd-hangman/conductor"
	"github.com/lixenwraith/cmd-hangman/settings"
	"github.com/lixenwraith/cmd-hangman/word"
)

// TickInterval is how often frontends call Tick; one conductor letter is typed per tick
const TickInterval = 40 * time.Millisecond

// randomRangeAttempts bounds the length ranges a Random round draws before taking any word
const randomRangeAttempts = 8

// Sentinel errors
var (
	ErrWrongPhase = errors.New("action not allowed in the current phase")
	ErrPaused     = errors.New("game is paused")
)

// Phase is the stage of a session
type Phase int

const (
	PhaseIntro Phase = iota
	PhaseChooseDifficulty
	PhaseBriefing
	PhaseRound
	PhaseRoundOver
	PhaseGameOver
)

var phaseNames = [...]string{"intro", "choose-difficulty", "briefing", "round", "round-over", "game-over"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("Phase(%d)", int(p))
	}
	return phaseNames[p]
}

// Sounds receives the game's audio cues
type Sounds interface {
	PlayType()
	PlayCorrect()
	PlayError()
	PlayRoundWon()
	PlayRoundLost()
}

type noSounds struct{}

func (noSounds) PlayType()      {}
func (noSounds) PlayCorrect()   {}
func (noSounds) PlayError()     {}
func (noSounds) PlayRoundWon()  {}
func (noSounds) PlayRoundLost() {}

// Session orchestrates one player's games: difficulty choice, rounds and the conductor
type Session struct {
	oracle    *word.Oracle
	table     settings.GameSettings
	conductor *conductor.Conductor
	clock     *clock.PausableClock
	timer     *clock.RoundTimer
	sounds    Sounds
	log       zerolog.Logger
	id        string

	phase      Phase
	difficulty settings.Difficulty
	status     *Status
	lastWon    bool
	timedOut   bool
	lastWord   string
	roundsWon  int
}

// Option configures a Session
type Option func(*Session)

// WithClock drives game time from base instead of the system clock
func WithClock(base clock.TimeProvider) Option {
	return func(s *Session) { s.clock = clock.NewPausableClock(base) }
}

// WithSounds routes audio cues to sounds
func WithSounds(sounds Sounds) Option {
	return func(s *Session) {
		if sounds != nil {
			s.sounds = sounds
		}
	}
}

// WithLogger attaches a logger
func WithLogger(l zerolog.Logger) Option {
	return func(s *Session) { s.log = l }
}

// WithSessionID overrides the generated session id
func WithSessionID(id string) Option {
	return func(s *Session) { s.id = id }
}

// NewSession creates a session showing the opening dialogue
func NewSession(oracle *word.Oracle, table settings.GameSettings, c *conductor.Conductor, opts ...Option) *Session {
	s := &Session{
		oracle:    oracle,
		table:     table,
		conductor: c,
		sounds:    noSounds{},
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.clock == nil {
		s.clock = clock.NewPausableClock(nil)
	}
	if s.id == "" {
		s.id = uuid.NewString()
	}
	s.timer = clock.NewRoundTimer(s.clock)
	s.log = s.log.With().Str("session", s.id).Str("component", "session").Logger()

	s.phase = PhaseIntro
	s.conductor.Show(conductor.StartGame)
	return s
}

// ID returns the session id carried in log lines
func (s *Session) ID() string { return s.id }

// Phase returns the current stage
func (s *Session) Phase() Phase { return s.phase }

// Difficulty returns the chosen difficulty
func (s *Session) Difficulty() settings.Difficulty { return s.difficulty }

// Status returns the round record, nil before a difficulty is chosen
func (s *Session) Status() *Status { return s.status }

// Conductor returns the dialogue cursor
func (s *Session) Conductor() *conductor.Conductor { return s.conductor }

// LastWord returns the secret word of the round that just ended
func (s *Session) LastWord() string { return s.lastWord }

// LastWon reports whether the round that just ended was solved
func (s *Session) LastWon() bool { return s.lastWon }

// TimedOut reports whether the round that just ended ran out of time
func (s *Session) TimedOut() bool { return s.timedOut }

// RoundsWon returns the number of solved rounds in the current game
func (s *Session) RoundsWon() int { return s.roundsWon }

// Remaining returns the time left in the round
func (s *Session) Remaining() time.Duration { return s.timer.Remaining() }

// Paused reports whether game time is stopped
func (s *Session) Paused() bool { return s.clock.IsPaused() }

// Setting returns the parameters of the chosen difficulty
func (s *Session) Setting() (settings.GameSetting, bool) {
	if s.status == nil {
		return settings.GameSetting{}, false
	}
	return s.status.Setting(), true
}

// Table returns the difficulty table the session chooses from
func (s *Session) Table() settings.GameSettings { return s.table }

// Continue is the "next" action: it completes or advances the conductor's dialogue
// and moves past intro, briefing and round results once their lines are read
func (s *Session) Continue() error {
	if s.conductor.Step() {
		return nil
	}

	switch s.phase {
	case PhaseIntro:
		s.phase = PhaseChooseDifficulty
		s.conductor.Show(conductor.AskDifficulty)
	case PhaseBriefing:
		return s.StartRound()
	case PhaseRoundOver:
		if s.status.Round >= s.status.Setting().TotalRounds {
			s.gameOver()
			return nil
		}
		return s.StartRound()
	}
	return nil
}

// ChooseDifficulty starts a new game on d
func (s *Session) ChooseDifficulty(d settings.Difficulty) error {
	if s.phase != PhaseIntro && s.phase != PhaseChooseDifficulty && s.phase != PhaseGameOver {
		return fmt.Errorf("choose difficulty during %s: %w", s.phase, ErrWrongPhase)
	}

	setting, err := s.table.Get(d)
	if err != nil {
		return err
	}

	s.difficulty = d
	s.status = NewStatus(setting)
	s.roundsWon = 0
	s.lastWord = ""
	s.oracle.Reset()
	s.clock.Resume()

	s.conductor.SetAll(conductor.Briefing(setting))
	s.conductor.Show(conductor.InfoDifficulty)
	s.phase = PhaseBriefing

	s.log.Info().Str("difficulty", setting.Name).Int("rounds", setting.TotalRounds).Msg("game started")
	return nil
}

// Restart returns to the difficulty menu
func (s *Session) Restart() {
	s.timer.Stop()
	s.clock.Resume()
	s.phase = PhaseChooseDifficulty
	s.conductor.Show(conductor.AskDifficulty)
}

// StartRound draws a fresh word and arms the round timer
func (s *Session) StartRound() error {
	if s.status == nil {
		return fmt.Errorf("start round before choosing difficulty: %w", ErrWrongPhase)
	}

	setting := s.status.Setting()
	var (
		w   string
		err error
	)
	if s.difficulty == settings.Random {
		w, err = s.randomWord()
	} else {
		w, err = s.oracle.Next(setting.WordLength.Min, setting.WordLength.Max)
	}
	if err != nil {
		s.log.Warn().Err(err).Int("round", s.status.Round+1).Msg("no word for round, ending game")
		s.gameOver()
		return fmt.Errorf("round %d: %w", s.status.Round+1, err)
	}

	s.status.NextRound(w)
	s.timer.Start(setting.MaxRoundTime)
	s.timedOut = false
	s.phase = PhaseRound
	s.conductor.Show(conductor.StartRound)

	s.log.Info().
		Int("round", s.status.Round).
		Int("length", len(s.status.Word)).
		Int("hint_cap", s.status.HintCap).
		Msg("round started")
	s.log.Debug().Str("word", w).Msg("secret word")
	return nil
}

// randomWord draws a fresh length range until one still holds an unused word,
// then falls back to the whole corpus
func (s *Session) randomWord() (string, error) {
	for i := 0; i < randomRangeAttempts; i++ {
		min, max := s.oracle.RandomRange()
		w, err := s.oracle.Next(min, max)
		if err == nil {
			return w, nil
		}
		if !errors.Is(err, word.ErrExhausted) && !errors.Is(err, word.ErrNoCandidates) {
			return "", err
		}
		s.log.Debug().Err(err).Msg("random range redrawn")
	}
	return s.oracle.Next(0, 0)
}

// Guess tries r at the cursor position
func (s *Session) Guess(r rune) (GuessResult, error) {
	if err := s.playable("guess"); err != nil {
		return GuessWrong, err
	}

	result, err := s.status.Guess(r)
	if err != nil {
		return result, err
	}

	switch {
	case result == GuessCorrect && s.status.Solved():
		s.endRound(true)
	case result == GuessCorrect:
		s.sounds.PlayCorrect()
	case s.status.Hanged():
		s.endRound(false)
	default:
		s.sounds.PlayError()
		s.conductor.Show(conductor.OnError)
	}
	return result, nil
}

// Hint reveals one letter within the word's hint allowance
func (s *Session) Hint() (int, error) {
	if err := s.playable("hint"); err != nil {
		return -1, err
	}

	i, err := s.status.Hint()
	if err != nil {
		return i, err
	}
	s.log.Debug().Int("round", s.status.Round).Int("used", s.status.UsedHints).Int("deducted", s.status.Deducted).Msg("hint used")

	if s.status.Solved() {
		s.endRound(true)
	}
	return i, nil
}

// MoveCursor shifts the letter cursor during a round
func (s *Session) MoveCursor(delta int) {
	if s.phase == PhaseRound && !s.Paused() {
		s.status.MoveCursor(delta)
	}
}

// SetCursor places the letter cursor during a round
func (s *Session) SetCursor(i int) {
	if s.phase == PhaseRound && !s.Paused() {
		s.status.SetCursor(i)
	}
}

// Tick types one conductor letter and ends a round whose time ran out
func (s *Session) Tick() {
	if s.conductor.Tick() && s.conductor.LastTyped() != ' ' {
		s.sounds.PlayType()
	}

	if s.phase == PhaseRound && !s.Paused() && s.timer.Expired() {
		s.timedOut = true
		s.endRound(false)
	}
}

// Pause stops the round timer
func (s *Session) Pause() {
	s.clock.Pause()
}

// Resume restarts the round timer
func (s *Session) Resume() {
	s.clock.Resume()
}

// TogglePause flips the pause state and returns the new one
func (s *Session) TogglePause() bool {
	if s.Paused() {
		s.Resume()
		return false
	}
	s.Pause()
	return true
}

// Finished reports whether the game is over
func (s *Session) Finished() bool {
	return s.phase == PhaseGameOver
}

// FinalPercent is the score as a percentage of the maximum obtainable
func (s *Session) FinalPercent() int {
	if s.status == nil {
		return 0
	}
	setting := s.status.Setting()
	best := setting.TotalRounds * setting.MaxRoundScore
	if best == 0 {
		return 0
	}
	return s.status.Score * 100 / best
}

func (s *Session) playable(action string) error {
	if s.phase != PhaseRound {
		return fmt.Errorf("%s during %s: %w", action, s.phase, ErrWrongPhase)
	}
	if s.Paused() {
		return ErrPaused
	}
	return nil
}

func (s *Session) endRound(won bool) {
	s.timer.Stop()
	s.lastWon = won
	s.lastWord = string(s.status.Word)

	if won {
		award := s.status.RoundAward()
		s.status.Score += award
		s.roundsWon++
		s.sounds.PlayRoundWon()
		s.conductor.Show(conductor.EndPositiveRound)
		s.log.Info().Int("round", s.status.Round).Int("award", award).Int("score", s.status.Score).Msg("round won")
	} else {
		s.sounds.PlayRoundLost()
		s.conductor.Show(conductor.EndWrongRound)
		s.log.Info().Int("round", s.status.Round).Bool("timeout", s.timedOut).Str("word", s.lastWord).Msg("round lost")
	}
	s.phase = PhaseRoundOver
}

func (s *Session) gameOver() {
	s.timer.Stop()
	s.phase = PhaseGameOver
	s.conductor.Set("score", strconv.Itoa(s.FinalPercent()))
	s.conductor.Show(conductor.EndGame)
	s.log.Info().Int("score", s.status.Score).Int("percent", s.FinalPercent()).Int("won", s.roundsWon).Msg("game over")
}
