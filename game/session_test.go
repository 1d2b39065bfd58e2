package game

import (
	"errors"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/lixenwraith/cmd-hangman/clock"
	"github.com/lixenwraith/cmd-hangman/conductor"
	"github.com/lixenwraith/cmd-hangman/settings"
	"github.com/lixenwraith/cmd-hangman/word"
)

type recordingSounds struct {
	typed, correct, wrong, won, lost int
}

func (r *recordingSounds) PlayType()      { r.typed++ }
func (r *recordingSounds) PlayCorrect()   { r.correct++ }
func (r *recordingSounds) PlayError()     { r.wrong++ }
func (r *recordingSounds) PlayRoundWon()  { r.won++ }
func (r *recordingSounds) PlayRoundLost() { r.lost++ }

const testCorpus = "pasta\ngatto\nfiore\ntavolo\ncucina\nbiblioteca\n"

type sessionFixture struct {
	session *Session
	clock   *clock.MockTimeProvider
	sounds  *recordingSounds
}

func newFixture(t *testing.T, table settings.GameSettings) *sessionFixture {
	t.Helper()

	oracle, err := word.Load(strings.NewReader(testCorpus), word.WithRand(rand.New(rand.NewSource(1))))
	if err != nil {
		t.Fatalf("Failed to load corpus: %v", err)
	}
	msgs, err := conductor.LoadDefault()
	if err != nil {
		t.Fatalf("Failed to load messages: %v", err)
	}

	f := &sessionFixture{
		clock:  clock.NewMockTimeProvider(time.Unix(0, 0)),
		sounds: &recordingSounds{},
	}
	f.session = NewSession(oracle, table, conductor.New(msgs),
		WithClock(f.clock),
		WithSounds(f.sounds),
		WithSessionID("test"),
	)
	return f
}

// advance presses "next" until the session reaches want
func advance(t *testing.T, s *Session, want Phase) {
	t.Helper()
	for i := 0; i < 200 && s.Phase() != want; i++ {
		if err := s.Continue(); err != nil {
			t.Fatalf("Continue failed in %v: %v", s.Phase(), err)
		}
	}
	if s.Phase() != want {
		t.Fatalf("Expected phase %v, stuck in %v", want, s.Phase())
	}
}

// startEasyRound drives a fresh session into its first round
func startEasyRound(t *testing.T, f *sessionFixture) {
	t.Helper()
	advance(t, f.session, PhaseChooseDifficulty)
	if err := f.session.ChooseDifficulty(settings.Easy); err != nil {
		t.Fatalf("ChooseDifficulty failed: %v", err)
	}
	advance(t, f.session, PhaseRound)
}

// solve guesses every hidden letter of the current word
func solve(t *testing.T, s *Session) {
	t.Helper()
	st := s.Status()
	for i := range st.Word {
		if st.Revealed(i) {
			continue
		}
		s.SetCursor(i)
		if _, err := s.Guess(st.Word[i]); err != nil {
			t.Fatalf("Guess failed: %v", err)
		}
	}
}

func TestSessionIntroFlow(t *testing.T) {
	f := newFixture(t, settings.Default())
	s := f.session

	if s.Phase() != PhaseIntro || s.Conductor().Section() != conductor.StartGame {
		t.Fatalf("Expected intro with START GAME, got %v %v", s.Phase(), s.Conductor().Section())
	}
	if s.ID() != "test" {
		t.Errorf("Expected session id test, got %q", s.ID())
	}

	advance(t, s, PhaseChooseDifficulty)
	if s.Conductor().Section() != conductor.AskDifficulty {
		t.Errorf("Expected ASK DIFFICULTY, got %v", s.Conductor().Section())
	}

	if err := s.ChooseDifficulty(settings.Easy); err != nil {
		t.Fatalf("ChooseDifficulty failed: %v", err)
	}
	if s.Phase() != PhaseBriefing || s.Conductor().Section() != conductor.InfoDifficulty {
		t.Fatalf("Expected briefing, got %v %v", s.Phase(), s.Conductor().Section())
	}
	if got := s.Conductor().Text(); !strings.Contains(got, "You stupid newbie") || !strings.Contains(got, "Easy") {
		t.Errorf("Expected briefing placeholders filled, got %q", got)
	}

	advance(t, s, PhaseRound)
	if s.Conductor().Section() != conductor.StartRound {
		t.Errorf("Expected START ROUND, got %v", s.Conductor().Section())
	}
	st := s.Status()
	if st.Round != 1 || len(st.Word) < 5 || len(st.Word) > 7 {
		t.Errorf("Expected first round with an easy word, got round %d word %q", st.Round, string(st.Word))
	}
	if s.Remaining() != 60*time.Second {
		t.Errorf("Expected full round time, got %v", s.Remaining())
	}
}

func TestSessionRejectsActionsOutOfPhase(t *testing.T) {
	f := newFixture(t, settings.Default())
	s := f.session

	if _, err := s.Guess('a'); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("Expected ErrWrongPhase for guess in intro, got %v", err)
	}
	if _, err := s.Hint(); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("Expected ErrWrongPhase for hint in intro, got %v", err)
	}
	if err := s.StartRound(); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("Expected ErrWrongPhase for round before difficulty, got %v", err)
	}

	startEasyRound(t, f)
	if err := s.ChooseDifficulty(settings.Hard); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("Expected ErrWrongPhase for difficulty mid-round, got %v", err)
	}
}

func TestSessionWrongGuess(t *testing.T) {
	f := newFixture(t, settings.Default())
	s := f.session
	startEasyRound(t, f)

	res, err := s.Guess('z')
	if err != nil || res != GuessWrong {
		t.Fatalf("Expected wrong guess, got %v %v", res, err)
	}
	if f.sounds.wrong != 1 {
		t.Errorf("Expected error sound, got %d", f.sounds.wrong)
	}
	if s.Conductor().Section() != conductor.OnError {
		t.Errorf("Expected ON ERROR, got %v", s.Conductor().Section())
	}
	if s.Status().Penalty != 1 {
		t.Errorf("Expected one part drawn, got %d", s.Status().Penalty)
	}
}

func TestSessionWinRound(t *testing.T) {
	f := newFixture(t, settings.Default())
	s := f.session
	startEasyRound(t, f)

	s.Guess('z')
	solve(t, s)

	if s.Phase() != PhaseRoundOver || !s.LastWon() {
		t.Fatalf("Expected won round, got %v won=%v", s.Phase(), s.LastWon())
	}
	if s.Conductor().Section() != conductor.EndPositiveRound {
		t.Errorf("Expected END POSITIVE ROUND, got %v", s.Conductor().Section())
	}
	if s.Status().Score != 87 {
		t.Errorf("Expected 100*7/8 = 87 after one wrong guess, got %d", s.Status().Score)
	}
	if f.sounds.won != 1 || s.RoundsWon() != 1 {
		t.Errorf("Expected one won round, got sound %d count %d", f.sounds.won, s.RoundsWon())
	}
	if s.LastWord() == "" {
		t.Errorf("Expected last word recorded")
	}

	advance(t, s, PhaseRound)
	if s.Status().Round != 2 {
		t.Errorf("Expected round 2, got %d", s.Status().Round)
	}
}

func TestSessionHangedRound(t *testing.T) {
	f := newFixture(t, settings.Default())
	s := f.session
	startEasyRound(t, f)

	for i := 0; i < settings.TotalParts; i++ {
		s.Guess('z')
	}
	if s.Phase() != PhaseRoundOver || s.LastWon() || s.TimedOut() {
		t.Fatalf("Expected hanged round, got %v won=%v timeout=%v", s.Phase(), s.LastWon(), s.TimedOut())
	}
	if s.Conductor().Section() != conductor.EndWrongRound {
		t.Errorf("Expected END WRONG ROUND, got %v", s.Conductor().Section())
	}
	if f.sounds.lost != 1 {
		t.Errorf("Expected round lost sound, got %d", f.sounds.lost)
	}
	if s.Status().Score != 0 {
		t.Errorf("Expected no score for a lost round, got %d", s.Status().Score)
	}
}

func TestSessionTimeout(t *testing.T) {
	f := newFixture(t, settings.Default())
	s := f.session
	startEasyRound(t, f)

	f.clock.Advance(59 * time.Second)
	s.Tick()
	if s.Phase() != PhaseRound {
		t.Fatalf("Expected round still running, got %v", s.Phase())
	}

	f.clock.Advance(2 * time.Second)
	s.Tick()
	if s.Phase() != PhaseRoundOver || !s.TimedOut() {
		t.Fatalf("Expected timeout, got %v timeout=%v", s.Phase(), s.TimedOut())
	}
}

func TestSessionPauseStopsTimer(t *testing.T) {
	f := newFixture(t, settings.Default())
	s := f.session
	startEasyRound(t, f)

	f.clock.Advance(30 * time.Second)
	if !s.TogglePause() {
		t.Fatalf("Expected paused")
	}
	f.clock.Advance(10 * time.Minute)
	s.Tick()
	if s.Phase() != PhaseRound {
		t.Fatalf("Expected paused round to survive, got %v", s.Phase())
	}
	if _, err := s.Guess('a'); !errors.Is(err, ErrPaused) {
		t.Errorf("Expected ErrPaused, got %v", err)
	}

	s.TogglePause()
	if got := s.Remaining(); got != 30*time.Second {
		t.Errorf("Expected 30s left after resume, got %v", got)
	}
}

func TestSessionHintEndsRoundWhenSolved(t *testing.T) {
	table, err := settings.Load(strings.NewReader("easy:\n  hints: [10, 10]\n"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	f := newFixture(t, table)
	s := f.session
	startEasyRound(t, f)

	for s.Phase() == PhaseRound {
		if _, err := s.Hint(); err != nil {
			t.Fatalf("Hint failed: %v", err)
		}
	}
	if !s.LastWon() {
		t.Errorf("Expected word revealed by hints to count as won")
	}
}

func TestSessionGameOver(t *testing.T) {
	table, err := settings.Load(strings.NewReader("easy:\n  totalRounds: 2\n"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	f := newFixture(t, table)
	s := f.session
	startEasyRound(t, f)

	solve(t, s)
	advance(t, s, PhaseRound)
	for i := 0; i < settings.TotalParts; i++ {
		s.Guess('z')
	}
	advance(t, s, PhaseGameOver)

	if !s.Finished() {
		t.Errorf("Expected finished game")
	}
	if s.FinalPercent() != 50 {
		t.Errorf("Expected 100 of 200 = 50%%, got %d", s.FinalPercent())
	}
	if s.Conductor().Section() != conductor.EndGame {
		t.Errorf("Expected END GAME, got %v", s.Conductor().Section())
	}

	c := s.Conductor()
	for c.Step() {
	}
	if got := c.Text(); got != "Score: 50%" {
		t.Errorf("Expected filled score line, got %q", got)
	}

	// a new game can be chosen once the old one is over
	if err := s.ChooseDifficulty(settings.Medium); err != nil {
		t.Fatalf("ChooseDifficulty after game over failed: %v", err)
	}
	if s.Status().Round != 0 || s.Status().Score != 0 {
		t.Errorf("Expected fresh status, got round %d score %d", s.Status().Round, s.Status().Score)
	}
}

func TestSessionExhaustedCorpusEndsGame(t *testing.T) {
	f := newFixture(t, settings.Default())
	s := f.session
	startEasyRound(t, f) // easy band 5-7 holds pasta gatto fiore tavolo cucina

	var err error
	for i := 0; i < 10 && err == nil; i++ {
		solve(t, s)
		for s.Phase() == PhaseRoundOver && err == nil {
			err = s.Continue()
		}
	}
	if !errors.Is(err, word.ErrExhausted) {
		t.Fatalf("Expected ErrExhausted, got %v", err)
	}
	if !s.Finished() {
		t.Errorf("Expected game over when the corpus runs dry, got %v", s.Phase())
	}
	if s.RoundsWon() != 5 {
		t.Errorf("Expected 5 rounds won, got %d", s.RoundsWon())
	}
}

func TestSessionTypesConductorLines(t *testing.T) {
	f := newFixture(t, settings.Default())
	s := f.session

	for s.Conductor().Typing() {
		s.Tick()
	}
	want := s.Conductor().Text()
	if got := s.Conductor().Visible(); got != want {
		t.Errorf("Expected full line %q, got %q", want, got)
	}
	spaces := strings.Count(want, " ")
	if f.sounds.typed != len([]rune(want))-spaces {
		t.Errorf("Expected one click per non-space letter, got %d for %q", f.sounds.typed, want)
	}
}

func TestPhaseString(t *testing.T) {
	if PhaseRoundOver.String() != "round-over" {
		t.Errorf("Unexpected name %q", PhaseRoundOver.String())
	}
	if Phase(99).String() != "Phase(99)" {
		t.Errorf("Unexpected name %q", Phase(99).String())
	}
}

func TestSessionRandomPlaysEveryRound(t *testing.T) {
	msgs, err := conductor.LoadDefault()
	if err != nil {
		t.Fatalf("Failed to load messages: %v", err)
	}

	for seed := int64(1); seed <= 100; seed++ {
		oracle, err := word.LoadDefault(word.WithRand(rand.New(rand.NewSource(seed))))
		if err != nil {
			t.Fatalf("Failed to load default corpus: %v", err)
		}
		s := NewSession(oracle, settings.Default(), conductor.New(msgs),
			WithClock(clock.NewMockTimeProvider(time.Unix(0, 0))),
			WithSessionID("random"),
		)
		advance(t, s, PhaseChooseDifficulty)
		if err := s.ChooseDifficulty(settings.Random); err != nil {
			t.Fatalf("ChooseDifficulty failed: %v", err)
		}

		total := s.Status().Setting().TotalRounds
		for !s.Finished() {
			if err := s.Continue(); err != nil {
				t.Fatalf("seed %d: round %d/%d: %v", seed, s.Status().Round+1, total, err)
			}
			if s.Phase() == PhaseRound {
				solve(t, s)
			}
		}
		if s.Status().Round != total {
			t.Fatalf("seed %d: game over after %d/%d rounds", seed, s.Status().Round, total)
		}
	}
}

func TestSessionRandomFallsBackToAnyWord(t *testing.T) {
	// one word per length: most drawn ranges are used up after a few rounds
	oracle, err := word.Load(strings.NewReader("sale\npasta\ncucina\ncammino\nbiblioteca\n"), word.WithRand(rand.New(rand.NewSource(3))))
	if err != nil {
		t.Fatalf("Failed to load corpus: %v", err)
	}
	msgs, err := conductor.LoadDefault()
	if err != nil {
		t.Fatalf("Failed to load messages: %v", err)
	}
	table, err := settings.Load(strings.NewReader("random:\n  totalRounds: 5\n"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	s := NewSession(oracle, table, conductor.New(msgs), WithClock(clock.NewMockTimeProvider(time.Unix(0, 0))))
	advance(t, s, PhaseChooseDifficulty)
	if err := s.ChooseDifficulty(settings.Random); err != nil {
		t.Fatalf("ChooseDifficulty failed: %v", err)
	}

	for i := 0; i < 5; i++ {
		advance(t, s, PhaseRound)
		solve(t, s)
	}
	if oracle.Used() != 5 || s.RoundsWon() != 5 {
		t.Fatalf("Expected all five words played, used %d won %d", oracle.Used(), s.RoundsWon())
	}

	// the corpus is spent now, so a sixth round has nothing to draw
	if err := s.StartRound(); !errors.Is(err, word.ErrExhausted) {
		t.Errorf("Expected ErrExhausted once every word is used, got %v", err)
	}
}

func TestSessionHintLowersVeryHardScore(t *testing.T) {
	oracle, err := word.Load(strings.NewReader("assolutamente\n"))
	if err != nil {
		t.Fatalf("Failed to load corpus: %v", err)
	}
	msgs, err := conductor.LoadDefault()
	if err != nil {
		t.Fatalf("Failed to load messages: %v", err)
	}
	s := NewSession(oracle, settings.Default(), conductor.New(msgs), WithClock(clock.NewMockTimeProvider(time.Unix(0, 0))))
	advance(t, s, PhaseChooseDifficulty)
	if err := s.ChooseDifficulty(settings.VeryHard); err != nil {
		t.Fatalf("ChooseDifficulty failed: %v", err)
	}
	advance(t, s, PhaseRound)

	if _, err := s.Hint(); err != nil {
		t.Fatalf("Hint failed: %v", err)
	}
	solve(t, s)

	setting := s.Status().Setting()
	want := setting.MaxRoundScore - setting.HintDeduction(len("assolutamente"))
	if s.Status().Score != want {
		t.Errorf("Expected first-round score %d after a hint, got %d", want, s.Status().Score)
	}
}
