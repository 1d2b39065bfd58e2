package conductor

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/lixenwraith/cmd-hangman/settings"
)

const testScript = `ignored before any header
START GAME:
- Hello there!
- Second line

ON ERROR:
- Oh No! You miss that
UNKNOWN SECTION:
- kept under its own name
END GAME:
- Score: {score}%
`

func mustParse(t *testing.T, script string) *Messages {
	t.Helper()
	m, err := Parse(strings.NewReader(script))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return m
}

func TestParseSections(t *testing.T) {
	m := mustParse(t, testScript)

	if got := m.Lines(StartGame); !reflect.DeepEqual(got, []string{"Hello there!", "Second line"}) {
		t.Errorf("Unexpected START GAME lines: %q", got)
	}
	if got := m.Lines(OnError); !reflect.DeepEqual(got, []string{"Oh No! You miss that"}) {
		t.Errorf("Unexpected ON ERROR lines: %q", got)
	}
	if got := m.Len(Section("UNKNOWN SECTION")); got != 1 {
		t.Errorf("Expected unknown section to keep 1 line, got %d", got)
	}
	if got := m.Len(StartRound); got != 0 {
		t.Errorf("Expected missing section to be empty, got %d", got)
	}

	want := []Section{StartGame, OnError, Section("UNKNOWN SECTION"), EndGame}
	if got := m.Sections(); !reflect.DeepEqual(got, want) {
		t.Errorf("Sections() = %v, want %v", got, want)
	}
}

func TestParseLinesAreCopies(t *testing.T) {
	m := mustParse(t, testScript)
	lines := m.Lines(StartGame)
	lines[0] = "mutated"
	if m.Lines(StartGame)[0] != "Hello there!" {
		t.Error("Lines must return a copy")
	}
}

func TestParseHeaderRules(t *testing.T) {
	script := "START GAME:\n- Mixed Case Header:\n- NOT A HEADER\n1234:\n- last\n"
	m := mustParse(t, script)

	// lower-case letters, a missing colon or no letters at all keep the line as content
	want := []string{"Mixed Case Header:", "NOT A HEADER"}
	if got := m.Lines(StartGame)[:2]; !reflect.DeepEqual(got, want) {
		t.Errorf("Lines = %q, want %q", got, want)
	}
	if got := m.Len(StartGame); got != 4 {
		t.Errorf("Expected 4 lines, got %d", got)
	}
}

func TestParseEmpty(t *testing.T) {
	if _, err := Parse(strings.NewReader("START GAME:\n\n")); !errors.Is(err, ErrNoMessages) {
		t.Fatalf("Expected ErrNoMessages, got %v", err)
	}
}

func TestLoadDefaultHasEverySection(t *testing.T) {
	m, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault failed: %v", err)
	}
	for _, s := range Script {
		if m.Len(s) == 0 {
			t.Errorf("Default script has no lines for %s", s)
		}
	}
	if m.Len(StartGame) != 7 {
		t.Errorf("Expected 7 START GAME lines, got %d", m.Len(StartGame))
	}
}

func TestTypewriter(t *testing.T) {
	tw := NewTypewriter("però")

	if tw.Visible() != "" || tw.Finished() || tw.Last() != 0 {
		t.Fatal("Expected empty typewriter")
	}

	var typed []string
	for tw.Tick() {
		typed = append(typed, tw.Visible())
	}
	want := []string{"p", "pe", "per", "però"}
	if !reflect.DeepEqual(typed, want) {
		t.Errorf("Typed %q, want %q", typed, want)
	}
	if !tw.Finished() || tw.Last() != 'ò' {
		t.Errorf("Expected finished on 'ò', got last %q", tw.Last())
	}

	tw.Reset("ciao")
	tw.Tick()
	tw.Retext("ok")
	tw.Retext("c")
	if tw.Visible() != "c" {
		t.Errorf("Expected Retext to clamp, got %q", tw.Visible())
	}
	tw.Reset("ciao")
	tw.Skip()
	if tw.Visible() != "ciao" {
		t.Errorf("Expected Skip to type everything, got %q", tw.Visible())
	}
}

func TestConductorStep(t *testing.T) {
	c := New(mustParse(t, testScript))

	if c.Section() != StartGame || c.Line() != 0 {
		t.Fatalf("Expected START GAME line 0, got %s line %d", c.Section(), c.Line())
	}
	if !c.Typing() {
		t.Fatal("Expected a fresh line to be typing")
	}

	c.Tick()
	if c.Visible() != "H" || c.LastTyped() != 'H' {
		t.Errorf("Expected 'H' typed, got %q", c.Visible())
	}

	// first step completes the line, second moves on
	if !c.Step() || c.Visible() != "Hello there!" {
		t.Fatalf("Expected line completed, got %q", c.Visible())
	}
	if !c.Step() || c.Line() != 1 || c.Visible() != "" {
		t.Fatalf("Expected second line started, got line %d %q", c.Line(), c.Visible())
	}
	c.Step()
	if !c.Finished() {
		t.Fatal("Expected section finished")
	}
	if c.Step() {
		t.Fatal("Expected Step to report the end of the section")
	}
	if got := c.Shown(); !reflect.DeepEqual(got, []string{"Hello there!", "Second line"}) {
		t.Errorf("Shown() = %q", got)
	}

	c.Show(OnError)
	if c.Section() != OnError || c.Text() != "Oh No! You miss that" {
		t.Errorf("Unexpected section after Show: %s %q", c.Section(), c.Text())
	}
}

func TestConductorPlaceholders(t *testing.T) {
	c := New(mustParse(t, testScript))
	c.Show(EndGame)
	c.Set("score", "75")
	if c.Text() != "Score: 75%" {
		t.Errorf("Expected filled placeholder, got %q", c.Text())
	}

	// unknown placeholders stay as written
	c.SetAll(map[string]string{"other": "x"})
	if c.Text() != "Score: 75%" {
		t.Errorf("Unexpected text %q", c.Text())
	}
}

func TestBriefing(t *testing.T) {
	veryHard, err := settings.Default().Get(settings.VeryHard)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	vars := Briefing(veryHard)
	want := map[string]string{
		"intro":          "You stupid foolish",
		"diff":           "Very Hard",
		"time_per_round": "20 minutes",
		"nround":         "10",
		"max_score":      "100",
		"length":         "11-20",
		"penalty":        "2",
		"hints":          "1-3",
		"hint_penalty":   "some points",
	}
	if !reflect.DeepEqual(vars, want) {
		t.Errorf("Briefing = %v, want %v", vars, want)
	}

	m, _ := LoadDefault()
	c := New(m)
	c.SetAll(vars)
	c.Show(InfoDifficulty)
	if strings.Contains(c.Text(), "{") {
		t.Errorf("Unfilled placeholder in %q", c.Text())
	}
}

func TestFormatDuration(t *testing.T) {
	tests := map[time.Duration]string{
		45 * time.Second: "45 seconds",
		time.Minute:      "1 minute",
		5 * time.Minute:  "5 minutes",
		90 * time.Second: "1m30s",
	}
	for d, want := range tests {
		if got := formatDuration(d.Seconds()); got != want {
			t.Errorf("formatDuration(%v) = %q, want %q", d, got, want)
		}
	}
}
