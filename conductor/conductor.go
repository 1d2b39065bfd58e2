package conductor

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lixenwraith/cmd-hangman/settings"
)

// Conductor walks the lines of one section at a time and types them out
type Conductor struct {
	msgs    *Messages
	vars    map[string]string
	section Section
	line    int
	writer  Typewriter
}

// New creates a conductor positioned at the start of the script
func New(msgs *Messages) *Conductor {
	c := &Conductor{
		msgs: msgs,
		vars: make(map[string]string),
	}
	c.Show(StartGame)
	return c
}

// Messages returns the underlying script
func (c *Conductor) Messages() *Messages {
	return c.msgs
}

// Show jumps to the first line of s and restarts the typewriter
func (c *Conductor) Show(s Section) {
	c.section = s
	c.line = 0
	c.writer.Reset(c.text())
}

// Section returns the section being shown
func (c *Conductor) Section() Section {
	return c.section
}

// Line returns the index of the current line within the section
func (c *Conductor) Line() int {
	return c.line
}

// Text returns the full current line with placeholders filled in
func (c *Conductor) Text() string {
	return c.text()
}

// Visible returns the part of the current line typed so far
func (c *Conductor) Visible() string {
	return c.writer.Visible()
}

// Shown returns the fully typed lines of the section up to the current one,
// followed by the partially typed current line
func (c *Conductor) Shown() []string {
	lines := c.msgs.Lines(c.section)
	if len(lines) == 0 {
		return nil
	}

	out := make([]string, 0, c.line+1)
	for i := 0; i < c.line; i++ {
		out = append(out, c.fill(lines[i]))
	}
	return append(out, c.writer.Visible())
}

// Tick types one more letter and reports whether it did
func (c *Conductor) Tick() bool {
	return c.writer.Tick()
}

// LastTyped returns the letter typed by the latest Tick
func (c *Conductor) LastTyped() rune {
	return c.writer.Last()
}

// Typing reports whether the current line is still being typed
func (c *Conductor) Typing() bool {
	return !c.writer.Finished()
}

// Step finishes the line being typed or moves to the next line of the section.
// It returns false when the section has no further line.
func (c *Conductor) Step() bool {
	if !c.writer.Finished() {
		c.writer.Skip()
		return true
	}
	if c.line+1 >= c.msgs.Len(c.section) {
		return false
	}
	c.line++
	c.writer.Reset(c.text())
	return true
}

// Finished reports whether the last line of the section is fully typed
func (c *Conductor) Finished() bool {
	return c.writer.Finished() && c.line+1 >= c.msgs.Len(c.section)
}

// Set assigns a placeholder value, written in the script as {key}
func (c *Conductor) Set(key, value string) {
	c.vars[key] = value
	c.writer.Retext(c.text())
}

// SetAll assigns several placeholder values
func (c *Conductor) SetAll(vars map[string]string) {
	for k, v := range vars {
		c.vars[k] = v
	}
	c.writer.Retext(c.text())
}

func (c *Conductor) text() string {
	lines := c.msgs.sections[c.section]
	if c.line >= len(lines) {
		return ""
	}
	return c.fill(lines[c.line])
}

func (c *Conductor) fill(line string) string {
	if len(c.vars) == 0 || !strings.Contains(line, "{") {
		return line
	}

	keys := make([]string, 0, len(c.vars))
	for k := range c.vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, "{"+k+"}", c.vars[k])
	}
	return strings.NewReplacer(pairs...).Replace(line)
}

// Briefing returns the placeholder values describing a difficulty
func Briefing(s settings.GameSetting) map[string]string {
	hintPenalty := "nothing"
	if s.HintPenalty > 0 {
		hintPenalty = "some points"
	}

	return map[string]string{
		"intro":          s.Intro,
		"diff":           s.Name,
		"time_per_round": formatDuration(s.MaxRoundTime.Seconds()),
		"nround":         fmt.Sprintf("%d", s.TotalRounds),
		"max_score":      fmt.Sprintf("%d", s.MaxRoundScore),
		"length":         s.WordLength.String(),
		"penalty":        fmt.Sprintf("%d", s.Penalty),
		"hints":          s.Hints.String(),
		"hint_penalty":   hintPenalty,
	}
}

func formatDuration(seconds float64) string {
	total := int(seconds)
	m, sec := total/60, total%60
	switch {
	case m == 0:
		return fmt.Sprintf("%d seconds", sec)
	case sec == 0 && m == 1:
		return "1 minute"
	case sec == 0:
		return fmt.Sprintf("%d minutes", m)
	default:
		return fmt.Sprintf("%dm%02ds", m, sec)
	}
}
