package conductor

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/lixenwraith/cmd-hangman/asset"
)

// BulletWidth is the prefix stripped from every message line ("- ")
const BulletWidth = 2

// ErrNoMessages is returned when a script has no section with lines
var ErrNoMessages = errors.New("conductor script has no messages")

// Section names a group of conductor lines, written in the script as "NAME:"
type Section string

const (
	StartGame        Section = "START GAME"
	AskDifficulty    Section = "ASK DIFFICULTY"
	InfoDifficulty   Section = "INFO DIFFICULTY"
	StartRound       Section = "START ROUND"
	OnError          Section = "ON ERROR"
	EndPositiveRound Section = "END POSITIVE ROUND"
	EndWrongRound    Section = "END WRONG ROUND"
	EndGame          Section = "END GAME"
)

// Script is the order sections are played in when the player just keeps advancing
var Script = []Section{
	StartGame,
	AskDifficulty,
	InfoDifficulty,
	StartRound,
	OnError,
	EndPositiveRound,
	EndWrongRound,
	EndGame,
}

// Messages is the static section -> lines mapping of a conductor script
type Messages struct {
	sections map[Section][]string
	order    []Section
}

// Parse reads a conductor script
func Parse(r io.Reader) (*Messages, error) {
	m := &Messages{sections: make(map[Section][]string)}

	var current Section
	inSection := false
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")

		if name, ok := header(line); ok {
			current = Section(name)
			inSection = true
			if _, seen := m.sections[current]; !seen {
				m.sections[current] = nil
				m.order = append(m.order, current)
			}
			continue
		}

		if !inSection || strings.TrimSpace(line) == "" {
			continue
		}
		m.sections[current] = append(m.sections[current], stripBullet(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading conductor script: %w", err)
	}

	for _, lines := range m.sections {
		if len(lines) > 0 {
			return m, nil
		}
	}
	return nil, ErrNoMessages
}

// LoadFile reads the script at path
func LoadFile(path string) (*Messages, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open conductor script %s: %w", path, err)
	}
	defer f.Close()

	m, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// LoadDefault reads the embedded script
func LoadDefault() (*Messages, error) {
	return Parse(strings.NewReader(asset.Messages))
}

// header recognizes an all upper-case line ending in ':'
func header(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasSuffix(trimmed, ":") {
		return "", false
	}

	hasUpper := false
	for _, r := range trimmed {
		if unicode.IsLower(r) {
			return "", false
		}
		if unicode.IsUpper(r) {
			hasUpper = true
		}
	}
	if !hasUpper {
		return "", false
	}
	return strings.TrimSpace(strings.TrimSuffix(trimmed, ":")), true
}

func stripBullet(line string) string {
	runes := []rune(line)
	if len(runes) <= BulletWidth {
		return ""
	}
	return strings.TrimRight(string(runes[BulletWidth:]), " \t")
}

// Lines returns a copy of the lines of s
func (m *Messages) Lines(s Section) []string {
	lines := m.sections[s]
	out := make([]string, len(lines))
	copy(out, lines)
	return out
}

// Len returns the number of lines in s
func (m *Messages) Len(s Section) int {
	return len(m.sections[s])
}

// Sections returns the section names in the order they appear in the script file
func (m *Messages) Sections() []Section {
	out := make([]Section, len(m.order))
	copy(out, m.order)
	return out
}
