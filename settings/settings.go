package settings

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/cmd-hangman/asset"
)

// TotalParts is the number of body parts drawn before the player is hanged
const TotalParts = 8

// Sentinel errors
var (
	ErrUnknownDifficulty = errors.New("unknown difficulty")
	ErrInvalidSetting    = errors.New("invalid game setting")
)

// Difficulty selects a row of the settings table
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
	VeryHard
	Random
	difficultyCount
)

var difficultyNames = [difficultyCount]string{"Easy", "Medium", "Hard", "Very Hard", "Random"}

// Difficulties lists every difficulty in menu order
func Difficulties() []Difficulty {
	return []Difficulty{Easy, Medium, Hard, VeryHard, Random}
}

func (d Difficulty) String() string {
	if d < 0 || d >= difficultyCount {
		return fmt.Sprintf("Difficulty(%d)", int(d))
	}
	return difficultyNames[d]
}

// Next returns the following difficulty, saturating at the hardest fixed one
func (d Difficulty) Next() Difficulty {
	if d >= VeryHard {
		return VeryHard
	}
	return d + 1
}

// ParseDifficulty accepts display names and yaml keys, ignoring case, spaces, '-' and '_'
func ParseDifficulty(s string) (Difficulty, error) {
	key := canonical(s)
	for d := Difficulty(0); d < difficultyCount; d++ {
		if key == canonical(difficultyNames[d]) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
}

func canonical(s string) string {
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.ToLower(strings.TrimSpace(s)))
}

// Range is an inclusive integer range; 0 on either end means unbounded
type Range struct {
	Min int
	Max int
}

// UnmarshalYAML reads a range written as a two element sequence
func (r *Range) UnmarshalYAML(node *yaml.Node) error {
	var pair []int
	if err := node.Decode(&pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("%w: range needs two values, got %d", ErrInvalidSetting, len(pair))
	}
	r.Min, r.Max = pair[0], pair[1]
	return nil
}

func (r Range) String() string {
	switch {
	case r.Min <= 0 && r.Max <= 0:
		return "any"
	case r.Max <= 0:
		return fmt.Sprintf("%d+", r.Min)
	case r.Min <= 0:
		return fmt.Sprintf("up to %d", r.Max)
	case r.Min == r.Max:
		return fmt.Sprintf("%d", r.Min)
	default:
		return fmt.Sprintf("%d-%d", r.Min, r.Max)
	}
}

// Bounded reports whether both ends are set
func (r Range) Bounded() bool {
	return r.Min > 0 && r.Max > 0
}

// RevealPolicy decides which letters are shown when a round starts
type RevealPolicy int

const (
	RevealFirst RevealPolicy = iota
	RevealFirstMiddleLast
)

func (p RevealPolicy) String() string {
	switch p {
	case RevealFirst:
		return "first"
	case RevealFirstMiddleLast:
		return "first-middle-last"
	default:
		return fmt.Sprintf("RevealPolicy(%d)", int(p))
	}
}

// UnmarshalYAML reads the policy name
func (p *RevealPolicy) UnmarshalYAML(node *yaml.Node) error {
	var name string
	if err := node.Decode(&name); err != nil {
		return err
	}
	switch canonical(name) {
	case "first":
		*p = RevealFirst
	case "firstmiddlelast":
		*p = RevealFirstMiddleLast
	default:
		return fmt.Errorf("%w: unknown reveal policy %q", ErrInvalidSetting, name)
	}
	return nil
}

// Positions returns the ascending, distinct indexes revealed in a word of n letters
func (p RevealPolicy) Positions(n int) []int {
	if n <= 0 {
		return nil
	}
	if p == RevealFirst || n == 1 {
		return []int{0}
	}

	positions := []int{0}
	for _, i := range []int{n / 2, n - 1} {
		if i != positions[len(positions)-1] {
			positions = append(positions, i)
		}
	}
	return positions
}

// GameSetting is the parameter bundle of one difficulty
type GameSetting struct {
	Difficulty    Difficulty    `yaml:"-"`
	Name          string        `yaml:"name"`
	MaxRoundTime  time.Duration `yaml:"maxRoundTime"`
	TotalRounds   int           `yaml:"totalRounds"`
	MaxRoundScore int           `yaml:"maxRoundScore"`
	WordLength    Range         `yaml:"wordLength"`
	Penalty       int           `yaml:"penalty"`
	Hints         Range         `yaml:"hints"`
	HintPenalty   int           `yaml:"hintPenalty"`
	Intro         string        `yaml:"intro"`
	Reveal        RevealPolicy  `yaml:"reveal"`
}

// Validate checks the bundle for values the game cannot run with
func (s GameSetting) Validate() error {
	switch {
	case s.MaxRoundTime <= 0:
		return fmt.Errorf("%w: %s: maxRoundTime must be positive", ErrInvalidSetting, s.Name)
	case s.TotalRounds <= 0:
		return fmt.Errorf("%w: %s: totalRounds must be positive", ErrInvalidSetting, s.Name)
	case s.MaxRoundScore <= 0:
		return fmt.Errorf("%w: %s: maxRoundScore must be positive", ErrInvalidSetting, s.Name)
	case s.Penalty <= 0:
		return fmt.Errorf("%w: %s: penalty must be positive", ErrInvalidSetting, s.Name)
	case s.HintPenalty < 0:
		return fmt.Errorf("%w: %s: hintPenalty must not be negative", ErrInvalidSetting, s.Name)
	case s.Hints.Min < 0 || s.Hints.Max < s.Hints.Min:
		return fmt.Errorf("%w: %s: hints range %d..%d", ErrInvalidSetting, s.Name, s.Hints.Min, s.Hints.Max)
	case s.WordLength.Bounded() && s.WordLength.Min > s.WordLength.Max:
		return fmt.Errorf("%w: %s: word length range %d..%d", ErrInvalidSetting, s.Name, s.WordLength.Min, s.WordLength.Max)
	}
	return nil
}

// HintCap maps the word length linearly onto the hint range:
// the shortest word of the band gets Hints.Min, the longest Hints.Max.
func (s GameSetting) HintCap(wordLen int) int {
	lo, hi := s.Hints.Min, s.Hints.Max
	if !s.WordLength.Bounded() || s.WordLength.Max == s.WordLength.Min {
		return lo
	}

	span := s.WordLength.Max - s.WordLength.Min
	c := lo + (wordLen-s.WordLength.Min)*(hi-lo)/span
	if c < lo {
		return lo
	}
	if c > hi {
		return hi
	}
	return c
}

// HintDeduction is the score removed for each hint; zero unless the penalty flag is set
func (s GameSetting) HintDeduction(wordLen int) int {
	if s.HintPenalty == 0 || wordLen <= 0 {
		return 0
	}
	d := s.HintPenalty * s.MaxRoundScore / wordLen
	if d < 1 {
		d = 1
	}
	return d
}

// PartsForWrong returns how many body parts are drawn after wrong guesses
func (s GameSetting) PartsForWrong(wrong int) int {
	parts := wrong * s.Penalty
	if parts > TotalParts {
		return TotalParts
	}
	return parts
}

// GameSettings is the read-only difficulty table
type GameSettings struct {
	rows [difficultyCount]GameSetting
}

// Default returns the built-in table
func Default() GameSettings {
	table, err := parse(strings.NewReader(asset.Settings), GameSettings{})
	if err != nil {
		panic(fmt.Sprintf("embedded settings table: %v", err))
	}
	return table
}

// Load merges a YAML override on top of the built-in table.
// Keys missing from the override keep their default values.
func Load(r io.Reader) (GameSettings, error) {
	return parse(r, Default())
}

// LoadFile merges the YAML override at path
func LoadFile(path string) (GameSettings, error) {
	f, err := os.Open(path)
	if err != nil {
		return GameSettings{}, fmt.Errorf("failed to open settings file %s: %w", path, err)
	}
	defer f.Close()

	table, err := Load(f)
	if err != nil {
		return GameSettings{}, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

func parse(r io.Reader, base GameSettings) (GameSettings, error) {
	var doc map[string]yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return GameSettings{}, fmt.Errorf("failed to parse settings YAML: %w", err)
	}

	table := base
	for key, node := range doc {
		d, err := ParseDifficulty(key)
		if err != nil {
			return GameSettings{}, err
		}

		// Decoding into the existing row keeps fields the document does not mention
		row := base.rows[d]
		if err := node.Decode(&row); err != nil {
			return GameSettings{}, fmt.Errorf("settings %q: %w", key, err)
		}
		row.Difficulty = d
		if row.Name == "" {
			row.Name = d.String()
		}
		if err := row.Validate(); err != nil {
			return GameSettings{}, err
		}
		table.rows[d] = row
	}
	return table, nil
}

// Get returns a copy of the row for d
func (t GameSettings) Get(d Difficulty) (GameSetting, error) {
	if d < 0 || d >= difficultyCount {
		return GameSetting{}, fmt.Errorf("%w: %d", ErrUnknownDifficulty, int(d))
	}
	return t.rows[d], nil
}
