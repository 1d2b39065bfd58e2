package word

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"golang.org/x/text/unicode/norm"

	"github.com/lixenwraith/cmd-hangman/asset"
)

// CommentPrefix marks corpus lines that are skipped
const CommentPrefix = "#"

// Sentinel errors
var (
	ErrEmptyCorpus  = errors.New("word corpus is empty")
	ErrNoCandidates = errors.New("no word matches the requested length range")
	ErrExhausted    = errors.New("all words in the requested length range were already used")
)

// Oracle yields random words from a static corpus
type Oracle struct {
	words   []string
	lengths []int
	used    map[string]struct{}
	rng     *rand.Rand
	log     zerolog.Logger
}

// Option configures an Oracle
type Option func(*Oracle)

// WithRand sets the random source, mainly for deterministic tests
func WithRand(rng *rand.Rand) Option {
	return func(o *Oracle) { o.rng = rng }
}

// WithLogger attaches a logger
func WithLogger(l zerolog.Logger) Option {
	return func(o *Oracle) { o.log = l.With().Str("component", "oracle").Logger() }
}

// Load reads a newline-delimited corpus
func Load(r io.Reader, opts ...Option) (*Oracle, error) {
	o := &Oracle{
		used: make(map[string]struct{}),
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
		log:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(o)
	}

	seen := make(map[string]struct{})
	lengthSet := make(map[int]struct{})
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		w, ok := normalize(scanner.Text())
		if !ok {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		o.words = append(o.words, w)
		lengthSet[utf8.RuneCountInString(w)] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading word corpus: %w", err)
	}
	if len(o.words) == 0 {
		return nil, ErrEmptyCorpus
	}

	for l := range lengthSet {
		o.lengths = append(o.lengths, l)
	}
	sort.Ints(o.lengths)

	o.log.Debug().Int("words", len(o.words)).Ints("lengths", o.lengths).Msg("corpus loaded")
	return o, nil
}

// LoadFile reads the corpus from path
func LoadFile(path string, opts ...Option) (*Oracle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open word file %s: %w", path, err)
	}
	defer f.Close()

	o, err := Load(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return o, nil
}

// LoadDefault reads the embedded corpus
func LoadDefault(opts ...Option) (*Oracle, error) {
	return Load(strings.NewReader(asset.Words), opts...)
}

// normalize trims, NFC-normalizes and lower-cases a corpus line
func normalize(line string) (string, bool) {
	w := strings.TrimSpace(line)
	if w == "" || strings.HasPrefix(w, CommentPrefix) {
		return "", false
	}
	return strings.ToLower(norm.NFC.String(w)), true
}

// Len returns the corpus size
func (o *Oracle) Len() int {
	return len(o.words)
}

// Lengths returns the distinct word lengths in ascending order
func (o *Oracle) Lengths() []int {
	out := make([]int, len(o.lengths))
	copy(out, o.lengths)
	return out
}

// Filter returns every word whose rune length lies within [min, max].
// A bound <= 0 is open.
func (o *Oracle) Filter(min, max int) []string {
	if min > 0 && max > 0 && min > max {
		min, max = max, min
	}

	var out []string
	for _, w := range o.words {
		n := utf8.RuneCountInString(w)
		if min > 0 && n < min {
			continue
		}
		if max > 0 && n > max {
			continue
		}
		out = append(out, w)
	}
	return out
}

// Next returns a random word within [min, max] not handed out since the last Reset
func (o *Oracle) Next(min, max int) (string, error) {
	candidates := o.Filter(min, max)
	if len(candidates) == 0 {
		return "", fmt.Errorf("length %d..%d: %w", min, max, ErrNoCandidates)
	}

	var fresh []string
	for _, w := range candidates {
		if _, used := o.used[w]; !used {
			fresh = append(fresh, w)
		}
	}
	if len(fresh) == 0 {
		return "", fmt.Errorf("length %d..%d: %w", min, max, ErrExhausted)
	}

	w := fresh[o.rng.Intn(len(fresh))]
	o.used[w] = struct{}{}
	return w, nil
}

// RandomRange draws a length range from the lengths present in the corpus.
// Either end may come back as 0, meaning unbounded.
func (o *Oracle) RandomRange() (min, max int) {
	// Index len(lengths) stands for the open bound
	pick := func() int {
		i := o.rng.Intn(len(o.lengths) + 1)
		if i == len(o.lengths) {
			return 0
		}
		return o.lengths[i]
	}

	a, b := pick(), pick()
	switch {
	case a == 0 || b == 0:
		// one open end: the other value is the bound on the matching side
		if o.rng.Intn(2) == 0 {
			return a + b, 0
		}
		return 0, a + b
	case a > b:
		return b, a
	default:
		return a, b
	}
}

// Reset forgets the words already handed out
func (o *Oracle) Reset() {
	o.used = make(map[string]struct{})
}

// Used returns how many words were handed out since the last Reset
func (o *Oracle) Used() int {
	return len(o.used)
}
