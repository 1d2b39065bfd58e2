package conductor

// Typewriter reveals a line one letter at a time
type Typewriter struct {
	text  []rune
	shown int
}

// NewTypewriter creates a typewriter for text with nothing typed yet
func NewTypewriter(text string) *Typewriter {
	tw := &Typewriter{}
	tw.Reset(text)
	return tw
}

// Reset starts typing text from the beginning
func (tw *Typewriter) Reset(text string) {
	tw.text = []rune(text)
	tw.shown = 0
}

// Retext swaps the text keeping the typed count
func (tw *Typewriter) Retext(text string) {
	tw.text = []rune(text)
	if tw.shown > len(tw.text) {
		tw.shown = len(tw.text)
	}
}

// Tick types the next letter and reports whether there was one
func (tw *Typewriter) Tick() bool {
	if tw.shown >= len(tw.text) {
		return false
	}
	tw.shown++
	return true
}

// Skip types the rest of the line at once
func (tw *Typewriter) Skip() {
	tw.shown = len(tw.text)
}

// Finished reports whether the whole line is typed
func (tw *Typewriter) Finished() bool {
	return tw.shown >= len(tw.text)
}

// Visible returns the typed part of the line
func (tw *Typewriter) Visible() string {
	return string(tw.text[:tw.shown])
}

// Last returns the most recently typed letter, or 0 before the first
func (tw *Typewriter) Last() rune {
	if tw.shown == 0 {
		return 0
	}
	return tw.text[tw.shown-1]
}
