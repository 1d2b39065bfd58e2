package art

import (
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
)

// Wrap breaks s into lines of at most width cells, splitting on spaces;
// single words wider than width are truncated
func Wrap(s string, width int) []string {
	if width <= 0 {
		return nil
	}

	var lines []string
	var line strings.Builder
	lineW := 0
	for _, word := range strings.Fields(s) {
		ww := runewidth.StringWidth(word)
		if ww > width {
			word = runewidth.Truncate(word, width, "")
			ww = runewidth.StringWidth(word)
		}

		switch {
		case lineW == 0:
			line.WriteString(word)
			lineW = ww
		case lineW+1+ww <= width:
			line.WriteByte(' ')
			line.WriteString(word)
			lineW += 1 + ww
		default:
			lines = append(lines, line.String())
			line.Reset()
			line.WriteString(word)
			lineW = ww
		}
	}
	if lineW > 0 {
		lines = append(lines, line.String())
	}
	return lines
}

// Clock renders d as mm:ss, rounding partial seconds up
func Clock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int((d + time.Second - 1) / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
