package terminal

import (
	"io"
	"os"
)

// Sequences written by EmergencyReset
var (
	csiRIS           = []byte("\x1bc")
	csiSGR0          = []byte("\x1b[0m")
	csiCursorShow    = []byte("\x1b[?25h")
	csiAltScreenExit = []byte("\x1b[?1049l")
	csiAutoWrapOn    = []byte("\x1b[?7h")
	csiMouseOff      = []byte("\x1b[?1000l\x1b[?1002l\x1b[?1003l\x1b[?1006l")
)

// EmergencyReset attempts to restore the terminal to a sane state.
// Call this from panic recovery when the screen cannot be finalized normally.
func EmergencyReset(w io.Writer) {
	w.Write(csiMouseOff)
	w.Write(csiCursorShow)
	w.Write(csiAltScreenExit)
	w.Write(csiSGR0)
	w.Write(csiAutoWrapOn)
	w.Write(csiRIS)

	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	// escape sequences alone don't restore termios; best effort
	resetTerminalMode()
}
