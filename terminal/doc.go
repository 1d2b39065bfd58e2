// Package terminal is the tcell frontend of the game.
//
// TerminalHangman owns the screen and the input loop: a goroutine polls tcell
// events into a channel and the main loop consumes them together with a
// ticker that drives the session (conductor typing, round timeout) and
// redraws the frame.
//
// Layout, top to bottom:
//   - title banner
//   - conductor card (portrait + dialogue) beside the gallows card
//   - word letter boxes with the cursor highlighted
//   - difficulty menu while choosing
//   - status line and key help
//
// Drawing outside the screen is silently clipped.
package terminal
