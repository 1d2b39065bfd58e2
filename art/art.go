// Package art holds the ASCII art of the terminal frontend
package art

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Title is the banner shown at the top of the screen
var Title = []string{
	`  ___ __  __ ___      _    _              _  _   _   _  _  ___ __  __   _   _  _ `,
	` / __|  \/  |   \ ___| |  (_)_ _  ___    | || | /_\ | \| |/ __|  \/  | /_\ | \| |`,
	`| (__| |\/| | |) |___| |__| | ' \/ -_)   | __ |/ _ \| .' | (_ | |\/| |/ _ \| .' |`,
	` \___|_|  |_|___/    |____|_|_||_\___|   |_||_/_/ \_\_|\_|\___|_|  |_/_/ \_\_|\_|`,
}

// ShortTitle replaces the banner on narrow screens
const ShortTitle = "CMD-Line HANGMAN"

// Conductor is the portrait drawn next to the dialogue box
var Conductor = []string{
	"───────▄██████▄───────",
	"──────▐▀▀▀▀▀▀▀▀▌──────",
	"──────▌▌▀▀▌▐▀▀▐▐──────",
	"──────▐──▄▄▄▄──▌──────",
	"───────▌▐▌──▐▌▐───────",
}

// Part is a body part of the hangman
type Part int

// Parts are drawn in declaration order
const (
	Head Part = iota
	Body
	LeftArm
	RightArm
	LeftLeg
	RightLeg
	LeftFoot
	RightFoot
	PartCount
)

// partGlyphs are the characters substituted into the gallows template
var partGlyphs = [PartCount]string{"O", "|", "/", "\\", "/", "\\", "_", "_"}

// gallows uses one placeholder letter per part, replaced by the glyph or a space
var gallows = []string{
	"-------------",
	"=============",
	"|█          |",
	"|█          h",
	"|█         abc",
	"|█        fl rg",
	"|█",
	"|█",
	"|█",
	"|█",
	"▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀",
	"###################",
}

var placeholders = [PartCount]string{"h", "b", "a", "c", "l", "r", "f", "g"}

// Hangman renders the gallows with the first parts body parts drawn
func Hangman(parts int) []string {
	pairs := make([]string, 0, 2*PartCount)
	for p := Part(0); p < PartCount; p++ {
		glyph := " "
		if int(p) < parts {
			glyph = partGlyphs[p]
		}
		pairs = append(pairs, placeholders[p], glyph)
	}
	r := strings.NewReplacer(pairs...)

	out := make([]string, len(gallows))
	for i, line := range gallows {
		out[i] = r.Replace(line)
	}
	return out
}

// Width returns the widest line of block in terminal cells
func Width(block []string) int {
	w := 0
	for _, line := range block {
		if lw := runewidth.StringWidth(line); lw > w {
			w = lw
		}
	}
	return w
}
