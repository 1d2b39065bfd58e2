// Package asset holds the game data compiled into the binary: the default
// word corpus, the conductor script and the difficulty table.
package asset

import _ "embed"

// Words is the default newline-delimited word corpus
//
//go:embed words.txt
var Words string

// Messages is the default conductor script
//
//go:embed messages.txt
var Messages string

// Settings is the default difficulty table in YAML
//
//go:embed settings.yaml
var Settings string
