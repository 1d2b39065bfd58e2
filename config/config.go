// Package config resolves the game configuration shared by both binaries.
// Precedence is flags, then environment, then a .env file, then embedded defaults.
package config

import (
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/cmd-hangman/audio"
	"github.com/lixenwraith/cmd-hangman/conductor"
	"github.com/lixenwraith/cmd-hangman/game"
	"github.com/lixenwraith/cmd-hangman/settings"
	"github.com/lixenwraith/cmd-hangman/word"
)

// Environment variable names
const (
	EnvWordsFile    = "HANGMAN_WORDS_FILE"
	EnvMessagesFile = "HANGMAN_MESSAGES_FILE"
	EnvSettingsFile = "HANGMAN_SETTINGS_FILE"
	EnvDifficulty   = "HANGMAN_DIFFICULTY"
	EnvSeed         = "HANGMAN_SEED"
	EnvLogLevel     = "LOG_LEVEL"
)

// DotEnvFile is read from the working directory when present
const DotEnvFile = ".env"

// Config is the resolved startup configuration
type Config struct {
	Difficulty   settings.Difficulty
	WordsFile    string
	MessagesFile string
	SettingsFile string
	Seed         int64
	Debug        bool
	LogLevel     zerolog.Level
	Audio        *audio.AudioConfig
}

// Load parses args (without the program name) on top of the environment.
// A missing .env file is not an error.
func Load(name string, args []string) (*Config, error) {
	if err := godotenv.Load(DotEnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read %s: %w", DotEnvFile, err)
	}

	cfg := &Config{
		WordsFile:    os.Getenv(EnvWordsFile),
		MessagesFile: os.Getenv(EnvMessagesFile),
		SettingsFile: os.Getenv(EnvSettingsFile),
		LogLevel:     zerolog.InfoLevel,
		Audio:        audio.LoadAudioConfig(),
	}

	if s := os.Getenv(EnvLogLevel); s != "" {
		lvl, err := zerolog.ParseLevel(s)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
		cfg.LogLevel = lvl
	}
	if s := os.Getenv(EnvSeed); s != "" {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", EnvSeed, err)
		}
		cfg.Seed = v
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	difficulty := fs.String("difficulty", os.Getenv(EnvDifficulty), "preselected difficulty: easy, medium, hard, very-hard, random")
	fs.StringVar(&cfg.WordsFile, "words", cfg.WordsFile, "word list file, one word per line")
	fs.StringVar(&cfg.MessagesFile, "messages", cfg.MessagesFile, "conductor script file")
	fs.StringVar(&cfg.SettingsFile, "settings", cfg.SettingsFile, "YAML difficulty table override")
	fs.StringVar(&cfg.Audio.MusicFile, "music", cfg.Audio.MusicFile, "background music mp3")
	fs.StringVar(&cfg.Audio.TypewriterFile, "typewriter", cfg.Audio.TypewriterFile, "typewriter click mp3")
	mute := fs.Bool("mute", !cfg.Audio.Enabled, "disable audio")
	fs.BoolVar(&cfg.Debug, "debug", false, "enable debug logging")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed for word selection (0 uses the clock)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if *difficulty != "" {
		d, err := settings.ParseDifficulty(*difficulty)
		if err != nil {
			return nil, err
		}
		cfg.Difficulty = d
	}
	cfg.Audio.Enabled = !*mute

	if cfg.Debug && cfg.LogLevel > zerolog.DebugLevel {
		cfg.LogLevel = zerolog.DebugLevel
	}
	return cfg, nil
}

// NewSession loads the word list, script and difficulty table and builds a session
func (c *Config) NewSession(log zerolog.Logger, opts ...game.Option) (*game.Session, error) {
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	wordOpts := []word.Option{word.WithRand(rand.New(rand.NewSource(seed))), word.WithLogger(log)}

	var (
		oracle *word.Oracle
		err    error
	)
	if c.WordsFile != "" {
		oracle, err = word.LoadFile(c.WordsFile, wordOpts...)
	} else {
		oracle, err = word.LoadDefault(wordOpts...)
	}
	if err != nil {
		return nil, err
	}

	var msgs *conductor.Messages
	if c.MessagesFile != "" {
		msgs, err = conductor.LoadFile(c.MessagesFile)
	} else {
		msgs, err = conductor.LoadDefault()
	}
	if err != nil {
		return nil, err
	}

	table := settings.Default()
	if c.SettingsFile != "" {
		if table, err = settings.LoadFile(c.SettingsFile); err != nil {
			return nil, err
		}
	}

	log.Info().
		Int("words", oracle.Len()).
		Int64("seed", seed).
		Str("difficulty", c.Difficulty.String()).
		Msg("configuration loaded")

	opts = append([]game.Option{game.WithLogger(log)}, opts...)
	return game.NewSession(oracle, table, conductor.New(msgs), opts...), nil
}
