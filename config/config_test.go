package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/cmd-hangman/game"
	"github.com/lixenwraith/cmd-hangman/settings"
	"github.com/lixenwraith/cmd-hangman/word"
)

var managedEnv = []string{
	EnvWordsFile, EnvMessagesFile, EnvSettingsFile, EnvDifficulty, EnvSeed, EnvLogLevel,
	"HANGMAN_AUDIO_ENABLED", "HANGMAN_MUSIC_FILE", "HANGMAN_TYPEWRITER_FILE",
}

// cleanEnv runs the test in an empty directory with the game's variables unset;
// values loaded from a .env file are undone when the test ends
func cleanEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	for _, key := range managedEnv {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	return dir
}

func TestLoadDefaults(t *testing.T) {
	cleanEnv(t)

	cfg, err := Load("hangman", nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Difficulty != settings.Easy || cfg.WordsFile != "" || cfg.Debug {
		t.Errorf("Unexpected defaults: %+v", cfg)
	}
	if cfg.LogLevel != zerolog.InfoLevel {
		t.Errorf("Expected info level, got %v", cfg.LogLevel)
	}
	if !cfg.Audio.Enabled {
		t.Error("Expected audio enabled by default")
	}
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	cleanEnv(t)
	t.Setenv(EnvDifficulty, "hard")
	t.Setenv(EnvWordsFile, "env-words.txt")
	t.Setenv(EnvLogLevel, "warn")
	t.Setenv(EnvSeed, "42")

	cfg, err := Load("hangman", []string{"-difficulty", "very-hard", "-mute", "-debug", "-seed", "7"})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Difficulty != settings.VeryHard {
		t.Errorf("Expected flag difficulty, got %v", cfg.Difficulty)
	}
	if cfg.WordsFile != "env-words.txt" {
		t.Errorf("Expected env words file, got %q", cfg.WordsFile)
	}
	if cfg.Audio.Enabled || !cfg.Debug || cfg.Seed != 7 {
		t.Errorf("Flags not applied: %+v", cfg)
	}
	if cfg.LogLevel != zerolog.DebugLevel {
		t.Errorf("Expected -debug to win over %s, got %v", EnvLogLevel, cfg.LogLevel)
	}

	cfg, err = Load("hangman", nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.LogLevel != zerolog.WarnLevel || cfg.Seed != 42 {
		t.Errorf("Expected environment level and seed without flags, got %v / %d", cfg.LogLevel, cfg.Seed)
	}
}

func TestDotEnvFile(t *testing.T) {
	dir := cleanEnv(t)
	t.Setenv(EnvSeed, "99")

	content := "HANGMAN_DIFFICULTY=medium\nHANGMAN_SEED=5\nLOG_LEVEL=warn\n"
	if err := os.WriteFile(filepath.Join(dir, DotEnvFile), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("hangman", nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Difficulty != settings.Medium {
		t.Errorf("Expected .env difficulty, got %v", cfg.Difficulty)
	}
	if cfg.Seed != 99 {
		t.Errorf("Environment should win over .env, got seed %d", cfg.Seed)
	}
	if cfg.LogLevel != zerolog.WarnLevel {
		t.Errorf("Expected warn level, got %v", cfg.LogLevel)
	}
}

func TestLoadErrors(t *testing.T) {
	cleanEnv(t)

	if _, err := Load("hangman", []string{"-difficulty", "impossible"}); !errors.Is(err, settings.ErrUnknownDifficulty) {
		t.Errorf("Expected ErrUnknownDifficulty, got %v", err)
	}

	t.Setenv(EnvLogLevel, "loud")
	if _, err := Load("hangman", nil); err == nil {
		t.Error("Expected error for a bad log level")
	}

	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvSeed, "abc")
	if _, err := Load("hangman", nil); !errors.Is(err, strconv.ErrSyntax) {
		t.Errorf("Expected syntax error for a bad seed, got %v", err)
	}
}

func TestNewSession(t *testing.T) {
	dir := cleanEnv(t)

	words := filepath.Join(dir, "words.txt")
	if err := os.WriteFile(words, []byte("pasta\ngatto\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := &Config{WordsFile: words, Seed: 1}

	s, err := cfg.NewSession(zerolog.Nop(), game.WithSessionID("cfg"))
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	if s.ID() != "cfg" || s.Phase() != game.PhaseIntro {
		t.Errorf("Unexpected session %q in %v", s.ID(), s.Phase())
	}

	cfg.WordsFile = filepath.Join(dir, "missing.txt")
	if _, err := cfg.NewSession(zerolog.Nop()); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected missing file error, got %v", err)
	}

	empty := filepath.Join(dir, "empty.txt")
	if err := os.WriteFile(empty, []byte("\n# only a comment\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg.WordsFile = empty
	if _, err := cfg.NewSession(zerolog.Nop()); !errors.Is(err, word.ErrEmptyCorpus) {
		t.Errorf("Expected ErrEmptyCorpus, got %v", err)
	}
}
