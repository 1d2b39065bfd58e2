package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/lixenwraith/cmd-hangman/audio"
	"github.com/lixenwraith/cmd-hangman/config"
	"github.com/lixenwraith/cmd-hangman/game"
	"github.com/lixenwraith/cmd-hangman/terminal"
)

const (
	logDir      = "logs"
	logFileName = "hangman.log"
	maxLogSize  = 10 * 1024 * 1024 // 10MB
)

// setupLogging points zerolog at logs/hangman.log in debug mode, rotating a file
// that grew past maxLogSize. Without debug all logging is disabled so nothing
// reaches the terminal while tcell owns it.
func setupLogging(debug bool) *os.File {
	if !debug {
		zerolog.SetGlobalLevel(zerolog.Disabled)
		return nil
	}
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil
	}

	logPath := filepath.Join(logDir, logFileName)
	if info, err := os.Stat(logPath); err == nil && info.Size() > maxLogSize {
		rotated := filepath.Join(logDir, fmt.Sprintf("hangman-%s.log", time.Now().Format("20060102-150405")))
		os.Rename(logPath, rotated)
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil
	}
	return f
}

func crash(r any) {
	terminal.EmergencyReset(os.Stdout)
	// \r\n for raw mode
	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mHANGMAN CRASHED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
	os.Exit(1)
}

func main() {
	// Panic Recovery: Ensure terminal is reset even if the game crashes
	defer func() {
		if r := recover(); r != nil {
			crash(r)
		}
	}()

	cfg, err := config.Load(os.Args[0], os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "hangman: %v\n", err)
		os.Exit(2)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "hangman: stdout is not a terminal, try hangman-gui")
		os.Exit(1)
	}

	logger := zerolog.Nop()
	if logFile := setupLogging(cfg.Debug); logFile != nil {
		defer logFile.Close()
		logger = zerolog.New(logFile).Level(cfg.LogLevel).With().Timestamp().Logger()
	}

	sounds := audio.NewSoundManager(cfg.Audio, audio.WithLogger(logger))
	if err := sounds.Initialize(); err != nil {
		logger.Warn().Err(err).Msg("audio unavailable, continuing without sound")
	}
	defer sounds.Cleanup()

	session, err := cfg.NewSession(logger, game.WithSounds(sounds))
	if err != nil {
		fmt.Fprintf(os.Stderr, "hangman: %v\n", err)
		os.Exit(1)
	}
	logger = logger.With().Str("session", session.ID()).Logger()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize screen: %v\n", err)
		os.Exit(1)
	}
	// Normal exit terminal cleanup
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	sounds.StartMusic()

	terminal.New(screen, session,
		terminal.WithAudio(sounds),
		terminal.WithLogger(logger),
		terminal.WithDifficulty(cfg.Difficulty),
		terminal.WithCrashHandler(crash),
	).Run()

	logger.Info().
		Str("phase", session.Phase().String()).
		Int("rounds_won", session.RoundsWon()).
		Msg("session ended")
}
