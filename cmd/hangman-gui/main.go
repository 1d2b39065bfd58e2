package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/cmd-hangman/art"
	"github.com/lixenwraith/cmd-hangman/audio"
	"github.com/lixenwraith/cmd-hangman/config"
	"github.com/lixenwraith/cmd-hangman/game"
	"github.com/lixenwraith/cmd-hangman/gui"
)

func main() {
	cfg, err := config.Load(os.Args[0], os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "hangman-gui: %v\n", err)
		os.Exit(2)
	}

	// the window leaves the console free, so log there
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(cfg.LogLevel).
		With().Timestamp().Logger()

	sounds := audio.NewSoundManager(cfg.Audio, audio.WithLogger(logger))
	if err := sounds.Initialize(); err != nil {
		logger.Warn().Err(err).Msg("audio unavailable, continuing without sound")
	}
	defer sounds.Cleanup()

	session, err := cfg.NewSession(logger, game.WithSounds(sounds))
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot start")
	}
	sounds.StartMusic()

	ebiten.SetWindowSize(gui.ScreenWidth, gui.ScreenHeight)
	ebiten.SetWindowTitle(art.ShortTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(int(time.Second / game.TickInterval))

	g := gui.New(session, gui.WithAudio(sounds), gui.WithLogger(logger))
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Error().Err(err).Msg("game loop failed")
	}
}
