package main

import (
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sqweek/dialog"

	"github.com/example/revealit/internal/config"
	"github.com/example/revealit/internal/logging"
)

func main() {
	cfg := config.Load()
	logger := logging.New(os.Stderr, logging.ParseLevel(cfg.LogLevel))

	game, err := NewGame(cfg, logger)
	if err != nil {
		fatal(logger, err)
	}
	ebiten.SetWindowSize(cfg.WindowWidth, cfg.WindowHeight)
	ebiten.SetWindowTitle("RevealIt - draw on me in every color")
	ebiten.SetWindowResizable(true)
	if err := ebiten.RunGame(game); err != nil {
		fatal(logger, err)
	}
}

func fatal(logger *slog.Logger, err error) {
	logger.Error("fatal", "err", err)
	dialog.Message("%v", err).Title("RevealIt").Error()
	os.Exit(1)
}
