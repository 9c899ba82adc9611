package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/maze-man/internal/config"
	"github.com/Garsondee/maze-man/internal/logger"
	"github.com/Garsondee/maze-man/internal/session"
	"github.com/Garsondee/maze-man/internal/tui"
)

func main() {
	var cfgPath string
	var seed int64
	var logPath string

	flag.StringVar(&cfgPath, "config", "mazeman.toml", "TOML settings file (missing is fine)")
	flag.Int64Var(&seed, "seed", 0, "RNG seed (0 = time based)")
	flag.StringVar(&logPath, "log", "mazeman-tui.log", "log file; the terminal is taken by the board")
	flag.Parse()

	log := logger.Component("main")
	if f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600); err == nil {
		logger.Log.SetOutput(f)
		defer f.Close()
	} else {
		log.WithError(err).Warn("logging to stderr")
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}
	if seed != 0 {
		cfg.Seed = seed
	}
	logger.Setup(cfg.LogLevel)

	sess, err := session.Open(cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to open session")
	}
	defer sess.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		log.WithError(err).Fatal("no terminal")
	}
	if err := screen.Init(); err != nil {
		log.WithError(err).Fatal("terminal init failed")
	}
	defer screen.Fini()
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorDefault).Foreground(tcell.ColorWhite))
	screen.Clear()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app := &tui.App{Screen: screen, NewRun: sess.NewRun}
	if err := app.Loop(ctx); err != nil && ctx.Err() == nil {
		log.WithError(err).Error("terminal session ended")
	}
}
