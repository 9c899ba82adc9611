package main

import (
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/maze-man/internal/config"
	"github.com/Garsondee/maze-man/internal/display"
	"github.com/Garsondee/maze-man/internal/game"
	"github.com/Garsondee/maze-man/internal/logger"
	"github.com/Garsondee/maze-man/internal/session"
	"github.com/Garsondee/maze-man/internal/sfx"
)

func main() {
	var cfgPath string
	var seed int64
	var spectateAddr string
	var mute bool

	flag.StringVar(&cfgPath, "config", "mazeman.toml", "TOML settings file (missing is fine)")
	flag.Int64Var(&seed, "seed", 0, "RNG seed (0 = time based)")
	flag.StringVar(&spectateAddr, "spectate", "", "serve the live stats feed on this address, e.g. :8090")
	flag.BoolVar(&mute, "mute", false, "start with sound off")
	flag.Parse()

	log := logger.Component("main")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}
	if seed != 0 {
		cfg.Seed = seed
	}
	if spectateAddr != "" {
		cfg.Spectate.Addr = spectateAddr
	}
	logger.Setup(cfg.LogLevel)

	var extra []game.Observer
	var sound *sfx.Player
	if cfg.Display.Sound {
		sound = sfx.NewPlayer(sfx.NewSpeaker(), cfg.Display.Volume)
		sound.SetMuted(mute)
		extra = append(extra, sound)
	}

	sess, err := session.Open(cfg, extra...)
	if err != nil {
		log.WithError(err).Fatal("failed to open session")
	}
	defer func() {
		if err := sess.Close(); err != nil {
			log.WithError(err).Warn("session close")
		}
	}()

	g, err := display.New(display.Options{
		Scale:    cfg.Display.Scale,
		NewRun:   sess.NewRun,
		Recorder: sess.Recorder,
		Sound:    sound,
	})
	if err != nil {
		log.WithError(err).Error("failed to build display")
		os.Exit(1)
	}

	w, h := g.WindowSize()
	ebiten.SetWindowTitle(cfg.Display.Title)
	ebiten.SetWindowSize(w, h)
	ebiten.SetTPS(cfg.Tuning.TicksPerSecond)
	if err := ebiten.RunGame(g); err != nil {
		log.WithError(err).Error("game loop exited")
	}
}
