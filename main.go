package main

import (
	"log/slog"
	"os"

	"git.lost.host/meutraa/tapline/internal/config"
	"gopkg.in/alecthomas/kingpin.v2"
)

func main() {
	app := kingpin.New("tapline", "Play rhythm game charts in the terminal")
	app.Version("0.1.0")
	cfg := config.Register(app)
	play := app.Command("play", "Play a chart").Default()
	replays := app.Command("replays", "Judge the stored replays of a chart again")
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := cfg.Validate(); nil != err {
		app.Fatalf("%v", err)
	}

	p := &Program{cfg: cfg, log: log}
	var err error
	switch command {
	case play.FullCommand():
		err = p.Play()
	case replays.FullCommand():
		err = p.Replays()
	}
	if nil != err {
		log.Error("tapline failed", "err", err)
		os.Exit(1)
	}
}
