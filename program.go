package main

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"time"

	"git.lost.host/meutraa/tapline/internal/clock"
	"git.lost.host/meutraa/tapline/internal/config"
	"git.lost.host/meutraa/tapline/internal/game"
	"git.lost.host/meutraa/tapline/internal/input"
	"git.lost.host/meutraa/tapline/internal/judge"
	"git.lost.host/meutraa/tapline/internal/parser"
	"git.lost.host/meutraa/tapline/internal/render"
	"git.lost.host/meutraa/tapline/internal/replay"
	"git.lost.host/meutraa/tapline/internal/screen"
	"git.lost.host/meutraa/tapline/internal/session"
	"git.lost.host/meutraa/tapline/internal/sound"
	"git.lost.host/meutraa/tapline/internal/theme"
	"git.lost.host/meutraa/tapline/internal/touch"
	"github.com/faiface/beep"
	"github.com/pkg/errors"
)

type Program struct {
	cfg *config.Config
	log *slog.Logger

	chartFile, audioFile string
	chart                *game.Chart

	// Stats for the current play
	counts   [len(judge.Grades)]int
	combo    int
	resolved map[*game.Note]bool
}

// load parses the configured chart and picks the audio next to it
func (p *Program) load() error {
	if p.cfg.Chart == "" {
		return errors.New("no chart given, use --chart")
	}
	info, err := os.Stat(p.cfg.Chart)
	if nil != err {
		return errors.Wrap(err, "unable to open chart")
	}
	if info.IsDir() {
		p.chartFile, p.audioFile, err = parser.Find(p.cfg.Chart)
		if nil != err {
			return err
		}
	} else {
		p.chartFile = p.cfg.Chart
	}

	psr, err := parser.ForFile(p.chartFile)
	if nil != err {
		return err
	}
	charts, err := psr.Parse(p.chartFile)
	if nil != err {
		return err
	}
	if p.cfg.Index >= len(charts) {
		return errors.Errorf("chart %v requested, %v has %v", p.cfg.Index, p.chartFile, len(charts))
	}
	p.chart = charts[p.cfg.Index]

	if p.audioFile == "" && p.chart.Metadata.Music != "" {
		p.audioFile = filepath.Join(filepath.Dir(p.chartFile), p.chart.Metadata.Music)
	}
	p.log.Info("loaded chart",
		"file", p.chartFile,
		"name", p.chart.Metadata.Name,
		"level", p.chart.Metadata.Level,
		"notes", len(p.chart.Notes),
		"lines", len(p.chart.Lines),
	)
	return nil
}

// judged updates the stats with the events of one frame
func (p *Program) judged(events []judge.Event) {
	for _, e := range events {
		p.counts[e.Grade]++
		p.resolved[e.Note] = true
		if e.Grade == judge.Miss {
			p.combo = 0
		} else {
			p.combo++
		}
		p.log.Debug("judged",
			"type", e.Note.Type,
			"start", e.Note.Start.Beats,
			"grade", e.Grade,
			"offset", e.Time-e.Note.JudgeTime,
		)
	}
}

// place returns where a lane key touches the screen: on the first line of
// the chart, at the lane position
func place(adapter *screen.Adapter, line uint, poses []touch.LinePose) func(x float64) touch.Point {
	return func(x float64) touch.Point {
		for _, pose := range poses {
			if pose.ID != line {
				continue
			}
			d := adapter.ToGameXPos(x)
			sin, cos := math.Sincos(pose.Rotation)
			return adapter.WorldToScreen(touch.Point{
				X: pose.Position.X + d*cos,
				Y: pose.Position.Y + d*sin,
			})
		}
		return adapter.WorldToScreen(touch.Point{X: adapter.ToGameXPos(x)})
	}
}

func (p *Program) Play() error {
	if err := p.load(); nil != err {
		return err
	}

	adapter, err := screen.FromTerminal(int(os.Stdout.Fd()), p.cfg.WorldWidth)
	if nil != err {
		return err
	}
	s, err := session.New(p.chart, p.cfg.Judge(), adapter, adapter)
	if nil != err {
		return err
	}
	p.resolved = make(map[*game.Note]bool, len(p.chart.Notes))
	line := uint(0)
	if len(p.chart.Lines) > 0 {
		line = p.chart.Lines[0].ID
	}

	keys, err := input.NewKeys([]rune(p.cfg.Keys), p.cfg.Lanes, p.cfg.Sustain, p.cfg.Repeat)
	if nil != err {
		return err
	}
	kb, err := input.OpenKeyboard()
	if nil != err {
		return err
	}
	defer func() {
		if err := kb.Close(); nil != err {
			p.log.Warn("unable to close keyboard", "err", err)
		}
	}()

	var player *sound.Player
	var music beep.StreamSeekCloser
	var format beep.Format
	if p.cfg.Sound {
		player, err = sound.NewPlayer(true)
		if nil != err {
			return err
		}
		defer player.Close()
		if p.audioFile != "" {
			music, format, err = sound.Open(p.audioFile)
			if nil != err {
				return err
			}
			defer music.Close()
		}
	}

	store, err := replay.Open(p.cfg.Database)
	if nil != err {
		return err
	}
	defer store.Close()
	recorder := &replay.Recorder{}

	var r render.Renderer = render.NewTerminal()
	var th theme.Theme = &theme.DefaultTheme{}
	field := render.NewField(r, adapter, th, adapter)
	if err := r.Init(); nil != err {
		return err
	}
	defer func() {
		// Restore the terminal state
		if err := r.Deinit(); nil != err {
			p.log.Warn("unable to restore terminal", "err", err)
		}
	}()

	timer := clock.New()
	started := false
	var loopErr error
	r.RenderLoop(p.cfg.FramePeriod, func() bool {
		now := timer.Time() - p.cfg.Delay

		cmd, err := kb.Drain(keys, now)
		if nil != err {
			loopErr = err
			return false
		}
		switch cmd {
		case input.Quit:
			return false
		case input.Pause:
			if timer.Paused() {
				err = timer.Resume()
			} else {
				err = timer.Pause()
			}
			if nil != err {
				loopErr = err
				return false
			}
			if nil != player {
				player.Pause(timer.Paused())
			}
		}
		if timer.Paused() {
			r.Fill(1, 2, "Paused")
			return true
		}
		r.Fill(1, 2, "      ")

		if !started && now >= 0 && nil != music {
			player.Music(music, format)
			started = true
		}

		raws := keys.Touches(now, place(adapter, line, s.Poses()))
		recorder.Record(now, raws)
		events := s.Step(now, raws)
		p.judged(events)
		if nil != player {
			player.Judged(events)
		}
		for _, e := range events {
			field.Flash(e.Grade, 30)
		}

		field.Draw(s.Poses(), s.Visible(), func(n *game.Note) bool { return !p.resolved[n] }, s.Beats(now))
		field.Stats(p.counts, p.combo, now)

		return !s.Done() || now < s.End()+time.Second
	})
	if nil != loopErr {
		return loopErr
	}
	if !s.Done() {
		p.log.Info("play abandoned")
		return nil
	}

	p.summary()
	if p.cfg.Autoplay {
		return nil
	}
	id, err := store.Save(p.chart, p.cfg.Judge(), *adapter, recorder.Frames())
	if nil != err {
		return err
	}
	p.log.Info("saved replay", "id", id, "frames", recorder.Len())
	return nil
}

func (p *Program) summary() {
	args := []any{"chart", p.chart.Metadata.Name}
	for i, g := range judge.Grades {
		args = append(args, g.String(), p.counts[i])
	}
	p.log.Info("play complete", args...)
}

// Replays judges every stored replay of the chart under the current config
func (p *Program) Replays() error {
	if err := p.load(); nil != err {
		return err
	}
	store, err := replay.Open(p.cfg.Database)
	if nil != err {
		return err
	}
	defer store.Close()

	replays, err := store.Load(p.chart)
	if nil != err {
		return err
	}
	p.log.Info("found replays", "count", len(replays), "sum", replay.Hash(p.chart))

	for _, r := range replays {
		events, err := r.Judge(p.chart, p.cfg.Judge())
		if nil != err {
			return err
		}
		counts := [len(judge.Grades)]int{}
		for _, e := range events {
			counts[e.Grade]++
		}
		fmt.Printf("%v  %v  %5v %5v %5v %5v\n",
			r.ID, r.Created.Format(time.DateTime), counts[judge.Perfect], counts[judge.Good], counts[judge.Bad], counts[judge.Miss])
	}
	return nil
}
