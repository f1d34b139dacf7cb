// Package sound plays the chart music and a click for every hit.
package sound

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"git.lost.host/meutraa/tapline/internal/judge"
	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	"github.com/pkg/errors"
)

const SampleRate beep.SampleRate = 44100

// Pitch of the click per grade
var pitches = [...]float64{
	judge.Perfect: 1760,
	judge.Good:    1320,
	judge.Bad:     880,
}

// Click is a short decaying sine burst
func Click(sr beep.SampleRate, freq float64, length time.Duration) beep.Streamer {
	n := sr.N(length)
	i := 0
	return beep.Take(n, beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for j := range samples {
			t := float64(i) / float64(sr)
			decay := 1 - float64(i)/float64(n)
			v := 0.4 * decay * math.Sin(2*math.Pi*freq*t)
			samples[j] = [2]float64{v, v}
			i++
		}
		return len(samples), true
	}))
}

// Open decodes an mp3 or wav file
func Open(file string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(file)
	if nil != err {
		return nil, beep.Format{}, errors.Wrapf(err, "unable to open %v", file)
	}
	var streamer beep.StreamSeekCloser
	var format beep.Format
	switch strings.ToLower(filepath.Ext(file)) {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	default:
		f.Close()
		return nil, beep.Format{}, errors.Errorf("unsupported audio file %v", file)
	}
	if nil != err {
		f.Close()
		return nil, beep.Format{}, errors.Wrapf(err, "unable to decode %v", file)
	}
	return streamer, format, nil
}

// Player mixes music and clicks on the speaker
type Player struct {
	mixer  *beep.Mixer
	music  *beep.Ctrl
	clicks bool
}

// NewPlayer initializes the speaker
func NewPlayer(clicks bool) (*Player, error) {
	p := &Player{mixer: &beep.Mixer{}, clicks: clicks}
	if err := speaker.Init(SampleRate, SampleRate.N(time.Second/60)); nil != err {
		return nil, errors.Wrap(err, "unable to initialize speaker")
	}
	speaker.Play(p.mixer)
	return p, nil
}

// Music starts a stream, resampled to the speaker rate if needed
func (p *Player) Music(s beep.Streamer, format beep.Format) {
	if format.SampleRate != SampleRate {
		s = beep.Resample(4, format.SampleRate, SampleRate, s)
	}
	speaker.Lock()
	p.music = &beep.Ctrl{Streamer: s}
	p.mixer.Add(p.music)
	speaker.Unlock()
}

func (p *Player) Pause(paused bool) {
	if nil == p.music {
		return
	}
	speaker.Lock()
	p.music.Paused = paused
	speaker.Unlock()
}

// Judged clicks once for the best hit among the events
func (p *Player) Judged(events []judge.Event) {
	if !p.clicks {
		return
	}
	best := judge.Miss
	for _, e := range events {
		best = min(best, e.Grade)
	}
	if best == judge.Miss {
		return
	}
	speaker.Lock()
	p.mixer.Add(Click(SampleRate, pitches[best], 30*time.Millisecond))
	speaker.Unlock()
}

func (p *Player) Close() {
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
}
