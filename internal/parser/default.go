package parser

import (
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"git.lost.host/meutraa/tapline/internal/game"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultParser reads YAML charts. A file may hold several documents, one
// chart each. Timespans are written [whole, numerator, denominator] or as a
// plain beat number.
type DefaultParser struct{}

type timespan game.Timespan

func (t *timespan) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var beats float64
		if err := node.Decode(&beats); nil != err {
			return err
		}
		*t = timespan(game.At(beats))
		return nil
	case yaml.SequenceNode:
		var parts []int
		if err := node.Decode(&parts); nil != err {
			return err
		}
		if len(parts) != 3 {
			return errors.Wrapf(ErrFormat, "line %d: timespan needs 3 parts, got %d", node.Line, len(parts))
		}
		ts, err := game.NewTimespan(parts[0], parts[1], parts[2])
		if nil != err {
			return errors.Wrapf(err, "line %d", node.Line)
		}
		*t = timespan(ts)
		return nil
	}
	return errors.Wrapf(ErrFormat, "line %d: unexpected timespan", node.Line)
}

type chartDocument struct {
	Meta struct {
		Name       string `yaml:"name"`
		Level      string `yaml:"level"`
		Charter    string `yaml:"charter"`
		Composer   string `yaml:"composer"`
		Music      string `yaml:"music"`
		Background string `yaml:"background"`
	} `yaml:"meta"`
	Offset float64 `yaml:"offset"` // Seconds
	BPMs   []struct {
		Start timespan `yaml:"start"`
		Value float64  `yaml:"value"`
	} `yaml:"bpms"`
	Lines []struct {
		ID     uint `yaml:"id"`
		Events []struct {
			Type   string   `yaml:"type"`
			Begin  timespan `yaml:"begin"`
			End    timespan `yaml:"end"`
			From   float64  `yaml:"from"`
			To     float64  `yaml:"to"`
			Easing uint     `yaml:"easing"`
		} `yaml:"events"`
	} `yaml:"lines"`
	Notes []struct {
		Type  string    `yaml:"type"`
		Start timespan  `yaml:"start"`
		End   *timespan `yaml:"end"`
		X     float64   `yaml:"x"`
		Line  uint      `yaml:"line"`
	} `yaml:"notes"`
}

var noteTypes = map[string]game.NoteType{
	"tap":   game.Tap,
	"hold":  game.Hold,
	"flick": game.Flick,
	"drag":  game.Drag,
}

var eventTypes = map[string]game.EventType{
	"alpha":  game.Alpha,
	"movex":  game.MoveX,
	"movey":  game.MoveY,
	"rotate": game.Rotate,
	"speed":  game.Speed,
}

func (p *DefaultParser) Parse(file string) ([]*game.Chart, error) {
	f, err := os.Open(file)
	if nil != err {
		return nil, err
	}
	defer f.Close()

	charts, err := p.Decode(f)
	if nil != err {
		return nil, errors.Wrapf(err, "unable to parse %v", file)
	}
	return charts, nil
}

// Decode reads every chart document from r, with note times resolved.
func (p *DefaultParser) Decode(r io.Reader) ([]*game.Chart, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	charts := []*game.Chart{}
	for {
		var doc chartDocument
		err := decoder.Decode(&doc)
		if err == io.EOF {
			break
		}
		if nil != err {
			return nil, errors.Wrap(ErrFormat, err.Error())
		}
		chart, err := doc.chart()
		if nil != err {
			return nil, err
		}
		charts = append(charts, chart)
	}

	if len(charts) == 0 {
		return nil, errors.Wrap(ErrFormat, "no charts")
	}
	return charts, nil
}

func (doc *chartDocument) chart() (*game.Chart, error) {
	chart := &game.Chart{
		Metadata: game.Metadata{
			Name:       doc.Meta.Name,
			Level:      doc.Meta.Level,
			Charter:    doc.Meta.Charter,
			Composer:   doc.Meta.Composer,
			Music:      doc.Meta.Music,
			Background: doc.Meta.Background,
		},
		Offset: time.Duration(doc.Offset * float64(time.Second)),
	}

	for _, bpm := range doc.BPMs {
		chart.BPMs = append(chart.BPMs, game.BPM{Start: game.Timespan(bpm.Start), Value: bpm.Value})
	}

	for _, l := range doc.Lines {
		line := &game.Line{ID: l.ID}
		for _, e := range l.Events {
			t, ok := eventTypes[strings.ToLower(e.Type)]
			if !ok {
				return nil, errors.Wrapf(ErrFormat, "line %d: unknown event type %q", l.ID, e.Type)
			}
			line.Events = append(line.Events, game.LineEvent{
				Type:       t,
				Begin:      game.Timespan(e.Begin),
				End:        game.Timespan(e.End),
				BeginValue: e.From,
				EndValue:   e.To,
				Easing:     e.Easing,
			})
		}
		chart.Lines = append(chart.Lines, line)
	}

	for i, n := range doc.Notes {
		t, ok := noteTypes[strings.ToLower(n.Type)]
		if !ok {
			return nil, errors.Wrapf(ErrFormat, "note %d: unknown type %q", i, n.Type)
		}
		note := &game.Note{
			Type:  t,
			Start: game.Timespan(n.Start),
			End:   game.Timespan(n.Start),
			X:     n.X,
			Line:  n.Line,
		}
		if nil != n.End {
			if t != game.Hold {
				return nil, errors.Wrapf(ErrFormat, "note %d: only holds have an end", i)
			}
			note.End = game.Timespan(*n.End)
		}
		if note.End.Before(note.Start) {
			return nil, errors.Wrapf(ErrFormat, "note %d: ends before it starts", i)
		}
		if _, ok := chart.Line(note.Line); !ok {
			return nil, errors.Wrapf(ErrFormat, "note %d: unknown line %d", i, note.Line)
		}
		chart.Notes = append(chart.Notes, note)
	}

	sort.SliceStable(chart.Notes, func(i, j int) bool {
		return chart.Notes[i].Start.Before(chart.Notes[j].Start)
	})

	if err := resolve(chart); nil != err {
		return nil, err
	}
	return chart, nil
}
