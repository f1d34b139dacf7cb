package parser

import (
	"os"
	"strconv"
	"strings"
	"time"

	"git.lost.host/meutraa/tapline/internal/game"
	"github.com/pkg/errors"
)

// nKeyMap maps StepMania chart types to column counts
var nKeyMap = map[string]int{
	"dance-single": 4,
	"dance-solo":   6,
	"dance-double": 8,
}

// StepParser imports StepMania .sm charts. Every column becomes a lane on a
// single horizontal line whose origin sits Origin world units from the
// screen center, so columns land at increasing distances along it.
type StepParser struct {
	Origin float64 // Defaults to -8, the left edge of a 16 unit wide screen
}

type difficulty struct {
	name    string
	msd     string
	section string
	nKeys   int
}

// 0 – No note
// 1 – Normal note
// 2 – Hold head
// 3 – Hold/Roll tail
// 4 – Roll head
// M – Mine
// K – Automatic keysound
// L – Lift note
// F – Fake note

func (p *StepParser) Parse(file string) ([]*game.Chart, error) {
	data, err := os.ReadFile(file)
	if nil != err {
		return nil, err
	}
	charts, err := p.Decode(string(data))
	if nil != err {
		return nil, errors.Wrapf(err, "unable to parse %v", file)
	}
	return charts, nil
}

func (p *StepParser) origin() float64 {
	if p.Origin == 0 {
		return -8
	}
	return p.Origin
}

func (p *StepParser) Decode(data string) ([]*game.Chart, error) {
	str := strings.ReplaceAll(data, "\r", "")
	sections := strings.Split(str, "#NOTES:")
	meta := sections[0]
	difficulties := []difficulty{}
	for _, section := range sections[1:] {
		lines := strings.SplitN(section, "\n", 7)
		if len(lines) < 7 {
			return nil, errors.Wrap(ErrFormat, "truncated #NOTES section")
		}
		chartType := strings.TrimSuffix(strings.TrimSpace(lines[1]), ":")
		nKeys, ok := nKeyMap[chartType]
		if !ok {
			continue
		}
		difficulties = append(difficulties, difficulty{
			name:    strings.TrimSuffix(strings.TrimSpace(lines[3]), ":"),
			msd:     strings.TrimSuffix(strings.TrimSpace(lines[4]), ":"),
			section: strings.TrimSuffix(strings.TrimSpace(lines[6]), ";"),
			nKeys:   nKeys,
		})
	}

	metadata := game.Metadata{}
	offset := time.Duration(0)
	bpms := []game.BPM{}

	for _, mdl := range strings.Split(meta, "\n#") {
		mdl = strings.TrimPrefix(strings.TrimSpace(mdl), "#")
		key, value, ok := strings.Cut(mdl, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(value), ";"))
		switch key {
		case "TITLE":
			metadata.Name = value
		case "ARTIST":
			metadata.Composer = value
		case "CREDIT":
			metadata.Charter = value
		case "MUSIC":
			metadata.Music = value
		case "BACKGROUND":
			metadata.Background = value
		case "OFFSET":
			offs, err := strconv.ParseFloat(value, 64)
			if nil != err {
				return nil, errors.Wrapf(ErrFormat, "offset %q", value)
			}
			offset = time.Duration(-offs * float64(time.Second))
		case "BPMS":
			value = strings.ReplaceAll(value, "\n", "")
			for _, bpm := range strings.Split(value, ",") {
				as := strings.Split(strings.TrimSpace(bpm), "=")
				if len(as) != 2 {
					return nil, errors.Wrapf(ErrFormat, "bpm %q", bpm)
				}
				sb, err := strconv.ParseFloat(as[0], 64)
				if nil != err {
					return nil, errors.Wrapf(ErrFormat, "bpm beat %q", as[0])
				}
				value, err := strconv.ParseFloat(as[1], 64)
				if nil != err {
					return nil, errors.Wrapf(ErrFormat, "bpm value %q", as[1])
				}
				bpms = append(bpms, game.BPM{Start: game.At(sb), Value: value})
			}
		}
	}

	charts := []*game.Chart{}
	for _, d := range difficulties {
		chart, err := p.chart(d)
		if nil != err {
			return nil, err
		}
		chart.Metadata = metadata
		chart.Metadata.Level = strings.TrimSpace(d.name + " " + d.msd)
		chart.Offset = offset
		chart.BPMs = bpms
		if err := resolve(chart); nil != err {
			return nil, err
		}
		charts = append(charts, chart)
	}

	if len(charts) == 0 {
		return nil, errors.Wrap(ErrFormat, "no supported difficulties")
	}
	return charts, nil
}

func (p *StepParser) chart(d difficulty) (*game.Chart, error) {
	notes := []*game.Note{}
	// Open hold heads by column
	heads := make([]*game.Note, d.nKeys)

	for measure, block := range strings.Split(d.section, ",") {
		rows := []string{}
		for _, l := range strings.Split(block, "\n") {
			if strings.HasPrefix(strings.TrimSpace(l), "//") {
				continue
			}
			l = strings.TrimSpace(l)
			if len(l) >= d.nKeys {
				rows = append(rows, l)
			}
		}

		// 4 beats per measure, spread over the rows
		for i, row := range rows {
			at, err := game.NewTimespan(4*measure, 4*i, len(rows))
			if nil != err {
				return nil, err
			}
			for column, c := range []byte(row[:d.nKeys]) {
				switch c {
				case '1':
					notes = append(notes, p.note(game.Tap, at, column, d.nKeys))
				case '2', '4':
					head := p.note(game.Hold, at, column, d.nKeys)
					heads[column] = head
					notes = append(notes, head)
				case '3':
					head := heads[column]
					if nil == head {
						return nil, errors.Wrapf(ErrFormat, "measure %d: hold tail without head in column %d", measure, column)
					}
					head.End = at
					heads[column] = nil
				}
			}
		}
	}

	return &game.Chart{
		Notes: notes,
		Lines: []*game.Line{{
			ID: 0,
			Events: []game.LineEvent{
				{Type: game.MoveX, BeginValue: p.origin(), EndValue: p.origin()},
			},
		}},
	}, nil
}

// Lane centers are spread over [0, 2], measured from the line origin
func (p *StepParser) note(t game.NoteType, at game.Timespan, column, nKeys int) *game.Note {
	return &game.Note{
		Type:  t,
		Start: at,
		End:   at,
		X:     float64(2*column+1) / float64(nKeys),
		Line:  0,
	}
}
