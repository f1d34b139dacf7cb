package config

import (
	"strconv"
	"strings"
	"time"

	"git.lost.host/meutraa/tapline/internal/judge"
	"git.lost.host/meutraa/tapline/internal/screen"
	"github.com/pkg/errors"
	"gopkg.in/alecthomas/kingpin.v2"
)

var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	Chart string // Chart file or song directory
	Index int

	Perfect, Good, Bad time.Duration
	NoteWidth          float64
	Autoplay           bool

	FramePeriod time.Duration
	Delay       time.Duration
	WorldWidth  float64

	Keys    string
	lanes   string
	Lanes   []float64 // Parsed by Validate
	Sustain time.Duration
	Repeat  time.Duration

	Sound    bool
	Database string
	Verbose  bool
}

// Register binds every flag onto the returned Config. The values are only
// set once the application has parsed its arguments.
func Register(app *kingpin.Application) *Config {
	c := &Config{}
	def := judge.DefaultConfig()

	app.Flag("chart", "Chart file, or a song directory containing one").Short('c').Envar("TAPLINE_CHART").StringVar(&c.Chart)
	app.Flag("index", "Chart to play when the file holds several").Short('i').Default("0").Envar("TAPLINE_INDEX").IntVar(&c.Index)
	app.Flag("perfect", "Perfect judgement window").Default(def.Perfect.String()).Envar("TAPLINE_PERFECT").DurationVar(&c.Perfect)
	app.Flag("good", "Good judgement window").Default(def.Good.String()).Envar("TAPLINE_GOOD").DurationVar(&c.Good)
	app.Flag("bad", "Bad judgement window").Default(def.Bad.String()).Envar("TAPLINE_BAD").DurationVar(&c.Bad)
	app.Flag("note-width", "Note width in world units").Default(strconv.FormatFloat(def.NoteWidth, 'f', -1, 64)).Envar("TAPLINE_NOTE_WIDTH").Float64Var(&c.NoteWidth)
	app.Flag("autoplay", "Judge every note perfect at its time").Short('a').Envar("TAPLINE_AUTOPLAY").BoolVar(&c.Autoplay)
	app.Flag("frame-period", "Render frame period").Default("4ms").Short('p').Envar("TAPLINE_FRAME_PERIOD").DurationVar(&c.FramePeriod)
	app.Flag("delay", "Start delay").Default("1.5s").Short('d').Envar("TAPLINE_DELAY").DurationVar(&c.Delay)
	app.Flag("world-width", "World units across the terminal").Default(strconv.FormatFloat(screen.DefaultWorldWidth, 'f', -1, 64)).Envar("TAPLINE_WORLD_WIDTH").Float64Var(&c.WorldWidth)
	app.Flag("keys", "Lane keys, left to right").Default("dfjk").Short('k').Envar("TAPLINE_KEYS").StringVar(&c.Keys)
	app.Flag("lanes", "Comma separated note position of each key").Default("0.25,0.75,1.25,1.75").Envar("TAPLINE_LANES").StringVar(&c.lanes)
	app.Flag("sustain", "How long a key press stays touching, longer than the keyboard repeat delay").Default("550ms").Envar("TAPLINE_SUSTAIN").DurationVar(&c.Sustain)
	app.Flag("repeat", "Presses closer than this are keyboard autorepeat").Default("80ms").Envar("TAPLINE_REPEAT").DurationVar(&c.Repeat)
	app.Flag("sound", "Play the music and a click on every hit").Default("true").Envar("TAPLINE_SOUND").BoolVar(&c.Sound)
	app.Flag("database", "Replay database").Default("./replays.db").Envar("TAPLINE_DATABASE").StringVar(&c.Database)
	app.Flag("verbose", "Log every judgement").Short('v').Envar("TAPLINE_VERBOSE").BoolVar(&c.Verbose)
	return c
}

// Validate checks the values and parses the lane positions
func (c *Config) Validate() error {
	if err := c.Judge().Validate(); nil != err {
		return err
	}
	if c.Index < 0 {
		return errors.Wrapf(ErrInvalid, "chart index %v", c.Index)
	}
	if c.FramePeriod <= 0 || c.WorldWidth <= 0 || c.Sustain <= 0 {
		return errors.Wrap(ErrInvalid, "frame period, world width and sustain must be positive")
	}

	c.Lanes = c.Lanes[:0]
	for _, field := range strings.Split(c.lanes, ",") {
		x, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if nil != err {
			return errors.Wrapf(ErrInvalid, "lane position %q", field)
		}
		c.Lanes = append(c.Lanes, x)
	}
	if keys := []rune(c.Keys); len(keys) != len(c.Lanes) {
		return errors.Wrapf(ErrInvalid, "%d keys for %d lanes", len(keys), len(c.Lanes))
	}
	return nil
}

func (c *Config) Judge() judge.Config {
	return judge.Config{
		Perfect:   c.Perfect,
		Good:      c.Good,
		Bad:       c.Bad,
		NoteWidth: c.NoteWidth,
		Autoplay:  c.Autoplay,
	}
}
