package config

import (
	"testing"
	"time"

	"git.lost.host/meutraa/tapline/internal/judge"
	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"gopkg.in/alecthomas/kingpin.v2"
)

func parse(t *testing.T, args ...string) (*Config, error) {
	t.Helper()
	app := kingpin.New("tapline", "")
	c := Register(app)
	if _, err := app.Parse(args); nil != err {
		t.Fatal(err)
	}
	return c, c.Validate()
}

func TestDefaults(t *testing.T) {
	c, err := parse(t)
	if nil != err {
		t.Fatal(err)
	}
	if diff := cmp.Diff(judge.DefaultConfig(), c.Judge()); diff != "" {
		t.Errorf("(-expected +got)\n%s", diff)
	}
	if diff := cmp.Diff([]float64{0.25, 0.75, 1.25, 1.75}, c.Lanes); diff != "" {
		t.Errorf("(-expected +got)\n%s", diff)
	}
	if c.Database != "./replays.db" || !c.Sound || c.Autoplay {
		t.Errorf("unexpected defaults %+v", c)
	}
}

func TestFlags(t *testing.T) {
	c, err := parse(t, "--perfect=50ms", "-a", "--keys=ab", "--lanes=0.5, 1.5", "-c", "song")
	if nil != err {
		t.Fatal(err)
	}
	if c.Perfect != 50*time.Millisecond || !c.Autoplay || c.Chart != "song" {
		t.Errorf("unexpected config %+v", c)
	}
	if diff := cmp.Diff([]float64{0.5, 1.5}, c.Lanes); diff != "" {
		t.Errorf("(-expected +got)\n%s", diff)
	}
}

func TestEnvar(t *testing.T) {
	t.Setenv("TAPLINE_BAD", "400ms")
	c, err := parse(t)
	if nil != err {
		t.Fatal(err)
	}
	if c.Bad != 400*time.Millisecond {
		t.Errorf("expected the environment to set bad, got %v", c.Bad)
	}
}

func TestInvalid(t *testing.T) {
	tests := map[string][]string{
		"windows":    {"--perfect=200ms"},
		"note width": {"--note-width=0"},
		"lane count": {"--keys=abc"},
		"lane value": {"--lanes=a,b,c,d"},
		"sustain":    {"--sustain=0s"},
	}
	for name, args := range tests {
		_, err := parse(t, args...)
		if !errors.Is(err, ErrInvalid) && !errors.Is(err, judge.ErrInvalidConfig) {
			t.Errorf("%s: expected an invalid config, got %v", name, err)
		}
	}
}
