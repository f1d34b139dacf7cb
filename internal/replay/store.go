package replay

import (
	"crypto/sha256"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"git.lost.host/meutraa/tapline/internal/game"
	"git.lost.host/meutraa/tapline/internal/judge"
	"git.lost.host/meutraa/tapline/internal/screen"
	"git.lost.host/meutraa/tapline/internal/touch"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("replay not found")

// Store keeps replays in a sqlite database
type Store struct {
	db *sql.DB
}

type storedFrame struct {
	T int64        `json:"t"`           // Nanoseconds
	P [][3]float64 `json:"p,omitempty"` // x, y, phase
}

func compactFrames(frames []Frame) []storedFrame {
	out := make([]storedFrame, len(frames))
	for i, f := range frames {
		out[i].T = int64(f.Time)
		for _, raw := range f.Touches {
			out[i].P = append(out[i].P, [3]float64{raw.Position.X, raw.Position.Y, float64(raw.Phase)})
		}
	}
	return out
}

func uncompactFrames(stored []storedFrame) []Frame {
	out := make([]Frame, len(stored))
	for i, f := range stored {
		out[i].Time = time.Duration(f.T)
		for _, p := range f.P {
			out[i].Touches = append(out[i].Touches, touch.Raw{
				Position: touch.Point{X: p[0], Y: p[1]},
				Phase:    touch.Phase(p[2]),
			})
		}
	}
	return out
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if nil != err {
		return nil, errors.Wrapf(err, "unable to open %v", path)
	}

	initStatement := `
	create table if not exists replays
	  (
		  id text not null primary key,
		  sum text not null,
		  created integer not null,
		  config text not null,
		  screen text not null,
		  frames blob not null
	  );
	create index if not exists replays_sum on replays(sum);
	`
	if _, err := db.Exec(initStatement); nil != err {
		db.Close()
		return nil, errors.Wrap(err, "unable to create replay table")
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Hash identifies a chart by its notes and tempo
func Hash(c *game.Chart) string {
	h := sha256.New()
	fmt.Fprintf(h, "%d\n", c.Offset)
	for _, bpm := range c.BPMs {
		fmt.Fprintf(h, "%v=%v\n", bpm.Start.Beats, bpm.Value)
	}
	for _, n := range c.Notes {
		fmt.Fprintf(h, "%v %v %v %v %v\n", n.Type, n.Start.Beats, n.End.Beats, n.X, n.Line)
	}
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

// Save stores the frames, compacted, and returns the new replay id. The
// touches are in the coordinates of the given screen.
func (s *Store) Save(c *game.Chart, cfg judge.Config, sc screen.Adapter, frames []Frame) (string, error) {
	data, err := json.Marshal(compactFrames(Compact(frames)))
	if nil != err {
		return "", errors.Wrap(err, "unable to marshal frames")
	}
	config, err := json.Marshal(cfg)
	if nil != err {
		return "", errors.Wrap(err, "unable to marshal config")
	}
	size, err := json.Marshal(sc)
	if nil != err {
		return "", errors.Wrap(err, "unable to marshal screen")
	}

	id := uuid.NewString()
	_, err = s.db.Exec(
		"insert into replays(id, sum, created, config, screen, frames) values(?, ?, ?, ?, ?, ?)",
		id, Hash(c), time.Now().UnixNano(), string(config), string(size), data,
	)
	if nil != err {
		return "", errors.Wrap(err, "unable to save replay")
	}
	return id, nil
}

// Load returns every replay of the chart, oldest first
func (s *Store) Load(c *game.Chart) ([]Replay, error) {
	rows, err := s.db.Query("select id, sum, created, config, screen, frames from replays where sum = ? order by created, rowid", Hash(c))
	if nil != err {
		return nil, errors.Wrap(err, "unable to load replays")
	}
	defer rows.Close()

	replays := []Replay{}
	for rows.Next() {
		r, err := scan(rows)
		if nil != err {
			return nil, err
		}
		replays = append(replays, r)
	}
	return replays, errors.Wrap(rows.Err(), "unable to load replays")
}

func (s *Store) Get(id string) (Replay, error) {
	row := s.db.QueryRow("select id, sum, created, config, screen, frames from replays where id = ?", id)
	r, err := scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Replay{}, errors.Wrap(ErrNotFound, id)
	}
	return r, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(row scanner) (Replay, error) {
	var r Replay
	var created int64
	var config, size string
	var data []byte
	if err := row.Scan(&r.ID, &r.Sum, &created, &config, &size, &data); nil != err {
		return Replay{}, err
	}
	r.Created = time.Unix(0, created)

	if err := json.Unmarshal([]byte(config), &r.Config); nil != err {
		return Replay{}, errors.Wrapf(err, "replay %v: unable to unmarshal config", r.ID)
	}
	if err := json.Unmarshal([]byte(size), &r.Screen); nil != err {
		return Replay{}, errors.Wrapf(err, "replay %v: unable to unmarshal screen", r.ID)
	}
	var stored []storedFrame
	if err := json.Unmarshal(data, &stored); nil != err {
		return Replay{}, errors.Wrapf(err, "replay %v: unable to unmarshal frames", r.ID)
	}
	r.Frames = uncompactFrames(stored)
	return r, nil
}
