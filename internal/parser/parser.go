package parser

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"git.lost.host/meutraa/tapline/internal/game"
	"github.com/pkg/errors"
)

// ErrFormat is returned for chart files that cannot be understood
var ErrFormat = errors.New("malformed chart")

type Parser interface {
	Parse(file string) ([]*game.Chart, error)
}

// ForFile picks a parser from the chart file extension
func ForFile(file string) (Parser, error) {
	switch strings.ToLower(path.Ext(file)) {
	case ".yaml", ".yml":
		return &DefaultParser{}, nil
	case ".sm":
		return &StepParser{}, nil
	}
	return nil, errors.Errorf("no parser for %v", file)
}

// Find walks a song directory for a chart file and an audio file.
func Find(directory string) (chartFile, audioFile string, err error) {
	if err := filepath.Walk(directory, func(p string, info os.FileInfo, err error) error {
		if nil != err {
			return err
		}
		switch strings.ToLower(path.Ext(info.Name())) {
		case ".mp3", ".wav":
			audioFile = p
		case ".yaml", ".yml", ".sm":
			chartFile = p
		}
		return nil
	}); nil != err {
		return "", "", errors.Wrap(err, "unable to walk song directory")
	}

	if chartFile == "" {
		return "", "", errors.Errorf("unable to find a chart in %v", directory)
	}
	return chartFile, audioFile, nil
}

// resolve fills note times from the chart tempo
func resolve(c *game.Chart) error {
	tl, err := c.Timeline()
	if nil != err {
		return err
	}
	c.Resolve(tl)
	return nil
}
