package testdata

import (
	"bytes"
	_ "embed"

	"git.lost.host/meutraa/tapline/internal/game"
	"git.lost.host/meutraa/tapline/internal/parser"
)

//go:embed chart.yaml
var data []byte

// GetChart returns a fresh copy of the fixture chart, note times resolved
func GetChart() (*game.Chart, error) {
	charts, err := (&parser.DefaultParser{}).Decode(bytes.NewReader(data))
	if nil != err {
		return nil, err
	}
	return charts[0], nil
}
