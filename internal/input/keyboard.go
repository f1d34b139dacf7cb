package input

import (
	"time"

	"github.com/eiannone/keyboard"
	"github.com/pkg/errors"
)

// Keyboard reads key events from the terminal
type Keyboard struct {
	events <-chan keyboard.KeyEvent
	close  func() error
}

func OpenKeyboard() (*Keyboard, error) {
	events, err := keyboard.GetKeys(128)
	if nil != err {
		return nil, errors.Wrap(err, "unable to open keyboard")
	}
	return &Keyboard{events: events, close: keyboard.Close}, nil
}

func (kb *Keyboard) Close() error {
	return kb.close()
}

type Command uint8

const (
	None Command = iota
	Pause
	Quit
)

// Drain feeds every pending key event into keys without blocking. It stops
// early on escape or ctrl-c (Quit) and on enter (Pause).
func (kb *Keyboard) Drain(keys *Keys, now time.Duration) (Command, error) {
	for {
		select {
		case ev, ok := <-kb.events:
			if !ok {
				return Quit, nil
			}
			if nil != ev.Err {
				return None, errors.Wrap(ev.Err, "unable to read key")
			}
			switch ev.Key {
			case keyboard.KeyEsc, keyboard.KeyCtrlC:
				return Quit, nil
			case keyboard.KeyEnter:
				return Pause, nil
			case keyboard.KeySpace:
				keys.Press(' ', now)
			default:
				keys.Press(ev.Rune, now)
			}
		default:
			return None, nil
		}
	}
}

// Wait blocks until any key is pressed
func (kb *Keyboard) Wait() (keyboard.KeyEvent, error) {
	ev, ok := <-kb.events
	if !ok {
		return ev, errors.New("keyboard closed")
	}
	return ev, ev.Err
}
