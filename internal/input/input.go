// Package input turns raw keyboard and window events into movement commands.
package input

import "github.com/plus3/spritewalk/internal/components"

//go:generate go tool stringer -type=Key,EventKind -linecomment -output=input_string.go

type Key int

const (
	KeyUnknown Key = iota // unknown
	KeyUp                 // up
	KeyDown               // down
	KeyLeft               // left
	KeyRight              // right
	KeyEscape             // escape
)

// Direction maps an arrow key to its direction.
func (k Key) Direction() (components.Direction, bool) {
	switch k {
	case KeyUp:
		return components.Up, true
	case KeyDown:
		return components.Down, true
	case KeyLeft:
		return components.Left, true
	case KeyRight:
		return components.Right, true
	}
	return 0, false
}

type EventKind int

const (
	KeyPressed  EventKind = iota // keydown
	KeyReleased                  // keyup
	Quit                         // quit
)

// Event is a single input occurrence. Key is ignored for Quit.
type Event struct {
	Kind EventKind
	Key  Key
}

// Source yields the events pending at the start of a tick.
type Source interface {
	Poll(tick uint64) []Event
}

// Translate folds one poll's events into at most one movement command.
// A Quit event or an Escape press stops processing and reports quit.
// Otherwise the last arrow event wins: a press moves, a release stops.
func Translate(events []Event) (cmd components.MovementCommand, ok bool, quit bool) {
	for _, ev := range events {
		switch ev.Kind {
		case Quit:
			return components.MovementCommand{}, false, true
		case KeyPressed:
			if ev.Key == KeyEscape {
				return components.MovementCommand{}, false, true
			}
			if d, arrow := ev.Key.Direction(); arrow {
				cmd, ok = components.Move(d), true
			}
		case KeyReleased:
			if _, arrow := ev.Key.Direction(); arrow {
				cmd, ok = components.Stop(), true
			}
		}
	}
	return cmd, ok, false
}
