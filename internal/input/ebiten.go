package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var ebitenKeys = map[ebiten.Key]Key{
	ebiten.KeyArrowUp:    KeyUp,
	ebiten.KeyArrowDown:  KeyDown,
	ebiten.KeyArrowLeft:  KeyLeft,
	ebiten.KeyArrowRight: KeyRight,
	ebiten.KeyEscape:     KeyEscape,
}

// EbitenPoller reads key transitions from ebiten. It must be polled from
// Game.Update. Releases are reported before presses, so a key swap within
// one tick resolves to the newly pressed key.
type EbitenPoller struct {
	keys []ebiten.Key
}

func (p *EbitenPoller) Poll(tick uint64) []Event {
	var events []Event

	if ebiten.IsWindowBeingClosed() {
		events = append(events, Event{Kind: Quit})
	}

	p.keys = inpututil.AppendJustReleasedKeys(p.keys[:0])
	for _, k := range p.keys {
		if key, ok := ebitenKeys[k]; ok {
			events = append(events, Event{Kind: KeyReleased, Key: key})
		}
	}

	p.keys = inpututil.AppendJustPressedKeys(p.keys[:0])
	for _, k := range p.keys {
		if key, ok := ebitenKeys[k]; ok {
			events = append(events, Event{Kind: KeyPressed, Key: key})
		}
	}

	return events
}
