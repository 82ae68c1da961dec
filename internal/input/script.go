package input

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Script replays a fixed list of events, keyed by tick. It drives headless
// runs and tests.
//
//	- tick: 0
//	  events:
//	    - {type: keydown, key: right}
//	- tick: 30
//	  events:
//	    - {type: quit}
type Script struct {
	steps map[uint64][]Event
	last  uint64
}

type scriptStep struct {
	Tick   uint64        `yaml:"tick"`
	Events []scriptEvent `yaml:"events"`
}

type scriptEvent struct {
	Type string `yaml:"type"`
	Key  string `yaml:"key"`
}

// NewScript builds a script from events already keyed by tick.
func NewScript(steps map[uint64][]Event) *Script {
	s := &Script{steps: make(map[uint64][]Event, len(steps))}
	for tick, events := range steps {
		s.steps[tick] = append(s.steps[tick], events...)
		s.last = max(s.last, tick)
	}
	return s
}

func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input script: %w", err)
	}
	script, err := ParseScript(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return script, nil
}

func ParseScript(data []byte) (*Script, error) {
	var raw []scriptStep
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parse input script: %w", err)
	}

	steps := make(map[uint64][]Event, len(raw))
	for _, step := range raw {
		for _, se := range step.Events {
			ev, err := se.event()
			if err != nil {
				return nil, fmt.Errorf("tick %d: %w", step.Tick, err)
			}
			steps[step.Tick] = append(steps[step.Tick], ev)
		}
	}
	return NewScript(steps), nil
}

var scriptKinds = map[string]EventKind{
	"keydown": KeyPressed,
	"keyup":   KeyReleased,
	"quit":    Quit,
}

var scriptKeys = map[string]Key{
	"up":     KeyUp,
	"down":   KeyDown,
	"left":   KeyLeft,
	"right":  KeyRight,
	"escape": KeyEscape,
}

func (se scriptEvent) event() (Event, error) {
	kind, ok := scriptKinds[strings.ToLower(se.Type)]
	if !ok {
		return Event{}, fmt.Errorf("unknown event type %q", se.Type)
	}
	if kind == Quit {
		return Event{Kind: Quit}, nil
	}

	key, ok := scriptKeys[strings.ToLower(se.Key)]
	if !ok {
		return Event{}, fmt.Errorf("unknown key %q", se.Key)
	}
	return Event{Kind: kind, Key: key}, nil
}

func (s *Script) Poll(tick uint64) []Event {
	return s.steps[tick]
}

// LastTick is the last tick that has events.
func (s *Script) LastTick() uint64 {
	return s.last
}
