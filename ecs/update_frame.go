package ecs

import "reflect"

// UpdateFrame is the per-tick context handed to every system.
// It is rebuilt for each tick, so messages posted to it never outlive the tick.
type UpdateFrame struct {
	DeltaTime float64
	Tick      uint64
	Commands  *Commands
	Storage   *Storage

	messages map[reflect.Type]any
}

func newUpdateFrame(dt float64, tick uint64, storage *Storage) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Tick:      tick,
		Commands:  newCommands(),
		Storage:   storage,
	}
}

// Post stores a message for the rest of this tick. There is one slot per
// message type; posting again replaces the previous message.
func (f *UpdateFrame) Post(msg any) {
	if msg == nil {
		return
	}
	if f.messages == nil {
		f.messages = make(map[reflect.Type]any, 1)
	}
	f.messages[reflect.TypeOf(msg)] = msg
}

// ReadMessage returns the message of type T posted for this tick.
func ReadMessage[T any](frame *UpdateFrame) (T, bool) {
	msg, ok := frame.messages[reflect.TypeFor[T]()].(T)
	return msg, ok
}
