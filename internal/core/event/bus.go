package event

import (
	"reflect"
	"sync"
)

// Bus is a double-buffered event bus. Events emitted while a tick runs are
// held in the back buffer and only delivered by Flush, which the simulation
// calls once the tick has finished, so subscribers never observe a partial
// tick. Delivery preserves emission order across event types.
type Bus struct {
	mu       sync.Mutex // only protects handler registration
	front    []any
	back     []any
	handlers map[reflect.Type][]any
}

func NewBus() *Bus {
	return &Bus{
		front:    make([]any, 0, 32),
		back:     make([]any, 0, 32),
		handlers: make(map[reflect.Type][]any),
	}
}

// Emit queues an event into the back buffer.
func Emit[T any](b *Bus, event T) {
	b.back = append(b.back, event)
}

// Subscribe registers a typed handler for events of type T.
func Subscribe[T any](b *Bus, fn func(T)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	t := reflect.TypeOf((*T)(nil)).Elem()
	b.handlers[t] = append(b.handlers[t], fn)
}

// Flush swaps the buffers and delivers everything emitted since the last
// Flush. Handlers that emit go into the fresh back buffer and wait for the
// following Flush.
func (b *Bus) Flush() {
	b.front, b.back = b.back, b.front[:0]
	for _, ev := range b.front {
		for _, h := range b.handlers[reflect.TypeOf(ev)] {
			callHandler(h, ev)
		}
	}
	clear(b.front)
	b.front = b.front[:0]
}

func callHandler(handler any, event any) {
	reflect.ValueOf(handler).Call([]reflect.Value{reflect.ValueOf(event)})
}
