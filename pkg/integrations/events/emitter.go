// Package events provides the default event dispatcher integration,
// registered under the type identifier "events.emitter".
//
// Listeners are called synchronously, in registration order, on the
// goroutine that emits.
package events

import (
	"context"
	stderrors "errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spidergraph/spider/pkg/config"
	"github.com/spidergraph/spider/pkg/ioc"
	"github.com/spidergraph/spider/pkg/logger"
)

// TypeName is the identifier the emitter registers under.
const TypeName = config.EventsType

// Event is one emitted occurrence.
type Event struct {
	ID        string
	Name      string
	Payload   interface{}
	Timestamp time.Time
}

// Listener handles an event. A returned error does not stop the remaining
// listeners; Emit joins every error it sees.
type Listener func(ctx context.Context, event Event) error

type registration struct {
	id       string
	listener Listener
	once     bool
}

// Emitter dispatches named events to listeners. It is safe for concurrent
// use.
type Emitter struct {
	mu        sync.RWMutex
	listeners map[string][]registration
	logger    *zap.Logger
}

func init() {
	if err := ioc.RegisterType(TypeName, func() (interface{}, error) {
		return NewEmitter(), nil
	}); err != nil {
		panic(err)
	}
}

// NewEmitter creates an emitter with no listeners.
func NewEmitter() *Emitter {
	return &Emitter{
		listeners: make(map[string][]registration),
		logger:    logger.Get().With(zap.String("component", "events")),
	}
}

// On registers l for name and returns a function removing it.
func (e *Emitter) On(name string, l Listener) func() {
	return e.add(name, l, false)
}

// Once registers l for the next emission of name only.
func (e *Emitter) Once(name string, l Listener) func() {
	return e.add(name, l, true)
}

func (e *Emitter) add(name string, l Listener, once bool) func() {
	id := uuid.NewString()

	e.mu.Lock()
	e.listeners[name] = append(e.listeners[name], registration{id: id, listener: l, once: once})
	e.mu.Unlock()

	return func() { e.remove(name, id) }
}

func (e *Emitter) remove(name, id string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	regs := e.listeners[name]
	for i, r := range regs {
		if r.id == id {
			e.listeners[name] = append(regs[:i:i], regs[i+1:]...)
			break
		}
	}
	if len(e.listeners[name]) == 0 {
		delete(e.listeners, name)
	}
}

// Emit calls every listener registered for name with a new event carrying
// payload and returns the event.
func (e *Emitter) Emit(ctx context.Context, name string, payload interface{}) (Event, error) {
	event := Event{
		ID:        uuid.NewString(),
		Name:      name,
		Payload:   payload,
		Timestamp: time.Now(),
	}

	e.mu.Lock()
	regs := append([]registration(nil), e.listeners[name]...)
	kept := e.listeners[name][:0:0]
	for _, r := range e.listeners[name] {
		if !r.once {
			kept = append(kept, r)
		}
	}
	if len(kept) == 0 {
		delete(e.listeners, name)
	} else {
		e.listeners[name] = kept
	}
	e.mu.Unlock()

	var errs []error
	for _, r := range regs {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := r.listener(ctx, event); err != nil {
			e.logger.Warn("listener failed",
				zap.String("event", name),
				zap.String("event_id", event.ID),
				zap.Error(err))
			errs = append(errs, fmt.Errorf("listener for %s: %w", name, err))
		}
	}

	return event, stderrors.Join(errs...)
}

// ListenerCount returns how many listeners are registered for name.
func (e *Emitter) ListenerCount(name string) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.listeners[name])
}

// EventNames returns the names with at least one listener, sorted.
func (e *Emitter) EventNames() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	names := make([]string, 0, len(e.listeners))
	for name := range e.listeners {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RemoveAll drops the listeners of name, or of every event when name is
// empty.
func (e *Emitter) RemoveAll(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if name == "" {
		e.listeners = make(map[string][]registration)
		return
	}
	delete(e.listeners, name)
}
