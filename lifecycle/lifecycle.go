// Package lifecycle binds observers to the lifetime of a component such as a
// screen: observation starts when the component is started and stops when it
// is stopped or destroyed.
package lifecycle

import (
	"slices"
	"sync"
)

// State is a position in a component lifecycle. States are ordered: a
// component is active when it is at least Started.
type State int

const (
	Destroyed State = iota
	Initialized
	Created
	Started
	Resumed
)

func (s State) String() string {
	switch s {
	case Destroyed:
		return "destroyed"
	case Initialized:
		return "initialized"
	case Created:
		return "created"
	case Started:
		return "started"
	case Resumed:
		return "resumed"
	default:
		return "unknown"
	}
}

// IsAtLeast reports whether s is at or after other.
func (s State) IsAtLeast(other State) bool { return s >= other }

// Active reports whether observers bound to a component in this state
// should receive values.
func (s State) Active() bool { return s.IsAtLeast(Started) }

// Owner is a component with a lifecycle.
type Owner interface {
	State() State

	// AddObserver calls fn on every state change until remove is called.
	AddObserver(fn func(State)) (remove func())
}

// Registry is an Owner whose state is driven by SetState.
type Registry struct {
	mu sync.Mutex

	state     State
	observers map[int]func(State)
	nextID    int
}

func NewRegistry() *Registry {
	return &Registry{
		state:     Initialized,
		observers: make(map[int]func(State)),
	}
}

func (r *Registry) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.state
}

func (r *Registry) AddObserver(fn func(State)) func() {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextID
	r.nextID++
	r.observers[id] = fn

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()

		delete(r.observers, id)
	}
}

// SetState moves the registry to s and notifies observers in registration
// order. A destroyed registry never changes again.
func (r *Registry) SetState(s State) {
	r.mu.Lock()
	if r.state == Destroyed || r.state == s {
		r.mu.Unlock()
		return
	}
	r.state = s

	ids := make([]int, 0, len(r.observers))
	for id := range r.observers {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	fns := make([]func(State), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, r.observers[id])
	}
	r.mu.Unlock()

	// observers may add or remove observers, so they run unlocked
	for _, fn := range fns {
		fn(s)
	}
}
