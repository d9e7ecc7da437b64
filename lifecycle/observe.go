package lifecycle

import (
	"sync"

	"github.com/AnatoleLucet/live"
)

// Binding ties an observer to an Owner.
type Binding struct {
	mu sync.Mutex

	attach   func() *live.Observer
	observer *live.Observer
	remove   func()
	disposed bool
}

// Observe calls fn with the values of src while owner is active. The
// observer is detached when owner stops and attached again when it restarts;
// it is removed for good when owner is destroyed. Nothing happens when owner
// is already destroyed.
func Observe[T any](owner Owner, src live.Source[T], fn func(T)) *Binding {
	b := &Binding{
		attach: func() *live.Observer { return src.Observe(fn) },
	}

	state := owner.State()
	if state == Destroyed {
		b.disposed = true
		return b
	}

	b.remove = owner.AddObserver(b.sync)
	b.sync(state)

	return b
}

func (b *Binding) sync(s State) {
	if s == Destroyed {
		b.Dispose()
		return
	}

	b.mu.Lock()
	if b.disposed {
		b.mu.Unlock()
		return
	}

	var attach bool
	var detach *live.Observer
	switch {
	case s.Active() && b.observer == nil:
		attach = true
	case !s.Active() && b.observer != nil:
		detach = b.observer
		b.observer = nil
	}
	b.mu.Unlock()

	// attaching may deliver synchronously, so the callback runs unlocked
	if attach {
		o := b.attach()

		b.mu.Lock()
		if b.disposed {
			b.mu.Unlock()
			o.Dispose()
			return
		}
		b.observer = o
		b.mu.Unlock()
	}
	if detach != nil {
		detach.Dispose()
	}
}

// Active reports whether the binding currently observes its source.
func (b *Binding) Active() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.observer != nil
}

// Dispose detaches the observer and stops following the owner.
func (b *Binding) Dispose() {
	b.mu.Lock()
	if b.disposed {
		b.mu.Unlock()
		return
	}
	b.disposed = true

	observer, remove := b.observer, b.remove
	b.observer = nil
	b.mu.Unlock()

	if observer != nil {
		observer.Dispose()
	}
	if remove != nil {
		remove()
	}
}
