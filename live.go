// Package live provides lazily-active observable values.
//
// A Mutable holds one current value. Map, NonNull, Filter, Single and Apply
// derive read-only nodes from it; a derived node only subscribes to its source
// while somebody observes it. Nodes are in state mode by default and replay
// their current value to new observers. Nodes derived with Single, and every
// node derived from those, are in single mode and only deliver values emitted
// after an observer attached.
package live

import "github.com/AnatoleLucet/live/internal"

func as[T any](v any) T {
	if v == nil {
		var zero T
		return zero
	}

	return v.(T)
}

func newRuntime(cfg config) *internal.Runtime {
	var recorder internal.Recorder
	if cfg.metrics != nil {
		recorder = cfg.metrics
	}

	return internal.NewRuntime(cfg.logger, recorder)
}

// Source is a value holder built by this package. It can be observed and
// used as the input of Map, NonNull, Filter, Single and Apply.
type Source[T any] interface {
	Producer[T]
	Observe(fn func(T)) *Observer

	base() *internal.Node
}

// Live is a read-only observable value. It subscribes to its source only
// while it has observers.
type Live[T any] struct {
	node *internal.Node
}

func (l *Live[T]) base() *internal.Node { return l.node }

// Observe calls fn with every value delivered to this node until the
// returned observer is disposed. In state mode fn first receives the current
// value, if any. In single mode fn only receives values emitted after this call.
func (l *Live[T]) Observe(fn func(T)) *Observer {
	link := l.node.Attach(func(v any, present bool) {
		if present {
			fn(as[T](v))
		}
	})

	return &Observer{node: l.node, link: link}
}

// Subscribe is like Observe but also passes absent values along.
func (l *Live[T]) Subscribe(fn func(Optional[T])) Handle {
	link := l.node.Attach(func(v any, present bool) {
		fn(optionalOf[T](v, present))
	})

	return &Observer{node: l.node, link: link}
}

// Unsubscribe disposes a handle returned by Subscribe.
func (l *Live[T]) Unsubscribe(h Handle) {
	if o, ok := h.(*Observer); ok && o.node == l.node {
		o.Dispose()
	}
}

// Value returns the current value.
func (l *Live[T]) Value() (T, bool) {
	v, ok := l.node.Value()
	return as[T](v), ok
}

// Version returns the version delivery decisions are made against.
func (l *Live[T]) Version() int { return l.node.Version() }

// IsSingle reports whether this node delivers values as one-shot events.
func (l *Live[T]) IsSingle() bool { return l.node.IsSingle() }

// IsActive reports whether the node has at least one observer.
func (l *Live[T]) IsActive() bool { return l.node.IsActive() }

// Observers returns the number of attached observers, derived nodes included.
func (l *Live[T]) Observers() int { return l.node.Listeners() }

// Observer is the registration of a callback on a node.
type Observer struct {
	node *internal.Node
	link *internal.Link
}

// Dispose detaches the callback. Disposing twice does nothing.
func (o *Observer) Dispose() {
	o.node.Detach(o.link)
}

// Mutable is a root value that can be written to.
type Mutable[T any] struct {
	*Live[T]
}

// NewMutable creates a root with no value. It starts a new graph configured
// by opts.
func NewMutable[T any](opts ...Option) *Mutable[T] {
	cfg := newConfig(opts)
	r := newRuntime(cfg)

	return &Mutable[T]{&Live[T]{r.NewRoot(cfg.name)}}
}

// NewMutableOf creates a root holding initial.
func NewMutableOf[T any](initial T, opts ...Option) *Mutable[T] {
	m := NewMutable[T](opts...)
	m.Set(initial)
	return m
}

// Set writes v and notifies observers synchronously.
func (m *Mutable[T]) Set(v T) {
	m.node.Write(v, true)
}

// Unset writes an absent value. Observers are not called, but derived nodes
// and subscribers receive it.
func (m *Mutable[T]) Unset() {
	m.node.Write(nil, false)
}
