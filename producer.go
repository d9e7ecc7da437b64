package live

// Handle identifies a subscription made on a Producer. Its concrete type is
// up to the producer.
type Handle any

// Producer is anything a node can subscribe to. Producers may emit absent
// values.
type Producer[T any] interface {
	Subscribe(fn func(Optional[T])) Handle
	Unsubscribe(h Handle)
}

type producerSource[T any] struct {
	producer Producer[T]
}

func (s producerSource[T]) Subscribe(fn func(any, bool)) any {
	return s.producer.Subscribe(func(o Optional[T]) {
		v, ok := o.Get()
		fn(v, ok)
	})
}

func (s producerSource[T]) Unsubscribe(handle any) {
	s.producer.Unsubscribe(handle)
}

// From wraps p in a node. The node subscribes to p only while observed and
// relays absent values to its subscribers.
// External producers get a graph of their own configured by opts; sources
// of this package stay in their graph.
func From[T any](p Producer[T], opts ...Option) *Live[T] {
	if p == nil {
		panic("live: nil source")
	}

	cfg := newConfig(opts)

	if src, ok := p.(Source[T]); ok {
		up := src.base()
		return &Live[T]{up.Runtime().NewRelay(up, cfg.name)}
	}

	r := newRuntime(cfg)

	return &Live[T]{r.NewRelay(producerSource[T]{p}, cfg.name)}
}
