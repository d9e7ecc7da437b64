package internal

import (
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type fakeSource struct {
	log []string
	fns map[int]func(any, bool)
	seq int
}

func newFakeSource() *fakeSource {
	return &fakeSource{fns: make(map[int]func(any, bool))}
}

func (s *fakeSource) Subscribe(fn func(any, bool)) any {
	s.seq++
	s.fns[s.seq] = fn
	s.log = append(s.log, "subscribe")
	return s.seq
}

func (s *fakeSource) Unsubscribe(handle any) {
	delete(s.fns, handle.(int))
	s.log = append(s.log, "unsubscribe")
}

func (s *fakeSource) emit(v any, present bool) {
	for _, fn := range s.fns {
		fn(v, present)
	}
}

func newTestRuntime() *Runtime {
	return NewRuntime(zerolog.Nop(), nil)
}

func TestNode(t *testing.T) {
	t.Run("subscribes lazily at the zero boundary", func(t *testing.T) {
		src := newFakeSource()
		n := newTestRuntime().NewNode(src, IdentityOperator{}, false, "")

		assert.Empty(t, src.log)

		a := n.Attach(func(any, bool) {})
		b := n.Attach(func(any, bool) {})
		n.Detach(a)
		assert.Equal(t, []string{"subscribe"}, src.log)

		n.Detach(b)
		assert.Equal(t, []string{"subscribe", "unsubscribe"}, src.log)

		n.Detach(b)
		assert.Equal(t, []string{"subscribe", "unsubscribe"}, src.log)
		assert.False(t, n.IsActive())
	})

	t.Run("suppressed emissions keep the version", func(t *testing.T) {
		src := newFakeSource()
		n := newTestRuntime().NewNode(src, NonNullOperator{}, false, "")
		n.Attach(func(any, bool) {})

		src.emit(1, true)
		assert.Equal(t, 1, n.Version())

		src.emit(nil, false)
		assert.Equal(t, 1, n.Version())

		src.emit(2, true)
		assert.Equal(t, 2, n.Version())
	})

	t.Run("state node replays to late listeners", func(t *testing.T) {
		log := []string{}
		root := newTestRuntime().NewRoot("")
		root.Write("a", true)

		root.Attach(func(v any, _ bool) { log = append(log, fmt.Sprintf("first %v", v)) })
		root.Write("b", true)
		root.Attach(func(v any, _ bool) { log = append(log, fmt.Sprintf("second %v", v)) })

		assert.Equal(t, []string{"first a", "first b", "second b"}, log)
	})

	t.Run("single node only delivers newer versions", func(t *testing.T) {
		log := []string{}
		root := newTestRuntime().NewRoot("")
		root.Write("stale", true)

		single := root.Runtime().NewNode(root, IdentityOperator{}, true, "")
		single.Attach(func(v any, _ bool) { log = append(log, fmt.Sprintf("first %v", v)) })
		root.Write("x", true)
		single.Attach(func(v any, _ bool) { log = append(log, fmt.Sprintf("second %v", v)) })
		root.Write("y", true)

		assert.Equal(t, []string{"first x", "first y", "second y"}, log)
	})

	t.Run("derived nodes of a single node share its version", func(t *testing.T) {
		root := newTestRuntime().NewRoot("")
		r := root.Runtime()

		single := r.NewNode(root, IdentityOperator{}, true, "")
		mapped := r.NewNode(single, MapOperator{Fn: func(v any) (any, bool) { return v.(int) * 2, true }}, false, "")
		filtered := r.NewNode(mapped, FilterOperator{Pred: func(v any) bool { return v.(int) > 4 }}, false, "")

		assert.True(t, mapped.IsSingle())
		assert.True(t, filtered.IsSingle())

		got := []any{}
		filtered.Attach(func(v any, _ bool) { got = append(got, v) })

		root.Write(1, true)
		root.Write(3, true)
		root.Write(2, true)

		assert.Equal(t, []any{6}, got)
		assert.Equal(t, single.Version(), filtered.Version())
		assert.Equal(t, 3, filtered.Version())
	})

	t.Run("listener writing back stops the stale fan-out", func(t *testing.T) {
		log := []string{}
		root := newTestRuntime().NewRoot("")

		root.Attach(func(v any, _ bool) {
			log = append(log, fmt.Sprintf("a %v", v))
			if v == 1 {
				root.Write(2, true)
			}
		})
		root.Attach(func(v any, _ bool) { log = append(log, fmt.Sprintf("b %v", v)) })

		root.Write(1, true)

		assert.Equal(t, []string{"a 1", "a 2", "b 2"}, log)
	})

	t.Run("links attached during fan-out are skipped", func(t *testing.T) {
		log := []string{}
		root := newTestRuntime().NewRoot("")

		root.Attach(func(v any, _ bool) {
			log = append(log, fmt.Sprintf("a %v", v))
			if v == 1 {
				root.Attach(func(v any, _ bool) { log = append(log, fmt.Sprintf("late %v", v)) })
			}
		})

		root.Write(1, true)

		assert.Equal(t, []string{"a 1", "late 1"}, log)
	})

	t.Run("panicking source rolls the gate back", func(t *testing.T) {
		root := newTestRuntime().NewRoot("")
		root.Write(0, true)
		n := root.Runtime().NewNode(root, MapOperator{Fn: func(any) (any, bool) { panic("boom") }}, false, "")

		assert.Panics(t, func() { n.Attach(func(any, bool) {}) })
		assert.False(t, n.IsActive())
		assert.Equal(t, 0, root.Listeners())
	})

	t.Run("relay stores absent values", func(t *testing.T) {
		src := newFakeSource()
		n := newTestRuntime().NewRelay(src, "")

		got := []bool{}
		n.Attach(func(_ any, present bool) { got = append(got, present) })

		src.emit(1, true)
		src.emit(nil, false)

		assert.Equal(t, []bool{true, false}, got)
		assert.Equal(t, 2, n.Version())
	})

	t.Run("nil source panics", func(t *testing.T) {
		assert.PanicsWithValue(t, "live: nil source", func() {
			newTestRuntime().NewNode(nil, IdentityOperator{}, false, "")
		})
	})
}
