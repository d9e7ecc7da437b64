package internal

import (
	"sync"
	"sync/atomic"
)

// reentrantMutex serializes goroutines but lets the goroutine holding it
// lock again, so listeners can write back into the graph that notified them.
//
// On wasm every goroutine reports the same id, so the lock only counts depth
// there: a listener that blocks while holding it lets another goroutine enter
// the graph in the middle of a fan-out. Listeners must not block on wasm.
type reentrantMutex struct {
	mu sync.Mutex

	holder atomic.Int64 // gid of the holding goroutine, 0 when free
	depth  int
}

func (m *reentrantMutex) Lock() {
	gid := getGID()
	if m.holder.Load() == gid {
		m.depth++
		return
	}

	m.mu.Lock()
	m.holder.Store(gid)
	m.depth = 1
}

func (m *reentrantMutex) Unlock() {
	if m.holder.Load() != getGID() {
		panic("live: unlock of graph not held by this goroutine")
	}

	m.depth--
	if m.depth == 0 {
		m.holder.Store(0)
		m.mu.Unlock()
	}
}

// Held reports whether the calling goroutine holds the lock.
func (m *reentrantMutex) Held() bool {
	return m.holder.Load() == getGID()
}
