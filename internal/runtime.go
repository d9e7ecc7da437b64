package internal

import (
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Recorder receives node lifecycle and emission events. Implementations must
// be safe for concurrent use since independent graphs may share one.
type Recorder interface {
	Activated()
	Deactivated()
	Emitted(accepted bool)
	Delivered(single bool)
}

type nopRecorder struct{}

func (nopRecorder) Activated()     {}
func (nopRecorder) Deactivated()   {}
func (nopRecorder) Emitted(bool)   {}
func (nopRecorder) Delivered(bool) {}

// Runtime is the sequencing context of one node graph. Every node derived
// from the same root shares it, and every attach, detach and emission runs
// while holding its lock.
type Runtime struct {
	mu reentrantMutex

	id     string
	nextID atomic.Int64

	logger   zerolog.Logger
	recorder Recorder
}

func NewRuntime(logger zerolog.Logger, recorder Recorder) *Runtime {
	if recorder == nil {
		recorder = nopRecorder{}
	}

	return &Runtime{
		id:       uuid.NewString(),
		logger:   logger,
		recorder: recorder,
	}
}

// ID returns the graph identifier used in log fields.
func (r *Runtime) ID() string { return r.id }

func (r *Runtime) newNodeID() int64 {
	return r.nextID.Add(1)
}
