package resources

import (
	"time"

	"github.com/emberengine/ember/engine/core"
)

type State uint8

const (
	// StatePending means the load has been enqueued but not completed.
	StatePending State = iota
	// StateReady means the entry holds a decoded backend payload.
	StateReady
	// StateFailed means the load errored; the error is kept on the entry.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// CacheHint controls when an unreferenced entry may be evicted.
type CacheHint struct {
	// KeepForever exempts the entry from eviction entirely.
	KeepForever bool
	// ExpireAfter is how long an entry may sit at zero references before
	// the sweep removes it.
	ExpireAfter time.Duration
}

var DefaultCacheHint = CacheHint{ExpireAfter: 5 * time.Minute}

// entry is the per-key cache record. All fields are owned by the manager's
// owner goroutine; background tasks never touch an entry directly, they post
// a completion op instead.
type entry struct {
	key     Key
	request Request

	state   State
	err     error
	payload interface{}

	refCount   uint32
	lastLoaded time.Time
	hint       CacheHint
	// deadTime accumulates sweep time while refCount is zero; eviction
	// happens once it exceeds the hint threshold.
	deadTime time.Duration
	// reloading guards against stacking hot-reload imports for one key.
	reloading bool
}

func newEntry(key Key, request Request, hint CacheHint) *entry {
	return &entry{
		key:     key,
		request: request,
		state:   StatePending,
		hint:    hint,
	}
}

func (e *entry) setReady(payload interface{}, now time.Time) {
	if payload == nil {
		// A ready entry always has a payload; a nil one is an importer bug.
		e.setFailed(core.ErrDecodeFailed)
		return
	}
	e.state = StateReady
	e.payload = payload
	e.err = nil
	e.lastLoaded = now
	e.reloading = false
}

func (e *entry) setFailed(err error) {
	e.state = StateFailed
	e.payload = nil
	e.err = err
	e.reloading = false
}

func (e *entry) addRef() {
	e.refCount++
	e.deadTime = 0
}

func (e *entry) release() {
	if e.refCount == 0 {
		core.LogError("reference underflow on resource '%s'", e.key)
		return
	}
	e.refCount--
}
