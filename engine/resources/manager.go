package resources

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/emberengine/ember/engine/core"
	"github.com/emberengine/ember/engine/jobs"
)

// Storage is the byte-reading collaborator. Implemented by assets.Storage.
type Storage interface {
	Locate(path string) (string, error)
	Load(path string) ([]byte, error)
}

// ModTimer is the optional hot-reload collaborator; absent on platforms
// without a filesystem.
type ModTimer interface {
	ModTime(path string) (time.Time, error)
}

// ReloadNotifier hands over the set of paths that changed on disk since the
// last call. Implemented by assets.Watcher.
type ReloadNotifier interface {
	Take() []string
}

type Config struct {
	Storage   Storage
	Importers *Registry
	// Pool runs importer work off the owner goroutine. When nil, the
	// manager creates its own.
	Pool        *jobs.Pool
	Workers     int
	QueueSize   int
	DefaultHint CacheHint
	// SweepInterval is how much accumulated update time triggers one
	// eviction sweep. Defaults to one minute.
	SweepInterval time.Duration
	HotReload     bool
	Watcher       ReloadNotifier
}

// Manager owns every cache entry. Entries are mutated exclusively on the
// goroutine that calls Update (the owner); background loads and releases
// from other goroutines post ops that Update drains. The entry table itself
// is guarded so concurrent first-time resolves cannot race to create two
// entries: first writer wins.
type Manager struct {
	storage       Storage
	registry      *Registry
	pool          *jobs.Pool
	ownPool       bool
	defaultHint   CacheHint
	sweepInterval time.Duration
	hotReload     bool
	watcher       ReloadNotifier

	mutex   sync.RWMutex
	entries map[Key]*entry

	ops        chan func()
	sweepAccum time.Duration

	syntheticID atomic.Uint64
}

const defaultOpQueueSize = 1024

func NewManager(config *Config) (*Manager, error) {
	if config.Storage == nil {
		err := fmt.Errorf("func NewManager - config.Storage is required")
		core.LogError(err.Error())
		return nil, err
	}

	registry := config.Importers
	if registry == nil {
		registry = NewRegistry()
	}

	pool := config.Pool
	ownPool := false
	if pool == nil {
		workers := config.Workers
		if workers <= 0 {
			workers = 2
		}
		queueSize := config.QueueSize
		if queueSize <= 0 {
			queueSize = 64
		}
		var err error
		pool, err = jobs.NewPool(workers, queueSize)
		if err != nil {
			return nil, err
		}
		ownPool = true
	}

	hint := config.DefaultHint
	if !hint.KeepForever && hint.ExpireAfter == 0 {
		hint = DefaultCacheHint
	}

	sweepInterval := config.SweepInterval
	if sweepInterval == 0 {
		sweepInterval = time.Minute
	}

	return &Manager{
		storage:       config.Storage,
		registry:      registry,
		pool:          pool,
		ownPool:       ownPool,
		defaultHint:   hint,
		sweepInterval: sweepInterval,
		hotReload:     config.HotReload,
		watcher:       config.Watcher,
		entries:       make(map[Key]*entry),
		ops:           make(chan func(), defaultOpQueueSize),
	}, nil
}

// Registry exposes the importer registry for application registration.
func (m *Manager) Registry() *Registry {
	return m.registry
}

// Resolve deduplicates the request to a key, creating a pending entry and
// enqueueing exactly one background load on first resolution. The pending
// entry itself is the dedupe: a concurrent second resolve finds it and does
// not enqueue another load.
func (m *Manager) Resolve(request Request) Key {
	key := request.key()

	m.mutex.Lock()
	if _, exists := m.entries[key]; exists {
		m.mutex.Unlock()
		return key
	}
	e := newEntry(key, request, m.defaultHint)
	m.entries[key] = e
	m.mutex.Unlock()

	m.enqueueLoad(e)
	return key
}

// ResolveSynthetic registers an in-memory constructed payload under a fresh
// synthetic key. The entry is ready immediately and never hot-reloaded.
func (m *Manager) ResolveSynthetic(payload interface{}) Key {
	n := m.syntheticID.Add(1)
	key := Key{Path: fmt.Sprintf("$%d", n)}

	e := newEntry(key, Request{Path: key.Path}, m.defaultHint)
	e.setReady(payload, time.Now())

	m.mutex.Lock()
	m.entries[key] = e
	m.mutex.Unlock()
	return key
}

// AddRef increments the entry's reference count. Safe from any goroutine;
// the mutation itself happens on the owner during Update.
func (m *Manager) AddRef(key Key) {
	m.post(func() {
		if e := m.lookup(key); e != nil {
			e.addRef()
		}
	})
}

// Release decrements the entry's reference count. Reaching zero starts the
// eviction countdown; it never cancels an in-flight load and never removes
// the entry immediately.
func (m *Manager) Release(key Key) {
	m.post(func() {
		if e := m.lookup(key); e != nil {
			e.release()
		}
	})
}

// State reports the load state of a key. Unknown keys read as pending.
func (m *Manager) State(key Key) State {
	if e := m.lookup(key); e != nil {
		return e.state
	}
	return StatePending
}

// Err returns the load error for a failed entry.
func (m *Manager) Err(key Key) error {
	if e := m.lookup(key); e != nil {
		return e.err
	}
	return nil
}

// Payload returns the backend payload when the entry is ready.
func (m *Manager) Payload(key Key) (interface{}, bool) {
	e := m.lookup(key)
	if e == nil || e.state != StateReady {
		return nil, false
	}
	return e.payload, true
}

// RefCount reports the current reference count for a key.
func (m *Manager) RefCount(key Key) uint32 {
	if e := m.lookup(key); e != nil {
		return e.refCount
	}
	return 0
}

// Has reports whether an entry exists for the key.
func (m *Manager) Has(key Key) bool {
	return m.lookup(key) != nil
}

// SetCacheHint updates the eviction policy and resets the dead-timer.
func (m *Manager) SetCacheHint(key Key, hint CacheHint) {
	m.post(func() {
		if e := m.lookup(key); e != nil {
			e.hint = hint
			e.deadTime = 0
		}
	})
}

// Update drains deferred ops and advances the eviction sweep and hot-reload
// poll. Must be called from the owner goroutine once per frame.
func (m *Manager) Update(delta time.Duration) {
	m.drainOps()
	m.collectWatcher()

	m.sweepAccum += delta
	for m.sweepAccum >= m.sweepInterval {
		m.sweepAccum -= m.sweepInterval
		m.Sweep(m.sweepInterval)
		m.pollHotReload()
	}
}

// Sweep advances every unreferenced entry's dead-timer by elapsed and evicts
// the ones whose hint threshold has been exceeded. Referenced entries are
// never evicted regardless of hint. Owner goroutine only.
func (m *Manager) Sweep(elapsed time.Duration) {
	m.drainOps()

	m.mutex.Lock()
	defer m.mutex.Unlock()

	for key, e := range m.entries {
		if e.refCount > 0 {
			e.deadTime = 0
			continue
		}
		if e.hint.KeepForever {
			continue
		}
		// An in-flight load completes even when unreferenced; only settled
		// entries are candidates for removal.
		if e.state == StatePending {
			continue
		}
		e.deadTime += elapsed
		if e.deadTime > e.hint.ExpireAfter {
			e.payload = nil
			delete(m.entries, key)
			core.LogDebug("evicted resource '%s'", key)
		}
	}
}

// Shutdown stops the worker pool (when owned) and drops all entries.
func (m *Manager) Shutdown() error {
	if m.ownPool {
		if err := m.pool.Shutdown(); err != nil {
			return err
		}
	}
	m.drainOps()

	m.mutex.Lock()
	m.entries = make(map[Key]*entry)
	m.mutex.Unlock()
	return nil
}

func (m *Manager) lookup(key Key) *entry {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.entries[key]
}

// post marshals an entry mutation onto the owner goroutine.
func (m *Manager) post(op func()) {
	m.ops <- op
}

func (m *Manager) drainOps() {
	for {
		select {
		case op := <-m.ops:
			op()
		default:
			return
		}
	}
}

// enqueueLoad kicks off the background load pipeline for an entry: importer
// lookup by extension, byte read through storage, import off the owner
// goroutine, then a single posted state transition.
func (m *Manager) enqueueLoad(e *entry) {
	key := e.key
	if key.Synthetic() {
		return
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(key.Path)), ".")
	imp, found := m.registry.ForExtension(ext)
	if !found {
		err := fmt.Errorf("%s: %w", key.Path, core.ErrNoImporter)
		core.LogWarn(err.Error())
		m.post(func() { e.setFailed(err) })
		return
	}

	options := e.request.Options
	submitted := m.pool.Submit(jobs.Task{
		Priority: jobs.PriorityNormal,
		Work: func() (interface{}, error) {
			resolved, err := m.storage.Locate(key.Path)
			if err != nil {
				return nil, err
			}
			data, err := m.storage.Load(key.Path)
			if err != nil {
				return nil, err
			}
			payload, err := imp.Import(data, filepath.Dir(resolved), options)
			if err != nil {
				if errors.Is(err, core.ErrDecodeFailed) {
					return nil, err
				}
				return nil, fmt.Errorf("%s: %w: %v", key.Path, core.ErrDecodeFailed, err)
			}
			return payload, nil
		},
		OnComplete: func(result interface{}) {
			m.post(func() {
				e.setReady(result, time.Now())
				core.LogDebug("loaded resource '%s'", key)
			})
		},
		OnFailure: func(err error) {
			m.post(func() {
				e.setFailed(err)
				core.LogWarn("failed to load resource '%s': %v", key, err)
			})
		},
	})
	if !submitted {
		m.post(func() { e.setFailed(fmt.Errorf("%s: %w: pool shut down", key.Path, core.ErrIO)) })
	}
}

// collectWatcher re-triggers loads for resources the watcher flagged as
// changed on disk. The reference count is untouched.
func (m *Manager) collectWatcher() {
	if m.watcher == nil {
		return
	}
	for _, path := range m.watcher.Take() {
		for _, e := range m.entriesForPath(path) {
			m.reload(e)
		}
	}
}

// pollHotReload compares on-disk modification times against each entry's
// lastLoaded timestamp and re-triggers loads for stale entries. Synthetic
// keys are exempt.
func (m *Manager) pollHotReload() {
	if !m.hotReload {
		return
	}
	mt, supported := m.storage.(ModTimer)
	if !supported {
		return
	}

	for _, e := range m.snapshot() {
		if e.key.Synthetic() || e.state != StateReady || e.reloading {
			continue
		}
		modTime, err := mt.ModTime(e.key.Path)
		if err != nil {
			continue
		}
		if modTime.After(e.lastLoaded) {
			m.reload(e)
		}
	}
}

func (m *Manager) reload(e *entry) {
	if e.reloading || e.key.Synthetic() {
		return
	}
	e.reloading = true
	core.LogInfo("hot reloading resource '%s'", e.key)
	m.enqueueLoad(e)
}

func (m *Manager) entriesForPath(path string) []*entry {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var out []*entry
	for key, e := range m.entries {
		if key.Path == path {
			out = append(out, e)
		}
	}
	return out
}

func (m *Manager) snapshot() []*entry {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	out := make([]*entry, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e)
	}
	return out
}
