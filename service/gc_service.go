package service

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"pygc/domain/gcheap"
	"pygc/infra/debuglog"
	"pygc/infra/events"
	"pygc/infra/memory"
	"pygc/infra/metrics"
	"pygc/infra/sequence"
)

/*
GCService is the ONLY entry point into the collector state.

All coordination between:
- domain (gcheap)
- infra (memory, sequence, events, metrics, debuglog)
happens here. One reader/writer lock guards the registry and the
generation counters; a separate collection lock serializes cycles.
*/

type GCService struct {
	mu        sync.RWMutex
	collectMu sync.Mutex

	registry  *gcheap.Registry
	gens      *gcheap.GenerationSet
	refs      *gcheap.RefGraph
	collector *gcheap.Collector

	seq  *sequence.Sequencer
	pool *memory.Pool[gcheap.Entry]
	ring *memory.RetireRing

	bus   *events.Bus
	stats *metrics.Set
	log   *debuglog.Logger

	enabled   bool
	autoTrack bool
	hook      gcheap.FinalizerHook

	// inHook latches while a finalizer hook runs. Every operation that
	// touches mu, reads included, checks it first; the hook runs under
	// the write lock and RWMutex is not reentrant, so a re-entering
	// host must get ErrCollectionInProgress instead of a deadlock.
	inHook atomic.Bool
}

// New wires all dependencies. No globals.
func New(cfg Config) *GCService {
	cfg = cfg.withDefaults()
	registry := gcheap.NewRegistry()
	gens := gcheap.NewGenerationSet()
	refs := gcheap.NewRefGraph()
	return &GCService{
		registry:  registry,
		gens:      gens,
		refs:      refs,
		collector: gcheap.NewCollector(registry, gens, refs),
		seq:       sequence.New(0),
		pool:      memory.NewPool(func() *gcheap.Entry { return &gcheap.Entry{} }),
		ring:      memory.NewRetireRing(cfg.RingSize),
		bus:       events.NewBus(),
		stats:     metrics.NewSet(),
		log:       debuglog.New(cfg.LogOutput),
		enabled:   true,
	}
}

// Bus exposes the event bus for background consumers.
func (s *GCService) Bus() *events.Bus { return s.bus }

// DebugLog exposes the flag-gated logger.
func (s *GCService) DebugLog() *debuglog.Logger { return s.log }

//
// ──────────────────────────────────────────────────────────
// Tracking
// ──────────────────────────────────────────────────────────
//

// Track inserts addr at generation 0. A disabled collector accepts and
// ignores the call.
func (s *GCService) Track(addr uintptr) error {
	if s.inHook.Load() {
		return ErrCollectionInProgress
	}
	if addr == 0 {
		return gcheap.ErrNilAddress
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.enabled {
		return nil
	}
	e := s.entryFromPool()
	*e = gcheap.Entry{Addr: addr, Seq: s.seq.Next()}
	if err := s.registry.Insert(e); err != nil {
		s.retire(e)
		return err
	}
	s.gens.ObjectTracked()
	s.stats.TrackedSet(0, s.gens.Count(0))
	return nil
}

// Untrack removes addr. A disabled collector accepts and ignores the
// call.
func (s *GCService) Untrack(addr uintptr) error {
	if s.inHook.Load() {
		return ErrCollectionInProgress
	}
	if addr == 0 {
		return gcheap.ErrNilAddress
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.enabled {
		return nil
	}
	return s.removeLocked(addr)
}

// DebugUntrack is the authoritative removal: it bypasses the enabled
// check and never consults the finalizer hook.
func (s *GCService) DebugUntrack(addr uintptr) error {
	if s.inHook.Load() {
		return ErrCollectionInProgress
	}
	if addr == 0 {
		return gcheap.ErrNilAddress
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeLocked(addr)
}

func (s *GCService) IsTracked(addr uintptr) (bool, error) {
	if s.inHook.Load() {
		return false, ErrCollectionInProgress
	}
	if addr == 0 {
		return false, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry.Contains(addr), nil
}

// ClearRegistry drops every entry, every edge, and the uncollectable
// list. Scheduler counters reset; thresholds stay.
func (s *GCService) ClearRegistry() error {
	if s.inHook.Load() {
		return ErrCollectionInProgress
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	dropped := s.registry.Len()
	for _, e := range s.registry.Drain() {
		s.retire(e)
	}
	s.refs.Clear()
	s.collector.ClearUncollectable()
	s.gens.ClearCounts()
	for g := 0; g < gcheap.NumGenerations; g++ {
		s.stats.TrackedSet(g, 0)
	}
	s.stats.UncollectableSet(0)
	s.bus.Publish(events.Event{
		Type:      events.TypeClear,
		Reclaimed: dropped,
		Seq:       s.seq.Current(),
		Time:      time.Now().UnixNano(),
	})
	return nil
}

func (s *GCService) Count() (int, error) {
	if s.inHook.Load() {
		return 0, ErrCollectionInProgress
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry.Len(), nil
}

// GenerationCount returns -1 for a generation outside 0..2.
func (s *GCService) GenerationCount(gen int) (int, error) {
	if s.inHook.Load() {
		return 0, ErrCollectionInProgress
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gens.Count(gen), nil
}

// TrackedInfo formats the diagnostic line for addr.
func (s *GCService) TrackedInfo(addr uintptr) (string, error) {
	if s.inHook.Load() {
		return "", ErrCollectionInProgress
	}
	if addr == 0 {
		return "", gcheap.ErrNilAddress
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.registry.Get(addr)
	if !ok {
		return "", gcheap.ErrNotTracked
	}
	return e.Info(), nil
}

//
// ──────────────────────────────────────────────────────────
// Thresholds & scheduling
// ──────────────────────────────────────────────────────────
//

func (s *GCService) Threshold(gen int) (int, error) {
	if s.inHook.Load() {
		return 0, ErrCollectionInProgress
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gens.Threshold(gen), nil
}

func (s *GCService) SetThreshold(gen, v int) error {
	if s.inHook.Load() {
		return ErrCollectionInProgress
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gens.SetThreshold(gen, v)
}

func (s *GCService) NeedsCollection() (bool, error) {
	if s.inHook.Load() {
		return false, ErrCollectionInProgress
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gens.NeedsCollection(), nil
}

// CollectIfNeeded runs a cycle of the highest due generation. A
// disabled collector, or one with no rule firing, does nothing.
func (s *GCService) CollectIfNeeded() (gcheap.CycleResult, bool, error) {
	if s.inHook.Load() {
		return gcheap.CycleResult{}, false, ErrCollectionInProgress
	}
	s.mu.RLock()
	enabled := s.enabled
	gen := s.gens.ScheduledGeneration()
	s.mu.RUnlock()
	if !enabled || gen < 0 {
		return gcheap.CycleResult{}, false, nil
	}
	res, err := s.Collect(gen)
	return res, err == nil, err
}

//
// ──────────────────────────────────────────────────────────
// Collection
// ──────────────────────────────────────────────────────────
//

// Collect runs one cycle over gen and everything younger. Explicit
// collection runs even when the collector is disabled.
func (s *GCService) Collect(gen int) (gcheap.CycleResult, error) {
	if s.inHook.Load() {
		return gcheap.CycleResult{}, ErrCollectionInProgress
	}
	if gen < 0 || gen >= gcheap.NumGenerations {
		return gcheap.CycleResult{}, gcheap.ErrInvalidGeneration
	}
	if !s.collectMu.TryLock() {
		return gcheap.CycleResult{}, ErrCollectionInProgress
	}
	defer s.collectMu.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	hook := s.hook
	wrapped := func(addr uintptr) {
		s.log.Log(debuglog.FlagCollectable, "reclaim",
			"addr", fmt.Sprintf("0x%x", uint64(addr)),
			"generation", gen,
		)
		if hook != nil {
			s.inHook.Store(true)
			hook(addr)
			s.inHook.Store(false)
		}
	}
	res, err := s.collector.Collect(gen, wrapped, s.retire)
	if err != nil {
		return res, err
	}
	if res.Uncollectable > 0 {
		s.log.Log(debuglog.FlagUncollectable, "uncollectable",
			"count", res.Uncollectable,
			"generation", gen,
		)
	}
	s.stats.CycleObserved(gen, res.Reclaimed, res.Promoted)
	for g := 0; g < gcheap.NumGenerations; g++ {
		s.stats.TrackedSet(g, s.gens.Count(g))
	}
	s.stats.UncollectableSet(s.collector.UncollectableCount())
	s.bus.Publish(events.Event{
		Type:          events.TypeCollection,
		Generation:    res.Generation,
		Candidates:    res.Candidates,
		Reclaimed:     res.Reclaimed,
		Promoted:      res.Promoted,
		Uncollectable: res.Uncollectable,
		Seq:           s.seq.Current(),
		Time:          time.Now().UnixNano(),
	})
	return res, nil
}

// SetFinalizerHook installs the per-reclaimed-entry callback. A nil fn
// clears it.
func (s *GCService) SetFinalizerHook(fn gcheap.FinalizerHook) error {
	if s.inHook.Load() {
		return ErrCollectionInProgress
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hook = fn
	return nil
}

//
// ──────────────────────────────────────────────────────────
// Uncollectables
// ──────────────────────────────────────────────────────────
//

func (s *GCService) UncollectableCount() (int, error) {
	if s.inHook.Load() {
		return 0, ErrCollectionInProgress
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collector.UncollectableCount(), nil
}

// ClearUncollectable empties the classified list; the entries stay
// tracked.
func (s *GCService) ClearUncollectable() error {
	if s.inHook.Load() {
		return ErrCollectionInProgress
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collector.ClearUncollectable()
	s.stats.UncollectableSet(0)
	return nil
}

// MarkUncollectable pins a tracked entry: it is promoted but never
// reclaimed.
func (s *GCService) MarkUncollectable(addr uintptr) error {
	if s.inHook.Load() {
		return ErrCollectionInProgress
	}
	if addr == 0 {
		return gcheap.ErrNilAddress
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.registry.Get(addr)
	if !ok {
		return gcheap.ErrNotTracked
	}
	e.Flags |= gcheap.FlagUncollectable
	return nil
}

// UnmarkUncollectable clears the pin and any cycle classification.
func (s *GCService) UnmarkUncollectable(addr uintptr) error {
	if s.inHook.Load() {
		return ErrCollectionInProgress
	}
	if addr == 0 {
		return gcheap.ErrNilAddress
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.registry.Get(addr)
	if !ok {
		return gcheap.ErrNotTracked
	}
	e.Flags &^= gcheap.FlagUncollectable
	s.collector.DropUncollectable(addr)
	s.stats.UncollectableSet(s.collector.UncollectableCount())
	return nil
}

// IsUncollectable is true for a tracked entry that is either pinned by
// the host or classified by a cycle.
func (s *GCService) IsUncollectable(addr uintptr) (bool, error) {
	if s.inHook.Load() {
		return false, ErrCollectionInProgress
	}
	if addr == 0 {
		return false, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.registry.Get(addr)
	if !ok {
		return false, nil
	}
	return e.Flags&gcheap.FlagUncollectable != 0 || s.collector.IsCycleUncollectable(addr), nil
}

//
// ──────────────────────────────────────────────────────────
// Reference graph
// ──────────────────────────────────────────────────────────
//

// AddReference records the edge from -> to. Both endpoints must be
// tracked.
func (s *GCService) AddReference(from, to uintptr) error {
	if s.inHook.Load() {
		return ErrCollectionInProgress
	}
	if from == 0 || to == 0 {
		return gcheap.ErrNilAddress
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.registry.Contains(from) || !s.registry.Contains(to) {
		return gcheap.ErrNotTracked
	}
	s.refs.Add(from, to)
	return nil
}

// RemoveReference deletes the edge from -> to. A missing edge or
// endpoint is ErrNotTracked.
func (s *GCService) RemoveReference(from, to uintptr) error {
	if s.inHook.Load() {
		return ErrCollectionInProgress
	}
	if from == 0 || to == 0 {
		return gcheap.ErrNilAddress
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.registry.Contains(from) || !s.registry.Contains(to) {
		return gcheap.ErrNotTracked
	}
	if !s.refs.Remove(from, to) {
		return gcheap.ErrNotTracked
	}
	return nil
}

//
// ──────────────────────────────────────────────────────────
// Finalizer metadata & size hints
// ──────────────────────────────────────────────────────────
//

func (s *GCService) SetFinalizer(addr uintptr, on bool) error {
	if s.inHook.Load() {
		return ErrCollectionInProgress
	}
	if addr == 0 {
		return gcheap.ErrNilAddress
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.registry.Get(addr)
	if !ok {
		return gcheap.ErrNotTracked
	}
	if on {
		e.Flags |= gcheap.FlagHasFinalizer
	} else {
		e.Flags &^= gcheap.FlagHasFinalizer
	}
	return nil
}

func (s *GCService) HasFinalizer(addr uintptr) (bool, error) {
	if s.inHook.Load() {
		return false, ErrCollectionInProgress
	}
	if addr == 0 {
		return false, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.registry.Get(addr)
	return ok && e.Flags&gcheap.FlagHasFinalizer != 0, nil
}

func (s *GCService) SetObjectSize(addr uintptr, size uint64) error {
	if s.inHook.Load() {
		return ErrCollectionInProgress
	}
	if addr == 0 {
		return gcheap.ErrNilAddress
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.registry.Get(addr)
	if !ok {
		return gcheap.ErrNotTracked
	}
	e.Size = size
	return nil
}

// ObjectSize returns the size hint, or -1 for an untracked address.
func (s *GCService) ObjectSize(addr uintptr) (int64, error) {
	if s.inHook.Load() {
		return -1, ErrCollectionInProgress
	}
	if addr == 0 {
		return -1, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.registry.Get(addr)
	if !ok {
		return -1, nil
	}
	return int64(e.Size), nil
}

//
// ──────────────────────────────────────────────────────────
// Internal plumbing
// ──────────────────────────────────────────────────────────
//

// removeLocked is the shared untrack path. Caller holds the write
// lock.
func (s *GCService) removeLocked(addr uintptr) error {
	e, err := s.registry.Remove(addr)
	if err != nil {
		return err
	}
	gen := e.Gen
	s.gens.ObjectRemoved(gen)
	s.refs.DropNode(addr)
	s.collector.DropUncollectable(addr)
	s.stats.TrackedSet(gen, s.gens.Count(gen))
	s.stats.UncollectableSet(s.collector.UncollectableCount())
	s.retire(e)
	return nil
}

// entryFromPool drains at most one retired entry back into the pool,
// then allocates from it.
func (s *GCService) entryFromPool() *gcheap.Entry {
	if v := s.ring.Dequeue(); v != nil {
		s.pool.PutAny(v)
	}
	return s.pool.Get()
}

func (s *GCService) retire(e *gcheap.Entry) {
	e.Reset()
	if !s.ring.Enqueue(e) {
		s.pool.Put(e)
	}
}
