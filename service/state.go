package service

import (
	"bytes"
	"fmt"
	"time"

	"pygc/domain/gcheap"
	"pygc/infra/wire"
)

// Stats is the point-in-time statistics snapshot, laid out the way the
// stable C record expects it.
type Stats struct {
	TotalTracked     int32
	GenerationCounts [3]int32
	Uncollectable    int32
}

//
// ──────────────────────────────────────────────────────────
// Enable / disable
// ──────────────────────────────────────────────────────────
//

func (s *GCService) Enable() error {
	if s.inHook.Load() {
		return ErrCollectionInProgress
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enabled = true
	return nil
}

func (s *GCService) Disable() error {
	if s.inHook.Load() {
		return ErrCollectionInProgress
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enabled = false
	return nil
}

func (s *GCService) IsEnabled() (bool, error) {
	if s.inHook.Load() {
		return false, ErrCollectionInProgress
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.enabled, nil
}

//
// ──────────────────────────────────────────────────────────
// Automatic tracking
// ──────────────────────────────────────────────────────────
//

func (s *GCService) EnableAutoTracking() error {
	if s.inHook.Load() {
		return ErrCollectionInProgress
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.autoTrack = true
	return nil
}

func (s *GCService) DisableAutoTracking() error {
	if s.inHook.Load() {
		return ErrCollectionInProgress
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.autoTrack = false
	return nil
}

func (s *GCService) IsAutoTrackingEnabled() (bool, error) {
	if s.inHook.Load() {
		return false, ErrCollectionInProgress
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.autoTrack, nil
}

// ObjectCreated tracks addr when automatic tracking is on, and is a
// silent success otherwise.
func (s *GCService) ObjectCreated(addr uintptr) error {
	if addr == 0 {
		return gcheap.ErrNilAddress
	}
	on, err := s.IsAutoTrackingEnabled()
	if err != nil {
		return err
	}
	if !on {
		return nil
	}
	return s.Track(addr)
}

// ObjectDestroyed untracks addr when automatic tracking is on, and is
// a silent success otherwise.
func (s *GCService) ObjectDestroyed(addr uintptr) error {
	if addr == 0 {
		return gcheap.ErrNilAddress
	}
	on, err := s.IsAutoTrackingEnabled()
	if err != nil {
		return err
	}
	if !on {
		return nil
	}
	return s.Untrack(addr)
}

//
// ──────────────────────────────────────────────────────────
// Debug & diagnostics
// ──────────────────────────────────────────────────────────
//

func (s *GCService) SetDebug(flags int32) {
	s.log.SetFlags(flags)
}

func (s *GCService) DebugFlags() int32 {
	return s.log.Flags()
}

// StateString renders the one-line summary: lifecycle booleans, each
// generation as count/threshold, and the uncollectable count.
func (s *GCService) StateString() (string, error) {
	if s.inHook.Load() {
		return "", ErrCollectionInProgress
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fmt.Sprintf(
		"initialized=true enabled=%t gen0=%d/%d gen1=%d/%d gen2=%d/%d uncollectable=%d",
		s.enabled,
		s.gens.Count(0), s.gens.Threshold(0),
		s.gens.Count(1), s.gens.Threshold(1),
		s.gens.Count(2), s.gens.Threshold(2),
		s.collector.UncollectableCount(),
	), nil
}

// DebugState pushes the state summary through the logger regardless of
// flags; the host asked for it explicitly.
func (s *GCService) DebugState() error {
	if s.inHook.Load() {
		return ErrCollectionInProgress
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.log.Always("state",
		"enabled", s.enabled,
		"auto_tracking", s.autoTrack,
		"tracked", s.registry.Len(),
		"gen0", s.gens.Count(0),
		"gen1", s.gens.Count(1),
		"gen2", s.gens.Count(2),
		"uncollectable", s.collector.UncollectableCount(),
		"seq", s.seq.Current(),
	)
	return nil
}

//
// ──────────────────────────────────────────────────────────
// Statistics
// ──────────────────────────────────────────────────────────
//

// Stats captures a consistent snapshot under the read lock.
func (s *GCService) Stats() (Stats, error) {
	if s.inHook.Load() {
		return Stats{}, ErrCollectionInProgress
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var st Stats
	st.TotalTracked = int32(s.registry.Len())
	for g := 0; g < gcheap.NumGenerations; g++ {
		st.GenerationCounts[g] = int32(s.gens.Count(g))
	}
	st.Uncollectable = int32(s.collector.UncollectableCount())
	return st, nil
}

// StatsProto encodes the snapshot as a CRC-framed protobuf record.
func (s *GCService) StatsProto() ([]byte, error) {
	if s.inHook.Load() {
		return nil, ErrCollectionInProgress
	}
	s.mu.RLock()
	snap := &wire.Snapshot{
		Seq:           s.seq.Current(),
		Time:          time.Now().UnixNano(),
		TotalTracked:  int64(s.registry.Len()),
		Uncollectable: int64(s.collector.UncollectableCount()),
	}
	for g := 0; g < gcheap.NumGenerations; g++ {
		snap.GenCounts[g] = int64(s.gens.Count(g))
	}
	s.mu.RUnlock()
	return wire.ProtoSerializer{}.Encode(snap)
}

// MetricsText renders the Prometheus text exposition.
func (s *GCService) MetricsText() ([]byte, error) {
	if s.inHook.Load() {
		return nil, ErrCollectionInProgress
	}
	var buf bytes.Buffer
	if err := s.stats.WriteText(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
