package service

import (
	"context"
	"sync"
	"sync/atomic"

	"pygc/jobs/eventpump"
)

// instance bundles the service with the background jobs tied to its
// lifetime.
type instance struct {
	svc  *GCService
	pump *eventpump.Pump
}

var (
	globalMu sync.Mutex
	global   atomic.Pointer[instance]
)

// Init establishes the process-wide collector. It always succeeds and
// always leaves a fresh one: an existing collector is torn down and
// replaced, which resets the registry, thresholds, and flags.
func Init() error {
	return InitWith(Config{})
}

// InitWith is Init with explicit configuration.
func InitWith(cfg Config) error {
	globalMu.Lock()
	defer globalMu.Unlock()
	if cur := global.Swap(nil); cur != nil {
		cur.shutdown()
	}
	svc := New(cfg)
	pump := eventpump.New(svc.Bus(), svc.DebugLog(), cfg.withDefaults().EventBuffer)
	pump.Start(context.Background())
	global.Store(&instance{svc: svc, pump: pump})
	return nil
}

// Cleanup tears the singleton down. Calling it when absent is a no-op.
func Cleanup() {
	globalMu.Lock()
	defer globalMu.Unlock()
	if cur := global.Swap(nil); cur != nil {
		cur.shutdown()
	}
}

func (i *instance) shutdown() {
	i.svc.Bus().Close()
	i.pump.Stop()
}

// IsInitialized reports whether a collector currently exists.
func IsInitialized() bool {
	return global.Load() != nil
}

// Current returns the live service, or ErrNotInitialized.
func Current() (*GCService, error) {
	cur := global.Load()
	if cur == nil {
		return nil, ErrNotInitialized
	}
	return cur.svc, nil
}
