package cabi

import (
	"pygc/domain/gcheap"
	"pygc/service"
)

//
// ──────────────────────────────────────────────────────────
// Lifecycle
// ──────────────────────────────────────────────────────────
//

// Init establishes (or replaces) the process-wide collector.
func Init() (code Code) {
	defer guard(&code)
	if err := service.Init(); err != nil {
		return CodeInternal
	}
	return CodeSuccess
}

// Cleanup tears the collector down. Idempotent.
func Cleanup() (code Code) {
	defer guard(&code)
	service.Cleanup()
	return CodeSuccess
}

func IsInitialized() (v int32) {
	defer guardPred(&v)
	if service.IsInitialized() {
		return 1
	}
	return 0
}

//
// ──────────────────────────────────────────────────────────
// Enable / disable
// ──────────────────────────────────────────────────────────
//

func Enable() (code Code) {
	defer guard(&code)
	svc, err := service.Current()
	if err != nil {
		return codeFor(err)
	}
	return codeFor(svc.Enable())
}

func Disable() (code Code) {
	defer guard(&code)
	svc, err := service.Current()
	if err != nil {
		return codeFor(err)
	}
	return codeFor(svc.Disable())
}

func IsEnabled() (v int32) {
	defer guardPred(&v)
	svc, err := service.Current()
	if err != nil {
		return 0
	}
	return pred(svc.IsEnabled())
}

//
// ──────────────────────────────────────────────────────────
// Tracking
// ──────────────────────────────────────────────────────────
//

func Track(addr uintptr) (code Code) {
	defer guard(&code)
	if addr == 0 {
		return CodeInternal
	}
	svc, err := service.Current()
	if err != nil {
		return codeFor(err)
	}
	return codeFor(svc.Track(addr))
}

func Untrack(addr uintptr) (code Code) {
	defer guard(&code)
	if addr == 0 {
		return CodeInternal
	}
	svc, err := service.Current()
	if err != nil {
		return codeFor(err)
	}
	return codeFor(svc.Untrack(addr))
}

// DebugUntrack removes addr even while the collector is disabled.
func DebugUntrack(addr uintptr) (code Code) {
	defer guard(&code)
	if addr == 0 {
		return CodeInternal
	}
	svc, err := service.Current()
	if err != nil {
		return codeFor(err)
	}
	return codeFor(svc.DebugUntrack(addr))
}

func IsTracked(addr uintptr) (v int32) {
	defer guardPred(&v)
	svc, err := service.Current()
	if err != nil {
		return 0
	}
	return pred(svc.IsTracked(addr))
}

func ClearRegistry() (code Code) {
	defer guard(&code)
	svc, err := service.Current()
	if err != nil {
		return codeFor(err)
	}
	return codeFor(svc.ClearRegistry())
}

// RegistryCount returns the tracked-entry count, or a negative code as
// a value when the count cannot be taken.
func RegistryCount() (v int32) {
	defer guardVal(&v, int32(CodeInternal))
	svc, err := service.Current()
	if err != nil {
		return int32(CodeInternal)
	}
	n, err := svc.Count()
	if err != nil {
		return int32(codeFor(err))
	}
	return int32(n)
}

// GenerationCount returns -1 for a generation outside 0..2.
func GenerationCount(gen int32) (v int32) {
	defer guardVal(&v, int32(CodeInternal))
	svc, err := service.Current()
	if err != nil {
		return int32(CodeInternal)
	}
	n, err := svc.GenerationCount(int(gen))
	if err != nil {
		return int32(codeFor(err))
	}
	return int32(n)
}

// TrackedInfo writes the entry's diagnostic line into buf, truncating
// with a terminator. On failure only a terminator is written.
func TrackedInfo(addr uintptr, buf []byte) (code Code) {
	defer guard(&code)
	if len(buf) == 0 {
		return CodeInternal
	}
	if addr == 0 {
		buf[0] = 0
		return CodeInternal
	}
	svc, err := service.Current()
	if err != nil {
		buf[0] = 0
		return codeFor(err)
	}
	info, err := svc.TrackedInfo(addr)
	if err != nil {
		buf[0] = 0
		return codeFor(err)
	}
	writeCString(buf, info)
	return CodeSuccess
}

//
// ──────────────────────────────────────────────────────────
// Collection
// ──────────────────────────────────────────────────────────
//

// Collect runs a full cycle over every generation.
func Collect() Code {
	return CollectGeneration(int32(gcheap.NumGenerations - 1))
}

func CollectGeneration(gen int32) (code Code) {
	defer guard(&code)
	svc, err := service.Current()
	if err != nil {
		return codeFor(err)
	}
	_, err = svc.Collect(int(gen))
	return codeFor(err)
}

func NeedsCollection() (v int32) {
	defer guardPred(&v)
	svc, err := service.Current()
	if err != nil {
		return 0
	}
	return pred(svc.NeedsCollection())
}

func CollectIfNeeded() (code Code) {
	defer guard(&code)
	svc, err := service.Current()
	if err != nil {
		return codeFor(err)
	}
	_, _, err = svc.CollectIfNeeded()
	return codeFor(err)
}

//
// ──────────────────────────────────────────────────────────
// Thresholds
// ──────────────────────────────────────────────────────────
//

func SetThreshold(gen, v int32) (code Code) {
	defer guard(&code)
	svc, err := service.Current()
	if err != nil {
		return codeFor(err)
	}
	return codeFor(svc.SetThreshold(int(gen), int(v)))
}

// GetThreshold returns -1 for a generation outside 0..2.
func GetThreshold(gen int32) (v int32) {
	defer guardVal(&v, int32(CodeInternal))
	svc, err := service.Current()
	if err != nil {
		return int32(CodeInternal)
	}
	n, err := svc.Threshold(int(gen))
	if err != nil {
		return int32(codeFor(err))
	}
	return int32(n)
}

//
// ──────────────────────────────────────────────────────────
// Uncollectables
// ──────────────────────────────────────────────────────────
//

func UncollectableCount() (v int32) {
	defer guardVal(&v, int32(CodeInternal))
	svc, err := service.Current()
	if err != nil {
		return int32(CodeInternal)
	}
	n, err := svc.UncollectableCount()
	if err != nil {
		return int32(codeFor(err))
	}
	return int32(n)
}

func ClearUncollectable() (code Code) {
	defer guard(&code)
	svc, err := service.Current()
	if err != nil {
		return codeFor(err)
	}
	return codeFor(svc.ClearUncollectable())
}

func MarkUncollectable(addr uintptr) (code Code) {
	defer guard(&code)
	if addr == 0 {
		return CodeInternal
	}
	svc, err := service.Current()
	if err != nil {
		return codeFor(err)
	}
	return codeFor(svc.MarkUncollectable(addr))
}

func UnmarkUncollectable(addr uintptr) (code Code) {
	defer guard(&code)
	if addr == 0 {
		return CodeInternal
	}
	svc, err := service.Current()
	if err != nil {
		return codeFor(err)
	}
	return codeFor(svc.UnmarkUncollectable(addr))
}

func IsUncollectable(addr uintptr) (v int32) {
	defer guardPred(&v)
	svc, err := service.Current()
	if err != nil {
		return 0
	}
	return pred(svc.IsUncollectable(addr))
}

//
// ──────────────────────────────────────────────────────────
// Reference graph
// ──────────────────────────────────────────────────────────
//

func AddReference(from, to uintptr) (code Code) {
	defer guard(&code)
	if from == 0 || to == 0 {
		return CodeInternal
	}
	svc, err := service.Current()
	if err != nil {
		return codeFor(err)
	}
	return codeFor(svc.AddReference(from, to))
}

func RemoveReference(from, to uintptr) (code Code) {
	defer guard(&code)
	if from == 0 || to == 0 {
		return CodeInternal
	}
	svc, err := service.Current()
	if err != nil {
		return codeFor(err)
	}
	return codeFor(svc.RemoveReference(from, to))
}

//
// ──────────────────────────────────────────────────────────
// Finalizers & size hints
// ──────────────────────────────────────────────────────────
//

func SetFinalizer(addr uintptr, on bool) (code Code) {
	defer guard(&code)
	if addr == 0 {
		return CodeInternal
	}
	svc, err := service.Current()
	if err != nil {
		return codeFor(err)
	}
	return codeFor(svc.SetFinalizer(addr, on))
}

func HasFinalizer(addr uintptr) (v int32) {
	defer guardPred(&v)
	svc, err := service.Current()
	if err != nil {
		return 0
	}
	return pred(svc.HasFinalizer(addr))
}

// SetFinalizerHook installs the per-reclaimed-entry callback; nil
// clears it.
func SetFinalizerHook(fn gcheap.FinalizerHook) (code Code) {
	defer guard(&code)
	svc, err := service.Current()
	if err != nil {
		return codeFor(err)
	}
	return codeFor(svc.SetFinalizerHook(fn))
}

func SetObjectSize(addr uintptr, size uint64) (code Code) {
	defer guard(&code)
	if addr == 0 {
		return CodeInternal
	}
	svc, err := service.Current()
	if err != nil {
		return codeFor(err)
	}
	return codeFor(svc.SetObjectSize(addr, size))
}

// GetObjectSize returns the size hint, -1 when addr is null, untracked,
// or no collector exists, or a negative code when the query cannot run.
func GetObjectSize(addr uintptr) (v int64) {
	defer guardVal(&v, int64(-1))
	svc, err := service.Current()
	if err != nil {
		return -1
	}
	size, err := svc.ObjectSize(addr)
	if err != nil {
		return int64(codeFor(err))
	}
	return size
}

//
// ──────────────────────────────────────────────────────────
// Automatic tracking
// ──────────────────────────────────────────────────────────
//

func EnableAutoTracking() (code Code) {
	defer guard(&code)
	svc, err := service.Current()
	if err != nil {
		return codeFor(err)
	}
	return codeFor(svc.EnableAutoTracking())
}

func DisableAutoTracking() (code Code) {
	defer guard(&code)
	svc, err := service.Current()
	if err != nil {
		return codeFor(err)
	}
	return codeFor(svc.DisableAutoTracking())
}

func IsAutoTrackingEnabled() (v int32) {
	defer guardPred(&v)
	svc, err := service.Current()
	if err != nil {
		return 0
	}
	return pred(svc.IsAutoTrackingEnabled())
}

func ObjectCreated(addr uintptr) (code Code) {
	defer guard(&code)
	if addr == 0 {
		return CodeInternal
	}
	svc, err := service.Current()
	if err != nil {
		return codeFor(err)
	}
	return codeFor(svc.ObjectCreated(addr))
}

func ObjectDestroyed(addr uintptr) (code Code) {
	defer guard(&code)
	if addr == 0 {
		return CodeInternal
	}
	svc, err := service.Current()
	if err != nil {
		return codeFor(err)
	}
	return codeFor(svc.ObjectDestroyed(addr))
}

//
// ──────────────────────────────────────────────────────────
// Stats, debug, diagnostics
// ──────────────────────────────────────────────────────────
//

// GetStats captures a snapshot. The shim writes the out-record only on
// success.
func GetStats() (st service.Stats, code Code) {
	defer guard(&code)
	svc, err := service.Current()
	if err != nil {
		return service.Stats{}, codeFor(err)
	}
	snap, err := svc.Stats()
	if err != nil {
		return service.Stats{}, codeFor(err)
	}
	return snap, CodeSuccess
}

// GetStatsProto encodes the framed protobuf snapshot into buf and
// reports the frame length. A frame larger than buf is internal.
func GetStatsProto(buf []byte) (written int32, code Code) {
	defer guard(&code)
	if len(buf) == 0 {
		return 0, CodeInternal
	}
	svc, err := service.Current()
	if err != nil {
		return 0, codeFor(err)
	}
	frame, err := svc.StatsProto()
	if err != nil {
		return 0, codeFor(err)
	}
	if len(frame) > len(buf) {
		return 0, CodeInternal
	}
	copy(buf, frame)
	return int32(len(frame)), CodeSuccess
}

// WriteMetrics renders the text exposition into buf, truncating with a
// terminator like every other textual output.
func WriteMetrics(buf []byte) (code Code) {
	defer guard(&code)
	if len(buf) == 0 {
		return CodeInternal
	}
	svc, err := service.Current()
	if err != nil {
		buf[0] = 0
		return codeFor(err)
	}
	text, err := svc.MetricsText()
	if err != nil {
		buf[0] = 0
		return codeFor(err)
	}
	writeCString(buf, string(text))
	return CodeSuccess
}

func SetDebug(flags int32) (code Code) {
	defer guard(&code)
	svc, err := service.Current()
	if err != nil {
		return codeFor(err)
	}
	svc.SetDebug(flags)
	return CodeSuccess
}

// GetDebugFlags returns the current bitmask, or 0 when no collector
// exists.
func GetDebugFlags() (v int32) {
	defer guardVal(&v, 0)
	svc, err := service.Current()
	if err != nil {
		return 0
	}
	return svc.DebugFlags()
}

func GetStateString(buf []byte) (code Code) {
	defer guard(&code)
	if len(buf) == 0 {
		return CodeInternal
	}
	svc, err := service.Current()
	if err != nil {
		buf[0] = 0
		return codeFor(err)
	}
	state, err := svc.StateString()
	if err != nil {
		buf[0] = 0
		return codeFor(err)
	}
	writeCString(buf, state)
	return CodeSuccess
}

// DebugState emits the state summary through the debug logger.
func DebugState() (code Code) {
	defer guard(&code)
	svc, err := service.Current()
	if err != nil {
		return codeFor(err)
	}
	return codeFor(svc.DebugState())
}

// writeCString copies s into buf truncated to leave room for the
// terminator.
func writeCString(buf []byte, s string) {
	n := len(s)
	if n > len(buf)-1 {
		n = len(buf) - 1
	}
	copy(buf, s[:n])
	buf[n] = 0
}
