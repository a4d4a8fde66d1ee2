package main

/*
#include "abi.h"
*/
import "C"

import (
	"unsafe"

	"pygc/api/cabi"
)

func asAddr(p unsafe.Pointer) uintptr {
	return uintptr(p)
}

func asBuf(p unsafe.Pointer, size C.size_t) []byte {
	return unsafe.Slice((*byte)(p), int(size))
}

//
// ──────────────────────────────────────────────────────────
// Lifecycle
// ──────────────────────────────────────────────────────────
//

//export py_gc_init
func py_gc_init() C.gc_return_code_t {
	return C.gc_return_code_t(cabi.Init())
}

//export py_gc_cleanup
func py_gc_cleanup() C.gc_return_code_t {
	return C.gc_return_code_t(cabi.Cleanup())
}

//export py_gc_is_initialized
func py_gc_is_initialized() C.int32_t {
	return C.int32_t(cabi.IsInitialized())
}

//export py_gc_enable
func py_gc_enable() C.gc_return_code_t {
	return C.gc_return_code_t(cabi.Enable())
}

//export py_gc_disable
func py_gc_disable() C.gc_return_code_t {
	return C.gc_return_code_t(cabi.Disable())
}

//export py_gc_is_enabled
func py_gc_is_enabled() C.int32_t {
	return C.int32_t(cabi.IsEnabled())
}

//
// ──────────────────────────────────────────────────────────
// Tracking
// ──────────────────────────────────────────────────────────
//

//export py_gc_track
func py_gc_track(obj unsafe.Pointer) C.gc_return_code_t {
	return C.gc_return_code_t(cabi.Track(asAddr(obj)))
}

//export py_gc_untrack
func py_gc_untrack(obj unsafe.Pointer) C.gc_return_code_t {
	return C.gc_return_code_t(cabi.Untrack(asAddr(obj)))
}

//export py_gc_debug_untrack
func py_gc_debug_untrack(obj unsafe.Pointer) C.gc_return_code_t {
	return C.gc_return_code_t(cabi.DebugUntrack(asAddr(obj)))
}

//export py_gc_is_tracked
func py_gc_is_tracked(obj unsafe.Pointer) C.int32_t {
	return C.int32_t(cabi.IsTracked(asAddr(obj)))
}

//export py_gc_clear_registry
func py_gc_clear_registry() C.gc_return_code_t {
	return C.gc_return_code_t(cabi.ClearRegistry())
}

//export py_gc_get_registry_count
func py_gc_get_registry_count() C.int32_t {
	return C.int32_t(cabi.RegistryCount())
}

//export py_gc_get_tracked_info
func py_gc_get_tracked_info(obj unsafe.Pointer, buffer *C.char, size C.size_t) C.gc_return_code_t {
	if buffer == nil || size == 0 {
		return C.gc_return_code_t(cabi.CodeInternal)
	}
	return C.gc_return_code_t(cabi.TrackedInfo(asAddr(obj), asBuf(unsafe.Pointer(buffer), size)))
}

//
// ──────────────────────────────────────────────────────────
// Collection
// ──────────────────────────────────────────────────────────
//

//export py_gc_collect
func py_gc_collect() C.gc_return_code_t {
	return C.gc_return_code_t(cabi.Collect())
}

//export py_gc_collect_generation
func py_gc_collect_generation(generation C.int32_t) C.gc_return_code_t {
	return C.gc_return_code_t(cabi.CollectGeneration(int32(generation)))
}

//export py_gc_needs_collection
func py_gc_needs_collection() C.int32_t {
	return C.int32_t(cabi.NeedsCollection())
}

//export py_gc_collect_if_needed
func py_gc_collect_if_needed() C.gc_return_code_t {
	return C.gc_return_code_t(cabi.CollectIfNeeded())
}

//
// ──────────────────────────────────────────────────────────
// Counts & thresholds
// ──────────────────────────────────────────────────────────
//

//export py_gc_get_count
func py_gc_get_count() C.int32_t {
	return C.int32_t(cabi.RegistryCount())
}

//export py_gc_get_generation_count
func py_gc_get_generation_count(generation C.int32_t) C.int32_t {
	return C.int32_t(cabi.GenerationCount(int32(generation)))
}

//export py_gc_set_threshold
func py_gc_set_threshold(generation, threshold C.int32_t) C.gc_return_code_t {
	return C.gc_return_code_t(cabi.SetThreshold(int32(generation), int32(threshold)))
}

//export py_gc_get_threshold
func py_gc_get_threshold(generation C.int32_t) C.int32_t {
	return C.int32_t(cabi.GetThreshold(int32(generation)))
}

//
// ──────────────────────────────────────────────────────────
// Uncollectables
// ──────────────────────────────────────────────────────────
//

//export py_gc_get_uncollectable_count
func py_gc_get_uncollectable_count() C.int32_t {
	return C.int32_t(cabi.UncollectableCount())
}

//export py_gc_clear_uncollectable
func py_gc_clear_uncollectable() C.gc_return_code_t {
	return C.gc_return_code_t(cabi.ClearUncollectable())
}

//export py_gc_mark_uncollectable
func py_gc_mark_uncollectable(obj unsafe.Pointer) C.gc_return_code_t {
	return C.gc_return_code_t(cabi.MarkUncollectable(asAddr(obj)))
}

//export py_gc_unmark_uncollectable
func py_gc_unmark_uncollectable(obj unsafe.Pointer) C.gc_return_code_t {
	return C.gc_return_code_t(cabi.UnmarkUncollectable(asAddr(obj)))
}

//export py_gc_is_uncollectable
func py_gc_is_uncollectable(obj unsafe.Pointer) C.int32_t {
	return C.int32_t(cabi.IsUncollectable(asAddr(obj)))
}

//
// ──────────────────────────────────────────────────────────
// Reference graph
// ──────────────────────────────────────────────────────────
//

//export py_gc_add_reference
func py_gc_add_reference(from, to unsafe.Pointer) C.gc_return_code_t {
	return C.gc_return_code_t(cabi.AddReference(asAddr(from), asAddr(to)))
}

//export py_gc_remove_reference
func py_gc_remove_reference(from, to unsafe.Pointer) C.gc_return_code_t {
	return C.gc_return_code_t(cabi.RemoveReference(asAddr(from), asAddr(to)))
}

//
// ──────────────────────────────────────────────────────────
// Finalizers & size hints
// ──────────────────────────────────────────────────────────
//

//export py_gc_set_finalizer
func py_gc_set_finalizer(obj unsafe.Pointer, has_finalizer C.int32_t) C.gc_return_code_t {
	return C.gc_return_code_t(cabi.SetFinalizer(asAddr(obj), has_finalizer != 0))
}

//export py_gc_has_finalizer
func py_gc_has_finalizer(obj unsafe.Pointer) C.int32_t {
	return C.int32_t(cabi.HasFinalizer(asAddr(obj)))
}

//export py_gc_set_finalizer_hook
func py_gc_set_finalizer_hook(fn C.gc_finalizer_hook_t) C.gc_return_code_t {
	if fn == nil {
		return C.gc_return_code_t(cabi.SetFinalizerHook(nil))
	}
	return C.gc_return_code_t(cabi.SetFinalizerHook(func(addr uintptr) {
		invokeFinalizerHook(fn, addr)
	}))
}

//export py_gc_set_object_size
func py_gc_set_object_size(obj unsafe.Pointer, size C.size_t) C.gc_return_code_t {
	return C.gc_return_code_t(cabi.SetObjectSize(asAddr(obj), uint64(size)))
}

//export py_gc_get_object_size
func py_gc_get_object_size(obj unsafe.Pointer) C.int64_t {
	return C.int64_t(cabi.GetObjectSize(asAddr(obj)))
}

//
// ──────────────────────────────────────────────────────────
// Automatic tracking
// ──────────────────────────────────────────────────────────
//

//export py_gc_enable_automatic_tracking
func py_gc_enable_automatic_tracking() C.gc_return_code_t {
	return C.gc_return_code_t(cabi.EnableAutoTracking())
}

//export py_gc_disable_automatic_tracking
func py_gc_disable_automatic_tracking() C.gc_return_code_t {
	return C.gc_return_code_t(cabi.DisableAutoTracking())
}

//export py_gc_is_automatic_tracking_enabled
func py_gc_is_automatic_tracking_enabled() C.int32_t {
	return C.int32_t(cabi.IsAutoTrackingEnabled())
}

//export py_gc_object_created
func py_gc_object_created(obj unsafe.Pointer) C.gc_return_code_t {
	return C.gc_return_code_t(cabi.ObjectCreated(asAddr(obj)))
}

//export py_gc_object_destroyed
func py_gc_object_destroyed(obj unsafe.Pointer) C.gc_return_code_t {
	return C.gc_return_code_t(cabi.ObjectDestroyed(asAddr(obj)))
}

//
// ──────────────────────────────────────────────────────────
// Stats, debug, diagnostics
// ──────────────────────────────────────────────────────────
//

//export py_gc_get_stats
func py_gc_get_stats(stats *C.gc_stats_t) C.gc_return_code_t {
	if stats == nil {
		return C.gc_return_code_t(cabi.CodeInternal)
	}
	st, code := cabi.GetStats()
	if code != cabi.CodeSuccess {
		return C.gc_return_code_t(code)
	}
	stats.total_tracked = C.int32_t(st.TotalTracked)
	for i, c := range st.GenerationCounts {
		stats.generation_counts[i] = C.int32_t(c)
	}
	stats.uncollectable = C.int32_t(st.Uncollectable)
	return C.gc_return_code_t(cabi.CodeSuccess)
}

//export py_gc_get_stats_proto
func py_gc_get_stats_proto(buf *C.uint8_t, cap_ C.size_t, written *C.int32_t) C.gc_return_code_t {
	if buf == nil || cap_ == 0 || written == nil {
		return C.gc_return_code_t(cabi.CodeInternal)
	}
	n, code := cabi.GetStatsProto(asBuf(unsafe.Pointer(buf), cap_))
	if code != cabi.CodeSuccess {
		return C.gc_return_code_t(code)
	}
	*written = C.int32_t(n)
	return C.gc_return_code_t(cabi.CodeSuccess)
}

//export py_gc_write_metrics
func py_gc_write_metrics(buffer *C.char, size C.size_t) C.gc_return_code_t {
	if buffer == nil || size == 0 {
		return C.gc_return_code_t(cabi.CodeInternal)
	}
	return C.gc_return_code_t(cabi.WriteMetrics(asBuf(unsafe.Pointer(buffer), size)))
}

//export py_gc_set_debug
func py_gc_set_debug(flags C.int32_t) C.gc_return_code_t {
	return C.gc_return_code_t(cabi.SetDebug(int32(flags)))
}

//export py_gc_set_debug_flags
func py_gc_set_debug_flags(flags C.int32_t) C.gc_return_code_t {
	return C.gc_return_code_t(cabi.SetDebug(int32(flags)))
}

//export py_gc_get_debug_flags
func py_gc_get_debug_flags() C.int32_t {
	return C.int32_t(cabi.GetDebugFlags())
}

//export py_gc_get_state_string
func py_gc_get_state_string(buffer *C.char, size C.size_t) C.gc_return_code_t {
	if buffer == nil || size == 0 {
		return C.gc_return_code_t(cabi.CodeInternal)
	}
	return C.gc_return_code_t(cabi.GetStateString(asBuf(unsafe.Pointer(buffer), size)))
}

//export py_gc_debug_state
func py_gc_debug_state() C.gc_return_code_t {
	return C.gc_return_code_t(cabi.DebugState())
}
