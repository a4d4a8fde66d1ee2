package service

// ---------------- Basic Benchmarks ---------------- //

import "testing"

func BenchmarkTrack(b *testing.B) {
	svc := newTestService()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = svc.Track(uintptr(i + 1))
	}
}

func BenchmarkTrackUntrack(b *testing.B) {
	svc := newTestService()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		addr := uintptr(i + 1)
		_ = svc.Track(addr)
		_ = svc.Untrack(addr)
	}
}

func BenchmarkCollectGeneration0(b *testing.B) {
	svc := newTestService()

	// preload a young population of two-entry cycles so the mark phase
	// has real work; no entry is rooted, so the first cycle reclaims them
	// all and later iterations run over an empty registry.
	for i := 0; i < 1024; i++ {
		addr := uintptr(i + 1)
		_ = svc.Track(addr)
		if i%2 == 1 {
			_ = svc.AddReference(addr-1, addr)
			_ = svc.AddReference(addr, addr-1)
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := svc.Collect(0); err != nil {
			b.Fatalf("collect: %v", err)
		}
	}
}

func BenchmarkStats(b *testing.B) {
	svc := newTestService()
	for i := 0; i < 4096; i++ {
		_ = svc.Track(uintptr(i + 1))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = svc.Stats()
	}
}
