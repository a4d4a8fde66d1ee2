package gcheap

import (
	"errors"
	"testing"
)

func TestRegistryInsertAndRemove(t *testing.T) {
	r := NewRegistry()

	if err := r.Insert(&Entry{Addr: 0x1000}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := r.Insert(&Entry{Addr: 0x1000}); !errors.Is(err, ErrAlreadyTracked) {
		t.Fatalf("expected ErrAlreadyTracked, got %v", err)
	}
	if err := r.Insert(&Entry{Addr: 0}); !errors.Is(err, ErrNilAddress) {
		t.Fatalf("expected ErrNilAddress, got %v", err)
	}
	if !r.Contains(0x1000) || r.Len() != 1 {
		t.Fatalf("expected single tracked entry, len=%d", r.Len())
	}

	e, err := r.Remove(0x1000)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if e.Addr != 0x1000 {
		t.Fatalf("removed wrong entry: %x", e.Addr)
	}
	if _, err := r.Remove(0x1000); !errors.Is(err, ErrNotTracked) {
		t.Fatalf("expected ErrNotTracked, got %v", err)
	}
	if _, err := r.Remove(0); !errors.Is(err, ErrNilAddress) {
		t.Fatalf("expected ErrNilAddress, got %v", err)
	}
}

func TestRegistryAddrsSorted(t *testing.T) {
	r := NewRegistry()
	for _, a := range []uintptr{0x3000, 0x1000, 0x2000} {
		if err := r.Insert(&Entry{Addr: a}); err != nil {
			t.Fatalf("insert %x: %v", a, err)
		}
	}
	addrs := r.Addrs()
	want := []uintptr{0x1000, 0x2000, 0x3000}
	if len(addrs) != len(want) {
		t.Fatalf("expected %d addrs, got %d", len(want), len(addrs))
	}
	for i, a := range want {
		if addrs[i] != a {
			t.Fatalf("addrs[%d] = %x, want %x", i, addrs[i], a)
		}
	}
}

func TestRegistryDrain(t *testing.T) {
	r := NewRegistry()
	for a := uintptr(1); a <= 5; a++ {
		_ = r.Insert(&Entry{Addr: a * 0x10})
	}
	drained := r.Drain()
	if len(drained) != 5 {
		t.Fatalf("expected 5 drained entries, got %d", len(drained))
	}
	if r.Len() != 0 {
		t.Fatalf("expected empty registry after drain, len=%d", r.Len())
	}
}

func TestEntryInfo(t *testing.T) {
	e := &Entry{Addr: 0xdead, Gen: 1, Seq: 7, Flags: FlagUncollectable | FlagHasFinalizer, Size: 64}
	got := e.Info()
	want := "addr=0xdead gen=1 seq=7 flags=UF size=64"
	if got != want {
		t.Fatalf("info = %q, want %q", got, want)
	}
	if (Flag(0)).Letters() != "-" {
		t.Fatalf("empty flags should render as -")
	}
}
