package gcheap

import (
	"errors"
	"testing"
)

type fixture struct {
	reg  *Registry
	gens *GenerationSet
	refs *RefGraph
	col  *Collector
}

func newFixture() *fixture {
	reg := NewRegistry()
	gens := NewGenerationSet()
	refs := NewRefGraph()
	return &fixture{reg: reg, gens: gens, refs: refs, col: NewCollector(reg, gens, refs)}
}

func (f *fixture) track(t *testing.T, addr uintptr) *Entry {
	t.Helper()
	e := &Entry{Addr: addr}
	if err := f.reg.Insert(e); err != nil {
		t.Fatalf("track %x: %v", addr, err)
	}
	f.gens.ObjectTracked()
	return e
}

func TestCollectInvalidGeneration(t *testing.T) {
	f := newFixture()
	if _, err := f.col.Collect(3, nil, nil); !errors.Is(err, ErrInvalidGeneration) {
		t.Fatalf("expected ErrInvalidGeneration, got %v", err)
	}
	if _, err := f.col.Collect(-1, nil, nil); !errors.Is(err, ErrInvalidGeneration) {
		t.Fatalf("expected ErrInvalidGeneration, got %v", err)
	}
}

func TestCollectPromotesRootedSurvivors(t *testing.T) {
	f := newFixture()
	f.track(t, 0x10)
	f.track(t, 0x20)

	res, err := f.col.Collect(0, nil, nil)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if res.Candidates != 2 || res.Reclaimed != 0 || res.Promoted != 2 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if f.gens.Count(0) != 0 || f.gens.Count(1) != 2 {
		t.Fatalf("counts = %d/%d, want 0/2", f.gens.Count(0), f.gens.Count(1))
	}

	// Survivors keep climbing until generation 2, then stay.
	if _, err := f.col.Collect(1, nil, nil); err != nil {
		t.Fatalf("collect gen1: %v", err)
	}
	if f.gens.Count(2) != 2 {
		t.Fatalf("count(2) = %d, want 2", f.gens.Count(2))
	}
	res, err = f.col.Collect(2, nil, nil)
	if err != nil {
		t.Fatalf("collect gen2: %v", err)
	}
	if res.Promoted != 0 || f.gens.Count(2) != 2 {
		t.Fatalf("generation-2 survivors must stay put: %+v", res)
	}
}

func TestCollectReclaimsUnreachableCycle(t *testing.T) {
	f := newFixture()
	a, b := uintptr(0x10), uintptr(0x20)
	f.track(t, a)
	f.track(t, b)
	f.refs.Add(a, b)
	f.refs.Add(b, a)

	var reclaimed []uintptr
	var recycled int
	res, err := f.col.Collect(0,
		func(addr uintptr) { reclaimed = append(reclaimed, addr) },
		func(e *Entry) { recycled++ },
	)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if res.Reclaimed != 2 || res.Promoted != 0 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if len(reclaimed) != 2 || recycled != 2 {
		t.Fatalf("hook/recycle counts: %d/%d", len(reclaimed), recycled)
	}
	if f.reg.Len() != 0 || f.gens.TotalCount() != 0 {
		t.Fatalf("registry not empty after sweep")
	}
}

func TestCollectKeepsExternallyRootedChain(t *testing.T) {
	f := newFixture()
	root, a, b := uintptr(0x10), uintptr(0x20), uintptr(0x30)
	f.track(t, root)
	f.track(t, a)
	f.track(t, b)
	f.refs.Add(root, a)
	f.refs.Add(a, b)
	f.refs.Add(b, a)

	res, err := f.col.Collect(0, nil, nil)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if res.Reclaimed != 0 || res.Promoted != 3 {
		t.Fatalf("rooted chain must survive: %+v", res)
	}
}

func TestCollectOlderGenerationRootsYounger(t *testing.T) {
	f := newFixture()
	old, young := uintptr(0x10), uintptr(0x20)
	e := f.track(t, old)
	f.gens.ObjectPromoted(0, 1)
	e.Gen = 1
	f.track(t, young)
	f.refs.Add(old, young)
	// old -> young gives young an incoming edge, so young is not its own
	// root; the back edge young -> old does not change that.
	f.refs.Add(young, old)

	res, err := f.col.Collect(0, nil, nil)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if res.Candidates != 1 || res.Reclaimed != 0 || res.Promoted != 1 {
		t.Fatalf("younger entry referenced from an older generation must survive: %+v", res)
	}
	if f.gens.Count(1) != 2 {
		t.Fatalf("count(1) = %d, want 2", f.gens.Count(1))
	}
}

func TestCollectClassifiesFinalizerEntries(t *testing.T) {
	f := newFixture()
	a, b := uintptr(0x10), uintptr(0x20)
	ea := f.track(t, a)
	f.track(t, b)
	ea.Flags |= FlagHasFinalizer
	f.refs.Add(a, b)
	f.refs.Add(b, a)

	res, err := f.col.Collect(0, nil, nil)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if res.Uncollectable != 1 || res.Reclaimed != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if !f.col.IsCycleUncollectable(a) {
		t.Fatal("finalizer entry should be on the uncollectable list")
	}
	if !f.reg.Contains(a) {
		t.Fatal("classified entry must stay tracked")
	}
	if f.col.UncollectableCount() != 1 {
		t.Fatalf("uncollectable count = %d", f.col.UncollectableCount())
	}

	f.col.ClearUncollectable()
	if f.col.UncollectableCount() != 0 || !f.reg.Contains(a) {
		t.Fatal("clear must empty the list without untracking")
	}
}

func TestCollectPinnedEntrySurvives(t *testing.T) {
	f := newFixture()
	a, b := uintptr(0x10), uintptr(0x20)
	ea := f.track(t, a)
	f.track(t, b)
	ea.Flags |= FlagUncollectable
	// a sits on an unreachable cycle but is pinned; b hangs off it.
	f.refs.Add(a, b)
	f.refs.Add(b, a)

	res, err := f.col.Collect(0, nil, nil)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if res.Reclaimed != 0 || res.Promoted != 2 {
		t.Fatalf("pinned entry and its referents must survive: %+v", res)
	}
}

func TestDropUncollectable(t *testing.T) {
	f := newFixture()
	a := uintptr(0x10)
	ea := f.track(t, a)
	ea.Flags |= FlagHasFinalizer
	if _, err := f.col.Collect(0, nil, nil); err != nil {
		t.Fatalf("collect: %v", err)
	}
	if !f.col.IsCycleUncollectable(a) {
		t.Fatal("expected classification")
	}
	f.col.DropUncollectable(a)
	if f.col.IsCycleUncollectable(a) || f.col.UncollectableCount() != 0 {
		t.Fatal("drop must remove the classification")
	}
}

func TestRefGraphEdges(t *testing.T) {
	g := NewRefGraph()
	g.Add(1, 2)
	g.Add(1, 2) // idempotent
	g.Add(1, 3)
	if !g.HasIncoming(2) || !g.HasIncoming(3) {
		t.Fatal("expected incoming edges")
	}
	refs := g.Referents(1)
	if len(refs) != 2 || refs[0] != 2 || refs[1] != 3 {
		t.Fatalf("referents = %v", refs)
	}
	if !g.Remove(1, 2) {
		t.Fatal("remove existing edge should report true")
	}
	if g.Remove(1, 2) {
		t.Fatal("remove absent edge should report false")
	}
	g.DropNode(1)
	if g.HasIncoming(3) {
		t.Fatal("drop node must clear its outgoing edges")
	}
}
