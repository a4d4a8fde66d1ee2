package gcheap

// NumGenerations is fixed at three, following the conventional
// young/middle/old split.
const NumGenerations = 3

// DefaultThresholds is the tuning applied on init.
var DefaultThresholds = [NumGenerations]int{700, 10, 10}

// GenerationSet keeps per-generation membership counts, the mutable
// thresholds, and the scheduler counters that decide when a collection
// is due:
//
//	allocs0  generation-0 tracks since the last generation-0 collection
//	c1       generation-0 collections since the last generation-1 collection
//	c2       generation-1 collections since the last generation-2 collection
type GenerationSet struct {
	counts     [NumGenerations]int
	thresholds [NumGenerations]int
	allocs0    int
	c1, c2     int
}

func NewGenerationSet() *GenerationSet {
	return &GenerationSet{thresholds: DefaultThresholds}
}

// Count returns the number of entries in gen, or -1 when gen is out of
// range.
func (g *GenerationSet) Count(gen int) int {
	if gen < 0 || gen >= NumGenerations {
		return -1
	}
	return g.counts[gen]
}

// TotalCount is the sum of all generation counts.
func (g *GenerationSet) TotalCount() int {
	total := 0
	for _, c := range g.counts {
		total += c
	}
	return total
}

// Threshold returns the threshold for gen, or -1 when gen is out of
// range.
func (g *GenerationSet) Threshold(gen int) int {
	if gen < 0 || gen >= NumGenerations {
		return -1
	}
	return g.thresholds[gen]
}

// SetThreshold updates the threshold for gen. A threshold of zero
// disables the scheduling rule for that generation; manual collection
// still works.
func (g *GenerationSet) SetThreshold(gen, v int) error {
	if gen < 0 || gen >= NumGenerations || v < 0 {
		return ErrInvalidGeneration
	}
	g.thresholds[gen] = v
	return nil
}

// ObjectTracked records a new generation-0 entry.
func (g *GenerationSet) ObjectTracked() {
	g.counts[0]++
	g.allocs0++
}

// ObjectRemoved records the removal of an entry from gen.
func (g *GenerationSet) ObjectRemoved(gen int) {
	if gen >= 0 && gen < NumGenerations && g.counts[gen] > 0 {
		g.counts[gen]--
	}
}

// ObjectPromoted moves one entry's membership from one generation to
// another.
func (g *GenerationSet) ObjectPromoted(from, to int) {
	g.ObjectRemoved(from)
	if to >= 0 && to < NumGenerations {
		g.counts[to]++
	}
}

// ScheduledGeneration returns the highest generation whose rule fires,
// or -1 when no collection is due.
func (g *GenerationSet) ScheduledGeneration() int {
	if g.thresholds[2] > 0 && g.c2 >= g.thresholds[2] {
		return 2
	}
	if g.thresholds[1] > 0 && g.c1 >= g.thresholds[1] {
		return 1
	}
	if g.thresholds[0] > 0 && g.allocs0 >= g.thresholds[0] {
		return 0
	}
	return -1
}

// NeedsCollection reports whether any scheduling rule currently fires.
func (g *GenerationSet) NeedsCollection() bool {
	return g.ScheduledGeneration() >= 0
}

// CollectionFinished applies the counter updates after a collection of
// gen: each collection resets its own counters and bumps the
// next-higher one.
func (g *GenerationSet) CollectionFinished(gen int) {
	switch gen {
	case 0:
		g.allocs0 = 0
		g.c1++
	case 1:
		g.allocs0 = 0
		g.c1 = 0
		g.c2++
	case 2:
		g.allocs0 = 0
		g.c1 = 0
		g.c2 = 0
	}
}

// ClearCounts zeroes membership and scheduler counters after the
// registry is cleared. Thresholds are left alone.
func (g *GenerationSet) ClearCounts() {
	g.counts = [NumGenerations]int{}
	g.allocs0 = 0
	g.c1 = 0
	g.c2 = 0
}
