package gcheap

// FinalizerHook is invoked once per reclaimed entry, before the entry
// leaves the registry.
type FinalizerHook func(addr uintptr)

// CycleResult summarizes one collection cycle.
type CycleResult struct {
	Generation    int
	Candidates    int
	Reclaimed     int
	Promoted      int
	Uncollectable int
}

// Collector runs collection cycles over the registry. It also owns the
// list of addresses previous cycles classified as uncollectable; those
// entries stay tracked until untracked, reclassified, or cleared.
type Collector struct {
	registry *Registry
	gens     *GenerationSet
	refs     *RefGraph

	uncollectable    []uintptr
	uncollectableSet map[uintptr]struct{}
}

func NewCollector(registry *Registry, gens *GenerationSet, refs *RefGraph) *Collector {
	return &Collector{
		registry:         registry,
		gens:             gens,
		refs:             refs,
		uncollectableSet: make(map[uintptr]struct{}),
	}
}

// Collect runs one cycle over generation gen and everything younger.
//
// Phases, in order: candidate scan, mark from roots, classification of
// unreachable finalizer entries, sweep, promotion, scheduler counter
// updates. Roots are candidates with no recorded incoming edge,
// candidates the host pinned uncollectable, and every tracked entry
// outside the candidate set. hook runs per reclaimed entry before
// removal; recycle receives each removed entry afterwards.
func (c *Collector) Collect(gen int, hook FinalizerHook, recycle func(*Entry)) (CycleResult, error) {
	if gen < 0 || gen >= NumGenerations {
		return CycleResult{}, ErrInvalidGeneration
	}
	res := CycleResult{Generation: gen}

	// Candidate scan: generation gen and all younger, address order.
	addrs := c.registry.Addrs()
	candidates := make(map[uintptr]*Entry)
	order := make([]uintptr, 0, len(addrs))
	roots := make([]uintptr, 0, len(addrs))
	for _, addr := range addrs {
		e, _ := c.registry.Get(addr)
		if e.Gen > gen {
			// Not collected this cycle; anything it references survives.
			roots = append(roots, addr)
			continue
		}
		e.clearVisited()
		candidates[addr] = e
		order = append(order, addr)
	}
	res.Candidates = len(order)

	// Mark.
	for _, addr := range order {
		e := candidates[addr]
		if e.Flags&FlagUncollectable != 0 || !c.refs.HasIncoming(addr) {
			e.setVisited()
			roots = append(roots, addr)
		}
	}
	for len(roots) > 0 {
		addr := roots[0]
		roots = roots[1:]
		for _, to := range c.refs.Referents(addr) {
			e, ok := candidates[to]
			if !ok || e.visited() {
				continue
			}
			e.setVisited()
			roots = append(roots, to)
		}
	}

	// Classify, sweep, promote.
	for _, addr := range order {
		e := candidates[addr]
		switch {
		case e.visited():
			e.clearVisited()
			if e.Gen < NumGenerations-1 {
				c.gens.ObjectPromoted(e.Gen, e.Gen+1)
				e.Gen++
				res.Promoted++
			}
		case e.Flags&FlagHasFinalizer != 0:
			c.addUncollectable(addr)
			res.Uncollectable++
		default:
			if hook != nil {
				hook(addr)
			}
			removed, err := c.registry.Remove(addr)
			if err != nil {
				continue
			}
			c.gens.ObjectRemoved(removed.Gen)
			c.refs.DropNode(addr)
			c.DropUncollectable(addr)
			res.Reclaimed++
			if recycle != nil {
				recycle(removed)
			}
		}
	}

	c.gens.CollectionFinished(gen)
	return res, nil
}

// UncollectableCount returns the length of the classified list.
func (c *Collector) UncollectableCount() int {
	return len(c.uncollectable)
}

// IsCycleUncollectable reports whether a cycle classified addr.
func (c *Collector) IsCycleUncollectable(addr uintptr) bool {
	_, ok := c.uncollectableSet[addr]
	return ok
}

// ClearUncollectable empties the classified list. The entries stay
// tracked and become eligible for reclassification next cycle.
func (c *Collector) ClearUncollectable() {
	c.uncollectable = c.uncollectable[:0]
	c.uncollectableSet = make(map[uintptr]struct{})
}

// DropUncollectable removes addr from the classified list, if present.
func (c *Collector) DropUncollectable(addr uintptr) {
	if _, ok := c.uncollectableSet[addr]; !ok {
		return
	}
	delete(c.uncollectableSet, addr)
	for i, a := range c.uncollectable {
		if a == addr {
			c.uncollectable = append(c.uncollectable[:i], c.uncollectable[i+1:]...)
			break
		}
	}
}

func (c *Collector) addUncollectable(addr uintptr) {
	if _, ok := c.uncollectableSet[addr]; ok {
		return
	}
	c.uncollectableSet[addr] = struct{}{}
	c.uncollectable = append(c.uncollectable, addr)
}
