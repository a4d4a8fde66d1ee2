package gcheap

import "sort"

// RefGraph holds the reference edges the host has registered between
// tracked addresses. When the host registers nothing, every entry counts
// as externally rooted: sound, but cycles are never reclaimed.
type RefGraph struct {
	out map[uintptr]map[uintptr]struct{}
	in  map[uintptr]map[uintptr]struct{}
}

func NewRefGraph() *RefGraph {
	return &RefGraph{
		out: make(map[uintptr]map[uintptr]struct{}),
		in:  make(map[uintptr]map[uintptr]struct{}),
	}
}

// Add records the edge from -> to. Adding an existing edge is a no-op.
func (g *RefGraph) Add(from, to uintptr) {
	if g.out[from] == nil {
		g.out[from] = make(map[uintptr]struct{})
	}
	g.out[from][to] = struct{}{}
	if g.in[to] == nil {
		g.in[to] = make(map[uintptr]struct{})
	}
	g.in[to][from] = struct{}{}
}

// Remove deletes the edge from -> to and reports whether it existed.
func (g *RefGraph) Remove(from, to uintptr) bool {
	targets, ok := g.out[from]
	if !ok {
		return false
	}
	if _, ok := targets[to]; !ok {
		return false
	}
	delete(targets, to)
	if len(targets) == 0 {
		delete(g.out, from)
	}
	sources := g.in[to]
	delete(sources, from)
	if len(sources) == 0 {
		delete(g.in, to)
	}
	return true
}

// DropNode removes every edge touching addr.
func (g *RefGraph) DropNode(addr uintptr) {
	for to := range g.out[addr] {
		sources := g.in[to]
		delete(sources, addr)
		if len(sources) == 0 {
			delete(g.in, to)
		}
	}
	delete(g.out, addr)
	for from := range g.in[addr] {
		targets := g.out[from]
		delete(targets, addr)
		if len(targets) == 0 {
			delete(g.out, from)
		}
	}
	delete(g.in, addr)
}

// HasIncoming reports whether any recorded edge points at addr.
func (g *RefGraph) HasIncoming(addr uintptr) bool {
	return len(g.in[addr]) > 0
}

// Referents returns the targets of addr's outgoing edges in ascending
// address order.
func (g *RefGraph) Referents(addr uintptr) []uintptr {
	targets := g.out[addr]
	if len(targets) == 0 {
		return nil
	}
	out := make([]uintptr, 0, len(targets))
	for to := range targets {
		out = append(out, to)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Clear drops every edge.
func (g *RefGraph) Clear() {
	g.out = make(map[uintptr]map[uintptr]struct{})
	g.in = make(map[uintptr]map[uintptr]struct{})
}
