package gcheap

import "sort"

// Registry maps opaque addresses to entries. Membership here is the
// single source of truth for is-tracked queries.
type Registry struct {
	entries map[uintptr]*Entry
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[uintptr]*Entry)}
}

// Insert adds a new entry. The address must be non-nil and not already
// present.
func (r *Registry) Insert(e *Entry) error {
	if e.Addr == 0 {
		return ErrNilAddress
	}
	if _, ok := r.entries[e.Addr]; ok {
		return ErrAlreadyTracked
	}
	r.entries[e.Addr] = e
	return nil
}

// Remove deletes and returns the entry for addr.
func (r *Registry) Remove(addr uintptr) (*Entry, error) {
	if addr == 0 {
		return nil, ErrNilAddress
	}
	e, ok := r.entries[addr]
	if !ok {
		return nil, ErrNotTracked
	}
	delete(r.entries, addr)
	return e, nil
}

func (r *Registry) Get(addr uintptr) (*Entry, bool) {
	e, ok := r.entries[addr]
	return e, ok
}

func (r *Registry) Contains(addr uintptr) bool {
	_, ok := r.entries[addr]
	return ok
}

func (r *Registry) Len() int {
	return len(r.entries)
}

// Addrs returns every tracked address in ascending order. Collection and
// debug output walk the registry this way so results are stable within a
// build even though callers are promised no particular order.
func (r *Registry) Addrs() []uintptr {
	addrs := make([]uintptr, 0, len(r.entries))
	for addr := range r.entries {
		addrs = append(addrs, addr)
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })
	return addrs
}

// Drain removes every entry and returns them for recycling.
func (r *Registry) Drain() []*Entry {
	drained := make([]*Entry, 0, len(r.entries))
	for _, e := range r.entries {
		drained = append(drained, e)
	}
	r.entries = make(map[uintptr]*Entry)
	return drained
}
