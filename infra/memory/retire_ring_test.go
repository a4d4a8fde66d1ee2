package memory

import "testing"

type item struct{ id int }

func TestRetireRingBasic(t *testing.T) {
	r := NewRetireRing(4) // capacity 4
	o1 := &item{id: 1}
	o2 := &item{id: 2}

	if !r.Enqueue(o1) || !r.Enqueue(o2) {
		t.Fatal("enqueue failed unexpectedly")
	}
	if r.Dequeue() != o1 {
		t.Error("expected first dequeue to be o1")
	}
	if r.Dequeue() != o2 {
		t.Error("expected second dequeue to be o2")
	}
	if r.Dequeue() != nil {
		t.Error("expected empty ring to return nil")
	}
}

func TestRetireRingFull(t *testing.T) {
	r := NewRetireRing(2)
	if !r.Enqueue(&item{}) || !r.Enqueue(&item{}) {
		t.Fatal("ring should hold its capacity")
	}
	if r.Enqueue(&item{}) {
		t.Fatal("full ring must reject")
	}
	if r.Dequeue() == nil {
		t.Fatal("expected dequeue after fill")
	}
	if !r.Enqueue(&item{}) {
		t.Fatal("ring should accept after a slot frees")
	}
}

func TestPoolRecycle(t *testing.T) {
	p := NewPool(func() *item { return &item{} })
	v := p.Get()
	v.id = 9
	p.PutAny(v)
	if got := p.Get(); got == nil {
		t.Fatal("pool returned nil")
	}
}
