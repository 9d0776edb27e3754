// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package rendergraph

import (
	"testing"
)

func TestNewPool_DefaultTTL(t *testing.T) {
	tests := []struct {
		ttl  int
		want int
	}{
		{0, DefaultPoolTTL},
		{-3, DefaultPoolTTL},
		{5, 5},
	}
	for _, tt := range tests {
		if got := NewPool(tt.ttl).TTL(); got != tt.want {
			t.Errorf("NewPool(%d).TTL() = %d, want %d", tt.ttl, got, tt.want)
		}
	}
}

func TestPool_GetIsLIFOWithinKey(t *testing.T) {
	p := NewPool(0)
	first := &fakePhysical{id: 1}
	other := &fakePhysical{id: 2}
	second := &fakePhysical{id: 3}

	p.Push("tex:a", first)
	p.Push("tex:b", other)
	p.Push("tex:a", second)

	got, ok := p.Get("tex:a")
	if !ok || got != second {
		t.Fatalf("Get() = %v, %v; want most recently pushed", got, ok)
	}
	got, ok = p.Get("tex:a")
	if !ok || got != first {
		t.Fatalf("Get() = %v, %v; want first", got, ok)
	}
	if _, ok := p.Get("tex:a"); ok {
		t.Error("Get() on drained key returned a resource")
	}
	if p.Len() != 1 {
		t.Errorf("Len() = %d, want 1", p.Len())
	}

	st := p.Stats()
	if st.Hits != 2 || st.Misses != 1 || st.Keys != 1 {
		t.Errorf("Stats() = %v, want 2 hits, 1 miss, 1 key", st)
	}
}

func TestPool_GetReleasesSlot(t *testing.T) {
	p := NewPool(0)
	a := &fakePhysical{id: 1}
	b := &fakePhysical{id: 2}
	p.Push("tex:a", a)
	p.Push("tex:b", b)

	if got, ok := p.Get("tex:a"); !ok || got != a {
		t.Fatalf("Get() = %v, %v; want a", got, ok)
	}
	tail := p.entries[len(p.entries):cap(p.entries)]
	for i, e := range tail {
		if e.resource != nil {
			t.Errorf("entries tail[%d] still holds %v", i, e.resource)
		}
	}
	if got, ok := p.Get("tex:b"); !ok || got != b {
		t.Errorf("Get() = %v, %v; want b", got, ok)
	}
}

func TestPool_PushNilIgnored(t *testing.T) {
	p := NewPool(0)
	p.Push("k", nil)
	if p.Len() != 0 {
		t.Errorf("Len() = %d after pushing nil, want 0", p.Len())
	}
}

func TestPool_UpdateDisposesAfterTTL(t *testing.T) {
	p := NewPool(2)
	old := &fakePhysical{id: 1}
	young := &fakePhysical{id: 2}
	p.Push("k", old)

	if n := p.Update(); n != 0 {
		t.Fatalf("Update() #1 disposed %d, want 0", n)
	}
	p.Push("k", young)
	if n := p.Update(); n != 0 {
		t.Fatalf("Update() #2 disposed %d, want 0", n)
	}
	// old reaches age 3 > ttl.
	if n := p.Update(); n != 1 {
		t.Fatalf("Update() #3 disposed %d, want 1", n)
	}
	if old.disposed != 1 || young.disposed != 0 {
		t.Errorf("disposed old=%d young=%d, want 1 and 0", old.disposed, young.disposed)
	}
	got, ok := p.Get("k")
	if !ok || got != young {
		t.Errorf("Get() = %v, %v; want the surviving entry", got, ok)
	}
	if p.Stats().Disposed != 1 {
		t.Errorf("Stats().Disposed = %d, want 1", p.Stats().Disposed)
	}
}

func TestPool_Clear(t *testing.T) {
	p := NewPool(0)
	res := []*fakePhysical{{id: 1}, {id: 2}, {id: 3}}
	for _, r := range res {
		p.Push("k", r)
	}
	p.Clear()
	if p.Len() != 0 {
		t.Errorf("Len() = %d after Clear, want 0", p.Len())
	}
	for _, r := range res {
		if r.disposed != 1 {
			t.Errorf("%v disposed %d times, want 1", r, r.disposed)
		}
	}
	if p.Stats().Disposed != 3 {
		t.Errorf("Stats().Disposed = %d, want 3", p.Stats().Disposed)
	}
}

func TestPoolStats_String(t *testing.T) {
	s := PoolStats{Entries: 3, Keys: 2, Hits: 10, Misses: 4, Disposed: 1}
	want := "Pool[3 entries, 2 keys, 10 hits, 4 misses, 1 disposed]"
	if got := s.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func BenchmarkPool_GetPush(b *testing.B) {
	p := NewPool(0)
	keys := []string{"tex:800x600", "tex:400x300", "tex:200x150", "target:800x600"}
	for _, k := range keys {
		p.Push(k, &fakePhysical{key: k})
	}
	b.ReportAllocs()
	for i := 0; b.Loop(); i++ {
		k := keys[i%len(keys)]
		res, _ := p.Get(k)
		p.Push(k, res)
	}
}
