// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package rendergraph

import (
	"errors"
	"fmt"
)

// testDesc is a descriptor whose key is the string itself.
type testDesc string

func (d testDesc) Key() string        { return string(d) }
func (d testDesc) MemorySize() uint64 { return uint64(len(d)) }

// fakePhysical records disposal.
type fakePhysical struct {
	id       int
	key      string
	disposed int
}

func (f *fakePhysical) Dispose() { f.disposed++ }

func (f *fakePhysical) String() string { return fmt.Sprintf("phys#%d(%s)", f.id, f.key) }

// fakeBuilder hands out numbered fakePhysical objects.
type fakeBuilder struct {
	built []*fakePhysical
	err   error
}

func (b *fakeBuilder) CreateFromDescriptor(d Descriptor) (PhysicalResource, error) {
	if b.err != nil {
		return nil, b.err
	}
	p := &fakePhysical{id: len(b.built), key: d.Key()}
	b.built = append(b.built, p)
	return p, nil
}

// testPass records its executions into a shared log.
type testPass struct {
	name   string
	slots  []Slot
	log    *[]string
	err    error
	render func(f *Frame) error
	calls  int
}

func newTestPass(log *[]string, name string, slots ...Slot) *testPass {
	return &testPass{name: name, slots: slots, log: log}
}

func (p *testPass) Name() string { return p.name }

func (p *testPass) Slots() []*Slot {
	out := make([]*Slot, len(p.slots))
	for i := range p.slots {
		out[i] = &p.slots[i]
	}
	return out
}

func (p *testPass) Render(f *Frame) error {
	p.calls++
	if p.log != nil {
		*p.log = append(*p.log, p.name)
	}
	if p.render != nil {
		return p.render(f)
	}
	return p.err
}

var errBoom = errors.New("boom")

// mustAdd registers passes or panics; used to keep scenario setup compact.
func mustAdd(g *RenderGraph, passes ...Pass) {
	for _, p := range passes {
		if err := g.AddPass(p); err != nil {
			panic(err)
		}
	}
}
