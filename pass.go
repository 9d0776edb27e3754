// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package rendergraph

import "fmt"

// Role tags a pass slot as an input, an output, or pass-private storage.
type Role uint8

const (
	// Input slots read a resource produced elsewhere.
	Input Role = iota

	// Output slots write a resource.
	Output

	// Local slots hold pass-private scratch resources. They form no graph
	// edges; they are attached and released with the pass.
	Local
)

// String returns a human-readable name for the role.
func (r Role) String() string {
	switch r {
	case Input:
		return "input"
	case Output:
		return "output"
	case Local:
		return "local"
	default:
		return fmt.Sprintf("Role(%d)", r)
	}
}

// Slot is one named resource dependency of a pass. Concrete passes declare
// a struct with one Slot field per dependency:
//
//	type bloomSlots struct {
//	    Scene   rendergraph.Slot // input
//	    Scratch rendergraph.Slot // local
//	    Bloom   rendergraph.Slot // output
//	}
//
// The role is fixed at construction; only the bound resource may change.
type Slot struct {
	role     Role
	resource *Resource
}

// InputSlot returns an input slot bound to r (which may be nil).
func InputSlot(r *Resource) Slot { return Slot{role: Input, resource: r} }

// OutputSlot returns an output slot bound to r (which may be nil).
func OutputSlot(r *Resource) Slot { return Slot{role: Output, resource: r} }

// LocalSlot returns a local slot bound to r (which may be nil).
func LocalSlot(r *Resource) Slot { return Slot{role: Local, resource: r} }

// Role returns the slot role.
func (s *Slot) Role() Role { return s.role }

// Resource returns the bound resource, or nil for a disabled slot.
func (s *Slot) Resource() *Resource { return s.resource }

// Bind replaces the bound resource wholesale. Binding nil disables the
// slot. The previous resource is not modified.
func (s *Slot) Bind(r *Resource) { s.resource = r }

// Physical returns the physical resource behind the slot, or nil when the
// slot is disabled or unbound this frame.
func (s *Slot) Physical() PhysicalResource {
	if s.resource == nil {
		return nil
	}
	return s.resource.physical
}

// Pass is a unit of GPU work with a fixed set of resource slots.
//
// Render is invoked only by RenderGraph.Execute, at most once per frame and
// only when the pass survived culling. A pass that depends on data that is
// not ready yet (a slot bound to nil, an optional feature turned off, a
// tile still loading) must skip its body or substitute a placeholder; the
// graph never blocks or retries.
type Pass interface {
	// Name identifies the pass. Names are unique within a graph.
	Name() string

	// Slots returns pointers to the pass's slot fields in declaration order.
	// The returned set must be the same on every call.
	Slots() []*Slot

	// Render records the pass's work for the current frame.
	Render(f *Frame) error
}

// Frame is handed to Pass.Render.
type Frame struct {
	// Index is the zero-based number of the frame being executed.
	Index uint64

	// Position is the pass's index in the frame's execution order.
	Position int
}

// ResourcesOfRole returns the non-nil resources bound to p's slots of the
// given role, in slot order.
func ResourcesOfRole(p Pass, role Role) []*Resource {
	var out []*Resource
	for _, s := range p.Slots() {
		if s.role == role && s.resource != nil {
			out = append(out, s.resource)
		}
	}
	return out
}

// AllResources returns the non-nil resources bound to any of p's slots, in
// slot order.
func AllResources(p Pass) []*Resource {
	slots := p.Slots()
	out := make([]*Resource, 0, len(slots))
	for _, s := range slots {
		if s.resource != nil {
			out = append(out, s.resource)
		}
	}
	return out
}

// ExternalOutputs returns p's output resources that are marked as used
// externally.
func ExternalOutputs(p Pass) []*Resource {
	var out []*Resource
	for _, s := range p.Slots() {
		if s.role == Output && s.resource != nil && s.resource.usedExtern {
			out = append(out, s.resource)
		}
	}
	return out
}
