// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package rendergraph

// Resource is a logical dependency slot in the graph. It carries a
// descriptor and lifetime flags, and, while bound, the physical resource
// backing it.
//
// Resources are created once with RenderGraph.NewResource and live as long
// as the graph. They hold no references to passes; edges are recomputed
// from pass slots every frame.
type Resource struct {
	graph *RenderGraph
	index int

	name       string
	desc       Descriptor
	transient  bool
	usedExtern bool

	physical    PhysicalResource
	attachedKey string
}

// ResourceOption configures a Resource during creation.
type ResourceOption func(*Resource)

// Transient marks the resource as transient: its physical resource returns
// to the pool at the end of every frame it was attached in. This is the
// default.
func Transient() ResourceOption {
	return func(r *Resource) { r.transient = true }
}

// Persistent marks the resource as persistent: its physical resource stays
// attached across frames. Use it for temporal and history buffers.
func Persistent() ResourceOption {
	return func(r *Resource) { r.transient = false }
}

// UsedExternally marks the resource as a required final output. Used
// externally resources seed the per-frame culling.
func UsedExternally() ResourceOption {
	return func(r *Resource) { r.usedExtern = true }
}

// Name returns the resource name.
func (r *Resource) Name() string { return r.name }

// Descriptor returns the current descriptor.
func (r *Resource) Descriptor() Descriptor { return r.desc }

// SetDescriptor replaces the descriptor. The new shape takes effect at the
// next frame's attaching phase: if its key differs from the attached one,
// the old physical resource returns to the pool.
func (r *Resource) SetDescriptor(desc Descriptor) { r.desc = desc }

// IsTransient reports whether the resource is transient.
func (r *Resource) IsTransient() bool { return r.transient }

// IsUsedExternally reports whether the resource is a required final output.
func (r *Resource) IsUsedExternally() bool { return r.usedExtern }

// SetUsedExternally toggles the used-externally flag. The change affects
// culling from the next frame on.
func (r *Resource) SetUsedExternally(v bool) { r.usedExtern = v }

// Physical returns the attached physical resource, or nil when unbound.
// Passes call it from Render to reach the object they draw into.
func (r *Resource) Physical() PhysicalResource { return r.physical }

// AttachedKey returns the descriptor key recorded when the current physical
// resource was attached, or "" when unbound.
func (r *Resource) AttachedKey() string { return r.attachedKey }

// String returns the resource name.
func (r *Resource) String() string { return r.name }

// detach clears the binding and returns what was attached.
func (r *Resource) detach() (PhysicalResource, string) {
	res, key := r.physical, r.attachedKey
	r.physical = nil
	r.attachedKey = ""
	return res, key
}
