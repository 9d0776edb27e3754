// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package rendergraph

import (
	"fmt"

	"go.uber.org/multierr"
)

// Phase is the scheduler state within a frame.
type Phase uint8

// Phases, in the order a frame walks through them.
const (
	PhaseIdle Phase = iota
	PhaseLinking
	PhaseCulling
	PhaseSorting
	PhaseAttaching
	PhaseExecuting
	PhaseReleasing
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLinking:
		return "linking"
	case PhaseCulling:
		return "culling"
	case PhaseSorting:
		return "sorting"
	case PhaseAttaching:
		return "attaching"
	case PhaseExecuting:
		return "executing"
	case PhaseReleasing:
		return "releasing"
	default:
		return fmt.Sprintf("Phase(%d)", p)
	}
}

// Config holds configuration for creating a RenderGraph.
type Config struct {
	// PoolTTL is the number of idle frames a pooled physical resource
	// survives before disposal. Defaults to DefaultPoolTTL if <= 0.
	PoolTTL int
}

// passRecord is an arena entry for a registered pass.
type passRecord struct {
	name string
	pass Pass
}

// RenderGraph is the frame scheduler. Every frame it links passes through
// their slot bindings, culls the work that does not contribute to any
// used-externally resource, orders the rest topologically, attaches
// physical resources from its pool, executes the passes and releases
// transient resources back to the pool.
//
// Passes and resources are stored in two arenas addressed by index; the
// per-frame adjacency is rebuilt from scratch on every call to Execute, so
// rebinding slots or toggling used-externally flags between frames needs
// no invalidation.
//
// RenderGraph is not safe for concurrent use. It is meant to be driven by a
// single render loop.
type RenderGraph struct {
	builder Builder
	pool    *Pool

	passes    []passRecord
	byName    map[string]int
	resources []*Resource

	phase  Phase
	frame  uint64
	stats  Stats
	closed bool
}

// New creates an empty render graph that builds physical resources with
// builder.
func New(builder Builder, cfg Config) *RenderGraph {
	return &RenderGraph{
		builder: builder,
		pool:    NewPool(cfg.PoolTTL),
		byName:  make(map[string]int),
	}
}

// NewResource creates a logical resource owned by g. Without options the
// resource is transient and not used externally.
func (g *RenderGraph) NewResource(name string, desc Descriptor, opts ...ResourceOption) *Resource {
	r := &Resource{
		graph:     g,
		index:     len(g.resources),
		name:      name,
		desc:      desc,
		transient: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	g.resources = append(g.resources, r)
	return r
}

// AddPass registers p. Registration order is the tie-breaker for passes
// that become ready at the same time.
// Returns ErrDuplicatePassName if a pass with the same name exists.
func (g *RenderGraph) AddPass(p Pass) error {
	if p == nil {
		return ErrNilPass
	}
	name := p.Name()
	if _, ok := g.byName[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicatePassName, name)
	}
	g.byName[name] = len(g.passes)
	g.passes = append(g.passes, passRecord{name: name, pass: p})
	return nil
}

// Pass returns the registered pass with the given name.
func (g *RenderGraph) Pass(name string) (Pass, bool) {
	i, ok := g.byName[name]
	if !ok {
		return nil, false
	}
	return g.passes[i].pass, true
}

// Passes returns the registered passes in registration order.
func (g *RenderGraph) Passes() []Pass {
	out := make([]Pass, len(g.passes))
	for i, rec := range g.passes {
		out[i] = rec.pass
	}
	return out
}

// Resources returns the graph's resources in creation order.
func (g *RenderGraph) Resources() []*Resource {
	out := make([]*Resource, len(g.resources))
	copy(out, g.resources)
	return out
}

// Phase returns the current scheduler phase. Outside Execute it is
// PhaseIdle.
func (g *RenderGraph) Phase() Phase { return g.phase }

// FrameIndex returns the index the next executed frame will carry.
func (g *RenderGraph) FrameIndex() uint64 { return g.frame }

// Stats returns the statistics of the last executed frame.
func (g *RenderGraph) Stats() Stats { return g.stats }

// PoolStats returns the statistics of the graph's physical resource pool.
func (g *RenderGraph) PoolStats() PoolStats { return g.pool.Stats() }

// plan is the output of linking, culling and sorting.
type plan struct {
	fg    *frameGraph
	live  []bool
	order []nodeID
}

// Compile runs the linking, culling and sorting phases without attaching
// resources or executing passes, and returns the resulting schedule.
func (g *RenderGraph) Compile() (*Schedule, error) {
	if err := g.begin(); err != nil {
		return nil, err
	}
	defer g.setPhase(PhaseIdle)

	pl, err := g.plan()
	if err != nil {
		return nil, err
	}
	return g.schedule(pl), nil
}

// Execute runs one frame: linking, culling, sorting, attaching, executing
// and releasing. It returns the schedule that was executed.
//
// A dependency cycle aborts the frame before anything is attached or
// executed and returns a *CycleError. A builder failure aborts the frame
// before any pass runs. Errors returned by passes do not stop the frame:
// the remaining passes still execute and the errors are returned combined
// after the releasing phase.
func (g *RenderGraph) Execute() (*Schedule, error) {
	if err := g.begin(); err != nil {
		return nil, err
	}
	defer g.setPhase(PhaseIdle)

	pl, err := g.plan()
	if err != nil {
		return nil, err
	}
	sched := g.schedule(pl)

	g.stats = Stats{
		Frame:        g.frame,
		PassesCulled: len(sched.Culled),
	}
	frame := g.frame
	g.frame++

	g.setPhase(PhaseAttaching)
	touched := g.touched(pl.order)
	if err := g.attach(touched); err != nil {
		Logger().Warn("rendergraph: frame aborted", "frame", frame, "error", err)
		g.releaseTransients(touched)
		return sched, err
	}

	g.setPhase(PhaseExecuting)
	var errs error
	for i, n := range pl.order {
		rec := g.passes[n]
		if perr := rec.pass.Render(&Frame{Index: frame, Position: i}); perr != nil {
			Logger().Warn("rendergraph: pass failed", "frame", frame, "pass", rec.name, "error", perr)
			errs = multierr.Append(errs, fmt.Errorf("%w: %s: %w", ErrPassFailed, rec.name, perr))
		}
		g.stats.PassesExecuted++
	}

	g.setPhase(PhaseReleasing)
	g.releaseTransients(touched)
	g.stats.PoolDisposed = g.pool.Update()

	Logger().Debug("rendergraph: frame done", "frame", frame, "stats", g.stats)
	return sched, errs
}

// Close disposes every physical resource, attached or pooled. The graph
// must not be used afterwards.
func (g *RenderGraph) Close() error {
	if g.closed {
		return nil
	}
	if g.phase != PhaseIdle {
		return ErrFrameInProgress
	}
	for _, r := range g.resources {
		if res, _ := r.detach(); res != nil {
			res.Dispose()
		}
	}
	g.pool.Clear()
	g.closed = true
	Logger().Info("rendergraph: closed", "frames", g.frame)
	return nil
}

func (g *RenderGraph) begin() error {
	if g.closed {
		return ErrClosed
	}
	if g.phase != PhaseIdle {
		return fmt.Errorf("%w: phase %s", ErrFrameInProgress, g.phase)
	}
	return nil
}

func (g *RenderGraph) setPhase(p Phase) {
	g.phase = p
}

// plan runs linking, culling and sorting.
func (g *RenderGraph) plan() (*plan, error) {
	g.setPhase(PhaseLinking)
	fg, err := g.link()
	if err != nil {
		return nil, err
	}

	g.setPhase(PhaseCulling)
	var roots []nodeID
	for _, r := range g.resources {
		if r.usedExtern {
			roots = append(roots, fg.resourceNode(r.index))
		}
	}
	if len(roots) == 0 {
		Logger().Debug("rendergraph: no used-externally resources, nothing to render")
	}
	live := fg.cull(roots)

	g.setPhase(PhaseSorting)
	order, visited, size := fg.sort(live)
	if visited < size {
		return nil, g.cycleError(fg, live, order)
	}
	return &plan{fg: fg, live: live, order: order}, nil
}

// link rebuilds the frame's adjacency from the current slot bindings.
// Local slots are skipped.
func (g *RenderGraph) link() (*frameGraph, error) {
	fg := newFrameGraph(len(g.passes), len(g.resources))
	for pi, rec := range g.passes {
		pn := nodeID(pi) //nolint:gosec // G115: arena size fits int32
		for _, s := range rec.pass.Slots() {
			r := s.resource
			if r == nil {
				continue
			}
			if r.graph != g {
				return nil, fmt.Errorf("%w: pass %q, resource %q", ErrForeignResource, rec.name, r.name)
			}
			switch s.role {
			case Input:
				fg.addInput(pn, fg.resourceNode(r.index))
			case Output:
				fg.addOutput(pn, fg.resourceNode(r.index))
			}
		}
	}
	return fg, nil
}

func (g *RenderGraph) cycleError(fg *frameGraph, live []bool, order []nodeID) error {
	ordered := make([]bool, fg.numPasses)
	for _, n := range order {
		ordered[n] = true
	}
	var stuck []string
	for pi, rec := range g.passes {
		if live[pi] && !ordered[pi] {
			stuck = append(stuck, rec.name)
		}
	}
	return &CycleError{Passes: stuck}
}

// touched returns every resource bound to any slot of the ordered passes,
// deduplicated, in first-touch order.
func (g *RenderGraph) touched(order []nodeID) []*Resource {
	seen := make([]bool, len(g.resources))
	var out []*Resource
	for _, n := range order {
		for _, s := range g.passes[n].pass.Slots() {
			r := s.resource
			if r == nil || seen[r.index] {
				continue
			}
			seen[r.index] = true
			out = append(out, r)
		}
	}
	return out
}

// attach binds a physical resource to every touched resource. A binding
// whose key still matches is kept; otherwise the stale one goes back to the
// pool and a matching one is taken from the pool or built.
func (g *RenderGraph) attach(touched []*Resource) error {
	for _, r := range touched {
		if r.desc == nil {
			return fmt.Errorf("%w: resource %q has no descriptor", ErrBuildFailed, r.name)
		}
		key := r.desc.Key()
		g.stats.ResourcesAttached++
		g.stats.AttachedBytes += r.desc.MemorySize()

		if r.physical != nil && r.attachedKey == key {
			g.stats.Kept++
			continue
		}
		if r.physical != nil {
			old, oldKey := r.detach()
			g.pool.Push(oldKey, old)
		}

		res, ok := g.pool.Get(key)
		if ok {
			g.stats.Recycled++
		} else {
			built, err := g.builder.CreateFromDescriptor(r.desc)
			if err != nil {
				return fmt.Errorf("%w: resource %q (%s): %w", ErrBuildFailed, r.name, key, err)
			}
			res = built
			g.stats.Created++
		}
		r.physical = res
		r.attachedKey = key
	}
	return nil
}

// releaseTransients returns the physical resources of transient resources
// to the pool. Persistent resources stay attached.
func (g *RenderGraph) releaseTransients(touched []*Resource) {
	for _, r := range touched {
		if !r.transient || r.physical == nil {
			continue
		}
		res, key := r.detach()
		g.pool.Push(key, res)
	}
}

// schedule converts a plan into its public form.
func (g *RenderGraph) schedule(pl *plan) *Schedule {
	s := &Schedule{Order: make([]string, 0, len(pl.order))}
	for _, n := range pl.order {
		s.Order = append(s.Order, g.passes[n].name)
	}
	for pi, rec := range g.passes {
		if !pl.live[pi] {
			s.Culled = append(s.Culled, rec.name)
		}
	}
	for _, r := range g.resources {
		n := pl.fg.resourceNode(r.index)
		if !pl.live[n] {
			continue
		}
		s.Resources = append(s.Resources, r.name)
	}
	for n := range pl.fg.numNodes {
		if !pl.live[n] {
			continue
		}
		for _, m := range pl.fg.succ[n] {
			if pl.live[m] {
				from := nodeID(n) //nolint:gosec // G115: arena size fits int32
				s.Edges = append(s.Edges, Edge{
					From:     g.nodeName(pl.fg, from),
					To:       g.nodeName(pl.fg, m),
					FromKind: pl.fg.kind(from),
				})
			}
		}
	}
	return s
}

func (g *RenderGraph) nodeName(fg *frameGraph, n nodeID) string {
	if fg.kind(n) == KindPass {
		return g.passes[n].name
	}
	return g.resources[fg.resourceIndex(n)].name
}
