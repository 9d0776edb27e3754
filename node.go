// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package rendergraph

// NodeKind distinguishes the two kinds of graph nodes.
type NodeKind uint8

const (
	// KindPass nodes execute work.
	KindPass NodeKind = iota

	// KindResource nodes are structural only.
	KindResource
)

// String returns "pass" or "resource".
func (k NodeKind) String() string {
	if k == KindPass {
		return "pass"
	}
	return "resource"
}

// IsRenderable reports whether nodes of this kind execute work.
func (k NodeKind) IsRenderable() bool { return k == KindPass }

// nodeID addresses a node in the per-frame index space: passes occupy
// [0, len(passes)), resources follow at len(passes)+resource.index.
type nodeID int32

// frameGraph is the adjacency of one frame, rebuilt from slot bindings by
// the linking phase. The passes and resources arenas are never mutated by
// it.
type frameGraph struct {
	numPasses int
	numNodes  int

	// succ[n] lists the successors of n in edge insertion order.
	succ [][]nodeID

	// producers[r] lists the passes writing resource r.
	producers [][]nodeID

	// inputs[p] lists the resources read by pass p.
	inputs [][]nodeID
}

func newFrameGraph(numPasses, numResources int) *frameGraph {
	n := numPasses + numResources
	return &frameGraph{
		numPasses: numPasses,
		numNodes:  n,
		succ:      make([][]nodeID, n),
		producers: make([][]nodeID, numResources),
		inputs:    make([][]nodeID, numPasses),
	}
}

func (fg *frameGraph) kind(n nodeID) NodeKind {
	if int(n) < fg.numPasses {
		return KindPass
	}
	return KindResource
}

func (fg *frameGraph) resourceNode(index int) nodeID {
	return nodeID(fg.numPasses + index) //nolint:gosec // G115: arena size fits int32
}

func (fg *frameGraph) resourceIndex(n nodeID) int {
	return int(n) - fg.numPasses
}

// addInput records resource -> pass.
func (fg *frameGraph) addInput(pass nodeID, resource nodeID) {
	fg.succ[resource] = append(fg.succ[resource], pass)
	fg.inputs[pass] = append(fg.inputs[pass], resource)
}

// addOutput records pass -> resource.
func (fg *frameGraph) addOutput(pass nodeID, resource nodeID) {
	fg.succ[pass] = append(fg.succ[pass], resource)
	ri := fg.resourceIndex(resource)
	fg.producers[ri] = append(fg.producers[ri], pass)
}

// cull returns the membership set of nodes backward-reachable from roots:
// a resource pulls in its producers, a pass pulls in its inputs.
func (fg *frameGraph) cull(roots []nodeID) []bool {
	live := make([]bool, fg.numNodes)
	stack := make([]nodeID, 0, len(roots))
	for _, r := range roots {
		if !live[r] {
			live[r] = true
			stack = append(stack, r)
		}
	}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		var next []nodeID
		if fg.kind(n) == KindPass {
			next = fg.inputs[n]
		} else {
			next = fg.producers[fg.resourceIndex(n)]
		}
		for _, m := range next {
			if !live[m] {
				live[m] = true
				stack = append(stack, m)
			}
		}
	}
	return live
}

// sort orders the live subgraph with Kahn's algorithm. Indegrees are
// counted fresh over edges whose both ends are live. The ready queue is
// strictly FIFO, seeded in node index order. It returns the live passes in
// order and the number of live nodes visited.
func (fg *frameGraph) sort(live []bool) (order []nodeID, visited, size int) {
	indegree := make([]int, fg.numNodes)
	for n := range fg.numNodes {
		if !live[n] {
			continue
		}
		size++
		for _, m := range fg.succ[n] {
			if live[m] {
				indegree[m]++
			}
		}
	}

	queue := make([]nodeID, 0, size)
	for n := range fg.numNodes {
		if live[n] && indegree[n] == 0 {
			queue = append(queue, nodeID(n)) //nolint:gosec // G115: arena size fits int32
		}
	}

	for head := 0; head < len(queue); head++ {
		n := queue[head]
		visited++
		if fg.kind(n) == KindPass {
			order = append(order, n)
		}
		for _, m := range fg.succ[n] {
			if !live[m] {
				continue
			}
			indegree[m]--
			if indegree[m] == 0 {
				queue = append(queue, m)
			}
		}
	}
	return order, visited, size
}
