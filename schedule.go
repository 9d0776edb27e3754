// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package rendergraph

import (
	"fmt"
	"strings"
)

// Edge is a dependency edge of a compiled frame. Edges alternate between
// kinds: a pass writes a resource, a resource feeds a pass.
type Edge struct {
	From     string
	To       string
	FromKind NodeKind
}

// Schedule describes one compiled frame.
type Schedule struct {
	// Order lists the passes to execute, producers before consumers.
	Order []string

	// Culled lists the registered passes dropped this frame because they
	// contribute to no used-externally resource, in registration order.
	Culled []string

	// Resources lists the resources that survived culling, in creation
	// order.
	Resources []string

	// Edges lists the edges among surviving nodes.
	Edges []Edge
}

// Position returns the index of pass name in Order, or -1.
func (s *Schedule) Position(name string) int {
	for i, n := range s.Order {
		if n == name {
			return i
		}
	}
	return -1
}

// DOT exports the schedule as Graphviz DOT text. Passes are boxes labelled
// with their execution position, resources are ellipses.
func (s *Schedule) DOT() string {
	var b strings.Builder
	b.WriteString("digraph rendergraph {\n")
	b.WriteString("  rankdir=LR;\n")
	for i, name := range s.Order {
		fmt.Fprintf(&b, "  %q [shape=box,label=\"%d: %s\"];\n", "p:"+name, i, escapeDOT(name))
	}
	for _, name := range s.Resources {
		fmt.Fprintf(&b, "  %q [shape=ellipse,label=\"%s\"];\n", "r:"+name, escapeDOT(name))
	}
	for _, e := range s.Edges {
		from, to := "r:"+e.From, "p:"+e.To
		if e.FromKind == KindPass {
			from, to = "p:"+e.From, "r:"+e.To
		}
		fmt.Fprintf(&b, "  %q -> %q;\n", from, to)
	}
	b.WriteString("}\n")
	return b.String()
}

func escapeDOT(s string) string {
	return strings.ReplaceAll(s, "\"", "\\\"")
}
