// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package rendergraph

import (
	"errors"
	"testing"
)

func TestCycleError(t *testing.T) {
	tests := []struct {
		name   string
		passes []string
		want   string
	}{
		{"named", []string{"taa", "composite"}, "rendergraph: dependency cycle among passes: taa, composite"},
		{"empty", nil, "rendergraph: dependency cycle"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &CycleError{Passes: tt.passes}
			if got := err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
			if !errors.Is(err, ErrGraphCycle) {
				t.Error("CycleError does not unwrap to ErrGraphCycle")
			}
		})
	}
}

func TestStringers(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"role input", Input.String(), "input"},
		{"role local", Local.String(), "local"},
		{"role unknown", Role(9).String(), "Role(9)"},
		{"kind pass", KindPass.String(), "pass"},
		{"kind resource", KindResource.String(), "resource"},
		{"phase idle", PhaseIdle.String(), "idle"},
		{"phase releasing", PhaseReleasing.String(), "releasing"},
		{"phase unknown", Phase(42).String(), "Phase(42)"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: String() = %q, want %q", tt.name, tt.got, tt.want)
		}
	}
	if !KindPass.IsRenderable() || KindResource.IsRenderable() {
		t.Error("only pass nodes are renderable")
	}
}
