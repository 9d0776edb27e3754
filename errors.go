// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package rendergraph

import (
	"errors"
	"strings"
)

// Scheduler errors.
var (
	// ErrGraphCycle is returned from Execute and Compile when the declared
	// pass dependencies reachable from a used-externally resource form a
	// cycle. It always indicates a wiring defect.
	ErrGraphCycle = errors.New("rendergraph: dependency cycle")

	// ErrDuplicatePassName is returned by AddPass when a pass with the
	// same name is already registered.
	ErrDuplicatePassName = errors.New("rendergraph: duplicate pass name")

	// ErrNilPass is returned by AddPass for a nil pass.
	ErrNilPass = errors.New("rendergraph: nil pass")

	// ErrBuildFailed is returned when the builder cannot construct a
	// physical resource during the attaching phase.
	ErrBuildFailed = errors.New("rendergraph: physical resource build failed")

	// ErrPassFailed wraps errors returned by Pass.Render.
	ErrPassFailed = errors.New("rendergraph: pass failed")

	// ErrForeignResource is returned when a pass slot is bound to a
	// resource created by a different graph.
	ErrForeignResource = errors.New("rendergraph: resource belongs to another graph")

	// ErrFrameInProgress is returned when Execute or Compile is called
	// while a frame is already running, e.g. from inside Pass.Render.
	ErrFrameInProgress = errors.New("rendergraph: frame in progress")

	// ErrClosed is returned when operating on a closed graph.
	ErrClosed = errors.New("rendergraph: graph closed")
)

// CycleError reports the passes that could not be ordered because they
// lie on (or behind) a dependency cycle. It unwraps to ErrGraphCycle.
type CycleError struct {
	// Passes lists the unordered pass names in registration order.
	Passes []string
}

func (e *CycleError) Error() string {
	if len(e.Passes) == 0 {
		return ErrGraphCycle.Error()
	}
	return ErrGraphCycle.Error() + " among passes: " + strings.Join(e.Passes, ", ")
}

func (e *CycleError) Unwrap() error { return ErrGraphCycle }
