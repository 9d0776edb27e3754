// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package native

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/rendergraph"
	"github.com/gogpu/rendergraph/backend"
)

// BackendNoop is the name of the headless HAL backend.
const BackendNoop = backend.BackendNoop

// init registers the noop backend on package import:
//
//	import _ "github.com/gogpu/rendergraph/backend/native"
func init() {
	backend.Register(BackendNoop, func() backend.RenderBackend {
		return NewNoopBackend()
	})
}

// NoopBackend runs the native builder on the wgpu-hal noop device. Every
// resource goes through the real create and destroy calls, so it checks
// resource lifecycles without a GPU.
type NoopBackend struct {
	builder *Builder
	release func()
}

// NewNoopBackend creates an uninitialized noop backend.
func NewNoopBackend() *NoopBackend {
	return &NoopBackend{}
}

// Name returns the backend identifier.
func (b *NoopBackend) Name() string { return BackendNoop }

// Init opens the noop device. Calling Init twice is a no-op.
func (b *NoopBackend) Init() error {
	if b.builder != nil {
		return nil
	}
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		return fmt.Errorf("native: create instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return errors.New("native: no adapters")
	}
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return fmt.Errorf("native: open device: %w", err)
	}

	builder, err := NewBuilder(openDev.Device)
	if err != nil {
		openDev.Device.Destroy()
		instance.Destroy()
		return err
	}
	b.builder = builder
	b.release = func() {
		openDev.Device.Destroy()
		instance.Destroy()
	}
	rendergraph.Logger().Info("native: noop device opened")
	return nil
}

// Device returns the opened device, or nil before Init.
func (b *NoopBackend) Device() hal.Device {
	if b.builder == nil {
		return nil
	}
	return b.builder.Device()
}

// Builder returns the resource builder.
func (b *NoopBackend) Builder() (rendergraph.Builder, error) {
	if b.builder == nil {
		return nil, backend.ErrNotInitialized
	}
	return b.builder, nil
}

// Close destroys the device. Resources built on it must be disposed first,
// typically by closing the render graph.
func (b *NoopBackend) Close() {
	if b.release != nil {
		b.release()
		b.release = nil
	}
	b.builder = nil
}
