// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package i2cdefault owns the process wide default I²C bus used by device
// packages that offer bus-less convenience functions.
//
// The bus is opened lazily on first use: the host drivers are initialized
// and the bus is looked up in the i2creg registry. A bus can also be
// injected with Set, for example to use a playback bus in tests.
package i2cdefault

import (
	"fmt"
	"sync"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// Opener opens a bus. The Registry closes what it opened.
type Opener func() (i2c.BusCloser, error)

// Registry holds a single default bus.
type Registry struct {
	open Opener

	mu     sync.Mutex
	bus    i2c.Bus
	closer i2c.BusCloser
}

// Default is the registry used by the package level convenience functions
// of device drivers. It resolves to the first available bus.
var Default = New("")

// New returns a Registry that opens the bus called name through i2creg. An
// empty name selects the first available bus.
func New(name string) *Registry {
	return NewOpener(func() (i2c.BusCloser, error) {
		if _, err := host.Init(); err != nil {
			return nil, err
		}
		return i2creg.Open(name)
	})
}

// NewOpener returns a Registry that calls open on first use.
func NewOpener(open Opener) *Registry {
	return &Registry{open: open}
}

// Bus returns the default bus, opening it if needed.
func (r *Registry) Bus() (i2c.Bus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.bus != nil {
		return r.bus, nil
	}
	b, err := r.open()
	if err != nil {
		return nil, fmt.Errorf("i2cdefault: opening bus: %w", err)
	}
	r.bus = b
	r.closer = b
	return b, nil
}

// Set replaces the default bus. The previously opened bus, if any, is
// closed. The caller keeps ownership of b. Set(nil) makes the next Bus call
// open a bus again.
func (r *Registry) Set(b i2c.Bus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	err := r.closeLocked()
	r.bus = b
	return err
}

// Close closes the bus if the registry opened it.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closeLocked()
}

func (r *Registry) closeLocked() error {
	r.bus = nil
	if r.closer == nil {
		return nil
	}
	c := r.closer
	r.closer = nil
	if err := c.Close(); err != nil {
		return fmt.Errorf("i2cdefault: closing bus: %w", err)
	}
	return nil
}

func (r *Registry) String() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.bus == nil {
		return "i2cdefault: <not open>"
	}
	return fmt.Sprintf("i2cdefault: %s", r.bus)
}
