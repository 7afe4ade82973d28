// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package driver

import (
	"sort"
	"sync"
)

// Factory creates a new driver instance.
type Factory func() Driver

// Entry describes a registered driver.
type Entry struct {
	// Name is the driver identifier.
	Name string

	// Priority orders driver selection; higher wins.
	Priority int

	// New creates a driver instance.
	New Factory

	// Available reports whether the driver can run in this environment.
	// A nil Available means always available.
	Available func() bool
}

// registry holds registered drivers.
var (
	registryMu sync.RWMutex
	drivers    = make(map[string]Entry)
)

// Register registers a driver factory with the given name and priority.
// This is typically called from init() functions in driver packages.
// If a driver with the same name is already registered, it is replaced.
func Register(name string, priority int, factory Factory, available func() bool) {
	registryMu.Lock()
	defer registryMu.Unlock()
	drivers[name] = Entry{Name: name, Priority: priority, New: factory, Available: available}
}

// Unregister removes a driver from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(drivers, name)
}

// Registered returns the names of all registered drivers.
func Registered() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(drivers))
	for name := range drivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns a driver instance by name.
// Returns false if no driver with that name is registered.
func Get(name string) (Driver, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	e, ok := drivers[name]
	if !ok {
		return nil, false
	}
	return e.New(), true
}

// Lookup returns the registry entry for a name.
func Lookup(name string) (Entry, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	e, ok := drivers[name]
	return e, ok
}

// Default returns the best available driver by descending priority.
// Returns nil if no registered driver is available.
func Default() Driver {
	for _, e := range byPriority() {
		if e.Available != nil && !e.Available() {
			continue
		}
		if d := e.New(); d != nil {
			return d
		}
	}
	return nil
}

// InitDefault initializes the best available driver, falling through to
// lower-priority drivers when initialization fails (for example glgl on a
// machine without a display falls back to headless).
func InitDefault() (Driver, error) {
	var firstErr error
	for _, e := range byPriority() {
		if e.Available != nil && !e.Available() {
			continue
		}
		d := e.New()
		if d == nil {
			continue
		}
		err := d.Init()
		if err == nil {
			return d, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return nil, ErrNotAvailable
}

// byPriority snapshots the registry sorted by descending priority, with
// name as the tie-breaker for deterministic selection.
func byPriority() []Entry {
	registryMu.RLock()
	defer registryMu.RUnlock()

	entries := make([]Entry, 0, len(drivers))
	for _, e := range drivers {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Priority != entries[j].Priority {
			return entries[i].Priority > entries[j].Priority
		}
		return entries[i].Name < entries[j].Name
	})
	return entries
}
