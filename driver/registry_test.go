// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package driver

import (
	"errors"
	"slices"
	"testing"
)

// stubDriver implements just enough of Driver for registry tests.
type stubDriver struct {
	Driver
	name    string
	initErr error
	inited  bool
}

func (s *stubDriver) Name() string { return s.name }

func (s *stubDriver) Init() error {
	if s.initErr != nil {
		return s.initErr
	}
	s.inited = true
	return nil
}

func register(t *testing.T, name string, priority int, factory Factory, available func() bool) {
	t.Helper()
	Register(name, priority, factory, available)
	t.Cleanup(func() { Unregister(name) })
}

func TestRegisterAndGet(t *testing.T) {
	register(t, "stub-a", 5, func() Driver { return &stubDriver{name: "stub-a"} }, nil)

	d, ok := Get("stub-a")
	if !ok {
		t.Fatal("Get() did not find the registered driver")
	}
	if d.Name() != "stub-a" {
		t.Errorf("Name() = %q, want stub-a", d.Name())
	}
	if _, ok := Get("no-such-driver"); ok {
		t.Error("Get() found an unregistered driver")
	}
	if !slices.Contains(Registered(), "stub-a") {
		t.Error("Registered() does not list the registered driver")
	}
}

func TestLookup(t *testing.T) {
	register(t, "stub-b", 7, func() Driver { return &stubDriver{name: "stub-b"} }, nil)

	e, ok := Lookup("stub-b")
	if !ok {
		t.Fatal("Lookup() did not find the registered driver")
	}
	if e.Name != "stub-b" || e.Priority != 7 {
		t.Errorf("Lookup() = {%q, %d}, want {stub-b, 7}", e.Name, e.Priority)
	}
}

func TestDefaultPicksHighestPriority(t *testing.T) {
	register(t, "stub-low", 1, func() Driver { return &stubDriver{name: "stub-low"} }, nil)
	register(t, "stub-high", 1000, func() Driver { return &stubDriver{name: "stub-high"} }, nil)

	d := Default()
	if d == nil {
		t.Fatal("Default() = nil with drivers registered")
	}
	if d.Name() != "stub-high" {
		t.Errorf("Default() = %q, want the highest-priority driver", d.Name())
	}
}

func TestDefaultSkipsUnavailable(t *testing.T) {
	register(t, "stub-gone", 1000, func() Driver { return &stubDriver{name: "stub-gone"} },
		func() bool { return false })
	register(t, "stub-here", 1, func() Driver { return &stubDriver{name: "stub-here"} },
		func() bool { return true })

	d := Default()
	if d == nil {
		t.Fatal("Default() = nil with an available driver registered")
	}
	if d.Name() != "stub-here" {
		t.Errorf("Default() = %q, want the available driver", d.Name())
	}
}

func TestInitDefaultFallsThrough(t *testing.T) {
	broken := errors.New("no display")
	register(t, "stub-broken", 1000, func() Driver {
		return &stubDriver{name: "stub-broken", initErr: broken}
	}, nil)
	register(t, "stub-fallback", 1, func() Driver {
		return &stubDriver{name: "stub-fallback"}
	}, nil)

	d, err := InitDefault()
	if err != nil {
		t.Fatalf("InitDefault() error = %v", err)
	}
	if d.Name() != "stub-fallback" {
		t.Errorf("InitDefault() = %q, want the fallback driver", d.Name())
	}
	if !d.(*stubDriver).inited {
		t.Error("InitDefault() did not initialize the selected driver")
	}
}

func TestInitDefaultReportsFirstError(t *testing.T) {
	broken := errors.New("no display")
	register(t, "stub-only", 1000, func() Driver {
		return &stubDriver{name: "stub-only", initErr: broken}
	}, nil)

	// Make sure no other registered driver can succeed.
	names := Registered()
	for _, name := range names {
		if name != "stub-only" {
			e, _ := Lookup(name)
			Unregister(name)
			t.Cleanup(func() { Register(e.Name, e.Priority, e.New, e.Available) })
		}
	}

	if _, err := InitDefault(); !errors.Is(err, broken) {
		t.Errorf("InitDefault() error = %v, want the first init failure", err)
	}
}

func TestPriorityTieBreaksByName(t *testing.T) {
	register(t, "stub-z", 42, func() Driver { return &stubDriver{name: "stub-z"} }, nil)
	register(t, "stub-a2", 42, func() Driver { return &stubDriver{name: "stub-a2"} }, nil)

	entries := byPriority()
	zi, ai := -1, -1
	for i, e := range entries {
		switch e.Name {
		case "stub-z":
			zi = i
		case "stub-a2":
			ai = i
		}
	}
	if ai == -1 || zi == -1 {
		t.Fatal("registered drivers missing from byPriority()")
	}
	if ai > zi {
		t.Error("equal priorities should order by name")
	}
}
