package glbind

import "sync/atomic"

// Process-wide configuration. The flags live behind atomics because leak
// warnings are emitted from the finalizer goroutine, not the rendering
// thread.
var (
	monitorLeaks  atomic.Bool
	suppressLeaks atomic.Bool
)

// SetMonitorLeaks toggles leak monitoring. When enabled, every resource
// created afterwards records its creation call stack, and a warning is
// logged if the resource is garbage collected without Destroy having been
// called. Default off.
//
// The creation stack is captured at creation time, so enabling monitoring
// later does not cover already-created resources.
func SetMonitorLeaks(on bool) { monitorLeaks.Store(on) }

// MonitorLeaks reports whether leak monitoring is enabled.
func MonitorLeaks() bool { return monitorLeaks.Load() }

// DevelopmentMode enables configuration presets for development.
func DevelopmentMode() {
	SetMonitorLeaks(true)
}

// ProductionMode enables configuration presets for production.
func ProductionMode() {
	SetMonitorLeaks(false)
}

// SuppressLeakWarnings permanently mutes leak warnings for this process.
// Call it from a crash handler before exiting so that leak diagnostics do
// not cascade into the output of an already-failing program.
func SuppressLeakWarnings() { suppressLeaks.Store(true) }

func leakWarningsSuppressed() bool { return suppressLeaks.Load() }
