package glbind

import "github.com/gogpu/glbind/driver"

// drv is the process-wide driver. A single mutable slot, set by Init or
// InitDriver and cleared by Terminate, mirroring the single current-context
// model of the native API.
var drv driver.Driver

// Init selects and initializes the best available driver from the driver
// registry, in descending priority order. A driver whose Init fails is
// skipped, so glgl on a machine without a display falls through to
// headless if both are registered.
//
// Driver packages register themselves on import:
//
//	import _ "github.com/gogpu/glbind/driver/glgl"
func Init() error {
	d, err := driver.InitDefault()
	if err != nil {
		return err
	}
	drv = d
	Logger().Info("glbind initialized", "driver", d.Name())
	return nil
}

// InitDriver initializes glbind with an explicit driver instance,
// bypassing the registry. Useful for tests and for dependency injection.
func InitDriver(d driver.Driver) error {
	if err := d.Init(); err != nil {
		return err
	}
	drv = d
	return nil
}

// Terminate releases the driver and clears the active context slot.
// All contexts and resources are invalid after Terminate.
func Terminate() {
	if drv != nil {
		drv.Terminate()
		drv = nil
	}
	active = nil
}

// activeDriver returns the process driver, or ErrNotInitialized before
// Init / after Terminate.
func activeDriver() (driver.Driver, error) {
	if drv == nil {
		return nil, ErrNotInitialized
	}
	return drv, nil
}
