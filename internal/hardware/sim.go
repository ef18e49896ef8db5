package hardware

import (
	"sync"

	"cocktail_rig/internal/logger"
)

// SimDriver is the no-hardware driver: it logs every call and remembers pin
// levels so the rest of the system can run on a laptop.
type SimDriver struct {
	log *logger.Logger

	mu       sync.Mutex
	levels   map[Pin]bool
	writes   int
	setups   int
	cleanups int
}

// NewSimDriver returns a logging driver. A nil logger discards output.
func NewSimDriver(log *logger.Logger) *SimDriver {
	return &SimDriver{log: logger.OrNop(log), levels: map[Pin]bool{}}
}

func (d *SimDriver) Setup(pins []Pin) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.setups++
	for _, p := range pins {
		d.levels[p] = false
	}
	d.log.Debugw("sim_setup", "pins", pins)
	return nil
}

func (d *SimDriver) Write(pin Pin, high bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.writes++
	d.levels[pin] = high
	d.log.Debugw("sim_write", "pin", pin, "high", high)
	return nil
}

func (d *SimDriver) Cleanup() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cleanups++
	for p := range d.levels {
		d.levels[p] = false
	}
	d.log.Debugw("sim_cleanup", "cleanups", d.cleanups)
	return nil
}

// Level reports the last level written to pin.
func (d *SimDriver) Level(pin Pin) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.levels[pin]
}

// Stats returns the number of setup, write and cleanup calls so far.
func (d *SimDriver) Stats() (setups, writes, cleanups int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.setups, d.writes, d.cleanups
}
