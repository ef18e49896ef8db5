package hardware

import (
	"errors"
	"fmt"
	"sync"
)

// DefaultWiring is the rig's 12-pump BCM table. Pump 10 line B is 24; the
// older table had 23 there, which is already pump 9 line A.
var DefaultWiring = []PinPair{
	{A: 17, B: 4},  // Pump 1
	{A: 22, B: 27}, // Pump 2
	{A: 9, B: 10},  // Pump 3
	{A: 5, B: 11},  // Pump 4
	{A: 13, B: 6},  // Pump 5
	{A: 26, B: 19}, // Pump 6
	{A: 20, B: 21}, // Pump 7
	{A: 14, B: 15}, // Pump 8
	{A: 23, B: 18}, // Pump 9
	{A: 25, B: 24}, // Pump 10
	{A: 7, B: 8},   // Pump 11
	{A: 16, B: 12}, // Pump 12
}

// Registry is the fixed, ordered list of pumps 1..N.
type Registry struct {
	driver   Driver
	channels []*Channel
}

// NewRegistry binds one channel per wiring entry. Pump numbers follow the
// table order starting at 1. A pin may only appear once.
func NewRegistry(driver Driver, wiring []PinPair) (*Registry, error) {
	if len(wiring) == 0 {
		return nil, ErrNoPumps
	}
	seen := make(map[Pin]int, len(wiring)*2)
	r := &Registry{driver: driver, channels: make([]*Channel, 0, len(wiring))}
	for i, pp := range wiring {
		pump := i + 1
		for _, pin := range []Pin{pp.A, pp.B} {
			if pin < 0 {
				return nil, fmt.Errorf("pump %d: invalid pin %d", pump, pin)
			}
			if other, dup := seen[pin]; dup {
				return nil, fmt.Errorf("pump %d: pin %d already wired to pump %d", pump, pin, other)
			}
			seen[pin] = pump
		}
		r.channels = append(r.channels, &Channel{pump: pump, pins: pp, driver: driver})
	}
	return r, nil
}

// Len returns N, the number of pumps.
func (r *Registry) Len() int { return len(r.channels) }

// Channels returns the channels in pump order.
func (r *Registry) Channels() []*Channel {
	out := make([]*Channel, len(r.channels))
	copy(out, r.channels)
	return out
}

// ChannelFor returns the channel for a 1-based pump number.
func (r *Registry) ChannelFor(pump int) (*Channel, error) {
	if pump < 1 || pump > len(r.channels) {
		return nil, &OutOfRangeError{Pump: pump, Max: len(r.channels)}
	}
	return r.channels[pump-1], nil
}

func (r *Registry) pins() []Pin {
	pins := make([]Pin, 0, len(r.channels)*2)
	for _, ch := range r.channels {
		pins = append(pins, ch.pins.A, ch.pins.B)
	}
	return pins
}

// Open sets up every pin and returns a session that must be released. If
// setup fails the session is released before Open returns.
func (r *Registry) Open() (*Session, error) {
	s := &Session{registry: r}
	if err := r.driver.Setup(r.pins()); err != nil {
		fault := &HardwareFault{Op: "setup", Err: err}
		if rerr := s.Release(); rerr != nil {
			return nil, errors.Join(fault, rerr)
		}
		return nil, fault
	}
	return s, nil
}

// Session is a scoped hold on the hardware interface for one operation.
type Session struct {
	registry *Registry
	once     sync.Once
	err      error
}

// Release stops every channel and cleans up the driver. Only the first call
// touches the hardware; later calls return the first result.
func (s *Session) Release() error {
	s.once.Do(func() {
		var errs []error
		for _, ch := range s.registry.channels {
			if err := ch.Stop(); err != nil {
				errs = append(errs, err)
			}
		}
		if err := s.registry.driver.Cleanup(); err != nil {
			errs = append(errs, &HardwareFault{Op: "cleanup", Err: err})
		}
		// Cleanup leaves every line low.
		for _, ch := range s.registry.channels {
			ch.dir = Stopped
		}
		s.err = errors.Join(errs...)
	})
	return s.err
}
