// Package hardware models the pump rig's motor lines: a Driver that can set
// output pins, a Channel per pump (two direction lines) and a Registry that
// owns the fixed, ordered set of channels.
package hardware

import (
	"errors"
	"fmt"
)

// Pin is a BCM-numbered output line.
type Pin int

// Driver sets output lines. Implementations are selected by configuration
// (hardware.driver) when the application is composed.
type Driver interface {
	// Setup configures the given pins as outputs.
	Setup(pins []Pin) error
	// Write drives a pin high or low.
	Write(pin Pin, high bool) error
	// Cleanup drives every configured pin low and releases them.
	Cleanup() error
}

// ErrNoPumps is returned when the wiring table is empty.
var ErrNoPumps = errors.New("wiring table has no pumps")

// HardwareFault reports a failed driver call.
type HardwareFault struct {
	Op  string // setup | write | cleanup
	Pin Pin    // zero for setup/cleanup
	Err error
}

func (e *HardwareFault) Error() string {
	if e.Op == "write" {
		return fmt.Sprintf("hardware %s pin %d: %v", e.Op, e.Pin, e.Err)
	}
	return fmt.Sprintf("hardware %s: %v", e.Op, e.Err)
}

func (e *HardwareFault) Unwrap() error { return e.Err }

// OutOfRangeError is returned for a pump number outside [1, Max].
type OutOfRangeError struct {
	Pump int
	Max  int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("pump %d out of range [1, %d]", e.Pump, e.Max)
}
