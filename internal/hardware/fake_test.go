package hardware

import (
	"errors"
	"fmt"
)

// recordingDriver records calls as strings and can fail on demand.
type recordingDriver struct {
	calls      []string
	failWrite  Pin
	failSetup  bool
	cleanupErr error
	cleanups   int
}

func (d *recordingDriver) Setup(pins []Pin) error {
	d.calls = append(d.calls, fmt.Sprintf("setup %d", len(pins)))
	if d.failSetup {
		return errors.New("gpio busy")
	}
	return nil
}

func (d *recordingDriver) Write(pin Pin, high bool) error {
	if d.failWrite != 0 && pin == d.failWrite {
		return errors.New("line stuck")
	}
	v := 0
	if high {
		v = 1
	}
	d.calls = append(d.calls, fmt.Sprintf("%d=%d", pin, v))
	return nil
}

func (d *recordingDriver) Cleanup() error {
	d.cleanups++
	d.calls = append(d.calls, "cleanup")
	return d.cleanupErr
}
