package hardware

// Direction is the commanded state of a pump's two lines.
type Direction int

const (
	Stopped Direction = iota
	Forward
	Reverse

	// unknown marks a channel whose last write failed half way.
	unknown Direction = -1
)

func (d Direction) String() string {
	switch d {
	case Stopped:
		return "stopped"
	case Forward:
		return "forward"
	case Reverse:
		return "reverse"
	default:
		return "unknown"
	}
}

// PinPair is the wiring of one pump: line A and line B.
type PinPair struct {
	A Pin `mapstructure:"a" json:"a"`
	B Pin `mapstructure:"b" json:"b"`
}

// Channel is one pump's direction control. Channels are owned by a Registry
// and must only be driven by the single in-flight operation.
type Channel struct {
	pump   int
	pins   PinPair
	dir    Direction
	driver Driver
}

// Pump returns the 1-based pump number.
func (c *Channel) Pump() int { return c.pump }

// Pins returns the channel's wiring.
func (c *Channel) Pins() PinPair { return c.pins }

// Direction returns the last successfully commanded direction.
func (c *Channel) Direction() Direction { return c.dir }

// Forward sets A high and B low.
func (c *Channel) Forward() error { return c.drive(Forward) }

// Reverse sets A low and B high.
func (c *Channel) Reverse() error { return c.drive(Reverse) }

// Stop sets both lines low. Stopping a stopped channel is a no-op.
func (c *Channel) Stop() error { return c.drive(Stopped) }

// Drive commands the given direction.
func (c *Channel) Drive(d Direction) error { return c.drive(d) }

type lineWrite struct {
	pin  Pin
	high bool
}

func (c *Channel) drive(d Direction) error {
	if c.dir == d {
		return nil
	}
	a, b := levels(d)
	writes := [2]lineWrite{{c.pins.A, a}, {c.pins.B, b}}
	// Lower B before raising A so both lines are never high together.
	if a {
		writes[0], writes[1] = writes[1], writes[0]
	}
	for _, w := range writes {
		if err := c.driver.Write(w.pin, w.high); err != nil {
			c.dir = unknown
			return &HardwareFault{Op: "write", Pin: w.pin, Err: err}
		}
	}
	c.dir = d
	return nil
}

func levels(d Direction) (a, b bool) {
	switch d {
	case Forward:
		return true, false
	case Reverse:
		return false, true
	default:
		return false, false
	}
}
