package hardware

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"go.bug.st/serial"

	"cocktail_rig/internal/logger"
)

// SerialOpt selects the GPIO bridge port.
type SerialOpt struct {
	Port string
	Baud int
}

// DefaultBaud matches the bridge firmware.
const DefaultBaud = 115200

var errNoSerialPort = errors.New("hardware.serial_port is empty")

// SerialDriver drives a GPIO bridge microcontroller over a serial line.
// Protocol, one ASCII command per line:
//
//	O<pin>        configure pin as output
//	W<pin>=<0|1>  drive pin low/high
//	C             drive all configured pins low and release them
type SerialDriver struct {
	log *logger.Logger

	mu   sync.Mutex
	port io.WriteCloser
}

// OpenSerial opens the bridge port and returns a driver on it.
func OpenSerial(opt SerialOpt, log *logger.Logger) (*SerialDriver, error) {
	if opt.Port == "" {
		return nil, errNoSerialPort
	}
	if opt.Baud == 0 {
		opt.Baud = DefaultBaud
	}
	port, err := serial.Open(opt.Port, &serial.Mode{
		BaudRate: opt.Baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, fmt.Errorf("open serial %q: %w", opt.Port, err)
	}
	return NewSerialDriver(port, log), nil
}

// NewSerialDriver wraps an already opened port.
func NewSerialDriver(port io.WriteCloser, log *logger.Logger) *SerialDriver {
	return &SerialDriver{port: port, log: logger.OrNop(log)}
}

func (d *SerialDriver) send(cmd string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, err := io.WriteString(d.port, cmd+"\n"); err != nil {
		return err
	}
	d.log.Debugw("serial_cmd", "cmd", cmd)
	return nil
}

func (d *SerialDriver) Setup(pins []Pin) error {
	for _, p := range pins {
		if err := d.send(fmt.Sprintf("O%d", p)); err != nil {
			return err
		}
	}
	return nil
}

func (d *SerialDriver) Write(pin Pin, high bool) error {
	level := 0
	if high {
		level = 1
	}
	return d.send(fmt.Sprintf("W%d=%d", pin, level))
}

func (d *SerialDriver) Cleanup() error {
	return d.send("C")
}

// Close closes the port. The driver is unusable afterwards.
func (d *SerialDriver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.port.Close()
}
