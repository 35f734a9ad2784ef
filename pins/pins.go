// Package pins drives the keyboard lines from real GPIO pins through
// periph.io.
package pins

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"go.tigermatt.uk/serkey"
)

var ErrNoPin = errors.New("no such pin")

// Lines is a serkey.Lines over two GPIO pins. Errors from the pin drivers
// are dropped: once Open has succeeded the pins only fail if the hardware
// goes away, and the protocol has no way to report that to the Macintosh.
type Lines struct {
	clock gpio.PinIO
	data  gpio.PinIO
}

// Open claims the clock and data pins by name, e.g. "GPIO2". Clock is left
// driven high and Data as a pulled up input.
func Open(clockPin, dataPin string) (*Lines, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("initialising gpio host: %w", err)
	}

	clock := gpioreg.ByName(clockPin)
	if clock == nil {
		return nil, fmt.Errorf("clock pin %q: %w", clockPin, ErrNoPin)
	}
	data := gpioreg.ByName(dataPin)
	if data == nil {
		return nil, fmt.Errorf("data pin %q: %w", dataPin, ErrNoPin)
	}

	return New(clock, data)
}

// New wraps pins that are already resolved.
func New(clock, data gpio.PinIO) (*Lines, error) {
	l := &Lines{clock: clock, data: data}

	if err := l.clock.Out(gpio.High); err != nil {
		return nil, fmt.Errorf("setting up clock pin %s: %w", l.clock, err)
	}
	if err := l.data.In(gpio.PullUp, gpio.NoEdge); err != nil {
		return nil, fmt.Errorf("setting up data pin %s: %w", l.data, err)
	}

	return l, nil
}

func (l *Lines) SetClock(v serkey.Level) {
	_ = l.clock.Out(gpio.Level(v))
}

func (l *Lines) SetDataDirection(d serkey.Direction) {
	if d == serkey.Output {
		_ = l.data.Out(gpio.High)
		return
	}
	_ = l.data.In(gpio.PullUp, gpio.NoEdge)
}

func (l *Lines) SetData(v serkey.Level) {
	_ = l.data.Out(gpio.Level(v))
}

func (l *Lines) ReadData() serkey.Level {
	return serkey.Level(l.data.Read())
}

// Release leaves both lines as pulled up inputs so the Macintosh sees an
// idle keyboard.
func (l *Lines) Release() error {
	if err := l.clock.In(gpio.PullUp, gpio.NoEdge); err != nil {
		return fmt.Errorf("releasing clock pin %s: %w", l.clock, err)
	}
	if err := l.data.In(gpio.PullUp, gpio.NoEdge); err != nil {
		return fmt.Errorf("releasing data pin %s: %w", l.data, err)
	}
	return nil
}
