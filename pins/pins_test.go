package pins

import (
	"testing"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"

	"go.tigermatt.uk/serkey"
)

func TestNew(t *testing.T) {
	clock := &gpiotest.Pin{N: "CLK", L: gpio.Low}
	data := &gpiotest.Pin{N: "DATA", L: gpio.Low}

	l, err := New(clock, data)
	if err != nil {
		t.Fatalf("New: %s", err)
	}

	if clock.L != gpio.High {
		t.Errorf("Expected clock driven high, got %s", clock.L)
	}
	if data.P != gpio.PullUp {
		t.Errorf("Expected data pulled up, got %s", data.P)
	}

	l.SetClock(serkey.Low)
	if clock.L != gpio.Low {
		t.Errorf("Expected clock low, got %s", clock.L)
	}

	l.SetDataDirection(serkey.Output)
	l.SetData(serkey.Low)
	if got := l.ReadData(); got != serkey.Low {
		t.Errorf("Expected data low, got %s", got)
	}
	l.SetData(serkey.High)
	if got := l.ReadData(); got != serkey.High {
		t.Errorf("Expected data high, got %s", got)
	}
}
