package serkey

import (
	"errors"
	"testing"
	"time"
)

func TestDefaultTiming(t *testing.T) {
	tm := DefaultTiming()
	if err := tm.Validate(); err != nil {
		t.Fatalf("Default timing invalid: %s", err)
	}

	if cycle := tm.ReceiveClockLow + tm.ReceiveSample + tm.ReceiveAfterSample; cycle != 400*time.Microsecond {
		t.Errorf("Expected 400µs receive cycle, got %s", cycle)
	}
	if cycle := tm.SendSetup + tm.SendClockLow + tm.SendClockHigh; cycle != 330*time.Microsecond {
		t.Errorf("Expected 330µs send cycle, got %s", cycle)
	}
}

func TestTimingValidate(t *testing.T) {
	tm := DefaultTiming()
	tm.Settle = 0
	if err := tm.Validate(); !errors.Is(err, ErrBadTiming) {
		t.Errorf("Expected ErrBadTiming for zero settle, got %v", err)
	}

	tm = DefaultTiming()
	tm.InquiryWait = -time.Millisecond
	if err := tm.Validate(); !errors.Is(err, ErrBadTiming) {
		t.Errorf("Expected ErrBadTiming for negative inquiry wait, got %v", err)
	}
}

func TestBusyClockHold(t *testing.T) {
	var c BusyClock

	start := time.Now()
	c.Hold(200 * time.Microsecond)
	if d := time.Since(start); d < 200*time.Microsecond {
		t.Errorf("Hold returned after %s", d)
	}
}
