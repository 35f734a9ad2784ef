package serkey

import (
	"errors"
	"fmt"
	"time"
)

// Timing holds every delay of the protocol. The bit phases come from the
// keyboard timing tables and are not tuning knobs.
type Timing struct {
	// Keyboard clocking in a command.
	ReceiveClockLow    time.Duration
	ReceiveSample      time.Duration
	ReceiveAfterSample time.Duration

	// Keyboard clocking out a reply.
	SendSetup     time.Duration
	SendClockLow  time.Duration
	SendClockHigh time.Duration

	// Settle is held between the Macintosh pulling Data low and the first
	// clock pulse. Machines differ; 300µs and 400µs are both seen.
	Settle time.Duration

	// InquiryWait bounds how long Inquiry waits for a key.
	InquiryWait time.Duration
}

func DefaultTiming() Timing {
	return Timing{
		ReceiveClockLow:    180 * time.Microsecond,
		ReceiveSample:      80 * time.Microsecond,
		ReceiveAfterSample: 140 * time.Microsecond,

		SendSetup:     40 * time.Microsecond,
		SendClockLow:  120 * time.Microsecond,
		SendClockHigh: 170 * time.Microsecond,

		Settle:      300 * time.Microsecond,
		InquiryWait: 250 * time.Millisecond,
	}
}

var ErrBadTiming = errors.New("bad timing")

func (t Timing) Validate() error {
	for _, d := range []struct {
		name string
		v    time.Duration
	}{
		{"receive clock low", t.ReceiveClockLow},
		{"receive sample", t.ReceiveSample},
		{"receive after sample", t.ReceiveAfterSample},
		{"send setup", t.SendSetup},
		{"send clock low", t.SendClockLow},
		{"send clock high", t.SendClockHigh},
		{"settle", t.Settle},
		{"inquiry wait", t.InquiryWait},
	} {
		if d.v <= 0 {
			return fmt.Errorf("%s must be positive, got %s: %w", d.name, d.v, ErrBadTiming)
		}
	}

	return nil
}

// Clock is the time base of the engine. Hold must return no earlier than d
// after it was called; the protocol tolerates roughly 10% overrun.
type Clock interface {
	Now() time.Time
	Hold(d time.Duration)
}

// BusyClock holds by spinning on the monotonic clock. Sleeping hands the
// thread back to the scheduler, which routinely overshoots by more than a
// whole bit period.
type BusyClock struct{}

func (BusyClock) Now() time.Time { return time.Now() }

func (BusyClock) Hold(d time.Duration) {
	for start := time.Now(); time.Since(start) < d; {
	}
}
