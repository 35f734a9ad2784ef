// Package sim provides stand-ins for the hardware around a serkey.Engine:
// a virtual clock, a simulated Macintosh on the other end of the lines and
// a scripted keystroke source.
package sim

import (
	"sync"
	"time"
)

// Epoch is the virtual time every Clock starts at.
var Epoch = time.Date(1986, time.January, 16, 0, 0, 0, 0, time.UTC)

// Clock is a serkey.Clock that only moves when told to. Hold advances it by
// exactly the requested duration; Now advances it by Step after reading,
// modelling the cost of looking at the time in a polling loop.
type Clock struct {
	Step time.Duration

	mu  sync.Mutex
	now time.Time
}

func NewClock(step time.Duration) *Clock {
	return &Clock{Step: step, now: Epoch}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := c.now
	c.now = c.now.Add(c.Step)
	return t
}

func (c *Clock) Hold(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
}

// Elapsed reports the virtual time since Epoch without advancing the clock.
func (c *Clock) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now.Sub(Epoch)
}
