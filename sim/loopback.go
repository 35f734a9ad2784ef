package sim

import "go.tigermatt.uk/serkey"

// Loopback is a pair of lines that hears itself. Bits driven on Data are
// latched on each rising clock edge while Data is an output, and handed
// back one per ReadData once Data is an input again.
type Loopback struct {
	dir   serkey.Direction
	data  serkey.Level
	clock serkey.Level
	bits  []serkey.Level
}

func (l *Loopback) SetClock(v serkey.Level) {
	if v == serkey.High && l.clock == serkey.Low && l.dir == serkey.Output {
		l.bits = append(l.bits, l.data)
	}
	l.clock = v
}

func (l *Loopback) SetDataDirection(d serkey.Direction) { l.dir = d }

func (l *Loopback) SetData(v serkey.Level) { l.data = v }

func (l *Loopback) ReadData() serkey.Level {
	if len(l.bits) == 0 {
		return serkey.High
	}

	b := l.bits[0]
	l.bits = l.bits[1:]
	return b
}

// Bits returns the latched bits not yet read back, in wire order.
func (l *Loopback) Bits() []serkey.Level {
	return append([]serkey.Level(nil), l.bits...)
}
