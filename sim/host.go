package sim

import (
	"time"

	"go.tigermatt.uk/serkey"
)

// HostTimeout is how long the Macintosh waits for a reply before giving up
// on a command and sending the next one.
const HostTimeout = 500 * time.Millisecond

// sampleCost is the virtual time one look at Data costs the keyboard.
const sampleCost = time.Microsecond

// Reply is one command the host sent and what came back.
type Reply struct {
	Command  serkey.Command
	Response byte
	Answered bool

	// Pulled is when the host pulled Data low to start the command and
	// Clocked the first falling clock edge the keyboard gave it. Ready is
	// when the host released Data after the command; Started is the first
	// falling clock edge of the reply.
	Pulled  time.Time
	Clocked time.Time
	Ready   time.Time
	Started time.Time
}

type phase int

const (
	phaseIdle phase = iota
	phaseCommand
	phaseAwaitReply
)

// Host plays the Macintosh on the far side of a serkey.Engine. It sends its
// script of commands one at a time, clocking each out as the keyboard
// clocks, and collects the replies. Once the script is exhausted it calls
// Done and leaves Data high.
type Host struct {
	Clock   *Clock
	Timeout time.Duration
	Done    func()

	script  []serkey.Command
	replies []Reply
	done    bool

	phase phase
	dir   serkey.Direction
	clock serkey.Level

	// Macintosh side of Data.
	hostData serkey.Level
	cmd      byte
	falls    int
	rises    int
	sampled  bool

	// Keyboard side of Data.
	kbdData serkey.Level
	resp    byte
	bits    int
}

func NewHost(clock *Clock, done func(), script ...serkey.Command) *Host {
	return &Host{
		Clock:    clock,
		Timeout:  HostTimeout,
		Done:     done,
		script:   script,
		clock:    serkey.High,
		hostData: serkey.High,
	}
}

// Send appends commands to the script.
func (h *Host) Send(cmds ...serkey.Command) {
	h.script = append(h.script, cmds...)
	h.done = false
}

func (h *Host) Replies() []Reply {
	return append([]Reply(nil), h.replies...)
}

func (h *Host) SetClock(v serkey.Level) {
	falling := h.clock == serkey.High && v == serkey.Low
	rising := h.clock == serkey.Low && v == serkey.High
	h.clock = v

	switch h.phase {
	case phaseCommand:
		if falling && h.falls == 0 {
			h.current().Clocked = h.Clock.Now()
		}
		if falling && h.falls < 8 {
			h.hostData = h.cmd&(0x80>>h.falls) != 0
			h.falls++
		}
		if rising {
			h.rises++
		}
	case phaseAwaitReply:
		if h.dir != serkey.Output {
			return
		}
		if falling && h.bits == 0 {
			h.current().Started = h.Clock.Now()
		}
		if rising {
			h.resp = h.resp<<1 | bit(h.kbdData)
			h.bits++
			if h.bits == 8 {
				r := h.current()
				r.Response = h.resp
				r.Answered = true
				h.phase = phaseIdle
			}
		}
	}
}

func (h *Host) SetDataDirection(d serkey.Direction) { h.dir = d }

func (h *Host) SetData(v serkey.Level) { h.kbdData = v }

func (h *Host) ReadData() serkey.Level {
	h.Clock.Hold(sampleCost)

	switch h.phase {
	case phaseIdle:
		return h.start()
	case phaseCommand:
		if h.rises < 8 {
			return h.hostData
		}
		if !h.sampled {
			// Last bit stays on Data until the keyboard has seen it.
			h.sampled = true
			return h.hostData
		}
		h.hostData = serkey.High
		h.phase = phaseAwaitReply
		h.current().Ready = h.Clock.Now()
		return serkey.High
	case phaseAwaitReply:
		if h.bits == 0 && h.Clock.Now().Sub(h.current().Ready) >= h.Timeout {
			h.phase = phaseIdle
			return h.start()
		}
		return serkey.High
	}

	return serkey.High
}

// start pulls Data low for the next scripted command, if there is one.
func (h *Host) start() serkey.Level {
	if len(h.script) == 0 {
		if !h.done {
			h.done = true
			if h.Done != nil {
				h.Done()
			}
		}
		return serkey.High
	}

	h.cmd = byte(h.script[0])
	h.script = h.script[1:]
	h.replies = append(h.replies, Reply{Command: serkey.Command(h.cmd), Pulled: h.Clock.Now()})

	h.phase = phaseCommand
	h.hostData = serkey.Low
	h.falls, h.rises, h.sampled = 0, 0, false
	h.resp, h.bits = 0, 0
	return serkey.Low
}

func (h *Host) current() *Reply {
	return &h.replies[len(h.replies)-1]
}

func bit(l serkey.Level) byte {
	if l {
		return 1
	}
	return 0
}
