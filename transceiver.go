package serkey

// Transceiver moves single bytes across the Lines. The keyboard is the
// clock master in both directions.
type Transceiver struct {
	Lines  Lines
	Clock  Clock
	Timing Timing
}

// ReceiveByte clocks in one command byte. Each sample is shifted in as the
// new low bit, so the first bit on the wire ends up as bit 7.
func (t *Transceiver) ReceiveByte() byte {
	t.Lines.SetDataDirection(Input)

	var b byte
	for i := 0; i < 8; i++ {
		t.Lines.SetClock(Low)
		t.Clock.Hold(t.Timing.ReceiveClockLow)
		t.Lines.SetClock(High)
		// The Macintosh has its bit on Data 80µs after the rising edge.
		t.Clock.Hold(t.Timing.ReceiveSample)
		b <<= 1
		if t.Lines.ReadData() == High {
			b |= 1
		}
		t.Clock.Hold(t.Timing.ReceiveAfterSample)
	}

	return b
}

// SendByte clocks out b most significant bit first. Each bit is put on Data
// before the clock falls and the Macintosh samples it on the rising edge.
// Data is handed back to the Macintosh afterwards.
func (t *Transceiver) SendByte(b byte) {
	t.Lines.SetDataDirection(Output)

	for m := byte(0x80); m > 0; m >>= 1 {
		t.Lines.SetData(b&m != 0)
		t.Clock.Hold(t.Timing.SendSetup)
		t.Lines.SetClock(Low)
		t.Clock.Hold(t.Timing.SendClockLow)
		t.Lines.SetClock(High)
		t.Clock.Hold(t.Timing.SendClockHigh)
	}

	t.Lines.SetData(High)
	t.Lines.SetDataDirection(Input)
}
