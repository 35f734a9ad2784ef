package serkey_test

import (
	"testing"

	"go.tigermatt.uk/serkey"
	"go.tigermatt.uk/serkey/sim"
)

func TestTransceiverRoundTrip(t *testing.T) {
	for v := 0; v < 256; v++ {
		var lb sim.Loopback
		x := serkey.Transceiver{Lines: &lb, Clock: sim.NewClock(0), Timing: serkey.DefaultTiming()}

		x.SendByte(byte(v))
		if got := x.ReceiveByte(); got != byte(v) {
			t.Errorf("Expected %02X got %02X", v, got)
		}
	}
}

func TestSendByteMSBFirst(t *testing.T) {
	var lb sim.Loopback
	x := serkey.Transceiver{Lines: &lb, Clock: sim.NewClock(0), Timing: serkey.DefaultTiming()}

	x.SendByte(0x80 | 0x01)

	bits := lb.Bits()
	want := []serkey.Level{true, false, false, false, false, false, false, true}
	if len(bits) != len(want) {
		t.Fatalf("Expected %d bits, got %d", len(want), len(bits))
	}
	for i := range want {
		if bits[i] != want[i] {
			t.Errorf("Bit %d: expected %s got %s", i, want[i], bits[i])
		}
	}
}

func TestTransceiverDuration(t *testing.T) {
	tm := serkey.DefaultTiming()
	clock := sim.NewClock(0)
	x := serkey.Transceiver{Lines: &sim.Loopback{}, Clock: clock, Timing: tm}

	x.SendByte(0x55)
	if got, want := clock.Elapsed(), 8*(tm.SendSetup+tm.SendClockLow+tm.SendClockHigh); got != want {
		t.Errorf("SendByte took %s, expected %s", got, want)
	}

	before := clock.Elapsed()
	x.ReceiveByte()
	if got, want := clock.Elapsed()-before, 8*(tm.ReceiveClockLow+tm.ReceiveSample+tm.ReceiveAfterSample); got != want {
		t.Errorf("ReceiveByte took %s, expected %s", got, want)
	}
}
