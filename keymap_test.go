package serkey

import "testing"

func TestTranslate(t *testing.T) {
	for _, c := range []struct {
		marker byte
		key    byte
	}{
		{MarkerLeft, 0x0D},
		{MarkerRight, 0x05},
		{MarkerUp, 0x1B},
		{MarkerDown, 0x11},
		{0xFF, 0x8D},
		{0xFE, 0x85},
		{0xFD, 0x9B},
		{0xFC, 0x91},
	} {
		if !IsArrowMarker(c.marker) {
			t.Errorf("Expected %02X to be an arrow marker", c.marker)
		}

		key := Translate(c.marker)
		if key != c.key {
			t.Errorf("Translate(%02X): expected %02X got %02X", c.marker, c.key, key)
		}

		released := c.marker&0x80 != 0
		if got := key&0x80 != 0; got != released {
			t.Errorf("Translate(%02X): release bit %t, expected %t", c.marker, got, released)
		}
	}
}

func TestTranslateOrdinaryKey(t *testing.T) {
	for v := 0; v < 256; v++ {
		b := byte(v)
		switch b {
		case 0x7C, 0x7D, 0x7E, 0x7F, 0xFC, 0xFD, 0xFE, 0xFF:
			continue
		}

		if IsArrowMarker(b) {
			t.Errorf("Expected %02X to be an ordinary key", b)
		}
		if key := Translate(b); key != NullKey {
			t.Errorf("Translate(%02X): expected null key, got %02X", b, key)
		}
	}
}
