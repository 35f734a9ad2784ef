package serkey

// Arrow markers sent by the keystroke source. The Plus keyboard has no
// arrow keys, so they are delivered as keypad keys instead.
const (
	MarkerLeft  byte = 0x7F
	MarkerRight byte = 0x7E
	MarkerUp    byte = 0x7D
	MarkerDown  byte = 0x7C

	markerRelease byte = 0x80
)

// Keypad keycodes for the arrows, key down. Bit 7 set means key up.
const (
	KeyLeft  byte = 0x0D
	KeyRight byte = 0x05
	KeyUp    byte = 0x1B
	KeyDown  byte = 0x11

	keyRelease byte = 0x80
)

var arrowKeys = map[byte]byte{
	MarkerLeft:  KeyLeft,
	MarkerRight: KeyRight,
	MarkerUp:    KeyUp,
	MarkerDown:  KeyDown,
}

func IsArrowMarker(b byte) bool {
	_, ok := arrowKeys[b&^markerRelease]
	return ok
}

// Translate maps an arrow marker to its keypad keycode, carrying the
// release bit across. Anything else yields NullKey.
func Translate(marker byte) byte {
	key, ok := arrowKeys[marker&^markerRelease]
	if !ok {
		return NullKey
	}

	if marker&markerRelease != 0 {
		key |= keyRelease
	}

	return key
}
