package main

import "go.tigermatt.uk/serkey"

// Keycodes from Inside Macintosh volume III, key down. Bit 7 set is key up.
const (
	keyShift   byte = 0x71
	keyCommand byte = 0x6F

	keyUp byte = 0x80
)

type macKey struct {
	code  byte
	shift bool
}

var keycodes = map[byte]macKey{
	' ':  {0x63, false},
	'\r': {0x49, false},
	'\n': {0x49, false},
	'\t': {0x61, false},
	0x7F: {0x67, false},
	0x08: {0x67, false},
}

func init() {
	plain := map[byte]byte{
		'a': 0x01, 's': 0x03, 'd': 0x05, 'f': 0x07, 'h': 0x09, 'g': 0x0B,
		'z': 0x0D, 'x': 0x0F, 'c': 0x11, 'v': 0x13, 'b': 0x17, 'q': 0x19,
		'w': 0x1B, 'e': 0x1D, 'r': 0x1F, 'y': 0x21, 't': 0x23, 'o': 0x3F,
		'u': 0x41, 'i': 0x45, 'p': 0x47, 'l': 0x4B, 'j': 0x4D, 'k': 0x51,
		'n': 0x5B, 'm': 0x5D,

		'1': 0x25, '2': 0x27, '3': 0x29, '4': 0x2B, '6': 0x2D, '5': 0x2F,
		'=': 0x31, '9': 0x33, '7': 0x35, '-': 0x37, '8': 0x39, '0': 0x3B,
		']': 0x3D, '[': 0x43, '\'': 0x4F, ';': 0x53, '\\': 0x55, ',': 0x57,
		'/': 0x59, '.': 0x5F, '`': 0x65,
	}
	shifted := map[byte]byte{
		'!': '1', '@': '2', '#': '3', '$': '4', '%': '5', '^': '6',
		'&': '7', '*': '8', '(': '9', ')': '0', '_': '-', '+': '=',
		'{': '[', '}': ']', '|': '\\', ':': ';', '"': '\'', '<': ',',
		'>': '.', '?': '/', '~': '`',
	}

	for ch, code := range plain {
		keycodes[ch] = macKey{code: code}
		if ch >= 'a' && ch <= 'z' {
			keycodes[ch-'a'+'A'] = macKey{code: code, shift: true}
		}
	}
	for ch, base := range shifted {
		keycodes[ch] = macKey{code: plain[base], shift: true}
	}
}

// stroke is what goes down the wire for one key: the press bytes, then
// after a pause the release bytes.
type stroke struct {
	press   []byte
	release []byte
}

func keyStroke(code byte, mods ...byte) stroke {
	var s stroke
	s.press = append(append(s.press, mods...), code)
	s.release = append(s.release, code|keyUp)
	for i := len(mods) - 1; i >= 0; i-- {
		s.release = append(s.release, mods[i]|keyUp)
	}
	return s
}

const (
	ctrlC = 0x03
	esc   = 0x1B
)

// translator turns terminal input into strokes. Arrow keys arrive as ANSI
// escape sequences which may be split across reads.
type translator struct {
	esc int
}

var arrows = map[byte]byte{
	'A': serkey.MarkerUp,
	'B': serkey.MarkerDown,
	'C': serkey.MarkerRight,
	'D': serkey.MarkerLeft,
}

func (t *translator) feed(b byte) (s stroke, ok, quit bool) {
	switch t.esc {
	case 1:
		if b == '[' || b == 'O' {
			t.esc = 2
			return s, false, false
		}
		t.esc = 0
	case 2:
		t.esc = 0
		if marker, found := arrows[b]; found {
			return stroke{press: []byte{marker}, release: []byte{marker | keyUp}}, true, false
		}
		return s, false, false
	}

	switch {
	case b == ctrlC:
		return s, false, true
	case b == esc:
		t.esc = 1
		return s, false, false
	}

	if k, found := keycodes[b]; found {
		if k.shift {
			return keyStroke(k.code, keyShift), true, false
		}
		return keyStroke(k.code), true, false
	}

	// Other control characters become Command chords, so ^Q is Command-Q.
	if b >= 0x01 && b <= 0x1A {
		if k, found := keycodes[b-1+'a']; found {
			return keyStroke(k.code, keyCommand), true, false
		}
	}

	return s, false, false
}
