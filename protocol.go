// Package serkey answers the Macintosh 128K/512K/Plus keyboard protocol on
// behalf of a keystroke source that is not a Macintosh keyboard.
//
// The Macintosh is always the initiator. It pulls Data low to start a
// transaction, the keyboard clocks in a one byte command, and then the
// keyboard clocks out a one byte reply. The Engine type implements the
// keyboard side of that exchange over an injectable pair of Lines.
package serkey

import "fmt"

type Command byte

const (
	Inquiry     Command = 0x10
	Instant     Command = 0x14
	ModelNumber Command = 0x16
	Test        Command = 0x36
)

// Fixed replies.
const (
	NullKey        byte = 0x7B
	ModelID        byte = 0x05 // keyboard model 2, no peripherals
	TestACK        byte = 0x7D
	KeypadAnnounce byte = 0x79
)

func (c Command) String() string {
	switch c {
	case Inquiry:
		return "INQUIRY"
	case Instant:
		return "INSTANT"
	case ModelNumber:
		return "MODEL"
	case Test:
		return "TEST"
	default:
		return fmt.Sprintf("UNKNOWN %02X", byte(c))
	}
}
