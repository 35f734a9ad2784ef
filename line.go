package serkey

// Level is the logic level of a signal line.
type Level bool

const (
	Low  Level = false
	High Level = true
)

func (l Level) String() string {
	if l {
		return "HIGH"
	}
	return "LOW"
}

type Direction int

const (
	// Input leaves the line pulled up and lets the Macintosh drive it.
	Input Direction = iota
	Output
)

// Lines is the clock and data pair shared with the Macintosh. Clock is
// always driven by the keyboard. SetData is only meaningful while Data is
// an Output and ReadData only while it is an Input.
type Lines interface {
	SetClock(Level)
	SetDataDirection(Direction)
	SetData(Level)
	ReadData() Level
}
