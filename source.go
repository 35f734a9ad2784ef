package serkey

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"go.bug.st/serial"
)

// KeySource supplies keystroke bytes. TryTake never blocks; it reports
// false when nothing is waiting right now.
type KeySource interface {
	TryTake() (byte, bool)
}

// DefaultDepth matches the receive buffer of the AVR boards this protocol
// is usually bridged from.
const DefaultDepth = 64

// SerialSource reads keystroke bytes from a serial port into a bounded
// FIFO, like a UART receive buffer. Bytes arriving while it is full are
// dropped.
type SerialSource struct {
	Port  serial.Port
	Depth int
	Log   *zerolog.Logger

	keys chan byte
	once sync.Once
}

func (s *SerialSource) init() {
	s.once.Do(func() {
		if s.Depth <= 0 {
			s.Depth = DefaultDepth
		}
		if s.Log == nil {
			nop := zerolog.Nop()
			s.Log = &nop
		}
		s.keys = make(chan byte, s.Depth)
	})
}

// Consume reads the port until ctx is done. The port should have a read
// timeout set so that cancellation is noticed.
func (s *SerialSource) Consume(ctx context.Context) error {
	s.init()

	bs := make([]byte, 64)
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		n, err := s.Port.Read(bs)
		if err != nil {
			var portErr *serial.PortError
			if errors.As(err, &portErr) && portErr.Code() == serial.PortClosed && ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("reading from serial port: %w", err)
		}

		for _, b := range bs[:n] {
			select {
			case s.keys <- b:
			default:
				s.Log.Warn().Hex("key", []byte{b}).Msg("receive buffer full, dropping key")
			}
		}
	}
}

func (s *SerialSource) TryTake() (byte, bool) {
	s.init()

	select {
	case b := <-s.keys:
		return b, true
	default:
		return 0, false
	}
}
