package serkey

import (
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// Exchange is one command from the Macintosh and the reply, if any, that
// the keyboard clocked back.
type Exchange struct {
	Command  Command
	Response byte
	Answered bool
}

// Transaction is everything that happened between the Macintosh pulling
// Data low and the keyboard returning to idle. It holds two exchanges when
// a keypad key was announced.
type Transaction struct {
	Timestamp time.Time
	Exchanges []Exchange
}

func (tx *Transaction) open(cmd Command) {
	tx.Exchanges = append(tx.Exchanges, Exchange{Command: cmd})
}

func (tx *Transaction) answer(b byte) {
	ex := &tx.Exchanges[len(tx.Exchanges)-1]
	ex.Response = b
	ex.Answered = true
}

// Responses lists the bytes sent to the Macintosh in order.
func (tx Transaction) Responses() []byte {
	var bs []byte
	for _, ex := range tx.Exchanges {
		if ex.Answered {
			bs = append(bs, ex.Response)
		}
	}
	return bs
}

func (tx Transaction) String() string {
	parts := make([]string, len(tx.Exchanges))
	for i, ex := range tx.Exchanges {
		if ex.Answered {
			parts[i] = fmt.Sprintf("%s→%02X", ex.Command, ex.Response)
		} else {
			parts[i] = fmt.Sprintf("%s→--", ex.Command)
		}
	}
	return strings.Join(parts, " ")
}

type Recorder struct {
	Dest io.Writer

	enc  *gob.Encoder
	once sync.Once
}

func (r *Recorder) Receive(tx Transaction) error {
	r.init()
	return r.enc.Encode(tx)
}

func (r *Recorder) init() {
	r.once.Do(func() {
		r.enc = gob.NewEncoder(r.Dest)
	})
}

// ReadIn decodes a recording made by Recorder and closes out at EOF. A
// recording cut short mid-transaction, as happens when the bridge loses
// power, reports how many transactions were read before it.
func ReadIn(out chan<- Transaction, r io.Reader) error {
	defer close(out)

	dec := gob.NewDecoder(r)

	for n := 0; ; n++ {
		var tx Transaction
		if err := dec.Decode(&tx); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}

			return fmt.Errorf("while decoding transaction %d: %w", n, err)
		}

		out <- tx
	}
}
