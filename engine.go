package serkey

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"
)

// pollCheck is how many line samples are taken between checks of the
// context while waiting for the Macintosh.
const pollCheck = 1024

// Engine is the keyboard side of the protocol. It owns Lines for as long
// as it runs. A zero Timing means DefaultTiming.
type Engine struct {
	Lines  Lines
	Clock  Clock
	Source KeySource
	Timing Timing
	Log    *zerolog.Logger

	// OnTransaction is called after each transaction, outside any byte
	// exchange. It must not block for long: the Macintosh polls again
	// within milliseconds.
	OnTransaction func(Transaction)

	xcvr *Transceiver
	err  error
	once sync.Once
}

type handler func(e *Engine, ctx context.Context, tx *Transaction) error

var handlers = map[Command]handler{
	Inquiry:     (*Engine).inquiry,
	Instant:     (*Engine).instant,
	ModelNumber: (*Engine).modelNumber,
	Test:        (*Engine).test,
}

func (e *Engine) init() {
	e.once.Do(func() {
		if e.Clock == nil {
			e.Clock = BusyClock{}
		}
		if e.Log == nil {
			nop := zerolog.Nop()
			e.Log = &nop
		}
		if e.Timing == (Timing{}) {
			e.Timing = DefaultTiming()
		}
		e.err = e.Timing.Validate()
		e.xcvr = &Transceiver{Lines: e.Lines, Clock: e.Clock, Timing: e.Timing}
	})
}

// Run answers transactions until ctx is done.
func (e *Engine) Run(ctx context.Context) error {
	for {
		tx, err := e.Transact(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		}

		if e.OnTransaction != nil {
			e.OnTransaction(tx)
		}
	}
}

// Transact waits for the Macintosh to start a transaction and answers it.
// Only a done context ends the wait early. An unknown command gets no
// reply; the Macintosh times out and tries again.
func (e *Engine) Transact(ctx context.Context) (Transaction, error) {
	e.init()

	var tx Transaction
	if e.err != nil {
		return tx, e.err
	}

	cmd, err := e.receiveCommand(ctx)
	if err != nil {
		return tx, err
	}
	tx.Timestamp = e.Clock.Now()
	tx.open(cmd)

	h, ok := handlers[cmd]
	if !ok {
		e.Log.Warn().Stringer("command", cmd).Msg("ignoring unknown command")
		return tx, nil
	}

	if err := h(e, ctx, &tx); err != nil {
		return tx, err
	}

	e.Log.Debug().Stringer("tx", tx).Msg("transaction")
	return tx, nil
}

func (e *Engine) receiveCommand(ctx context.Context) (Command, error) {
	e.Lines.SetDataDirection(Input)
	if err := e.waitData(ctx, Low); err != nil {
		return 0, err
	}

	e.Clock.Hold(e.Timing.Settle)
	cmd := Command(e.xcvr.ReceiveByte())

	// Data high means the Macintosh is ready for the reply.
	if err := e.waitData(ctx, High); err != nil {
		return cmd, err
	}

	return cmd, nil
}

func (e *Engine) waitData(ctx context.Context, want Level) error {
	for n := 0; e.Lines.ReadData() != want; n++ {
		if n%pollCheck == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *Engine) respond(tx *Transaction, b byte) {
	e.xcvr.SendByte(b)
	tx.answer(b)
}

// inquiry waits up to InquiryWait for a key, polling the source without
// sleeping.
func (e *Engine) inquiry(ctx context.Context, tx *Transaction) error {
	deadline := e.Clock.Now().Add(e.Timing.InquiryWait)
	for {
		if key, ok := e.Source.TryTake(); ok {
			return e.answerKey(ctx, tx, key)
		}
		if !e.Clock.Now().Before(deadline) {
			break
		}
	}

	e.respond(tx, NullKey)
	return nil
}

// instant does not wait for a key. Unlike a bare keyboard it routes an
// arrow marker through the keypad exchange, same as inquiry.
func (e *Engine) instant(ctx context.Context, tx *Transaction) error {
	key, ok := e.Source.TryTake()
	if !ok {
		e.respond(tx, NullKey)
		return nil
	}

	return e.answerKey(ctx, tx, key)
}

func (e *Engine) modelNumber(_ context.Context, tx *Transaction) error {
	e.respond(tx, ModelID)
	return nil
}

func (e *Engine) test(_ context.Context, tx *Transaction) error {
	e.respond(tx, TestACK)
	return nil
}

// answerKey sends an ordinary key as is. An arrow goes out as a keypad
// key: KeypadAnnounce first, then the keycode in reply to the Instant
// command the Macintosh follows up with. Any other follow up loses the
// arrow.
func (e *Engine) answerKey(ctx context.Context, tx *Transaction, key byte) error {
	if !IsArrowMarker(key) {
		e.respond(tx, key)
		return nil
	}

	e.respond(tx, KeypadAnnounce)

	cmd, err := e.receiveCommand(ctx)
	if err != nil {
		return err
	}
	tx.open(cmd)

	if cmd != Instant {
		e.Log.Warn().
			Stringer("command", cmd).
			Hex("marker", []byte{key}).
			Msg("keypad follow up was not instant, dropping arrow")
		return nil
	}

	e.respond(tx, Translate(key))
	return nil
}
