package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"go.bug.st/serial"
	"golang.org/x/sync/errgroup"

	"go.tigermatt.uk/serkey"
	"go.tigermatt.uk/serkey/pins"
)

var (
	baudRate   = 230400
	clockPin   = "GPIO2"
	dataPin    = "GPIO3"
	fifoDepth  = serkey.DefaultDepth
	recordFile = ""
)

func runCommand() *cobra.Command {
	cmd := cobra.Command{
		Use:   "run PORT",
		Short: "Answer the Mac with keys read from PORT",
		Args:  cobra.ExactArgs(1),
		RunE:  run,
	}
	cmd.Flags().IntVar(&baudRate, "baud", baudRate, "Serial baud rate of the key source")
	cmd.Flags().StringVar(&clockPin, "clock-pin", clockPin, "GPIO pin wired to the keyboard clock")
	cmd.Flags().StringVar(&dataPin, "data-pin", dataPin, "GPIO pin wired to the keyboard data")
	cmd.Flags().IntVar(&fifoDepth, "fifo", fifoDepth, "Keys buffered between the serial port and the Mac")
	cmd.Flags().StringVar(&recordFile, "record", recordFile, "Record every transaction to FILE")
	timingFlags(&cmd)

	return &cmd
}

func listenStop() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)

	go func() {
		<-sigCh
		cancel()
	}()

	return ctx
}

func run(_ *cobra.Command, args []string) error {
	if err := timing.Validate(); err != nil {
		return err
	}

	port, err := serial.Open(args[0], &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return fmt.Errorf("while opening serial port %s: %w", args[0], err)
	}
	defer port.Close()

	if err := port.SetReadTimeout(100 * time.Millisecond); err != nil {
		return fmt.Errorf("setting read timeout: %w", err)
	}

	lines, err := pins.Open(clockPin, dataPin)
	if err != nil {
		return fmt.Errorf("opening keyboard lines: %w", err)
	}
	defer func() {
		if err := lines.Release(); err != nil {
			log.Warn().Err(err).Msg("releasing keyboard lines")
		}
	}()

	src := &serkey.SerialSource{Port: port, Depth: fifoDepth, Log: &log.Logger}
	engine := &serkey.Engine{
		Lines:  lines,
		Clock:  serkey.BusyClock{},
		Source: src,
		Timing: timing,
		Log:    &log.Logger,
	}

	g, ctx := errgroup.WithContext(listenStop())

	txs := make(chan serkey.Transaction, 100)
	if recordFile != "" {
		f, err := os.Create(recordFile)
		if err != nil {
			return fmt.Errorf("creating recording: %w", err)
		}
		defer f.Close()

		rec := serkey.Recorder{Dest: f}
		g.Go(func() error {
			for tx := range txs {
				if err := rec.Receive(tx); err != nil {
					return fmt.Errorf("recording transaction: %w", err)
				}
			}
			return nil
		})

		engine.OnTransaction = func(tx serkey.Transaction) {
			select {
			case txs <- tx:
			default:
				log.Warn().Stringer("tx", tx).Msg("recorder backed up, dropping transaction")
			}
		}
	}

	g.Go(func() error { return src.Consume(ctx) })
	g.Go(func() error {
		defer close(txs)

		// Bit timing is held by spinning; keep the engine on one thread.
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		return engine.Run(ctx)
	})

	log.Info().
		Str("port", args[0]).
		Int("baud", baudRate).
		Str("clock", clockPin).
		Str("data", dataPin).
		Dur("settle", timing.Settle).
		Msg("keyboard ready")

	return g.Wait()
}
