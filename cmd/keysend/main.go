// Command keysend types into a serkey bridge: each key pressed in the
// terminal is written to the bridge's serial port as Macintosh keycodes.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/tarm/serial"
	"golang.org/x/term"
)

var (
	baud  = 230400
	hold  = 30 * time.Millisecond
	debug = false
)

type sender struct {
	port io.Writer
	hold time.Duration
	mu   sync.Mutex
}

func (s *sender) write(bs ...byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.port.Write(bs); err != nil {
		return fmt.Errorf("writing to serial port: %w", err)
	}
	log.Debug().Hex("sent", bs).Msg("wrote")
	return nil
}

func (s *sender) send(st stroke) error {
	if err := s.write(st.press...); err != nil {
		return err
	}
	time.Sleep(s.hold)
	return s.write(st.release...)
}

func keysend(_ *cobra.Command, args []string) error {
	p, err := serial.OpenPort(&serial.Config{
		Name:        args[0],
		Baud:        baud,
		ReadTimeout: 10 * time.Millisecond,
	})
	if err != nil {
		return fmt.Errorf("opening serial port %s: %w", args[0], err)
	}
	defer p.Close()

	if fd := int(os.Stdin.Fd()); term.IsTerminal(fd) {
		state, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("putting terminal in raw mode: %w", err)
		}
		defer term.Restore(fd, state)

		fmt.Fprint(os.Stderr, "Typing to the Mac, ^C to stop\r\n")
	}

	s := &sender{port: p, hold: hold}
	var t translator

	bs := make([]byte, 16)
	for {
		n, err := os.Stdin.Read(bs)
		for _, b := range bs[:n] {
			st, ok, quit := t.feed(b)
			if quit {
				return nil
			}
			if !ok {
				continue
			}
			if err := s.send(st); err != nil {
				return err
			}
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("reading keys: %w", err)
		}
	}
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true})

	cmd := &cobra.Command{
		Use:   "keysend PORT",
		Short: "Send terminal keystrokes to a serkey bridge",
		Args:  cobra.ExactArgs(1),
		PreRun: func(*cobra.Command, []string) {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
			if debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
		RunE:         keysend,
		SilenceUsage: true,
	}
	cmd.Flags().IntVar(&baud, "baud", baud, "Serial baud rate")
	cmd.Flags().DurationVar(&hold, "hold", hold, "Time between key down and key up")
	cmd.Flags().BoolVar(&debug, "debug", debug, "Log every byte written")

	if err := cmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("keysend failed")
	}
}
