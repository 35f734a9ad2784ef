package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"go.tigermatt.uk/serkey"
	"go.tigermatt.uk/serkey/sim"
)

var (
	simCommands = []string{"16", "36", "10", "10", "14", "14"}
	simKeys     = []string{}
	simKeyAt    = time.Duration(0)
)

func simulateCommand() *cobra.Command {
	cmd := cobra.Command{
		Use:   "simulate",
		Short: "Run the keyboard against a simulated Mac on a virtual clock",
		Args:  cobra.ExactArgs(0),
		RunE:  simulate,
	}
	cmd.Flags().StringSliceVar(&simCommands, "commands", simCommands, "Commands the Mac sends, in hex")
	cmd.Flags().StringSliceVar(&simKeys, "keys", simKeys, "Bytes waiting at the key source, in hex")
	cmd.Flags().DurationVar(&simKeyAt, "key-at", simKeyAt, "Virtual time at which the keys arrive")
	timingFlags(&cmd)

	return &cmd
}

func parseHex(vals []string) ([]byte, error) {
	bs := make([]byte, 0, len(vals))
	for _, v := range vals {
		v = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(v)), "0x")
		b, err := strconv.ParseUint(v, 16, 8)
		if err != nil {
			return nil, fmt.Errorf("parsing %q: %w", v, err)
		}
		bs = append(bs, byte(b))
	}
	return bs, nil
}

func simulate(_ *cobra.Command, _ []string) error {
	if err := timing.Validate(); err != nil {
		return err
	}

	cmdBytes, err := parseHex(simCommands)
	if err != nil {
		return fmt.Errorf("commands: %w", err)
	}
	keyBytes, err := parseHex(simKeys)
	if err != nil {
		return fmt.Errorf("keys: %w", err)
	}

	cmds := make([]serkey.Command, len(cmdBytes))
	for i, b := range cmdBytes {
		cmds[i] = serkey.Command(b)
	}

	ctx, cancel := context.WithCancel(listenStop())
	defer cancel()

	clock := sim.NewClock(time.Microsecond)
	host := sim.NewHost(clock, cancel, cmds...)
	keys := &sim.Keys{Clock: clock}
	for _, k := range keyBytes {
		if simKeyAt > 0 {
			keys.PushAt(simKeyAt, k)
		} else {
			keys.Push(k)
		}
	}

	engine := &serkey.Engine{
		Lines:  host,
		Clock:  clock,
		Source: keys,
		Timing: timing,
		Log:    &log.Logger,
	}
	if err := engine.Run(ctx); err != nil {
		return err
	}

	for _, line := range newStyles().replies(host.Replies()) {
		fmt.Println(line)
	}
	if n := keys.Len(); n > 0 {
		log.Info().Int("keys", n).Msg("keys left unread")
	}

	return nil
}
