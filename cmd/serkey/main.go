// Command serkey answers a Macintosh keyboard port with keystrokes read
// from a serial port.
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var debug = false

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05.000"})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cmd := &cobra.Command{
		Use:  "serkey",
		Args: cobra.ExactArgs(0),
		PersistentPreRun: func(*cobra.Command, []string) {
			if debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
		SilenceUsage: true,
	}
	cmd.PersistentFlags().BoolVar(&debug, "debug", debug, "Log every transaction")

	cmd.AddCommand(runCommand())
	cmd.AddCommand(simulateCommand())
	cmd.AddCommand(&cobra.Command{
		Use:  "dump FILE",
		Args: cobra.ExactArgs(1),
		RunE: dump,
	})

	if err := cmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("serkey failed")
	}
}
