package main

import (
	"github.com/spf13/cobra"

	"go.tigermatt.uk/serkey"
)

var timing = serkey.DefaultTiming()

func timingFlags(cmd *cobra.Command) {
	cmd.Flags().DurationVar(&timing.Settle, "settle", timing.Settle, "Delay between the Mac pulling data low and the first clock")
	cmd.Flags().DurationVar(&timing.InquiryWait, "inquiry-wait", timing.InquiryWait, "How long Inquiry waits for a key")
}
