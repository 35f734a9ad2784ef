package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"go.tigermatt.uk/serkey"
)

func dump(_ *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}
	defer f.Close()

	txs := make(chan serkey.Transaction, 100)

	var g errgroup.Group
	g.Go(func() error { return processTxs(txs) })
	g.Go(func() error { return serkey.ReadIn(txs, f) })

	return g.Wait()
}

func processTxs(txs <-chan serkey.Transaction) error {
	s := newStyles()

	var n, silent int
	for tx := range txs {
		fmt.Println(s.transaction(tx))

		n++
		for _, ex := range tx.Exchanges {
			if !ex.Answered {
				silent++
			}
		}
	}

	fmt.Printf("%d transactions, %d commands left unanswered\n", n, silent)
	return nil
}
