package serkey

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"time"
)

func TestRecorderRoundTrip(t *testing.T) {
	txs := []Transaction{
		{
			Timestamp: time.Unix(100, 0).UTC(),
			Exchanges: []Exchange{{Command: ModelNumber, Response: ModelID, Answered: true}},
		},
		{
			Timestamp: time.Unix(101, 0).UTC(),
			Exchanges: []Exchange{
				{Command: Inquiry, Response: KeypadAnnounce, Answered: true},
				{Command: Instant, Response: KeyLeft, Answered: true},
			},
		},
		{
			Timestamp: time.Unix(102, 0).UTC(),
			Exchanges: []Exchange{{Command: 0x42}},
		},
	}

	var buf bytes.Buffer
	r := Recorder{Dest: &buf}
	for _, tx := range txs {
		if err := r.Receive(tx); err != nil {
			t.Fatalf("Receive: %s", err)
		}
	}

	out := make(chan Transaction, len(txs))
	if err := ReadIn(out, &buf); err != nil {
		t.Fatalf("ReadIn: %s", err)
	}

	var got []Transaction
	for tx := range out {
		got = append(got, tx)
	}

	if len(got) != len(txs) {
		t.Fatalf("Expected %d transactions, got %d", len(txs), len(got))
	}
	for i := range txs {
		if got[i].String() != txs[i].String() {
			t.Errorf("Transaction %d: expected %q got %q", i, txs[i], got[i])
		}
		if !got[i].Timestamp.Equal(txs[i].Timestamp) {
			t.Errorf("Transaction %d: expected time %s got %s", i, txs[i].Timestamp, got[i].Timestamp)
		}
	}
}

func TestTransactionString(t *testing.T) {
	tx := Transaction{Exchanges: []Exchange{
		{Command: Inquiry, Response: KeypadAnnounce, Answered: true},
		{Command: Test},
	}}

	if s, want := tx.String(), "INQUIRY→79 TEST→--"; s != want {
		t.Errorf("Expected %q got %q", want, s)
	}
	if rs := tx.Responses(); !bytes.Equal(rs, []byte{0x79}) {
		t.Errorf("Expected responses 79, got % 02X", rs)
	}
}

func TestReadInTruncated(t *testing.T) {
	var buf bytes.Buffer
	r := Recorder{Dest: &buf}
	for _, cmd := range []Command{Test, ModelNumber, Inquiry} {
		tx := Transaction{Exchanges: []Exchange{{Command: cmd, Response: 0x7B, Answered: true}}}
		if err := r.Receive(tx); err != nil {
			t.Fatalf("Receive: %s", err)
		}
	}
	whole := buf.Len()

	// Drop the tail of the third transaction.
	buf.Truncate(whole - 3)

	out := make(chan Transaction, 3)
	err := ReadIn(out, &buf)
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("Expected an unexpected EOF, got %v", err)
	}
	if !strings.Contains(err.Error(), "transaction 2") {
		t.Errorf("Expected the failing transaction in %q", err)
	}

	var n int
	for range out {
		n++
	}
	if n != 2 {
		t.Errorf("Expected two whole transactions, got %d", n)
	}
}
