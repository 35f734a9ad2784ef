package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"go.tigermatt.uk/serkey"
	"go.tigermatt.uk/serkey/sim"
)

type styles struct {
	time     lipgloss.Style
	command  lipgloss.Style
	key      lipgloss.Style
	fixed    lipgloss.Style
	silent   lipgloss.Style
	annotate lipgloss.Style
}

func newStyles() styles {
	return styles{
		time:     lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(8)),
		command:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(4)).Width(12),
		key:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(2)),
		fixed:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(3)),
		silent:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(7)).Background(lipgloss.ANSIColor(1)),
		annotate: lipgloss.NewStyle().Italic(true).Foreground(lipgloss.ANSIColor(6)),
	}
}

var arrowNames = map[byte]string{
	serkey.KeyLeft:  "left",
	serkey.KeyRight: "right",
	serkey.KeyUp:    "up",
	serkey.KeyDown:  "down",
}

func (s styles) exchange(cmd serkey.Command, resp byte, answered, afterKeypad bool) string {
	c := s.command.Render(cmd.String())
	if !answered {
		return c + " " + s.silent.Render("no reply")
	}

	r := fmt.Sprintf("%02X", resp)
	switch {
	case afterKeypad:
		note := "keypad"
		if name, ok := arrowNames[resp&0x7F]; ok {
			note = name
		}
		if resp&0x80 != 0 {
			note += " up"
		}
		return c + " " + s.key.Render(r) + " " + s.annotate.Render(note)
	case resp == serkey.NullKey && (cmd == serkey.Inquiry || cmd == serkey.Instant):
		return c + " " + s.fixed.Render(r) + " " + s.annotate.Render("no key")
	case resp == serkey.KeypadAnnounce && (cmd == serkey.Inquiry || cmd == serkey.Instant):
		return c + " " + s.fixed.Render(r) + " " + s.annotate.Render("keypad follows")
	case cmd == serkey.ModelNumber || cmd == serkey.Test:
		return c + " " + s.fixed.Render(r)
	default:
		return c + " " + s.key.Render(r)
	}
}

func (s styles) transaction(tx serkey.Transaction) string {
	parts := make([]string, len(tx.Exchanges))
	for i, ex := range tx.Exchanges {
		parts[i] = s.exchange(ex.Command, ex.Response, ex.Answered, i > 0)
	}
	return s.time.Render(tx.Timestamp.Format("15:04:05.000")) + " " + strings.Join(parts, "  ")
}

func (s styles) replies(rs []sim.Reply) []string {
	lines := make([]string, len(rs))
	for i, r := range rs {
		afterKeypad := i > 0 && rs[i-1].Answered && rs[i-1].Response == serkey.KeypadAnnounce &&
			(rs[i-1].Command == serkey.Inquiry || rs[i-1].Command == serkey.Instant)

		at := r.Ready.Sub(sim.Epoch)
		lines[i] = fmt.Sprintf("%s %s",
			s.time.Render(fmt.Sprintf("%10s", at.Round(time.Microsecond))),
			s.exchange(r.Command, r.Response, r.Answered, afterKeypad))
	}
	return lines
}
