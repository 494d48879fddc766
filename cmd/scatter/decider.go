package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/meshforge/scatter/pkg/scatter"
)

// StdinDecider asks the operator what to do with a preview batch. It
// blocks on the reader until an answer arrives; EOF counts as cancel.
type StdinDecider struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewStdinDecider creates a decider prompting on out and reading from in.
func NewStdinDecider(in io.Reader, out io.Writer) *StdinDecider {
	return &StdinDecider{in: bufio.NewScanner(in), out: out}
}

// Decide implements scatter.Decider.
func (d *StdinDecider) Decide(batchSize int) (scatter.Decision, error) {
	for {
		fmt.Fprintf(d.out, "Preview shows %d instances. Keep them? [yes/no/cancel]: ", batchSize)
		if !d.in.Scan() {
			if err := d.in.Err(); err != nil {
				return scatter.DecisionCancel, err
			}
			return scatter.DecisionCancel, nil // EOF
		}

		switch strings.ToLower(strings.TrimSpace(d.in.Text())) {
		case "y", "yes":
			return scatter.DecisionAccept, nil
		case "n", "no":
			return scatter.DecisionRegenerate, nil
		case "c", "cancel", "q", "quit":
			return scatter.DecisionCancel, nil
		default:
			fmt.Fprintln(d.out, "Please answer yes (keep), no (regenerate) or cancel.")
		}
	}
}
