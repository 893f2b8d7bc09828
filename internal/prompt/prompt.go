// Package prompt asks the operator questions.
//
// Interactive drives a real terminal with arrow-key selection; Line reads
// answers one line at a time and is used for pipes, scripts and tests.
package prompt

import (
	"errors"
	"fmt"
	"io"

	"github.com/manifoldco/promptui"
)

// ErrClosed is returned once the operator's input has ended (end of file,
// Ctrl+C or Ctrl+D). No further prompts can be answered.
var ErrClosed = errors.New("prompt: input closed")

// Prompter is what the menu needs from a terminal.
type Prompter interface {
	// Select shows items under label and returns the index of the chosen one.
	Select(label string, items []string) (int, error)

	// Input asks a free-text question. The answer is returned untrimmed
	// except for the line terminator.
	Input(label string) (string, error)
}

// Interactive is a Prompter backed by promptui.
type Interactive struct {
	in  io.ReadCloser
	out io.WriteCloser
}

// NewInteractive returns a Prompter for a terminal. in and out are usually
// os.Stdin and os.Stdout.
func NewInteractive(in io.ReadCloser, out io.WriteCloser) *Interactive {
	return &Interactive{in: in, out: out}
}

func (p *Interactive) Select(label string, items []string) (int, error) {
	sel := promptui.Select{
		Label:  label,
		Items:  items,
		Size:   len(items),
		Stdin:  p.in,
		Stdout: p.out,
	}
	idx, _, err := sel.Run()
	if err != nil {
		return 0, closedOr(err)
	}
	return idx, nil
}

func (p *Interactive) Input(label string) (string, error) {
	in := promptui.Prompt{
		Label:  label,
		Stdin:  p.in,
		Stdout: p.out,
	}
	answer, err := in.Run()
	if err != nil {
		return "", closedOr(err)
	}
	return answer, nil
}

func closedOr(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) || errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %v", ErrClosed, err)
	}
	return fmt.Errorf("prompt: %w", err)
}
