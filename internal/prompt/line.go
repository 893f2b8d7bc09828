package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Line is a Prompter that reads one answer per line. Select prints the
// options numbered from 1 and accepts either the number or the option text.
type Line struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewLine returns a Prompter reading answers from in and writing questions
// to out.
func NewLine(in io.Reader, out io.Writer) *Line {
	return &Line{scanner: bufio.NewScanner(in), out: out}
}

func (p *Line) Select(label string, items []string) (int, error) {
	for {
		fmt.Fprintln(p.out, label)
		for i, item := range items {
			fmt.Fprintf(p.out, "  %d) %s\n", i+1, item)
		}
		fmt.Fprint(p.out, "> ")

		answer, err := p.read()
		if err != nil {
			return 0, err
		}
		if idx, ok := choose(strings.TrimSpace(answer), items); ok {
			return idx, nil
		}
		fmt.Fprintf(p.out, "Please choose a number between 1 and %d.\n", len(items))
	}
}

func (p *Line) Input(label string) (string, error) {
	fmt.Fprintf(p.out, "%s ", label)
	return p.read()
}

func (p *Line) read() (string, error) {
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", fmt.Errorf("prompt: read: %w", err)
		}
		return "", ErrClosed
	}
	return strings.TrimSuffix(p.scanner.Text(), "\r"), nil
}

func choose(answer string, items []string) (int, bool) {
	if n, err := strconv.Atoi(answer); err == nil {
		if n >= 1 && n <= len(items) {
			return n - 1, true
		}
		return 0, false
	}
	for i, item := range items {
		if strings.EqualFold(answer, item) {
			return i, true
		}
	}
	return 0, false
}
