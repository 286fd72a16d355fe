package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Prompter gathers interactive input from the operator. Implementations
// must block until the operator answers; there is no timeout.
type Prompter interface {
	// Select presents options as a 1-based numbered menu and returns the
	// chosen option. Empty input selects the first option. A single-option
	// list is returned without prompting.
	Select(label string, options []string) (string, error)

	// Input asks for a free-form value, returning def on empty input.
	Input(label, def string) (string, error)

	// Confirm asks a yes/no question. Only "y" and "yes" (any case) are
	// affirmative.
	Confirm(label string) (bool, error)
}

// IOPrompter is a line-oriented Prompter over an arbitrary reader and
// writer, normally stdin and stdout.
type IOPrompter struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewIOPrompter creates a prompter reading answers from in and writing
// prompts to out.
func NewIOPrompter(in io.Reader, out io.Writer) *IOPrompter {
	return &IOPrompter{
		in:  bufio.NewScanner(in),
		out: out,
	}
}

func (p *IOPrompter) Select(label string, options []string) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("no options available for %s", label)
	}
	if len(options) == 1 {
		fmt.Fprintf(p.out, "Only one %s available, using %s\n", label, options[0])
		return options[0], nil
	}

	fmt.Fprintf(p.out, "Available %s:\n", label)
	for i, opt := range options {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, opt)
	}

	for {
		fmt.Fprintf(p.out, "Select %s [1]: ", label)
		line, err := p.readLine()
		if err != nil {
			return "", err
		}
		if line == "" {
			return options[0], nil
		}
		n, err := strconv.Atoi(line)
		if err != nil || n < 1 || n > len(options) {
			fmt.Fprintf(p.out, "Invalid selection %q, enter a number between 1 and %d\n", line, len(options))
			continue
		}
		return options[n-1], nil
	}
}

func (p *IOPrompter) Input(label, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", label, def)
	} else {
		fmt.Fprintf(p.out, "%s: ", label)
	}
	line, err := p.readLine()
	if err != nil {
		return "", err
	}
	if line == "" {
		return def, nil
	}
	return line, nil
}

func (p *IOPrompter) Confirm(label string) (bool, error) {
	fmt.Fprintf(p.out, "%s [y/N]: ", label)
	line, err := p.readLine()
	if err != nil {
		return false, err
	}
	switch strings.ToLower(line) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func (p *IOPrompter) readLine() (string, error) {
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return "", fmt.Errorf("input closed")
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// Verify IOPrompter implements Prompter interface
var _ Prompter = (*IOPrompter)(nil)
