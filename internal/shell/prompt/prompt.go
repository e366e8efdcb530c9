// Package prompt implements the interactive question/answer surface of the
// CLI over plain reader/writer pairs, so flows stay testable against
// scripted input.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// =============================================================================
// Error Types
// =============================================================================

var (
	// ErrInputClosed is returned when input ends before an answer is read.
	ErrInputClosed = errors.New("input closed")
)

// =============================================================================
// Prompter
// =============================================================================

// Prompter asks questions on w and reads answers from r.
type Prompter struct {
	r *bufio.Reader
	w io.Writer
}

// New creates a Prompter. r is typically os.Stdin and w os.Stdout.
func New(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{r: bufio.NewReader(r), w: w}
}

func (p *Prompter) readLine() (string, error) {
	line, err := p.r.ReadString('\n')
	if err != nil && line == "" {
		return "", ErrInputClosed
	}
	return strings.TrimSpace(line), nil
}

// Line asks for a free-form answer. An empty answer yields def.
func (p *Prompter) Line(label, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(p.w, "%s [%s]: ", label, def)
	} else {
		fmt.Fprintf(p.w, "%s: ", label)
	}
	answer, err := p.readLine()
	if err != nil {
		return "", err
	}
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// NonEmptyLine asks until a non-empty answer (or the default) is given.
func (p *Prompter) NonEmptyLine(label, def string) (string, error) {
	for {
		answer, err := p.Line(label, def)
		if err != nil {
			return "", err
		}
		if answer != "" {
			return answer, nil
		}
		fmt.Fprintln(p.w, "A value is required.")
	}
}

// Int asks for an integer. An empty answer yields def when hasDefault is
// set; malformed input re-prompts.
func (p *Prompter) Int(label string, def int, hasDefault bool) (int, error) {
	for {
		var answer string
		var err error
		if hasDefault {
			answer, err = p.Line(label, strconv.Itoa(def))
		} else {
			answer, err = p.Line(label, "")
		}
		if err != nil {
			return 0, err
		}
		if answer == "" {
			fmt.Fprintln(p.w, "A number is required.")
			continue
		}
		n, convErr := strconv.Atoi(answer)
		if convErr != nil {
			fmt.Fprintf(p.w, "Not a number: %s\n", answer)
			continue
		}
		return n, nil
	}
}

// Confirm asks a yes/no question. Accepts y/yes/n/no in any case; an empty
// answer yields def; anything else re-prompts.
func (p *Prompter) Confirm(label string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	for {
		fmt.Fprintf(p.w, "%s [%s]: ", label, hint)
		answer, err := p.readLine()
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(p.w, "Please answer y or n.")
	}
}

// Choose presents a numbered menu and returns the chosen zero-based index.
// Entering 0 cancels and returns -1. defaultIndex, when in range, is chosen
// by an empty answer. Out-of-range numbers re-prompt.
func (p *Prompter) Choose(title string, items []string, defaultIndex int) (int, error) {
	if len(items) == 0 {
		return -1, nil
	}
	fmt.Fprintln(p.w, title)
	for i, item := range items {
		fmt.Fprintf(p.w, "  %d. %s\n", i+1, item)
	}
	hasDefault := defaultIndex >= 0 && defaultIndex < len(items)

	for {
		if hasDefault {
			fmt.Fprintf(p.w, "Enter number (0 to cancel) [%d]: ", defaultIndex+1)
		} else {
			fmt.Fprint(p.w, "Enter number (0 to cancel): ")
		}
		answer, err := p.readLine()
		if err != nil {
			return 0, err
		}
		if answer == "" && hasDefault {
			return defaultIndex, nil
		}
		n, convErr := strconv.Atoi(answer)
		if convErr != nil {
			fmt.Fprintf(p.w, "Not a number: %s\n", answer)
			continue
		}
		if n == 0 {
			return -1, nil
		}
		if n >= 1 && n <= len(items) {
			return n - 1, nil
		}
		fmt.Fprintln(p.w, "Invalid selection. Try again.")
	}
}

// CommaList asks for a comma-separated list and returns the trimmed,
// non-empty tokens. An empty answer yields nil.
func (p *Prompter) CommaList(label string) ([]string, error) {
	answer, err := p.Line(label, "")
	if err != nil {
		return nil, err
	}
	var out []string
	for _, tok := range strings.Split(answer, ",") {
		if t := strings.TrimSpace(tok); t != "" {
			out = append(out, t)
		}
	}
	return out, nil
}
