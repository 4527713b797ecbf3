package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/abhisek/lumi/internal/quiz"
)

// prompter reads answers line by line for the plain-text flows.
type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewScanner(in), out: out}
}

// line prints label and returns the next trimmed input line. ok is false
// at end of input.
func (p *prompter) line(label string) (string, bool) {
	fmt.Fprint(p.out, label)
	if !p.in.Scan() {
		fmt.Fprintln(p.out)
		return "", false
	}
	return strings.TrimSpace(p.in.Text()), true
}

// confirm asks a yes/no question. Anything but y/yes is no.
func (p *prompter) confirm(question string) bool {
	s, ok := p.line(question + " [y/N] ")
	if !ok {
		return false
	}
	s = strings.ToLower(s)
	return s == "y" || s == "yes"
}

// printItem shows a question with numbered options.
func printItem(w io.Writer, n, total int, it quiz.Item) {
	fmt.Fprintf(w, "\n[%d/%d] %s\n", n, total, it.Tag)
	fmt.Fprintln(w, it.Prompt)
	for i, opt := range it.Options {
		fmt.Fprintf(w, "  %d) %s\n", i+1, opt)
	}
}

// parseChoices maps "1", "1,3" or "1 3" to option texts. Out-of-range
// numbers are an error.
func parseChoices(s string, options []string) ([]string, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' || r == '，' })
	if len(fields) == 0 {
		return nil, fmt.Errorf("no option chosen")
	}
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || n < 1 || n > len(options) {
			return nil, fmt.Errorf("pick a number between 1 and %d", len(options))
		}
		out = append(out, options[n-1])
	}
	return out, nil
}

func mark(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}
