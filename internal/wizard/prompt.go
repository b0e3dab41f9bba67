package wizard

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Prompter runs the line-based question flow. When assumeDefaults is set
// (--yes or --quick) every question answers itself with its default, and
// questions without a default fail instead of blocking.
type Prompter struct {
	in             *bufio.Reader
	out            io.Writer
	assumeDefaults bool
}

// NewPrompter builds a Prompter over the given streams.
func NewPrompter(in io.Reader, out io.Writer, assumeDefaults bool) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out, assumeDefaults: assumeDefaults}
}

// Ask poses a free-text question. An empty reply takes the default; when the
// default is empty too, the question repeats until answered.
func (p *Prompter) Ask(label, def string) (string, error) {
	if p.assumeDefaults {
		if def == "" {
			return "", fmt.Errorf("no default for %q in non-interactive mode", label)
		}
		return def, nil
	}
	for {
		if def != "" {
			fmt.Fprintf(p.out, "%s %s: ", promptStyle.Render(label), dimStyle.Render("["+def+"]"))
		} else {
			fmt.Fprintf(p.out, "%s: ", promptStyle.Render(label))
		}
		line, err := p.in.ReadString('\n')
		if err != nil && line == "" {
			return "", fmt.Errorf("read answer for %q: %w", label, err)
		}
		answer := strings.TrimSpace(line)
		if answer == "" {
			answer = def
		}
		if answer != "" {
			return answer, nil
		}
	}
}

// Confirm poses a yes/no question.
func (p *Prompter) Confirm(label string, def bool) (bool, error) {
	if p.assumeDefaults {
		return def, nil
	}
	hint := "[y/N]"
	if def {
		hint = "[Y/n]"
	}
	fmt.Fprintf(p.out, "%s %s: ", promptStyle.Render(label), dimStyle.Render(hint))
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return false, fmt.Errorf("read answer for %q: %w", label, err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// Select poses a numbered multiple-choice question and returns the chosen
// index.
func (p *Prompter) Select(label string, options []string, def int) (int, error) {
	if def < 0 || def >= len(options) {
		def = 0
	}
	if p.assumeDefaults {
		return def, nil
	}
	fmt.Fprintln(p.out, promptStyle.Render(label))
	for i, option := range options {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, option)
	}
	for {
		fmt.Fprintf(p.out, "%s %s: ", promptStyle.Render("Choice"), dimStyle.Render(fmt.Sprintf("[%d]", def+1)))
		line, err := p.in.ReadString('\n')
		if err != nil && line == "" {
			return 0, fmt.Errorf("read answer for %q: %w", label, err)
		}
		answer := strings.TrimSpace(line)
		if answer == "" {
			return def, nil
		}
		choice, err := strconv.Atoi(answer)
		if err == nil && choice >= 1 && choice <= len(options) {
			return choice - 1, nil
		}
		fmt.Fprintf(p.out, "enter a number between 1 and %d\n", len(options))
	}
}
