package ux

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrAborted is returned when the user backs out of a prompt.
var ErrAborted = errors.New("aborted")

// Prompter collects answers from the user.
type Prompter interface {
	// Ask returns a line of text, or def when the answer is blank.
	Ask(ctx context.Context, question, def string) (string, error)
	Confirm(ctx context.Context, question string, def bool) (bool, error)
	// Select returns the index of the chosen option.
	Select(ctx context.Context, title string, options []string) (int, error)
	// MultiSelect returns the indexes of the chosen options, in order.
	MultiSelect(ctx context.Context, title string, options []string) ([]int, error)
	// Wait runs fn while showing label as progress.
	Wait(ctx context.Context, label string, fn func(ctx context.Context) error) error
}

// Terminal is the interactive Prompter. Menus and the spinner use
// bubbletea when the input is a terminal; otherwise they fall back to
// numbered line prompts.
type Terminal struct {
	In          io.Reader
	Out         io.Writer
	Interactive bool

	lines *LineReader
}

// NewTerminal returns a Terminal on the process's stdin and stdout.
func NewTerminal() *Terminal {
	return &Terminal{
		In:          os.Stdin,
		Out:         os.Stdout,
		Interactive: isTerminal(os.Stdin) && isTerminal(os.Stdout),
	}
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}

func (t *Terminal) readLine(ctx context.Context) (string, error) {
	if t.lines == nil {
		t.lines = NewLineReader(t.In)
	}
	return t.lines.ReadLine(ctx)
}

func (t *Terminal) Ask(ctx context.Context, question, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(t.Out, "%s%s%s %s(%s)%s: ", Bold, question, Reset, Dim, def, Reset)
	} else {
		fmt.Fprintf(t.Out, "%s%s%s: ", Bold, question, Reset)
	}
	line, err := t.readLine(ctx)
	if err != nil {
		fmt.Fprintln(t.Out)
		return "", err
	}
	if line = strings.TrimSpace(line); line == "" {
		return def, nil
	}
	return line, nil
}

func (t *Terminal) Confirm(ctx context.Context, question string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	for {
		fmt.Fprintf(t.Out, "%s%s%s [%s]: ", Bold, question, Reset, hint)
		line, err := t.readLine(ctx)
		if err != nil {
			fmt.Fprintln(t.Out)
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintf(t.Out, "%sPlease answer y or n.%s\n", Yellow, Reset)
	}
}

func (t *Terminal) Select(ctx context.Context, title string, options []string) (int, error) {
	if len(options) == 0 {
		return 0, fmt.Errorf("select %q: no options", title)
	}
	if t.Interactive {
		picked, err := runSelect(ctx, t.In, t.Out, title, options, false)
		if err != nil {
			return 0, err
		}
		return picked[0], nil
	}
	for {
		t.printOptions(title, options)
		line, err := t.readLine(ctx)
		if err != nil {
			return 0, err
		}
		if n, err := strconv.Atoi(strings.TrimSpace(line)); err == nil && n >= 1 && n <= len(options) {
			return n - 1, nil
		}
		fmt.Fprintf(t.Out, "%sEnter a number from 1 to %d.%s\n", Yellow, len(options), Reset)
	}
}

func (t *Terminal) MultiSelect(ctx context.Context, title string, options []string) ([]int, error) {
	if len(options) == 0 {
		return nil, nil
	}
	if t.Interactive {
		return runSelect(ctx, t.In, t.Out, title, options, true)
	}
	for {
		t.printOptions(title+" (comma-separated, blank for none)", options)
		line, err := t.readLine(ctx)
		if err != nil {
			return nil, err
		}
		picked, ok := parseIndexes(line, len(options))
		if ok {
			return picked, nil
		}
		fmt.Fprintf(t.Out, "%sEnter numbers from 1 to %d.%s\n", Yellow, len(options), Reset)
	}
}

func (t *Terminal) printOptions(title string, options []string) {
	fmt.Fprintf(t.Out, "%s%s%s\n", Bold, title, Reset)
	for i, o := range options {
		fmt.Fprintf(t.Out, "  %s%d)%s %s\n", Cyan, i+1, Reset, o)
	}
	fmt.Fprint(t.Out, "> ")
}

// parseIndexes turns "1, 3" into []int{0, 2}.
func parseIndexes(line string, n int) ([]int, bool) {
	var out []int
	seen := make(map[int]bool)
	for _, f := range strings.FieldsFunc(line, func(r rune) bool { return r == ',' || r == ' ' }) {
		i, err := strconv.Atoi(f)
		if err != nil || i < 1 || i > n {
			return nil, false
		}
		if !seen[i-1] {
			seen[i-1] = true
			out = append(out, i-1)
		}
	}
	return out, true
}
