// Package ux renders terminal output and collects user input.
package ux

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// ANSI color helpers
const (
	Reset   = "\033[0m"
	Bold    = "\033[1m"
	Dim     = "\033[2m"
	Red     = "\033[31m"
	Green   = "\033[32m"
	Yellow  = "\033[33m"
	Blue    = "\033[34m"
	Magenta = "\033[35m"
	Cyan    = "\033[36m"
)

// Panel border colors.
const (
	ColorCyan    = lipgloss.Color("6")
	ColorGreen   = lipgloss.Color("2")
	ColorRed     = lipgloss.Color("1")
	ColorBlue    = lipgloss.Color("4")
	ColorMagenta = lipgloss.Color("5")
	ColorYellow  = lipgloss.Color("3")
)

const defaultWidth = 80

// Printer writes styled output to W.
type Printer struct {
	W     io.Writer
	Width int

	style *lipgloss.Renderer
	md    *glamour.TermRenderer
}

// NewPrinter returns a Printer for w. Color support is detected from w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{W: w, Width: defaultWidth, style: lipgloss.NewRenderer(w)}
}

// Stdout is a Printer for the process's standard output.
func Stdout() *Printer {
	return NewPrinter(os.Stdout)
}

// Info prints a cyan status line.
func (p *Printer) Info(format string, args ...any) {
	fmt.Fprintf(p.W, "%s%s%s\n", Cyan, fmt.Sprintf(format, args...), Reset)
}

// Success prints a green status line.
func (p *Printer) Success(format string, args ...any) {
	fmt.Fprintf(p.W, "%s✓ %s%s\n", Green, fmt.Sprintf(format, args...), Reset)
}

// Warn prints a yellow status line.
func (p *Printer) Warn(format string, args ...any) {
	fmt.Fprintf(p.W, "%s%s%s\n", Yellow, fmt.Sprintf(format, args...), Reset)
}

// Error prints a red error line.
func (p *Printer) Error(err error) {
	fmt.Fprintf(p.W, "%serror:%s %v\n", Red, Reset, err)
}

// Dim prints a faint line.
func (p *Printer) Dim(format string, args ...any) {
	fmt.Fprintf(p.W, "%s%s%s\n", Dim, fmt.Sprintf(format, args...), Reset)
}

// Println prints a plain line.
func (p *Printer) Println(s string) {
	fmt.Fprintln(p.W, s)
}

// Preview prints the start of a source file with line numbers.
func (p *Printer) Preview(code string, max int) {
	if max > 0 && len(code) > max {
		code = code[:max]
	}
	lines := strings.Split(strings.TrimRight(code, "\n"), "\n")
	width := len(fmt.Sprint(len(lines)))
	for i, line := range lines {
		fmt.Fprintf(p.W, "%s%*d │%s %s\n", Dim, width, i+1, Reset, line)
	}
}
