package ux

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// Panel prints body inside a rounded border with an optional title.
func (p *Printer) Panel(title, body string, color lipgloss.Color) {
	box := p.style.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 1).
		Width(p.Width - 2)
	if title != "" {
		heading := p.style.NewStyle().Bold(true).Foreground(color).Render(title)
		body = heading + "\n\n" + body
	}
	fmt.Fprintln(p.W, box.Render(strings.TrimRight(body, "\n")))
}

// Markdown renders md for the terminal. Rendering failures fall back to the
// raw text.
func (p *Printer) Markdown(md string) string {
	if p.md == nil {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(p.Width-6),
		)
		if err != nil {
			return md
		}
		p.md = r
	}
	out, err := p.md.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}

// MarkdownPanel prints md rendered inside a panel.
func (p *Printer) MarkdownPanel(title, md string, color lipgloss.Color) {
	p.Panel(title, p.Markdown(md), color)
}

// Banner prints a centered, filled heading bar.
func (p *Printer) Banner(text string, color lipgloss.Color) {
	bar := p.style.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("15")).
		Background(color).
		Width(p.Width - 4).
		Align(lipgloss.Center)
	p.Panel("", bar.Render(text), color)
}
