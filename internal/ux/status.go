package ux

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// StatusRow is one line of the startup status table.
type StatusRow struct {
	Module  string
	OK      bool
	Status  string
	Details string
}

// Splash prints the startup banner and system status table.
func (p *Printer) Splash(version string, rows []StatusRow) {
	title := "APP GENERATOR"
	if version != "" {
		title += " " + version
	}
	p.Banner(title, ColorCyan)

	header := p.style.NewStyle().Bold(true).Foreground(ColorMagenta).Padding(0, 1)
	cell := p.style.NewStyle().Padding(0, 1)
	ok := cell.Foreground(ColorGreen)
	bad := cell.Foreground(ColorRed)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(p.style.NewStyle().Foreground(ColorCyan)).
		Headers("Module", "Status", "Details").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			if col == 1 && row >= 0 && row < len(rows) {
				if rows[row].OK {
					return ok
				}
				return bad
			}
			return cell
		})
	for _, r := range rows {
		t.Row(r.Module, r.Status, r.Details)
	}
	fmt.Fprintln(p.W, t.Render())
	fmt.Fprintf(p.W, "\n%s%s>> SYSTEM READY.%s\n\n", Bold, Green, Reset)
}
