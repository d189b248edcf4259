package ux

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	cursorStyle   = lipgloss.NewStyle().Foreground(ColorCyan).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(ColorGreen)
	hintStyle     = lipgloss.NewStyle().Faint(true)
)

// selectModel is a vertical menu. In multi mode space toggles an option and
// enter confirms the set.
type selectModel struct {
	title   string
	options []string
	multi   bool
	cursor  int
	checked map[int]bool
	done    bool
	aborted bool
}

func newSelectModel(title string, options []string, multi bool) selectModel {
	return selectModel{title: title, options: options, multi: multi, checked: make(map[int]bool)}
}

func (m selectModel) Init() tea.Cmd { return nil }

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "ctrl+c", "esc":
		m.aborted = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		} else {
			m.cursor = len(m.options) - 1
		}
	case "down", "j", "tab":
		if m.cursor < len(m.options)-1 {
			m.cursor++
		} else {
			m.cursor = 0
		}
	case " ":
		if m.multi {
			m.checked[m.cursor] = !m.checked[m.cursor]
		}
	case "enter":
		if !m.multi {
			m.checked = map[int]bool{m.cursor: true}
		}
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m selectModel) View() string {
	if m.done || m.aborted {
		return ""
	}
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(m.title) + "\n")
	for i, o := range m.options {
		prefix := "  "
		if i == m.cursor {
			prefix = cursorStyle.Render("> ")
		}
		label := o
		if m.multi {
			box := "[ ] "
			if m.checked[i] {
				box = selectedStyle.Render("[x] ")
			}
			label = box + o
		}
		if i == m.cursor {
			label = cursorStyle.Render(label)
		}
		b.WriteString(prefix + label + "\n")
	}
	hint := "↑/↓ move • enter select • esc back"
	if m.multi {
		hint = "↑/↓ move • space toggle • enter confirm • esc back"
	}
	b.WriteString(hintStyle.Render(hint) + "\n")
	return b.String()
}

// picked returns the chosen indexes in ascending order.
func (m selectModel) picked() []int {
	var out []int
	for i, on := range m.checked {
		if on {
			out = append(out, i)
		}
	}
	sort.Ints(out)
	return out
}

func runSelect(ctx context.Context, in io.Reader, out io.Writer, title string, options []string, multi bool) ([]int, error) {
	p := tea.NewProgram(newSelectModel(title, options, multi),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	final, err := p.Run()
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if err != nil {
		return nil, fmt.Errorf("menu: %w", err)
	}
	m := final.(selectModel)
	if m.aborted {
		return nil, ErrAborted
	}
	picked := m.picked()
	if !multi {
		fmt.Fprintf(out, "%s%s%s %s\n", Bold, title, Reset, options[picked[0]])
	}
	return picked, nil
}
