package ux

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type doneMsg struct{ err error }

type spinnerModel struct {
	spinner spinner.Model
	label   string
	cancel  context.CancelFunc
	err     error
	done    bool
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case doneMsg:
		m.err = msg.err
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.cancel()
		}
		return m, nil
	default:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
}

func (m spinnerModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s %s%s%s\n", m.spinner.View(), Cyan, m.label, Reset)
}

// Wait runs fn under a spinner. Ctrl+C cancels fn's context and waits for
// it to return.
func (t *Terminal) Wait(ctx context.Context, label string, fn func(ctx context.Context) error) error {
	if !t.Interactive {
		fmt.Fprintf(t.Out, "%s%s%s\n", Cyan, label, Reset)
		return fn(ctx)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = cursorStyle

	p := tea.NewProgram(spinnerModel{spinner: sp, label: label, cancel: cancel},
		tea.WithInput(t.In),
		tea.WithOutput(t.Out),
	)
	go func() {
		p.Send(doneMsg{err: fn(ctx)})
	}()
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("spinner: %w", err)
	}
	return final.(spinnerModel).err
}
