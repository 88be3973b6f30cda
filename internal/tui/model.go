// Package tui is the terminal front end of the game. Keys and mouse buttons
// are fed to the input manager, the controller is polled once per message,
// and the scene renders the result.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"svw.info/any4/internal/game"
	"svw.info/any4/internal/input"
)

type Model struct {
	ctx      context.Context
	inputs   *input.Manager
	ctl      *game.Controller
	scene    *game.Scene
	err      error
	quitting bool
}

func New(ctx context.Context, ctl *game.Controller, inputs *input.Manager) Model {
	if inputs == nil {
		inputs = input.DefaultBindings()
	}
	return Model{ctx: ctx, inputs: inputs, ctl: ctl, scene: newScene(ctl)}
}

// Err is the error that ended the session, if any.
func (m Model) Err() error { return m.err }

func (m Model) Init() tea.Cmd {
	return func() tea.Msg { return frameMsg{} }
}

// frameMsg drives a frame without any input, used to load the first board.
type frameMsg struct{}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quitting = true
			return m, tea.Quit
		}
		// terminals report no key-up, so every key is a one-frame tap
		raw := input.Key(msg.String())
		m.inputs.Press(raw)
		m = m.frame()
		m.inputs.Release(raw)
		m.inputs.Tick()
	case tea.MouseMsg:
		switch msg.Action {
		case tea.MouseActionRelease:
			// most terminals do not say which button went up
			m.inputs.Release(input.Button(input.MouseLeft))
			m.inputs.Release(input.Button(input.MouseRight))
		case tea.MouseActionPress:
			raw, ok := mouseRaw(msg)
			if !ok {
				return m, nil
			}
			m.inputs.Press(raw)
		default:
			return m, nil
		}
		m = m.frame()
		m.inputs.Tick()
	case frameMsg:
		m = m.frame()
	}
	if m.err != nil {
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) frame() Model {
	if err := m.ctl.Process(m.ctx, m.inputs); err != nil {
		m.err = err
	}
	m.scene.Update()
	return m
}

func mouseRaw(msg tea.MouseMsg) (input.Raw, bool) {
	switch msg.Button {
	case tea.MouseButtonLeft:
		return input.Button(input.MouseLeft), true
	case tea.MouseButtonRight:
		return input.Button(input.MouseRight), true
	}
	return input.Raw{}, false
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.scene.Draw()...) + "\n"
}

// Run plays until the player quits or boards run out.
func Run(ctx context.Context, ctl *game.Controller) error {
	final, err := tea.NewProgram(New(ctx, ctl, nil), tea.WithContext(ctx), tea.WithMouseCellMotion()).Run()
	if err != nil {
		return err
	}
	return final.(Model).Err()
}
