package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/huynguyen789/AIToDoList/internal/commands"
	"github.com/huynguyen789/AIToDoList/internal/model"
	"github.com/huynguyen789/AIToDoList/internal/state"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.Quitting = true
		return m, tea.Quit
	case "esc":
		m.closePalette()
		m.Status = StatusBar{Text: "command palette closed", IsError: false}
		return m, nil
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m, nil
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		m.Palette.Input = m.commandInput.Value()
		return m, cmd
	}
}

func (m *Model) closePalette() {
	m.Palette = PaletteState{}
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func (m Model) executePaletteCommand() (tea.Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.closePalette()
		return m, nil
	}

	var followUp tea.Cmd
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			m.Ctrl.Apply(state.AddTask{Title: a.Title, Priority: model.DefaultPriority})
			m.clampMatrix()
			return commands.Result{Message: fmt.Sprintf("added task: %s", a.Title)}, nil
		},
		Filter: func(f commands.FilterArgs) (commands.Result, error) {
			m.Ctrl.Apply(state.SetFilter{Filter: model.Filter(f.Value)})
			m.clampMatrix()
			return commands.Result{Message: fmt.Sprintf("filter: %s", f.Value)}, nil
		},
		List: func(l commands.ListArgs) (commands.Result, error) {
			for _, list := range m.Ctrl.TodoLists() {
				if strings.EqualFold(list.Name, l.Name) {
					m.Ctrl.Apply(state.SetActiveTodoList{ID: list.ID})
					m.clampMatrix()
					return commands.Result{Message: fmt.Sprintf("switched to list: %s", list.Name)}, nil
				}
			}
			m.Ctrl.Apply(state.AddTodoList{Name: l.Name})
			lists := m.Ctrl.TodoLists()
			created := lists[len(lists)-1]
			m.Ctrl.Apply(state.SetActiveTodoList{ID: created.ID})
			m.clampMatrix()
			return commands.Result{Message: fmt.Sprintf("created list: %s", created.Name)}, nil
		},
		Score: func() (commands.Result, error) {
			return commands.Result{Message: fmt.Sprintf("total score: %d", m.Ctrl.TotalScore())}, nil
		},
		Sync: func() (commands.Result, error) {
			if m.Store == nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no storage configured"}
			}
			followUp = syncNowCmd(m.Store, m.Ctrl.Snapshot(), m.UserID)
			return commands.Result{Message: "sync started"}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
	} else {
		m.Status = StatusBar{Text: res.Message, IsError: false}
	}

	m.closePalette()
	return m, followUp
}
