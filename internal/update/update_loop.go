package update

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/huynguyen789/AIToDoList/internal/state"
	"github.com/huynguyen789/AIToDoList/internal/storage"
	"github.com/huynguyen789/AIToDoList/internal/suggest"
	"github.com/huynguyen789/AIToDoList/internal/views"
)

const loadTimeout = 15 * time.Second

func (m Model) Init() tea.Cmd {
	if m.Store == nil {
		return nil
	}
	return tea.Batch(loadSnapshotCmd(m.Store, m.UserID), m.spin.Tick)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(typed)
	case spinner.TickMsg:
		if m.Ctrl.Loading() || m.SuggestPending {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(typed)
			return m, cmd
		}
	case SnapshotLoadedMsg:
		m.Ctrl.Hydrate(typed.Snapshot)
		m.clampMatrix()
		m.Status = StatusBar{Text: "tasks loaded", IsError: false}
		return m, nil
	case SuggestResultMsg:
		m.SuggestPending = false
		if typed.Err != nil {
			if errors.Is(typed.Err, suggest.ErrDisabled) {
				m.Status = StatusBar{Text: "suggestions need OPENAI_API_KEY", IsError: false}
			} else {
				m.Status = StatusBar{Text: "suggestion failed: " + typed.Err.Error(), IsError: true}
			}
			return m, nil
		}
		if m.Mode == ModeForm {
			m.Form.Priority = typed.Priority
			m.Status = StatusBar{Text: "suggested bucket: " + typed.Priority.Label(), IsError: false}
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()

	if m.Ctrl.Loading() {
		if keyStr == "ctrl+c" || keyStr == m.Keys.Quit {
			m.Quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	if m.Palette.Active {
		return m.handlePaletteKey(msg)
	}
	if m.Mode == ModeForm {
		return m.handleFormKey(msg)
	}
	if m.Mode == ModeLists && m.Lists.Editing {
		return m.handleListEditKey(msg)
	}

	switch keyStr {
	case "ctrl+c", m.Keys.Quit:
		m.Quitting = true
		return m, tea.Quit
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		return m, nil
	case m.Keys.DarkMode:
		return m.toggleDarkMode(), nil
	case m.Keys.Palette:
		m.Palette.Active = true
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Focus()
		return m, nil
	case m.Keys.Filter:
		next := nextFilter(m.Ctrl.Filter())
		m.Ctrl.Apply(state.SetFilter{Filter: next})
		m.clampMatrix()
		m.Status = StatusBar{Text: "filter: " + string(next), IsError: false}
		return m, nil
	case m.Keys.Lists:
		if m.Mode == ModeLists {
			m.Mode = ModeMatrix
			return m, nil
		}
		m.enterListsMode()
		return m, nil
	case m.Keys.AddTask:
		m.openAddForm()
		return m, nil
	}

	if m.Mode == ModeLists {
		return m.handleListsKey(msg)
	}
	return m.handleMatrixKey(msg)
}

func (m Model) View() string {
	if m.Ctrl.Loading() {
		return views.RenderLoading(m.spin.View())
	}

	header := fmt.Sprintf("aitodo | list: %s | filter: %s | score: %d",
		m.activeListName(), m.Ctrl.Filter(), m.Ctrl.TotalScore())

	var left string
	if m.Mode == ModeLists {
		left = m.renderListsPanel()
	} else {
		left = m.renderMatrixPanel()
	}

	var right string
	if m.Mode == ModeForm {
		right = m.renderTaskForm()
	} else {
		right = m.renderTaskDetail()
	}
	if palette := views.RenderCommandPalette(m.Palette.Active, m.Palette.Input); palette != "" {
		right = palette + "\n" + right
	}
	if m.HelpVisible {
		right += "\n" + m.renderHelpView()
	}

	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = "status: error: " + m.Status.Text
		} else {
			status = "status: " + m.Status.Text
		}
	}

	footer := fmt.Sprintf("keys: %s add | %s edit | %s del | space done | 1-4 bucket | %s lists | %s filter | %s cmd | %s theme | %s help | %s quit",
		m.Keys.AddTask, m.Keys.EditTask, m.Keys.DeleteTask, m.Keys.Lists, m.Keys.Filter, m.Keys.Palette, m.Keys.DarkMode, m.Keys.Help, m.Keys.Quit)

	return views.RenderApp(views.AppData{
		Header:     header,
		LeftPane:   left,
		RightPane:  right,
		StatusLine: status,
		IsError:    m.Status.IsError,
		Footer:     footer,
	})
}

func (m Model) toggleDarkMode() Model {
	m.DarkMode = !m.DarkMode
	views.UseDarkTheme(m.DarkMode)
	if m.Local != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = m.Local.SetDarkMode(ctx, m.DarkMode)
	}
	if m.DarkMode {
		m.Status = StatusBar{Text: "dark mode on", IsError: false}
	} else {
		m.Status = StatusBar{Text: "dark mode off", IsError: false}
	}
	return m
}

func (m Model) activeListName() string {
	active, ok := m.Ctrl.ActiveTodoList()
	if !ok {
		return "(none)"
	}
	return active.Name
}

func loadSnapshotCmd(store *storage.Store, userID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		return SnapshotLoadedMsg{Snapshot: store.LoadAll(ctx, userID)}
	}
}

func suggestPriorityCmd(s suggest.Suggester, title, description string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		priority, err := s.SuggestPriority(ctx, title, description)
		return SuggestResultMsg{Priority: priority, Err: err}
	}
}

func syncNowCmd(store *storage.Store, snap storage.Snapshot, userID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		store.SaveAll(ctx, snap, userID)
		return SetStatusMsg{Text: "sync complete", IsError: false}
	}
}
