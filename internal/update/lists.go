package update

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/huynguyen789/AIToDoList/internal/state"
	"github.com/huynguyen789/AIToDoList/internal/views"
)

func (m *Model) enterListsMode() {
	m.Mode = ModeLists
	m.Lists = ListsState{}
	snap := m.Ctrl.Snapshot()
	for i, list := range snap.Lists {
		if list.ID == snap.ActiveListID {
			m.Lists.Cursor = i
			break
		}
	}
}

func (m Model) handleListsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	lists := m.Ctrl.TodoLists()
	switch msg.String() {
	case "esc":
		m.Mode = ModeMatrix
		return m, nil
	case "down", "j":
		if m.Lists.Cursor < len(lists)-1 {
			m.Lists.Cursor++
		}
		return m, nil
	case "up", "k":
		if m.Lists.Cursor > 0 {
			m.Lists.Cursor--
		}
		return m, nil
	case "enter":
		if m.Lists.Cursor < len(lists) {
			list := lists[m.Lists.Cursor]
			m.Ctrl.Apply(state.SetActiveTodoList{ID: list.ID})
			m.Mode = ModeMatrix
			m.Matrix = MatrixState{Bucket: m.Matrix.Bucket}
			m.clampMatrix()
			m.Status = StatusBar{Text: "switched to list: " + list.Name, IsError: false}
		}
		return m, nil
	case "n":
		m.Lists.Editing = true
		m.Lists.EditingID = ""
		m.listNameInput.SetValue("")
		m.listNameInput.Focus()
		return m, nil
	case "r":
		if m.Lists.Cursor < len(lists) {
			list := lists[m.Lists.Cursor]
			m.Lists.Editing = true
			m.Lists.EditingID = list.ID
			m.listNameInput.SetValue(list.Name)
			m.listNameInput.CursorEnd()
			m.listNameInput.Focus()
		}
		return m, nil
	case "X":
		if len(lists) <= 1 {
			m.Status = StatusBar{Text: "the last list cannot be deleted", IsError: true}
			return m, nil
		}
		if m.Lists.Cursor < len(lists) {
			list := lists[m.Lists.Cursor]
			m.Ctrl.Apply(state.DeleteTodoList{ID: list.ID})
			if remaining := len(m.Ctrl.TodoLists()); m.Lists.Cursor >= remaining {
				m.Lists.Cursor = remaining - 1
			}
			m.Status = StatusBar{Text: "list deleted: " + list.Name, IsError: false}
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleListEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.Quitting = true
		return m, tea.Quit
	case "esc":
		m.Lists.Editing = false
		m.listNameInput.Blur()
		return m, nil
	case "enter":
		name := strings.TrimSpace(m.listNameInput.Value())
		if name == "" {
			m.Status = StatusBar{Text: "list name is required", IsError: true}
			return m, nil
		}
		if m.Lists.EditingID == "" {
			m.Ctrl.Apply(state.AddTodoList{Name: name})
			m.Lists.Cursor = len(m.Ctrl.TodoLists()) - 1
			m.Status = StatusBar{Text: "list created: " + name, IsError: false}
		} else {
			m.Ctrl.Apply(state.UpdateTodoList{ID: m.Lists.EditingID, Name: name})
			m.Status = StatusBar{Text: "list renamed: " + name, IsError: false}
		}
		m.Lists.Editing = false
		m.listNameInput.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.listNameInput, cmd = m.listNameInput.Update(msg)
	return m, cmd
}

func (m Model) renderListsPanel() string {
	snap := m.Ctrl.Snapshot()
	rows := make([]views.ListRowData, 0, len(snap.Lists))
	for i, list := range snap.Lists {
		rows = append(rows, views.ListRowData{
			Name:      list.Name,
			TaskCount: len(list.Tasks),
			Active:    list.ID == snap.ActiveListID,
			Selected:  i == m.Lists.Cursor,
		})
	}
	return views.RenderListsPanel(views.ListsPanelData{
		Rows:       rows,
		Editing:    m.Lists.Editing,
		Renaming:   m.Lists.EditingID != "",
		EditorView: m.listNameInput.View(),
	})
}
