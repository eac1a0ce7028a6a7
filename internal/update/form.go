package update

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/huynguyen789/AIToDoList/internal/model"
	"github.com/huynguyen789/AIToDoList/internal/state"
	"github.com/huynguyen789/AIToDoList/internal/views"
)

func (m *Model) openAddForm() {
	m.Mode = ModeForm
	m.Form = FormState{Priority: m.Matrix.Bucket}
	m.titleInput.SetValue("")
	m.descInput.SetValue("")
	m.dateInput.SetValue("")
	m.timeInput.SetValue("")
	m.focusFormField(formFieldTitle)
}

func (m *Model) openEditForm(task model.Task) {
	m.Mode = ModeForm
	m.Form = FormState{EditingID: task.ID, Priority: task.Priority}
	m.titleInput.SetValue(task.Title)
	m.titleInput.CursorEnd()
	m.descInput.SetValue(task.Description)
	m.descInput.CursorEnd()
	m.dateInput.SetValue(task.DeadlineDate)
	m.dateInput.CursorEnd()
	m.timeInput.SetValue(task.DeadlineTime)
	m.timeInput.CursorEnd()
	m.focusFormField(formFieldTitle)
}

func (m *Model) closeForm() {
	m.Mode = ModeMatrix
	m.Form = FormState{Priority: model.DefaultPriority}
	m.titleInput.Blur()
	m.descInput.Blur()
	m.dateInput.Blur()
	m.timeInput.Blur()
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.Quitting = true
		return m, tea.Quit
	case "esc":
		m.closeForm()
		m.Status = StatusBar{Text: "edit cancelled", IsError: false}
		return m, nil
	case "tab", "down":
		m.focusFormField(m.Form.Focus + 1)
		return m, nil
	case "shift+tab", "up":
		m.focusFormField(m.Form.Focus - 1)
		return m, nil
	case "enter":
		return m.submitForm()
	case "ctrl+s":
		if m.SuggestPending {
			return m, nil
		}
		title := strings.TrimSpace(m.titleInput.Value())
		if title == "" {
			m.Form.Err = "enter a title before asking for a suggestion"
			return m, nil
		}
		m.Form.Err = ""
		m.SuggestPending = true
		return m, tea.Batch(m.spin.Tick, suggestPriorityCmd(m.Suggest, title, strings.TrimSpace(m.descInput.Value())))
	}

	if m.Form.Focus == formFieldPriority {
		switch msg.String() {
		case "left", "h":
			if m.Form.Priority > model.PriorityUrgentImportant {
				m.Form.Priority--
			}
		case "right", "l":
			if m.Form.Priority < model.PriorityNeither {
				m.Form.Priority++
			}
		case "1", "2", "3", "4":
			m.Form.Priority = model.Priority(msg.String()[0] - '0')
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch m.Form.Focus {
	case formFieldTitle:
		m.titleInput, cmd = m.titleInput.Update(msg)
	case formFieldDescription:
		m.descInput, cmd = m.descInput.Update(msg)
	case formFieldDate:
		m.dateInput, cmd = m.dateInput.Update(msg)
	case formFieldTime:
		m.timeInput, cmd = m.timeInput.Update(msg)
	}
	return m, cmd
}

func (m *Model) focusFormField(target int) {
	if target < formFieldTitle {
		target = formFieldPriority
	}
	if target > formFieldPriority {
		target = formFieldTitle
	}
	m.Form.Focus = target

	m.titleInput.Blur()
	m.descInput.Blur()
	m.dateInput.Blur()
	m.timeInput.Blur()
	switch target {
	case formFieldTitle:
		m.titleInput.Focus()
	case formFieldDescription:
		m.descInput.Focus()
	case formFieldDate:
		m.dateInput.Focus()
	case formFieldTime:
		m.timeInput.Focus()
	}
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	title := strings.TrimSpace(m.titleInput.Value())
	if title == "" {
		m.Form.Err = "title is required"
		return m, nil
	}
	date := strings.TrimSpace(m.dateInput.Value())
	if date != "" {
		if _, err := time.Parse(model.DeadlineDateLayout, date); err != nil {
			m.Form.Err = "deadline date must look like 2026-03-02"
			return m, nil
		}
	}
	deadlineTime := strings.TrimSpace(m.timeInput.Value())
	if deadlineTime != "" {
		if _, err := time.Parse(model.DeadlineTimeLayout, deadlineTime); err != nil {
			m.Form.Err = "deadline time must look like 14:30"
			return m, nil
		}
	}
	description := strings.TrimSpace(m.descInput.Value())
	priority := m.Form.Priority
	editingID := m.Form.EditingID

	if editingID == "" {
		m.Ctrl.Apply(state.AddTask{
			Title:        title,
			Description:  description,
			DeadlineDate: date,
			DeadlineTime: deadlineTime,
			Priority:     priority,
		})
		m.Status = StatusBar{Text: "task added: " + title, IsError: false}
	} else {
		existing, ok := m.taskInActiveList(editingID)
		if !ok {
			m.closeForm()
			m.Status = StatusBar{Text: "task no longer exists", IsError: true}
			return m, nil
		}
		updated := existing
		updated.Title = title
		updated.Description = description
		updated.DeadlineDate = date
		updated.DeadlineTime = deadlineTime
		updated.Priority = priority
		m.Ctrl.Apply(state.UpdateTask{Task: updated})
		m.Status = StatusBar{Text: "task updated: " + title, IsError: false}
	}

	m.closeForm()
	m.Matrix.Bucket = priority
	if editingID != "" {
		m.Matrix.Row = m.rowOf(editingID)
	} else if bucket := m.visibleGroups()[priority]; len(bucket) > 0 {
		m.Matrix.Row = len(bucket) - 1
	} else {
		m.Matrix.Row = 0
	}
	m.clampMatrix()
	return m, nil
}

func (m Model) taskInActiveList(id string) (model.Task, bool) {
	active, ok := m.Ctrl.ActiveTodoList()
	if !ok {
		return model.Task{}, false
	}
	for _, task := range active.Tasks {
		if task.ID == id {
			return task, true
		}
	}
	return model.Task{}, false
}

func (m Model) renderTaskForm() string {
	heading := "add task"
	if m.Form.EditingID != "" {
		heading = "edit task"
	}
	suggestView := ""
	if m.SuggestPending {
		suggestView = m.spin.View()
	}
	return views.RenderTaskForm(views.TaskFormData{
		Heading: heading,
		Fields: []views.FormFieldData{
			{Label: "title", View: m.titleInput.View(), Focused: m.Form.Focus == formFieldTitle},
			{Label: "description", View: m.descInput.View(), Focused: m.Form.Focus == formFieldDescription},
			{Label: "deadline date", View: m.dateInput.View(), Focused: m.Form.Focus == formFieldDate},
			{Label: "deadline time", View: m.timeInput.View(), Focused: m.Form.Focus == formFieldTime},
		},
		PriorityLabel:   fmt.Sprintf("%d %s (%dpt)", int(m.Form.Priority), m.Form.Priority.Label(), m.Form.Priority.Points()),
		PriorityFocused: m.Form.Focus == formFieldPriority,
		SuggestView:     suggestView,
		ErrorText:       m.Form.Err,
	})
}
