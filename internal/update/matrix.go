package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/huynguyen789/AIToDoList/internal/model"
	"github.com/huynguyen789/AIToDoList/internal/state"
	"github.com/huynguyen789/AIToDoList/internal/views"
)

func (m Model) handleMatrixKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "down", "j":
		m.moveCursorRow(1)
	case "up", "k":
		m.moveCursorRow(-1)
	case "right", "l":
		m.moveCursorBucket(1)
	case "left", "h":
		m.moveCursorBucket(-1)
	case m.Keys.MoveDown:
		if task, ok := m.selectedTask(); ok {
			m.Ctrl.Apply(state.MoveTask{ID: task.ID, Direction: model.DirectionDown})
			m.Matrix.Row = m.rowOf(task.ID)
		}
	case m.Keys.MoveUp:
		if task, ok := m.selectedTask(); ok {
			m.Ctrl.Apply(state.MoveTask{ID: task.ID, Direction: model.DirectionUp})
			m.Matrix.Row = m.rowOf(task.ID)
		}
	case m.Keys.ToggleDone:
		if task, ok := m.selectedTask(); ok {
			m.Ctrl.Apply(state.ToggleComplete{ID: task.ID})
			m.clampMatrix()
		}
	case m.Keys.EditTask:
		if task, ok := m.selectedTask(); ok {
			m.openEditForm(task)
		}
	case m.Keys.DeleteTask:
		if task, ok := m.selectedTask(); ok {
			m.Ctrl.Apply(state.DeleteTask{ID: task.ID})
			m.clampMatrix()
			m.Status = StatusBar{Text: "task deleted: " + task.Title, IsError: false}
		}
	case "1", "2", "3", "4":
		bucket := model.Priority(msg.String()[0] - '0')
		if task, ok := m.selectedTask(); ok && bucket != task.Priority {
			m.Ctrl.Apply(state.ChangePriority{ID: task.ID, Bucket: bucket})
			m.Matrix.Bucket = bucket
			m.Matrix.Row = m.rowOf(task.ID)
			m.Status = StatusBar{Text: "moved to " + bucket.Label(), IsError: false}
		}
	}
	return m, nil
}

func (m Model) visibleGroups() map[model.Priority][]model.Task {
	return model.GroupByPriority(m.Ctrl.Tasks())
}

func (m Model) selectedTask() (model.Task, bool) {
	bucket := m.visibleGroups()[m.Matrix.Bucket]
	if len(bucket) == 0 {
		return model.Task{}, false
	}
	row := m.Matrix.Row
	if row >= len(bucket) {
		row = len(bucket) - 1
	}
	if row < 0 {
		row = 0
	}
	return bucket[row], true
}

// rowOf locates a task's display row in the cursor's bucket after an
// action may have reordered or re-bucketed it.
func (m Model) rowOf(id string) int {
	for i, task := range m.visibleGroups()[m.Matrix.Bucket] {
		if task.ID == id {
			return i
		}
	}
	return 0
}

func (m *Model) moveCursorRow(delta int) {
	bucket := m.visibleGroups()[m.Matrix.Bucket]
	next := m.Matrix.Row + delta
	if next < 0 || next >= len(bucket) {
		return
	}
	m.Matrix.Row = next
}

func (m *Model) moveCursorBucket(delta int) {
	order := model.Priorities()
	idx := 0
	for i, p := range order {
		if p == m.Matrix.Bucket {
			idx = i
			break
		}
	}
	next := idx + delta
	if next < 0 || next >= len(order) {
		return
	}
	m.Matrix.Bucket = order[next]
	m.clampMatrix()
}

func (m *Model) clampMatrix() {
	if !m.Matrix.Bucket.IsValid() {
		m.Matrix.Bucket = model.PriorityUrgentImportant
	}
	bucket := m.visibleGroups()[m.Matrix.Bucket]
	if len(bucket) == 0 {
		m.Matrix.Row = 0
		return
	}
	if m.Matrix.Row >= len(bucket) {
		m.Matrix.Row = len(bucket) - 1
	}
	if m.Matrix.Row < 0 {
		m.Matrix.Row = 0
	}
}

func (m Model) renderMatrixPanel() string {
	groups := m.visibleGroups()
	selected, hasSelection := m.selectedTask()

	buckets := make([]views.MatrixBucketData, 0, len(model.Priorities()))
	for _, p := range model.Priorities() {
		data := views.MatrixBucketData{
			Label:   p.Label(),
			Points:  p.Points(),
			Focused: p == m.Matrix.Bucket,
		}
		for _, task := range groups[p] {
			data.Tasks = append(data.Tasks, views.MatrixTaskData{
				Title:     task.Title,
				Deadline:  task.Deadline(),
				Completed: task.Completed,
				Selected:  hasSelection && task.ID == selected.ID,
			})
		}
		buckets = append(buckets, data)
	}
	return views.RenderMatrixPanel(buckets)
}

func (m Model) renderTaskDetail() string {
	task, ok := m.selectedTask()
	if !ok {
		return views.RenderTaskDetail(views.TaskDetailData{})
	}
	return views.RenderTaskDetail(views.TaskDetailData{
		ID:              task.ID,
		Title:           task.Title,
		Bucket:          task.Priority.Label(),
		Points:          task.Priority.Points(),
		Deadline:        task.Deadline(),
		Completed:       task.Completed,
		DescriptionView: views.RenderMarkdown(task.Description),
		Created:         task.CreatedAt.Format("2006-01-02 15:04"),
		Updated:         task.UpdatedAt.Format("2006-01-02 15:04"),
	})
}
