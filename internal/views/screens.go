package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type MatrixTaskData struct {
	Title     string
	Deadline  string
	Completed bool
	Selected  bool
}

type MatrixBucketData struct {
	Label   string
	Points  int
	Focused bool
	Tasks   []MatrixTaskData
}

type TaskDetailData struct {
	ID              string
	Title           string
	Bucket          string
	Points          int
	Deadline        string
	Completed       bool
	DescriptionView string
	Created         string
	Updated         string
}

type FormFieldData struct {
	Label   string
	View    string
	Focused bool
}

type TaskFormData struct {
	Heading         string
	Fields          []FormFieldData
	PriorityLabel   string
	PriorityFocused bool
	SuggestView     string
	ErrorText       string
}

type ListRowData struct {
	Name      string
	TaskCount int
	Active    bool
	Selected  bool
}

type ListsPanelData struct {
	Rows       []ListRowData
	Editing    bool
	Renaming   bool
	EditorView string
}

type HelpPanelData struct {
	Mode     string
	Bindings []string
	HelpView string
}

// RenderMatrixPanel lays the four priority buckets out as a 2x2 grid.
func RenderMatrixPanel(buckets []MatrixBucketData) string {
	cells := make([]string, 0, 4)
	for _, b := range buckets {
		cells = append(cells, renderBucketCell(b))
	}
	for len(cells) < 4 {
		cells = append(cells, "")
	}
	top := lipgloss.JoinHorizontal(lipgloss.Top, cells[0], cells[1])
	bottom := lipgloss.JoinHorizontal(lipgloss.Top, cells[2], cells[3])
	return lipgloss.JoinVertical(lipgloss.Left, top, bottom)
}

func renderBucketCell(b MatrixBucketData) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s (%dpt)\n", b.Label, b.Points))
	if len(b.Tasks) == 0 {
		sb.WriteString("  (empty)")
	}
	for i, task := range b.Tasks {
		cursor := " "
		if task.Selected {
			cursor = ">"
		}
		box := "[ ]"
		if task.Completed {
			box = "[x]"
		}
		line := fmt.Sprintf("%s %s %s", cursor, box, task.Title)
		if task.Deadline != "" {
			line += " due:" + task.Deadline
		}
		if task.Completed {
			line = styles.done.Render(line)
		}
		sb.WriteString(line)
		if i < len(b.Tasks)-1 {
			sb.WriteString("\n")
		}
	}
	style := styles.bucket
	if b.Focused {
		style = styles.bucketFocused
	}
	return style.Width(36).Render(sb.String())
}

func RenderTaskDetail(data TaskDetailData) string {
	if data.ID == "" {
		return "task:\n(no selection)"
	}
	state := "open"
	if data.Completed {
		state = "done"
	}
	var sb strings.Builder
	sb.WriteString("task:\n")
	sb.WriteString(fmt.Sprintf("title: %s\n", data.Title))
	sb.WriteString(fmt.Sprintf("bucket: %s (%dpt)\n", data.Bucket, data.Points))
	sb.WriteString(fmt.Sprintf("state: %s\n", state))
	if data.Deadline != "" {
		sb.WriteString(fmt.Sprintf("deadline: %s\n", data.Deadline))
	}
	sb.WriteString(fmt.Sprintf("created: %s | updated: %s\n", data.Created, data.Updated))
	if data.DescriptionView != "" {
		sb.WriteString("description:\n")
		sb.WriteString(data.DescriptionView)
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func RenderTaskForm(data TaskFormData) string {
	var sb strings.Builder
	sb.WriteString(data.Heading + ":\n")
	sb.WriteString("keys: [tab]next field [enter]save [ctrl+s]suggest bucket [esc]cancel\n")
	for _, field := range data.Fields {
		marker := " "
		if field.Focused {
			marker = ">"
		}
		sb.WriteString(fmt.Sprintf("%s %s: %s\n", marker, field.Label, field.View))
	}
	marker := " "
	if data.PriorityFocused {
		marker = ">"
	}
	sb.WriteString(fmt.Sprintf("%s bucket: %s\n", marker, data.PriorityLabel))
	if data.SuggestView != "" {
		sb.WriteString("suggesting: " + data.SuggestView + "\n")
	}
	if data.ErrorText != "" {
		sb.WriteString(styles.errText.Render("error: "+data.ErrorText) + "\n")
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func RenderListsPanel(data ListsPanelData) string {
	var sb strings.Builder
	sb.WriteString("lists:\n")
	sb.WriteString("actions: [enter]switch [n]new [r]rename [X]delete [esc]back\n")
	for _, row := range data.Rows {
		cursor := " "
		if row.Selected {
			cursor = ">"
		}
		active := " "
		if row.Active {
			active = "*"
		}
		sb.WriteString(fmt.Sprintf("%s %s %s (%d)\n", cursor, active, row.Name, row.TaskCount))
	}
	if data.Editing {
		label := "new list"
		if data.Renaming {
			label = "rename list"
		}
		sb.WriteString(fmt.Sprintf("%s: %s\n", label, data.EditorView))
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help (%s):\n%s\n%s",
		data.Mode,
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}
