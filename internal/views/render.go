package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type AppData struct {
	Header     string
	LeftPane   string
	RightPane  string
	StatusLine string
	IsError    bool
	Footer     string
}

type styleSet struct {
	header        lipgloss.Style
	status        lipgloss.Style
	errText       lipgloss.Style
	panel         lipgloss.Style
	bucket        lipgloss.Style
	bucketFocused lipgloss.Style
	done          lipgloss.Style
	footer        lipgloss.Style
	glamourStyle  string
}

func darkStyles() styleSet {
	return styleSet{
		header:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		status:        lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		errText:       lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		panel:         lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		bucket:        lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1).BorderForeground(lipgloss.Color("8")),
		bucketFocused: lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1).BorderForeground(lipgloss.Color("12")),
		done:          lipgloss.NewStyle().Faint(true).Strikethrough(true),
		footer:        lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		glamourStyle:  "dark",
	}
}

func lightStyles() styleSet {
	return styleSet{
		header:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4")),
		status:        lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		errText:       lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		panel:         lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		bucket:        lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1).BorderForeground(lipgloss.Color("7")),
		bucketFocused: lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1).BorderForeground(lipgloss.Color("4")),
		done:          lipgloss.NewStyle().Faint(true).Strikethrough(true),
		footer:        lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		glamourStyle:  "light",
	}
}

var styles = darkStyles()

func UseDarkTheme(on bool) {
	if on {
		styles = darkStyles()
	} else {
		styles = lightStyles()
	}
}

func RenderApp(data AppData) string {
	left := styles.panel.Width(80).Render(data.LeftPane)
	right := styles.panel.Width(46).Render(data.RightPane)
	row := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	status := styles.status.Render(data.StatusLine)
	if data.IsError {
		status = styles.errText.Render(data.StatusLine)
	}

	lines := []string{
		styles.header.Render(data.Header),
		row,
		status,
	}
	if data.Footer != "" {
		lines = append(lines, styles.footer.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

func RenderLoading(spinnerView string) string {
	return styles.panel.Render(spinnerView + " loading tasks...")
}

func RenderMarkdown(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	out, err := glamour.Render(md, styles.glamourStyle)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
