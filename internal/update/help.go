package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"github.com/huynguyen789/AIToDoList/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.modeBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		Mode:     string(m.Mode),
		Bindings: plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.AddTask, Action: "add task"},
		{Key: m.Keys.Filter, Action: "cycle filter"},
		{Key: m.Keys.Lists, Action: "manage lists"},
		{Key: m.Keys.Palette, Action: "open command palette"},
		{Key: m.Keys.DarkMode, Action: "toggle dark mode"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Quit, Action: "quit app"},
	}
}

func (m Model) modeBindings() []KeyBinding {
	switch m.Mode {
	case ModeMatrix:
		return []KeyBinding{
			{Key: "h/j/k/l", Action: "move cursor across buckets and rows"},
			{Key: "space", Action: "toggle task done"},
			{Key: "e", Action: "edit task"},
			{Key: "d", Action: "delete task"},
			{Key: "J/K", Action: "move task down/up within bucket"},
			{Key: "1-4", Action: "move task to bucket"},
		}
	case ModeLists:
		return []KeyBinding{
			{Key: "j/k", Action: "move cursor"},
			{Key: "enter", Action: "switch to list"},
			{Key: "n", Action: "new list"},
			{Key: "r", Action: "rename list"},
			{Key: "X", Action: "delete list"},
		}
	case ModeForm:
		return []KeyBinding{
			{Key: "tab", Action: "next field"},
			{Key: "ctrl+s", Action: "suggest bucket"},
			{Key: "enter", Action: "save task"},
			{Key: "esc", Action: "cancel"},
		}
	default:
		return []KeyBinding{{Key: "-", Action: "no contextual bindings"}}
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.globalBindings())+len(m.modeBindings()))
	for _, kb := range m.globalBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	for _, kb := range m.modeBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
