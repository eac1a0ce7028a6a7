package update

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/huynguyen789/AIToDoList/internal/config"
	"github.com/huynguyen789/AIToDoList/internal/model"
	"github.com/huynguyen789/AIToDoList/internal/state"
	"github.com/huynguyen789/AIToDoList/internal/storage"
	"github.com/huynguyen789/AIToDoList/internal/suggest"
	"github.com/huynguyen789/AIToDoList/internal/views"
)

type Mode string

const (
	ModeMatrix Mode = "matrix"
	ModeLists  Mode = "lists"
	ModeForm   Mode = "form"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	AddTask    string
	EditTask   string
	DeleteTask string
	ToggleDone string
	MoveUp     string
	MoveDown   string
	Lists      string
	Filter     string
	Palette    string
	DarkMode   string
	Help       string
	Quit       string
}

type MatrixState struct {
	Bucket model.Priority
	Row    int
}

const (
	formFieldTitle = iota
	formFieldDescription
	formFieldDate
	formFieldTime
	formFieldPriority
)

type FormState struct {
	EditingID string
	Focus     int
	Priority  model.Priority
	Err       string
}

type ListsState struct {
	Cursor    int
	Editing   bool
	EditingID string
}

type PaletteState struct {
	Active bool
	Input  string
}

type Model struct {
	Ctrl    *state.Controller
	Store   *storage.Store
	Local   *storage.LocalBackend
	Suggest suggest.Suggester
	UserID  string

	Mode           Mode
	Matrix         MatrixState
	Form           FormState
	Lists          ListsState
	Palette        PaletteState
	Status         StatusBar
	Keys           GlobalKeyMap
	DarkMode       bool
	HelpVisible    bool
	Quitting       bool
	SuggestPending bool

	titleInput    textinput.Model
	descInput     textinput.Model
	dateInput     textinput.Model
	timeInput     textinput.Model
	listNameInput textinput.Model
	commandInput  textinput.Model
	helpModel     help.Model
	spin          spinner.Model
}

type SnapshotLoadedMsg struct {
	Snapshot storage.Snapshot
}

type SuggestResultMsg struct {
	Priority model.Priority
	Err      error
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

func NewModel(ctrl *state.Controller) Model {
	m := Model{
		Ctrl:    ctrl,
		Suggest: suggest.Disabled{},
		Mode:    ModeMatrix,
		Matrix: MatrixState{
			Bucket: model.PriorityUrgentImportant,
		},
		Form: FormState{
			Priority: model.DefaultPriority,
		},
		Keys: GlobalKeyMap{
			AddTask:    "a",
			EditTask:   "e",
			DeleteTask: "d",
			ToggleDone: " ",
			MoveUp:     "K",
			MoveDown:   "J",
			Lists:      "L",
			Filter:     "f",
			Palette:    "/",
			DarkMode:   "T",
			Help:       "?",
			Quit:       "q",
		},
		DarkMode: true,
	}
	m.initBubbleComponents()
	views.UseDarkTheme(m.DarkMode)
	return m
}

func NewModelWithRuntime(ctrl *state.Controller, store *storage.Store, local *storage.LocalBackend, sugg suggest.Suggester, cfg config.Config) Model {
	m := NewModel(ctrl)
	m.Store = store
	m.Local = local
	m.UserID = cfg.UserID
	if sugg != nil {
		m.Suggest = sugg
	}
	m.DarkMode = cfg.DarkMode
	views.UseDarkTheme(m.DarkMode)
	return m
}

func (m *Model) initBubbleComponents() {
	m.titleInput = textinput.New()
	m.titleInput.Prompt = ""
	m.titleInput.Placeholder = "what needs doing"
	m.titleInput.CharLimit = 256
	m.titleInput.Width = 38

	m.descInput = textinput.New()
	m.descInput.Prompt = ""
	m.descInput.Placeholder = "details (markdown)"
	m.descInput.CharLimit = 1024
	m.descInput.Width = 38

	m.dateInput = textinput.New()
	m.dateInput.Prompt = ""
	m.dateInput.Placeholder = "YYYY-MM-DD"
	m.dateInput.CharLimit = 10
	m.dateInput.Width = 12

	m.timeInput = textinput.New()
	m.timeInput.Prompt = ""
	m.timeInput.Placeholder = "HH:MM"
	m.timeInput.CharLimit = 5
	m.timeInput.Width = 7

	m.listNameInput = textinput.New()
	m.listNameInput.Prompt = ""
	m.listNameInput.Placeholder = "list name"
	m.listNameInput.CharLimit = 128
	m.listNameInput.Width = 32

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 40

	m.helpModel = help.New()

	m.spin = spinner.New()
	m.spin.Spinner = spinner.Dot
}
