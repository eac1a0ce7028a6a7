package storage

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/huynguyen789/AIToDoList/internal/model"
)

// Snapshot is the full persisted state: every save writes one, every load
// returns one.
type Snapshot struct {
	Lists        []model.TodoList `json:"todoLists"`
	ActiveListID string           `json:"activeTodoListId"`
	Filter       model.Filter     `json:"filter"`

	legacy bool
}

func (s Snapshot) Empty() bool {
	return len(s.Lists) == 0
}

type payloadShape int

const (
	shapeNone payloadShape = iota
	shapeLists
	shapeLegacyTasks
)

type decodedPayload struct {
	shape payloadShape
	lists []model.TodoList
	tasks []model.Task
}

// decodeListsPayload distinguishes the current list-of-lists shape from the
// legacy flat task array by a schema discriminant: list elements carry a
// "tasks" wrapper field, legacy task elements do not. Unparsable input
// decodes to shapeNone, which callers treat as absent data.
func decodeListsPayload(raw []byte) decodedPayload {
	var probe []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return decodedPayload{shape: shapeNone}
	}
	if len(probe) == 0 {
		return decodedPayload{shape: shapeLists, lists: []model.TodoList{}}
	}
	if _, ok := probe[0]["tasks"]; ok {
		var lists []model.TodoList
		if err := json.Unmarshal(raw, &lists); err != nil {
			return decodedPayload{shape: shapeNone}
		}
		return decodedPayload{shape: shapeLists, lists: lists}
	}
	var tasks []model.Task
	if err := json.Unmarshal(raw, &tasks); err != nil {
		return decodedPayload{shape: shapeNone}
	}
	return decodedPayload{shape: shapeLegacyTasks, tasks: tasks}
}

// upgradeLegacyTasks wraps a flat task array into a single default list.
func upgradeLegacyTasks(tasks []model.Task) []model.TodoList {
	now := time.Now().UTC()
	return []model.TodoList{{
		ID:        uuid.NewString(),
		Name:      model.DefaultListName,
		Tasks:     normalizeTasks(tasks),
		CreatedAt: now,
		UpdatedAt: now,
	}}
}

func normalizeLists(lists []model.TodoList) []model.TodoList {
	out := make([]model.TodoList, 0, len(lists))
	for _, l := range lists {
		if l.ID == "" {
			l.ID = uuid.NewString()
		}
		if l.Name == "" {
			l.Name = model.DefaultListName
		}
		l.Tasks = normalizeTasks(l.Tasks)
		out = append(out, l)
	}
	return out
}

func normalizeTasks(tasks []model.Task) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ID == "" || t.Title == "" {
			continue
		}
		if !t.Priority.IsValid() {
			t.Priority = model.DefaultPriority
		}
		out = append(out, t)
	}
	return out
}

func normalizeSnapshot(snap Snapshot) Snapshot {
	snap.Lists = normalizeLists(snap.Lists)
	if !snap.Filter.IsValid() {
		snap.Filter = model.FilterAll
	}
	if len(snap.Lists) == 0 {
		snap.ActiveListID = ""
		return snap
	}
	for _, l := range snap.Lists {
		if l.ID == snap.ActiveListID {
			return snap
		}
	}
	snap.ActiveListID = snap.Lists[0].ID
	return snap
}
