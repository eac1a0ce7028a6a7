package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrEmptyListName = errors.New("model: todo list name is required")

const DefaultListName = "My Tasks"

type TodoList struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Tasks     []Task    `json:"tasks"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewTodoList(name string) (TodoList, error) {
	if strings.TrimSpace(name) == "" {
		return TodoList{}, ErrEmptyListName
	}
	now := time.Now().UTC()
	return TodoList{
		ID:        uuid.NewString(),
		Name:      name,
		Tasks:     []Task{},
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (l TodoList) Validate() error {
	if strings.TrimSpace(l.ID) == "" {
		return errors.New("model: todo list id is required")
	}
	if strings.TrimSpace(l.Name) == "" {
		return ErrEmptyListName
	}
	for _, t := range l.Tasks {
		if err := t.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (l TodoList) CloneTasks() []Task {
	out := make([]Task, len(l.Tasks))
	copy(out, l.Tasks)
	return out
}
