package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidPriority  = errors.New("model: invalid task priority")
	ErrInvalidFilter    = errors.New("model: invalid filter")
	ErrInvalidDirection = errors.New("model: invalid move direction")
	ErrEmptyTitle       = errors.New("model: task title is required")
)

type Priority int

const (
	PriorityUrgentImportant    Priority = 1
	PriorityImportantNotUrgent Priority = 2
	PriorityUrgentNotImportant Priority = 3
	PriorityNeither            Priority = 4
)

const DefaultPriority = PriorityUrgentImportant

func (p Priority) IsValid() bool {
	switch p {
	case PriorityUrgentImportant, PriorityImportantNotUrgent, PriorityUrgentNotImportant, PriorityNeither:
		return true
	default:
		return false
	}
}

func (p Priority) Points() int {
	switch p {
	case PriorityUrgentImportant:
		return 10
	case PriorityImportantNotUrgent:
		return 7
	case PriorityUrgentNotImportant:
		return 5
	case PriorityNeither:
		return 2
	default:
		return 0
	}
}

func (p Priority) Label() string {
	switch p {
	case PriorityUrgentImportant:
		return "Urgent & Important"
	case PriorityImportantNotUrgent:
		return "Important, Not Urgent"
	case PriorityUrgentNotImportant:
		return "Urgent, Not Important"
	case PriorityNeither:
		return "Neither"
	default:
		return "Unknown"
	}
}

func Priorities() []Priority {
	return []Priority{
		PriorityUrgentImportant,
		PriorityImportantNotUrgent,
		PriorityUrgentNotImportant,
		PriorityNeither,
	}
}

type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

func (f Filter) IsValid() bool {
	switch f {
	case FilterAll, FilterActive, FilterCompleted:
		return true
	default:
		return false
	}
}

type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

func (d Direction) IsValid() bool {
	switch d {
	case DirectionUp, DirectionDown:
		return true
	default:
		return false
	}
}

type Task struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	DeadlineDate string    `json:"deadlineDate,omitempty"`
	DeadlineTime string    `json:"deadlineTime,omitempty"`
	Completed    bool      `json:"completed"`
	Priority     Priority  `json:"priority"`
	Order        int       `json:"order"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

const (
	DeadlineDateLayout = "2006-01-02"
	DeadlineTimeLayout = "15:04"
)

func NewTask(title string, priority Priority) (Task, error) {
	if strings.TrimSpace(title) == "" {
		return Task{}, ErrEmptyTitle
	}
	if !priority.IsValid() {
		priority = DefaultPriority
	}
	now := time.Now().UTC()
	return Task{
		ID:        uuid.NewString(),
		Title:     title,
		Completed: false,
		Priority:  priority,
		Order:     0,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTitle
	}
	if !t.Priority.IsValid() {
		return fmt.Errorf("%w: %d", ErrInvalidPriority, t.Priority)
	}
	if t.DeadlineDate != "" {
		if _, err := time.Parse(DeadlineDateLayout, t.DeadlineDate); err != nil {
			return fmt.Errorf("model: invalid deadline date %q", t.DeadlineDate)
		}
	}
	if t.DeadlineTime != "" {
		if _, err := time.Parse(DeadlineTimeLayout, t.DeadlineTime); err != nil {
			return fmt.Errorf("model: invalid deadline time %q", t.DeadlineTime)
		}
	}
	if t.CreatedAt.IsZero() {
		return errors.New("model: task created_at is required")
	}
	return nil
}

func (t Task) Deadline() string {
	switch {
	case t.DeadlineDate != "" && t.DeadlineTime != "":
		return t.DeadlineDate + " " + t.DeadlineTime
	case t.DeadlineDate != "":
		return t.DeadlineDate
	case t.DeadlineTime != "":
		return t.DeadlineTime
	default:
		return ""
	}
}
