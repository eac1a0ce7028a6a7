package state

import "github.com/huynguyen789/AIToDoList/internal/model"

// Action is one discrete state transition request. The set is closed: every
// mutation of application state goes through exactly one of these.
type Action interface {
	isAction()
}

type AddTask struct {
	Title        string
	Description  string
	DeadlineDate string
	DeadlineTime string
	Priority     model.Priority
}

type UpdateTask struct {
	Task model.Task
}

type DeleteTask struct {
	ID string
}

type ToggleComplete struct {
	ID string
}

type ChangePriority struct {
	ID     string
	Bucket model.Priority
}

type MoveTask struct {
	ID        string
	Direction model.Direction
}

type SetFilter struct {
	Filter model.Filter
}

type AddTodoList struct {
	Name string
}

type UpdateTodoList struct {
	ID   string
	Name string
}

type DeleteTodoList struct {
	ID string
}

type SetActiveTodoList struct {
	ID string
}

func (AddTask) isAction()           {}
func (UpdateTask) isAction()        {}
func (DeleteTask) isAction()        {}
func (ToggleComplete) isAction()    {}
func (ChangePriority) isAction()    {}
func (MoveTask) isAction()          {}
func (SetFilter) isAction()         {}
func (AddTodoList) isAction()       {}
func (UpdateTodoList) isAction()    {}
func (DeleteTodoList) isAction()    {}
func (SetActiveTodoList) isAction() {}
