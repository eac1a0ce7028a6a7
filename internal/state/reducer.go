package state

import (
	"strings"
	"time"

	"github.com/huynguyen789/AIToDoList/internal/model"
	"github.com/huynguyen789/AIToDoList/internal/storage"
)

// Reduce applies one action to a snapshot, returning the next snapshot and
// whether anything changed. Inputs are never mutated; actions with failed
// preconditions (unknown ids, blank titles, last-list deletes, no active
// list) return the input unchanged.
func Reduce(snap storage.Snapshot, action Action) (storage.Snapshot, bool) {
	switch a := action.(type) {
	case AddTask:
		return reduceAddTask(snap, a)
	case UpdateTask:
		return reduceUpdateTask(snap, a)
	case DeleteTask:
		return reduceDeleteTask(snap, a)
	case ToggleComplete:
		return reduceToggleComplete(snap, a)
	case ChangePriority:
		return reduceChangePriority(snap, a)
	case MoveTask:
		return reduceMoveTask(snap, a)
	case SetFilter:
		return reduceSetFilter(snap, a)
	case AddTodoList:
		return reduceAddTodoList(snap, a)
	case UpdateTodoList:
		return reduceUpdateTodoList(snap, a)
	case DeleteTodoList:
		return reduceDeleteTodoList(snap, a)
	case SetActiveTodoList:
		return reduceSetActiveTodoList(snap, a)
	default:
		return snap, false
	}
}

func reduceAddTask(snap storage.Snapshot, a AddTask) (storage.Snapshot, bool) {
	idx := activeIndex(snap)
	if idx < 0 {
		return snap, false
	}
	task, err := model.NewTask(a.Title, a.Priority)
	if err != nil {
		return snap, false
	}
	task.Description = a.Description
	task.DeadlineDate = a.DeadlineDate
	task.DeadlineTime = a.DeadlineTime
	tasks := snap.Lists[idx].CloneTasks()
	task.Order = model.NextOrder(tasks, task.Priority)
	tasks = append(tasks, task)
	return withActiveTasks(snap, idx, tasks, task.CreatedAt), true
}

func reduceUpdateTask(snap storage.Snapshot, a UpdateTask) (storage.Snapshot, bool) {
	idx := activeIndex(snap)
	if idx < 0 {
		return snap, false
	}
	if strings.TrimSpace(a.Task.Title) == "" {
		return snap, false
	}
	tasks := snap.Lists[idx].CloneTasks()
	i := indexOfTask(tasks, a.Task.ID)
	if i < 0 {
		return snap, false
	}
	now := time.Now().UTC()
	oldPriority := tasks[i].Priority
	tasks[i].Title = a.Task.Title
	tasks[i].Description = a.Task.Description
	tasks[i].DeadlineDate = a.Task.DeadlineDate
	tasks[i].DeadlineTime = a.Task.DeadlineTime
	tasks[i].Completed = a.Task.Completed
	tasks[i].UpdatedAt = now
	if a.Task.Priority.IsValid() && a.Task.Priority != oldPriority {
		tasks = model.Reprioritize(tasks, a.Task.ID, a.Task.Priority)
	}
	return withActiveTasks(snap, idx, tasks, now), true
}

func reduceDeleteTask(snap storage.Snapshot, a DeleteTask) (storage.Snapshot, bool) {
	idx := activeIndex(snap)
	if idx < 0 {
		return snap, false
	}
	tasks := snap.Lists[idx].CloneTasks()
	i := indexOfTask(tasks, a.ID)
	if i < 0 {
		return snap, false
	}
	bucket := tasks[i].Priority
	tasks = append(tasks[:i], tasks[i+1:]...)
	tasks = model.RenumberBucket(tasks, bucket)
	return withActiveTasks(snap, idx, tasks, time.Now().UTC()), true
}

func reduceToggleComplete(snap storage.Snapshot, a ToggleComplete) (storage.Snapshot, bool) {
	idx := activeIndex(snap)
	if idx < 0 {
		return snap, false
	}
	tasks := snap.Lists[idx].CloneTasks()
	i := indexOfTask(tasks, a.ID)
	if i < 0 {
		return snap, false
	}
	now := time.Now().UTC()
	tasks[i].Completed = !tasks[i].Completed
	tasks[i].UpdatedAt = now
	return withActiveTasks(snap, idx, tasks, now), true
}

func reduceChangePriority(snap storage.Snapshot, a ChangePriority) (storage.Snapshot, bool) {
	idx := activeIndex(snap)
	if idx < 0 || !a.Bucket.IsValid() {
		return snap, false
	}
	tasks := snap.Lists[idx].Tasks
	i := indexOfTask(tasks, a.ID)
	if i < 0 || tasks[i].Priority == a.Bucket {
		return snap, false
	}
	out := model.Reprioritize(snap.Lists[idx].CloneTasks(), a.ID, a.Bucket)
	return withActiveTasks(snap, idx, out, time.Now().UTC()), true
}

func reduceMoveTask(snap storage.Snapshot, a MoveTask) (storage.Snapshot, bool) {
	idx := activeIndex(snap)
	if idx < 0 || !a.Direction.IsValid() {
		return snap, false
	}
	tasks := snap.Lists[idx].Tasks
	i := indexOfTask(tasks, a.ID)
	if i < 0 {
		return snap, false
	}
	group := model.GroupByPriority(tasks)[tasks[i].Priority]
	pos := -1
	for gi, t := range group {
		if t.ID == a.ID {
			pos = gi
			break
		}
	}
	if pos < 0 {
		return snap, false
	}
	if a.Direction == model.DirectionUp && pos == 0 {
		return snap, false
	}
	if a.Direction == model.DirectionDown && pos == len(group)-1 {
		return snap, false
	}
	out := model.MoveWithinBucket(snap.Lists[idx].CloneTasks(), a.ID, a.Direction)
	return withActiveTasks(snap, idx, out, time.Now().UTC()), true
}

func reduceSetFilter(snap storage.Snapshot, a SetFilter) (storage.Snapshot, bool) {
	if !a.Filter.IsValid() || a.Filter == snap.Filter {
		return snap, false
	}
	snap.Filter = a.Filter
	return snap, true
}

func reduceAddTodoList(snap storage.Snapshot, a AddTodoList) (storage.Snapshot, bool) {
	list, err := model.NewTodoList(a.Name)
	if err != nil {
		return snap, false
	}
	lists := cloneLists(snap.Lists)
	lists = append(lists, list)
	snap.Lists = lists
	if len(lists) == 1 {
		snap.ActiveListID = list.ID
	}
	return snap, true
}

func reduceUpdateTodoList(snap storage.Snapshot, a UpdateTodoList) (storage.Snapshot, bool) {
	if strings.TrimSpace(a.Name) == "" {
		return snap, false
	}
	i := indexOfList(snap.Lists, a.ID)
	if i < 0 || snap.Lists[i].Name == a.Name {
		return snap, false
	}
	lists := cloneLists(snap.Lists)
	lists[i].Name = a.Name
	lists[i].UpdatedAt = time.Now().UTC()
	snap.Lists = lists
	return snap, true
}

func reduceDeleteTodoList(snap storage.Snapshot, a DeleteTodoList) (storage.Snapshot, bool) {
	if len(snap.Lists) < 2 {
		return snap, false
	}
	i := indexOfList(snap.Lists, a.ID)
	if i < 0 {
		return snap, false
	}
	lists := cloneLists(snap.Lists)
	lists = append(lists[:i], lists[i+1:]...)
	snap.Lists = lists
	if snap.ActiveListID == a.ID {
		snap.ActiveListID = lists[0].ID
	}
	return snap, true
}

func reduceSetActiveTodoList(snap storage.Snapshot, a SetActiveTodoList) (storage.Snapshot, bool) {
	if a.ID == snap.ActiveListID {
		return snap, false
	}
	if indexOfList(snap.Lists, a.ID) < 0 {
		return snap, false
	}
	snap.ActiveListID = a.ID
	return snap, true
}

func activeIndex(snap storage.Snapshot) int {
	if snap.ActiveListID == "" {
		return -1
	}
	return indexOfList(snap.Lists, snap.ActiveListID)
}

func indexOfList(lists []model.TodoList, id string) int {
	for i, l := range lists {
		if l.ID == id {
			return i
		}
	}
	return -1
}

func indexOfTask(tasks []model.Task, id string) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func withActiveTasks(snap storage.Snapshot, idx int, tasks []model.Task, now time.Time) storage.Snapshot {
	lists := cloneLists(snap.Lists)
	lists[idx].Tasks = tasks
	lists[idx].UpdatedAt = now
	snap.Lists = lists
	return snap
}

func cloneLists(lists []model.TodoList) []model.TodoList {
	out := make([]model.TodoList, len(lists))
	for i, l := range lists {
		l.Tasks = l.CloneTasks()
		out[i] = l
	}
	return out
}
