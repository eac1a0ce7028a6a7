package model

import (
	"sort"
	"time"
)

func Score(tasks []Task) int {
	total := 0
	for _, t := range tasks {
		if t.Completed {
			total += t.Priority.Points()
		}
	}
	return total
}

func FilterByStatus(tasks []Task, f Filter) []Task {
	switch f {
	case FilterActive:
		out := make([]Task, 0, len(tasks))
		for _, t := range tasks {
			if !t.Completed {
				out = append(out, t)
			}
		}
		return out
	case FilterCompleted:
		out := make([]Task, 0, len(tasks))
		for _, t := range tasks {
			if t.Completed {
				out = append(out, t)
			}
		}
		return out
	default:
		return tasks
	}
}

func GroupByPriority(tasks []Task) map[Priority][]Task {
	groups := make(map[Priority][]Task, 4)
	for _, p := range Priorities() {
		groups[p] = []Task{}
	}
	for _, t := range tasks {
		if t.Priority.IsValid() {
			groups[t.Priority] = append(groups[t.Priority], t)
		}
	}
	for p, g := range groups {
		sort.SliceStable(g, func(a, b int) bool { return g[a].Order < g[b].Order })
		groups[p] = g
	}
	return groups
}

// RenumberBucket closes order gaps in one bucket: tasks keep their relative
// sequence, orders become 0..n-1. Other buckets are untouched.
func RenumberBucket(tasks []Task, bucket Priority) []Task {
	idx := bucketIndices(tasks, bucket)
	if len(idx) == 0 {
		return tasks
	}
	out := cloneTasks(tasks)
	for seq, i := range idx {
		out[i].Order = seq
	}
	return out
}

func MoveWithinBucket(tasks []Task, id string, dir Direction) []Task {
	if !dir.IsValid() {
		return tasks
	}
	cur := indexByID(tasks, id)
	if cur < 0 {
		return tasks
	}
	idx := bucketIndices(tasks, tasks[cur].Priority)
	pos := -1
	for i, ti := range idx {
		if ti == cur {
			pos = i
			break
		}
	}
	if pos < 0 {
		return tasks
	}
	if dir == DirectionUp && pos == 0 {
		return tasks
	}
	if dir == DirectionDown && pos == len(idx)-1 {
		return tasks
	}
	neighbor := idx[pos-1]
	if dir == DirectionDown {
		neighbor = idx[pos+1]
	}
	out := cloneTasks(tasks)
	out[cur].Order, out[neighbor].Order = out[neighbor].Order, out[cur].Order
	return out
}

// Reprioritize appends the task to the end of newBucket (order = max+1) and
// renumbers only the bucket it left. The destination keeps its existing
// orders untouched so arrival sequence is preserved.
func Reprioritize(tasks []Task, id string, newBucket Priority) []Task {
	if !newBucket.IsValid() {
		return tasks
	}
	cur := indexByID(tasks, id)
	if cur < 0 {
		return tasks
	}
	if tasks[cur].Priority == newBucket {
		return tasks
	}
	oldBucket := tasks[cur].Priority
	out := cloneTasks(tasks)
	out[cur].Order = NextOrder(tasks, newBucket)
	out[cur].Priority = newBucket
	out[cur].UpdatedAt = time.Now().UTC()
	return RenumberBucket(out, oldBucket)
}

func NextOrder(tasks []Task, bucket Priority) int {
	max := -1
	for _, t := range tasks {
		if t.Priority == bucket && t.Order > max {
			max = t.Order
		}
	}
	return max + 1
}

func indexByID(tasks []Task, id string) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func bucketIndices(tasks []Task, bucket Priority) []int {
	idx := make([]int, 0, len(tasks))
	for i, t := range tasks {
		if t.Priority == bucket {
			idx = append(idx, i)
		}
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return tasks[idx[a]].Order < tasks[idx[b]].Order
	})
	return idx
}

func cloneTasks(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	copy(out, tasks)
	return out
}
