package state

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/huynguyen789/AIToDoList/internal/model"
	"github.com/huynguyen789/AIToDoList/internal/storage"
)

type Phase string

const (
	PhaseLoading Phase = "loading"
	PhaseReady   Phase = "ready"
)

// Controller owns the application state for the process lifetime. Actions
// are applied one at a time under a single lock; every applied transition
// emits the resulting snapshot on Events for the persistence worker. The
// events channel holds only the latest snapshot: a burst of actions
// coalesces into one pending full-snapshot save.
//
// Actions dispatched before Hydrate are rejected, never queued.
type Controller struct {
	mu     sync.Mutex
	phase  Phase
	snap   storage.Snapshot
	score  int
	closed bool

	log    *zap.Logger
	events chan storage.Snapshot
}

func NewController(log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{
		phase:  PhaseLoading,
		snap:   storage.Snapshot{Lists: []model.TodoList{}, Filter: model.FilterAll},
		log:    log,
		events: make(chan storage.Snapshot, 1),
	}
}

func (c *Controller) Hydrate(snap storage.Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snap = snap
	c.phase = PhaseReady
	c.score = c.activeScore()
	c.log.Info("state_hydrated",
		zap.Int("lists", len(snap.Lists)),
		zap.String("active_list", snap.ActiveListID),
	)
}

func (c *Controller) Apply(action Action) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != PhaseReady {
		c.log.Debug("action_rejected_while_loading", zap.String("action", fmt.Sprintf("%T", action)))
		return
	}
	next, changed := Reduce(c.snap, action)
	if !changed {
		return
	}
	c.snap = next
	c.score = c.activeScore()
	c.emit(next)
}

// Events delivers the snapshot to persist after each applied action.
func (c *Controller) Events() <-chan storage.Snapshot {
	return c.events
}

// Close ends the event stream. Further actions are still applied to state
// but no longer persisted.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.events)
}

func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase != PhaseReady
}

func (c *Controller) Filter() model.Filter {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap.Filter
}

func (c *Controller) TotalScore() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.score
}

func (c *Controller) TodoLists() []model.TodoList {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneLists(c.snap.Lists)
}

func (c *Controller) ActiveTodoList() (model.TodoList, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx := activeIndex(c.snap)
	if idx < 0 {
		return model.TodoList{}, false
	}
	l := c.snap.Lists[idx]
	l.Tasks = l.CloneTasks()
	return l, true
}

// Tasks returns the active list's tasks with the current filter applied.
func (c *Controller) Tasks() []model.Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx := activeIndex(c.snap)
	if idx < 0 {
		return []model.Task{}
	}
	return model.FilterByStatus(c.snap.Lists[idx].CloneTasks(), c.snap.Filter)
}

func (c *Controller) Snapshot() storage.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.snap
	out.Lists = cloneLists(c.snap.Lists)
	return out
}

func (c *Controller) activeScore() int {
	idx := activeIndex(c.snap)
	if idx < 0 {
		return 0
	}
	return model.Score(c.snap.Lists[idx].Tasks)
}

func (c *Controller) emit(snap storage.Snapshot) {
	if c.closed {
		return
	}
	for {
		select {
		case c.events <- snap:
			return
		default:
		}
		select {
		case <-c.events:
		default:
		}
	}
}
