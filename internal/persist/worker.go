package persist

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/huynguyen789/AIToDoList/internal/storage"
)

const defaultSaveTimeout = 10 * time.Second

// Saver persists a snapshot. storage.Store satisfies it.
type Saver interface {
	SaveAll(ctx context.Context, snap storage.Snapshot, userID string)
}

// Worker drains a snapshot channel and writes each received snapshot
// through the Saver. The channel it consumes keeps only the latest
// pending snapshot, so a slow save skips intermediate states instead
// of falling behind. Stop flushes one final pending snapshot before
// returning.
type Worker struct {
	mu      sync.Mutex
	saver   Saver
	events  <-chan storage.Snapshot
	userID  string
	timeout time.Duration
	log     *zap.Logger

	stopCh  chan struct{}
	doneCh  chan struct{}
	started bool
	stopped bool
}

func NewWorker(saver Saver, events <-chan storage.Snapshot, userID string, log *zap.Logger) *Worker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Worker{
		saver:   saver,
		events:  events,
		userID:  userID,
		timeout: defaultSaveTimeout,
		log:     log,
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
}

func (w *Worker) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return
	}
	w.started = true
	go w.loop()
}

func (w *Worker) Stop() {
	w.mu.Lock()
	if !w.started || w.stopped {
		w.mu.Unlock()
		return
	}
	w.stopped = true
	close(w.stopCh)
	w.mu.Unlock()
	<-w.doneCh
}

func (w *Worker) loop() {
	defer close(w.doneCh)

	for {
		select {
		case snap, ok := <-w.events:
			if !ok {
				return
			}
			w.save(snap)
		case <-w.stopCh:
			w.flush()
			return
		}
	}
}

// flush writes the snapshot that was pending when Stop was called, if any.
func (w *Worker) flush() {
	select {
	case snap, ok := <-w.events:
		if !ok {
			return
		}
		w.log.Info("final_snapshot_flushed")
		w.save(snap)
	default:
	}
}

func (w *Worker) save(snap storage.Snapshot) {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()
	w.saver.SaveAll(ctx, snap, w.userID)
}
