package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/huynguyen789/AIToDoList/internal/model"
)

var ErrNoRemote = errors.New("storage: remote backend not configured")

// Store reconciles an ordered chain of backends behind one load/save API.
// LoadAll and SaveAll never fail: a broken backend is logged and skipped,
// and a load always produces a structurally valid snapshot.
type Store struct {
	local  Backend
	remote Backend
	log    *zap.Logger
}

func NewStore(local Backend, remote Backend, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{local: local, remote: remote, log: log}
}

func (s *Store) LoadAll(ctx context.Context, userID string) Snapshot {
	var snap Snapshot
	found := false
	remoteEmpty := false
	for _, b := range s.readChain(userID) {
		got, ok, err := b.TryRead(ctx, userID)
		if err != nil {
			s.log.Warn("backend_read_failed", zap.String("backend", b.Name()), zap.Error(err))
			continue
		}
		if !ok {
			if b == s.remote {
				remoteEmpty = true
			}
			continue
		}
		s.log.Info("snapshot_loaded", zap.String("backend", b.Name()), zap.Int("lists", len(got.Lists)))
		snap = got
		found = true
		break
	}
	if !found {
		snap = Snapshot{Lists: []model.TodoList{}, Filter: model.FilterAll}
	}
	snap = normalizeSnapshot(snap)

	persistNow := snap.legacy
	if snap.legacy {
		s.log.Info("legacy_tasks_migrated", zap.Int("lists", len(snap.Lists)))
	}
	if found && remoteEmpty && userID != "" {
		s.log.Info("local_snapshot_copied_to_remote", zap.Int("lists", len(snap.Lists)))
		persistNow = true
	}
	if snap.Empty() {
		snap = s.withDefaultList(snap)
		persistNow = true
	}
	if persistNow {
		s.SaveAll(ctx, snap, userID)
	}
	return snap
}

func (s *Store) SaveAll(ctx context.Context, snap Snapshot, userID string) {
	for _, b := range s.writeChain(userID) {
		if err := b.TryWrite(ctx, userID, snap); err != nil {
			s.log.Warn("backend_write_failed", zap.String("backend", b.Name()), zap.Error(err))
		}
	}
}

// MigrateUp copies the current local snapshot to the remote backend for
// userID. Local data is kept; this is the opportunistic first-login sync.
func (s *Store) MigrateUp(ctx context.Context, userID string) error {
	if userID == "" {
		return errors.New("storage: user id required for remote sync")
	}
	if s.remote == nil {
		return ErrNoRemote
	}
	snap, ok, err := s.local.TryRead(ctx, userID)
	if err != nil {
		return fmt.Errorf("read local snapshot: %w", err)
	}
	if !ok {
		return ErrNotFound
	}
	snap = normalizeSnapshot(snap)
	if err := s.remote.TryWrite(ctx, userID, snap); err != nil {
		return fmt.Errorf("copy snapshot to remote: %w", err)
	}
	s.log.Info("local_snapshot_copied_to_remote", zap.Int("lists", len(snap.Lists)))
	return nil
}

func (s *Store) readChain(userID string) []Backend {
	if userID == "" || s.remote == nil {
		return []Backend{s.local}
	}
	return []Backend{s.remote, s.local}
}

func (s *Store) writeChain(userID string) []Backend {
	if userID == "" || s.remote == nil {
		return []Backend{s.local}
	}
	return []Backend{s.local, s.remote}
}

func (s *Store) withDefaultList(snap Snapshot) Snapshot {
	now := time.Now().UTC()
	list := model.TodoList{
		ID:        uuid.NewString(),
		Name:      model.DefaultListName,
		Tasks:     []model.Task{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	snap.Lists = []model.TodoList{list}
	snap.ActiveListID = list.ID
	if !snap.Filter.IsValid() {
		snap.Filter = model.FilterAll
	}
	s.log.Info("default_list_created", zap.String("list_id", list.ID))
	return snap
}
