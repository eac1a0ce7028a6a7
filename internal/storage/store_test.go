package storage

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/huynguyen789/AIToDoList/internal/model"
)

type fakeBackend struct {
	name     string
	snap     Snapshot
	hasData  bool
	readErr  error
	writeErr error

	reads  int
	writes []Snapshot
	trace  *[]string
}

func (f *fakeBackend) Name() string {
	return f.name
}

func (f *fakeBackend) TryRead(_ context.Context, _ string) (Snapshot, bool, error) {
	f.reads++
	if f.readErr != nil {
		return Snapshot{}, false, f.readErr
	}
	return f.snap, f.hasData, nil
}

func (f *fakeBackend) TryWrite(_ context.Context, _ string, snap Snapshot) error {
	if f.trace != nil {
		*f.trace = append(*f.trace, f.name)
	}
	if f.writeErr != nil {
		return f.writeErr
	}
	f.writes = append(f.writes, snap)
	return nil
}

func listSnapshot(listID, name string) Snapshot {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	return Snapshot{
		Lists: []model.TodoList{{
			ID:        listID,
			Name:      name,
			Tasks:     []model.Task{},
			CreatedAt: now,
			UpdatedAt: now,
		}},
		ActiveListID: listID,
		Filter:       model.FilterAll,
	}
}

func TestLoadAllWithoutUserReadsLocalOnly(t *testing.T) {
	local := &fakeBackend{name: "local", snap: listSnapshot("l1", "My Tasks"), hasData: true}
	remote := &fakeBackend{name: "remote", snap: listSnapshot("r1", "Remote"), hasData: true}
	s := NewStore(local, remote, zap.NewNop())

	got := s.LoadAll(t.Context(), "")
	if remote.reads != 0 {
		t.Fatalf("expected remote untouched without user id, got %d reads", remote.reads)
	}
	if len(got.Lists) != 1 || got.Lists[0].ID != "l1" {
		t.Fatalf("expected local data, got %#v", got.Lists)
	}
}

func TestLoadAllPrefersRemoteData(t *testing.T) {
	local := &fakeBackend{name: "local", snap: listSnapshot("l1", "Local"), hasData: true}
	remote := &fakeBackend{name: "remote", snap: listSnapshot("r1", "Remote"), hasData: true}
	s := NewStore(local, remote, zap.NewNop())

	got := s.LoadAll(t.Context(), "user-1")
	if got.Lists[0].ID != "r1" {
		t.Fatalf("expected remote data to win, got %#v", got.Lists)
	}
	if local.reads != 0 {
		t.Fatalf("expected local skipped when remote has data, got %d reads", local.reads)
	}
}

func TestLoadAllRemoteEmptyFallsBackToLocal(t *testing.T) {
	local := &fakeBackend{name: "local", snap: listSnapshot("l1", "My Tasks"), hasData: true}
	remote := &fakeBackend{name: "remote"}
	s := NewStore(local, remote, zap.NewNop())

	got := s.LoadAll(t.Context(), "user-1")
	if len(got.Lists) != 1 || got.Lists[0].ID != "l1" || got.Lists[0].Name != "My Tasks" {
		t.Fatalf("expected local data verbatim, got %#v", got.Lists)
	}
	if len(remote.writes) != 1 {
		t.Fatalf("expected first-login copy to remote, got %d writes", len(remote.writes))
	}
	if remote.writes[0].Lists[0].ID != "l1" {
		t.Fatalf("expected local snapshot copied up, got %#v", remote.writes[0].Lists)
	}
}

func TestLoadAllRemoteErrorFallsBackWithoutSync(t *testing.T) {
	local := &fakeBackend{name: "local", snap: listSnapshot("l1", "My Tasks"), hasData: true}
	remote := &fakeBackend{name: "remote", readErr: errors.New("connection refused")}
	s := NewStore(local, remote, zap.NewNop())

	got := s.LoadAll(t.Context(), "user-1")
	if len(got.Lists) != 1 || got.Lists[0].ID != "l1" {
		t.Fatalf("expected local fallback, got %#v", got.Lists)
	}
	if len(remote.writes) != 0 {
		t.Fatal("expected no remote write after a failed remote read")
	}
}

// hangingBackend blocks every call until its context expires.
type hangingBackend struct{}

func (hangingBackend) Name() string { return "remote" }

func (hangingBackend) TryRead(ctx context.Context, _ string) (Snapshot, bool, error) {
	<-ctx.Done()
	return Snapshot{}, false, ctx.Err()
}

func (hangingBackend) TryWrite(ctx context.Context, _ string, _ Snapshot) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestLoadAllRemoteHangFallsBackOnDeadline(t *testing.T) {
	local := &fakeBackend{name: "local", snap: listSnapshot("l1", "My Tasks"), hasData: true}
	s := NewStore(local, hangingBackend{}, zap.NewNop())

	ctx, cancel := context.WithTimeout(t.Context(), 50*time.Millisecond)
	defer cancel()

	got := s.LoadAll(ctx, "user-1")
	if len(got.Lists) != 1 || got.Lists[0].ID != "l1" {
		t.Fatalf("expected local fallback after remote deadline, got %#v", got.Lists)
	}
}

func TestLoadAllSynthesizesDefaultList(t *testing.T) {
	local := &fakeBackend{name: "local"}
	s := NewStore(local, nil, zap.NewNop())

	got := s.LoadAll(t.Context(), "")
	if len(got.Lists) != 1 || got.Lists[0].Name != model.DefaultListName {
		t.Fatalf("expected synthesized default list, got %#v", got.Lists)
	}
	if got.ActiveListID != got.Lists[0].ID {
		t.Fatalf("expected synthesized list active, got %q", got.ActiveListID)
	}
	if got.Filter != model.FilterAll {
		t.Fatalf("expected default filter, got %q", got.Filter)
	}
	if len(local.writes) != 1 {
		t.Fatalf("expected default list persisted immediately, got %d writes", len(local.writes))
	}
}

func TestLoadAllNormalizesActiveListAndFilter(t *testing.T) {
	snap := listSnapshot("l1", "My Tasks")
	snap.ActiveListID = "gone"
	snap.Filter = model.Filter("bogus")
	local := &fakeBackend{name: "local", snap: snap, hasData: true}
	s := NewStore(local, nil, zap.NewNop())

	got := s.LoadAll(t.Context(), "")
	if got.ActiveListID != "l1" {
		t.Fatalf("expected active pointer reset to first list, got %q", got.ActiveListID)
	}
	if got.Filter != model.FilterAll {
		t.Fatalf("expected filter reset to all, got %q", got.Filter)
	}
}

func TestLoadAllPersistsMigratedSnapshot(t *testing.T) {
	snap := listSnapshot("l1", model.DefaultListName)
	snap.legacy = true
	local := &fakeBackend{name: "local", snap: snap, hasData: true}
	s := NewStore(local, nil, zap.NewNop())

	s.LoadAll(t.Context(), "")
	if len(local.writes) != 1 {
		t.Fatalf("expected migrated snapshot persisted immediately, got %d writes", len(local.writes))
	}
}

func TestSaveAllWritesLocalFirstThenRemote(t *testing.T) {
	var trace []string
	local := &fakeBackend{name: "local", trace: &trace}
	remote := &fakeBackend{name: "remote", trace: &trace}
	s := NewStore(local, remote, zap.NewNop())

	s.SaveAll(t.Context(), listSnapshot("l1", "My Tasks"), "user-1")
	if len(trace) != 2 || trace[0] != "local" || trace[1] != "remote" {
		t.Fatalf("expected local write before remote, got %v", trace)
	}
}

func TestSaveAllSkipsRemoteWithoutUser(t *testing.T) {
	local := &fakeBackend{name: "local"}
	remote := &fakeBackend{name: "remote"}
	s := NewStore(local, remote, zap.NewNop())

	s.SaveAll(t.Context(), listSnapshot("l1", "My Tasks"), "")
	if len(local.writes) != 1 {
		t.Fatalf("expected local write, got %d", len(local.writes))
	}
	if len(remote.writes) != 0 {
		t.Fatalf("expected no remote write without user id, got %d", len(remote.writes))
	}
}

func TestSaveAllContinuesPastBackendFailure(t *testing.T) {
	local := &fakeBackend{name: "local", writeErr: errors.New("disk full")}
	remote := &fakeBackend{name: "remote"}
	s := NewStore(local, remote, zap.NewNop())

	s.SaveAll(t.Context(), listSnapshot("l1", "My Tasks"), "user-1")
	if len(remote.writes) != 1 {
		t.Fatalf("expected remote write despite local failure, got %d", len(remote.writes))
	}
}

func TestMigrateUpCopiesLocalToRemote(t *testing.T) {
	local := &fakeBackend{name: "local", snap: listSnapshot("l1", "My Tasks"), hasData: true}
	remote := &fakeBackend{name: "remote"}
	s := NewStore(local, remote, zap.NewNop())

	if err := s.MigrateUp(t.Context(), "user-1"); err != nil {
		t.Fatalf("migrate up: %v", err)
	}
	if len(remote.writes) != 1 || remote.writes[0].Lists[0].ID != "l1" {
		t.Fatalf("expected local snapshot on remote, got %#v", remote.writes)
	}
	if len(local.writes) != 0 {
		t.Fatal("expected local untouched by migrate up")
	}
}

func TestStoreLocalOnlyRoundTrip(t *testing.T) {
	s := NewStore(setupLocal(t), nil, zap.NewNop())
	want := sampleSnapshot()

	s.SaveAll(t.Context(), want, "")
	got := s.LoadAll(t.Context(), "")

	wantJSON, err := json.Marshal(want.Lists)
	if err != nil {
		t.Fatalf("marshal expected lists: %v", err)
	}
	gotJSON, err := json.Marshal(got.Lists)
	if err != nil {
		t.Fatalf("marshal loaded lists: %v", err)
	}
	if string(wantJSON) != string(gotJSON) {
		t.Fatalf("round trip mismatch:\nwant %s\ngot  %s", wantJSON, gotJSON)
	}
	if got.ActiveListID != want.ActiveListID || got.Filter != want.Filter {
		t.Fatalf("unexpected preferences: active=%q filter=%q", got.ActiveListID, got.Filter)
	}
}

func TestMigrateUpErrors(t *testing.T) {
	local := &fakeBackend{name: "local"}
	s := NewStore(local, nil, zap.NewNop())
	if err := s.MigrateUp(t.Context(), "user-1"); !errors.Is(err, ErrNoRemote) {
		t.Fatalf("expected ErrNoRemote, got: %v", err)
	}

	s = NewStore(local, &fakeBackend{name: "remote"}, zap.NewNop())
	if err := s.MigrateUp(t.Context(), ""); err == nil {
		t.Fatal("expected error for empty user id")
	}
	if err := s.MigrateUp(t.Context(), "user-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for empty local, got: %v", err)
	}
}
