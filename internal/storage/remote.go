package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/huynguyen789/AIToDoList/internal/model"
)

const (
	userKeyPrefix        = "aitodo:user:"
	defaultRemoteTimeout = 5 * time.Second

	fieldTodoLists   = "todoLists"
	fieldPreferences = "preferences"
)

type preferences struct {
	ActiveTodoListID string       `json:"activeTodoListId"`
	Filter           model.Filter `json:"filter"`
}

// RemoteBackend mirrors snapshots into a per-user Redis hash. Every call
// runs under a bounded timeout.
type RemoteBackend struct {
	client  *redis.Client
	timeout time.Duration
}

func NewRemoteBackend(client *redis.Client) *RemoteBackend {
	return &RemoteBackend{client: client, timeout: defaultRemoteTimeout}
}

func OpenRemote(redisURL string) (*RemoteBackend, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), defaultRemoteTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return NewRemoteBackend(client), nil
}

func (b *RemoteBackend) Close() error {
	return b.client.Close()
}

func (b *RemoteBackend) Name() string {
	return "remote"
}

func (b *RemoteBackend) TryRead(ctx context.Context, userID string) (Snapshot, bool, error) {
	if userID == "" {
		return Snapshot{}, false, nil
	}
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	fields, err := b.client.HGetAll(ctx, userKey(userID)).Result()
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("read user doc: %w", err)
	}
	rawLists, ok := fields[fieldTodoLists]
	if !ok {
		return Snapshot{}, false, nil
	}
	dec := decodeListsPayload([]byte(rawLists))
	if dec.shape != shapeLists || len(dec.lists) == 0 {
		return Snapshot{}, false, nil
	}
	snap := Snapshot{Lists: normalizeLists(dec.lists), Filter: model.FilterAll}
	if rawPrefs, prefsOK := fields[fieldPreferences]; prefsOK {
		var prefs preferences
		if err := json.Unmarshal([]byte(rawPrefs), &prefs); err == nil {
			snap.ActiveListID = prefs.ActiveTodoListID
			if prefs.Filter.IsValid() {
				snap.Filter = prefs.Filter
			}
		}
	}
	return snap, true, nil
}

func (b *RemoteBackend) TryWrite(ctx context.Context, userID string, snap Snapshot) error {
	if userID == "" {
		return nil
	}
	lists := snap.Lists
	if lists == nil {
		lists = []model.TodoList{}
	}
	rawLists, err := json.Marshal(lists)
	if err != nil {
		return fmt.Errorf("marshal todo lists: %w", err)
	}
	rawPrefs, err := json.Marshal(preferences{ActiveTodoListID: snap.ActiveListID, Filter: snap.Filter})
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	err = b.client.HSet(ctx, userKey(userID), fieldTodoLists, string(rawLists), fieldPreferences, string(rawPrefs)).Err()
	if err != nil {
		return fmt.Errorf("write user doc: %w", err)
	}
	return nil
}

func userKey(userID string) string {
	return userKeyPrefix + userID
}
