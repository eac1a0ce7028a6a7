package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	_ "github.com/mattn/go-sqlite3"

	"github.com/huynguyen789/AIToDoList/internal/model"
)

const (
	keyTodoLists  = "todoLists"
	keyActiveList = "activeTodoListId"
	keyFilter     = "filter"
	keyDarkMode   = "darkMode"
	keyLegacy     = "todos"
)

type LocalBackend struct {
	db *sql.DB
}

func NewLocalBackend(db *sql.DB) (*LocalBackend, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		return nil, fmt.Errorf("enable wal: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}
	db.SetMaxOpenConns(1)
	return &LocalBackend{db: db}, nil
}

func OpenLocal(path string) (*LocalBackend, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	b, err := NewLocalBackend(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return b, nil
}

func (b *LocalBackend) Close() error {
	return b.db.Close()
}

func (b *LocalBackend) Name() string {
	return "local"
}

func (b *LocalBackend) TryRead(ctx context.Context, _ string) (Snapshot, bool, error) {
	snap := Snapshot{Lists: []model.TodoList{}, Filter: model.FilterAll}

	raw, ok, err := b.value(ctx, keyTodoLists)
	if err != nil {
		return Snapshot{}, false, err
	}
	if ok {
		dec := decodeListsPayload([]byte(raw))
		switch dec.shape {
		case shapeLists:
			snap.Lists = normalizeLists(dec.lists)
		case shapeLegacyTasks:
			snap.Lists = upgradeLegacyTasks(dec.tasks)
			snap.legacy = true
		}
	}
	if len(snap.Lists) == 0 {
		legacyRaw, legacyOK, legacyErr := b.value(ctx, keyLegacy)
		if legacyErr != nil {
			return Snapshot{}, false, legacyErr
		}
		if legacyOK {
			dec := decodeListsPayload([]byte(legacyRaw))
			if dec.shape == shapeLegacyTasks && len(dec.tasks) > 0 {
				snap.Lists = upgradeLegacyTasks(dec.tasks)
				snap.legacy = true
			}
		}
	}
	if active, activeOK, activeErr := b.value(ctx, keyActiveList); activeErr != nil {
		return Snapshot{}, false, activeErr
	} else if activeOK {
		snap.ActiveListID = active
	}
	if filter, filterOK, filterErr := b.value(ctx, keyFilter); filterErr != nil {
		return Snapshot{}, false, filterErr
	} else if filterOK {
		snap.Filter = model.Filter(filter)
	}
	if snap.Empty() {
		return Snapshot{}, false, nil
	}
	return snap, true, nil
}

func (b *LocalBackend) TryWrite(ctx context.Context, _ string, snap Snapshot) error {
	lists := snap.Lists
	if lists == nil {
		lists = []model.TodoList{}
	}
	raw, err := json.Marshal(lists)
	if err != nil {
		return fmt.Errorf("marshal todo lists: %w", err)
	}
	if err := b.setValue(ctx, keyTodoLists, string(raw)); err != nil {
		return err
	}
	if err := b.setValue(ctx, keyActiveList, snap.ActiveListID); err != nil {
		return err
	}
	if err := b.setValue(ctx, keyFilter, string(snap.Filter)); err != nil {
		return err
	}
	return b.deleteValue(ctx, keyLegacy)
}

func (b *LocalBackend) DarkMode(ctx context.Context) (bool, bool, error) {
	raw, ok, err := b.value(ctx, keyDarkMode)
	if err != nil || !ok {
		return false, false, err
	}
	return raw == "true", true, nil
}

func (b *LocalBackend) SetDarkMode(ctx context.Context, on bool) error {
	return b.setValue(ctx, keyDarkMode, strconv.FormatBool(on))
}

func (b *LocalBackend) value(ctx context.Context, key string) (string, bool, error) {
	var out string
	err := b.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&out)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return out, true, nil
}

func (b *LocalBackend) setValue(ctx context.Context, key, value string) error {
	_, err := b.db.ExecContext(ctx, `
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	return err
}

func (b *LocalBackend) deleteValue(ctx context.Context, key string) error {
	_, err := b.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key)
	return err
}
