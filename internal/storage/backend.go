package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

// Backend is one persistence target in the reconciliation chain. TryRead
// reports ok=false when the backend holds no usable data, which is not an
// error; errors are reserved for the backend itself failing.
type Backend interface {
	Name() string
	TryRead(ctx context.Context, userID string) (Snapshot, bool, error)
	TryWrite(ctx context.Context, userID string, snap Snapshot) error
}
