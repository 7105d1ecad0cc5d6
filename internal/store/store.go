// Package store provides the persistence interface and SQLite implementation.
package store

import (
	"context"
	"errors"

	"github.com/kchou/attend/internal/model"
)

// ErrConflict is returned when an insert collides with an existing id.
var ErrConflict = errors.New("id already exists")

// Store defines the persistence primitives the core needs: upsert-by-id,
// insert, select-with-order-and-limit, and existence-check-by-id. Any
// backend offering these suffices.
type Store interface {
	// UpsertUser creates or replaces a user profile by id.
	UpsertUser(ctx context.Context, u model.UserProfile) error

	// InsertSession inserts a session record. Returns ErrConflict if the
	// session id is already taken.
	InsertSession(ctx context.Context, s model.Session) error

	// SessionExists reports whether a session with the given id exists.
	SessionExists(ctx context.Context, id string) (bool, error)

	// InsertMemory persists one memory entry under a session.
	InsertMemory(ctx context.Context, sessionID string, m model.MemoryEntry) error

	// RecentMemories returns up to limit entries for a session, newest-first.
	RecentMemories(ctx context.Context, sessionID string, limit int) ([]model.MemoryEntry, error)

	// InsertActivity persists one activity record.
	InsertActivity(ctx context.Context, a model.ActivityRecord) error

	// RecentActivities returns up to limit activity records, newest-first.
	RecentActivities(ctx context.Context, limit int) ([]model.ActivityRecord, error)

	// Close closes the store.
	Close() error
}
