// Package session creates and reuses user-scoped session identifiers.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/kchou/attend/internal/memory"
	"github.com/kchou/attend/internal/model"
	"github.com/kchou/attend/internal/store"
)

// DefaultMaxRetries bounds id regeneration on collision.
const DefaultMaxRetries = 5

// IDGenerator produces candidate session ids. Injectable so collision
// handling is testable without real randomness.
type IDGenerator func() string

// DefaultIDGenerator returns ids shaped like session-<millis>-<suffix>.
func DefaultIDGenerator() string {
	suffix := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return fmt.Sprintf("session-%d-%s", time.Now().UnixMilli(), suffix)
}

// Manager creates sessions and initializes users.
type Manager struct {
	store      store.Store
	mem        *memory.Manager
	log        zerolog.Logger
	gen        IDGenerator
	maxRetries uint64
	now        func() time.Time
}

// NewManager creates a session manager. mem may be nil when memory state is
// managed elsewhere.
func NewManager(st store.Store, mem *memory.Manager, log zerolog.Logger) *Manager {
	return &Manager{
		store:      st,
		mem:        mem,
		log:        log,
		gen:        DefaultIDGenerator,
		maxRetries: DefaultMaxRetries,
		now:        time.Now,
	}
}

// SetIDGenerator replaces the id generation policy.
func (m *Manager) SetIDGenerator(gen IDGenerator) {
	m.gen = gen
}

// SetMaxRetries bounds id regeneration attempts on collision.
func (m *Manager) SetMaxRetries(n uint64) {
	if n > 0 {
		m.maxRetries = n
	}
}

// InitializeUser upserts the user profile and returns it. Session state is
// allocated lazily per session, so a user can run any number of concurrent
// sessions, each with independent working memory.
func (m *Manager) InitializeUser(ctx context.Context, userID, email, firstName, lastName string) (model.UserProfile, error) {
	profile := model.UserProfile{
		UserID:    userID,
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		CreatedAt: m.now(),
	}
	if err := m.store.UpsertUser(ctx, profile); err != nil {
		return model.UserProfile{}, fmt.Errorf("initialize user %s: %w", userID, err)
	}
	m.log.Info().Str("user", userID).Msg("user initialized")
	return profile, nil
}

// Create returns a usable session id for the user. An existing session with
// the requested id is reused as-is. Otherwise the session is inserted; an
// id collision regenerates a randomized id and retries with exponential
// backoff, bounded by maxRetries.
func (m *Manager) Create(ctx context.Context, userID, sessionID string) (string, error) {
	if sessionID == "" {
		sessionID = m.gen()
	}

	id := sessionID
	attempt := func() error {
		exists, err := m.store.SessionExists(ctx, id)
		if err != nil {
			return backoff.Permanent(err)
		}
		if exists {
			m.log.Debug().Str("session", id).Msg("reusing existing session")
			return nil
		}

		err = m.store.InsertSession(ctx, m.newSession(userID, id))
		if errors.Is(err, store.ErrConflict) {
			// Lost the race for this id: try a fresh one.
			id = m.gen()
			return err
		}
		if err != nil {
			return backoff.Permanent(err)
		}
		m.log.Info().Str("session", id).Str("user", userID).Msg("session created")
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), m.maxRetries), ctx)
	if err := backoff.Retry(attempt, policy); err != nil {
		return "", fmt.Errorf("create session for %s: %w", userID, err)
	}

	if m.mem != nil {
		m.mem.EnsureSession(id)
	}
	return id, nil
}

func (m *Manager) newSession(userID, id string) model.Session {
	now := m.now()
	return model.Session{
		ID:        id,
		UserID:    userID,
		StartTime: now,
		Context: model.SessionContext{
			TimeOfDay: now.Format("15:04:05"),
			DayOfWeek: now.Weekday().String(),
		},
	}
}
