package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/kchou/attend/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dir := t.TempDir()
	s, err := NewSQLiteStore(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func seedUserAndSession(t *testing.T, s *SQLiteStore, userID, sessionID string) {
	t.Helper()
	ctx := context.Background()
	err := s.UpsertUser(ctx, model.UserProfile{
		UserID: userID, Email: userID + "@example.com",
		FirstName: "Test", LastName: "User", CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("upsert user: %v", err)
	}
	err = s.InsertSession(ctx, model.Session{
		ID: sessionID, UserID: userID, StartTime: time.Now(),
		Context: model.SessionContext{TimeOfDay: "10:00:00", DayOfWeek: "Monday"},
	})
	if err != nil {
		t.Fatalf("insert session: %v", err)
	}
}

func TestUpsertUserIdempotent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	u := model.UserProfile{UserID: "u1", Email: "a@example.com", FirstName: "A", LastName: "B", CreatedAt: time.Now()}
	if err := s.UpsertUser(ctx, u); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	u.Email = "b@example.com"
	if err := s.UpsertUser(ctx, u); err != nil {
		t.Fatalf("second upsert: %v", err)
	}
}

func TestInsertSessionConflict(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	seedUserAndSession(t, s, "u1", "session-1")

	err := s.InsertSession(ctx, model.Session{ID: "session-1", UserID: "u1", StartTime: time.Now()})
	if !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict, got %v", err)
	}
}

func TestSessionExists(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	seedUserAndSession(t, s, "u1", "session-1")

	ok, err := s.SessionExists(ctx, "session-1")
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if !ok {
		t.Error("expected session-1 to exist")
	}

	ok, err = s.SessionExists(ctx, "session-nope")
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if ok {
		t.Error("expected session-nope to not exist")
	}
}

func TestInsertAndRecentMemories(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	seedUserAndSession(t, s, "u1", "session-1")

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 8; i++ {
		err := s.InsertMemory(ctx, "session-1", model.MemoryEntry{
			Timestamp:    base.Add(time.Duration(i) * time.Minute),
			Content:      "note",
			Importance:   1.0,
			KeyConcepts:  []string{"note"},
			ActivityType: model.Work,
		})
		if err != nil {
			t.Fatalf("insert memory %d: %v", i, err)
		}
	}

	got, err := s.RecentMemories(ctx, "session-1", 5)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("expected 5, got %d", len(got))
	}
	// Newest first
	for i := 1; i < len(got); i++ {
		if got[i].Timestamp.After(got[i-1].Timestamp) {
			t.Errorf("result not newest-first at index %d", i)
		}
	}
}

func TestRecentMemoriesScopedToSession(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	seedUserAndSession(t, s, "u1", "session-1")
	seedUserAndSession(t, s, "u2", "session-2")

	s.InsertMemory(ctx, "session-1", model.MemoryEntry{Timestamp: time.Now(), Content: "mine"})
	s.InsertMemory(ctx, "session-2", model.MemoryEntry{Timestamp: time.Now(), Content: "theirs"})

	got, err := s.RecentMemories(ctx, "session-1", 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1, got %d", len(got))
	}
	if got[0].Content != "mine" {
		t.Errorf("expected 'mine', got %q", got[0].Content)
	}
}

func TestInsertAndRecentActivities(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	a := model.ActivityRecord{
		Timestamp:         time.Now(),
		Application:       "browser",
		URL:               "https://github.com/kchou/attend",
		TimeSpent:         90 * time.Second,
		Category:          model.Category{Type: model.Development, Priority: 1},
		ProductivityScore: 1.0,
	}
	if err := s.InsertActivity(context.Background(), a); err != nil {
		t.Fatalf("insert activity: %v", err)
	}

	got, err := s.RecentActivities(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1, got %d", len(got))
	}
	if got[0].Category.Type != model.Development {
		t.Errorf("expected development, got %s", got[0].Category.Type)
	}
	if got[0].TimeSpent != 90*time.Second {
		t.Errorf("expected 90s time spent, got %s", got[0].TimeSpent)
	}
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	seedUserAndSession(t, s, "u1", "session-1")
	s.InsertMemory(ctx, "session-1", model.MemoryEntry{Timestamp: time.Now(), Content: "x"})

	st, err := s.Stats(ctx, "unused-path")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st.Users != 1 || st.Sessions != 1 || st.Memories != 1 {
		t.Errorf("unexpected counts: %+v", st)
	}
}
