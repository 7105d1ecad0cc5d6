package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/kchou/attend/internal/model"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db      *sql.DB
	entropy *rand.Rand
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id          TEXT PRIMARY KEY,
		email       TEXT NOT NULL,
		first_name  TEXT NOT NULL,
		last_name   TEXT NOT NULL,
		created_at  TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS sessions (
		id          TEXT PRIMARY KEY,
		user_id     TEXT NOT NULL REFERENCES users(id),
		start_time  TEXT NOT NULL,
		time_of_day TEXT NOT NULL,
		day_of_week TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);

	CREATE TABLE IF NOT EXISTS memories (
		id                 TEXT PRIMARY KEY,
		session_id         TEXT NOT NULL REFERENCES sessions(id),
		content            TEXT NOT NULL,
		timestamp          TEXT NOT NULL,
		importance         REAL NOT NULL,
		emotional_valence  REAL NOT NULL,
		key_concepts       TEXT,
		activity_type      TEXT,
		productivity_score REAL
	);
	CREATE INDEX IF NOT EXISTS idx_memories_session_ts ON memories(session_id, timestamp DESC);

	CREATE TABLE IF NOT EXISTS activities (
		id                 TEXT PRIMARY KEY,
		timestamp          TEXT NOT NULL,
		application        TEXT NOT NULL,
		url                TEXT,
		time_spent_ms      INTEGER NOT NULL,
		category_type      TEXT NOT NULL,
		category_priority  INTEGER NOT NULL,
		productivity_score REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_activities_ts ON activities(timestamp DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) UpsertUser(ctx context.Context, u model.UserProfile) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, email, first_name, last_name, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   email = excluded.email,
		   first_name = excluded.first_name,
		   last_name = excluded.last_name`,
		u.UserID, u.Email, u.FirstName, u.LastName, u.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}

func (s *SQLiteStore) InsertSession(ctx context.Context, sess model.Session) error {
	// OR IGNORE keeps collision detection driver-agnostic: zero rows
	// affected means the id was taken.
	res, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO sessions (id, user_id, start_time, time_of_day, day_of_week)
		 VALUES (?, ?, ?, ?, ?)`,
		sess.ID, sess.UserID, sess.StartTime.UTC().Format(time.RFC3339),
		sess.Context.TimeOfDay, sess.Context.DayOfWeek)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrConflict
	}
	return nil
}

func (s *SQLiteStore) SessionExists(ctx context.Context, id string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM sessions WHERE id = ?`, id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *SQLiteStore) InsertMemory(ctx context.Context, sessionID string, m model.MemoryEntry) error {
	var conceptsJSON *string
	if len(m.KeyConcepts) > 0 {
		b, _ := json.Marshal(m.KeyConcepts)
		str := string(b)
		conceptsJSON = &str
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO memories (id, session_id, content, timestamp, importance,
		                       emotional_valence, key_concepts, activity_type, productivity_score)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.newID(), sessionID, m.Content, m.Timestamp.UTC().Format(time.RFC3339Nano),
		m.Importance, m.EmotionalValence, conceptsJSON, string(m.ActivityType), m.ProductivityScore)
	if err != nil {
		return fmt.Errorf("insert memory: %w", err)
	}
	return nil
}

func (s *SQLiteStore) RecentMemories(ctx context.Context, sessionID string, limit int) ([]model.MemoryEntry, error) {
	if limit <= 0 {
		limit = 5
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT content, timestamp, importance, emotional_valence,
		        key_concepts, activity_type, productivity_score
		 FROM memories WHERE session_id = ?
		 ORDER BY timestamp DESC
		 LIMIT ?`, sessionID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var memories []model.MemoryEntry
	for rows.Next() {
		m, err := scanMemory(rows)
		if err != nil {
			return nil, err
		}
		memories = append(memories, m)
	}
	return memories, rows.Err()
}

func (s *SQLiteStore) InsertActivity(ctx context.Context, a model.ActivityRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO activities (id, timestamp, application, url, time_spent_ms,
		                         category_type, category_priority, productivity_score)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		s.newID(), a.Timestamp.UTC().Format(time.RFC3339Nano), a.Application, a.URL,
		a.TimeSpent.Milliseconds(), string(a.Category.Type), a.Category.Priority, a.ProductivityScore)
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

func (s *SQLiteStore) RecentActivities(ctx context.Context, limit int) ([]model.ActivityRecord, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT timestamp, application, url, time_spent_ms,
		        category_type, category_priority, productivity_score
		 FROM activities
		 ORDER BY timestamp DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []model.ActivityRecord
	for rows.Next() {
		var a model.ActivityRecord
		var ts string
		var url sql.NullString
		var spentMS int64
		var catType string
		err := rows.Scan(&ts, &a.Application, &url, &spentMS,
			&catType, &a.Category.Priority, &a.ProductivityScore)
		if err != nil {
			return nil, err
		}
		a.Timestamp, _ = time.Parse(time.RFC3339Nano, ts)
		a.URL = url.String
		a.TimeSpent = time.Duration(spentMS) * time.Millisecond
		a.Category.Type = model.ActivityType(catType)
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanMemory(row scanner) (model.MemoryEntry, error) {
	var m model.MemoryEntry
	var ts string
	var conceptsJSON, activityType sql.NullString
	var productivity sql.NullFloat64

	err := row.Scan(&m.Content, &ts, &m.Importance, &m.EmotionalValence,
		&conceptsJSON, &activityType, &productivity)
	if err != nil {
		return m, err
	}

	m.Timestamp, _ = time.Parse(time.RFC3339Nano, ts)
	if conceptsJSON.Valid {
		json.Unmarshal([]byte(conceptsJSON.String), &m.KeyConcepts)
	}
	if activityType.Valid {
		m.ActivityType = model.ActivityType(activityType.String)
	}
	if productivity.Valid {
		m.ProductivityScore = productivity.Float64
	}

	return m, nil
}
