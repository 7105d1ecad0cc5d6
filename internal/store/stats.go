package store

import (
	"context"
	"os"
)

// Stats holds database statistics.
type Stats struct {
	DBPath      string `json:"db_path"`
	DBSizeBytes int64  `json:"db_size_bytes"`
	Users       int    `json:"users"`
	Sessions    int    `json:"sessions"`
	Memories    int    `json:"memories"`
	Activities  int    `json:"activities"`
}

// Stats returns row counts per table and the database file size.
func (s *SQLiteStore) Stats(ctx context.Context, dbPath string) (*Stats, error) {
	st := &Stats{DBPath: dbPath}

	if info, err := os.Stat(dbPath); err == nil {
		st.DBSizeBytes = info.Size()
	}

	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&st.Users)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions`).Scan(&st.Sessions)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM memories`).Scan(&st.Memories)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM activities`).Scan(&st.Activities)

	return st, nil
}
