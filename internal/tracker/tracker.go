// Package tracker maintains the capped in-memory activity log.
package tracker

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/kchou/attend/internal/classify"
	"github.com/kchou/attend/internal/model"
	"github.com/kchou/attend/internal/source"
	"github.com/kchou/attend/internal/store"
)

// DefaultCapacity caps the in-memory activity log.
const DefaultCapacity = 1000

// Tracker is the owner of activity records for the current process. The
// in-memory log is the source of truth; persistence is best-effort
// durability and never blocks tracking.
type Tracker struct {
	store    store.Store
	log      zerolog.Logger
	capacity int
	now      func() time.Time

	mu         sync.Mutex
	activities []model.ActivityRecord
}

// New creates a tracker. st may be nil, which disables persistence.
func New(st store.Store, log zerolog.Logger, capacity int) *Tracker {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Tracker{
		store:    st,
		log:      log,
		capacity: capacity,
		now:      time.Now,
	}
}

// Record classifies a raw event and appends it to the log. The previous
// record's TimeSpent is backfilled as the gap between the two timestamps,
// so every record but the newest carries a finalized duration. The write is
// persisted in the background; a persistence failure is logged and does not
// affect in-memory tracking.
func (t *Tracker) Record(ev source.Event) {
	ts := ev.Time
	if ts.IsZero() {
		ts = t.now()
	}

	signal := ev.URL
	if signal == "" {
		signal = ev.Title
	}
	category := classify.Classify(signal)

	rec := model.ActivityRecord{
		Timestamp:         ts,
		Application:       application(ev),
		URL:               ev.URL,
		Category:          category,
		ProductivityScore: model.Weight(category.Type),
	}

	t.mu.Lock()
	if n := len(t.activities); n > 0 {
		prev := &t.activities[n-1]
		if gap := ts.Sub(prev.Timestamp); gap > 0 {
			prev.TimeSpent = gap
		}
	}
	t.activities = append(t.activities, rec)
	t.trimLocked()
	t.mu.Unlock()

	if t.store != nil {
		go func() {
			if err := t.store.InsertActivity(context.Background(), rec); err != nil {
				t.log.Warn().Err(err).Str("url", rec.URL).Msg("persist activity failed")
			}
		}()
	}
}

// Recent returns the records inside the trailing window, oldest first.
func (t *Tracker) Recent(window time.Duration) []model.ActivityRecord {
	cutoff := t.now().Add(-window)

	t.mu.Lock()
	defer t.mu.Unlock()

	var out []model.ActivityRecord
	for _, a := range t.activities {
		if a.Timestamp.After(cutoff) {
			out = append(out, a)
		}
	}
	return out
}

// Current returns the most recent record.
func (t *Tracker) Current() (model.ActivityRecord, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.activities) == 0 {
		return model.ActivityRecord{}, false
	}
	return t.activities[len(t.activities)-1], true
}

// Len returns the number of tracked records.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.activities)
}

// CapAndEvict trims the log to capacity, dropping the oldest records. It is
// idempotent and safe to run on a timer.
func (t *Tracker) CapAndEvict() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.trimLocked()
}

func (t *Tracker) trimLocked() {
	if overflow := len(t.activities) - t.capacity; overflow > 0 {
		t.activities = append(t.activities[:0:0], t.activities[overflow:]...)
	}
}

func application(ev source.Event) string {
	if ev.Title != "" {
		return ev.Title
	}
	return "browser"
}
