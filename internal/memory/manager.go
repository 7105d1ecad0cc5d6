// Package memory implements the adaptive memory store: per-session working
// memory, decay-weighted relevance scoring, and top-K retrieval.
package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/kchou/attend/internal/model"
	"github.com/kchou/attend/internal/store"
)

// Score blend weights: reinforcement strength, time-decay recency, and
// stated importance. Each term's contribution is capped by its weight, so
// no single term dominates retrieval rank.
const (
	strengthWeight   = 0.4
	recencyWeight    = 0.3
	importanceWeight = 0.3

	// recencyScaleSeconds is the decay time constant: a one-day-old entry
	// scores e^-1 on the recency term.
	recencyScaleSeconds = 24 * 3600

	defaultRetrievalLimit = 5
)

// sessionState is the per-session mutable state: the working memory queue
// plus the strength and last-accessed maps, keyed by entry timestamp.
type sessionState struct {
	working    *Queue
	strength   map[int64]float64
	lastAccess map[int64]time.Time
}

// Manager owns session memory state and persists entries through a Store.
type Manager struct {
	store store.Store
	log   zerolog.Logger
	wmCap int
	now   func() time.Time

	mu       sync.Mutex
	sessions map[string]*sessionState
}

// NewManager creates a memory manager. wmCap is the working memory capacity
// per session.
func NewManager(st store.Store, log zerolog.Logger, wmCap int) *Manager {
	if wmCap <= 0 {
		wmCap = 7
	}
	return &Manager{
		store:    st,
		log:      log,
		wmCap:    wmCap,
		now:      time.Now,
		sessions: make(map[string]*sessionState),
	}
}

// EnsureSession initializes the per-session state if it does not exist yet.
// Each session gets an independent working memory queue and strength map.
func (m *Manager) EnsureSession(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensureLocked(sessionID)
}

func (m *Manager) ensureLocked(sessionID string) *sessionState {
	st, ok := m.sessions[sessionID]
	if !ok {
		st = &sessionState{
			working:    NewQueue(m.wmCap),
			strength:   make(map[int64]float64),
			lastAccess: make(map[int64]time.Time),
		}
		m.sessions[sessionID] = st
	}
	return st
}

// AddMemories processes text fragments into memory entries: extract key
// concepts, infer the activity type, score emotional valence, derive a
// productivity score, persist, and push into the session's working memory.
// A failing fragment is logged and skipped; its siblings still succeed. The
// returned slice holds only the successfully processed entries.
func (m *Manager) AddMemories(ctx context.Context, sessionID string, fragments []string, importance float64) []model.MemoryEntry {
	if importance < 0 {
		importance = 0
	}
	if importance > 1 {
		importance = 1
	}
	timestamp := m.now()

	var processed []model.MemoryEntry
	for _, fragment := range fragments {
		if strings.TrimSpace(fragment) == "" {
			continue
		}

		concepts := ExtractKeyConcepts(fragment)
		activityType := InferActivityType(concepts)
		productivity := model.Weight(activityType)
		if productivity == 0 {
			productivity = 0.2
		}

		entry := model.MemoryEntry{
			Timestamp:         timestamp,
			Content:           fragment,
			Importance:        importance,
			EmotionalValence:  EmotionalValence(fragment),
			KeyConcepts:       concepts,
			ActivityType:      activityType,
			ProductivityScore: productivity,
		}

		if err := m.store.InsertMemory(ctx, sessionID, entry); err != nil {
			m.log.Error().Err(err).
				Str("session", sessionID).
				Msg("persist memory failed, skipping fragment")
			continue
		}

		m.mu.Lock()
		m.ensureLocked(sessionID).working.Push(entry)
		m.mu.Unlock()

		processed = append(processed, entry)
	}

	return processed
}

// RelevantContext merges the session's working memory with the most recent
// persisted entries, scores every candidate, and returns the top limit by
// descending score. A failing persisted read degrades to working-memory-only
// scoring instead of failing the call.
func (m *Manager) RelevantContext(ctx context.Context, sessionID string, limit int) []model.MemoryEntry {
	if limit <= 0 {
		limit = defaultRetrievalLimit
	}

	persisted, err := m.store.RecentMemories(ctx, sessionID, limit)
	if err != nil {
		m.log.Warn().Err(err).
			Str("session", sessionID).
			Msg("persisted read failed, falling back to working memory")
		persisted = nil
	}

	m.mu.Lock()
	st := m.ensureLocked(sessionID)
	working := st.working.Snapshot()

	// The persisted copy is authoritative; the working-memory copy is just
	// a cache of it.
	seen := make(map[string]bool, len(persisted))
	candidates := make([]model.MemoryEntry, 0, len(persisted)+len(working))
	for _, e := range persisted {
		seen[entryKey(e)] = true
		candidates = append(candidates, e)
	}
	for _, e := range working {
		if !seen[entryKey(e)] {
			candidates = append(candidates, e)
		}
	}

	now := m.now()
	type scored struct {
		entry model.MemoryEntry
		score float64
	}
	ranked := make([]scored, 0, len(candidates))
	for _, e := range candidates {
		ranked = append(ranked, scored{entry: e, score: m.scoreLocked(st, e, now)})
	}
	m.mu.Unlock()

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	out := make([]model.MemoryEntry, len(ranked))
	for i, r := range ranked {
		out[i] = r.entry
	}
	return out
}

// Reinforce bumps the strength of the memory created at ts within a
// session. Strength is clamped to [0, 1] so its score contribution stays
// bounded.
func (m *Manager) Reinforce(sessionID string, ts time.Time, delta float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	st := m.ensureLocked(sessionID)
	key := ts.UnixNano()
	v := st.strength[key] + delta
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	st.strength[key] = v
	st.lastAccess[key] = m.now()
}

// Recency is the time-decay term of the relevance score: 1.0 at age zero,
// strictly decreasing, e^-1 at one day.
func Recency(age time.Duration) float64 {
	return math.Exp(-age.Seconds() / recencyScaleSeconds)
}

func (m *Manager) scoreLocked(st *sessionState, e model.MemoryEntry, now time.Time) float64 {
	strength := st.strength[e.Timestamp.UnixNano()]
	recency := Recency(now.Sub(e.Timestamp))
	return strengthWeight*strength + recencyWeight*recency + importanceWeight*e.Importance
}

func entryKey(e model.MemoryEntry) string {
	return fmt.Sprintf("%d|%s", e.Timestamp.UnixNano(), e.Content)
}

// FormatContext renders entries as text lines ready to splice into an
// assistant prompt. Callers decide where the block goes; the format is just
// a header plus one line per entry.
func FormatContext(entries []model.MemoryEntry) string {
	if len(entries) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("Recent context:\n")
	for _, e := range entries {
		b.WriteString("- ")
		b.WriteString(e.Content)
		b.WriteString("\n")
	}
	return b.String()
}
