// Package model defines the core activity and memory data types.
package model

import "time"

// ActivityType labels what kind of activity a signal or memory represents.
type ActivityType string

const (
	Development   ActivityType = "development"
	Learning      ActivityType = "learning"
	Communication ActivityType = "communication"
	Entertainment ActivityType = "entertainment"
	Work          ActivityType = "work"
)

// weights are the productivity multipliers per activity type. They drive
// both the productivity metrics and the productivity score stored on
// memories.
var weights = map[ActivityType]float64{
	Work:          1.0,
	Development:   1.0,
	Learning:      0.8,
	Communication: 0.6,
	Entertainment: 0.2,
}

// Weight returns the productivity weight for an activity type, 0 for an
// unknown type.
func Weight(t ActivityType) float64 {
	return weights[t]
}

// Category is the classification of a raw activity signal.
type Category struct {
	Type     ActivityType `json:"type"`
	Priority int          `json:"priority"`
}

// ActivityRecord is one tracked window/tab activity. The last record in a
// session's log stays mutable until the next record arrives and its
// TimeSpent is backfilled; every earlier record is final.
type ActivityRecord struct {
	Timestamp         time.Time     `json:"timestamp"`
	Application       string        `json:"application"`
	URL               string        `json:"url"`
	TimeSpent         time.Duration `json:"time_spent"`
	Category          Category      `json:"category"`
	ProductivityScore float64       `json:"productivity_score"`
}

// MemoryEntry is one processed text fragment. Entries are immutable after
// creation. Importance lies in [0,1], EmotionalValence in (-1,1).
type MemoryEntry struct {
	Timestamp         time.Time    `json:"timestamp"`
	Content           string       `json:"content"`
	Importance        float64      `json:"importance"`
	EmotionalValence  float64      `json:"emotional_valence"`
	KeyConcepts       []string     `json:"key_concepts"`
	ActivityType      ActivityType `json:"activity_type,omitempty"`
	ProductivityScore float64      `json:"productivity_score,omitempty"`
}

// SessionContext captures when a session was started.
type SessionContext struct {
	TimeOfDay string `json:"time_of_day"`
	DayOfWeek string `json:"day_of_week"`
}

// Session ties memories to a user. A session is scoped to exactly one user;
// a user may have any number of concurrent sessions.
type Session struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	StartTime time.Time      `json:"start_time"`
	Context   SessionContext `json:"context"`
}

// UserProfile is the persisted identity a session belongs to.
type UserProfile struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
}

// CurrentActivity describes the most recent activity in an analysis window.
type CurrentActivity struct {
	Name           string `json:"name"`
	IsUnproductive bool   `json:"is_unproductive"`
}

// ProductivityInsights is the derived result of one analysis pass. It is
// recomputed from scratch every tick and never persisted.
type ProductivityInsights struct {
	RequiresIntervention bool            `json:"requires_intervention"`
	CurrentActivity      CurrentActivity `json:"current_activity"`
	TimeSpent            string          `json:"time_spent"`
	RecommendedActivity  string          `json:"recommended_activity"`
}
