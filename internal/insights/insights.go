// Package insights derives productivity metrics and intervention decisions
// from recent activity.
package insights

import (
	"fmt"
	"time"

	"github.com/kchou/attend/internal/model"
)

// Productivity weight cutoffs: at or above productiveCutoff an activity
// counts as productive time, at or below unproductiveCutoff it counts as
// unproductive time and as a distraction.
const (
	productiveCutoff   = 0.8
	unproductiveCutoff = 0.2
)

// Thresholds are the tunable knobs of the intervention heuristic. The
// defaults mirror common pomodoro-style numbers; none carry deeper
// semantics.
type Thresholds struct {
	// Window is the trailing analysis window.
	Window time.Duration
	// FocusSession is the minimum duration for a record to count as a
	// focused session.
	FocusSession time.Duration
	// Intervention is the minimum current unproductive stretch that alone
	// justifies intervening.
	Intervention time.Duration
	// DistractionLimit is the distraction count in the window that alone
	// justifies intervening.
	DistractionLimit int
	// BreakAfterFocused is the focused-session count after which a break is
	// recommended.
	BreakAfterFocused int
}

// DefaultThresholds returns the standard knob settings: 1h window, 25m
// focus sessions, 15m intervention stretch, 5 distractions, break after 4
// focused sessions.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Window:            time.Hour,
		FocusSession:      25 * time.Minute,
		Intervention:      15 * time.Minute,
		DistractionLimit:  5,
		BreakAfterFocused: 4,
	}
}

// metrics are the rolling totals over one analysis window.
type metrics struct {
	productiveTime   time.Duration
	unproductiveTime time.Duration
	focusedSessions  int
	distractions     int
}

// Analyzer computes ProductivityInsights over an activity log.
type Analyzer struct {
	thresholds Thresholds
	now        func() time.Time
}

// New creates an analyzer with the given thresholds.
func New(th Thresholds) *Analyzer {
	if th.Window <= 0 {
		th = DefaultThresholds()
	}
	return &Analyzer{thresholds: th, now: time.Now}
}

// Analyze derives insights from the trailing window of the given
// activities. It never fails: missing data degrades to neutral defaults.
func (a *Analyzer) Analyze(activities []model.ActivityRecord) model.ProductivityInsights {
	now := a.now()

	recent := a.windowFilter(activities, now)
	if len(recent) == 0 {
		return defaultInsights()
	}

	m := a.calculateMetrics(recent)
	current := recent[len(recent)-1]

	return model.ProductivityInsights{
		RequiresIntervention: a.shouldIntervene(current, m),
		CurrentActivity: model.CurrentActivity{
			Name:           current.Application,
			IsUnproductive: isUnproductive(current),
		},
		TimeSpent:           FormatTimeSpent(current.TimeSpent),
		RecommendedActivity: a.recommend(recent, m, now),
	}
}

func (a *Analyzer) windowFilter(activities []model.ActivityRecord, now time.Time) []model.ActivityRecord {
	cutoff := now.Add(-a.thresholds.Window)
	var recent []model.ActivityRecord
	for _, act := range activities {
		if act.Timestamp.After(cutoff) {
			recent = append(recent, act)
		}
	}
	return recent
}

func (a *Analyzer) calculateMetrics(activities []model.ActivityRecord) metrics {
	var m metrics
	for _, act := range activities {
		w := model.Weight(act.Category.Type)
		if w >= productiveCutoff {
			m.productiveTime += act.TimeSpent
		}
		if w <= unproductiveCutoff {
			m.unproductiveTime += act.TimeSpent
			m.distractions++
		}
		if act.TimeSpent >= a.thresholds.FocusSession {
			m.focusedSessions++
		}
	}
	return m
}

// shouldIntervene is a two-signal OR-gate on an unproductive current
// activity: either one long unproductive stretch, or frequent short
// distractions. Each alone is sufficient.
func (a *Analyzer) shouldIntervene(current model.ActivityRecord, m metrics) bool {
	if !isUnproductive(current) {
		return false
	}
	longStretch := current.TimeSpent >= a.thresholds.Intervention
	frequentDistractions := m.distractions >= a.thresholds.DistractionLimit
	return longStretch || frequentDistractions
}

func isUnproductive(act model.ActivityRecord) bool {
	return model.Weight(act.Category.Type) <= unproductiveCutoff
}

func (a *Analyzer) recommend(activities []model.ActivityRecord, m metrics, now time.Time) string {
	// Been unproductive: point back at the most recent productive activity.
	if m.unproductiveTime > m.productiveTime {
		for i := len(activities) - 1; i >= 0; i-- {
			if model.Weight(activities[i].Category.Type) >= productiveCutoff {
				return activities[i].Application
			}
		}
	}

	// Long focused run: time for a break.
	if m.focusedSessions >= a.thresholds.BreakAfterFocused {
		return "taking a short break"
	}

	switch hour := now.Hour(); {
	case hour < 12:
		return "planning your day"
	case hour < 15:
		return "focused work session"
	case hour < 18:
		return "learning something new"
	default:
		return "reviewing today's progress"
	}
}

func defaultInsights() model.ProductivityInsights {
	return model.ProductivityInsights{
		RequiresIntervention: false,
		CurrentActivity: model.CurrentActivity{
			Name:           "No activity",
			IsUnproductive: false,
		},
		TimeSpent:           "0m",
		RecommendedActivity: "starting your day",
	}
}

// FormatTimeSpent renders a duration as "{h}h {m}m" past an hour, "{m}m"
// below it.
func FormatTimeSpent(d time.Duration) string {
	minutes := int(d.Minutes())
	hours := minutes / 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes%60)
	}
	return fmt.Sprintf("%dm", minutes)
}
