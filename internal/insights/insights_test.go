package insights

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kchou/attend/internal/model"
)

func newTestAnalyzer(now time.Time) *Analyzer {
	a := New(DefaultThresholds())
	a.now = func() time.Time { return now }
	return a
}

func activity(ts time.Time, app string, t model.ActivityType, spent time.Duration) model.ActivityRecord {
	return model.ActivityRecord{
		Timestamp:         ts,
		Application:       app,
		Category:          model.Category{Type: t},
		TimeSpent:         spent,
		ProductivityScore: model.Weight(t),
	}
}

func TestAnalyzeEmpty(t *testing.T) {
	a := newTestAnalyzer(time.Now())

	got := a.Analyze(nil)
	assert.False(t, got.RequiresIntervention)
	assert.Equal(t, "No activity", got.CurrentActivity.Name)
	assert.Equal(t, "0m", got.TimeSpent)
	assert.Equal(t, "starting your day", got.RecommendedActivity)
}

func TestAnalyzeIgnoresActivitiesOutsideWindow(t *testing.T) {
	now := time.Now()
	a := newTestAnalyzer(now)

	old := activity(now.Add(-2*time.Hour), "editor", model.Development, 30*time.Minute)
	got := a.Analyze([]model.ActivityRecord{old})
	assert.Equal(t, "No activity", got.CurrentActivity.Name)
}

func TestInterventionLongUnproductiveStretch(t *testing.T) {
	now := time.Now()
	a := newTestAnalyzer(now)

	// A single 16-minute entertainment record crosses the 15m threshold.
	got := a.Analyze([]model.ActivityRecord{
		activity(now.Add(-16*time.Minute), "X", model.Entertainment, 16*time.Minute),
	})
	assert.True(t, got.RequiresIntervention)
	assert.True(t, got.CurrentActivity.IsUnproductive)
	assert.Equal(t, "16m", got.TimeSpent)
}

func TestInterventionFrequentDistractions(t *testing.T) {
	now := time.Now()
	a := newTestAnalyzer(now)

	// Five short distractions plus a short unproductive current activity.
	var acts []model.ActivityRecord
	for i := 0; i < 5; i++ {
		acts = append(acts, activity(now.Add(time.Duration(-10+i)*time.Minute),
			"feed", model.Entertainment, time.Minute))
	}
	got := a.Analyze(acts)
	assert.True(t, got.RequiresIntervention)
}

func TestNoInterventionWhenCurrentProductive(t *testing.T) {
	now := time.Now()
	a := newTestAnalyzer(now)

	acts := []model.ActivityRecord{
		activity(now.Add(-40*time.Minute), "feed", model.Entertainment, 20*time.Minute),
		activity(now.Add(-20*time.Minute), "editor", model.Development, 20*time.Minute),
	}
	got := a.Analyze(acts)
	assert.False(t, got.RequiresIntervention)
	assert.False(t, got.CurrentActivity.IsUnproductive)
}

func TestNoInterventionShortStretchFewDistractions(t *testing.T) {
	now := time.Now()
	a := newTestAnalyzer(now)

	got := a.Analyze([]model.ActivityRecord{
		activity(now.Add(-5*time.Minute), "feed", model.Entertainment, 5*time.Minute),
	})
	assert.False(t, got.RequiresIntervention)
}

func TestRecommendLastProductiveActivity(t *testing.T) {
	now := time.Now()
	a := newTestAnalyzer(now)

	acts := []model.ActivityRecord{
		activity(now.Add(-50*time.Minute), "editor", model.Development, 10*time.Minute),
		activity(now.Add(-40*time.Minute), "terminal", model.Work, 5*time.Minute),
		activity(now.Add(-30*time.Minute), "feed", model.Entertainment, 30*time.Minute),
	}
	got := a.Analyze(acts)
	// More unproductive than productive time: recommend the most recent
	// productive application, searched newest to oldest.
	assert.Equal(t, "terminal", got.RecommendedActivity)
}

func TestRecommendBreakAfterFocusedSessions(t *testing.T) {
	now := time.Now()
	a := newTestAnalyzer(now)

	var acts []model.ActivityRecord
	for i := 0; i < 4; i++ {
		acts = append(acts, activity(now.Add(time.Duration(-50+i*10)*time.Minute),
			"editor", model.Development, 25*time.Minute))
	}
	got := a.Analyze(acts)
	assert.Equal(t, "taking a short break", got.RecommendedActivity)
}

func TestRecommendTimeOfDay(t *testing.T) {
	cases := []struct {
		hour int
		want string
	}{
		{9, "planning your day"},
		{13, "focused work session"},
		{16, "learning something new"},
		{20, "reviewing today's progress"},
	}
	for _, tc := range cases {
		now := time.Date(2026, 3, 2, tc.hour, 30, 0, 0, time.Local)
		a := newTestAnalyzer(now)
		got := a.Analyze([]model.ActivityRecord{
			activity(now.Add(-10*time.Minute), "editor", model.Development, 10*time.Minute),
		})
		assert.Equal(t, tc.want, got.RecommendedActivity, "hour %d", tc.hour)
	}
}

func TestFormatTimeSpent(t *testing.T) {
	assert.Equal(t, "2h 5m", FormatTimeSpent(125*time.Minute))
	assert.Equal(t, "40m", FormatTimeSpent(40*time.Minute))
	assert.Equal(t, "0m", FormatTimeSpent(30*time.Second))
	assert.Equal(t, "1h 0m", FormatTimeSpent(time.Hour))
}
