package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kchou/attend/internal/model"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		signal   string
		wantType model.ActivityType
		wantPri  int
	}{
		{"https://github.com/kchou/attend/pulls", model.Development, 1},
		{"https://stackoverflow.com/questions/12345", model.Development, 1},
		{"http://localhost:3000/dashboard", model.Development, 1},
		{"https://www.coursera.org/learn/golang", model.Learning, 2},
		{"https://mail.google.com/gmail.com/inbox", model.Communication, 3},
		{"https://app.slack.com/client/T01", model.Communication, 3},
		{"https://www.youtube.com/watch?v=abc", model.Entertainment, 4},
		{"https://www.reddit.com/r/golang", model.Entertainment, 4},
		{"https://docs.internal.example.com/wiki", model.Work, 1},
		{"", model.Work, 1},
	}

	for _, tc := range cases {
		got := Classify(tc.signal)
		assert.Equal(t, tc.wantType, got.Type, "signal %q", tc.signal)
		assert.Equal(t, tc.wantPri, got.Priority, "signal %q", tc.signal)
	}
}

func TestClassifyCaseInsensitive(t *testing.T) {
	got := Classify("https://GitHub.com/org/repo")
	assert.Equal(t, model.Development, got.Type)
}

func TestClassifyFirstMatchWins(t *testing.T) {
	// A development keyword anywhere in the signal beats later rules.
	got := Classify("https://github.com/watch?list=youtube.com")
	assert.Equal(t, model.Development, got.Type)
}
