// Package classify maps raw activity signals (URLs, window titles) to
// activity categories.
package classify

import (
	"strings"

	"github.com/kchou/attend/internal/model"
)

// rule is one classification rule: if the signal contains any keyword, the
// category applies.
type rule struct {
	category model.Category
	keywords []string
}

// rules are checked top to bottom; the first match wins. Keyword sets are
// disjoint, so ordering only matters relative to the default.
var rules = []rule{
	{model.Category{Type: model.Development, Priority: 1}, []string{"github.com", "stackoverflow.com", "localhost"}},
	{model.Category{Type: model.Learning, Priority: 2}, []string{"coursera.org", "udemy.com", "pluralsight.com"}},
	{model.Category{Type: model.Communication, Priority: 3}, []string{"gmail.com", "slack.com", "teams.microsoft.com"}},
	{model.Category{Type: model.Entertainment, Priority: 4}, []string{"youtube.com", "netflix.com", "reddit.com"}},
}

// defaultCategory is the conservative fallback for unrecognized signals. It
// carries full productivity weight, so an unknown site never triggers an
// unproductive flag.
var defaultCategory = model.Category{Type: model.Work, Priority: 1}

// Classify returns the category for a raw signal (URL or window title).
// Pure and deterministic: same input, same output, no side effects.
func Classify(signal string) model.Category {
	lower := strings.ToLower(signal)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.category
			}
		}
	}
	return defaultCategory
}
