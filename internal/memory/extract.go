package memory

import (
	"regexp"
	"strings"

	"github.com/kchou/attend/internal/model"
)

// maxKeyConcepts bounds the bag-of-words summary per fragment.
const maxKeyConcepts = 5

var nonWord = regexp.MustCompile(`\W+`)

var stopWords = map[string]bool{
	"the": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true,
}

// activityPatterns maps each activity type to the keywords that suggest it.
// Checked in fixed order so tie-breaking is deterministic.
var activityPatterns = []struct {
	activityType model.ActivityType
	keywords     []string
}{
	{model.Development, []string{"code", "programming", "debug", "git", "dev"}},
	{model.Learning, []string{"learn", "study", "course", "tutorial", "documentation"}},
	{model.Communication, []string{"email", "chat", "meeting", "slack", "teams"}},
	{model.Entertainment, []string{"youtube", "social", "game", "video", "browse"}},
	{model.Work, []string{"project", "task", "deadline", "report", "review"}},
}

var positiveWords = []string{"success", "achieve", "productive", "focus", "complete"}
var negativeWords = []string{"distract", "procrastinate", "waste", "delay", "fail"}

// ExtractKeyConcepts tokenizes text on non-word boundaries, drops stop words
// and short tokens, and returns at most maxKeyConcepts unique tokens. This
// is a bounded deterministic bag-of-words summary, not NLP.
func ExtractKeyConcepts(text string) []string {
	words := nonWord.Split(strings.ToLower(text), -1)

	seen := map[string]bool{}
	var concepts []string
	for _, w := range words {
		if len(w) <= 3 || stopWords[w] || seen[w] {
			continue
		}
		seen[w] = true
		concepts = append(concepts, w)
		if len(concepts) == maxKeyConcepts {
			break
		}
	}
	return concepts
}

// InferActivityType picks the activity type whose keywords match the most
// key concepts. Work is the default on no match or a tie.
func InferActivityType(concepts []string) model.ActivityType {
	maxMatches := 0
	inferred := model.Work

	for _, p := range activityPatterns {
		matches := 0
		for _, concept := range concepts {
			for _, kw := range p.keywords {
				if strings.Contains(concept, kw) {
					matches++
					break
				}
			}
		}
		if matches > maxMatches {
			maxMatches = matches
			inferred = p.activityType
		}
	}
	return inferred
}

// EmotionalValence scores text in (-1, 1) from small fixed keyword lists.
// The +1 in the denominator avoids division by zero and dampens
// single-keyword extremes.
func EmotionalValence(text string) float64 {
	lower := strings.ToLower(text)

	var pos, neg int
	for _, w := range positiveWords {
		if strings.Contains(lower, w) {
			pos++
		}
	}
	for _, w := range negativeWords {
		if strings.Contains(lower, w) {
			neg++
		}
	}
	return float64(pos-neg) / float64(pos+neg+1)
}
