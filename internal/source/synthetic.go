package source

import (
	"math/rand"
	"time"
)

// syntheticPages are the fake visits emitted when no real shell is
// connected, spanning every category.
var syntheticPages = []struct {
	url   string
	title string
}{
	{"https://github.com/kchou/attend/issues", "Issues · attend"},
	{"https://stackoverflow.com/questions/tagged/go", "Newest 'go' Questions"},
	{"https://www.coursera.org/learn/algorithms", "Algorithms | Coursera"},
	{"https://mail.google.com/mail/u/0/gmail.com", "Inbox"},
	{"https://app.slack.com/client/T01/C01", "Slack"},
	{"https://www.youtube.com/feed/subscriptions", "Subscriptions - YouTube"},
	{"https://www.reddit.com/r/programming/", "r/programming"},
	{"https://docs.google.com/document/d/1", "Quarterly report - Google Docs"},
}

// Synthetic emits fake browser visits on a fixed interval. It stands in for
// the extension/Electron shells during development and tests.
type Synthetic struct {
	events chan Event
	done   chan struct{}
}

// NewSynthetic starts a generator emitting one event per interval.
func NewSynthetic(interval time.Duration) *Synthetic {
	s := &Synthetic{
		events: make(chan Event),
		done:   make(chan struct{}),
	}
	go s.run(interval)
	return s
}

func (s *Synthetic) run(interval time.Duration) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	defer close(s.events)

	for {
		select {
		case <-s.done:
			return
		case t := <-ticker.C:
			page := syntheticPages[rng.Intn(len(syntheticPages))]
			select {
			case s.events <- Event{URL: page.url, Title: page.title, Time: t, VisitCount: 1}:
			case <-s.done:
				return
			}
		}
	}
}

// Events returns the event channel.
func (s *Synthetic) Events() <-chan Event {
	return s.events
}

// Close stops the generator.
func (s *Synthetic) Close() error {
	close(s.done)
	return nil
}
