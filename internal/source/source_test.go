package source

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyntheticEmitsEvents(t *testing.T) {
	s := NewSynthetic(time.Millisecond)
	defer s.Close()

	select {
	case ev, ok := <-s.Events():
		require.True(t, ok)
		assert.NotEmpty(t, ev.URL)
		assert.False(t, ev.Time.IsZero())
	case <-time.After(time.Second):
		t.Fatal("no synthetic event within a second")
	}
}

func TestSyntheticCloseStopsStream(t *testing.T) {
	s := NewSynthetic(time.Millisecond)
	require.NoError(t, s.Close())

	// The channel closes shortly after Close.
	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-s.Events():
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("events channel did not close")
		}
	}
}
