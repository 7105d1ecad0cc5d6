package source

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileTailsAppendedEvents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(`{"url":"https://before.example.com"}`+"\n"), 0o644))

	s, err := NewFile(path, zerolog.Nop())
	require.NoError(t, err)
	defer s.Close()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString(`{"url":"https://github.com/kchou/attend","title":"attend","lastVisitTime":1767225600000,"visitCount":2}` + "\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	select {
	case ev, ok := <-s.Events():
		require.True(t, ok)
		// Lines present before the tail started are not replayed.
		assert.Equal(t, "https://github.com/kchou/attend", ev.URL)
		assert.Equal(t, "attend", ev.Title)
		assert.Equal(t, 2, ev.VisitCount)
		assert.Equal(t, time.UnixMilli(1767225600000), ev.Time)
	case <-time.After(2 * time.Second):
		t.Fatal("no event from tailed file")
	}
}

func TestFileSkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	s, err := NewFile(path, zerolog.Nop())
	require.NoError(t, err)
	defer s.Close()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString("not json\n" + `{"url":"https://ok.example.com"}` + "\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	select {
	case ev := <-s.Events():
		assert.Equal(t, "https://ok.example.com", ev.URL)
	case <-time.After(2 * time.Second):
		t.Fatal("valid line after malformed one was not delivered")
	}
}
