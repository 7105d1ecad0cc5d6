package source

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// wireEvent is the JSON-lines format the extension/Electron shells append
// to the events file. lastVisitTime is epoch milliseconds.
type wireEvent struct {
	URL           string `json:"url"`
	Title         string `json:"title"`
	LastVisitTime int64  `json:"lastVisitTime"`
	TypedCount    int    `json:"typedCount"`
	VisitCount    int    `json:"visitCount"`
}

// File tails a JSON-lines events file written by an external shell. Only
// lines appended after the source starts are delivered.
type File struct {
	f        *os.File
	watcher  *fsnotify.Watcher
	log      zerolog.Logger
	events   chan Event
	done     chan struct{}
	leftover []byte
}

// NewFile starts tailing the given events file.
func NewFile(path string, log zerolog.Logger) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open events file: %w", err)
	}
	if _, err := f.Seek(0, io.SeekEnd); err != nil {
		f.Close()
		return nil, fmt.Errorf("seek events file: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(path); err != nil {
		watcher.Close()
		f.Close()
		return nil, fmt.Errorf("watch events file: %w", err)
	}

	s := &File{
		f:       f,
		watcher: watcher,
		log:     log,
		events:  make(chan Event),
		done:    make(chan struct{}),
	}
	go s.run()
	return s, nil
}

func (s *File) run() {
	defer close(s.events)
	defer s.f.Close()

	for {
		select {
		case <-s.done:
			return
		case ev, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&fsnotify.Write == 0 {
				continue
			}
			s.drain()
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.log.Warn().Err(err).Msg("events file watch error")
		}
	}
}

// drain reads everything appended since the last read and emits one event
// per complete line. A trailing partial line is kept for the next write.
func (s *File) drain() {
	data, err := io.ReadAll(s.f)
	if err != nil {
		s.log.Warn().Err(err).Msg("read events file")
		return
	}
	data = append(s.leftover, data...)

	for {
		idx := bytes.IndexByte(data, '\n')
		if idx < 0 {
			break
		}
		line := bytes.TrimSpace(data[:idx])
		data = data[idx+1:]
		if len(line) == 0 {
			continue
		}

		var w wireEvent
		if err := json.Unmarshal(line, &w); err != nil {
			s.log.Warn().Err(err).Msg("malformed event line, skipping")
			continue
		}
		ts := time.UnixMilli(w.LastVisitTime)
		if w.LastVisitTime == 0 {
			ts = time.Now()
		}
		select {
		case s.events <- Event{
			URL:        w.URL,
			Title:      w.Title,
			Time:       ts,
			TypedCount: w.TypedCount,
			VisitCount: w.VisitCount,
		}:
		case <-s.done:
			return
		}
	}
	s.leftover = data
}

// Events returns the event channel.
func (s *File) Events() <-chan Event {
	return s.events
}

// Close stops tailing.
func (s *File) Close() error {
	close(s.done)
	return s.watcher.Close()
}
