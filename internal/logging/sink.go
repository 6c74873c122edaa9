// pattern: Imperative Shell

package logging

import (
	"errors"
	"sync"
)

var errSinkClosed = errors.New("write to closed channel sink")

// ChannelSink is a zapcore.WriteSyncer that decodes each JSON line and
// queues it for the log panel. It never blocks: when the buffer is full the
// oldest entry is dropped.
type ChannelSink struct {
	entries chan LogEntry
	mu      sync.Mutex
	closed  bool
}

// NewChannelSink returns a sink buffering up to size entries.
func NewChannelSink(size int) *ChannelSink {
	return &ChannelSink{entries: make(chan LogEntry, size)}
}

// Write implements io.Writer. Lines that do not decode are accepted and
// discarded so logging never fails because of the panel.
func (s *ChannelSink) Write(p []byte) (int, error) {
	entry, err := ParseLine(p)
	if err != nil {
		return len(p), nil
	}
	if !s.Send(entry) {
		return 0, errSinkClosed
	}
	return len(p), nil
}

// Send queues an entry, dropping the oldest when full. It reports false
// once the sink is closed.
func (s *ChannelSink) Send(entry LogEntry) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}
	select {
	case s.entries <- entry:
		return true
	default:
	}
	select {
	case <-s.entries:
	default:
	}
	select {
	case s.entries <- entry:
	default:
	}
	return true
}

// Sync implements zapcore.WriteSyncer.
func (s *ChannelSink) Sync() error { return nil }

// Close closes the entries channel. Safe to call more than once.
func (s *ChannelSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		s.closed = true
		close(s.entries)
	}
	return nil
}

// Entries returns the queue the log panel drains.
func (s *ChannelSink) Entries() <-chan LogEntry {
	return s.entries
}

// Drain returns up to limit queued entries without blocking.
func (s *ChannelSink) Drain(limit int) []LogEntry {
	return drain(s.entries, limit)
}

func drain(ch <-chan LogEntry, limit int) []LogEntry {
	var out []LogEntry
	for len(out) < limit {
		select {
		case e, ok := <-ch:
			if !ok {
				return out
			}
			out = append(out, e)
		default:
			return out
		}
	}
	return out
}
