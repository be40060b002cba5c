package aerogate

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"time"
)

// Session event types carried in [Event.Type].
const (
	eventLoginSuccess     = "login_success"
	eventLoginFailure     = "login_failure"
	eventRegisterSuccess  = "register_success"
	eventRegisterFailure  = "register_failure"
	eventLogout           = "logout"
	eventSessionRestored  = "session_restored"
	eventSessionAbsent    = "session_absent"
	eventSessionInvalid   = "session_invalidated"
	eventCommitSuperseded = "commit_superseded"
)

// Event is one observable session transition or attempt. The shell and any
// other UI surface can subscribe to re-render on session changes.
type Event struct {
	Timestamp time.Time         `json:"timestamp"`
	Type      string            `json:"type"`
	Status    string            `json:"status"`
	UserEmail string            `json:"user_email,omitempty"`
	Success   bool              `json:"success"`
	Error     string            `json:"error,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// EventSink receives session events from the engine's dispatcher goroutine.
type EventSink interface {
	Emit(ctx context.Context, event Event)
}

// NoOpSink discards every event.
type NoOpSink struct{}

func (NoOpSink) Emit(context.Context, Event) {}

// ChannelSink forwards events into a buffered channel, for consumers that
// want to select on session changes.
type ChannelSink struct {
	events chan Event
}

func NewChannelSink(buffer int) *ChannelSink {
	if buffer <= 0 {
		buffer = 1
	}
	return &ChannelSink{
		events: make(chan Event, buffer),
	}
}

func (s *ChannelSink) Emit(ctx context.Context, event Event) {
	select {
	case s.events <- event:
	case <-ctx.Done():
	}
}

func (s *ChannelSink) Events() <-chan Event {
	return s.events
}

// JSONWriterSink writes one JSON object per line to an io.Writer.
type JSONWriterSink struct {
	writer io.Writer
	mu     sync.Mutex
}

func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return &JSONWriterSink{
		writer: w,
	}
}

func (s *JSONWriterSink) Emit(ctx context.Context, event Event) {
	if s == nil || s.writer == nil {
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, _ = s.writer.Write(data)
	_, _ = s.writer.Write([]byte("\n"))
}
