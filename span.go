package spanz

import "time"

// Metadata is the descriptive record attached to every span and event.
// It is built once by the engine and never modified afterwards.
//
//nolint:govet // Field order matches JSON serialization order
type Metadata struct {
	Fields    Fields    `json:"fields,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Name      string    `json:"name,omitempty"`
	Parent    string    `json:"parent,omitempty"`
	Level     Level     `json:"level"`
}

// Span is a bounded unit of work. It is created at start-of-operation,
// lives on the active-span stack until exited, and remains an inert value
// afterwards: callers may still inspect it (for example to compute a
// duration from Meta.Timestamp) but it is no longer "current".
//
// Spans are plain values; do not modify one from multiple goroutines.
type Span struct {
	Meta Metadata `json:"meta"`
	ID   string   `json:"id"`
}

// Noop reports whether s is the inert placeholder returned when filtering
// rejected the span. A placeholder carries the requested name and level but
// no ID and a zero timestamp; Enter and Exit guarantee it stays a no-op.
func (s Span) Noop() bool {
	return s.ID == ""
}

// Event is a single point-in-time record. It is created and dispatched
// atomically and has no lifecycle beyond the one OnEvent call.
type Event struct {
	Meta    Metadata `json:"meta"`
	ID      string   `json:"id"`
	Message string   `json:"message,omitempty"`
}
