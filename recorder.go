package spanz

import (
	"sync"
	"sync/atomic"
)

// Recorder is a subscriber layer that buffers completed spans and events in
// memory for batch inspection. Records are deep-copied on capture and again
// on export, so neither the engine nor the caller can mutate what was
// recorded. When a buffer reaches its cap the record is dropped and counted
// rather than growing without bound.
//
// Safe for concurrent use by multiple goroutines.
type Recorder struct {
	spans   []Span
	events  []Event
	limit   int
	dropped atomic.Int64
	mu      sync.Mutex
}

// DefaultRecorderLimit caps each Recorder buffer unless overridden.
const DefaultRecorderLimit = 4096

// NewRecorder creates a recorder capping each buffer at limit records;
// limit <= 0 uses DefaultRecorderLimit.
func NewRecorder(limit int) *Recorder {
	if limit <= 0 {
		limit = DefaultRecorderLimit
	}
	return &Recorder{limit: limit}
}

// Subscriber returns the subscriber layer for this recorder. Spans are
// captured when they exit (complete), events as they are emitted.
func (r *Recorder) Subscriber() *Subscriber {
	return &Subscriber{
		OnExit:  r.collectSpan,
		OnEvent: r.collectEvent,
	}
}

func (r *Recorder) collectSpan(span Span) {
	span.Meta.Fields = span.Meta.Fields.Clone()

	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.spans) >= r.limit {
		r.dropped.Add(1)
		return
	}
	r.spans = append(r.spans, span)
}

func (r *Recorder) collectEvent(event Event) {
	event.Meta.Fields = event.Meta.Fields.Clone()

	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) >= r.limit {
		r.dropped.Add(1)
		return
	}
	r.events = append(r.events, event)
}

// Spans returns all buffered spans and clears the span buffer. The returned
// slice is safe to modify without affecting the recorder.
func (r *Recorder) Spans() []Span {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.spans) == 0 {
		return nil
	}
	out := make([]Span, len(r.spans))
	for i, s := range r.spans {
		s.Meta.Fields = s.Meta.Fields.Clone()
		out[i] = s
	}
	r.spans = r.spans[:0]
	return out
}

// Events returns all buffered events and clears the event buffer. The
// returned slice is safe to modify without affecting the recorder.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.events) == 0 {
		return nil
	}
	out := make([]Event, len(r.events))
	for i, e := range r.events {
		e.Meta.Fields = e.Meta.Fields.Clone()
		out[i] = e
	}
	r.events = r.events[:0]
	return out
}

// Count returns the number of currently buffered spans plus events.
func (r *Recorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.spans) + len(r.events)
}

// DroppedCount returns the total number of records dropped at the cap.
func (r *Recorder) DroppedCount() int64 {
	return r.dropped.Load()
}

// Reset clears both buffers and the drop counter.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.spans = r.spans[:0]
	r.events = r.events[:0]
	r.dropped.Store(0)
}
