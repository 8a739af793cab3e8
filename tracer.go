package spanz

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/zoobzio/clockz"
)

// Tracer is the trace engine: it owns the active-span stack, builds
// metadata, enforces level filtering, and dispatches to the installed
// Subscriber.
//
// The Tracer is internally synchronized, but the active-span stack models a
// single logical flow of control: share one Tracer across goroutines and
// parent links become meaningless. Give each independent flow its own
// instance.
//
//nolint:govet // Field order optimized for readability over memory
type Tracer struct {
	subscriber atomic.Pointer[Subscriber]
	panicHook  func(op string, r any)
	ids        *IDPool
	clock      clockz.Clock
	idsOnce    sync.Once
	mu         sync.Mutex
	stack      []Span
}

// New creates a new tracer with no subscriber installed. Every operation is
// a no-op until SetSubscriber is called.
// Uses the real clock for production behavior.
func New() *Tracer {
	return &Tracer{clock: clockz.RealClock}
}

// NewWithClock creates a new tracer with the specified clock.
// Enables clock injection for deterministic testing.
func NewWithClock(clock clockz.Clock) *Tracer {
	return &Tracer{clock: clock}
}

// SetSubscriber atomically replaces the tracer's subscriber. Passing nil
// detaches the current one. Records already dispatched are unaffected; only
// subsequent calls see the new subscriber.
func (t *Tracer) SetSubscriber(sub *Subscriber) {
	t.subscriber.Store(sub)
}

// Subscriber returns the currently installed subscriber, or nil.
func (t *Tracer) Subscriber() *Subscriber {
	return t.subscriber.Load()
}

// SetPanicHook sets a function called when a subscriber callback panics.
// With a hook installed the engine recovers the panic, reports it, and
// continues; without one the panic propagates to the caller after the
// engine's own stack maintenance has run. Set the hook before tracing
// begins; it is not synchronized against concurrent dispatch.
func (t *Tracer) SetPanicHook(hook func(op string, r any)) {
	t.panicHook = hook
}

// Span starts a new span. If the level is filtered out, or no subscriber
// with callbacks is installed, it returns an inert placeholder (empty ID,
// zero timestamp) without generating IDs, copying fields, or touching the
// stack.
//
// An admitted span captures the current stack top as its parent, asks the
// subscriber's NewSpan capability for the concrete representation (or
// allocates one itself), notifies OnEnter, and is pushed as the new current
// span. Nested calls each capture whatever is topmost at call time.
func (t *Tracer) Span(name string, level Level, fields Fields) Span {
	sub := t.subscriber.Load()
	if !sub.admits(level) {
		return Span{Meta: Metadata{Name: name, Level: level}}
	}

	span := t.makeSpan(sub, t.buildMeta(name, level, fields))
	if sub.OnEnter != nil {
		t.notify("OnEnter", func() { sub.OnEnter(span) })
	}
	t.push(span)
	return span
}

// Enter pushes an externally-created span as the current span, notifying
// OnEnter first. Metadata is not re-derived; the span is attached as-is.
// Placeholder spans are always no-ops, as are spans whose level the current
// subscriber filters out. Entering a span again after it exited is legal
// and simply pushes it fresh.
func (t *Tracer) Enter(span Span) {
	if span.Noop() {
		return
	}
	sub := t.subscriber.Load()
	if !sub.admits(span.Meta.Level) {
		return
	}
	if sub.OnEnter != nil {
		t.notify("OnEnter", func() { sub.OnEnter(span) })
	}
	t.push(span)
}

// Exit closes a span: it notifies OnExit, then pops the stack only if the
// given span is the current top. Exiting a non-top span still notifies the
// subscriber but leaves the stack untouched, so out-of-order exits from
// abnormal control flow never corrupt unrelated open spans. Placeholder
// spans are always no-ops.
func (t *Tracer) Exit(span Span) {
	if span.Noop() {
		return
	}
	sub := t.subscriber.Load()
	if !sub.admits(span.Meta.Level) {
		return
	}
	// The pop must run even if the subscriber panics.
	defer t.popIfTop(span.ID)
	if sub.OnExit != nil {
		t.notify("OnExit", func() { sub.OnExit(span) })
	}
}

// Event emits a point-in-time record. Metadata is built the same way as for
// a span (parent = current top, fresh timestamp, copied fields) but the
// stack is never touched. Filtered events, and events with no OnEvent
// listener, cost nothing.
func (t *Tracer) Event(name string, level Level, message string, fields Fields) {
	sub := t.subscriber.Load()
	if !sub.admits(level) || sub.OnEvent == nil {
		return
	}
	event := Event{
		ID:      t.newID(),
		Meta:    t.buildMeta(name, level, fields),
		Message: message,
	}
	t.notify("OnEvent", func() { sub.OnEvent(event) })
}

// Scoped runs fn inside a span, guaranteeing Exit on every path: normal
// return, error return, and panic.
func (t *Tracer) Scoped(name string, level Level, fields Fields, fn func(Span) error) error {
	span := t.Span(name, level, fields)
	defer t.Exit(span)
	return fn(span)
}

// Current returns the topmost active span, if any.
func (t *Tracer) Current() (Span, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.stack) == 0 {
		return Span{}, false
	}
	return t.stack[len(t.stack)-1], true
}

// Depth returns the number of currently open spans on the stack.
func (t *Tracer) Depth() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.stack)
}

// Close detaches the subscriber and releases the ID pool. The tracer
// remains usable as a no-op handle afterwards.
func (t *Tracer) Close() {
	t.subscriber.Store(nil)
	if t.ids != nil {
		t.ids.Close()
	}
}

// buildMeta assembles the metadata for a new span or event: parent from the
// current stack top, a fresh timestamp, and a copy of the caller's fields.
func (t *Tracer) buildMeta(name string, level Level, fields Fields) Metadata {
	var parent string
	if top, ok := t.Current(); ok {
		parent = top.ID
	}
	return Metadata{
		Name:      name,
		Level:     level,
		Timestamp: t.clock.Now(),
		Parent:    parent,
		Fields:    fields.Clone(),
	}
}

// makeSpan builds the concrete span, delegating to the subscriber's NewSpan
// capability when present. A panicking NewSpan is reported through the
// panic hook and the engine falls back to its own allocation; with no hook
// the panic propagates.
func (t *Tracer) makeSpan(sub *Subscriber, meta Metadata) (span Span) {
	if sub.NewSpan == nil {
		return Span{ID: t.newID(), Meta: meta}
	}
	defer func() {
		if r := recover(); r != nil {
			if t.panicHook == nil {
				panic(r)
			}
			t.panicHook("NewSpan", r)
			span = Span{ID: t.newID(), Meta: meta}
		}
	}()
	return sub.NewSpan(meta)
}

// notify invokes one subscriber callback with panic isolation.
func (t *Tracer) notify(op string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			if t.panicHook == nil {
				panic(r)
			}
			t.panicHook(op, r)
		}
	}()
	fn()
}

func (t *Tracer) push(span Span) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stack = append(t.stack, span)
}

// popIfTop removes the top of the stack only when its ID matches. Exits of
// non-top spans leave the stack untouched.
func (t *Tracer) popIfTop(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if n := len(t.stack); n > 0 && t.stack[n-1].ID == id {
		t.stack = t.stack[:n-1]
	}
}

// newID returns a process-unique ID, lazily building the pool on first use.
func (t *Tracer) newID() string {
	t.idsOnce.Do(func() {
		// Pool size scales with CPUs to balance refill contention.
		t.ids = NewIDPool(runtime.NumCPU()*64, newRawID)
	})
	return t.ids.Get()
}
