// Package spanz provides a minimal, primitive structured tracing core.
//
// spanz records nested spans (timed operations) and events (point-in-time
// structured records) and dispatches them synchronously to a pluggable
// Subscriber. It focuses on the in-process essentials without the complexity
// of full OpenTelemetry: an active-span stack, level-based filtering, and a
// small observer contract.
//
// Core Components:
//   - Tracer: owns the active-span stack and dispatches to the subscriber.
//   - Span: a bounded interval of work, pushed/popped on the active stack.
//   - Event: a single point-in-time record, never on the stack.
//   - Subscriber: optional callbacks for span/event lifecycle.
//
// Basic Usage:
//
//	tracer := spanz.New()
//	defer tracer.Close()
//
//	tracer.SetSubscriber(spanz.NewConsole().Subscriber(spanz.LevelInfo))
//
//	span := tracer.Span("request", spanz.LevelInfo, spanz.Fields{"user": 42})
//	defer tracer.Exit(span)
//
//	tracer.Event("cache.miss", spanz.LevelDebug, "key not found", nil)
//
// With no subscriber installed (or a subscriber exposing no callbacks) every
// operation is a cheap no-op: no IDs are generated, no fields are copied,
// and the stack is untouched.
//
// Concurrency:
//
// The active-span stack is a per-flow resource. The Tracer is internally
// synchronized so concurrent use cannot corrupt it, but spans started from
// multiple goroutines against one Tracer will interleave and produce
// meaningless parent links. Give each independent logical flow its own
// Tracer; the package-level default handle is intended for single-flow
// programs and for tests that install their own engine.
package spanz

import (
	"fmt"
	"strings"
)

// Level is an ordered severity classification used for filtering.
// Comparisons are numeric: LevelTrace < LevelDebug < ... < LevelError.
type Level int8

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
)

// valid reports whether l is one of the defined severities. An undefined
// level never passes the filtering predicate; it does not raise.
func (l Level) valid() bool {
	return l >= LevelTrace && l <= LevelError
}

// String returns the canonical upper-case name of the level.
func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "TRACE"
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return fmt.Sprintf("LEVEL(%d)", int8(l))
	}
}

// ParseLevel converts a level name to a Level, case-insensitively.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRACE":
		return LevelTrace, nil
	case "DEBUG":
		return LevelDebug, nil
	case "INFO":
		return LevelInfo, nil
	case "WARN", "WARNING":
		return LevelWarn, nil
	case "ERROR":
		return LevelError, nil
	default:
		return LevelTrace, fmt.Errorf("unknown level %q", s)
	}
}

// Fields is an unordered key-value payload attached to spans and events.
// The engine copies caller-supplied Fields when building metadata, so
// mutating the original map after the call never changes what was recorded.
type Fields map[string]any

// Clone returns a fresh copy of f. Values are copied shallowly; nil maps
// clone to nil.
func (f Fields) Clone() Fields {
	if f == nil {
		return nil
	}
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}
