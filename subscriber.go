package spanz

// Subscriber is the observer contract. Every callback is optional; a nil
// handle means "not interested". MinLevel defaults to LevelTrace, so the
// zero value of the field admits everything.
//
// A subscriber exposing no callbacks at all is inert even when MinLevel
// would admit the level: the engine treats "nobody is listening" and
// "filtered out" the same way and does no work for either. Set at least one
// callback for MinLevel to matter.
//
// NewSpan, when set, produces the concrete Span for the prepared Metadata,
// letting an observer attach its own representation; when nil the engine
// allocates {ID: newID(), Meta: metadata} itself.
//
// Callbacks are invoked synchronously on the caller's goroutine and are
// expected to be fast; a slow callback stalls the traced operation.
type Subscriber struct {
	NewSpan  func(meta Metadata) Span
	OnEnter  func(span Span)
	OnExit   func(span Span)
	OnEvent  func(event Event)
	MinLevel Level
}

// listening reports whether s exposes at least one callback.
func (s *Subscriber) listening() bool {
	return s.NewSpan != nil || s.OnEnter != nil || s.OnExit != nil || s.OnEvent != nil
}

// admits is the filtering predicate: the level must be defined, at or above
// the subscriber's minimum, and the subscriber must be listening.
func (s *Subscriber) admits(level Level) bool {
	return s != nil && level.valid() && level >= s.MinLevel && s.listening()
}
