package spanz

// The package-level default tracer. Created inert at process start (no
// subscriber, so every operation is a no-op), mutated only via
// SetSubscriber, never torn down; shutdown is implicit at process exit.
// Tests should build their own engine with New/NewWithClock instead of
// mutating this one.
var defaultTracer = New()

// Default returns the process-wide tracer behind the package-level
// functions.
func Default() *Tracer {
	return defaultTracer
}

// StartSpan starts a span on the default tracer.
func StartSpan(name string, level Level, fields Fields) Span {
	return defaultTracer.Span(name, level, fields)
}

// Enter pushes an externally-created span on the default tracer.
func Enter(span Span) {
	defaultTracer.Enter(span)
}

// Exit closes a span on the default tracer.
func Exit(span Span) {
	defaultTracer.Exit(span)
}

// Emit emits an event on the default tracer.
func Emit(name string, level Level, message string, fields Fields) {
	defaultTracer.Event(name, level, message, fields)
}

// Scoped runs fn inside a span on the default tracer, guaranteeing exit on
// every path.
func Scoped(name string, level Level, fields Fields, fn func(Span) error) error {
	return defaultTracer.Scoped(name, level, fields, fn)
}

// SetSubscriber installs a subscriber on the default tracer.
func SetSubscriber(sub *Subscriber) {
	defaultTracer.SetSubscriber(sub)
}

// GetSubscriber returns the default tracer's subscriber, or nil.
func GetSubscriber() *Subscriber {
	return defaultTracer.Subscriber()
}
