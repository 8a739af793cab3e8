package spanz

// Builder composes an ordered list of subscriber layers into one merged
// Subscriber and installs it. Every callback fans out, in order, to every
// layer that implements it; NewSpan comes from the first layer that
// implements it. Layers with their own MinLevel are skipped for records
// below it, and predicates added with WithFilter drop records before any
// fan-out.
//
//	spanz.NewBuilder().
//		With(console.Subscriber(spanz.LevelInfo)).
//		With(recorder.Subscriber()).
//		WithMinLevel(spanz.LevelDebug).
//		Install(nil) // nil installs into the default tracer
type Builder struct {
	layers   []*Subscriber
	filters  []func(Metadata) bool
	minLevel Level
}

// NewBuilder creates an empty builder. With no layers the built subscriber
// has no callbacks and is therefore inert.
func NewBuilder() *Builder {
	return &Builder{}
}

// With appends subscriber layers. Nil layers are ignored.
func (b *Builder) With(layers ...*Subscriber) *Builder {
	for _, l := range layers {
		if l != nil {
			b.layers = append(b.layers, l)
		}
	}
	return b
}

// WithMinLevel sets the overall minimum level of the merged subscriber.
func (b *Builder) WithMinLevel(level Level) *Builder {
	b.minLevel = level
	return b
}

// WithFilter adds a predicate consulted before fan-out; returning false
// drops the record for every layer. Multiple predicates must all pass.
func (b *Builder) WithFilter(pred func(Metadata) bool) *Builder {
	if pred != nil {
		b.filters = append(b.filters, pred)
	}
	return b
}

// Build merges the layers into a single Subscriber. A callback slot is only
// populated when at least one layer implements it, so a builder with no
// listening layers produces an inert subscriber. The builder can keep being
// modified afterwards; the merged subscriber works on a snapshot.
func (b *Builder) Build() *Subscriber {
	layers := make([]*Subscriber, len(b.layers))
	copy(layers, b.layers)
	filters := make([]func(Metadata) bool, len(b.filters))
	copy(filters, b.filters)

	merged := &Subscriber{MinLevel: b.minLevel}

	allow := func(meta Metadata) bool {
		for _, pred := range filters {
			if !pred(meta) {
				return false
			}
		}
		return true
	}

	for _, l := range layers {
		if l.NewSpan != nil {
			// First layer defining a span representation wins; the rest
			// observe whatever it produced.
			merged.NewSpan = l.NewSpan
			break
		}
	}

	if anySet(layers, func(l *Subscriber) bool { return l.OnEnter != nil }) {
		merged.OnEnter = func(span Span) {
			if !allow(span.Meta) {
				return
			}
			for _, l := range layers {
				if l.OnEnter != nil && span.Meta.Level >= l.MinLevel {
					l.OnEnter(span)
				}
			}
		}
	}

	if anySet(layers, func(l *Subscriber) bool { return l.OnExit != nil }) {
		merged.OnExit = func(span Span) {
			if !allow(span.Meta) {
				return
			}
			for _, l := range layers {
				if l.OnExit != nil && span.Meta.Level >= l.MinLevel {
					l.OnExit(span)
				}
			}
		}
	}

	if anySet(layers, func(l *Subscriber) bool { return l.OnEvent != nil }) {
		merged.OnEvent = func(event Event) {
			if !allow(event.Meta) {
				return
			}
			for _, l := range layers {
				if l.OnEvent != nil && event.Meta.Level >= l.MinLevel {
					l.OnEvent(event)
				}
			}
		}
	}

	return merged
}

// Install builds the merged subscriber and installs it into t, or into the
// default tracer when t is nil. Returns the installed subscriber.
func (b *Builder) Install(t *Tracer) *Subscriber {
	if t == nil {
		t = Default()
	}
	sub := b.Build()
	t.SetSubscriber(sub)
	return sub
}

func anySet(layers []*Subscriber, has func(*Subscriber) bool) bool {
	for _, l := range layers {
		if has(l) {
			return true
		}
	}
	return false
}
