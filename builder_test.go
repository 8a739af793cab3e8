package spanz

import "testing"

func TestBuilderFanOutByCapability(t *testing.T) {
	tracer := New()
	defer tracer.Close()

	var events []Event
	var enters []Span

	// layer1 only listens for events, layer2 only for span entries.
	layer1 := &Subscriber{OnEvent: func(e Event) { events = append(events, e) }}
	layer2 := &Subscriber{OnEnter: func(s Span) { enters = append(enters, s) }}

	NewBuilder().With(layer1, layer2).Install(tracer)

	span := tracer.Span("x", LevelInfo, nil)
	if len(enters) != 1 || len(events) != 0 {
		t.Errorf("after span: expected only layer2 OnEnter, got %d enters, %d events", len(enters), len(events))
	}

	tracer.Event("y", LevelInfo, "hello", nil)
	if len(events) != 1 || len(enters) != 1 {
		t.Errorf("after event: expected only layer1 OnEvent, got %d enters, %d events", len(enters), len(events))
	}

	tracer.Exit(span)
	if tracer.Depth() != 0 {
		t.Errorf("expected clean stack, got depth %d", tracer.Depth())
	}
}

func TestBuilderFanOutOrder(t *testing.T) {
	tracer := New()
	defer tracer.Close()

	var order []string
	first := &Subscriber{OnEnter: func(Span) { order = append(order, "first") }}
	second := &Subscriber{OnEnter: func(Span) { order = append(order, "second") }}

	NewBuilder().With(first).With(second).Install(tracer)

	tracer.Span("ordered", LevelInfo, nil)
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("expected layer order preserved, got %v", order)
	}
}

func TestBuilderFirstNewSpanWins(t *testing.T) {
	tracer := New()
	defer tracer.Close()

	plain := &Subscriber{OnEnter: func(Span) {}}
	shaperA := &Subscriber{NewSpan: func(meta Metadata) Span {
		return Span{ID: "a:" + meta.Name, Meta: meta}
	}}
	shaperB := &Subscriber{NewSpan: func(meta Metadata) Span {
		return Span{ID: "b:" + meta.Name, Meta: meta}
	}}

	NewBuilder().With(plain, shaperA, shaperB).Install(tracer)

	span := tracer.Span("shape", LevelInfo, nil)
	if span.ID != "a:shape" {
		t.Errorf("expected first NewSpan layer to win, got %q", span.ID)
	}
}

func TestBuilderDefaultNewSpanFallback(t *testing.T) {
	tracer := New()
	defer tracer.Close()

	var entered Span
	NewBuilder().
		With(&Subscriber{OnEnter: func(s Span) { entered = s }}).
		Install(tracer)

	span := tracer.Span("plain", LevelInfo, nil)
	if span.ID == "" {
		t.Error("expected engine-allocated ID when no layer defines NewSpan")
	}
	if entered.ID != span.ID {
		t.Error("expected OnEnter to receive the engine-allocated span")
	}
}

func TestBuilderOverallMinLevel(t *testing.T) {
	tracer := New()
	defer tracer.Close()

	var events []Event
	NewBuilder().
		With(&Subscriber{OnEvent: func(e Event) { events = append(events, e) }}).
		WithMinLevel(LevelWarn).
		Install(tracer)

	tracer.Event("low", LevelInfo, "dropped", nil)
	tracer.Event("high", LevelError, "kept", nil)

	if len(events) != 1 || events[0].Meta.Name != "high" {
		t.Errorf("expected only the ERROR event, got %d events", len(events))
	}
}

func TestBuilderPerLayerMinLevel(t *testing.T) {
	tracer := New()
	defer tracer.Close()

	var verbose, errors []Event
	NewBuilder().
		With(&Subscriber{OnEvent: func(e Event) { verbose = append(verbose, e) }}).
		With(&Subscriber{
			MinLevel: LevelError,
			OnEvent:  func(e Event) { errors = append(errors, e) },
		}).
		Install(tracer)

	tracer.Event("a", LevelInfo, "", nil)
	tracer.Event("b", LevelError, "", nil)

	if len(verbose) != 2 {
		t.Errorf("expected verbose layer to see both events, got %d", len(verbose))
	}
	if len(errors) != 1 || errors[0].Meta.Name != "b" {
		t.Errorf("expected error layer to see only the ERROR event, got %d", len(errors))
	}
}

func TestBuilderFilterPredicate(t *testing.T) {
	tracer := New()
	defer tracer.Close()

	var events []Event
	NewBuilder().
		With(&Subscriber{OnEvent: func(e Event) { events = append(events, e) }}).
		WithFilter(func(meta Metadata) bool { return meta.Name != "noise" }).
		Install(tracer)

	tracer.Event("noise", LevelInfo, "", nil)
	tracer.Event("signal", LevelInfo, "", nil)

	if len(events) != 1 || events[0].Meta.Name != "signal" {
		t.Errorf("expected predicate to drop noise, got %d events", len(events))
	}
}

func TestBuilderWithoutLayersIsInert(t *testing.T) {
	tracer := New()
	defer tracer.Close()

	NewBuilder().WithMinLevel(LevelTrace).Install(tracer)

	span := tracer.Span("nobody", LevelError, nil)
	if !span.Noop() {
		t.Error("expected merged subscriber with no layers to be inert")
	}
}

func TestBuilderInstallDefault(t *testing.T) {
	prev := GetSubscriber()
	defer SetSubscriber(prev)

	var events []Event
	sub := NewBuilder().
		With(&Subscriber{OnEvent: func(e Event) { events = append(events, e) }}).
		Install(nil)

	if GetSubscriber() != sub {
		t.Error("expected Install(nil) to target the default tracer")
	}

	Emit("global", LevelInfo, "via default", nil)
	if len(events) != 1 || events[0].Message != "via default" {
		t.Errorf("expected event through default tracer, got %d", len(events))
	}
}
