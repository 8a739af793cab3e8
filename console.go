package spanz

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/zoobzio/clockz"
)

var levelColors = map[Level]*color.Color{
	LevelTrace: color.New(color.FgHiBlack),
	LevelDebug: color.New(color.FgCyan),
	LevelInfo:  color.New(color.FgGreen),
	LevelWarn:  color.New(color.FgYellow),
	LevelError: color.New(color.FgRed, color.Bold),
}

// Console is a subscriber layer that renders span and event lifecycle to
// text writers, colouring the level tag. Error-level records go to the
// error writer, everything else to the standard one. Span exits include the
// elapsed time since the span's start timestamp.
type Console struct {
	out    io.Writer
	errOut io.Writer
	clock  clockz.Clock
	mu     sync.Mutex
}

// NewConsole creates a console renderer writing to stdout/stderr with the
// real clock.
func NewConsole() *Console {
	return &Console{
		out:    color.Output,
		errOut: color.Error,
		clock:  clockz.RealClock,
	}
}

// WithWriters redirects output, typically to buffers in tests. Either
// writer may equal the other.
func (c *Console) WithWriters(out, errOut io.Writer) *Console {
	c.out = out
	c.errOut = errOut
	return c
}

// WithClock sets the clock used for span duration calculation.
func (c *Console) WithClock(clock clockz.Clock) *Console {
	c.clock = clock
	return c
}

// Subscriber returns the subscriber layer for this console. The console
// does not define a custom span representation, so NewSpan is left to the
// engine (or to another layer when composed by a Builder).
func (c *Console) Subscriber(minLevel Level) *Subscriber {
	return &Subscriber{
		MinLevel: minLevel,
		OnEnter:  c.enter,
		OnExit:   c.exit,
		OnEvent:  c.event,
	}
}

func (c *Console) enter(span Span) {
	c.print(span.Meta.Level, fmt.Sprintf(">> %s%s", span.Meta.Name, formatFields(span.Meta.Fields)))
}

func (c *Console) exit(span Span) {
	elapsed := c.clock.Now().Sub(span.Meta.Timestamp)
	c.print(span.Meta.Level, fmt.Sprintf("<< %s (%s)", span.Meta.Name, elapsed))
}

func (c *Console) event(event Event) {
	var b strings.Builder
	if event.Meta.Name != "" {
		b.WriteString(event.Meta.Name)
	}
	if event.Message != "" {
		if b.Len() > 0 {
			b.WriteString(": ")
		}
		b.WriteString(event.Message)
	}
	b.WriteString(formatFields(event.Meta.Fields))
	c.print(event.Meta.Level, b.String())
}

// print writes one line, serialized so concurrent layers never interleave
// partial lines.
func (c *Console) print(level Level, line string) {
	w := c.out
	if level >= LevelError {
		w = c.errOut
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	levelColor(level).Fprintf(w, "%-5s", level) //nolint:errcheck // best-effort console output
	fmt.Fprintf(w, " %s\n", line)
}

func levelColor(level Level) *color.Color {
	if c, ok := levelColors[level]; ok {
		return c
	}
	return color.New(color.Reset)
}

// formatFields renders fields as " k=v" pairs in sorted key order, or ""
// for empty fields.
func formatFields(fields Fields) string {
	if len(fields) == 0 {
		return ""
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, fields[k])
	}
	return b.String()
}
