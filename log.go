package spanz

import "fmt"

// Logger is a thin formatted-logging facade over a tracer's Event
// operation. It carries an optional event name and base fields; derived
// loggers share the underlying tracer.
//
// Loggers hold no state beyond their configuration and are safe to copy.
type Logger struct {
	tracer *Tracer
	name   string
	fields Fields
}

// NewLogger creates a logger emitting through t, or through the default
// tracer when t is nil.
func NewLogger(t *Tracer) *Logger {
	if t == nil {
		t = Default()
	}
	return &Logger{tracer: t}
}

// Named returns a derived logger whose events carry the given name.
func (l *Logger) Named(name string) *Logger {
	return &Logger{tracer: l.tracer, name: name, fields: l.fields}
}

// WithFields returns a derived logger whose events carry the merged base
// fields. Later keys override earlier ones.
func (l *Logger) WithFields(fields Fields) *Logger {
	merged := l.fields.Clone()
	if merged == nil {
		merged = make(Fields, len(fields))
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &Logger{tracer: l.tracer, name: l.name, fields: merged}
}

// Tracef emits a TRACE event with a Sprintf-formatted message.
func (l *Logger) Tracef(format string, args ...any) {
	l.log(LevelTrace, format, args...)
}

// Debugf emits a DEBUG event with a Sprintf-formatted message.
func (l *Logger) Debugf(format string, args ...any) {
	l.log(LevelDebug, format, args...)
}

// Infof emits an INFO event with a Sprintf-formatted message.
func (l *Logger) Infof(format string, args ...any) {
	l.log(LevelInfo, format, args...)
}

// Warnf emits a WARN event with a Sprintf-formatted message.
func (l *Logger) Warnf(format string, args ...any) {
	l.log(LevelWarn, format, args...)
}

// Errorf emits an ERROR event with a Sprintf-formatted message.
func (l *Logger) Errorf(format string, args ...any) {
	l.log(LevelError, format, args...)
}

// Err emits an ERROR event for err, attaching it as an "error" field.
// No-op for a nil error.
func (l *Logger) Err(err error) {
	if err == nil {
		return
	}
	fields := l.fields.Clone()
	if fields == nil {
		fields = Fields{}
	}
	fields["error"] = err.Error()
	l.tracer.Event(l.name, LevelError, err.Error(), fields)
}

// log formats the message and hands it to the engine. The filtering
// predicate is consulted first so filtered levels skip the Sprintf.
func (l *Logger) log(level Level, format string, args ...any) {
	if !l.tracer.Subscriber().admits(level) {
		return
	}
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	l.tracer.Event(l.name, level, msg, l.fields)
}
