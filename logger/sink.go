package logger

// Level is the severity passed to a Sink.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Sink is the logging collaborator the client writes to. Implementations must
// be safe to call from the goroutine issuing requests.
type Sink interface {
	Log(level Level, msg string, fields ...map[string]interface{})
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(level Level, msg string, fields ...map[string]interface{})

// Log calls f.
func (f SinkFunc) Log(level Level, msg string, fields ...map[string]interface{}) {
	f(level, msg, fields...)
}

type nopSink struct{}

func (nopSink) Log(Level, string, ...map[string]interface{}) {}

// Nop returns a Sink that discards everything.
func Nop() Sink { return nopSink{} }

// OrNop returns s, or Nop when s is nil.
func OrNop(s Sink) Sink {
	if s == nil {
		return Nop()
	}
	return s
}

// Tagged returns a Sink that adds a component field to every entry before
// handing it to s. A *Logger is tagged natively via WithComponent.
func Tagged(s Sink, component string) Sink {
	switch v := s.(type) {
	case nil, nopSink:
		return Nop()
	case *Logger:
		return v.WithComponent(component)
	}
	return SinkFunc(func(level Level, msg string, fields ...map[string]interface{}) {
		merged := make(map[string]interface{}, 1)
		for _, f := range fields {
			for k, val := range f {
				merged[k] = val
			}
		}
		merged[FieldComponent] = component
		s.Log(level, msg, merged)
	})
}
