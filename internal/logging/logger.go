// Package logging is the structured logging facade used by the tracker.
// Components depend on Logger only; the logrus backend is chosen once by
// the configuration and tests substitute MockLogger.
package logging

// Logger is a leveled, structured logger. Derived loggers carry their
// attached fields into every later entry.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// WithError attaches err under the "error" key.
	WithError(err error) Logger
	// WithFields attaches fields to every entry of the derived logger.
	WithFields(fields ...Field) Logger
	// WithComponent tags entries with the subsystem that wrote them, e.g.
	// "store" or "api".
	WithComponent(name string) Logger
}

// Field is one key-value pair of an entry. Keys come from the Field*
// constants so that output stays greppable.
type Field struct {
	Key   string
	Value interface{}
}
