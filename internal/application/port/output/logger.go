package output

// LoggerPort is a structured logger. Args are alternating key/value pairs.
// Implementations must be safe to share across goroutines; scoped loggers
// returned by WithField and WithFields keep any redaction of their parent.
type LoggerPort interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)

	WithField(key string, value any) LoggerPort
	WithFields(fields map[string]any) LoggerPort

	// Close flushes buffered entries.
	Close() error
}
