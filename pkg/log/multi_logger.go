package log

// MultiLogger fans each event out to a fixed list of sinks in order,
// typically a FileLogger paired with a SlogAdapter for the console.
type MultiLogger struct {
	loggers []Logger
}

// NewMultiLogger builds a fan-out over the given sinks. An empty list is
// valid and behaves like NoopLogger.
func NewMultiLogger(loggers ...Logger) *MultiLogger {
	return &MultiLogger{loggers: loggers}
}

// Log forwards the event to every sink.
func (m *MultiLogger) Log(event Event) {
	for _, l := range m.loggers {
		l.Log(event)
	}
}

var _ Logger = (*MultiLogger)(nil)
