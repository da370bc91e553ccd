package log

// Logger receives protocol events from the transport and servo layers.
//
// Implementations must tolerate concurrent calls. Log is called inline on
// protocol paths, so a sink that does slow work should hand the event off
// rather than block.
type Logger interface {
	Log(event Event)
}

// NoopLogger drops every event. The zero value is ready to use; it is the
// default sink wherever no logger is configured.
type NoopLogger struct{}

func (NoopLogger) Log(Event) {}

var _ Logger = NoopLogger{}
