package tabs

// Severity of a diagnostic emitted by the switcher.
type Severity int

const (
	SeverityDebug Severity = iota
	SeverityInfo
	SeverityWarn
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarn:
		return "warn"
	case SeverityError:
		return "error"
	}
	return "unknown"
}

// Logger is the diagnostics sink.
type Logger interface {
	Log(msg string, sev Severity)
}

// NopLogger discards everything
type NopLogger struct{}

func (NopLogger) Log(string, Severity) {}
