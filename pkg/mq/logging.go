package mq

import "github.com/sirupsen/logrus"

// LogLevel is a leveled logging severity, used by call sites as
// cfg.logger.Log(LogLevelDebug, "msg", "k", v, ...).
type LogLevel int8

const (
	LogLevelNone LogLevel = iota
	LogLevelError
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
)

func (l LogLevel) String() string {
	switch l {
	case LogLevelError:
		return "ERROR"
	case LogLevelWarn:
		return "WARN"
	case LogLevelInfo:
		return "INFO"
	case LogLevelDebug:
		return "DEBUG"
	default:
		return "NONE"
	}
}

// Logger is the logging seam every worker and the public API log through.
// keyvals is an alternating key/value list of structured fields.
type Logger interface {
	Level() LogLevel
	Log(level LogLevel, msg string, keyvals ...interface{})
}

// nopLogger discards everything; it is the zero-value default so a Client
// built without WithLogger never touches an external logging backend.
type nopLogger struct{}

func (nopLogger) Level() LogLevel                      { return LogLevelNone }
func (nopLogger) Log(LogLevel, string, ...interface{}) {}

// logrusLogger backs Logger with github.com/sirupsen/logrus, translating
// the alternating keyvals into logrus.Fields.
type logrusLogger struct {
	level LogLevel
	entry *logrus.Entry
}

// NewLogrusLogger returns a Logger that writes through logrus at the given
// level using the supplied *logrus.Logger (or logrus.StandardLogger() if
// nil).
func NewLogrusLogger(level LogLevel, l *logrus.Logger) Logger {
	if l == nil {
		l = logrus.StandardLogger()
	}
	return &logrusLogger{level: level, entry: logrus.NewEntry(l)}
}

func (l *logrusLogger) Level() LogLevel { return l.level }

func (l *logrusLogger) Log(level LogLevel, msg string, keyvals ...interface{}) {
	if level > l.level {
		return
	}

	fields := make(logrus.Fields, len(keyvals)/2)
	for i := 0; i+1 < len(keyvals); i += 2 {
		key, ok := keyvals[i].(string)
		if !ok {
			continue
		}
		fields[key] = keyvals[i+1]
	}
	entry := l.entry.WithFields(fields)

	switch level {
	case LogLevelError:
		entry.Error(msg)
	case LogLevelWarn:
		entry.Warn(msg)
	case LogLevelInfo:
		entry.Info(msg)
	default:
		entry.Debug(msg)
	}
}
