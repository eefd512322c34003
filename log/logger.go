package log

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/op/go-logging"
)

type Level logging.Level

// The levels that can be passed to the SetLevel function.
const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

// The console format
var format = logging.MustStringFormatter(
	`%{color}[%{time:15:04:05.000}] [%{module}] [%{level}]%{color:reset} %{message}`,
)

// The log file format; files are appended to so color codes are omitted.
var fileFormat = logging.MustStringFormatter(
	`[%{time:2006-01-02 15:04:05.000}] [%{module}] [%{level}] %{message}`,
)

// The internal leveled logger backend
var leveledBackend logging.LeveledBackend

// Backends currently attached to the logger.
var backends []logging.Backend

// Active level.
var curLevel = logging.NOTICE

// The logger interface
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})

	Notice(v ...interface{})
	Noticef(format string, v ...interface{})

	Info(v ...interface{})
	Infof(format string, v ...interface{})

	Warning(v ...interface{})
	Warningf(format string, v ...interface{})

	Error(v ...interface{})
	Errorf(format string, v ...interface{})
}

// Create a new named logger.
func New(name string) Logger {
	return logging.MustGetLogger(name)
}

// Override the backend output sink. Any file sinks are detached.
func SetSink(sink io.Writer) {
	backend := logging.NewLogBackend(sink, "", 0)
	backends = []logging.Backend{logging.NewBackendFormatter(backend, format)}
	apply()
}

// Append log output to a file in addition to the current sink. Closing the
// returned file releases the handle; the sink stays attached until the next
// SetSink call.
func AddFileSink(path string) (io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("log: could not open log file %q: %v", path, err)
	}

	backend := logging.NewLogBackend(f, "", 0)
	backends = append(backends, logging.NewBackendFormatter(backend, fileFormat))
	apply()
	return f, nil
}

// Set logger verbosity.
func SetLevel(level Level) {
	switch level {
	case Debug:
		curLevel = logging.DEBUG
	case Info:
		curLevel = logging.INFO
	case Notice:
		curLevel = logging.NOTICE
	case Warning:
		curLevel = logging.WARNING
	case Error:
		curLevel = logging.ERROR
	}

	leveledBackend.SetLevel(curLevel, "")
}

// Parse a level name as it appears in configuration files.
func ParseLevel(name string) (Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return Debug, nil
	case "info":
		return Info, nil
	case "notice", "":
		return Notice, nil
	case "warning", "warn":
		return Warning, nil
	case "error":
		return Error, nil
	}
	return Notice, fmt.Errorf("log: unknown level %q", name)
}

// Prefix a message with the indentation marker used for nested progress
// messages.
func Indent(depth int, msg string) string {
	return strings.Repeat("    ", depth) + "> " + msg
}

func apply() {
	leveledBackend = logging.AddModuleLevel(logging.MultiLogger(backends...))
	leveledBackend.SetLevel(curLevel, "")
	logging.SetBackend(leveledBackend)
}

func init() {
	SetSink(os.Stdout)
	SetLevel(Notice)
}
