package ctxlog

import (
	"time"

	json "github.com/goccy/go-json"
)

/*
format.go

Formatter implementations. Formatting runs at the sink boundary, inside the
background dispatch goroutine: a message filtered out earlier never pays for
it.
*/

// JSONFormatter renders each message as a single JSON line with the level
// name, origin class, message text and a timestamp. Useful for sinks whose
// output is consumed by machines rather than humans.
type JSONFormatter struct {
	// TimeFormat is the layout for the "time" field, time.RFC3339 when empty.
	TimeFormat string
}

type jsonRecord struct {
	Level   string `json:"level"`
	Class   string `json:"class"`
	Message string `json:"message"`
	Time    string `json:"time"`
}

// Format implements Formatter. Marshalling problems decline the message for
// this sink instead of failing the call.
func (f *JSONFormatter) Format(level LogLevel, class, msg string) (string, bool) {
	layout := f.TimeFormat
	if layout == "" {
		layout = time.RFC3339
	}
	data, err := json.Marshal(jsonRecord{
		Level:   LevelName(level),
		Class:   class,
		Message: msg,
		Time:    time.Now().Format(layout),
	})
	if err != nil {
		return "", false
	}
	return string(data), true
}

// DropFormatter declines every message for its sink. A building block for
// tests and for temporarily muting a sink without detaching it.
type DropFormatter struct{}

// Format implements Formatter.
func (DropFormatter) Format(LogLevel, string, string) (string, bool) {
	return "", false
}
