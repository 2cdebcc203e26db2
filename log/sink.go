/*
Copyright © 2024 Acronis International GmbH.

Released under MIT license.
*/

package log

import (
	"reflect"
	"time"
)

// Metadata describes a log message before it is built.
type Metadata struct {
	Level      Level
	LoggerName string
}

// Record is a single log message delivered to a Sink.
type Record struct {
	Level      Level
	LoggerName string
	Text       string
	Fields     []Field
	Time       time.Time
}

// Metadata returns the metadata of the record.
func (r Record) Metadata() Metadata {
	return Metadata{Level: r.Level, LoggerName: r.LoggerName}
}

// Sink consumes log records.
// Implementations must be safe for concurrent use.
type Sink interface {
	// Enabled reports whether a message with the given metadata would be consumed.
	Enabled(meta Metadata) bool

	// Emit consumes the record.
	Emit(rec Record)

	// Flush flushes any buffered records.
	Flush()
}

// FieldLoggerSink is a Sink that writes records into a FieldLogger.
type FieldLoggerSink struct {
	logger FieldLogger
}

var _ Sink = (*FieldLoggerSink)(nil)

// NewFieldLoggerSink returns a new Sink that writes all records into the given logger.
// Level filtering is left to the logger itself.
func NewFieldLoggerSink(logger FieldLogger) *FieldLoggerSink {
	return &FieldLoggerSink{logger: logger}
}

// Enabled always returns true for known levels.
func (s *FieldLoggerSink) Enabled(meta Metadata) bool {
	return meta.Level.IsValid()
}

// Emit writes the record into the underlying logger.
func (s *FieldLoggerSink) Emit(rec Record) {
	logger := s.logger
	if rec.LoggerName != "" {
		logger = logger.With(String("logger", rec.LoggerName))
	}
	logger.AtLevel(rec.Level, func(logFunc LogFunc) {
		logFunc(rec.Text, rec.Fields...)
	})
}

// Flush does nothing since FieldLogger has no flushing capability.
// Use CloseFunc returned by NewLogger to flush a channel-based logger.
func (s *FieldLoggerSink) Flush() {}

// IsNilSink reports whether sink is nil or an interface holding a nil pointer (e.g. (*Recorder)(nil)).
// Such a sink would panic only later, on whatever goroutine logs first.
func IsNilSink(sink Sink) bool {
	if sink == nil {
		return true
	}
	v := reflect.ValueOf(sink)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}
