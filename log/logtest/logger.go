/*
Copyright © 2024 Acronis International GmbH.

Released under MIT license.
*/

package logtest

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/ssgreg/logf"

	"github.com/acronis/go-mocklog/log"
)

func newEntryWriter(output io.Writer) *entryWriter {
	return &entryWriter{
		encoder: logf.NewJSONEncoder(logf.JSONEncoderConfig{
			EncodeTime:   logf.RFC3339NanoTimeEncoder,
			FieldKeyTime: "time",
		}),
		output: output,
	}
}

type entryWriter struct {
	sync.Mutex
	encoder logf.Encoder
	output  io.Writer
}

//nolint:gocritic
func (ew *entryWriter) WriteEntry(e logf.Entry) {
	ew.Lock()
	defer ew.Unlock()

	var buf logf.Buffer
	err := ew.encoder.Encode(&buf, e)
	if err != nil {
		_, _ = fmt.Fprint(ew.output, err)
		return
	}
	_, _ = fmt.Fprint(ew.output, string(buf.Data))
}

// NewLogger returns a new simple preconfigured logger (output: stderr, format: json, level: debug).
// It may be used in tests and should never be used in production due to slow performance.
func NewLogger() log.FieldLogger {
	defaultOpts := LoggerOpts{
		Output: os.Stderr,
	}

	return NewLoggerWithOpts(defaultOpts)
}

// LoggerOpts allows to set custom options for test logger such as messages output target.
type LoggerOpts struct {
	Output io.Writer
}

// NewLoggerWithOpts returns logger instance configured according to options provided.
// If opts.Output value is nil it is set to os.Stderr.
func NewLoggerWithOpts(opts LoggerOpts) log.FieldLogger {
	output := opts.Output
	if output == nil {
		output = os.Stderr
	}
	logger := logf.NewLogger(logf.LevelDebug, newEntryWriter(output))
	return &log.LogfAdapter{Logger: logger}
}

type flusher interface {
	Flush() error
}

// WriterSink is a log.Sink that writes records to io.Writer in JSON format, one record per line.
// It may be used to see what the code under test logs while keeping tests isolated.
type WriterSink struct {
	ew       *entryWriter
	minLevel log.Level
}

var _ log.Sink = (*WriterSink)(nil)

// NewWriterSink returns a new WriterSink which writes records of all levels to w.
// If w is nil, os.Stderr is used.
func NewWriterSink(w io.Writer) *WriterSink {
	return NewWriterSinkWithLevel(w, log.LevelDebug)
}

// NewWriterSinkWithLevel returns a new WriterSink which writes records at least as severe as level.
func NewWriterSinkWithLevel(w io.Writer, level log.Level) *WriterSink {
	if w == nil {
		w = os.Stderr
	}
	return &WriterSink{ew: newEntryWriter(w), minLevel: level}
}

// Enabled reports whether the level of the message is at least as severe as the sink's level.
func (s *WriterSink) Enabled(meta log.Metadata) bool {
	return s.minLevel.Allows(meta.Level)
}

// Emit writes the record.
func (s *WriterSink) Emit(rec log.Record) {
	if !s.minLevel.Allows(rec.Level) {
		return
	}
	s.ew.WriteEntry(log.EntryFromRecord(rec))
}

// Flush flushes the writer if it supports flushing (e.g. *bufio.Writer).
func (s *WriterSink) Flush() {
	s.ew.Lock()
	defer s.ew.Unlock()
	if f, ok := s.ew.output.(flusher); ok {
		if err := f.Flush(); err != nil {
			_, _ = fmt.Fprint(os.Stderr, err)
		}
	}
}
