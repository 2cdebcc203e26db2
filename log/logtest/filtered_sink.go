/*
Copyright © 2024 Acronis International GmbH.

Released under MIT license.
*/

package logtest

import (
	"github.com/vasayxtx/go-glob"

	"github.com/acronis/go-mocklog/log"
)

// FilteredSink is a log.Sink that passes to the delegate only records of loggers
// whose names match at least one of the glob patterns (e.g. "db.*").
type FilteredSink struct {
	delegate log.Sink
	matchers []func(s string) bool
}

var _ log.Sink = (*FilteredSink)(nil)

// NewFilteredSink returns a new FilteredSink. Without patterns, no record passes.
func NewFilteredSink(delegate log.Sink, loggerNamePatterns ...string) *FilteredSink {
	matchers := make([]func(s string) bool, 0, len(loggerNamePatterns))
	for _, pattern := range loggerNamePatterns {
		matchers = append(matchers, glob.Compile(pattern))
	}
	return &FilteredSink{delegate: delegate, matchers: matchers}
}

func (s *FilteredSink) matches(loggerName string) bool {
	for i := range s.matchers {
		if s.matchers[i](loggerName) {
			return true
		}
	}
	return false
}

// Enabled reports whether the logger name matches and the delegate is enabled.
func (s *FilteredSink) Enabled(meta log.Metadata) bool {
	return s.matches(meta.LoggerName) && s.delegate.Enabled(meta)
}

// Emit passes the record to the delegate if the logger name matches.
func (s *FilteredSink) Emit(rec log.Record) {
	if s.matches(rec.LoggerName) {
		s.delegate.Emit(rec)
	}
}

// Flush flushes the delegate.
func (s *FilteredSink) Flush() {
	s.delegate.Flush()
}
