/*
Copyright © 2024 Acronis International GmbH.

Released under MIT license.
*/

package logtest

import (
	"github.com/stretchr/testify/mock"

	"github.com/acronis/go-mocklog/log"
)

// MockSink is a log.Sink built on testify mock.
// Expectations are set as usual:
//
//	sink := &logtest.MockSink{}
//	sink.On("Emit", mock.MatchedBy(logtest.RecordWithText("done"))).Once()
//	...
//	sink.AssertExpectations(t)
type MockSink struct {
	mock.Mock
}

var _ log.Sink = (*MockSink)(nil)

// NewMockSink returns a new MockSink which asserts its expectations when the test finishes.
func NewMockSink(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockSink {
	m := &MockSink{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Enabled implements log.Sink.
func (m *MockSink) Enabled(meta log.Metadata) bool {
	return m.Called(meta).Bool(0)
}

// Emit implements log.Sink.
func (m *MockSink) Emit(rec log.Record) {
	m.Called(rec)
}

// Flush implements log.Sink.
func (m *MockSink) Flush() {
	m.Called()
}

// RecordWithText returns a matcher for mock.MatchedBy which matches records with the given text.
func RecordWithText(text string) func(rec log.Record) bool {
	return func(rec log.Record) bool {
		return rec.Text == text
	}
}

// RecordWithLevel returns a matcher for mock.MatchedBy which matches records with the given level.
func RecordWithLevel(level log.Level) func(rec log.Record) bool {
	return func(rec log.Record) bool {
		return rec.Level == level
	}
}
