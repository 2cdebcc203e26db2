/*
Copyright © 2024 Acronis International GmbH.

Released under MIT license.
*/

package log

import (
	"errors"
	"sync"

	"github.com/ssgreg/logf"
	"go.uber.org/atomic"
)

// ErrSinkAlreadySet is returned when a sink is being registered in a Facade that already has one.
var ErrSinkAlreadySet = errors.New("log: sink is already set")

// ErrNilSink is returned when a nil sink is being registered in a Facade.
var ErrNilSink = errors.New("log: sink is nil")

const defaultFacadeMaxLevel = LevelInfo

// Facade is a process-wide logging front-end.
// It holds a single sink that can be set only once and a global threshold
// that is applied before a message reaches the sink.
type Facade struct {
	mu       sync.RWMutex
	sink     Sink
	maxLevel *atomic.String
	logger   FieldLogger
}

// NewFacade creates a new Facade without sink and with "info" threshold.
func NewFacade() *Facade {
	f := &Facade{maxLevel: atomic.NewString(string(defaultFacadeMaxLevel))}
	// Threshold is checked by facadeEntryWriter, so logf itself should pass everything.
	f.logger = &LogfAdapter{Logger: logf.NewLogger(logf.LevelDebug, facadeEntryWriter{f})}
	return f
}

var defaultFacade = NewFacade()

// DefaultFacade returns the process default Facade used by the package-level functions.
func DefaultFacade() *Facade {
	return defaultFacade
}

// SetSink registers the sink. It may be called successfully only once.
// A nil sink, typed or not, is rejected with ErrNilSink.
func (f *Facade) SetSink(sink Sink) error {
	if IsNilSink(sink) {
		return ErrNilSink
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sink != nil {
		return ErrSinkAlreadySet
	}
	f.sink = sink
	return nil
}

// Sink returns the registered sink or nil.
func (f *Facade) Sink() Sink {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.sink
}

// SetMaxLevel sets the global threshold. Messages less severe than level are discarded.
func (f *Facade) SetMaxLevel(level Level) {
	f.maxLevel.Store(string(level))
}

// MaxLevel returns the global threshold.
func (f *Facade) MaxLevel() Level {
	return Level(f.maxLevel.Load())
}

// Enabled reports whether a message with the given metadata passes the global threshold
// and is accepted by the registered sink.
func (f *Facade) Enabled(meta Metadata) bool {
	if !f.MaxLevel().Allows(meta.Level) {
		return false
	}
	sink := f.Sink()
	return sink != nil && sink.Enabled(meta)
}

// Logger returns a FieldLogger which routes all messages to the registered sink.
func (f *Facade) Logger() FieldLogger {
	return f.logger
}

// Flush flushes the registered sink.
func (f *Facade) Flush() {
	if sink := f.Sink(); sink != nil {
		sink.Flush()
	}
}

func (f *Facade) emit(rec Record) {
	if !f.MaxLevel().Allows(rec.Level) {
		return
	}
	if sink := f.Sink(); sink != nil {
		sink.Emit(rec)
	}
}

type facadeEntryWriter struct {
	facade *Facade
}

//nolint:gocritic
func (w facadeEntryWriter) WriteEntry(e logf.Entry) {
	w.facade.emit(RecordFromEntry(e))
}

// RecordFromEntry converts logf.Entry into Record.
//
//nolint:gocritic
func RecordFromEntry(e logf.Entry) Record {
	fields := make([]Field, 0, len(e.DerivedFields)+len(e.Fields))
	fields = append(fields, e.DerivedFields...)
	fields = append(fields, e.Fields...)
	return Record{
		Level:      convertLogfLevelToLevel(e.Level),
		LoggerName: e.LoggerName,
		Text:       e.Text,
		Fields:     fields,
		Time:       e.Time,
	}
}

// SetSink registers the sink in the default Facade.
func SetSink(sink Sink) error {
	return defaultFacade.SetSink(sink)
}

// SetMaxLevel sets the global threshold of the default Facade.
func SetMaxLevel(level Level) {
	defaultFacade.SetMaxLevel(level)
}

// MaxLevel returns the global threshold of the default Facade.
func MaxLevel() Level {
	return defaultFacade.MaxLevel()
}

// Enabled reports whether a message with the given metadata will be consumed by the default Facade.
func Enabled(meta Metadata) bool {
	return defaultFacade.Enabled(meta)
}

// Flush flushes the sink of the default Facade.
func Flush() {
	defaultFacade.Flush()
}

// L returns the FieldLogger of the default Facade.
func L() FieldLogger {
	return defaultFacade.Logger()
}

// EntryFromRecord converts Record into logf.Entry.
func EntryFromRecord(rec Record) logf.Entry {
	return logf.Entry{
		LoggerName: rec.LoggerName,
		Fields:     rec.Fields,
		Level:      convertLevelToLogfLevel(rec.Level),
		Time:       rec.Time,
		Text:       rec.Text,
	}
}
