/*
Copyright © 2024 Acronis International GmbH.

Released under MIT license.
*/

package mocklog

import (
	"github.com/acronis/go-mocklog/internal/goid"
	"github.com/acronis/go-mocklog/log"
)

// Adapter is the log.Sink registered in the logging facade.
// It delegates every call to the sink installed by the calling goroutine.
// Installed sinks are called outside the registry lock, so they may log or install sinks themselves.
type Adapter struct {
	registry *Registry
}

var _ log.Sink = (*Adapter)(nil)

// Enabled reports whether the calling goroutine has an installed sink
// whose minimal level allows meta.Level and which is enabled for meta itself.
func (a *Adapter) Enabled(meta log.Metadata) bool {
	entry, ok := a.registry.lookup(goid.Current())
	if !ok {
		return false
	}
	return entry.minLevel.Allows(meta.Level) && entry.sink.Enabled(meta)
}

// Emit delivers the record to the sink installed by the calling goroutine
// if the record is at least as severe as the sink's minimal level.
// Otherwise, the record is discarded.
func (a *Adapter) Emit(rec log.Record) {
	entry, ok := a.registry.lookup(goid.Current())
	if !ok {
		a.registry.metrics.IncRecordsUnrouted()
		return
	}
	if !entry.minLevel.Allows(rec.Level) {
		a.registry.metrics.IncRecordsFiltered(rec.Level)
		return
	}
	entry.sink.Emit(rec)
	a.registry.metrics.IncRecordsDelivered(rec.Level)
}

// Flush flushes the sink installed by the calling goroutine, if any.
func (a *Adapter) Flush() {
	if entry, ok := a.registry.lookup(goid.Current()); ok {
		entry.sink.Flush()
	}
}
