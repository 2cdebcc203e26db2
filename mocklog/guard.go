/*
Copyright © 2024 Acronis International GmbH.

Released under MIT license.
*/

package mocklog

import (
	"errors"
	"fmt"
	"testing"

	"github.com/rs/xid"
	"go.uber.org/atomic"

	"github.com/acronis/go-mocklog/internal/goid"
	"github.com/acronis/go-mocklog/log"
)

// ErrForeignGoroutine is a panic value reported when a Guard is released on a goroutine
// other than the one that created it.
var ErrForeignGoroutine = errors.New("mocklog: guard is released on a foreign goroutine")

// Guard removes the sink installed by SetLogger when released.
// It belongs to the goroutine that created it and must be released on that goroutine.
type Guard struct {
	registry *Registry
	owner    goid.ID
	id       xid.ID
	released *atomic.Bool
}

// ID returns the unique identifier of the guard.
func (g *Guard) ID() xid.ID {
	return g.id
}

// Goroutine returns the identity of the goroutine the guard belongs to.
func (g *Guard) Goroutine() int64 {
	return int64(g.owner)
}

// Released reports whether Release has already been called.
func (g *Guard) Released() bool {
	return g.released.Load()
}

// Release removes the sink installed by the owner goroutine.
// Calling it more than once is a no-op.
// The sink is removed even if it was installed by a later SetLogger call on the same goroutine.
// Release panics with ErrForeignGoroutine when called on another goroutine.
func (g *Guard) Release() {
	if cur := goid.Current(); cur != g.owner {
		panic(fmt.Errorf("%w: guard %s belongs to goroutine %d, released on goroutine %d",
			ErrForeignGoroutine, g.id, g.owner, cur))
	}
	if g.released.Swap(true) {
		return
	}
	g.registry.remove(g.owner)
}

// SetLogger installs the sink for the calling goroutine.
// All messages logged through the facade on this goroutine with level at least as severe
// as minLevel are delivered to the sink until the returned Guard is released.
// A sink installed earlier by the same goroutine is replaced.
//
// minLevel is parsed like log.ParseLevel does, so "trace" installs the sink at log.LevelDebug.
//
// SetLogger panics if sink is nil (including a nil pointer of a concrete sink type),
// minLevel is unknown, or the registry cannot be registered in the facade.
func (r *Registry) SetLogger(sink log.Sink, minLevel log.Level) *Guard {
	if log.IsNilSink(sink) {
		panic(log.ErrNilSink)
	}
	level, err := log.ParseLevel(string(minLevel))
	if err != nil {
		panic(fmt.Errorf("mocklog: invalid min level: %w", err))
	}
	if err = r.Init(); err != nil {
		panic(err)
	}

	g := &Guard{registry: r, owner: goid.Current(), id: xid.New(), released: atomic.NewBool(false)}
	r.insert(g.owner, installedLogger{sink: sink, minLevel: level, guardID: g.id})
	return g
}

// SetLoggerT installs the sink for the calling goroutine and releases it when the test finishes.
// It must be called on the test goroutine since cleanup functions are run there.
func (r *Registry) SetLoggerT(tb testing.TB, sink log.Sink, minLevel log.Level) *Guard {
	tb.Helper()
	g := r.SetLogger(sink, minLevel)
	tb.Cleanup(g.Release)
	return g
}

// WithLogger installs the sink for the calling goroutine, runs fn and releases the sink,
// even if fn panics or calls runtime.Goexit.
func (r *Registry) WithLogger(sink log.Sink, minLevel log.Level, fn func()) {
	g := r.SetLogger(sink, minLevel)
	defer g.Release()
	fn()
}

// SetLogger installs the sink in the Default registry.
func SetLogger(sink log.Sink, minLevel log.Level) *Guard {
	return Default().SetLogger(sink, minLevel)
}

// SetLoggerT installs the sink in the Default registry and releases it when the test finishes.
func SetLoggerT(tb testing.TB, sink log.Sink, minLevel log.Level) *Guard {
	tb.Helper()
	return Default().SetLoggerT(tb, sink, minLevel)
}

// WithLogger installs the sink in the Default registry for the duration of fn.
func WithLogger(sink log.Sink, minLevel log.Level, fn func()) {
	Default().WithLogger(sink, minLevel, fn)
}
