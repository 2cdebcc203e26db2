/*
Copyright © 2024 Acronis International GmbH.

Released under MIT license.
*/

package mocklog

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/acronis/go-mocklog/internal/goid"
	"github.com/acronis/go-mocklog/log"
	"github.com/acronis/go-mocklog/log/logtest"
	"github.com/acronis/go-mocklog/testutil"
)

func TestGuard_Release(t *testing.T) {
	r, facade := newTestRegistry(t)
	recorder := logtest.NewRecorder()

	g := r.SetLogger(recorder, log.LevelInfo)
	require.False(t, g.ID().IsNil())
	require.Equal(t, int64(goid.Current()), g.Goroutine())
	require.False(t, g.Released())

	facade.Logger().Info("before release")
	g.Release()
	require.True(t, g.Released())
	facade.Logger().Info("after release")
	g.Release()

	require.Len(t, recorder.Entries(), 1)
	_, found := recorder.FindEntry("before release")
	require.True(t, found)
	require.Equal(t, 0, r.Len())

	// The sink itself is untouched and still usable.
	recorder.Info("direct")
	require.Len(t, recorder.Entries(), 2)
}

func TestGuard_ReleaseOnForeignGoroutine(t *testing.T) {
	r, facade := newTestRegistry(t)
	recorder := logtest.NewRecorder()
	g := r.SetLogger(recorder, log.LevelInfo)
	defer g.Release()

	var wg sync.WaitGroup
	wg.Add(1)
	var recovered interface{}
	go func() {
		defer wg.Done()
		defer func() { recovered = recover() }()
		g.Release()
	}()
	wg.Wait()

	err, ok := recovered.(error)
	require.True(t, ok, "panic value must be an error, got %v", recovered)
	require.True(t, errors.Is(err, ErrForeignGoroutine))
	require.False(t, g.Released())

	facade.Logger().Info("still installed")
	_, found := recorder.FindEntry("still installed")
	require.True(t, found)
}

func TestGuard_ReleaseGuardOfFinishedGoroutine(t *testing.T) {
	r, _ := newTestRegistry(t)
	guards := make(chan *Guard, 1)
	go func() {
		guards <- r.SetLogger(logtest.NewRecorder(), log.LevelDebug)
	}()
	g := <-guards

	testutil.RequirePanicsWithErrorIs(t, ErrForeignGoroutine, g.Release)
	require.Equal(t, 1, r.Len(), "override of another goroutine must stay untouched")
}

func TestSetLogger_Nested(t *testing.T) {
	r, facade := newTestRegistry(t)
	first, second := logtest.NewRecorder(), logtest.NewRecorder()

	outer := r.SetLogger(first, log.LevelDebug)
	facade.Logger().Info("to first")

	inner := r.SetLogger(second, log.LevelDebug)
	require.NotEqual(t, outer.ID(), inner.ID())
	facade.Logger().Info("to second")

	inner.Release()
	facade.Logger().Info("to nobody")
	outer.Release()
	require.Equal(t, 0, r.Len())

	require.Len(t, first.Entries(), 1)
	require.Equal(t, "to first", first.Entries()[0].Text)
	require.Len(t, second.Entries(), 1)
	require.Equal(t, "to second", second.Entries()[0].Text)
}

func TestSetLogger_InvalidArguments(t *testing.T) {
	r, facade := newTestRegistry(t)

	require.PanicsWithError(t, log.ErrNilSink.Error(), func() {
		r.SetLogger(nil, log.LevelInfo)
	})
	require.PanicsWithError(t, log.ErrNilSink.Error(), func() {
		r.SetLogger((*logtest.Recorder)(nil), log.LevelInfo)
	})
	require.PanicsWithError(t, log.ErrNilSink.Error(), func() {
		r.SetLogger((*logtest.MockSink)(nil), log.LevelInfo)
	})
	testutil.RequirePanicsWithErrorIs(t, log.ErrNilSink, func() {
		var sink *logtest.FilteredSink
		r.SetLogger(sink, log.LevelInfo)
	})
	require.PanicsWithError(t,
		`mocklog: invalid min level: unknown log level "verbose", should be one of [debug info warn error]`,
		func() { r.SetLogger(logtest.NewRecorder(), "verbose") })
	require.Nil(t, facade.Sink(), "invalid calls must not initialize the registry")
	require.Equal(t, 0, r.Len())
}

func TestSetLogger_TraceMinLevel(t *testing.T) {
	r, facade := newTestRegistry(t)
	recorder := logtest.NewRecorder()

	r.WithLogger(recorder, "trace", func() {
		facade.Logger().Debug("most verbose")
		require.True(t, facade.Enabled(log.Metadata{Level: log.LevelDebug}))
	})
	r.WithLogger(recorder, "WARN", func() {
		facade.Logger().Info("filtered")
		facade.Logger().Warn("case-insensitive")
	})

	entries := recorder.Entries()
	require.Len(t, entries, 2)
	require.Equal(t, "most verbose", entries[0].Text)
	require.Equal(t, "case-insensitive", entries[1].Text)
}

// Thread A installs a sink at "info", logs "info" and "debug", releases the guard and logs again.
// Thread B never installs anything.
func TestSetLogger_TwoGoroutinesScenario(t *testing.T) {
	r, facade := newTestRegistry(t)

	sinkA := logtest.NewMockSink(t)
	sinkA.On("Emit", mock.MatchedBy(logtest.RecordWithText("info from A"))).Once()

	var wg sync.WaitGroup
	wg.Add(2)
	aReleased := make(chan struct{})
	go func() {
		defer wg.Done()
		g := r.SetLogger(sinkA, log.LevelInfo)
		facade.Logger().Info("info from A")
		facade.Logger().Debug("debug from A")
		g.Release()
		close(aReleased)
		facade.Logger().Info("info from A after release")
	}()
	go func() {
		defer wg.Done()
		<-aReleased
		for _, level := range log.AllLevels {
			facade.Logger().AtLevel(level, func(logFunc log.LogFunc) {
				logFunc("from B")
			})
		}
	}()
	wg.Wait()

	sinkA.AssertNumberOfCalls(t, "Emit", 1)
}

func TestWithLogger(t *testing.T) {
	r, facade := newTestRegistry(t)
	recorder := logtest.NewRecorder()

	r.WithLogger(recorder, log.LevelWarn, func() {
		facade.Logger().Warn("inside")
		facade.Logger().Info("filtered")
		require.Equal(t, 1, r.Len())
	})
	facade.Logger().Warn("outside")
	require.Equal(t, 0, r.Len())
	require.Len(t, recorder.Entries(), 1)

	require.PanicsWithValue(t, "code under test failed", func() {
		r.WithLogger(recorder, log.LevelWarn, func() {
			panic("code under test failed")
		})
	})
	require.Equal(t, 0, r.Len(), "sink must be released on panic")
}

func TestSetLoggerT(t *testing.T) {
	r, facade := newTestRegistry(t)
	recorder := logtest.NewRecorder()

	var g *Guard
	t.Run("subtest", func(t *testing.T) {
		g = r.SetLoggerT(t, recorder, log.LevelInfo)
		facade.Logger().Info("from subtest")
		require.Equal(t, 1, r.Len())
	})
	require.True(t, g.Released())
	require.Equal(t, 0, r.Len())
	require.Len(t, recorder.Entries(), 1)
}

func TestSetLoggerT_ParallelSubtests(t *testing.T) {
	r, facade := newTestRegistry(t)
	names := []string{"alpha", "beta", "gamma", "delta"}
	recorders := make(map[string]*logtest.Recorder, len(names))
	for _, name := range names {
		recorders[name] = logtest.NewRecorder()
	}

	t.Run("group", func(t *testing.T) {
		for _, name := range names {
			name := name
			t.Run(name, func(t *testing.T) {
				t.Parallel()
				r.SetLoggerT(t, recorders[name], log.LevelDebug)
				for i := 0; i < 10; i++ {
					facade.Logger().Debug(name)
				}
			})
		}
	})

	require.Equal(t, 0, r.Len())
	for name, recorder := range recorders {
		entries := recorder.Entries()
		require.Len(t, entries, 10)
		for _, entry := range entries {
			require.Equal(t, name, entry.Text)
		}
	}
}

func TestDefaultRegistry(t *testing.T) {
	recorder := logtest.NewRecorder()
	SetLoggerT(t, recorder, log.LevelInfo)

	log.L().Info("through the default facade", log.String("key", "value"))
	log.L().Debug("filtered")
	require.True(t, log.Enabled(log.Metadata{Level: log.LevelWarn}))
	require.Equal(t, log.LevelDebug, log.MaxLevel())
	log.Flush()

	entry, found := recorder.FindEntry("through the default facade")
	require.True(t, found)
	field, found := entry.FindField("key")
	require.True(t, found)
	require.Equal(t, "value", string(field.Bytes))
	require.Len(t, recorder.Entries(), 1)
	require.Equal(t, 1, recorder.Flushes())

	WithLogger(recorder, log.LevelError, func() {
		log.L().Error("nested")
	})
	log.L().Error("after nested release")
	require.Len(t, recorder.Entries(), 2)
}
