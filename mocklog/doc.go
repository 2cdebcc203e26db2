/*
Copyright © 2024 Acronis International GmbH.

Released under MIT license.
*/

// Package mocklog allows a test to temporarily override the sink of the process-wide logging facade
// for the calling goroutine only.
//
// The Registry maps goroutine identities to installed sinks. On first use it registers its Adapter
// as the only sink of the facade and makes the facade threshold maximally permissive,
// so all filtering happens per goroutine. Every message logged through the facade is then delivered
// to the sink installed by the goroutine that logged it, or discarded if there is none.
//
// Go runs every test function in its own goroutine, so parallel tests may install unrelated sinks
// without interfering with each other:
//
//	func TestSomething(t *testing.T) {
//		t.Parallel()
//		recorder := logtest.NewRecorder()
//		mocklog.SetLoggerT(t, recorder, log.LevelInfo)
//
//		doSomething() // logs via log.L()
//
//		_, found := recorder.FindEntry("something done")
//		require.True(t, found)
//	}
//
// Messages logged from goroutines spawned by the code under test are not delivered,
// since they have their own identity.
//
// Severity order is debug < info < warn < error. The logging facade is built on logf, which has no level
// below debug, so a "trace" min level is accepted as log.LevelDebug. Any other unknown level
// makes SetLogger panic.
//
// SetLogger rejects nil sinks, including an interface holding a nil pointer such as (*logtest.Recorder)(nil).
// The check happens on the calling goroutine, before anything is installed.
//
// The Default registry reads its configuration (see Config) from environment variables
// like MOCKLOG_DIAGNOSTICS_ENABLED and MOCKLOG_METRICS_NAMESPACE on first use.
//
// Installing a sink twice on the same goroutine replaces the first one, and releasing any of the guards
// removes the override entirely. The previous sink is not restored.
package mocklog
