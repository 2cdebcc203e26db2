/*
Copyright © 2024 Acronis International GmbH.

Released under MIT license.
*/

// Package logtest provides implementations of log.FieldLogger and log.Sink that allow writing tests
// for logging functionality.
// It was inspired by httptest (https://golang.org/pkg/net/http/httptest) from Go standard library.
//
// Recorder, MockSink, WriterSink and FilteredSink may be installed for the test goroutine
// with mocklog.SetLoggerT to observe what the code under test logs through log.L().
package logtest
