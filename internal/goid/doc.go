/*
Copyright © 2024 Acronis International GmbH.

Released under MIT license.
*/

// Package goid reports the identity of the calling goroutine.
// The runtime does not expose goroutine IDs through a public API,
// so the ID is parsed from the header line of the goroutine's own stack trace.
package goid
