/*
Copyright © 2024 Acronis International GmbH.

Released under MIT license.
*/

// Package testutil contains assertions shared by tests of the module packages.
package testutil

type tHelper interface {
	Helper()
}
