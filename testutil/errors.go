/*
Copyright © 2024 Acronis International GmbH.

Released under MIT license.
*/

package testutil

import (
	"errors"
	"fmt"
	"strings"

	"github.com/stretchr/testify/require"
)

// RequireNoErrorInChannel asserts that there is no error in buffered channel.
func RequireNoErrorInChannel(t require.TestingT, c <-chan error, msgAndArgs ...interface{}) {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	var err error
	select {
	case err = <-c:
	default:
	}
	require.NoError(t, err, msgAndArgs...)
}

// RequireErrorIsAny asserts that at least one of the errors in err's chain matches at least one target.
// This is a wrapper for errors.Is.
func RequireErrorIsAny(t require.TestingT, err error, targets []error, msgAndArgs ...interface{}) {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	for _, targetErr := range targets {
		if errors.Is(err, targetErr) {
			return
		}
	}
	var expectedErrTexts []string
	for _, targetErr := range targets {
		expectedErrTexts = append(expectedErrTexts, fmt.Sprintf("%q", targetErr.Error()))
	}
	require.FailNow(t, fmt.Sprintf("At least one target error should be in err chain:\n"+
		"expected: [%s]\n"+
		"in chain: %s", strings.Join(expectedErrTexts, "; "), buildErrorChainString(err),
	), msgAndArgs...)
}

// RequirePanicsWithErrorIs asserts that fn panics with an error value that has target in its chain.
// Unlike require.PanicsWithError, the panic message may carry additional context.
func RequirePanicsWithErrorIs(t require.TestingT, target error, fn func(), msgAndArgs ...interface{}) {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	panicked, value := capturePanic(fn)
	if !panicked {
		require.FailNow(t, fmt.Sprintf("func should panic with %q", target.Error()), msgAndArgs...)
		return
	}
	err, ok := value.(error)
	if !ok {
		require.FailNow(t, fmt.Sprintf("func should panic with error value, got %#v", value), msgAndArgs...)
		return
	}
	RequireErrorIsAny(t, err, []error{target}, msgAndArgs...)
}

func capturePanic(fn func()) (panicked bool, value interface{}) {
	panicked = true
	defer func() {
		if panicked {
			value = recover()
		}
	}()
	fn()
	panicked = false
	return
}

func buildErrorChainString(err error) string {
	if err == nil {
		return ""
	}

	e := errors.Unwrap(err)
	chain := fmt.Sprintf("%q", err.Error())
	for e != nil {
		chain += fmt.Sprintf("\n\t%q", e.Error())
		e = errors.Unwrap(e)
	}
	return chain
}
