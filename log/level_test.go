/*
Copyright © 2024 Acronis International GmbH.

Released under MIT license.
*/

package log

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLevel_Allows(t *testing.T) {
	tests := []struct {
		threshold Level
		allowed   []Level
		rejected  []Level
	}{
		{threshold: LevelDebug, allowed: []Level{LevelDebug, LevelInfo, LevelWarn, LevelError}},
		{threshold: LevelInfo, allowed: []Level{LevelInfo, LevelWarn, LevelError}, rejected: []Level{LevelDebug}},
		{threshold: LevelWarn, allowed: []Level{LevelWarn, LevelError}, rejected: []Level{LevelDebug, LevelInfo}},
		{threshold: LevelError, allowed: []Level{LevelError}, rejected: []Level{LevelDebug, LevelInfo, LevelWarn}},
	}
	for _, tt := range tests {
		t.Run(string(tt.threshold), func(t *testing.T) {
			for _, l := range tt.allowed {
				require.True(t, tt.threshold.Allows(l), "%s should allow %s", tt.threshold, l)
			}
			for _, l := range tt.rejected {
				require.False(t, tt.threshold.Allows(l), "%s should reject %s", tt.threshold, l)
			}
			require.False(t, tt.threshold.Allows("verbose"))
		})
	}
}

func TestParseLevel(t *testing.T) {
	for _, l := range AllLevels {
		got, err := ParseLevel(" " + string(l) + " ")
		require.NoError(t, err)
		require.Equal(t, l, got)
	}

	got, err := ParseLevel("WARN")
	require.NoError(t, err)
	require.Equal(t, LevelWarn, got)

	got, err = ParseLevel("Trace")
	require.NoError(t, err)
	require.Equal(t, LevelDebug, got)
	require.False(t, Level("trace").IsValid(), "trace is only an input alias")

	_, err = ParseLevel("verbose")
	require.EqualError(t, err, `unknown log level "verbose", should be one of [debug info warn error]`)
}
