/*
Copyright © 2024 Acronis International GmbH.

Released under MIT license.
*/

package testutil

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRequireErrorIsAny(t *testing.T) {
	targetErrs := []error{
		errors.New("error A"),
		errors.New("error B"),
		errors.New("error C"),
	}

	mockT := &MockT{}

	RequireErrorIsAny(mockT, fmt.Errorf("do something: %w", targetErrs[1]), targetErrs)
	require.False(t, mockT.Failed)

	RequireErrorIsAny(mockT, fmt.Errorf("do something: %w", errors.New("error D")), targetErrs)
	require.True(t, mockT.Failed)

	RequireErrorIsAny(mockT, nil, targetErrs)
	require.True(t, mockT.Failed)
}

func TestRequireNoErrorInChannel(t *testing.T) {
	mockT := &MockT{}
	ch := make(chan error, 1)

	RequireNoErrorInChannel(mockT, ch)
	require.False(t, mockT.Failed)

	ch <- nil
	RequireNoErrorInChannel(mockT, ch)
	require.False(t, mockT.Failed)

	ch <- errors.New("some error")
	RequireNoErrorInChannel(mockT, ch)
	require.True(t, mockT.Failed)
}

func TestRequirePanicsWithErrorIs(t *testing.T) {
	targetErr := errors.New("target")

	tests := []struct {
		name       string
		fn         func()
		wantFailed bool
		wantMsg    string
	}{
		{
			name: "wrapped error",
			fn:   func() { panic(fmt.Errorf("context: %w", targetErr)) },
		},
		{
			name: "exact error",
			fn:   func() { panic(targetErr) },
		},
		{
			name:       "other error",
			fn:         func() { panic(errors.New("other")) },
			wantFailed: true,
		},
		{
			name:       "non-error value",
			fn:         func() { panic("target") },
			wantFailed: true,
			wantMsg:    `func should panic with error value, got "target"`,
		},
		{
			name:       "nil panic value",
			fn:         func() { panic(nil) },
			wantFailed: true,
		},
		{
			name:       "no panic",
			fn:         func() {},
			wantFailed: true,
			wantMsg:    `func should panic with "target"`,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			mockT := &MockT{}
			RequirePanicsWithErrorIs(mockT, targetErr, tt.fn)
			require.Equal(t, tt.wantFailed, mockT.Failed)
			if tt.wantMsg != "" {
				require.Contains(t, fmt.Sprint(mockT.Args...), tt.wantMsg)
			}
		})
	}
}
