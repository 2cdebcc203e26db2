/*
Copyright © 2024 Acronis International GmbH.

Released under MIT license.
*/

package goid

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCurrent(t *testing.T) {
	id := Current()
	require.Positive(t, int64(id))
	require.Equal(t, id, Current(), "ID must be stable within a goroutine")

	const goroutines = 16
	ids := make(chan ID, goroutines)
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids <- Current()
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[ID]struct{}{id: {}}
	for gid := range ids {
		_, dup := seen[gid]
		require.False(t, dup, "goroutine id %d reported twice", gid)
		seen[gid] = struct{}{}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    ID
		wantErr bool
	}{
		{name: "running", header: "goroutine 42 [running]:\nmain.main()", want: 42},
		{name: "large id", header: "goroutine 9223372036854775807 [running]:", want: 9223372036854775807},
		{name: "no prefix", header: "thread 1 [running]:", wantErr: true},
		{name: "no separator", header: "goroutine 42", wantErr: true},
		{name: "not a number", header: "goroutine x1 [running]:", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parse([]byte(tt.header))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}
