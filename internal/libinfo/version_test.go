/*
Copyright © 2024 Acronis International GmbH.

Released under MIT license.
*/

package libinfo

import (
	"runtime/debug"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestFindModuleVersion(t *testing.T) {
	tests := []struct {
		name string
		deps []*debug.Module
		want string
	}{
		{name: "module found", deps: []*debug.Module{{Path: modulePath, Version: "v1.2.3"}}, want: "v1.2.3"},
		{name: "major version found", deps: []*debug.Module{{Path: modulePath + "/v2", Version: "v2.0.1"}}, want: "v2.0.1"},
		{name: "similar path ignored", deps: []*debug.Module{{Path: modulePath + "-extra", Version: "v9.9.9"}}},
		{name: "subpackage ignored", deps: []*debug.Module{{Path: modulePath + "/vendor", Version: "v9.9.9"}}},
		{name: "nil dependency", deps: []*debug.Module{nil}},
		{name: "no deps"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, findModuleVersion(tt.deps, modulePath))
		})
	}
}

func TestAddPrometheusLibVersionLabel(t *testing.T) {
	labels := prometheus.Labels{"service": "test"}
	got := AddPrometheusLibVersionLabel(labels)
	require.Equal(t, prometheus.Labels{"service": "test", PrometheusLibVersionLabel: LibVersion()}, got)
	require.Len(t, labels, 1, "original labels must not be modified")
	require.NotEmpty(t, LibVersion())
}
