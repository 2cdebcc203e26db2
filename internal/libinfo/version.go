/*
Copyright © 2024 Acronis International GmbH.

Released under MIT license.
*/

// Package libinfo reports the version of this library as it is seen by the application it's built into.
package libinfo

import (
	"runtime/debug"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const modulePath = "github.com/acronis/go-mocklog"

// PrometheusLibVersionLabel is the name of the const label with the library version added to all metrics.
const PrometheusLibVersionLabel = "go_mocklog_version"

const unknownVersion = "v0.0.0"

var (
	libVersion     string
	libVersionOnce sync.Once
)

// LibVersion returns the version of the module recorded in the build info, or "v0.0.0" if it's unknown.
func LibVersion() string {
	libVersionOnce.Do(func() {
		libVersion = unknownVersion
		if buildInfo, ok := debug.ReadBuildInfo(); ok {
			if v := findModuleVersion(buildInfo.Deps, modulePath); v != "" {
				libVersion = v
			}
		}
	})
	return libVersion
}

// AddPrometheusLibVersionLabel returns a copy of labels with the library version label added.
func AddPrometheusLibVersionLabel(labels prometheus.Labels) prometheus.Labels {
	res := make(prometheus.Labels, len(labels)+1)
	for k, v := range labels {
		res[k] = v
	}
	res[PrometheusLibVersionLabel] = LibVersion()
	return res
}

// findModuleVersion looks for the module itself or any of its major versions ("path/vN").
func findModuleVersion(deps []*debug.Module, path string) string {
	for _, dep := range deps {
		if dep == nil {
			continue
		}
		if dep.Path == path {
			return dep.Version
		}
		if suffix, ok := strings.CutPrefix(dep.Path, path+"/v"); ok && suffix != "" && isDigits(suffix) {
			return dep.Version
		}
	}
	return ""
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
