/*
Copyright © 2024 Acronis International GmbH.

Released under MIT license.
*/

package log

import (
	"fmt"
	"strings"
)

// Level defines possible values for log levels.
type Level string

// Logging levels.
const (
	LevelError Level = "error"
	LevelWarn  Level = "warn"
	LevelInfo  Level = "info"
	LevelDebug Level = "debug"
)

// levelTraceAlias is accepted by ParseLevel as LevelDebug: logf has no level below debug.
const levelTraceAlias = "trace"

// AllLevels lists all supported levels from the least to the most severe.
var AllLevels = []Level{LevelDebug, LevelInfo, LevelWarn, LevelError}

// Severity returns the rank of the level: the more severe the level, the bigger the rank.
// Unknown levels have rank 0 and are never allowed by any known threshold.
func (l Level) Severity() int {
	switch l {
	case LevelDebug:
		return 1
	case LevelInfo:
		return 2
	case LevelWarn:
		return 3
	case LevelError:
		return 4
	}
	return 0
}

// Allows reports whether a message at the given level passes the l threshold,
// i.e. the message is at least as severe as l.
func (l Level) Allows(level Level) bool {
	sev := level.Severity()
	return sev != 0 && sev >= l.Severity()
}

// IsValid reports whether l is one of the supported levels.
func (l Level) IsValid() bool {
	return l.Severity() != 0
}

// ParseLevel converts a case-insensitive string into a Level.
// "trace" is parsed as LevelDebug, the most verbose supported level.
func ParseLevel(s string) (Level, error) {
	level := Level(strings.ToLower(strings.TrimSpace(s)))
	if level == levelTraceAlias {
		return LevelDebug, nil
	}
	if !level.IsValid() {
		return "", fmt.Errorf("unknown log level %q, should be one of %v", s, AllLevels)
	}
	return level, nil
}
