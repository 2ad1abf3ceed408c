package logzero

import (
	"fmt"
	"strings"
)

// Level defines the available logging levels, ordered from most to least
// verbose. The numeric values leave room for intermediate levels.
type Level int

const (
	// Log levels
	DEBUG    Level = 10
	INFO     Level = 20
	WARNING  Level = 30
	ERROR    Level = 40
	CRITICAL Level = 50
)

// Level to string mapping
var levelNames = map[Level]string{
	DEBUG:    "DEBUG",
	INFO:     "INFO",
	WARNING:  "WARNING",
	ERROR:    "ERROR",
	CRITICAL: "CRITICAL",
}

// LevelNameToLevel maps string level names to level values
var LevelNameToLevel = map[string]Level{
	"DEBUG":    DEBUG,
	"INFO":     INFO,
	"WARNING":  WARNING,
	"ERROR":    ERROR,
	"CRITICAL": CRITICAL,
}

// syslogLevelNames maps levels to the syslog severity naming convention.
var syslogLevelNames = map[Level]string{
	DEBUG:    "DBG",
	INFO:     "INF",
	WARNING:  "WRN",
	ERROR:    "ERR",
	CRITICAL: "CRIT",
}

// syslogLevelNumbers maps levels to syslog numeric severities (RFC 5424).
var syslogLevelNumbers = map[Level]int{
	DEBUG:    7,
	INFO:     6,
	WARNING:  4,
	ERROR:    3,
	CRITICAL: 2,
}

// String returns the level name, or "LEVEL(n)" for unknown values.
func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("LEVEL(%d)", int(l))
}

// SyslogName returns the syslog-style severity name for the level.
// Unknown levels fall back to the regular name.
func (l Level) SyslogName() string {
	if name, ok := syslogLevelNames[l]; ok {
		return name
	}
	return l.String()
}

// SyslogNumber returns the syslog numeric severity for the level.
// Unknown levels default to 6 (informational).
func (l Level) SyslogNumber() int {
	if n, ok := syslogLevelNumbers[l]; ok {
		return n
	}
	return 6
}

// ParseLevel converts a level name (case-insensitive) to a Level.
func ParseLevel(name string) (Level, error) {
	level, ok := LevelNameToLevel[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("invalid log level: %s", name)
	}
	return level, nil
}
