package catalog

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// TimeLimit is the number of seconds a pilot has to finish a cave.
// Only the values listed below are valid.
type TimeLimit int

const (
	TimeLimit10s TimeLimit = 10
	TimeLimit30s TimeLimit = 30
	TimeLimit1m  TimeLimit = 60
	TimeLimit2m  TimeLimit = 120
	TimeLimit3m  TimeLimit = 180
	TimeLimit5m  TimeLimit = 300
	TimeLimit10m TimeLimit = 600
)

// DefaultTimeLimit is used when a cave file does not set one.
const DefaultTimeLimit = TimeLimit2m

var validTimeLimits = []TimeLimit{
	TimeLimit10s, TimeLimit30s, TimeLimit1m, TimeLimit2m,
	TimeLimit3m, TimeLimit5m, TimeLimit10m,
}

// TimeLimits returns every valid time limit in ascending order.
func TimeLimits() []TimeLimit {
	out := make([]TimeLimit, len(validTimeLimits))
	copy(out, validTimeLimits)
	return out
}

// Valid reports whether t is one of the supported limits.
func (t TimeLimit) Valid() bool {
	for _, v := range validTimeLimits {
		if t == v {
			return true
		}
	}
	return false
}

// Seconds returns the limit as float seconds.
func (t TimeLimit) Seconds() float64 {
	return float64(t)
}

func (t TimeLimit) String() string {
	return (time.Duration(t) * time.Second).String()
}

// ParseTimeLimit accepts a Go duration ("2m", "30s") or a plain number of
// seconds ("120").
func ParseTimeLimit(s string) (TimeLimit, error) {
	s = strings.TrimSpace(s)
	var t TimeLimit
	if n, err := strconv.Atoi(s); err == nil {
		t = TimeLimit(n)
	} else {
		d, err := time.ParseDuration(s)
		if err != nil {
			return 0, fmt.Errorf("invalid time limit %q: %w", s, err)
		}
		if d%time.Second != 0 {
			return 0, fmt.Errorf("invalid time limit %q: not a whole number of seconds", s)
		}
		t = TimeLimit(d / time.Second)
	}
	if !t.Valid() {
		return 0, fmt.Errorf("unsupported time limit %q (want one of %v)", s, validTimeLimits)
	}
	return t, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *TimeLimit) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: time_limit must be a scalar", value.Line)
	}
	parsed, err := ParseTimeLimit(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*t = parsed
	return nil
}
