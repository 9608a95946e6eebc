// Package timevalue normalizes loosely typed time values (seconds, milliseconds,
// numeric strings, ISO-8601 durations) into whole non-negative seconds.
//
// Every parser returns Invalid instead of an error: callers treat an
// unparseable value the same as a missing one.
package timevalue

import (
	"encoding/json"
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Invalid marks a value that could not be turned into seconds.
const Invalid = -1

var reISO = regexp.MustCompile(`(?i)^([-+])?P(?:([-+]?\d+)D)?(?:T(?:([-+]?\d+)H)?(?:([-+]?\d+)M)?(?:([-+]?\d+(?:[.,]\d+)?)S)?)?$`)

// Seconds parses v as a second count. Strings may carry an "ms" or "s"
// suffix or be ISO-8601 durations.
func Seconds(v any) int {
	switch x := v.(type) {
	case nil, bool:
		return Invalid
	case string:
		return fromString(x, 1)
	case json.Number:
		return fromString(x.String(), 1)
	case []byte:
		return fromString(string(x), 1)
	case float32:
		return fromFloat(float64(x), 1)
	case float64:
		return fromFloat(x, 1)
	}
	return fromInteger(v, 1)
}

// Millis parses v as a millisecond count and returns floor(ms/1000).
func Millis(v any) int {
	switch x := v.(type) {
	case nil, bool:
		return Invalid
	case string:
		return fromString(x, 1000)
	case json.Number:
		return fromString(x.String(), 1000)
	case []byte:
		return fromString(string(x), 1000)
	case float32:
		return fromFloat(float64(x), 1000)
	case float64:
		return fromFloat(x, 1000)
	}
	return fromInteger(v, 1000)
}

// ISO8601 parses a PnDTnHnMn.nS duration. Negative totals are Invalid and
// totals beyond the int range saturate.
func ISO8601(s string) int {
	m := reISO.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Invalid
	}
	if m[2] == "" && m[3] == "" && m[4] == "" && m[5] == "" {
		return Invalid
	}

	var total float64
	for i, unit := range [...]float64{86400, 3600, 60, 1} {
		part := m[i+2]
		if part == "" {
			continue
		}
		f, err := strconv.ParseFloat(strings.ReplaceAll(part, ",", "."), 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return Invalid
		}
		total += f * unit
	}
	if m[1] == "-" {
		total = -total
	}
	if math.IsInf(total, 1) {
		return math.MaxInt
	}
	return fromFloat(total, 1)
}

// fromString lets an explicit unit suffix override the caller's divisor:
// "1500ms" is milliseconds and "90s" is seconds whichever parser sees it.
func fromString(s string, divisor int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return Invalid
	}
	if looksISO(s) {
		return ISO8601(s)
	}

	lower := strings.ToLower(s)
	switch {
	case strings.HasSuffix(lower, "ms"):
		s, divisor = strings.TrimSpace(s[:len(s)-2]), 1000
	case strings.HasSuffix(lower, "s"):
		s, divisor = strings.TrimSpace(s[:len(s)-1]), 1
	}
	if s == "" {
		return Invalid
	}

	f, err := cast.ToFloat64E(s)
	if err != nil {
		return Invalid
	}
	return fromFloat(f, divisor)
}

func fromFloat(f float64, divisor int) int {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return Invalid
	}
	f = math.Floor(f / float64(divisor))
	if f >= float64(math.MaxInt) {
		return math.MaxInt
	}
	return int(f)
}

func fromInteger(v any, divisor int) int {
	n, err := cast.ToInt64E(v)
	if err != nil || n < 0 {
		return Invalid
	}
	n /= int64(divisor)
	if n > int64(math.MaxInt) {
		return math.MaxInt
	}
	return int(n)
}

func looksISO(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return len(s) > 0 && (s[0] == 'P' || s[0] == 'p')
}

// Add returns a+b for a non-negative b, saturating at math.MaxInt instead of
// wrapping. Interval ends are built with it so a saturated start never
// produces a negative end.
func Add(a, b int) int {
	if b > 0 && a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}
