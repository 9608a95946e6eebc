// Package timestamps finds "[bullet] [H:]MM:SS [-] label" entries in free text,
// the shape used by chapter lists in video descriptions and comments.
package timestamps

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/forPelevin/timecut/internal/types"
)

// Groups: 1 hours (optional), 2 minutes, 3 seconds, 4 label.
var reLine = regexp.MustCompile(
	`^\s*` +
		`(?:(?:[-*+•·▪►▶>]|\d{1,3}[.)])\s*)?` + // bullet or ordinal
		`[\[(]?` +
		`(?:(\d{1,2}):)?(\d{1,3}):(\d{1,2})` +
		`[\])]?` +
		`(?:\s*[-–—|:]+\s*|\s+|$)` + // separator
		`(.*)$`,
)

// Scan returns one candidate per matching line, in order of appearance.
// Lines that do not start with a timestamp are skipped.
func Scan(text string) []types.Candidate {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var out []types.Candidate
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if c, ok := parseLine(line); ok {
			out = append(out, c)
		}
	}
	return out
}

func parseLine(line string) (types.Candidate, bool) {
	m := reLine.FindStringSubmatch(strings.TrimRight(line, "\r"))
	if m == nil {
		return types.Candidate{}, false
	}

	hours := 0
	if m[1] != "" {
		h, err := strconv.Atoi(m[1])
		if err != nil {
			return types.Candidate{}, false
		}
		hours = h
	}
	minutes, err := strconv.Atoi(m[2])
	if err != nil {
		return types.Candidate{}, false
	}
	seconds, err := strconv.Atoi(m[3])
	if err != nil {
		return types.Candidate{}, false
	}

	return types.Candidate{
		StartSeconds: hours*3600 + minutes*60 + seconds,
		Label:        strings.TrimSpace(m[4]),
	}, true
}

// Format renders seconds as M:SS, or H:MM:SS past the hour.
func Format(sec int) string {
	if sec < 0 {
		sec = 0
	}
	h := sec / 3600
	m := (sec % 3600) / 60
	s := sec % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
