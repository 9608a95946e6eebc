// Package sections turns scanned or provider-supplied chapter data into
// finished Section records and picks the most authoritative source for a video.
package sections

import (
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/forPelevin/timecut/internal/domain/timevalue"
	"github.com/forPelevin/timecut/internal/types"
)

// Params tunes section building. Zero values are not meaningful; start from
// DefaultParams.
type Params struct {
	// MinCandidates is how many timestamp lines a text block needs before it
	// counts as a chapter list.
	MinCandidates int
	// DefaultLength is used for the last section when nothing follows it.
	DefaultLength int
	MinLength     int
	MaxTitleRunes int
	Placeholder   string
}

func DefaultParams() Params {
	return Params{
		MinCandidates: 2,
		DefaultLength: 45,
		MinLength:     5,
		MaxTitleRunes: 120,
		Placeholder:   "Untitled section",
	}
}

// Build converts raw candidates into sections tagged with src. durationSec <= 0
// means the video length is unknown.
func Build(cands []types.Candidate, src types.Source, durationSec int, p Params) []types.Section {
	if len(cands) < p.MinCandidates || len(cands) == 0 {
		return nil
	}

	sorted := make([]types.Candidate, len(cands))
	copy(sorted, cands)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartSeconds < sorted[j].StartSeconds
	})

	out := make([]types.Section, 0, len(sorted))
	for i, c := range sorted {
		end := timevalue.Add(c.StartSeconds, p.DefaultLength)
		if i+1 < len(sorted) {
			end = sorted[i+1].StartSeconds
		}
		out = append(out, types.Section{
			Title:        p.title(c.Label),
			StartSeconds: c.StartSeconds,
			EndSeconds:   p.bound(c.StartSeconds, end, durationSec),
			Source:       src,
		})
	}
	return out
}

// bound clamps end to the known duration and only then applies the minimum
// length, so the result can exceed durationSec for sections starting near
// the end of the video.
func (p Params) bound(start, end, durationSec int) int {
	if durationSec > 0 && end > durationSec {
		end = durationSec
	}
	if floor := timevalue.Add(start, p.MinLength); end < floor {
		end = floor
	}
	return end
}

func (p Params) title(label string) string {
	t := strings.TrimSpace(norm.NFC.String(label))
	if t == "" {
		return p.Placeholder
	}
	return truncateRunes(t, p.MaxTitleRunes)
}

func truncateRunes(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}
