package highlights

import (
	"log/slog"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/forPelevin/timecut/internal/domain/captions"
	"github.com/forPelevin/timecut/internal/domain/timestamps"
	"github.com/forPelevin/timecut/internal/domain/timevalue"
	"github.com/forPelevin/timecut/internal/types"
)

// Params holds every window length and confidence the detector uses.
type Params struct {
	ChapterWindow            int
	MinLength                int
	ChapterConfidence        float64
	KeywordChapterConfidence float64

	CaptionWindow     int
	CaptionConfidence float64

	// Fallback applies when no caption line hits a keyword.
	FallbackLines      int
	FallbackWindow     int
	FallbackConfidence float64
	FallbackLabelRunes int

	// Placeholder labels a chapter line that has a timestamp but no text.
	Placeholder string
	Keywords    []string
}

func DefaultParams() Params {
	return Params{
		ChapterWindow:            30,
		MinLength:                5,
		ChapterConfidence:        0.6,
		KeywordChapterConfidence: 0.9,
		CaptionWindow:            30,
		CaptionConfidence:        0.8,
		FallbackLines:            5,
		FallbackWindow:           45,
		FallbackConfidence:       0.4,
		FallbackLabelRunes:       40,
		Placeholder:              "Untitled clip",
		Keywords:                 DefaultKeywords,
	}
}

// Input is the already-fetched text for one video. DurationSec <= 0 means
// unknown.
type Input struct {
	Description string
	Captions    string
	DurationSec int
}

// Detector suggests highlight clips. It holds no mutable state and is safe
// for concurrent use.
type Detector struct {
	params   Params
	keywords Keywords
	log      *slog.Logger
}

func NewDetector(p Params, log *slog.Logger) Detector {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return Detector{params: p, keywords: NewKeywords(p.Keywords), log: log}
}

// Detect runs the default detector.
func Detect(in Input, mode types.Mode) []types.ClipCandidate {
	return NewDetector(DefaultParams(), nil).Detect(in, mode)
}

// Detect returns clip candidates ordered by start time. Unknown modes behave
// like chapters.
func (d Detector) Detect(in Input, mode types.Mode) []types.ClipCandidate {
	var out []types.ClipCandidate
	switch mode {
	case types.ModeCaptions:
		out = d.fromCaptions(in)
	case types.ModeCombined:
		out = append(d.fromChapters(in), d.fromCaptions(in)...)
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].StartSeconds < out[j].StartSeconds
		})
	default:
		out = d.fromChapters(in)
	}
	d.log.Debug("clip candidates detected", "mode", string(mode), "count", len(out))
	return out
}

// fromChapters accepts a lone timestamp line, unlike section building.
func (d Detector) fromChapters(in Input) []types.ClipCandidate {
	cands := timestamps.Scan(in.Description)
	if len(cands) == 0 {
		return nil
	}
	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].StartSeconds < cands[j].StartSeconds
	})

	p := d.params
	out := make([]types.ClipCandidate, 0, len(cands))
	for i, c := range cands {
		end := timevalue.Add(c.StartSeconds, p.ChapterWindow)
		if i+1 < len(cands) {
			end = cands[i+1].StartSeconds
		}
		if in.DurationSec > 0 && end > in.DurationSec {
			end = in.DurationSec
		}
		if floor := timevalue.Add(c.StartSeconds, p.MinLength); end < floor {
			end = floor
		}
		label := strings.TrimSpace(c.Label)
		score := p.chapterScore(d.keywords, label)
		if label == "" {
			label = p.Placeholder
		}
		out = append(out, types.ClipCandidate{
			StartSeconds:    c.StartSeconds,
			EndSeconds:      end,
			ConfidenceScore: score,
			Label:           label,
		})
	}
	return out
}

func (d Detector) fromCaptions(in Input) []types.ClipCandidate {
	lines := captions.Decode(in.Captions)
	if len(lines) == 0 {
		return nil
	}

	p := d.params
	var out []types.ClipCandidate
	for _, ln := range lines {
		if !d.keywords.Match(ln.Text) {
			continue
		}
		end := timevalue.Add(ln.StartSeconds, p.CaptionWindow)
		if in.DurationSec > 0 && end > in.DurationSec {
			end = in.DurationSec
		}
		out = append(out, types.ClipCandidate{
			StartSeconds:    ln.StartSeconds,
			EndSeconds:      end,
			ConfidenceScore: clamp(p.CaptionConfidence, 0, 1),
			Label:           ln.Text,
		})
	}
	if len(out) > 0 {
		return out
	}

	// No keyword anywhere: fall back to the opening lines at low confidence.
	n := min(p.FallbackLines, len(lines))
	out = make([]types.ClipCandidate, 0, n)
	for _, ln := range lines[:n] {
		out = append(out, types.ClipCandidate{
			StartSeconds:    ln.StartSeconds,
			EndSeconds:      timevalue.Add(ln.StartSeconds, p.FallbackWindow),
			ConfidenceScore: clamp(p.FallbackConfidence, 0, 1),
			Label:           ellipsize(ln.Text, p.FallbackLabelRunes),
		})
	}
	return out
}

func ellipsize(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}
