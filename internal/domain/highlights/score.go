package highlights

import (
	"strings"

	"golang.org/x/text/cases"
)

// DefaultKeywords are song-structure words that tend to mark a clip-worthy moment.
var DefaultKeywords = []string{"chorus", "hook", "verse", "intro", "outro"}

// Keywords matches text against a fixed keyword set, ignoring case.
type Keywords struct {
	folded []string
}

func NewKeywords(words []string) Keywords {
	fold := cases.Fold()
	k := Keywords{folded: make([]string, 0, len(words))}
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		k.folded = append(k.folded, fold.String(w))
	}
	return k
}

// Match reports whether any keyword occurs as a substring of text.
func (k Keywords) Match(text string) bool {
	if len(k.folded) == 0 || strings.TrimSpace(text) == "" {
		return false
	}
	t := cases.Fold().String(text)
	for _, w := range k.folded {
		if strings.Contains(t, w) {
			return true
		}
	}
	return false
}

// chapterScore returns the confidence for a description chapter.
func (p Params) chapterScore(k Keywords, label string) float64 {
	if k.Match(label) {
		return clamp(p.KeywordChapterConfidence, 0, 1)
	}
	return clamp(p.ChapterConfidence, 0, 1)
}

func clamp(x, a, b float64) float64 {
	if x < a {
		return a
	}
	if x > b {
		return b
	}
	return x
}
