package types

import (
	"fmt"
	"strings"
)

// Source identifies where a Section's boundaries came from.
type Source int

const (
	SourceOfficialChapter Source = iota + 1
	SourceComment
	SourceDescription
)

func (s Source) String() string {
	switch s {
	case SourceOfficialChapter:
		return "OFFICIAL_CHAPTER"
	case SourceComment:
		return "COMMENT"
	case SourceDescription:
		return "DESCRIPTION"
	default:
		return ""
	}
}

func (s Source) MarshalText() ([]byte, error) {
	str := s.String()
	if str == "" {
		return nil, fmt.Errorf("unknown source %d", int(s))
	}
	return []byte(str), nil
}

func (s *Source) UnmarshalText(b []byte) error {
	switch strings.ToUpper(strings.TrimSpace(string(b))) {
	case "OFFICIAL_CHAPTER":
		*s = SourceOfficialChapter
	case "COMMENT":
		*s = SourceComment
	case "DESCRIPTION":
		*s = SourceDescription
	default:
		return fmt.Errorf("unknown source %q", string(b))
	}
	return nil
}

// Mode selects which inputs the clip detector draws from.
type Mode string

const (
	ModeChapters Mode = "chapters"
	ModeCaptions Mode = "captions"
	ModeCombined Mode = "combined"
)

// ParseMode never fails: anything unrecognised means chapters.
func ParseMode(s string) Mode {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeCaptions:
		return ModeCaptions
	case ModeCombined:
		return ModeCombined
	default:
		return ModeChapters
	}
}

// Candidate is a raw (offset, label) pair found by scanning text.
type Candidate struct {
	StartSeconds int
	Label        string
}

type Section struct {
	Title        string `json:"title" yaml:"title"`
	StartSeconds int    `json:"startSeconds" yaml:"startSeconds"`
	EndSeconds   int    `json:"endSeconds" yaml:"endSeconds"`
	Source       Source `json:"source" yaml:"source"`
}

type ClipCandidate struct {
	StartSeconds    int     `json:"startSeconds" yaml:"startSeconds"`
	EndSeconds      int     `json:"endSeconds" yaml:"endSeconds"`
	ConfidenceScore float64 `json:"confidenceScore" yaml:"confidenceScore"`
	Label           string  `json:"label" yaml:"label"`
}

type CaptionLine struct {
	StartSeconds int    `json:"start"`
	Text         string `json:"text"`
}
