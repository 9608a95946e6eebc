// Package render writes section and clip results in the output formats the
// command line offers.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/forPelevin/timecut/internal/domain/timestamps"
	"github.com/forPelevin/timecut/internal/types"
)

type Format string

// vtt is a WebVTT chapter track and ffmetadata is the chapter file ffmpeg
// muxes with -map_chapters.
const (
	FormatJSON       Format = "json"
	FormatYAML       Format = "yaml"
	FormatTable      Format = "table"
	FormatText       Format = "text"
	FormatVTT        Format = "vtt"
	FormatFFMetadata Format = "ffmetadata"
)

// Formats lists every supported format in help-text order.
var Formats = []Format{FormatJSON, FormatYAML, FormatTable, FormatText, FormatVTT, FormatFFMetadata}

func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case "":
		return FormatJSON, nil
	case FormatJSON, FormatYAML, FormatTable, FormatText, FormatVTT, FormatFFMetadata:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q (want json, yaml, table, text, vtt or ffmetadata)", s)
}

type sectionsDocument struct {
	Source   string          `json:"source,omitempty" yaml:"source,omitempty"`
	Sections []types.Section `json:"sections" yaml:"sections"`
}

type clipsDocument struct {
	Mode  types.Mode            `json:"mode" yaml:"mode"`
	Clips []types.ClipCandidate `json:"clips" yaml:"clips"`
}

// Sections writes a resolved section list. source is the zero Source when
// nothing was found.
func Sections(w io.Writer, f Format, secs []types.Section, source types.Source) error {
	if secs == nil {
		secs = []types.Section{}
	}
	switch f {
	case FormatJSON, "":
		return writeJSON(w, sectionsDocument{Source: source.String(), Sections: secs})
	case FormatYAML:
		return writeYAML(w, sectionsDocument{Source: source.String(), Sections: secs})
	case FormatTable:
		return writeString(w, sectionsTable(secs))
	case FormatText:
		return writeString(w, sectionsText(secs))
	case FormatVTT:
		return writeString(w, renderVTT(sectionCues(secs)))
	case FormatFFMetadata:
		return writeString(w, renderFFMetadata(sectionCues(secs)))
	}
	return fmt.Errorf("unknown output format %q", f)
}

// Clips writes clip candidates for the given mode.
func Clips(w io.Writer, f Format, clips []types.ClipCandidate, mode types.Mode) error {
	if clips == nil {
		clips = []types.ClipCandidate{}
	}
	switch f {
	case FormatJSON, "":
		return writeJSON(w, clipsDocument{Mode: mode, Clips: clips})
	case FormatYAML:
		return writeYAML(w, clipsDocument{Mode: mode, Clips: clips})
	case FormatTable:
		return writeString(w, clipsTable(clips))
	case FormatText:
		return writeString(w, clipsText(clips))
	case FormatVTT:
		return writeString(w, renderVTT(clipCues(clips)))
	case FormatFFMetadata:
		return writeString(w, renderFFMetadata(clipCues(clips)))
	}
	return fmt.Errorf("unknown output format %q", f)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

func writeString(w io.Writer, s string) error {
	if s == "" {
		return nil
	}
	if !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	_, err := io.WriteString(w, s)
	return err
}

// sectionsText is a chapter list that can be pasted back into a description.
func sectionsText(secs []types.Section) string {
	var b strings.Builder
	for _, s := range secs {
		b.WriteString(timestamps.Format(s.StartSeconds))
		b.WriteByte(' ')
		b.WriteString(s.Title)
		b.WriteByte('\n')
	}
	return b.String()
}

func clipsText(clips []types.ClipCandidate) string {
	var b strings.Builder
	for _, c := range clips {
		fmt.Fprintf(&b, "%s-%s %s %s\n",
			timestamps.Format(c.StartSeconds),
			timestamps.Format(c.EndSeconds),
			confidence(c.ConfidenceScore),
			c.Label)
	}
	return b.String()
}

func confidence(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
