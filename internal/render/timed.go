package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/forPelevin/timecut/internal/types"
)

// cue is one timed span in a chapter track.
type cue struct {
	Start time.Duration
	End   time.Duration
	Text  string
}

func sectionCues(secs []types.Section) []cue {
	out := make([]cue, 0, len(secs))
	for _, s := range secs {
		out = append(out, cue{Start: seconds(s.StartSeconds), End: seconds(s.EndSeconds), Text: s.Title})
	}
	return out
}

func clipCues(clips []types.ClipCandidate) []cue {
	out := make([]cue, 0, len(clips))
	for _, c := range clips {
		out = append(out, cue{Start: seconds(c.StartSeconds), End: seconds(c.EndSeconds), Text: c.Label})
	}
	return out
}

// renderVTT writes a WebVTT chapter track. A cue that would not end after
// its start lasts one second.
func renderVTT(cues []cue) string {
	var b strings.Builder
	b.WriteString("WEBVTT\n")
	for i, c := range cues {
		end := c.End
		if end <= c.Start {
			end = c.Start + time.Second
		}
		fmt.Fprintf(&b, "\n%d\n%s --> %s\n%s\n", i+1, vttTime(c.Start), vttTime(end), sanitizeVTT(c.Text))
	}
	return b.String()
}

// renderFFMetadata writes chapters that ffmpeg can mux with -map_chapters.
func renderFFMetadata(cues []cue) string {
	var b strings.Builder
	b.WriteString(";FFMETADATA1\n")
	for _, c := range cues {
		end := c.End
		if end < c.Start {
			end = c.Start
		}
		b.WriteString("\n[CHAPTER]\nTIMEBASE=1/1000\n")
		fmt.Fprintf(&b, "START=%d\nEND=%d\n", c.Start.Milliseconds(), end.Milliseconds())
		b.WriteString("title=")
		b.WriteString(escapeFFMetadata(c.Text))
		b.WriteString("\n")
	}
	return b.String()
}

func vttTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hs := int(d / time.Hour)
	d -= time.Duration(hs) * time.Hour
	ms := int(d / time.Minute)
	d -= time.Duration(ms) * time.Minute
	s := int(d / time.Second)
	d -= time.Duration(s) * time.Second
	milli := int(d / time.Millisecond)
	return fmt.Sprintf("%02d:%02d:%02d.%03d", hs, ms, s, milli)
}

// sanitizeVTT keeps a label on one line and out of the cue timing syntax.
func sanitizeVTT(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	s = strings.ReplaceAll(s, "-->", "->")
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	return s
}

var ffmetaEscaper = strings.NewReplacer(
	`\`, `\\`,
	"=", `\=`,
	";", `\;`,
	"#", `\#`,
	"\n", "\\\n",
)

func escapeFFMetadata(s string) string {
	return ffmetaEscaper.Replace(strings.TrimSpace(s))
}

func seconds(sec int) time.Duration { return time.Duration(sec) * time.Second }
