package sections

import (
	"sort"
	"strings"

	"github.com/forPelevin/timecut/internal/domain/timevalue"
	"github.com/forPelevin/timecut/internal/types"
)

// Providers disagree on field names and units. Each chain lists seconds
// fields first, then millisecond fields, then nested shapes.
var (
	startChain = []timevalue.Extractor{
		timevalue.Field("startSeconds"),
		timevalue.Field("start_seconds"),
		timevalue.Field("start_time"),
		timevalue.Field("startTime"),
		timevalue.Field("start"),
		timevalue.Field("seconds"),
		timevalue.Field("time"),
		timevalue.Field("offset"),
		timevalue.MillisField("startMs"),
		timevalue.MillisField("start_ms"),
		timevalue.MillisField("startTimeMs"),
		timevalue.MillisField("startOffsetMs"),
		timevalue.MillisField("offsetMs"),
		timevalue.MillisField("timeRangeStartMillis"),
		timevalue.Field("start.seconds"),
		timevalue.MillisField("start.ms"),
		timevalue.Field("time.seconds"),
		timevalue.MillisField("time.ms"),
		timevalue.Field("range.start"),
	}
	endChain = []timevalue.Extractor{
		timevalue.Field("endSeconds"),
		timevalue.Field("end_seconds"),
		timevalue.Field("end_time"),
		timevalue.Field("endTime"),
		timevalue.Field("end"),
		timevalue.MillisField("endMs"),
		timevalue.MillisField("end_ms"),
		timevalue.MillisField("endTimeMs"),
		timevalue.MillisField("endOffsetMs"),
		timevalue.Field("end.seconds"),
		timevalue.MillisField("end.ms"),
		timevalue.Field("range.end"),
	}
	lengthChain = []timevalue.Extractor{
		timevalue.Field("durationSeconds"),
		timevalue.Field("duration"),
		timevalue.Field("length"),
		timevalue.MillisField("durationMs"),
		timevalue.MillisField("lengthMs"),
		timevalue.MillisField("length_ms"),
	}
	titlePaths = []string{"title", "name", "label", "chapterTitle", "title.simpleText", "title.text", "tags.title"}
	listKeys   = []string{"chapters", "items", "markers", "sections"}
)

type officialEntry struct {
	start int
	end   int
	title string
}

// FromOfficial converts a decoded provider chapter payload into sections.
// Entries without a parseable start are dropped. Unlike Build there is no
// minimum count: a single official chapter is still authoritative.
func FromOfficial(payload any, durationSec int, p Params) []types.Section {
	nodes := officialNodes(payload)
	if len(nodes) == 0 {
		return nil
	}

	entries := make([]officialEntry, 0, len(nodes))
	for _, n := range nodes {
		start := timevalue.FirstOf(n, startChain...)
		if start == timevalue.Invalid {
			continue
		}
		end := timevalue.FirstOf(n, endChain...)
		if end == timevalue.Invalid {
			if length := timevalue.FirstOf(n, lengthChain...); length != timevalue.Invalid {
				end = timevalue.Add(start, length)
			}
		}
		entries = append(entries, officialEntry{start: start, end: end, title: officialTitle(n)})
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].start < entries[j].start })

	out := make([]types.Section, 0, len(entries))
	for i, e := range entries {
		end := e.end
		if end == timevalue.Invalid || end <= e.start {
			end = timevalue.Add(e.start, p.DefaultLength)
			if i+1 < len(entries) {
				end = entries[i+1].start
			}
		}
		out = append(out, types.Section{
			Title:        p.title(e.title),
			StartSeconds: e.start,
			EndSeconds:   p.bound(e.start, end, durationSec),
			Source:       types.SourceOfficialChapter,
		})
	}
	return out
}

// officialNodes accepts either a bare array of chapter objects or an object
// wrapping one under a well-known key.
func officialNodes(payload any) []map[string]any {
	var list []any
	switch v := payload.(type) {
	case []any:
		list = v
	case []map[string]any:
		return v
	case map[string]any:
		for _, k := range listKeys {
			if l, ok := v[k].([]any); ok {
				list = l
				break
			}
		}
	}

	out := make([]map[string]any, 0, len(list))
	for _, item := range list {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

func officialTitle(node map[string]any) string {
	for _, path := range titlePaths {
		v, ok := timevalue.Lookup(node, path)
		if !ok {
			continue
		}
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}
