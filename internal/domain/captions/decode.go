// Package captions turns a caption payload into time-ordered lines.
//
// Two encodings are accepted: a JSON array of {start|offset, text|content}
// objects, and a plain "<seconds>|<text>" line format. Decoding never fails;
// anything unreadable is dropped.
package captions

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/forPelevin/timecut/internal/domain/timevalue"
	"github.com/forPelevin/timecut/internal/types"
)

var startFields = []timevalue.Extractor{
	timevalue.Field("start"),
	timevalue.Field("offset"),
}

var textFields = []string{"text", "content"}

// Decode parses payload with the JSON decoder first and the line decoder
// second. The result is sorted by start time.
func Decode(payload string) []types.CaptionLine {
	if strings.TrimSpace(payload) == "" {
		return nil
	}

	lines, ok := decodeJSON(payload)
	if !ok {
		lines = decodePlain(payload)
	}
	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].StartSeconds < lines[j].StartSeconds
	})
	return lines
}

// decodeJSON reports ok=false only when payload is not a single JSON array,
// so a well-formed array of junk entries yields an empty result instead of
// falling through to the line decoder.
func decodeJSON(payload string) ([]types.CaptionLine, bool) {
	dec := json.NewDecoder(bytes.NewReader([]byte(payload)))
	dec.UseNumber()

	var raw []json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return nil, false
	}
	// The array must be the whole payload.
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, false
	}

	out := make([]types.CaptionLine, 0, len(raw))
	for _, item := range raw {
		var node map[string]any
		d := json.NewDecoder(bytes.NewReader(item))
		d.UseNumber()
		if err := d.Decode(&node); err != nil || node == nil {
			continue
		}
		start := timevalue.FirstOf(node, startFields...)
		if start == timevalue.Invalid {
			continue
		}
		text, ok := firstText(node)
		if !ok {
			continue
		}
		out = append(out, types.CaptionLine{StartSeconds: start, Text: text})
	}
	return out, true
}

func firstText(node map[string]any) (string, bool) {
	for _, key := range textFields {
		s, ok := node[key].(string)
		if !ok {
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			return s, true
		}
	}
	return "", false
}

func decodePlain(payload string) []types.CaptionLine {
	var out []types.CaptionLine
	for _, line := range strings.Split(payload, "\n") {
		head, text, found := strings.Cut(line, "|")
		if !found {
			continue
		}
		sec, err := strconv.Atoi(strings.TrimSpace(head))
		if err != nil || sec < 0 {
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		out = append(out, types.CaptionLine{StartSeconds: sec, Text: text})
	}
	return out
}
