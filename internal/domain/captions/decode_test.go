package captions

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/forPelevin/timecut/internal/types"
)

func TestDecode_JSONArray(t *testing.T) {
	payload := `[
		{"start": 10, "text": "world"},
		{"start": 5, "text": "hello"},
		{"offset": "7.8", "content": "from offset"},
		{"start": "1500ms", "text": "millis"}
	]`
	got := Decode(payload)
	assert.Equal(t, []types.CaptionLine{
		{StartSeconds: 1, Text: "millis"},
		{StartSeconds: 5, Text: "hello"},
		{StartSeconds: 7, Text: "from offset"},
		{StartSeconds: 10, Text: "world"},
	}, got)
}

func TestDecode_JSONFieldPriority(t *testing.T) {
	got := Decode(`[{"start": 3, "offset": 99, "text": "primary", "content": "secondary"}]`)
	assert.Equal(t, []types.CaptionLine{{StartSeconds: 3, Text: "primary"}}, got)

	got = Decode(`[{"start": "bad", "offset": 4, "text": "  ", "content": "fallback text"}]`)
	assert.Equal(t, []types.CaptionLine{{StartSeconds: 4, Text: "fallback text"}}, got)
}

func TestDecode_JSONSkipsInvalidEntries(t *testing.T) {
	payload := `[
		{"start": -1, "text": "negative"},
		{"text": "no start"},
		{"start": 2},
		"not an object",
		null,
		{"start": 8, "text": 42},
		{"start": 9, "text": "kept"}
	]`
	assert.Equal(t, []types.CaptionLine{{StartSeconds: 9, Text: "kept"}}, Decode(payload))
}

func TestDecode_JSONArrayOfJunkDoesNotFallThrough(t *testing.T) {
	assert.Empty(t, Decode(`[{"nope": true}]`))
	assert.Empty(t, Decode(`[]`))
}

func TestDecode_PlainLines(t *testing.T) {
	payload := "12|second line\n3|first line\nbroken line\n-4|negative\nx|not a number\n20|  \n30|a|b"
	got := Decode(payload)
	assert.Equal(t, []types.CaptionLine{
		{StartSeconds: 3, Text: "first line"},
		{StartSeconds: 12, Text: "second line"},
		{StartSeconds: 30, Text: "a|b"},
	}, got)
}

func TestDecode_StableForEqualOffsets(t *testing.T) {
	got := Decode("5|a\n5|b\n1|c")
	assert.Equal(t, []string{"c", "a", "b"}, []string{got[0].Text, got[1].Text, got[2].Text})
}

func TestDecode_Malformed(t *testing.T) {
	for _, payload := range []string{"", "   ", "{", `{"start": 1, "text": "object not array"}`, "[{"} {
		t.Run(payload, func(t *testing.T) {
			assert.Empty(t, Decode(payload))
		})
	}
}

func TestDecode_LongLineDoesNotHideLaterLines(t *testing.T) {
	payload := "1|" + strings.Repeat("a", 2<<20) + "\n5|hello\n10|world"
	got := Decode(payload)
	assert.Len(t, got, 3)
	assert.Equal(t, "world", got[2].Text)
}

func TestDecode_ArrayWithTrailingDataIsNotJSON(t *testing.T) {
	got := Decode(`[{"start":1,"text":"a"}] trailing junk`)
	assert.Empty(t, got, "not a JSON array and no start|text lines")

	got = Decode("[{\"start\":1,\"text\":\"a\"}]\n  \n")
	assert.Equal(t, []types.CaptionLine{{StartSeconds: 1, Text: "a"}}, got)
}
