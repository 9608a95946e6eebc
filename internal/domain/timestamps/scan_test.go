package timestamps

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forPelevin/timecut/internal/types"
)

func TestScan_ChapterList(t *testing.T) {
	text := "0:00 Intro\n1:30 Verse\n3:10 Chorus\n"
	got := Scan(text)
	assert.Equal(t, []types.Candidate{
		{StartSeconds: 0, Label: "Intro"},
		{StartSeconds: 90, Label: "Verse"},
		{StartSeconds: 190, Label: "Chorus"},
	}, got)
}

func TestScan_LineShapes(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		wantStart int
		wantLabel string
	}{
		{"hours", "1:02:03 Bridge", 3723, "Bridge"},
		{"dash separator", "0:45 - Hook", 45, "Hook"},
		{"em dash separator", "02:15 — Second verse", 135, "Second verse"},
		{"pipe separator", "4:00 | Outro", 240, "Outro"},
		{"colon separator", "0:10: Warmup", 10, "Warmup"},
		{"bullet", "- 0:30 Intro", 30, "Intro"},
		{"unicode bullet", "• 1:00 Drop", 60, "Drop"},
		{"ordinal", "3. 5:00 Finale", 300, "Finale"},
		{"ordinal paren", "2) 0:20 Build", 20, "Build"},
		{"brackets", "[12:34] Solo", 754, "Solo"},
		{"parens", "(0:05) Count-in", 5, "Count-in"},
		{"long minutes", "75:00 Encore", 4500, "Encore"},
		{"no label", "0:00", 0, ""},
		{"label trimmed", "  0:07    spaced out   ", 7, "spaced out"},
		{"crlf", "0:09 Windows\r", 9, "Windows"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Scan(tt.line)
			require.Len(t, got, 1)
			assert.Equal(t, tt.wantStart, got[0].StartSeconds)
			assert.Equal(t, tt.wantLabel, got[0].Label)
		})
	}
}

func TestScan_SkipsNonMatchingLines(t *testing.T) {
	text := `Thanks for watching!
Meet me at the show, doors open at 7:30pm.

Tracklist:
0:00 Intro
not a 1:00 timestamp line
2:00 Verse`

	got := Scan(text)
	require.Len(t, got, 2)
	assert.Equal(t, 0, got[0].StartSeconds)
	assert.Equal(t, 120, got[1].StartSeconds)
}

func TestScan_KeepsAppearanceOrder(t *testing.T) {
	got := Scan("2:00 B\n0:00 A\n1:00 C")
	require.Len(t, got, 3)
	assert.Equal(t, []int{120, 0, 60}, []int{got[0].StartSeconds, got[1].StartSeconds, got[2].StartSeconds})
}

func TestScan_Empty(t *testing.T) {
	assert.Empty(t, Scan(""))
	assert.Empty(t, Scan("   \n\t\n"))
	assert.Empty(t, Scan("just prose with no chapters"))
}

func TestFormat(t *testing.T) {
	tests := map[int]string{
		0:    "0:00",
		59:   "0:59",
		90:   "1:30",
		3599: "59:59",
		3723: "1:02:03",
		-4:   "0:00",
	}
	for in, want := range tests {
		assert.Equal(t, want, Format(in))
	}
}

func TestFormat_ScanRoundTrip(t *testing.T) {
	for _, sec := range []int{0, 5, 90, 754, 3723, 36000} {
		got := Scan(Format(sec) + " label")
		require.Len(t, got, 1)
		assert.Equal(t, sec, got[0].StartSeconds)
	}
}

func TestScan_LongLineDoesNotHideLaterLines(t *testing.T) {
	text := strings.Repeat("x", 2<<20) + "\n0:00 Intro\n1:30 Verse"
	assert.Equal(t, []types.Candidate{
		{StartSeconds: 0, Label: "Intro"},
		{StartSeconds: 90, Label: "Verse"},
	}, Scan(text))
}
