package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forPelevin/timecut/internal/config"
	"github.com/forPelevin/timecut/internal/ports"
	"github.com/forPelevin/timecut/internal/render"
	"github.com/forPelevin/timecut/internal/types"
)

type fakeProber struct{ info ports.MediaInfo }

func (f fakeProber) Probe(context.Context, string) (ports.MediaInfo, error) { return f.info, nil }

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestBuildOutputPath(t *testing.T) {
	now := time.Date(2026, 2, 12, 10, 30, 45, 1234, time.UTC)
	got := buildOutputPath("out", "/tmp/My Cool.Video.mp4", "sections", render.FormatJSON, now)
	base := filepath.Base(got)
	if filepath.Dir(got) != "out" {
		t.Fatalf("unexpected parent dir: %s", got)
	}
	prefix := "my-cool-video-sections-20260212-103045Z-"
	if !strings.HasPrefix(base, prefix) {
		t.Fatalf("unexpected output name: %s", base)
	}
	if len(base) != len(prefix)+6+len(".json") {
		t.Fatalf("unexpected output suffix length: %s", base)
	}

	got = buildOutputPath("out", "", "clips", render.FormatYAML, now)
	if !strings.HasPrefix(filepath.Base(got), "input-clips-") || filepath.Ext(got) != ".yaml" {
		t.Fatalf("unexpected fallback name: %s", got)
	}
}

func TestNormalizePathSegment(t *testing.T) {
	tests := map[string]string{
		"  My Cool.Video  ": "my-cool-video",
		"___":               "",
		"abc123":            "abc123",
		"Name (v2)!":        "name-v2",
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			if got := normalizePathSegment(in); got != want {
				t.Fatalf("normalizePathSegment(%q) = %q, want %q", in, got, want)
			}
		})
	}
}

func TestParseComments(t *testing.T) {
	long := strings.Repeat("x", 2<<20)
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "  \n", nil},
		{"json array", `["0:00 a\n1:00 b", "", "nice"]`, []string{"0:00 a\n1:00 b", "nice"}},
		{"separated", "0:00 a\n1:00 b\n---\nnice\r\n---\n\n", []string{"0:00 a\n1:00 b", "nice"}},
		{"single body", "just one\ncomment", []string{"just one\ncomment"}},
		{"bracket text is not json", "[0:00] intro\n[1:00] verse", []string{"[0:00] intro\n[1:00] verse"}},
		{"long line", long + "\n---\n0:00 a\n1:00 b", []string{long, "0:00 a\n1:00 b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseComments([]byte(tt.in)))
		})
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	desc := writeFile(t, dir, "desc.txt", "0:00 a")

	base := Config{Command: CommandSections, DescriptionPath: desc, Engine: config.Default()}
	require.NoError(t, base.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"unknown command", func(c *Config) { c.Command = "cut" }, "unknown command"},
		{"no sections input", func(c *Config) { c.DescriptionPath = "" }, "needs at least one"},
		{"no clips input", func(c *Config) { c.Command = CommandClips; c.DescriptionPath = "" }, "needs --description or --captions"},
		{"negative duration", func(c *Config) { c.DurationSec = -1 }, "duration"},
		{"missing file", func(c *Config) { c.CommentsPath = filepath.Join(dir, "nope") }, "stat input"},
		{"missing media", func(c *Config) { c.MediaPath = filepath.Join(dir, "nope.mp4") }, "stat media"},
		{"two stdin inputs", func(c *Config) { c.DescriptionPath = "-"; c.CommentsPath = "-" }, "stdin"},
		{"bad format", func(c *Config) { c.Format = "xml" }, "unknown output format"},
		{"bad engine config", func(c *Config) { c.Engine.Sections.DefaultLength = 0 }, "sections.default_length"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base
			tt.mutate(&c)
			err := c.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRun_SectionsFromComments(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	err := Run(context.Background(), Config{
		Command:         CommandSections,
		DescriptionPath: writeFile(t, dir, "desc.txt", "0:00 Intro\n1:00 Outro"),
		CommentsPath:    writeFile(t, dir, "comments.txt", "love it\n---\n0:00 Start\n0:40 Drop\n"),
		DurationSec:     90,
		Format:          render.FormatJSON,
		Out:             &out,
		Engine:          config.Default(),
	})
	require.NoError(t, err)

	var doc struct {
		Source   string          `json:"source"`
		Sections []types.Section `json:"sections"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
	assert.Equal(t, "COMMENT", doc.Source)
	assert.Equal(t, []types.Section{
		{Title: "Start", StartSeconds: 0, EndSeconds: 40, Source: types.SourceComment},
		{Title: "Drop", StartSeconds: 40, EndSeconds: 85, Source: types.SourceComment},
	}, doc.Sections)
}

func TestRun_SectionsFromChaptersViaStdin(t *testing.T) {
	var out bytes.Buffer
	err := Run(context.Background(), Config{
		Command:      CommandSections,
		ChaptersPath: "-",
		Stdin:        strings.NewReader(`{"chapters":[{"title":"Later","startMs":90000},{"title":"First","startMs":0}]}`),
		Format:       render.FormatText,
		Out:          &out,
		Engine:       config.Default(),
	})
	require.NoError(t, err)
	assert.Equal(t, "0:00 First\n1:30 Later\n", out.String())
}

func TestRun_SectionsUsesMediaChapters(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	err := Run(context.Background(), Config{
		Command:   CommandSections,
		MediaPath: writeFile(t, dir, "talk.mkv", ""),
		Format:    render.FormatText,
		Out:       &out,
		Engine:    config.Default(),
		Prober: fakeProber{info: ports.MediaInfo{
			DurationSec: 100,
			Chapters:    []any{map[string]any{"start_time": "0.0", "tags": map[string]any{"title": "Whole talk"}}},
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, "0:00 Whole talk\n", out.String())
}

func TestRun_BadChaptersJSON(t *testing.T) {
	dir := t.TempDir()
	err := Run(context.Background(), Config{
		Command:      CommandSections,
		ChaptersPath: writeFile(t, dir, "chapters.json", "{not json"),
		Out:          &bytes.Buffer{},
		Engine:       config.Default(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read chapters")
}

func TestRun_ClipsToOutDir(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "results")
	err := Run(context.Background(), Config{
		Command:      CommandClips,
		CaptionsPath: writeFile(t, dir, "song.captions.json", `[{"start":"12","text":"Chorus!"},{"offset":3,"content":"verse one"}]`),
		Mode:         types.ModeCaptions,
		Format:       render.FormatYAML,
		OutDir:       outDir,
		Engine:       config.Default(),
	})
	require.NoError(t, err)

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	name := entries[0].Name()
	assert.True(t, strings.HasPrefix(name, "song-captions-clips-"), name)
	assert.Equal(t, ".yaml", filepath.Ext(name))

	b, err := os.ReadFile(filepath.Join(outDir, name))
	require.NoError(t, err)
	assert.Contains(t, string(b), "mode: captions")
	assert.Contains(t, string(b), "label: verse one")
	assert.Contains(t, string(b), "label: Chorus!")
}

func TestRun_EngineConfigIsApplied(t *testing.T) {
	dir := t.TempDir()
	engine := config.Default()
	engine.Clips.Keywords = []string{"drop"}
	engine.Clips.KeywordChapterConfidence = 1

	var out bytes.Buffer
	err := Run(context.Background(), Config{
		Command:         CommandClips,
		DescriptionPath: writeFile(t, dir, "d.txt", "0:00 The drop\n0:45 Chorus"),
		Format:          render.FormatText,
		Out:             &out,
		Engine:          engine,
	})
	require.NoError(t, err)
	assert.Equal(t, "0:00-0:45 1.00 The drop\n0:45-1:15 0.60 Chorus\n", out.String())
}
