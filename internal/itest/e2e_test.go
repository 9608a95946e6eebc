//go:build integration

package itest

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forPelevin/timecut/internal/config"
	"github.com/forPelevin/timecut/internal/pipeline"
	"github.com/forPelevin/timecut/internal/render"
	"github.com/forPelevin/timecut/internal/types"
)

type sectionsDoc struct {
	Source   string          `json:"source"`
	Sections []types.Section `json:"sections"`
}

func TestE2E_SectionsFromMediaChapters(t *testing.T) {
	requireTools(t, "ffmpeg", "ffprobe")

	tmp := t.TempDir()
	media := makeChapteredMedia(t, tmp, 30, []string{"Part one", "Part two", "Part three"})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	var out bytes.Buffer
	err := pipeline.Run(ctx, pipeline.Config{
		Command:         pipeline.CommandSections,
		DescriptionPath: filepath.Join(mustRepoRoot(t), "internal", "itest", "testdata", "description.txt"),
		MediaPath:       media,
		Format:          render.FormatJSON,
		Out:             &out,
		Engine:          config.Default(),
	})
	require.NoError(t, err)

	var doc sectionsDoc
	require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
	assert.Equal(t, "OFFICIAL_CHAPTER", doc.Source)
	assert.Equal(t, []types.Section{
		{Title: "Part one", StartSeconds: 0, EndSeconds: 10, Source: types.SourceOfficialChapter},
		{Title: "Part two", StartSeconds: 10, EndSeconds: 20, Source: types.SourceOfficialChapter},
		{Title: "Part three", StartSeconds: 20, EndSeconds: 30, Source: types.SourceOfficialChapter},
	}, doc.Sections)
}

func TestE2E_ClipsUseProbedDuration(t *testing.T) {
	requireTools(t, "ffmpeg", "ffprobe")

	tmp := t.TempDir()
	media := makeChapteredMedia(t, tmp, 200, []string{"Only"})

	var out bytes.Buffer
	err := pipeline.Run(context.Background(), pipeline.Config{
		Command:      pipeline.CommandClips,
		CaptionsPath: filepath.Join(mustRepoRoot(t), "internal", "itest", "testdata", "captions.json"),
		MediaPath:    media,
		Mode:         types.ModeCaptions,
		Format:       render.FormatText,
		Out:          &out,
		Engine:       config.Default(),
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "1:35-2:05 0.80 first verse, here we go")
	assert.Contains(t, out.String(), "3:10-3:20 0.80 sing the chorus with me", "window is cut at the probed duration")
}
