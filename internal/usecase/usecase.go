package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/forPelevin/timecut/internal/domain/highlights"
	"github.com/forPelevin/timecut/internal/domain/sections"
	"github.com/forPelevin/timecut/internal/ports"
	"github.com/forPelevin/timecut/internal/types"
)

// ErrNoProber is returned when a media path is given but no prober is wired.
var ErrNoProber = errors.New("media probing is not available")

type Deps struct {
	// Media is optional; it is only consulted when an input names a media file.
	Media    ports.MediaProber
	Resolver sections.Resolver
	Detector highlights.Detector
	Log      *slog.Logger
}

type Usecase struct{ d Deps }

func New(d Deps) Usecase {
	if d.Log == nil {
		d.Log = slog.New(slog.DiscardHandler)
	}
	return Usecase{d: d}
}

type SectionsInput struct {
	OfficialChapters any
	Comments         []string
	Description      string
	// DurationSec <= 0 means unknown.
	DurationSec int
	// MediaPath, when set, fills in the duration and official chapters the
	// caller did not supply.
	MediaPath string
}

type SectionsResult struct {
	Sections    []types.Section
	Source      types.Source
	DurationSec int
}

func (u Usecase) Sections(ctx context.Context, in SectionsInput) (SectionsResult, error) {
	if in.MediaPath != "" {
		info, err := u.probe(ctx, in.MediaPath)
		if err != nil {
			return SectionsResult{}, err
		}
		if in.DurationSec <= 0 {
			in.DurationSec = info.DurationSec
		}
		if in.OfficialChapters == nil && info.Chapters != nil {
			u.d.Log.Debug("using chapters embedded in media", "path", in.MediaPath)
			in.OfficialChapters = info.Chapters
		}
	}

	res := u.d.Resolver.Resolve(sections.Materials{
		OfficialChapters: in.OfficialChapters,
		Comments:         in.Comments,
		Description:      in.Description,
		DurationSec:      in.DurationSec,
	})
	u.d.Log.Info("sections resolved",
		"source", res.Source.String(),
		"count", len(res.Sections),
		"duration_sec", in.DurationSec,
	)
	return SectionsResult{Sections: res.Sections, Source: res.Source, DurationSec: in.DurationSec}, nil
}

type ClipsInput struct {
	Description string
	Captions    string
	Mode        types.Mode
	DurationSec int
	MediaPath   string
}

type ClipsResult struct {
	Clips       []types.ClipCandidate
	Mode        types.Mode
	DurationSec int
}

func (u Usecase) Clips(ctx context.Context, in ClipsInput) (ClipsResult, error) {
	if in.MediaPath != "" && in.DurationSec <= 0 {
		info, err := u.probe(ctx, in.MediaPath)
		if err != nil {
			return ClipsResult{}, err
		}
		in.DurationSec = info.DurationSec
	}
	mode := types.ParseMode(string(in.Mode))

	clips := u.d.Detector.Detect(highlights.Input{
		Description: in.Description,
		Captions:    in.Captions,
		DurationSec: in.DurationSec,
	}, mode)
	u.d.Log.Info("clip candidates ready",
		"mode", string(mode),
		"count", len(clips),
		"duration_sec", in.DurationSec,
	)
	return ClipsResult{Clips: clips, Mode: mode, DurationSec: in.DurationSec}, nil
}

func (u Usecase) probe(ctx context.Context, path string) (ports.MediaInfo, error) {
	if u.d.Media == nil {
		return ports.MediaInfo{}, ErrNoProber
	}
	info, err := u.d.Media.Probe(ctx, path)
	if err != nil {
		return ports.MediaInfo{}, err
	}
	u.d.Log.Debug("media probed", "path", path, "duration_sec", info.DurationSec, "has_chapters", info.Chapters != nil)
	return info, nil
}
