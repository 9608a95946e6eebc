package sections

import (
	"log/slog"

	"github.com/forPelevin/timecut/internal/domain/timestamps"
	"github.com/forPelevin/timecut/internal/types"
)

// Materials is everything already fetched for one video. Every field is
// optional.
type Materials struct {
	// OfficialChapters is a decoded JSON payload from the metadata provider.
	OfficialChapters any
	// Comments are expected in relevance order; earlier bodies win.
	Comments    []string
	Description string
	DurationSec int
}

type Resolution struct {
	Sections []types.Section
	// Source is zero when no strategy produced anything.
	Source types.Source
}

// strategy returns ok=false to hand over to the next one.
type strategy struct {
	source types.Source
	run    func(m Materials, p Params) ([]types.Section, bool)
}

var strategies = []strategy{
	{source: types.SourceOfficialChapter, run: fromOfficialStrategy},
	{source: types.SourceComment, run: fromCommentsStrategy},
	{source: types.SourceDescription, run: fromDescriptionStrategy},
}

// Resolver picks one section list per video. The zero value is not usable;
// use NewResolver.
type Resolver struct {
	params Params
	log    *slog.Logger
}

func NewResolver(p Params, log *slog.Logger) Resolver {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return Resolver{params: p, log: log}
}

// Resolve tries official chapters, then comments, then the description and
// returns the first non-empty result. An empty Resolution is not an error.
func (r Resolver) Resolve(m Materials) Resolution {
	for _, s := range strategies {
		secs, ok := s.run(m, r.params)
		if !ok {
			r.log.Debug("section source skipped", "source", s.source.String())
			continue
		}
		r.log.Debug("section source selected", "source", s.source.String(), "sections", len(secs))
		return Resolution{Sections: secs, Source: s.source}
	}
	r.log.Debug("no section source produced results")
	return Resolution{}
}

// Resolve runs the default resolver.
func Resolve(m Materials) Resolution {
	return NewResolver(DefaultParams(), nil).Resolve(m)
}

func fromOfficialStrategy(m Materials, p Params) ([]types.Section, bool) {
	if m.OfficialChapters == nil {
		return nil, false
	}
	secs := FromOfficial(m.OfficialChapters, m.DurationSec, p)
	return secs, len(secs) > 0
}

func fromCommentsStrategy(m Materials, p Params) ([]types.Section, bool) {
	for _, body := range m.Comments {
		secs := Build(timestamps.Scan(body), types.SourceComment, m.DurationSec, p)
		if len(secs) >= 2 {
			return secs, true
		}
	}
	return nil, false
}

func fromDescriptionStrategy(m Materials, p Params) ([]types.Section, bool) {
	secs := Build(timestamps.Scan(m.Description), types.SourceDescription, m.DurationSec, p)
	return secs, len(secs) > 0
}
