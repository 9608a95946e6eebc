// Package config loads engine tunables and logging settings from TOML and
// the environment.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/forPelevin/timecut/internal/domain/highlights"
	"github.com/forPelevin/timecut/internal/domain/sections"
)

const (
	EnvConfigPath = "TIMECUT_CONFIG"
	EnvLogLevel   = "TIMECUT_LOG_LEVEL"
	EnvLogFormat  = "TIMECUT_LOG_FORMAT"
)

//go:embed sample_config.toml
var sampleConfig string

// SampleConfig returns the annotated sample configuration file.
func SampleConfig() string {
	return sampleConfig
}

type Config struct {
	Sections Sections `toml:"sections"`
	Clips    Clips    `toml:"clips"`
	Logging  Logging  `toml:"logging"`
}

type Sections struct {
	MinCandidates  int    `toml:"min_candidates" validate:"gte=1"`
	DefaultLength  int    `toml:"default_length" validate:"gte=1"`
	MinLength      int    `toml:"min_length" validate:"gte=0"`
	MaxTitleLength int    `toml:"max_title_length" validate:"gte=1"`
	Placeholder    string `toml:"placeholder" validate:"required"`
}

type Clips struct {
	ChapterWindow            int      `toml:"chapter_window" validate:"gte=1"`
	MinLength                int      `toml:"min_length" validate:"gte=0"`
	ChapterConfidence        float64  `toml:"chapter_confidence" validate:"gte=0,lte=1"`
	KeywordChapterConfidence float64  `toml:"keyword_chapter_confidence" validate:"gte=0,lte=1"`
	CaptionWindow            int      `toml:"caption_window" validate:"gte=1"`
	CaptionConfidence        float64  `toml:"caption_confidence" validate:"gte=0,lte=1"`
	FallbackLines            int      `toml:"fallback_lines" validate:"gte=0"`
	FallbackWindow           int      `toml:"fallback_window" validate:"gte=1"`
	FallbackConfidence       float64  `toml:"fallback_confidence" validate:"gte=0,lte=1"`
	FallbackLabelLength      int      `toml:"fallback_label_length" validate:"gte=1"`
	Placeholder              string   `toml:"placeholder" validate:"required"`
	Keywords                 []string `toml:"keywords" validate:"dive,required"`
}

type Logging struct {
	Level string `toml:"level" validate:"oneof=debug info warn warning error"`
	// Format is json or text. Empty detects from the output stream.
	Format string `toml:"format" validate:"omitempty,oneof=json text"`
}

// Default returns the built-in configuration.
func Default() Config {
	sp := sections.DefaultParams()
	hp := highlights.DefaultParams()
	return Config{
		Sections: Sections{
			MinCandidates:  sp.MinCandidates,
			DefaultLength:  sp.DefaultLength,
			MinLength:      sp.MinLength,
			MaxTitleLength: sp.MaxTitleRunes,
			Placeholder:    sp.Placeholder,
		},
		Clips: Clips{
			ChapterWindow:            hp.ChapterWindow,
			MinLength:                hp.MinLength,
			ChapterConfidence:        hp.ChapterConfidence,
			KeywordChapterConfidence: hp.KeywordChapterConfidence,
			CaptionWindow:            hp.CaptionWindow,
			CaptionConfidence:        hp.CaptionConfidence,
			FallbackLines:            hp.FallbackLines,
			FallbackWindow:           hp.FallbackWindow,
			FallbackConfidence:       hp.FallbackConfidence,
			FallbackLabelLength:      hp.FallbackLabelRunes,
			Placeholder:              hp.Placeholder,
			Keywords:                 append([]string(nil), hp.Keywords...),
		},
		Logging: Logging{Level: "info"},
	}
}

// Load builds the configuration from defaults, the embedded sample, the TOML
// file at path and finally the environment. An empty path falls back to
// TIMECUT_CONFIG; a missing file is an error only when a path was given.
func Load(path string) (Config, error) {
	cfg := Default()
	if err := toml.Unmarshal([]byte(sampleConfig), &cfg); err != nil {
		return Config{}, fmt.Errorf("parse sample config: %w", err)
	}

	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = strings.TrimSpace(os.Getenv(EnvConfigPath))
	}
	if path != "" {
		err := decodeFile(path, &cfg)
		if err != nil && (explicit || !errors.Is(err, fs.ErrNotExist)) {
			return Config{}, err
		}
	}

	cfg.applyEnv()
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	dec := toml.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var sme *toml.StrictMissingError
		if errors.As(err, &sme) {
			return fmt.Errorf("parse config %s: %s", path, sme.String())
		}
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.Logging.Level = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		c.Logging.Format = v
	}
}

func (c *Config) normalize() {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Sections.Placeholder = strings.TrimSpace(c.Sections.Placeholder)
	c.Clips.Placeholder = strings.TrimSpace(c.Clips.Placeholder)

	kw := c.Clips.Keywords[:0]
	for _, w := range c.Clips.Keywords {
		if w = strings.TrimSpace(w); w != "" {
			kw = append(kw, w)
		}
	}
	c.Clips.Keywords = kw
}

// SectionParams maps the [sections] table onto the section builder.
func (c Config) SectionParams() sections.Params {
	return sections.Params{
		MinCandidates: c.Sections.MinCandidates,
		DefaultLength: c.Sections.DefaultLength,
		MinLength:     c.Sections.MinLength,
		MaxTitleRunes: c.Sections.MaxTitleLength,
		Placeholder:   c.Sections.Placeholder,
	}
}

// ClipParams maps the [clips] table onto the highlight detector.
func (c Config) ClipParams() highlights.Params {
	return highlights.Params{
		ChapterWindow:            c.Clips.ChapterWindow,
		MinLength:                c.Clips.MinLength,
		ChapterConfidence:        c.Clips.ChapterConfidence,
		KeywordChapterConfidence: c.Clips.KeywordChapterConfidence,
		CaptionWindow:            c.Clips.CaptionWindow,
		CaptionConfidence:        c.Clips.CaptionConfidence,
		FallbackLines:            c.Clips.FallbackLines,
		FallbackWindow:           c.Clips.FallbackWindow,
		FallbackConfidence:       c.Clips.FallbackConfidence,
		FallbackLabelRunes:       c.Clips.FallbackLabelLength,
		Placeholder:              c.Clips.Placeholder,
		Keywords:                 append([]string(nil), c.Clips.Keywords...),
	}
}
