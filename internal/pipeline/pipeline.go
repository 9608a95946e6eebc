package pipeline

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/forPelevin/timecut/internal/config"
	"github.com/forPelevin/timecut/internal/domain/highlights"
	"github.com/forPelevin/timecut/internal/domain/sections"
	"github.com/forPelevin/timecut/internal/ports"
	"github.com/forPelevin/timecut/internal/ports/adapters/ffprobe"
	"github.com/forPelevin/timecut/internal/render"
	"github.com/forPelevin/timecut/internal/types"
	"github.com/forPelevin/timecut/internal/usecase"
)

type Command string

const (
	CommandSections Command = "sections"
	CommandClips    Command = "clips"
)

// stdinPath makes an input flag read standard input.
const stdinPath = "-"

type Config struct {
	Command Command

	DescriptionPath string
	CommentsPath    string
	ChaptersPath    string
	CaptionsPath    string
	MediaPath       string

	// DurationSec <= 0 means unknown.
	DurationSec int
	Mode        types.Mode
	Format      render.Format

	// OutDir, when set, receives a uniquely named result file instead of Out.
	OutDir string
	Out    io.Writer
	Stdin  io.Reader

	FFprobePath string
	Engine      config.Config
	Log         *slog.Logger

	// Prober overrides the ffprobe adapter.
	Prober ports.MediaProber
}

func (c Config) Validate() error {
	switch c.Command {
	case CommandSections:
		if c.DescriptionPath == "" && c.CommentsPath == "" && c.ChaptersPath == "" && c.MediaPath == "" {
			return errors.New("sections needs at least one of --description, --comments, --chapters or --media")
		}
	case CommandClips:
		if c.DescriptionPath == "" && c.CaptionsPath == "" {
			return errors.New("clips needs --description or --captions")
		}
	default:
		return fmt.Errorf("unknown command %q", c.Command)
	}
	if c.DurationSec < 0 {
		return fmt.Errorf("duration must be >= 0")
	}

	stdinUsers := 0
	for _, p := range []string{c.DescriptionPath, c.CommentsPath, c.ChaptersPath, c.CaptionsPath} {
		if p == stdinPath {
			stdinUsers++
			continue
		}
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err != nil {
			return fmt.Errorf("stat input: %w", err)
		}
	}
	if stdinUsers > 1 {
		return errors.New("only one input can be read from stdin")
	}
	if c.MediaPath != "" {
		if _, err := os.Stat(c.MediaPath); err != nil {
			return fmt.Errorf("stat media: %w", err)
		}
	}
	if _, err := render.ParseFormat(string(c.Format)); err != nil {
		return err
	}
	return c.Engine.Validate()
}

func Run(ctx context.Context, cfg Config) error {
	log := cfg.Log
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	format, err := render.ParseFormat(string(cfg.Format))
	if err != nil {
		return err
	}

	prober := cfg.Prober
	if prober == nil {
		prober = ffprobe.New(cfg.FFprobePath)
	}
	uc := usecase.New(usecase.Deps{
		Media:    prober,
		Resolver: sections.NewResolver(cfg.Engine.SectionParams(), log),
		Detector: highlights.NewDetector(cfg.Engine.ClipParams(), log),
		Log:      log,
	})

	r := reader{stdin: cfg.Stdin}
	description, err := r.text(cfg.DescriptionPath)
	if err != nil {
		return fmt.Errorf("read description: %w", err)
	}

	var out bytes.Buffer
	switch cfg.Command {
	case CommandSections:
		in := usecase.SectionsInput{
			Description: description,
			DurationSec: cfg.DurationSec,
			MediaPath:   cfg.MediaPath,
		}
		if in.Comments, err = r.comments(cfg.CommentsPath); err != nil {
			return fmt.Errorf("read comments: %w", err)
		}
		if in.OfficialChapters, err = r.chapters(cfg.ChaptersPath); err != nil {
			return fmt.Errorf("read chapters: %w", err)
		}
		log.Debug("inputs loaded",
			"description_bytes", len(description),
			"comments", len(in.Comments),
			"has_chapters", in.OfficialChapters != nil,
		)

		res, err := uc.Sections(ctx, in)
		if err != nil {
			return err
		}
		if err := render.Sections(&out, format, res.Sections, res.Source); err != nil {
			return err
		}

	case CommandClips:
		captions, err := r.text(cfg.CaptionsPath)
		if err != nil {
			return fmt.Errorf("read captions: %w", err)
		}
		res, err := uc.Clips(ctx, usecase.ClipsInput{
			Description: description,
			Captions:    captions,
			Mode:        cfg.Mode,
			DurationSec: cfg.DurationSec,
			MediaPath:   cfg.MediaPath,
		})
		if err != nil {
			return err
		}
		if err := render.Clips(&out, format, res.Clips, res.Mode); err != nil {
			return err
		}

	default:
		return fmt.Errorf("unknown command %q", cfg.Command)
	}

	if cfg.OutDir == "" {
		w := cfg.Out
		if w == nil {
			w = os.Stdout
		}
		_, err := w.Write(out.Bytes())
		return err
	}

	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return err
	}
	path := buildOutputPath(cfg.OutDir, cfg.inputName(), string(cfg.Command), format, time.Now().UTC())
	if err := os.WriteFile(path, out.Bytes(), 0o644); err != nil {
		return err
	}
	log.Info("result written", "path", path)
	return nil
}

// inputName picks the file whose name labels the result.
func (c Config) inputName() string {
	for _, p := range []string{c.MediaPath, c.DescriptionPath, c.ChaptersPath, c.CaptionsPath, c.CommentsPath} {
		if p != "" && p != stdinPath {
			return p
		}
	}
	return ""
}

func buildOutputPath(outRoot, input, command string, format render.Format, now time.Time) string {
	name := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	name = normalizePathSegment(name)
	if name == "" {
		name = "input"
	}
	ts := now.UTC().Format("20060102-150405Z")
	runSeed := fmt.Sprintf("%s|%s|%d", input, command, now.UTC().UnixNano())
	suffix := hash(runSeed)[:6]
	return filepath.Join(outRoot, fmt.Sprintf("%s-%s-%s-%s.%s", name, command, ts, suffix, extension(format)))
}

func extension(f render.Format) string {
	switch f {
	case render.FormatYAML:
		return "yaml"
	case render.FormatTable, render.FormatText:
		return "txt"
	case render.FormatVTT:
		return "vtt"
	case render.FormatFFMetadata:
		return "ffmeta"
	default:
		return "json"
	}
}

func normalizePathSegment(s string) string {
	var b strings.Builder
	prevDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
			prevDash = false
		default:
			if !prevDash {
				b.WriteByte('-')
				prevDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

func hash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])[:12]
}

var _ ports.MediaProber = (*ffprobe.Adapter)(nil)
