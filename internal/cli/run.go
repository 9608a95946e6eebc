package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/forPelevin/timecut/internal/config"
	"github.com/forPelevin/timecut/internal/domain/timestamps"
	"github.com/forPelevin/timecut/internal/domain/timevalue"
	"github.com/forPelevin/timecut/internal/logger"
	"github.com/forPelevin/timecut/internal/pipeline"
	"github.com/forPelevin/timecut/internal/render"
	"github.com/forPelevin/timecut/internal/types"
)

const (
	commandSections = pipeline.CommandSections
	commandClips    = pipeline.CommandClips
)

const runTimeout = 5 * time.Minute

func run(cmd *cobra.Command, command pipeline.Command) error {
	flags := cmd.Flags()
	configPath, _ := flags.GetString("config")
	logLevel, _ := flags.GetString("log-level")
	logFormat, _ := flags.GetString("log-format")
	format, _ := flags.GetString("format")
	outDir, _ := flags.GetString("out-dir")
	durationRaw, _ := flags.GetString("duration")
	media, _ := flags.GetString("media")
	description, _ := flags.GetString("description")
	ffprobePath, _ := flags.GetString("ffprobe")

	engine, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if logLevel != "" {
		engine.Logging.Level = strings.ToLower(logLevel)
	}
	if logFormat != "" {
		engine.Logging.Format = strings.ToLower(logFormat)
	}
	if ffprobePath == "" {
		ffprobePath = getenvDefault("FFPROBE_PATH", "ffprobe")
	}

	duration, err := parseDuration(durationRaw)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	log := logger.New(logger.Config{
		Writer: cmd.ErrOrStderr(),
		Format: engine.Logging.Format,
		Level:  logger.ParseLevel(engine.Logging.Level),
	}).With("run_id", uuid.NewString(), "command", string(command))

	cfg := pipeline.Config{
		Command:         command,
		DescriptionPath: description,
		MediaPath:       media,
		DurationSec:     duration,
		Format:          render.Format(format),
		OutDir:          outDir,
		Out:             cmd.OutOrStdout(),
		Stdin:           cmd.InOrStdin(),
		FFprobePath:     ffprobePath,
		Engine:          engine,
		Log:             log,
	}
	switch command {
	case commandSections:
		cfg.CommentsPath, _ = flags.GetString("comments")
		cfg.ChaptersPath, _ = flags.GetString("chapters")
	case commandClips:
		cfg.CaptionsPath, _ = flags.GetString("captions")
		mode, _ := flags.GetString("mode")
		cfg.Mode = types.ParseMode(mode)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), runTimeout)
	defer cancel()

	start := time.Now()
	if err := pipeline.Run(ctx, cfg); err != nil {
		log.Error("run failed", "error", err)
		return err
	}
	log.Debug("run finished", slog.Duration("elapsed", time.Since(start)))
	return nil
}

// parseDuration accepts anything the time value parser does plus clock
// notation. Empty means unknown.
func parseDuration(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if sec := timevalue.Seconds(s); sec != timevalue.Invalid {
		return sec, nil
	}
	if c := timestamps.Scan(s); len(c) == 1 && c[0].Label == "" {
		return c[0].StartSeconds, nil
	}
	return 0, fmt.Errorf("invalid duration %q", s)
}

func printSampleConfig(cmd *cobra.Command) error {
	_, err := io.WriteString(cmd.OutOrStdout(), config.SampleConfig())
	return err
}

func getenvDefault(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
