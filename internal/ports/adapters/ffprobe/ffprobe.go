package ffprobe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"

	"github.com/forPelevin/timecut/internal/domain/timevalue"
	"github.com/forPelevin/timecut/internal/ports"
)

type runFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

type Adapter struct {
	ffprobe string
	run     runFunc
}

func New(ffprobePath string) *Adapter {
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &Adapter{ffprobe: ffprobePath, run: runCommand}
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("%w\n%s", err, stderr.String())
	}
	return out, nil
}

type probeOutput struct {
	Format struct {
		Duration any `json:"duration"`
	} `json:"format"`
	Chapters []any `json:"chapters"`
}

// Probe reads the container duration and any embedded chapters.
func (a *Adapter) Probe(ctx context.Context, path string) (ports.MediaInfo, error) {
	b, err := a.run(ctx, a.ffprobe,
		"-v", "error",
		"-print_format", "json",
		"-show_format",
		"-show_chapters",
		path,
	)
	if err != nil {
		return ports.MediaInfo{}, fmt.Errorf("ffprobe %s: %w", path, err)
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var out probeOutput
	if err := dec.Decode(&out); err != nil {
		return ports.MediaInfo{}, fmt.Errorf("decode ffprobe output: %w", err)
	}

	dur := timevalue.Seconds(out.Format.Duration)
	if dur == timevalue.Invalid {
		return ports.MediaInfo{}, fmt.Errorf("ffprobe %s: no usable duration (%v)", path, out.Format.Duration)
	}

	info := ports.MediaInfo{DurationSec: dur}
	if len(out.Chapters) > 0 {
		info.Chapters = out.Chapters
	}
	return info, nil
}
