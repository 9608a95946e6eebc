//go:build integration

package itest

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

func requireTools(t *testing.T, names ...string) {
	t.Helper()
	for _, n := range names {
		if _, err := exec.LookPath(n); err != nil {
			t.Skipf("%s not on PATH", n)
		}
	}
}

// makeChapteredMedia writes a silent audio file of durationSec seconds with
// the given chapter titles spaced evenly.
func makeChapteredMedia(t *testing.T, dir string, durationSec int, titles []string) string {
	t.Helper()

	meta := ";FFMETADATA1\n"
	step := durationSec * 1000 / len(titles)
	for i, title := range titles {
		end := (i + 1) * step
		if i == len(titles)-1 {
			end = durationSec * 1000
		}
		meta += fmt.Sprintf("[CHAPTER]\nTIMEBASE=1/1000\nSTART=%d\nEND=%d\ntitle=%s\n", i*step, end, title)
	}
	metaPath := filepath.Join(dir, "chapters.ffmeta")
	if err := os.WriteFile(metaPath, []byte(meta), 0o644); err != nil {
		t.Fatalf("write ffmetadata: %v", err)
	}

	out := filepath.Join(dir, "session.mka")
	cmd := exec.Command("ffmpeg",
		"-y",
		"-f", "lavfi",
		"-i", fmt.Sprintf("anullsrc=r=8000:cl=mono:d=%d", durationSec),
		"-i", metaPath,
		"-map_metadata", "1",
		"-map_chapters", "1",
		"-c:a", "pcm_s16le",
		out,
	)
	if b, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("ffmpeg fixture failed: %v\n%s", err, string(b))
	}
	return out
}
