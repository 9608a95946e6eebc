package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// commentSeparator splits a plain-text comments file into bodies.
const commentSeparator = "---"

type reader struct {
	stdin io.Reader
}

func (r reader) read(path string) ([]byte, error) {
	if path == stdinPath {
		if r.stdin == nil {
			return io.ReadAll(os.Stdin)
		}
		return io.ReadAll(r.stdin)
	}
	return os.ReadFile(path)
}

// text returns "" for an empty path.
func (r reader) text(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	b, err := r.read(path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// chapters decodes a provider chapter payload. Numbers stay json.Number so
// large millisecond values survive intact.
func (r reader) chapters(path string) (any, error) {
	if path == "" {
		return nil, nil
	}
	b, err := r.read(path)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("decode chapters json: %w", err)
	}
	return v, nil
}

func (r reader) comments(path string) ([]string, error) {
	if path == "" {
		return nil, nil
	}
	b, err := r.read(path)
	if err != nil {
		return nil, err
	}
	return parseComments(b), nil
}

// parseComments accepts a JSON array of strings or plain text with bodies
// separated by lines containing only "---". Blank bodies are dropped and
// order is kept.
func parseComments(b []byte) []string {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 {
		return nil
	}
	if trimmed[0] == '[' {
		var arr []string
		if err := json.Unmarshal(trimmed, &arr); err == nil {
			return dropBlank(arr)
		}
	}

	var (
		bodies []string
		cur    []string
	)
	flush := func() {
		bodies = append(bodies, strings.Join(cur, "\n"))
		cur = cur[:0]
	}
	for _, line := range strings.Split(string(b), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == commentSeparator {
			flush()
			continue
		}
		cur = append(cur, line)
	}
	flush()
	return dropBlank(bodies)
}

func dropBlank(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
