package ports

import "context"

// MediaInfo is what a local media file can tell about itself.
type MediaInfo struct {
	DurationSec int
	// Chapters is the decoded chapter payload, nil when the file has none.
	// It has the same loose shape as provider chapter payloads.
	Chapters any
}

type MediaProber interface {
	Probe(ctx context.Context, path string) (MediaInfo, error)
}
