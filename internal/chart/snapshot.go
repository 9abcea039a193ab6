package chart

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SnapshotStore writes per-asset PNG snapshots of the latest price chart.
// Snapshots are diagnostic output only; the request pipeline never reads
// them back.
type SnapshotStore struct {
	dir    string
	logger zerolog.Logger
}

// NewSnapshotStore creates a store rooted at dir. The directory is created
// lazily on first save.
func NewSnapshotStore(dir string) *SnapshotStore {
	return &SnapshotStore{
		dir:    dir,
		logger: log.With().Str("component", "snapshot_store").Logger(),
	}
}

// Save writes the PNG for an asset, replacing any previous snapshot. The
// write goes through a temp file and a rename so concurrent requests for the
// same asset can never leave a half-written image behind.
func (s *SnapshotStore) Save(asset string, png []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating snapshot dir: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, asset+"_*.png.tmp")
	if err != nil {
		return "", fmt.Errorf("creating temp snapshot: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(png); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("writing snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("closing snapshot: %w", err)
	}

	path := filepath.Join(s.dir, fmt.Sprintf("%s_analysis.png", asset))
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("publishing snapshot: %w", err)
	}

	s.logger.Debug().Str("path", path).Int("bytes", len(png)).Msg("Saved chart snapshot")
	return path, nil
}
