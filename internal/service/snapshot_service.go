package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rsundaram/Networth-Tracker-Backend/internal/apperrors"
	"github.com/rsundaram/Networth-Tracker-Backend/internal/model"
)

const latestSnapshotFile = "latest.json"

// SnapshotService reads and writes the single JSON snapshot kept between
// runs. The snapshot is the only persistence in the system.
type SnapshotService struct {
	dir string
}

// NewSnapshotService creates a SnapshotService rooted at dir.
func NewSnapshotService(dir string) *SnapshotService {
	return &SnapshotService{dir: dir}
}

// LoadLatest returns the previous run's snapshot, or ErrSnapshotNotFound if
// none has been written yet.
func (s *SnapshotService) LoadLatest() (model.Snapshot, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, latestSnapshotFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return model.Snapshot{}, apperrors.ErrSnapshotNotFound
		}
		return model.Snapshot{}, fmt.Errorf("reading snapshot: %w", err)
	}

	var snapshot model.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return model.Snapshot{}, fmt.Errorf("parsing snapshot: %w", err)
	}
	return snapshot, nil
}

// SaveLatest overwrites the snapshot file, creating the directory on first
// use. The write goes through a temp file and rename so a crashed run never
// leaves a truncated snapshot behind.
func (s *SnapshotService) SaveLatest(snapshot model.Snapshot) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating snapshot dir: %w", err)
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	target := filepath.Join(s.dir, latestSnapshotFile)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := os.Rename(tmp, target); err != nil {
		return fmt.Errorf("replacing snapshot: %w", err)
	}
	return nil
}

// QoQChanges computes per-key deltas of current values against the previous
// snapshot's map. Keys absent from the previous snapshot get a zero delta.
func QoQChanges(previous map[string]float64, current map[string]float64) map[string]float64 {
	changes := make(map[string]float64, len(current))
	for key, value := range current {
		prev, ok := previous[key]
		if !ok {
			changes[key] = 0
			continue
		}
		changes[key] = value - prev
	}
	return changes
}
