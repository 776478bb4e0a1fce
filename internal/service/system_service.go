package service

import (
	"fmt"
	"os"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// SystemService answers health and version queries.
type SystemService struct {
	snapshotDir string
}

// NewSystemService creates a SystemService.
func NewSystemService(snapshotDir string) *SystemService {
	return &SystemService{snapshotDir: snapshotDir}
}

// CheckHealth verifies the snapshot directory is usable, creating it if it
// does not exist yet.
func (s *SystemService) CheckHealth() error {
	if err := os.MkdirAll(s.snapshotDir, 0o755); err != nil {
		return fmt.Errorf("snapshot directory unavailable: %w", err)
	}
	return nil
}

// CheckVersion returns the build version.
func (s *SystemService) CheckVersion() string {
	return Version
}
