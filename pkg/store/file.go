package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/vocamap/vocamap/pkg/errors"
	"github.com/vocamap/vocamap/pkg/ontology"
)

// FileStore is a file-based snapshot store for single-instance deployments.
// Each project is stored as one JSON file named after the project ID.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a file-based store rooted at baseDir.
// If baseDir is empty, defaults to ~/.config/vocamap/projects/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "vocamap", "projects")
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("create project dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) snapshotPath(project string) string {
	return filepath.Join(s.baseDir, project+".json")
}

func (s *FileStore) GetSnapshot(ctx context.Context, project string) (ontology.Snapshot, error) {
	if err := errors.ValidateProjectID(project); err != nil {
		return ontology.Snapshot{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.snapshotPath(project))
	if err != nil {
		if os.IsNotExist(err) {
			return ontology.Snapshot{}, ErrNotFound
		}
		return ontology.Snapshot{}, fmt.Errorf("read snapshot file: %w", err)
	}

	snap, err := ontology.UnmarshalSnapshot(data)
	if err != nil {
		return ontology.Snapshot{}, fmt.Errorf("parse snapshot: %w", err)
	}
	return snap, nil
}

func (s *FileStore) PutSnapshot(ctx context.Context, snap ontology.Snapshot) error {
	if err := errors.ValidateProjectID(snap.Project); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ontology.WriteSnapshotFile(snap, s.snapshotPath(snap.Project)); err != nil {
		return fmt.Errorf("write snapshot file: %w", err)
	}
	return nil
}

func (s *FileStore) DeleteSnapshot(ctx context.Context, project string) error {
	if err := errors.ValidateProjectID(project); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.snapshotPath(project))
	if os.IsNotExist(err) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("remove snapshot file: %w", err)
	}
	return nil
}

func (s *FileStore) ListProjects(ctx context.Context) ([]ProjectInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read project dir: %w", err)
	}

	var infos []ProjectInfo
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		project := strings.TrimSuffix(entry.Name(), ".json")
		snap, err := ontology.ReadSnapshotFile(filepath.Join(s.baseDir, entry.Name()))
		if err != nil {
			continue
		}
		var updated time.Time
		if fi, err := entry.Info(); err == nil {
			updated = fi.ModTime()
		}
		infos = append(infos, ProjectInfo{
			Project:   project,
			Classes:   len(snap.Classes),
			UpdatedAt: updated,
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Project < infos[j].Project })
	return infos, nil
}

func (s *FileStore) Close(ctx context.Context) error { return nil }

// Path returns the base directory for snapshot files.
func (s *FileStore) Path() string {
	return s.baseDir
}

var _ Store = (*FileStore)(nil)
