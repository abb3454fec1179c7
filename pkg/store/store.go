// Package store provides persistence for project ontology snapshots.
//
// The server keeps each project's vocabulary model as a Snapshot document
// keyed by project ID. Three backends ship with the package:
//   - memory: In-memory storage for development/testing
//   - file: File-based storage for single-instance or CLI usage
//   - mongo: MongoDB-backed storage for production deployments
//
// All backends implement the Store interface. A missing project is
// reported with ErrNotFound rather than a zero snapshot so callers can
// distinguish absence from storage failures.
package store

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/vocamap/vocamap/pkg/ontology"
)

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned when a project does not exist.
	ErrNotFound = errors.New("project not found")
)

// ProjectInfo summarizes a stored project for listings.
type ProjectInfo struct {
	Project   string    `json:"project" bson:"_id"`
	Classes   int       `json:"classes" bson:"classes"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// Store is the interface for snapshot storage backends.
type Store interface {
	// GetSnapshot retrieves a project's snapshot.
	// Returns ErrNotFound if the project doesn't exist.
	GetSnapshot(ctx context.Context, project string) (ontology.Snapshot, error)

	// PutSnapshot stores a project's snapshot, replacing any previous one.
	PutSnapshot(ctx context.Context, snap ontology.Snapshot) error

	// DeleteSnapshot removes a project.
	// Returns ErrNotFound if the project doesn't exist.
	DeleteSnapshot(ctx context.Context, project string) error

	// ListProjects returns summaries of all stored projects, sorted by ID.
	ListProjects(ctx context.Context) ([]ProjectInfo, error)

	// Close releases any resources held by the store.
	Close(ctx context.Context) error
}

// MemoryStore is an in-memory store for development and testing.
type MemoryStore struct {
	mu        sync.RWMutex
	snapshots map[string]ontology.Snapshot
	updated   map[string]time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		snapshots: make(map[string]ontology.Snapshot),
		updated:   make(map[string]time.Time),
	}
}

func (s *MemoryStore) GetSnapshot(ctx context.Context, project string) (ontology.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.snapshots[project]
	if !ok {
		return ontology.Snapshot{}, ErrNotFound
	}
	return snap, nil
}

func (s *MemoryStore) PutSnapshot(ctx context.Context, snap ontology.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshots[snap.Project] = snap
	s.updated[snap.Project] = time.Now()
	return nil
}

func (s *MemoryStore) DeleteSnapshot(ctx context.Context, project string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.snapshots[project]; !ok {
		return ErrNotFound
	}
	delete(s.snapshots, project)
	delete(s.updated, project)
	return nil
}

func (s *MemoryStore) ListProjects(ctx context.Context) ([]ProjectInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	infos := make([]ProjectInfo, 0, len(s.snapshots))
	for project, snap := range s.snapshots {
		infos = append(infos, ProjectInfo{
			Project:   project,
			Classes:   len(snap.Classes),
			UpdatedAt: s.updated[project],
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Project < infos[j].Project })
	return infos, nil
}

func (s *MemoryStore) Close(ctx context.Context) error { return nil }

var _ Store = (*MemoryStore)(nil)
