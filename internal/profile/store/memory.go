// Package store persists versioned skin profile snapshots. The pipeline only
// sees the ProfileStore port; both implementations here keep every version so
// a scoped retake can inherit axes from the prior snapshot.
package store

import (
	"context"
	"sync"

	"dermis/internal/profile"
	id "dermis/pkg/domain"
	"dermis/pkg/platform/sentinel"
)

// Memory is an in-memory profile store for tests and single-node deployments.
type Memory struct {
	mu        sync.RWMutex
	snapshots map[id.UserID][]profile.SkinProfile
}

// NewMemory constructs an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{snapshots: make(map[id.UserID][]profile.SkinProfile)}
}

// Latest returns the highest-version snapshot for the user.
func (s *Memory) Latest(_ context.Context, userID id.UserID) (*profile.SkinProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	versions := s.snapshots[userID]
	if len(versions) == 0 {
		return nil, sentinel.ErrNotFound
	}
	latest := versions[0]
	for _, snap := range versions[1:] {
		if snap.Version > latest.Version {
			latest = snap
		}
	}
	out := latest
	return &out, nil
}

// Save appends a snapshot, rejecting duplicate versions.
func (s *Memory) Save(_ context.Context, snap profile.SkinProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.snapshots[snap.UserID] {
		if existing.Version == snap.Version {
			return sentinel.ErrVersionConflict
		}
	}
	s.snapshots[snap.UserID] = append(s.snapshots[snap.UserID], snap)
	return nil
}

// Version returns a specific snapshot version for the user.
func (s *Memory) Version(_ context.Context, userID id.UserID, version id.ProfileVersion) (*profile.SkinProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, snap := range s.snapshots[userID] {
		if snap.Version == version {
			out := snap
			return &out, nil
		}
	}
	return nil, sentinel.ErrNotFound
}
