package memory

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/DjordjeVuckovic/rankeval/internal/storage"
	"github.com/google/uuid"
)

type RunStore struct {
	storageLock sync.RWMutex
	storage     map[uuid.UUID]storage.Run
}

func NewRunStore() *RunStore {
	return &RunStore{
		storage: make(map[uuid.UUID]storage.Run),
	}
}

func (s *RunStore) Save(ctx context.Context, run storage.Run) (uuid.UUID, error) {
	storage.Prepare(&run)

	s.storageLock.Lock()
	defer s.storageLock.Unlock()
	s.storage[run.ID] = run

	slog.Debug("Saved run to in-memory storage", "id", run.ID, "job", run.JobName)
	return run.ID, nil
}

func (s *RunStore) Get(ctx context.Context, id uuid.UUID) (*storage.Run, error) {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()

	run, ok := s.storage[id]
	if !ok {
		return nil, storage.ErrRunNotFound
	}
	return &run, nil
}

func (s *RunStore) List(ctx context.Context, limit int) ([]storage.Run, error) {
	s.storageLock.RLock()
	runs := make([]storage.Run, 0, len(s.storage))
	for _, run := range s.storage {
		runs = append(runs, run)
	}
	s.storageLock.RUnlock()

	slices.SortFunc(runs, func(a, b storage.Run) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return slices.Compare(b.ID[:], a.ID[:])
	})

	return runs[:min(len(runs), storage.NormalizeLimit(limit))], nil
}

func (s *RunStore) Healthy(ctx context.Context) bool {
	return true
}
