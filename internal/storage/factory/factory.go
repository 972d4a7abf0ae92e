package factory

import (
	"context"
	"fmt"

	"github.com/DjordjeVuckovic/rankeval/internal/storage"
	"github.com/DjordjeVuckovic/rankeval/internal/storage/es"
	"github.com/DjordjeVuckovic/rankeval/internal/storage/memory"
	"github.com/DjordjeVuckovic/rankeval/internal/storage/pg"
)

// NewRunStore builds the run store selected by cfg. The returned cleanup
// releases its connections and is never nil on success.
func NewRunStore(ctx context.Context, cfg *StorageConfig) (storage.RunStore, func(), error) {
	noop := func() {}

	switch cfg.Type {
	case storage.PG:
		if cfg.Pg == nil {
			return nil, nil, fmt.Errorf("missing PostgreSQL configuration")
		}
		pool, err := pg.NewConnectionPool(ctx, *cfg.Pg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create PostgreSQL connection pool: %w", err)
		}
		return pg.NewRunStore(pool), pool.Close, nil

	case storage.ES:
		if cfg.Es == nil {
			return nil, nil, fmt.Errorf("missing Elasticsearch configuration")
		}
		store, err := es.NewRunStore(ctx, *cfg.Es)
		if err != nil {
			return nil, nil, err
		}
		return store, noop, nil

	case storage.Memory:
		return memory.NewRunStore(), noop, nil

	default:
		return nil, nil, fmt.Errorf(string(storage.ErrUnsupportedStorer), cfg.Type)
	}
}
