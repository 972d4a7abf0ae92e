package es

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/DjordjeVuckovic/rankeval/internal/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/refresh"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/sortorder"
	"github.com/google/uuid"
)

// RunDocument is the indexed form of a storage.Run.
type RunDocument struct {
	ID            string    `json:"id"`
	JobName       string    `json:"job_name"`
	Rows          int       `json:"rows"`
	Cols          int       `json:"cols"`
	Offset        int       `json:"offset"`
	TrainExcluded bool      `json:"train_excluded"`
	Cutoffs       []int     `json:"cutoffs"`
	Precision     []float32 `json:"precision"`
	Recall        []float32 `json:"recall"`
	CreatedAt     time.Time `json:"created_at"`
}

type RunStore struct {
	client    *elasticsearch.TypedClient
	indexName string
}

func NewRunStore(ctx context.Context, config ClientConfig) (*RunStore, error) {
	client, err := newClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	indexName := config.IndexName
	if indexName == "" {
		indexName = DefaultIndexName
	}

	s := &RunStore{
		client:    client,
		indexName: indexName,
	}

	if err := s.EnsureIndex(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure index exists: %w", err)
	}

	return s, nil
}

func (s *RunStore) Save(ctx context.Context, run storage.Run) (uuid.UUID, error) {
	storage.Prepare(&run)
	doc := toDocument(run)

	res, err := s.client.Index(s.indexName).
		Id(doc.ID).
		Document(doc).
		Refresh(refresh.Waitfor).
		Do(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to index run: %w", err)
	}

	slog.Debug("Run indexed", "id", doc.ID, "index", s.indexName, "result", res.Result)
	return run.ID, nil
}

func (s *RunStore) Get(ctx context.Context, id uuid.UUID) (*storage.Run, error) {
	res, err := s.client.Get(s.indexName, id.String()).Do(ctx)
	if err != nil {
		var esErr *types.ElasticsearchError
		if errors.As(err, &esErr) && esErr.Status == http.StatusNotFound {
			return nil, storage.ErrRunNotFound
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	if !res.Found || len(res.Source_) == 0 {
		return nil, storage.ErrRunNotFound
	}

	return decodeRun(res.Source_)
}

func (s *RunStore) List(ctx context.Context, limit int) ([]storage.Run, error) {
	order := sortorder.Desc
	res, err := s.client.Search().
		Index(s.indexName).
		Query(&types.Query{MatchAll: &types.MatchAllQuery{}}).
		Size(storage.NormalizeLimit(limit)).
		Sort(
			&types.SortOptions{
				SortOptions: map[string]types.FieldSort{
					"created_at": {Order: &order},
				},
			},
			&types.SortOptions{
				SortOptions: map[string]types.FieldSort{
					"id": {Order: &order},
				},
			},
		).
		Do(ctx)
	if err != nil {
		slog.Error("Elasticsearch run listing failed", "error", err, "index", s.indexName)
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	runs := make([]storage.Run, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		run, err := decodeRun(hit.Source_)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, nil
}

func (s *RunStore) Healthy(ctx context.Context) bool {
	ok, err := s.client.Ping().Do(ctx)
	if err != nil {
		slog.Warn("Elasticsearch health check failed", "error", err)
		return false
	}
	return ok
}

func (s *RunStore) EnsureIndex(ctx context.Context) error {
	exists, err := s.client.Indices.Exists(s.indexName).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to check if index exists: %w", err)
	}

	if exists {
		slog.Info("Index already exists", "index", s.indexName)
		return nil
	}

	mappings := types.TypeMapping{
		Properties: map[string]types.Property{
			"id":             types.NewKeywordProperty(),
			"job_name":       types.NewKeywordProperty(),
			"rows":           types.NewIntegerNumberProperty(),
			"cols":           types.NewIntegerNumberProperty(),
			"offset":         types.NewIntegerNumberProperty(),
			"train_excluded": types.NewBooleanProperty(),
			"cutoffs":        types.NewIntegerNumberProperty(),
			"precision":      types.NewFloatNumberProperty(),
			"recall":         types.NewFloatNumberProperty(),
			"created_at":     types.NewDateProperty(),
		},
	}

	createRes, err := s.client.Indices.Create(s.indexName).
		Mappings(&mappings).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}

	if !createRes.Acknowledged {
		return fmt.Errorf("index creation was not acknowledged")
	}

	slog.Info("Index created successfully", "index", s.indexName)
	return nil
}

func toDocument(run storage.Run) RunDocument {
	return RunDocument{
		ID:            run.ID.String(),
		JobName:       run.JobName,
		Rows:          run.Rows,
		Cols:          run.Cols,
		Offset:        run.Offset,
		TrainExcluded: run.TrainExcluded,
		Cutoffs:       run.Cutoffs,
		Precision:     run.Precision,
		Recall:        run.Recall,
		CreatedAt:     run.CreatedAt,
	}
}

func decodeRun(source json.RawMessage) (*storage.Run, error) {
	var doc RunDocument
	if err := json.Unmarshal(source, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode run document: %w", err)
	}

	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse run ID: %w", err)
	}

	return &storage.Run{
		ID:            id,
		JobName:       doc.JobName,
		Rows:          doc.Rows,
		Cols:          doc.Cols,
		Offset:        doc.Offset,
		TrainExcluded: doc.TrainExcluded,
		Cutoffs:       doc.Cutoffs,
		Precision:     doc.Precision,
		Recall:        doc.Recall,
		CreatedAt:     doc.CreatedAt,
	}, nil
}
