// Package service orchestrates the write path (validate, assign identity,
// publish, aggregate) and the read path (build and execute the bucketed
// query, with an optional result cache in front).
package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"pricefeed/internal/model"
	"pricefeed/internal/queue"
	"pricefeed/internal/repository"
)

// ResultCache is an optional read-through cache for query results.
type ResultCache interface {
	Get(ctx context.Context, key string) ([]model.Row, bool)
	Set(ctx context.Context, key string, rows []model.Row)
}

// Config bounds the external calls the service makes.
type Config struct {
	// PublishTimeout caps each per-record queue publish.
	PublishTimeout time.Duration

	// QueryTimeout caps read-path query execution.
	QueryTimeout time.Duration
}

// PriceService is safe for concurrent use; each request's records are
// processed independently with no shared mutable state.
type PriceService struct {
	publisher queue.Publisher
	repo      repository.PriceRepository
	cache     ResultCache
	logger    *slog.Logger
	cfg       Config
}

// NewPriceService wires the service. cache may be nil to disable caching.
func NewPriceService(publisher queue.Publisher, repo repository.PriceRepository, cache ResultCache, logger *slog.Logger, cfg Config) *PriceService {
	if cfg.PublishTimeout <= 0 {
		cfg.PublishTimeout = 10 * time.Second
	}
	if cfg.QueryTimeout <= 0 {
		cfg.QueryTimeout = 30 * time.Second
	}
	return &PriceService{
		publisher: publisher,
		repo:      repo,
		cache:     cache,
		logger:    logger,
		cfg:       cfg,
	}
}

// PublishBatch assigns identity and insertion timestamps to each validated
// precursor, publishes them to the queue one at a time, and aggregates the
// outcomes. Records fail independently: a publish error is captured into
// the failure list and never aborts the rest of the batch. Outcome order
// matches input order.
func (s *PriceService) PublishBatch(ctx context.Context, precursors []model.Precursor) model.BatchResult {
	start := model.Now()
	outcomes := make([]model.RecordOutcome, 0, len(precursors))
	published, failed := 0, 0

	for _, precursor := range precursors {
		record := model.NewPrice(precursor, model.NewUID(), model.Now())

		messageID, err := s.publishRecord(ctx, record)
		if err != nil {
			s.logger.Error("failed to publish record", "id", record.ID, "error", err)
			outcomes = append(outcomes, model.FailedOutcome(record, err))
			failed++
			continue
		}
		s.logger.Debug("published record", "id", record.ID, "message_id", messageID)
		outcomes = append(outcomes, model.PublishedOutcome(record.ID, messageID))
		published++
	}

	status := model.StatusError
	switch {
	case failed == 0 && published > 0:
		status = model.StatusSuccess
	case failed > 0 && published > 0:
		status = model.StatusPartial
	}

	return model.BatchResult{
		Status: status,
		Data:   outcomes,
		Metadata: model.ResponseMetadata{
			Rows:            len(outcomes),
			StartTimestamp:  start,
			FinishTimestamp: model.Now(),
		},
	}
}

// publishRecord serializes one record and hands it to the queue under a
// bounded timeout. The JSON body always carries every schema field;
// metadata is a plain string so it can never render as null, and
// is_deleted stays a native boolean.
func (s *PriceService) publishRecord(ctx context.Context, record model.Price) (string, error) {
	payload, err := json.Marshal(record)
	if err != nil {
		return "", err
	}
	pctx, cancel := context.WithTimeout(ctx, s.cfg.PublishTimeout)
	defer cancel()
	return s.publisher.Publish(pctx, record.ID.String(), payload)
}

// QueryPrices executes the latest-per-bucket query for normalized
// parameters. Store failures are logged and returned to the caller
// unchanged; the query is idempotent, so retries belong to a higher layer.
func (s *PriceService) QueryPrices(ctx context.Context, params model.QueryParams) (model.QueryResult, error) {
	start := model.Now()

	cacheKey := params.CacheKey()
	if s.cache != nil {
		if rows, ok := s.cache.Get(ctx, cacheKey); ok {
			s.logger.Debug("query served from cache", "key", cacheKey)
			return s.result(rows, start), nil
		}
	}

	qctx, cancel := context.WithTimeout(ctx, s.cfg.QueryTimeout)
	defer cancel()

	rows, err := s.repo.LatestPerBucket(qctx, params)
	if err != nil {
		s.logger.Error("price query failed", "error", err)
		return model.QueryResult{}, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, cacheKey, rows)
	}
	return s.result(rows, start), nil
}

func (s *PriceService) result(rows []model.Row, start model.DateTime) model.QueryResult {
	return model.QueryResult{
		Status: string(model.StatusSuccess),
		Data:   rows,
		Metadata: model.ResponseMetadata{
			Rows:            len(rows),
			StartTimestamp:  start,
			FinishTimestamp: model.Now(),
		},
	}
}
