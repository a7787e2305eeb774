// Package ingester consumes price records from Kafka and persists them to
// ClickHouse. It handles batching, retry and graceful shutdown.
package ingester

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"

	"pricefeed/internal/model"
	"pricefeed/internal/storage"
)

// Config holds ingester batch parameters.
type Config struct {
	// BatchSize is the maximum number of records to accumulate before
	// flushing to the database.
	BatchSize int

	// BatchTimeout is the maximum time to wait before flushing, even if the
	// batch isn't full.
	BatchTimeout time.Duration
}

// Ingester implements at-least-once delivery: Kafka offsets are committed
// only after the batch is in ClickHouse.
type Ingester struct {
	reader  *kafka.Reader
	storage storage.PriceStorage
	logger  *logrus.Logger
	cfg     Config
}

func NewIngester(reader *kafka.Reader, storage storage.PriceStorage, logger *logrus.Logger, cfg Config) *Ingester {
	return &Ingester{
		reader:  reader,
		storage: storage,
		logger:  logger,
		cfg:     cfg,
	}
}

// Start runs the ingestion loop until the context is cancelled, flushing
// any buffered records on shutdown.
func (ig *Ingester) Start(ctx context.Context) error {
	ig.logger.WithField("batch_size", ig.cfg.BatchSize).Info("Starting ingester loop")

	batchPrices := make([]*model.Price, 0, ig.cfg.BatchSize)
	batchMsgs := make([]kafka.Message, 0, ig.cfg.BatchSize)

	ticker := time.NewTicker(ig.cfg.BatchTimeout)
	defer ticker.Stop()

	flush := func() error {
		if len(batchPrices) == 0 {
			return nil
		}

		// Never drop data: keep retrying until the database accepts it.
		for {
			if err := ig.storage.CreatePrices(ctx, batchPrices); err != nil {
				ig.logger.WithError(err).Error("DB insert failed, retrying in 2s")

				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(2 * time.Second):
					continue
				}
			}
			break
		}

		// Commit Kafka offsets after the successful insert (at-least-once).
		if err := ig.reader.CommitMessages(ctx, batchMsgs...); err != nil {
			ig.logger.WithError(err).Warn("Failed to commit offsets")
		}

		batchPrices = batchPrices[:0]
		batchMsgs = batchMsgs[:0]
		ticker.Reset(ig.cfg.BatchTimeout)
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return flush()

		case <-ticker.C:
			if err := flush(); err != nil {
				return err
			}

		default:
			fetchCtx, cancel := context.WithTimeout(ctx, ig.cfg.BatchTimeout)
			m, err := ig.reader.FetchMessage(fetchCtx)
			cancel()

			if err != nil {
				if errors.Is(err, context.DeadlineExceeded) {
					continue
				}
				if errors.Is(err, context.Canceled) {
					return nil
				}
				ig.logger.WithError(err).Error("Kafka fetch error")
				time.Sleep(time.Second)
				continue
			}

			price, err := ParseRecord(m.Value)
			if err != nil {
				// Bad payloads are skipped; their offsets commit with the
				// next successful batch.
				ig.logger.WithError(err).Warn("Skipping malformed record")
				batchMsgs = append(batchMsgs, m)
				continue
			}

			batchPrices = append(batchPrices, price)
			batchMsgs = append(batchMsgs, m)

			if len(batchPrices) >= ig.cfg.BatchSize {
				if err := flush(); err != nil {
					return err
				}
			}
		}
	}
}

// ParseRecord deserializes and sanity-checks one queue payload. The
// producer guarantees every schema field is present, so a missing id or
// symbol means the payload did not come from this pipeline.
func ParseRecord(payload []byte) (*model.Price, error) {
	var price model.Price
	if err := json.Unmarshal(payload, &price); err != nil {
		return nil, fmt.Errorf("invalid record payload: %w", err)
	}

	if price.ID == "" || price.CryptoSymbol == "" || price.FiatCurrency == "" {
		return nil, fmt.Errorf("missing identity fields: id=%q symbol=%q currency=%q",
			price.ID, price.CryptoSymbol, price.FiatCurrency)
	}

	for _, v := range []float64{price.Open, price.Close, price.High, price.Low, price.Volume} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("corrupted numeric data in record %s", price.ID)
		}
	}

	if price.Timestamp.IsZero() || price.InsertionTimestamp.IsZero() {
		return nil, fmt.Errorf("record %s is missing timestamps", price.ID)
	}

	return &price, nil
}
