// Package storage provides the ClickHouse persistence layer used by the
// ingester.
package storage

import (
	"context"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"pricefeed/internal/model"
)

// PriceStorage persists price records. Implementations must be safe for
// concurrent use.
type PriceStorage interface {
	// CreatePrices inserts a batch of records into the price table.
	CreatePrices(ctx context.Context, prices []*model.Price) error

	// Close releases database connection resources.
	Close() error
}

// clickhouseStorage implements PriceStorage using the native ClickHouse
// driver. Batch inserts keep ingestion throughput high.
type clickhouseStorage struct {
	conn driver.Conn
}

// NewClickHouseStorage parses the DSN, opens a connection and verifies
// connectivity with a ping. Returns an error if the database cannot be
// reached within 5 seconds.
func NewClickHouseStorage(dsn string) (PriceStorage, error) {
	opts, err := clickhouse.ParseDSN(dsn)
	if err != nil {
		return nil, err
	}

	conn, err := clickhouse.Open(opts)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := conn.Ping(ctx); err != nil {
		return nil, err
	}

	return &clickhouseStorage{conn: conn}, nil
}

// CreatePrices inserts records using a ClickHouse batch insert. Timestamps
// are written as the UTC instants carried by the records; the insertion
// timestamp was assigned at publish time and is preserved here.
func (s *clickhouseStorage) CreatePrices(ctx context.Context, prices []*model.Price) error {
	if len(prices) == 0 {
		return nil
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO prices (
			id, crypto_name, crypto_symbol, fiat_currency, source,
			open, close, high, low, volume, ticker,
			timestamp, dividends, stock_splits, metadata,
			insertion_timestamp, is_deleted
		)
	`)
	if err != nil {
		return err
	}

	for _, p := range prices {
		err := batch.Append(
			p.ID.String(),
			p.CryptoName,
			p.CryptoSymbol,
			p.FiatCurrency,
			p.Source,
			p.Open,
			p.Close,
			p.High,
			p.Low,
			p.Volume,
			p.Ticker,
			p.Timestamp.Time(),
			p.Dividends,
			p.StockSplits,
			p.Metadata,
			p.InsertionTimestamp.Time(),
			p.IsDeleted,
		)
		if err != nil {
			return err
		}
	}

	return batch.Send()
}

func (s *clickhouseStorage) Close() error {
	return s.conn.Close()
}
