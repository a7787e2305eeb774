// Package repository builds and executes the read-path query against the
// analytical store.
package repository

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"pricefeed/internal/model"
)

// OutputTimeLayout renders result timestamps with fixed millisecond
// precision so they are stable across client languages.
const OutputTimeLayout = "2006-01-02T15:04:05.000Z"

// floatPrecision is the number of decimal digits rendered for float
// columns, avoiding binary-float representation drift in clients.
const floatPrecision = 10

// PriceRepository answers latest-per-bucket queries over the price table.
type PriceRepository interface {
	LatestPerBucket(ctx context.Context, params model.QueryParams) ([]model.Row, error)
}

type gormPriceRepository struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewGormPriceRepository builds a repository over an open connection. The
// repository is stateless and safely reentrant.
func NewGormPriceRepository(db *gorm.DB, logger *slog.Logger) PriceRepository {
	return &gormPriceRepository{db: db, logger: logger}
}

// cteColumns is the column set ranked inside the CTE. It always includes
// timestamp (needed for partitioning and ordering) regardless of the
// caller's projection.
var cteColumns = []string{
	model.FieldID, model.FieldCryptoName, model.FieldCryptoSymbol,
	model.FieldFiatCurrency, model.FieldOpen, model.FieldClose,
	model.FieldHigh, model.FieldLow, model.FieldVolume, model.FieldTimestamp,
}

// BuildLatestPerBucketQuery assembles the one-row-per-bucket query:
// soft-deleted rows and rows outside the inclusive date range are filtered
// before ranking, each remaining row is ranked within its truncated-time
// bucket (most recent first), and only rank-1 rows survive. The rank and
// soft-delete columns never reach the projection. Symbol and currency
// filters bind only when supplied. Interval unit and value are validated
// enums/integers, so interpolating them into the window expression is safe.
func BuildLatestPerBucketQuery(params model.QueryParams) (string, map[string]any) {
	var sb strings.Builder

	sb.WriteString("WITH interval_data AS (\n")
	sb.WriteString("    SELECT ")
	sb.WriteString(strings.Join(cteColumns, ", "))
	fmt.Fprintf(&sb,
		",\n           ROW_NUMBER() OVER (PARTITION BY toStartOfInterval(%s, INTERVAL %d %s) ORDER BY %s DESC) AS rn\n",
		model.FieldTimestamp, params.IntervalValue, params.Interval, model.FieldTimestamp)
	sb.WriteString("    FROM prices\n")
	fmt.Fprintf(&sb, "    WHERE %s = false\n", model.FieldIsDeleted)
	fmt.Fprintf(&sb, "      AND %s BETWEEN @start_date AND @end_date\n", model.FieldTimestamp)

	binds := map[string]any{
		"start_date": params.StartDate.Time(),
		"end_date":   params.EndDate.Time(),
	}
	if params.CryptoSymbol != "" {
		fmt.Fprintf(&sb, "      AND %s = @crypto_symbol\n", model.FieldCryptoSymbol)
		binds["crypto_symbol"] = params.CryptoSymbol
	}
	if params.FiatCurrency != "" {
		fmt.Fprintf(&sb, "      AND %s = @fiat_currency\n", model.FieldFiatCurrency)
		binds["fiat_currency"] = params.FiatCurrency
	}
	sb.WriteString(")\n")

	fmt.Fprintf(&sb, "SELECT %s\nFROM interval_data\nWHERE rn = 1\nORDER BY %s",
		strings.Join(params.Columns, ", "), model.FieldTimestamp)

	return sb.String(), binds
}

// LatestPerBucket executes the built query and renders each row to the
// fixed-precision string forms. Execution errors are logged and returned
// unchanged; the caller decides whether to retry.
func (r *gormPriceRepository) LatestPerBucket(ctx context.Context, params model.QueryParams) ([]model.Row, error) {
	query, binds := BuildLatestPerBucketQuery(params)

	rows, err := r.db.WithContext(ctx).Raw(query, binds).Rows()
	if err != nil {
		r.logger.Error("latest-per-bucket query failed", "error", err)
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var results []model.Row
	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, err
		}

		row := model.Row{Columns: columns, Values: make(map[string]string, len(columns))}
		for i, col := range columns {
			row.Values[col] = FormatValue(values[i])
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("latest-per-bucket row iteration failed", "error", err)
		return nil, err
	}
	return results, nil
}

// FormatValue renders a scanned column value: timestamps as ISO-8601 with
// milliseconds, floats as fixed 10-digit decimals, everything else as-is.
func FormatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case time.Time:
		return v.UTC().Format(OutputTimeLayout)
	case *time.Time:
		if v == nil {
			return ""
		}
		return v.UTC().Format(OutputTimeLayout)
	case float64:
		return decimal.NewFromFloat(v).StringFixed(floatPrecision)
	case float32:
		return decimal.NewFromFloat32(v).StringFixed(floatPrecision)
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}
