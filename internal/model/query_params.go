package model

import (
	"fmt"
	"strings"
	"time"
)

// Output formats of the read endpoint.
const (
	FormatJSON = "json"
	FormatXML  = "xml"
	FormatCSV  = "csv"
)

const maxQueryRange = 30 * 24 * time.Hour

// QueryParams are the read-path parameters after binding. Zero-valued dates
// mean "not supplied"; Normalize fills defaults and enforces range rules.
type QueryParams struct {
	StartDate     DateTime
	EndDate       DateTime
	Interval      Interval
	IntervalValue int
	Columns       []string
	CryptoSymbol  string
	FiatCurrency  string
	OutputFormat  string
}

// Normalize applies defaults and validates the parameter set against the
// given processing time:
//   - a supplied bound strictly in the future is rejected;
//   - a missing bound defaults to a 24-hour offset from the other (both
//     missing: end=now, start=now-24h); an end derived from start is clamped
//     to now so no bound ever sits in the future;
//   - end must not precede start and the span must not exceed 30 days;
//   - requested columns must be queryable, interval_value positive and the
//     output format one of json, xml, csv.
func (q *QueryParams) Normalize(now DateTime) *FieldError {
	if !q.StartDate.IsZero() && q.StartDate.InFuture(now) {
		return FutureTimestamp("start_date")
	}
	if !q.EndDate.IsZero() && q.EndDate.InFuture(now) {
		return FutureTimestamp("end_date")
	}

	switch {
	case q.StartDate.IsZero() && q.EndDate.IsZero():
		q.EndDate = now
		q.StartDate = now.Minus(24 * time.Hour)
	case q.StartDate.IsZero():
		q.StartDate = q.EndDate.Minus(24 * time.Hour)
	case q.EndDate.IsZero():
		q.EndDate = q.StartDate.Plus(24 * time.Hour)
		if q.EndDate.After(now) {
			q.EndDate = now
		}
	}

	if q.EndDate.Before(q.StartDate) {
		return EndBeforeStart()
	}
	if q.EndDate.Sub(q.StartDate) > maxQueryRange {
		return DateRangeTooWide()
	}

	if q.Interval == "" {
		q.Interval = IntervalMinute
	}
	if q.IntervalValue == 0 {
		q.IntervalValue = 1
	}
	if q.IntervalValue < 1 {
		return InvalidValue("interval_value", "interval_value must be a positive integer")
	}

	if len(q.Columns) == 0 {
		q.Columns = append([]string(nil), DefaultColumns...)
	} else {
		for _, col := range q.Columns {
			if !QueryableColumn(col) {
				return InvalidValue("columns", fmt.Sprintf("unknown column %q", col))
			}
		}
	}

	switch q.OutputFormat {
	case "":
		q.OutputFormat = FormatJSON
	case FormatJSON, FormatXML, FormatCSV:
	default:
		return InvalidValue("output_format", "output_format must be one of json, xml, csv")
	}
	return nil
}

// CacheKey identifies a normalized parameter set; two requests producing
// the same key produce the same query.
func (q QueryParams) CacheKey() string {
	return fmt.Sprintf("prices:%s:%s:%s:%d:%s:%s:%s",
		q.StartDate, q.EndDate, q.Interval, q.IntervalValue,
		q.CryptoSymbol, q.FiatCurrency, strings.Join(q.Columns, ","))
}
