package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNow(t *testing.T) DateTime {
	t.Helper()
	now, ferr := ParseDateTime("", "2025-01-31T12:00:00Z")
	require.Nil(t, ferr)
	return now
}

func mustParse(t *testing.T, s string) DateTime {
	t.Helper()
	dt, ferr := ParseDateTime("", s)
	require.Nil(t, ferr)
	return dt
}

func TestNormalizeDefaultsBothBoundsMissing(t *testing.T) {
	now := fixedNow(t)
	q := QueryParams{}

	require.Nil(t, q.Normalize(now))
	assert.True(t, q.EndDate.Equal(now))
	assert.True(t, q.StartDate.Equal(now.Minus(24*time.Hour)))
	assert.Equal(t, IntervalMinute, q.Interval)
	assert.Equal(t, 1, q.IntervalValue)
	assert.Equal(t, DefaultColumns, q.Columns)
	assert.Equal(t, FormatJSON, q.OutputFormat)
}

func TestNormalizeDerivesMissingBound(t *testing.T) {
	now := fixedNow(t)

	q := QueryParams{EndDate: mustParse(t, "2025-01-20T00:00:00Z")}
	require.Nil(t, q.Normalize(now))
	assert.True(t, q.StartDate.Equal(mustParse(t, "2025-01-19T00:00:00Z")))

	q = QueryParams{StartDate: mustParse(t, "2025-01-20T00:00:00Z")}
	require.Nil(t, q.Normalize(now))
	assert.True(t, q.EndDate.Equal(mustParse(t, "2025-01-21T00:00:00Z")))

	// A derived end is clamped so it never lands in the future.
	q = QueryParams{StartDate: now.Minus(2 * time.Hour)}
	require.Nil(t, q.Normalize(now))
	assert.True(t, q.EndDate.Equal(now))
}

func TestNormalizeRejectsFutureBounds(t *testing.T) {
	now := fixedNow(t)

	q := QueryParams{StartDate: now.Plus(time.Minute)}
	ferr := q.Normalize(now)
	require.NotNil(t, ferr)
	assert.Equal(t, CodeFutureTimestamp, ferr.Code)
	assert.Equal(t, "start_date", ferr.Field)

	q = QueryParams{EndDate: now.Plus(time.Minute)}
	ferr = q.Normalize(now)
	require.NotNil(t, ferr)
	assert.Equal(t, CodeFutureTimestamp, ferr.Code)
	assert.Equal(t, "end_date", ferr.Field)
}

func TestNormalizeRangeRules(t *testing.T) {
	now := fixedNow(t)

	q := QueryParams{
		StartDate: mustParse(t, "2025-01-20T00:00:00Z"),
		EndDate:   mustParse(t, "2025-01-10T00:00:00Z"),
	}
	ferr := q.Normalize(now)
	require.NotNil(t, ferr)
	assert.Equal(t, CodeEndBeforeStart, ferr.Code)

	// Exactly 30 days is allowed.
	q = QueryParams{
		StartDate: mustParse(t, "2025-01-01T00:00:00Z"),
		EndDate:   mustParse(t, "2025-01-31T00:00:00Z"),
	}
	assert.Nil(t, q.Normalize(now))

	// Anything beyond 30 days is not.
	q = QueryParams{
		StartDate: mustParse(t, "2025-01-01T00:00:00Z"),
		EndDate:   mustParse(t, "2025-01-31T00:00:01Z"),
	}
	ferr = q.Normalize(now)
	require.NotNil(t, ferr)
	assert.Equal(t, CodeDateRangeTooWide, ferr.Code)
}

func TestNormalizeColumns(t *testing.T) {
	now := fixedNow(t)

	q := QueryParams{Columns: []string{"open", "close", "timestamp"}}
	require.Nil(t, q.Normalize(now))
	assert.Equal(t, []string{"open", "close", "timestamp"}, q.Columns)

	q = QueryParams{Columns: []string{"open", "is_deleted"}}
	ferr := q.Normalize(now)
	require.NotNil(t, ferr)
	assert.Equal(t, CodeInvalidValue, ferr.Code)
	assert.Equal(t, "columns", ferr.Field)
}

func TestNormalizeIntervalAndFormat(t *testing.T) {
	now := fixedNow(t)

	q := QueryParams{IntervalValue: -1}
	ferr := q.Normalize(now)
	require.NotNil(t, ferr)
	assert.Equal(t, "interval_value", ferr.Field)

	q = QueryParams{OutputFormat: "yaml"}
	ferr = q.Normalize(now)
	require.NotNil(t, ferr)
	assert.Equal(t, "output_format", ferr.Field)

	q = QueryParams{OutputFormat: "csv", Interval: IntervalHour, IntervalValue: 4}
	require.Nil(t, q.Normalize(now))
	assert.Equal(t, IntervalHour, q.Interval)
	assert.Equal(t, 4, q.IntervalValue)
}

func TestParseInterval(t *testing.T) {
	got, ferr := ParseInterval("")
	require.Nil(t, ferr)
	assert.Equal(t, IntervalMinute, got)

	for _, name := range []string{"millisecond", "second", "minute", "hour"} {
		got, ferr := ParseInterval(name)
		require.Nil(t, ferr)
		assert.Equal(t, Interval(name), got)
	}

	_, ferr = ParseInterval("day")
	require.NotNil(t, ferr)
	assert.Equal(t, CodeInvalidValue, ferr.Code)
}
