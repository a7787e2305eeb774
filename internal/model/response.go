package model

import (
	"encoding/json"
	"net/http"
)

// BatchStatus is the tri-state outcome of a write batch.
type BatchStatus string

const (
	StatusSuccess BatchStatus = "success"
	StatusPartial BatchStatus = "partial success, some records created"
	StatusError   BatchStatus = "error, no records created"
)

// RecordOutcome is one entry of the batch response, discriminated by
// Published: success entries carry the queue message id, failure entries
// carry the error text and the record body that was attempted.
type RecordOutcome struct {
	Published bool   `json:"-"`
	ID        UID    `json:"id"`
	MessageID string `json:"message_id,omitempty"`
	Error     string `json:"error,omitempty"`
	InputData *Price `json:"input_data,omitempty"`
}

// PublishedOutcome builds a success entry.
func PublishedOutcome(id UID, messageID string) RecordOutcome {
	return RecordOutcome{Published: true, ID: id, MessageID: messageID}
}

// FailedOutcome builds a failure entry, echoing the attempted record for
// diagnostics.
func FailedOutcome(record Price, err error) RecordOutcome {
	return RecordOutcome{ID: record.ID, Error: err.Error(), InputData: &record}
}

// ResponseMetadata describes batch processing bounds, shared by the write
// and read responses.
type ResponseMetadata struct {
	Rows            int      `json:"rows"`
	StartTimestamp  DateTime `json:"start_timestamp"`
	FinishTimestamp DateTime `json:"finish_timestamp"`
}

// BatchResult aggregates per-record outcomes, preserving input order.
type BatchResult struct {
	Status   BatchStatus      `json:"status"`
	Data     []RecordOutcome  `json:"data"`
	Metadata ResponseMetadata `json:"metadata"`
}

// HTTPStatus maps the tri-state result onto the write endpoint's codes:
// 201 all published, 207 mixed, 202 when the batch was well-formed but
// nothing was durably queued.
func (r BatchResult) HTTPStatus() int {
	switch r.Status {
	case StatusSuccess:
		return http.StatusCreated
	case StatusPartial:
		return http.StatusMultiStatus
	default:
		return http.StatusAccepted
	}
}

// QueryResult is the read endpoint payload: ordered field-to-value rows
// already rendered to fixed-precision strings, plus processing metadata.
type QueryResult struct {
	Status   string           `json:"status"`
	Data     []Row            `json:"data"`
	Metadata ResponseMetadata `json:"metadata"`
}

// Row is one result row with column order preserved.
type Row struct {
	Columns []string
	Values  map[string]string
}

// MarshalJSON emits the row as an object in column order rather than the
// map's alphabetical order.
func (r Row) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	for i, col := range r.Columns {
		if i > 0 {
			buf = append(buf, ',')
		}
		key, err := json.Marshal(col)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r.Values[col])
		if err != nil {
			return nil, err
		}
		buf = append(buf, key...)
		buf = append(buf, ':')
		buf = append(buf, val...)
	}
	return append(buf, '}'), nil
}
