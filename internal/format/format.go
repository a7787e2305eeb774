// Package format renders the read-path payload in the non-JSON output
// formats. JSON goes straight through the HTTP layer's encoder.
package format

import (
	"bytes"
	"encoding/csv"
	"encoding/xml"
	"fmt"
	"strconv"

	"pricefeed/internal/model"
)

// EncodeCSV renders the result rows as CSV with a header taken from the
// projection order of the first row. An empty result yields an empty body.
func EncodeCSV(result model.QueryResult) (string, error) {
	if len(result.Data) == 0 {
		return "", nil
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := result.Data[0].Columns
	if err := w.Write(header); err != nil {
		return "", err
	}
	for _, row := range result.Data {
		record := make([]string, len(header))
		for i, col := range header {
			record[i] = row.Values[col]
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}
	w.Flush()
	return buf.String(), w.Error()
}

// EncodeXML renders the full result, metadata included, as an XML document
// rooted at <data>, preserving column order within each <row>.
func EncodeXML(result model.QueryResult) (string, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")

	root := xml.StartElement{Name: xml.Name{Local: "data"}}
	if err := enc.EncodeToken(root); err != nil {
		return "", err
	}

	meta := xml.StartElement{Name: xml.Name{Local: "metadata"}}
	if err := enc.EncodeToken(meta); err != nil {
		return "", err
	}
	metaFields := []struct{ name, value string }{
		{"rows", strconv.Itoa(result.Metadata.Rows)},
		{"start_timestamp", result.Metadata.StartTimestamp.String()},
		{"finish_timestamp", result.Metadata.FinishTimestamp.String()},
	}
	for _, f := range metaFields {
		if err := encodeLeaf(enc, f.name, f.value); err != nil {
			return "", err
		}
	}
	if err := enc.EncodeToken(meta.End()); err != nil {
		return "", err
	}

	rowsEl := xml.StartElement{Name: xml.Name{Local: "rows"}}
	if err := enc.EncodeToken(rowsEl); err != nil {
		return "", err
	}
	for _, row := range result.Data {
		rowEl := xml.StartElement{Name: xml.Name{Local: "row"}}
		if err := enc.EncodeToken(rowEl); err != nil {
			return "", err
		}
		for _, col := range row.Columns {
			if err := encodeLeaf(enc, col, row.Values[col]); err != nil {
				return "", err
			}
		}
		if err := enc.EncodeToken(rowEl.End()); err != nil {
			return "", err
		}
	}
	if err := enc.EncodeToken(rowsEl.End()); err != nil {
		return "", err
	}

	if err := enc.EncodeToken(root.End()); err != nil {
		return "", err
	}
	if err := enc.Flush(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func encodeLeaf(enc *xml.Encoder, name, value string) error {
	el := xml.StartElement{Name: xml.Name{Local: name}}
	if err := enc.EncodeToken(el); err != nil {
		return err
	}
	if err := enc.EncodeToken(xml.CharData(value)); err != nil {
		return err
	}
	if err := enc.EncodeToken(el.End()); err != nil {
		return fmt.Errorf("closing %s: %w", name, err)
	}
	return nil
}
