package format

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pricefeed/internal/model"
)

func sampleResult(t *testing.T) model.QueryResult {
	t.Helper()
	start, ferr := model.ParseDateTime("", "2025-03-04T12:00:00Z")
	require.Nil(t, ferr)

	return model.QueryResult{
		Status: "success",
		Data: []model.Row{
			{
				Columns: []string{"timestamp", "open", "crypto_symbol"},
				Values: map[string]string{
					"timestamp":     "2025-03-04T11:00:00.000Z",
					"open":          "88680.3900000000",
					"crypto_symbol": "BTC",
				},
			},
			{
				Columns: []string{"timestamp", "open", "crypto_symbol"},
				Values: map[string]string{
					"timestamp":     "2025-03-04T11:01:00.000Z",
					"open":          "88700.0000000000",
					"crypto_symbol": "BTC",
				},
			},
		},
		Metadata: model.ResponseMetadata{Rows: 2, StartTimestamp: start, FinishTimestamp: start},
	}
}

func TestEncodeCSV(t *testing.T) {
	out, err := EncodeCSV(sampleResult(t))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "timestamp,open,crypto_symbol", lines[0])
	assert.Equal(t, "2025-03-04T11:00:00.000Z,88680.3900000000,BTC", lines[1])
	assert.Equal(t, "2025-03-04T11:01:00.000Z,88700.0000000000,BTC", lines[2])
}

func TestEncodeCSVEmpty(t *testing.T) {
	out, err := EncodeCSV(model.QueryResult{})
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestEncodeXML(t *testing.T) {
	out, err := EncodeXML(sampleResult(t))
	require.NoError(t, err)

	assert.Contains(t, out, "<data>")
	assert.Contains(t, out, "<metadata>")
	assert.Contains(t, out, "<rows>2</rows>")
	assert.Contains(t, out, "<row>")
	assert.Contains(t, out, "<open>88680.3900000000</open>")
	assert.Contains(t, out, "<crypto_symbol>BTC</crypto_symbol>")

	// Column order is preserved inside each row.
	tsIdx := strings.Index(out, "<timestamp>")
	openIdx := strings.Index(out, "<open>")
	symIdx := strings.Index(out, "<crypto_symbol>")
	assert.Less(t, tsIdx, openIdx)
	assert.Less(t, openIdx, symIdx)
}
