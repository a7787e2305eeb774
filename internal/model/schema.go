package model

// FieldKind is the primitive type a caller-supplied field must carry.
type FieldKind int

const (
	KindString FieldKind = iota
	KindNumber
)

// Field column names of the price record. The validator, the query builder
// and the ingester all key off these names; they must match the gorm column
// tags on Price and the migration DDL.
const (
	FieldCryptoName         = "crypto_name"
	FieldCryptoSymbol       = "crypto_symbol"
	FieldFiatCurrency       = "fiat_currency"
	FieldSource             = "source"
	FieldOpen               = "open"
	FieldClose              = "close"
	FieldHigh               = "high"
	FieldLow                = "low"
	FieldVolume             = "volume"
	FieldTicker             = "ticker"
	FieldTimestamp          = "timestamp"
	FieldDividends          = "dividends"
	FieldStockSplits        = "stock_splits"
	FieldMetadata           = "metadata"
	FieldID                 = "id"
	FieldInsertionTimestamp = "insertion_timestamp"
	FieldIsDeleted          = "is_deleted"
)

// RequiredFields partitions the caller-supplied mandatory fields by kind.
// Timestamp is handled separately by the validator because it defaults to
// processing time when absent.
var RequiredFields = []struct {
	Name string
	Kind FieldKind
}{
	{FieldCryptoName, KindString},
	{FieldCryptoSymbol, KindString},
	{FieldFiatCurrency, KindString},
	{FieldSource, KindString},
	{FieldOpen, KindNumber},
	{FieldClose, KindNumber},
	{FieldHigh, KindNumber},
	{FieldLow, KindNumber},
	{FieldVolume, KindNumber},
	{FieldTicker, KindString},
}

// Optional numeric fields and their defaults. Metadata is optional too but
// defaults to the empty string; the downstream schema treats it as a
// mandatory string, so null is normalized rather than rejected.
var OptionalNumberDefaults = map[string]float64{
	FieldDividends:   0.0,
	FieldStockSplits: 0.0,
}

// AutoGeneratedFields are system-assigned; callers must not supply them.
var AutoGeneratedFields = []string{FieldID, FieldInsertionTimestamp, FieldIsDeleted}

// DefaultColumns is the read-path projection applied when the caller
// requests no columns.
var DefaultColumns = []string{
	FieldTimestamp, FieldOpen, FieldClose, FieldHigh, FieldLow,
	FieldVolume, FieldFiatCurrency, FieldCryptoSymbol,
}

// queryableColumns are the columns a caller may project on the read path.
// Bookkeeping columns (is_deleted, the window rank) never appear here.
var queryableColumns = map[string]struct{}{
	FieldID:           {},
	FieldCryptoName:   {},
	FieldCryptoSymbol: {},
	FieldFiatCurrency: {},
	FieldOpen:         {},
	FieldClose:        {},
	FieldHigh:         {},
	FieldLow:          {},
	FieldVolume:       {},
	FieldTimestamp:    {},
}

// QueryableColumn reports whether a column may be requested on the read path.
func QueryableColumn(name string) bool {
	_, ok := queryableColumns[name]
	return ok
}
