package model

// Precursor is a validated, fully defaulted record body before the system
// assigns identity and insertion timestamp.
type Precursor struct {
	CryptoName   string   `json:"crypto_name"`
	CryptoSymbol string   `json:"crypto_symbol"`
	FiatCurrency string   `json:"fiat_currency"`
	Source       string   `json:"source"`
	Open         float64  `json:"open"`
	Close        float64  `json:"close"`
	High         float64  `json:"high"`
	Low          float64  `json:"low"`
	Volume       float64  `json:"volume"`
	Ticker       string   `json:"ticker"`
	Timestamp    DateTime `json:"timestamp"`
	Dividends    float64  `json:"dividends"`
	StockSplits  float64  `json:"stock_splits"`
	Metadata     string   `json:"metadata"`
}

// Price is the full record published to the queue and persisted by the
// ingester. Metadata is a plain string so it can never serialize as JSON
// null, and IsDeleted stays a native boolean on the wire; the downstream
// schema depends on both.
type Price struct {
	ID                 UID      `gorm:"column:id" json:"id"`
	CryptoName         string   `gorm:"column:crypto_name" json:"crypto_name"`
	CryptoSymbol       string   `gorm:"column:crypto_symbol" json:"crypto_symbol"`
	FiatCurrency       string   `gorm:"column:fiat_currency" json:"fiat_currency"`
	Source             string   `gorm:"column:source" json:"source"`
	Open               float64  `gorm:"column:open;type:Float64" json:"open"`
	Close              float64  `gorm:"column:close;type:Float64" json:"close"`
	High               float64  `gorm:"column:high;type:Float64" json:"high"`
	Low                float64  `gorm:"column:low;type:Float64" json:"low"`
	Volume             float64  `gorm:"column:volume;type:Float64" json:"volume"`
	Ticker             string   `gorm:"column:ticker" json:"ticker"`
	Timestamp          DateTime `gorm:"column:timestamp;type:DateTime64(6, 'UTC')" json:"timestamp"`
	Dividends          float64  `gorm:"column:dividends;type:Float64" json:"dividends"`
	StockSplits        float64  `gorm:"column:stock_splits;type:Float64" json:"stock_splits"`
	Metadata           string   `gorm:"column:metadata" json:"metadata"`
	InsertionTimestamp DateTime `gorm:"column:insertion_timestamp;type:DateTime64(6, 'UTC')" json:"insertion_timestamp"`
	IsDeleted          bool     `gorm:"column:is_deleted" json:"is_deleted"`
}

func (Price) TableName() string {
	return "prices"
}

func (Price) TableOptions() string {
	return "ENGINE = MergeTree() ORDER BY (crypto_symbol, fiat_currency, timestamp)"
}

// NewPrice assembles a full record from a precursor plus the auto-generated
// fields. The soft-delete flag is only ever toggled downstream.
func NewPrice(p Precursor, id UID, insertedAt DateTime) Price {
	return Price{
		ID:                 id,
		CryptoName:         p.CryptoName,
		CryptoSymbol:       p.CryptoSymbol,
		FiatCurrency:       p.FiatCurrency,
		Source:             p.Source,
		Open:               p.Open,
		Close:              p.Close,
		High:               p.High,
		Low:                p.Low,
		Volume:             p.Volume,
		Ticker:             p.Ticker,
		Timestamp:          p.Timestamp,
		Dividends:          p.Dividends,
		StockSplits:        p.StockSplits,
		Metadata:           p.Metadata,
		InsertionTimestamp: insertedAt,
		IsDeleted:          false,
	}
}
