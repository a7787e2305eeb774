// Package validation turns raw inbound record objects into fully defaulted,
// type-correct precursors. It is a pure function of input plus processing
// time; no side effects, no shared state.
package validation

import (
	"pricefeed/internal/model"
)

// ValidateRecord checks one candidate record against the schema:
//   - every required field must be present with the right primitive type;
//   - a supplied timestamp must parse and must not be strictly later than
//     the processing time; an absent or null timestamp defaults to it;
//   - dividends and stock_splits default to 0.0 when absent or null;
//   - metadata defaults to "" when absent or explicitly null (never an
//     error); any other non-string metadata value is rejected.
//
// Fields the caller must not supply (id, insertion_timestamp, is_deleted)
// are ignored here; the publisher assigns them.
func ValidateRecord(raw map[string]any, now model.DateTime) (model.Precursor, *model.FieldError) {
	var p model.Precursor

	for _, f := range model.RequiredFields {
		value, ok := raw[f.Name]
		if !ok || value == nil {
			return p, model.MissingField(f.Name)
		}
		switch f.Kind {
		case model.KindString:
			s, ok := value.(string)
			if !ok {
				return p, model.TypeMismatch(f.Name, "string")
			}
			setString(&p, f.Name, s)
		case model.KindNumber:
			n, ok := asNumber(value)
			if !ok {
				return p, model.TypeMismatch(f.Name, "number")
			}
			setNumber(&p, f.Name, n)
		}
	}

	ts, ferr := validateTimestamp(raw, now)
	if ferr != nil {
		return p, ferr
	}
	p.Timestamp = ts

	for name, def := range model.OptionalNumberDefaults {
		value, ok := raw[name]
		if !ok || value == nil {
			setNumber(&p, name, def)
			continue
		}
		n, ok := asNumber(value)
		if !ok {
			return p, model.TypeMismatch(name, "number")
		}
		setNumber(&p, name, n)
	}

	switch meta := raw[model.FieldMetadata].(type) {
	case nil:
		p.Metadata = ""
	case string:
		p.Metadata = meta
	default:
		return p, model.TypeMismatch(model.FieldMetadata, "string")
	}

	return p, nil
}

func validateTimestamp(raw map[string]any, now model.DateTime) (model.DateTime, *model.FieldError) {
	value, ok := raw[model.FieldTimestamp]
	if !ok || value == nil {
		return now, nil
	}
	s, ok := value.(string)
	if !ok {
		return model.DateTime{}, model.TypeMismatch(model.FieldTimestamp, "string")
	}
	ts, ferr := model.ParseDateTime(model.FieldTimestamp, s)
	if ferr != nil {
		return model.DateTime{}, ferr
	}
	if ts.InFuture(now) {
		return model.DateTime{}, model.FutureTimestamp(model.FieldTimestamp)
	}
	return ts, nil
}

// asNumber accepts the numeric types encoding/json can produce.
func asNumber(value any) (float64, bool) {
	switch n := value.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func setString(p *model.Precursor, name, value string) {
	switch name {
	case model.FieldCryptoName:
		p.CryptoName = value
	case model.FieldCryptoSymbol:
		p.CryptoSymbol = value
	case model.FieldFiatCurrency:
		p.FiatCurrency = value
	case model.FieldSource:
		p.Source = value
	case model.FieldTicker:
		p.Ticker = value
	}
}

func setNumber(p *model.Precursor, name string, value float64) {
	switch name {
	case model.FieldOpen:
		p.Open = value
	case model.FieldClose:
		p.Close = value
	case model.FieldHigh:
		p.High = value
	case model.FieldLow:
		p.Low = value
	case model.FieldVolume:
		p.Volume = value
	case model.FieldDividends:
		p.Dividends = value
	case model.FieldStockSplits:
		p.StockSplits = value
	}
}
