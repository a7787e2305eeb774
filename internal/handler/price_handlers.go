// Package handler exposes the HTTP write and read endpoints and maps
// domain outcomes onto status codes.
package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"pricefeed/internal/format"
	"pricefeed/internal/model"
	"pricefeed/internal/validation"
)

// PriceService is the slice of the service layer the handlers need.
type PriceService interface {
	PublishBatch(ctx context.Context, precursors []model.Precursor) model.BatchResult
	QueryPrices(ctx context.Context, params model.QueryParams) (model.QueryResult, error)
}

type PriceHandler struct {
	service PriceService
	logger  *slog.Logger
}

func NewPriceHandler(service PriceService, logger *slog.Logger) *PriceHandler {
	return &PriceHandler{service: service, logger: logger}
}

// CreatePrices handles POST /prices. The whole batch is validated before
// any queue interaction: one bad record fails the request with 422 and
// nothing is published. A valid batch returns 201, 207 or 202 depending on
// the per-record outcome mix.
func (h *PriceHandler) CreatePrices(c *gin.Context) {
	var raw []map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		writeValidationError(c, model.InvalidValue("body", "request body must be a JSON array of price records"))
		return
	}
	if len(raw) == 0 {
		writeValidationError(c, model.InvalidValue("body", "request body must contain at least one record"))
		return
	}

	now := model.Now()
	precursors := make([]model.Precursor, 0, len(raw))
	for i, record := range raw {
		precursor, ferr := validation.ValidateRecord(record, now)
		if ferr != nil {
			scoped := *ferr
			scoped.Field = fmt.Sprintf("[%d].%s", i, ferr.Field)
			writeValidationError(c, &scoped)
			return
		}
		precursors = append(precursors, precursor)
	}

	result := h.service.PublishBatch(c.Request.Context(), precursors)
	c.JSON(result.HTTPStatus(), result)
}

// GetPrices handles GET /prices: parameter parsing and normalization,
// query execution, then rendering in the requested output format.
func (h *PriceHandler) GetPrices(c *gin.Context) {
	params, ferr := bindQueryParams(c)
	if ferr != nil {
		writeValidationError(c, ferr)
		return
	}
	if ferr := params.Normalize(model.Now()); ferr != nil {
		writeValidationError(c, ferr)
		return
	}

	result, err := h.service.QueryPrices(c.Request.Context(), params)
	if err != nil {
		h.logger.Error("read request failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "error": "Internal Server Error"})
		return
	}

	switch params.OutputFormat {
	case model.FormatCSV:
		body, err := format.EncodeCSV(result)
		if err != nil {
			h.logger.Error("csv encoding failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "error": "Internal Server Error"})
			return
		}
		c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(body))
	case model.FormatXML:
		body, err := format.EncodeXML(result)
		if err != nil {
			h.logger.Error("xml encoding failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "error": "Internal Server Error"})
			return
		}
		c.Data(http.StatusOK, "application/xml; charset=utf-8", []byte(body))
	default:
		c.JSON(http.StatusOK, result)
	}
}

func bindQueryParams(c *gin.Context) (model.QueryParams, *model.FieldError) {
	var params model.QueryParams

	if s := c.Query("start_date"); s != "" {
		parsed, ferr := model.ParseDateTime("start_date", s)
		if ferr != nil {
			return params, ferr
		}
		params.StartDate = parsed
	}
	if s := c.Query("end_date"); s != "" {
		parsed, ferr := model.ParseDateTime("end_date", s)
		if ferr != nil {
			return params, ferr
		}
		params.EndDate = parsed
	}

	interval, ferr := model.ParseInterval(c.Query("interval"))
	if ferr != nil {
		return params, ferr
	}
	params.Interval = interval

	if s := c.Query("interval_value"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return params, model.InvalidValue("interval_value", "interval_value must be an integer")
		}
		params.IntervalValue = n
	}

	// Columns arrive either as repeated params or one comma-separated value.
	for _, raw := range c.QueryArray("columns") {
		for _, col := range strings.Split(raw, ",") {
			if col = strings.TrimSpace(col); col != "" {
				params.Columns = append(params.Columns, col)
			}
		}
	}

	params.CryptoSymbol = c.Query("crypto_symbol")
	params.FiatCurrency = c.Query("fiat_currency")
	params.OutputFormat = c.Query("output_format")
	return params, nil
}

func writeValidationError(c *gin.Context, ferr *model.FieldError) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"status": "validation error",
		"errors": []*model.FieldError{ferr},
	})
}
