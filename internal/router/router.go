package router

import (
	"github.com/gin-gonic/gin"

	"pricefeed/internal/handler"
)

type Config struct {
	PriceHandler *handler.PriceHandler

	// RequestsPerSecond and Burst bound inbound request rate. Zero disables
	// the limiter.
	RequestsPerSecond float64
	Burst             int
}

func NewRouter(cfg *Config) *gin.Engine {
	router := gin.Default()

	api := router.Group("/v1/")
	if cfg.RequestsPerSecond > 0 {
		api.Use(RateLimit(cfg.RequestsPerSecond, cfg.Burst))
	}
	registerPriceRoutes(api, cfg.PriceHandler)

	return router
}
