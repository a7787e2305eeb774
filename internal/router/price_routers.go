package router

import (
	"github.com/gin-gonic/gin"

	"pricefeed/internal/handler"
)

func registerPriceRoutes(router *gin.RouterGroup, priceHandler *handler.PriceHandler) {
	prices := router.Group("/prices")
	{
		prices.POST("", priceHandler.CreatePrices)
		prices.GET("", priceHandler.GetPrices)
	}
}
