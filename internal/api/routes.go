package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// SetupRoutes sets up the API routes
func SetupRoutes(handler *Handler, logger logrus.FieldLogger) *gin.Engine {
	router := gin.New()

	// Middleware
	router.Use(Recovery())
	router.Use(CORS())
	router.Use(Logger(logger))

	// Health check
	router.GET("/health", handler.HealthCheck)

	// API v1
	v1 := router.Group("/api/v1")
	{
		inventories := v1.Group("/inventories")
		{
			inventories.GET("", handler.ListInventories)
			inventories.GET("/:id", handler.GetInventory)
			inventories.GET("/:id/records", handler.GetRecords)
			inventories.GET("/:id/summary", handler.GetSummary)
			inventories.GET("/:id/report", handler.GetReport)
		}
	}

	return router
}
