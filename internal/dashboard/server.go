package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewRouter builds the dashboard API router.
func NewRouter(reader *Reader) *gin.Engine {
	router := gin.Default()
	router.Use(corsMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	api.GET("/result/:country", func(c *gin.Context) {
		result, err := reader.LatestResult(c.Request.Context(), c.Param("country"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": gin.H{"code": "STORE_ERROR", "message": err.Error()},
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"records": result})
	})

	api.GET("/generation/:country", func(c *gin.Context) {
		date := c.Query("date")
		if date == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": gin.H{"code": "MISSING_PARAM", "message": "date query parameter is required"},
			})
			return
		}
		mix, err := reader.GenerationMix(c.Request.Context(), c.Param("country"), date)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": gin.H{"code": "STORE_ERROR", "message": err.Error()},
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"generation": mix})
	})

	return router
}

// corsMiddleware allows the static dashboard page to call the API from
// another origin.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
