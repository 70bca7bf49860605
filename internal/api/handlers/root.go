package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Root serves the static service descriptor.
func Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"name":    "RDW API",
		"version": "1.0.0",
		"endpoints": gin.H{
			"kenteken":      "/api/kenteken/:kenteken",
			"axles":         "/api/kenteken/:kenteken/axles",
			"fuel":          "/api/kenteken/:kenteken/fuel",
			"body":          "/api/kenteken/:kenteken/body",
			"bodySpecifics": "/api/kenteken/:kenteken/body-specifics",
			"vehicleClass":  "/api/kenteken/:kenteken/vehicle-class",
			"health":        "/health",
		},
	})
}
