package routes

import (
	"net/http"

	"rdw-backend/internal/api/handlers"
	"rdw-backend/internal/services"
	"rdw-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(router *gin.Engine, fetcher services.VehicleFetcher) {
	// Initialize services
	kentekenService := services.NewKentekenService(fetcher)
	healthService := services.NewHealthService(fetcher)

	// Initialize handlers
	kentekenHandler := handlers.NewKentekenHandler(kentekenService)
	healthHandler := handlers.NewHealthHandler(healthService)

	router.GET("/", handlers.Root)
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes
	api := router.Group("/api")
	kenteken := api.Group("/kenteken")
	{
		kenteken.GET("/:kenteken", kentekenHandler.Lookup)
		kenteken.GET("/:kenteken/axles", kentekenHandler.Axles)
		kenteken.GET("/:kenteken/fuel", kentekenHandler.Fuel)
		kenteken.GET("/:kenteken/body", kentekenHandler.Body)
		kenteken.GET("/:kenteken/body-specifics", kentekenHandler.BodySpecifics)
		kenteken.GET("/:kenteken/vehicle-class", kentekenHandler.VehicleClass)
	}

	router.NoRoute(func(c *gin.Context) {
		utils.ErrorResponse(c, http.StatusNotFound, "Endpoint niet gevonden")
	})
}
