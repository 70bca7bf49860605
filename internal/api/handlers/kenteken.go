package handlers

import (
	"context"
	"errors"
	"net/http"

	"rdw-backend/internal/models"
	"rdw-backend/internal/rdw"
	"rdw-backend/internal/services"
	"rdw-backend/pkg/logging"
	"rdw-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type KentekenHandler struct {
	kentekenService *services.KentekenService
	logger          zerolog.Logger
}

func NewKentekenHandler(kentekenService *services.KentekenService) *KentekenHandler {
	return &KentekenHandler{
		kentekenService: kentekenService,
		logger:          logging.NewLogger("kenteken-handler"),
	}
}

// Lookup handles the aggregate kenteken lookup endpoint
func (h *KentekenHandler) Lookup(c *gin.Context) {
	kenteken := c.Param("kenteken")

	vehicle, err := h.kentekenService.Lookup(c.Request.Context(), kenteken)
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, vehicle)
}

// Axles handles the axles dataset endpoint
func (h *KentekenHandler) Axles(c *gin.Context) {
	h.handleDataset(c, h.kentekenService.LookupAxles)
}

// Fuel handles the fuel dataset endpoint
func (h *KentekenHandler) Fuel(c *gin.Context) {
	h.handleDataset(c, h.kentekenService.LookupFuel)
}

// Body handles the body dataset endpoint
func (h *KentekenHandler) Body(c *gin.Context) {
	h.handleDataset(c, h.kentekenService.LookupBody)
}

// BodySpecifics handles the body-specifics dataset endpoint
func (h *KentekenHandler) BodySpecifics(c *gin.Context) {
	h.handleDataset(c, h.kentekenService.LookupBodySpecifics)
}

// VehicleClass handles the vehicle-class dataset endpoint
func (h *KentekenHandler) VehicleClass(c *gin.Context) {
	h.handleDataset(c, h.kentekenService.LookupVehicleClass)
}

func (h *KentekenHandler) handleDataset(c *gin.Context, lookup func(context.Context, string) ([]models.Row, error)) {
	kenteken := c.Param("kenteken")

	rows, err := lookup(c.Request.Context(), kenteken)
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, rows)
}

// respondError maps service errors onto the wire contract. Internal
// detail stays in the log, never in the response body.
func (h *KentekenHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidKenteken):
		utils.ErrorResponse(c, http.StatusBadRequest, "Ongeldig kenteken formaat")
	case errors.Is(err, services.ErrKentekenNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, "Kenteken niet gevonden")
	default:
		var upstreamErr *rdw.UpstreamError
		if errors.As(err, &upstreamErr) {
			h.logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("RDW API error")
			utils.ErrorResponse(c, http.StatusBadGateway, "Fout bij het opvragen van RDW")
			return
		}
		h.logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("unexpected error")
		utils.ErrorResponse(c, http.StatusInternalServerError, "Er is een onverwachte fout opgetreden")
	}
}
