package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"ojolmate-backend/internal/services"
	"ojolmate-backend/pkg/utils"
)

type FuelLogHandler struct {
	fuelService *services.FuelLogService
	validator   *validator.Validate
}

func NewFuelLogHandler(fuelService *services.FuelLogService) *FuelLogHandler {
	return &FuelLogHandler{
		fuelService: fuelService,
		validator:   validator.New(),
	}
}

// AddFuelLog records a new fill-up
func (h *FuelLogHandler) AddFuelLog(c *gin.Context) {
	var req services.AddFuelLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	entry, err := h.fuelService.AddFuelLog(c.Request.Context(), &req)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to add fuel log", err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Fuel log added successfully", entry)
}

// GetFuelLogs retrieves all fuel logs, most recent first
func (h *FuelLogHandler) GetFuelLogs(c *gin.Context) {
	logs, err := h.fuelService.GetAllFuelLogs(c.Request.Context())
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve fuel logs", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Fuel logs retrieved successfully", logs)
}

// GetFuelStats retrieves the derived consumption metrics. The optional
// remainingFuel query parameter overrides the remaining-fuel estimate.
func (h *FuelLogHandler) GetFuelStats(c *gin.Context) {
	var remainingFuel *float64
	if raw := c.Query("remainingFuel"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil || value < 0 {
			utils.ErrorResponse(c, http.StatusBadRequest, "remainingFuel must be a non-negative number", err)
			return
		}
		remainingFuel = &value
	}

	stats, err := h.fuelService.GetFuelStats(c.Request.Context(), remainingFuel)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to calculate fuel stats", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Fuel stats calculated successfully", stats)
}
