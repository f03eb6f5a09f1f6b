package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ojolmate-backend/internal/alerts"
	"ojolmate-backend/pkg/utils"
)

type AlertHandler struct {
	engine *alerts.Engine
	store  *alerts.Store
}

func NewAlertHandler(engine *alerts.Engine, store *alerts.Store) *AlertHandler {
	return &AlertHandler{
		engine: engine,
		store:  store,
	}
}

// GetAlerts retrieves all raised alerts
func (h *AlertHandler) GetAlerts(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "Alerts retrieved successfully", h.store.List())
}

// MarkAlertRead marks an alert as read. Marking an unknown or already-read
// alert succeeds without effect.
func (h *AlertHandler) MarkAlertRead(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Alert ID must be a number", err)
		return
	}

	h.store.MarkRead(c.Request.Context(), id)
	utils.SuccessResponse(c, http.StatusOK, "Alert marked as read", nil)
}

// ResetAlerts clears all alerts
func (h *AlertHandler) ResetAlerts(c *gin.Context) {
	h.store.Reset(c.Request.Context())
	utils.SuccessResponse(c, http.StatusOK, "Alerts reset successfully", nil)
}

// RecomputeAlerts derives the current alert set from the logs and settings and
// merges it into the store
func (h *AlertHandler) RecomputeAlerts(c *gin.Context) {
	derived, err := h.engine.Derive(c.Request.Context())
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to derive alerts", err)
		return
	}

	for _, alert := range derived {
		h.store.Upsert(c.Request.Context(), alert)
	}

	utils.SuccessResponse(c, http.StatusOK, "Alerts recomputed successfully", h.store.List())
}
