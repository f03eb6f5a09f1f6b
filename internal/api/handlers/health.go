package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"ojolmate-backend/internal/repository"
	"ojolmate-backend/internal/services"
	"ojolmate-backend/pkg/database"
	"ojolmate-backend/pkg/utils"
)

type HealthHandler struct {
	db            *mongo.Database
	healthService *services.HealthScoreService
}

func NewHealthHandler(db *mongo.Database, healthService *services.HealthScoreService) *HealthHandler {
	return &HealthHandler{
		db:            db,
		healthService: healthService,
	}
}

// Liveness reports whether the service and its database are reachable
func (h *HealthHandler) Liveness(c *gin.Context) {
	if err := database.Health(h.db); err != nil {
		utils.ErrorResponse(c, http.StatusServiceUnavailable, "Database unreachable", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Service healthy", gin.H{"status": "up"})
}

// GetHealthScore retrieves the latest vehicle health score snapshot
func (h *HealthHandler) GetHealthScore(c *gin.Context) {
	score, err := h.healthService.GetLatestScore(c.Request.Context())
	if errors.Is(err, repository.ErrNotFound) {
		utils.ErrorResponse(c, http.StatusNotFound, "No health score recorded yet", err)
		return
	}
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve health score", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Health score retrieved successfully", score)
}

// GetHealthScoreHistory retrieves all recorded health score snapshots
func (h *HealthHandler) GetHealthScoreHistory(c *gin.Context) {
	history, err := h.healthService.GetScoreHistory(c.Request.Context())
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve health score history", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Health score history retrieved successfully", history)
}
