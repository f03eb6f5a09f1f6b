package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"ojolmate-backend/internal/repository"
	"ojolmate-backend/internal/services"
	"ojolmate-backend/pkg/utils"
)

type ServiceLogHandler struct {
	serviceLogService *services.ServiceLogService
	validator         *validator.Validate
}

func NewServiceLogHandler(serviceLogService *services.ServiceLogService) *ServiceLogHandler {
	return &ServiceLogHandler{
		serviceLogService: serviceLogService,
		validator:         validator.New(),
	}
}

// AddServiceLog records a scheduled service item
func (h *ServiceLogHandler) AddServiceLog(c *gin.Context) {
	var req services.AddServiceLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	entry, err := h.serviceLogService.AddServiceLog(c.Request.Context(), &req)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to add service log", err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Service log added successfully", entry)
}

// GetServiceLogs retrieves all service logs, most recent first
func (h *ServiceLogHandler) GetServiceLogs(c *gin.Context) {
	logs, err := h.serviceLogService.GetAllServiceLogs(c.Request.Context())
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve service logs", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Service logs retrieved successfully", logs)
}

type ConfirmServiceLogRequest struct {
	Done bool `json:"done"`
}

// ConfirmServiceLog moves an entry out of the unconfirmed state, exactly once
func (h *ServiceLogHandler) ConfirmServiceLog(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Service log ID must be a number", err)
		return
	}

	var req ConfirmServiceLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	entry, err := h.serviceLogService.ConfirmServiceLog(c.Request.Context(), id, req.Done)
	if errors.Is(err, repository.ErrNotFound) {
		utils.ErrorResponse(c, http.StatusNotFound, "Service log not found", err)
		return
	}
	if errors.Is(err, repository.ErrAlreadyConfirmed) {
		utils.ErrorResponse(c, http.StatusConflict, "Service log already confirmed", err)
		return
	}
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to confirm service log", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Service log confirmed successfully", entry)
}
