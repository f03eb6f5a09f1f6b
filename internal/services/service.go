package services

import (
	"context"
	"log"
	"time"

	"ojolmate-backend/internal/models"
	"ojolmate-backend/internal/repository"
)

type ServiceLogService struct {
	serviceRepo *repository.ServiceLogRepository
	healthSvc   *HealthScoreService
}

func NewServiceLogService(serviceRepo *repository.ServiceLogRepository, healthSvc *HealthScoreService) *ServiceLogService {
	return &ServiceLogService{
		serviceRepo: serviceRepo,
		healthSvc:   healthSvc,
	}
}

type AddServiceLogRequest struct {
	Component string  `json:"component" validate:"required,min=1,max=100"`
	Odometer  float64 `json:"odometer" validate:"required,gt=0"`
	Cost      float64 `json:"cost" validate:"gte=0"`
	Date      string  `json:"date" validate:"required,datetime=2006-01-02"`
	Note      string  `json:"note" validate:"max=500"`
}

func (s *ServiceLogService) AddServiceLog(ctx context.Context, req *AddServiceLogRequest) (*models.ServiceLogEntry, error) {
	entry := &models.ServiceLogEntry{
		ID:         time.Now().UnixMilli(),
		Component:  req.Component,
		Odometer:   req.Odometer,
		Cost:       req.Cost,
		Date:       req.Date,
		Note:       req.Note,
		Completion: models.CompletionUnconfirmed,
	}

	if err := s.serviceRepo.Insert(ctx, entry); err != nil {
		return nil, err
	}

	if err := s.healthSvc.Recalculate(ctx); err != nil {
		log.Printf("Failed to recalculate health score: %v", err)
	}

	return entry, nil
}

func (s *ServiceLogService) GetAllServiceLogs(ctx context.Context) ([]models.ServiceLogEntry, error) {
	return s.serviceRepo.FindAll(ctx)
}

// ConfirmServiceLog moves an unconfirmed entry to pending or done. The
// transition happens at most once; repository.ErrAlreadyConfirmed comes back
// on a repeat attempt.
func (s *ServiceLogService) ConfirmServiceLog(ctx context.Context, id int64, done bool) (*models.ServiceLogEntry, error) {
	state := models.CompletionPending
	if done {
		state = models.CompletionDone
	}

	if err := s.serviceRepo.UpdateCompletion(ctx, id, state); err != nil {
		return nil, err
	}

	return s.serviceRepo.FindByID(ctx, id)
}
