package services

import (
	"context"
	"time"

	"ojolmate-backend/internal/models"
	"ojolmate-backend/internal/repository"
)

type HealthScoreService struct {
	healthRepo  *repository.HealthScoreRepository
	fuelRepo    *repository.FuelLogRepository
	serviceRepo *repository.ServiceLogRepository
}

func NewHealthScoreService(healthRepo *repository.HealthScoreRepository, fuelRepo *repository.FuelLogRepository, serviceRepo *repository.ServiceLogRepository) *HealthScoreService {
	return &HealthScoreService{
		healthRepo:  healthRepo,
		fuelRepo:    fuelRepo,
		serviceRepo: serviceRepo,
	}
}

// Recalculate appends a fresh score snapshot. Consumption efficiency and
// service discipline both raise the score from the 50-point baseline, capped
// at 100.
func (s *HealthScoreService) Recalculate(ctx context.Context) error {
	fuelLogs, err := s.fuelRepo.FindAll(ctx)
	if err != nil {
		return err
	}
	serviceLogs, err := s.serviceRepo.FindAll(ctx)
	if err != nil {
		return err
	}

	var totalConsumption float64
	var measured int
	for _, entry := range fuelLogs {
		if entry.Consumption > 0 {
			totalConsumption += entry.Consumption
			measured++
		}
	}
	var avgConsumption float64
	if measured > 0 {
		avgConsumption = totalConsumption / float64(measured)
	}

	score := 50 + avgConsumption*10 + float64(len(serviceLogs))*5
	if score > 100 {
		score = 100
	}

	now := time.Now()
	snapshot := &models.HealthScore{
		ID:        now.UnixMilli(),
		Score:     score,
		Comment:   scoreComment(score),
		UpdatedAt: now.Format("2006-01-02"),
	}

	return s.healthRepo.Insert(ctx, snapshot)
}

func scoreComment(score float64) string {
	switch {
	case score >= 90:
		return "Excellent condition"
	case score >= 70:
		return "Good condition"
	case score >= 55:
		return "Fair condition, consider a service"
	default:
		return "Needs attention"
	}
}

func (s *HealthScoreService) GetLatestScore(ctx context.Context) (*models.HealthScore, error) {
	return s.healthRepo.FindLatest(ctx)
}

func (s *HealthScoreService) GetScoreHistory(ctx context.Context) ([]models.HealthScore, error) {
	return s.healthRepo.FindAll(ctx)
}
