package services

import (
	"context"
	"errors"
	"log"
	"time"

	"ojolmate-backend/internal/models"
	"ojolmate-backend/internal/repository"
	"ojolmate-backend/pkg/fuelstats"
)

// FuelCheckKicker restarts the fuel alert check chain after a fuel log write.
type FuelCheckKicker interface {
	KickFuelCheck(ctx context.Context)
}

type FuelLogService struct {
	fuelRepo     *repository.FuelLogRepository
	settingsRepo *repository.SettingsRepository
	healthSvc    *HealthScoreService
	kicker       FuelCheckKicker
}

func NewFuelLogService(fuelRepo *repository.FuelLogRepository, settingsRepo *repository.SettingsRepository, healthSvc *HealthScoreService) *FuelLogService {
	return &FuelLogService{
		fuelRepo:     fuelRepo,
		settingsRepo: settingsRepo,
		healthSvc:    healthSvc,
	}
}

// SetFuelCheckKicker wires the scheduler in; nil is fine for tests.
func (s *FuelLogService) SetFuelCheckKicker(kicker FuelCheckKicker) {
	s.kicker = kicker
}

type AddFuelLogRequest struct {
	Date     string  `json:"date" validate:"required,datetime=2006-01-02"`
	Time     string  `json:"time" validate:"required,datetime=15:04"`
	Liter    float64 `json:"liter" validate:"required,gt=0"`
	Price    float64 `json:"price" validate:"gte=0"`
	Odometer float64 `json:"odometer" validate:"gte=0"`
	FuelType string  `json:"fuelType"`
}

// AddFuelLog appends a fill-up. Consumption is derived against the previous
// entry at insert time; the first entry has none.
func (s *FuelLogService) AddFuelLog(ctx context.Context, req *AddFuelLogRequest) (*models.FuelLogEntry, error) {
	entry := &models.FuelLogEntry{
		ID:       time.Now().UnixMilli(),
		Date:     req.Date,
		Time:     req.Time,
		Liter:    req.Liter,
		Price:    req.Price,
		Odometer: req.Odometer,
		FuelType: req.FuelType,
	}

	last, err := s.fuelRepo.FindMostRecent(ctx)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if last != nil && entry.Odometer > last.Odometer && entry.Liter > 0 {
		entry.Consumption = (entry.Odometer - last.Odometer) / entry.Liter
		entry.Prediction = entry.Liter * entry.Consumption
	}

	if err := s.fuelRepo.Insert(ctx, entry); err != nil {
		return nil, err
	}

	// score update and alert re-check are best-effort side effects
	if err := s.healthSvc.Recalculate(ctx); err != nil {
		log.Printf("Failed to recalculate health score: %v", err)
	}
	if s.kicker != nil {
		s.kicker.KickFuelCheck(ctx)
	}

	return entry, nil
}

func (s *FuelLogService) GetAllFuelLogs(ctx context.Context) ([]models.FuelLogEntry, error) {
	return s.fuelRepo.FindAll(ctx)
}

// GetFuelStats recomputes the consumption metrics from the full log history.
// remainingFuel overrides the most-recent-fill estimate when the caller knows
// better.
func (s *FuelLogService) GetFuelStats(ctx context.Context, remainingFuel *float64) (*models.FuelStats, error) {
	logs, err := s.fuelRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	tankCapacity := settings.TankCapacity
	if tankCapacity <= 0 {
		tankCapacity = 5
	}

	stats := fuelstats.Calculate(logs, tankCapacity, remainingFuel)
	return &stats, nil
}
