package services

import (
	"context"

	"ojolmate-backend/internal/models"
	"ojolmate-backend/internal/repository"
)

type SettingsService struct {
	settingsRepo *repository.SettingsRepository
}

func NewSettingsService(settingsRepo *repository.SettingsRepository) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo}
}

type UpdateSettingsRequest struct {
	TankCapacity    float64 `json:"tankCapacity" validate:"required,gt=0"`
	AvgConsumption  float64 `json:"avgConsumption" validate:"gte=0"`
	DailyDistance   float64 `json:"dailyDistance" validate:"gte=0"`
	FuelLowKm       float64 `json:"fuelLowKm" validate:"required,gt=0"`
	ServiceInterval float64 `json:"serviceInterval" validate:"required,gt=0"`
}

func (s *SettingsService) GetSettings(ctx context.Context) (*models.Settings, error) {
	return s.settingsRepo.Get(ctx)
}

func (s *SettingsService) UpdateSettings(ctx context.Context, req *UpdateSettingsRequest) (*models.Settings, error) {
	settings := &models.Settings{
		ID:              models.SettingsID,
		TankCapacity:    req.TankCapacity,
		AvgConsumption:  req.AvgConsumption,
		DailyDistance:   req.DailyDistance,
		FuelLowKm:       req.FuelLowKm,
		ServiceInterval: req.ServiceInterval,
	}

	if err := s.settingsRepo.Update(ctx, settings); err != nil {
		return nil, err
	}

	return settings, nil
}
