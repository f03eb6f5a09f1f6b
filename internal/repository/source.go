package repository

import (
	"context"

	"ojolmate-backend/internal/models"
)

// AlertSource bundles the read paths the alert engine derives from.
type AlertSource struct {
	fuel     *FuelLogRepository
	service  *ServiceLogRepository
	settings *SettingsRepository
}

func NewAlertSource(fuel *FuelLogRepository, service *ServiceLogRepository, settings *SettingsRepository) *AlertSource {
	return &AlertSource{
		fuel:     fuel,
		service:  service,
		settings: settings,
	}
}

func (s *AlertSource) FuelLogs(ctx context.Context) ([]models.FuelLogEntry, error) {
	return s.fuel.FindAll(ctx)
}

func (s *AlertSource) ServiceLogs(ctx context.Context) ([]models.ServiceLogEntry, error) {
	return s.service.FindAll(ctx)
}

func (s *AlertSource) Settings(ctx context.Context) (*models.Settings, error) {
	return s.settings.Get(ctx)
}
