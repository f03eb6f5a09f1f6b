package alerts

import (
	"context"
	"strconv"
	"time"

	"ojolmate-backend/internal/models"
	"ojolmate-backend/pkg/fuelstats"
	"ojolmate-backend/pkg/utils"
)

// Storage is the slice of the persistence layer the engine reads from. The engine
// never writes through it.
type Storage interface {
	FuelLogs(ctx context.Context) ([]models.FuelLogEntry, error)
	ServiceLogs(ctx context.Context) ([]models.ServiceLogEntry, error)
	Settings(ctx context.Context) (*models.Settings, error)
}

// Engine recomputes the current set of active alerts from the logs and settings.
// Derivation is a pure, idempotent recompute: it holds no state between calls and
// never mutates the logs.
type Engine struct {
	storage Storage
	now     func() time.Time
}

func NewEngine(storage Storage) *Engine {
	return &Engine{
		storage: storage,
		now:     time.Now,
	}
}

// Derive returns the candidate alerts for the current logs and settings. Missing
// settings or an empty fuel log history yield no alerts and no error: there is
// nothing to compute against yet. The fuel alert, if any, comes first; service
// alerts follow in storage order.
func (e *Engine) Derive(ctx context.Context) ([]models.Alert, error) {
	settings, err := e.storage.Settings(ctx)
	if err != nil {
		return nil, err
	}
	fuelLogs, err := e.storage.FuelLogs(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil || len(fuelLogs) == 0 {
		return nil, nil
	}

	now := e.now()
	today := now.Format("2006-01-02")

	var out []models.Alert

	tankCapacity := settings.TankCapacity
	if tankCapacity <= 0 {
		tankCapacity = 5
	}
	fuelLowKm := settings.FuelLowKm
	if fuelLowKm <= 0 {
		fuelLowKm = 30
	}

	stats := fuelstats.Calculate(fuelLogs, tankCapacity, nil)

	// RemainingRange of zero means there is no signal yet, never an empty tank.
	if stats.RemainingRange != 0 && stats.RemainingRange < fuelLowKm {
		out = append(out, models.Alert{
			ID:      now.UnixMilli(),
			Type:    models.AlertTypeFuel,
			Message: "Fuel running low, predicted remaining range " + strconv.FormatFloat(stats.RemainingRange, 'f', 1, 64) + " km",
			Status:  models.AlertStatusUnread,
			Date:    today,
		})
	}

	serviceLogs, err := e.storage.ServiceLogs(ctx)
	if err != nil {
		return nil, err
	}

	// The most recent fill's odometer is the vehicle's current distance.
	lastOdometer := fuelLogs[0].Odometer

	for _, sl := range serviceLogs {
		if sl.Odometer > lastOdometer {
			continue
		}
		out = append(out, models.Alert{
			ID:         sl.ID,
			Type:       models.AlertTypeService,
			Message:    "Scheduled service due at " + utils.FormatThousands(sl.Odometer) + " km for component " + sl.Component,
			Status:     models.AlertStatusUnread,
			Completion: sl.Completion,
			Date:       today,
		})
	}

	return out, nil
}
