package alerts

import (
	"context"
	"errors"
	"testing"
	"time"

	"ojolmate-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStorage struct {
	fuelLogs    []models.FuelLogEntry
	serviceLogs []models.ServiceLogEntry
	settings    *models.Settings
	err         error
}

func (f *fakeStorage) FuelLogs(ctx context.Context) ([]models.FuelLogEntry, error) {
	return f.fuelLogs, f.err
}

func (f *fakeStorage) ServiceLogs(ctx context.Context) ([]models.ServiceLogEntry, error) {
	return f.serviceLogs, f.err
}

func (f *fakeStorage) Settings(ctx context.Context) (*models.Settings, error) {
	return f.settings, f.err
}

// lowFuelLogs yields avgConsumption=10 km/L with 1 liter remaining, so the
// predicted remaining range is 10 km. Most-recent-first, as storage returns them.
func lowFuelLogs() []models.FuelLogEntry {
	return []models.FuelLogEntry{
		{ID: 2, Odometer: 10, Liter: 1},
		{ID: 1, Odometer: 0, Liter: 1},
	}
}

func testEngine(storage Storage) *Engine {
	e := NewEngine(storage)
	e.now = func() time.Time {
		return time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	}
	return e
}

func TestDerive_MissingPrerequisites(t *testing.T) {
	t.Run("NoSettings", func(t *testing.T) {
		e := testEngine(&fakeStorage{fuelLogs: lowFuelLogs()})
		alerts, err := e.Derive(context.Background())
		require.NoError(t, err)
		assert.Empty(t, alerts)
	})

	t.Run("NoFuelLogs", func(t *testing.T) {
		e := testEngine(&fakeStorage{
			settings:    models.DefaultSettings(),
			serviceLogs: []models.ServiceLogEntry{{ID: 7, Component: "chain", Odometer: 1}},
		})
		alerts, err := e.Derive(context.Background())
		require.NoError(t, err)
		assert.Empty(t, alerts)
	})

	t.Run("StorageError", func(t *testing.T) {
		e := testEngine(&fakeStorage{err: errors.New("connection lost")})
		_, err := e.Derive(context.Background())
		assert.Error(t, err)
	})
}

func TestDerive_FuelAlert(t *testing.T) {
	settings := &models.Settings{ID: 1, TankCapacity: 5, FuelLowKm: 30}

	t.Run("BelowThreshold", func(t *testing.T) {
		e := testEngine(&fakeStorage{fuelLogs: lowFuelLogs(), settings: settings})

		alerts, err := e.Derive(context.Background())
		require.NoError(t, err)
		require.Len(t, alerts, 1)

		a := alerts[0]
		assert.Equal(t, models.AlertTypeFuel, a.Type)
		assert.Equal(t, models.AlertStatusUnread, a.Status)
		assert.Contains(t, a.Message, "10.0 km")
		assert.Equal(t, "2026-03-14", a.Date)
		assert.NotZero(t, a.ID)
	})

	t.Run("AboveThreshold", func(t *testing.T) {
		logs := []models.FuelLogEntry{
			{ID: 2, Odometer: 500, Liter: 5},
			{ID: 1, Odometer: 0, Liter: 5},
		}
		e := testEngine(&fakeStorage{fuelLogs: logs, settings: settings})

		alerts, err := e.Derive(context.Background())
		require.NoError(t, err)
		assert.Empty(t, alerts)
	})

	t.Run("ZeroRemainingRangeNeverFires", func(t *testing.T) {
		// a single log gives zero stats regardless of the threshold
		logs := []models.FuelLogEntry{{ID: 1, Odometer: 100, Liter: 1}}
		e := testEngine(&fakeStorage{
			fuelLogs: logs,
			settings: &models.Settings{ID: 1, TankCapacity: 5, FuelLowKm: 1000000},
		})

		alerts, err := e.Derive(context.Background())
		require.NoError(t, err)
		assert.Empty(t, alerts)
	})
}

func TestDerive_ServiceAlert(t *testing.T) {
	settings := models.DefaultSettings()

	t.Run("DueServiceUsesLogID", func(t *testing.T) {
		storage := &fakeStorage{
			fuelLogs: []models.FuelLogEntry{{ID: 1, Odometer: 5200, Liter: 5}},
			serviceLogs: []models.ServiceLogEntry{
				{ID: 42, Component: "oil filter", Odometer: 5000, Completion: models.CompletionUnconfirmed},
			},
			settings: settings,
		}
		e := testEngine(storage)

		alerts, err := e.Derive(context.Background())
		require.NoError(t, err)
		require.Len(t, alerts, 1)

		a := alerts[0]
		assert.Equal(t, int64(42), a.ID)
		assert.Equal(t, models.AlertTypeService, a.Type)
		assert.Equal(t, models.CompletionUnconfirmed, a.Completion)
		assert.Contains(t, a.Message, "5.000 km")
		assert.Contains(t, a.Message, "oil filter")
	})

	t.Run("DeriveIsIdempotent", func(t *testing.T) {
		storage := &fakeStorage{
			fuelLogs: []models.FuelLogEntry{{ID: 1, Odometer: 5200, Liter: 5}},
			serviceLogs: []models.ServiceLogEntry{
				{ID: 42, Component: "oil filter", Odometer: 5000},
			},
			settings: settings,
		}
		e := testEngine(storage)

		first, err := e.Derive(context.Background())
		require.NoError(t, err)
		second, err := e.Derive(context.Background())
		require.NoError(t, err)

		require.Len(t, first, 1)
		require.Len(t, second, 1)
		assert.Equal(t, first[0].ID, second[0].ID)
	})

	t.Run("NotYetDue", func(t *testing.T) {
		storage := &fakeStorage{
			fuelLogs: []models.FuelLogEntry{{ID: 1, Odometer: 4800, Liter: 5}},
			serviceLogs: []models.ServiceLogEntry{
				{ID: 42, Component: "oil filter", Odometer: 5000},
			},
			settings: settings,
		}
		e := testEngine(storage)

		alerts, err := e.Derive(context.Background())
		require.NoError(t, err)
		assert.Empty(t, alerts)
	})

	t.Run("StorageOrderPreserved", func(t *testing.T) {
		storage := &fakeStorage{
			fuelLogs: []models.FuelLogEntry{{ID: 1, Odometer: 9000, Liter: 5}},
			serviceLogs: []models.ServiceLogEntry{
				{ID: 3, Component: "brakes", Odometer: 8000},
				{ID: 2, Component: "chain", Odometer: 6000},
				{ID: 9, Component: "tires", Odometer: 7000},
			},
			settings: settings,
		}
		e := testEngine(storage)

		alerts, err := e.Derive(context.Background())
		require.NoError(t, err)
		require.Len(t, alerts, 3)
		assert.Equal(t, int64(3), alerts[0].ID)
		assert.Equal(t, int64(2), alerts[1].ID)
		assert.Equal(t, int64(9), alerts[2].ID)
	})
}

func TestDerive_FuelAlertPrecedesServiceAlerts(t *testing.T) {
	storage := &fakeStorage{
		fuelLogs: lowFuelLogs(),
		serviceLogs: []models.ServiceLogEntry{
			{ID: 42, Component: "oil filter", Odometer: 5},
		},
		settings: &models.Settings{ID: 1, TankCapacity: 5, FuelLowKm: 30},
	}
	e := testEngine(storage)

	alerts, err := e.Derive(context.Background())
	require.NoError(t, err)
	require.Len(t, alerts, 2)
	assert.Equal(t, models.AlertTypeFuel, alerts[0].Type)
	assert.Equal(t, models.AlertTypeService, alerts[1].Type)
}
