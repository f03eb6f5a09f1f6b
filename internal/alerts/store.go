package alerts

import (
	"context"
	"log"
	"sync"

	"ojolmate-backend/internal/models"
)

// Persistence saves and restores the alert snapshot. Failures are logged and
// swallowed by the store; alert state is always served from memory.
type Persistence interface {
	Save(ctx context.Context, alerts []models.Alert) error
	Load(ctx context.Context) ([]models.Alert, error)
}

// Store is the single source of truth for raised alerts. It is an explicit
// instance with an injected lifetime, not ambient module state; the composition
// root owns it and hands it to consumers.
type Store struct {
	mu      sync.RWMutex
	alerts  []models.Alert
	persist Persistence
}

// NewStore creates a store. persist may be nil for a purely in-memory store.
func NewStore(persist Persistence) *Store {
	return &Store{persist: persist}
}

// Load restores the persisted snapshot, replacing the in-memory state.
func (s *Store) Load(ctx context.Context) error {
	if s.persist == nil {
		return nil
	}
	alerts, err := s.persist.Load(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.alerts = alerts
	s.mu.Unlock()
	return nil
}

// List returns a copy of all alerts, most recently appended last.
func (s *Store) List() []models.Alert {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Alert, len(s.alerts))
	copy(out, s.alerts)
	return out
}

// Get looks up an alert by id.
func (s *Store) Get(id int64) (models.Alert, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.alerts {
		if a.ID == id {
			return a, true
		}
	}
	return models.Alert{}, false
}

// Unread returns the unread alerts of the given type.
func (s *Store) Unread(alertType string) []models.Alert {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Alert
	for _, a := range s.alerts {
		if a.Type == alertType && a.Status == models.AlertStatusUnread {
			out = append(out, a)
		}
	}
	return out
}

// MarkRead marks the alert read. Unknown ids are a no-op, not a failure, and
// marking twice is harmless.
func (s *Store) MarkRead(ctx context.Context, id int64) {
	s.mu.Lock()
	for i := range s.alerts {
		if s.alerts[i].ID == id {
			s.alerts[i].Status = models.AlertStatusRead
		}
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.save(ctx, snapshot)
}

// Upsert appends a derived alert unless it is already represented: a Fuel alert is
// skipped while an unread Fuel alert exists, a Service alert is skipped when its id
// is already present. Reports whether the alert was appended.
func (s *Store) Upsert(ctx context.Context, alert models.Alert) bool {
	s.mu.Lock()
	for _, a := range s.alerts {
		if alert.Type == models.AlertTypeFuel &&
			a.Type == models.AlertTypeFuel && a.Status == models.AlertStatusUnread {
			s.mu.Unlock()
			return false
		}
		if alert.Type == models.AlertTypeService && a.ID == alert.ID {
			s.mu.Unlock()
			return false
		}
	}
	s.alerts = append(s.alerts, alert)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.save(ctx, snapshot)
	return true
}

// Reset clears all alerts.
func (s *Store) Reset(ctx context.Context) {
	s.mu.Lock()
	s.alerts = nil
	s.mu.Unlock()

	s.save(ctx, nil)
}

func (s *Store) snapshotLocked() []models.Alert {
	out := make([]models.Alert, len(s.alerts))
	copy(out, s.alerts)
	return out
}

func (s *Store) save(ctx context.Context, snapshot []models.Alert) {
	if s.persist == nil {
		return
	}
	if err := s.persist.Save(ctx, snapshot); err != nil {
		log.Printf("Failed to persist alert snapshot: %v", err)
	}
}
