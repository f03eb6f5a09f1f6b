package alertcache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ojolmate-backend/internal/models"

	"github.com/redis/go-redis/v9"
)

const defaultKey = "ojolmate:alerts"

// Cache persists the alert store snapshot as a single JSON blob in Redis so raised
// and read alert state survives process restarts.
type Cache struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// New creates a cache writing under key. An empty key uses the default; a zero ttl
// keeps the snapshot forever.
func New(client *redis.Client, key string, ttl time.Duration) *Cache {
	if key == "" {
		key = defaultKey
	}
	return &Cache{
		client: client,
		key:    key,
		ttl:    ttl,
	}
}

// Save replaces the stored snapshot.
func (c *Cache) Save(ctx context.Context, alerts []models.Alert) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	data, err := json.Marshal(alerts)
	if err != nil {
		return fmt.Errorf("failed to marshal alert snapshot: %w", err)
	}

	if err := c.client.Set(ctx, c.key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store alert snapshot: %w", err)
	}
	return nil
}

// Load returns the stored snapshot, or nil when none exists.
func (c *Cache) Load(ctx context.Context) ([]models.Alert, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	data, err := c.client.Get(ctx, c.key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load alert snapshot: %w", err)
	}

	var alerts []models.Alert
	if err := json.Unmarshal(data, &alerts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal alert snapshot: %w", err)
	}
	return alerts, nil
}
