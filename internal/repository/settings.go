package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"ojolmate-backend/internal/models"
)

type SettingsRepository struct {
	collection *mongo.Collection
}

func NewSettingsRepository(db *mongo.Database) *SettingsRepository {
	return &SettingsRepository{
		collection: db.Collection("settings"),
	}
}

// Get returns the settings singleton, inserting the defaults on first access.
func (r *SettingsRepository) Get(ctx context.Context) (*models.Settings, error) {
	var settings models.Settings
	err := r.collection.FindOne(ctx, bson.M{"_id": models.SettingsID}).Decode(&settings)
	if errors.Is(err, mongo.ErrNoDocuments) {
		defaults := models.DefaultSettings()
		if _, err := r.collection.InsertOne(ctx, defaults); err != nil {
			return nil, err
		}
		return defaults, nil
	}
	if err != nil {
		return nil, err
	}

	return &settings, nil
}

// Update replaces the settings document wholesale.
func (r *SettingsRepository) Update(ctx context.Context, settings *models.Settings) error {
	settings.ID = models.SettingsID
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": models.SettingsID}, settings)
	return err
}
