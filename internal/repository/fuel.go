package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ojolmate-backend/internal/models"
)

type FuelLogRepository struct {
	collection *mongo.Collection
}

func NewFuelLogRepository(db *mongo.Database) *FuelLogRepository {
	return &FuelLogRepository{
		collection: db.Collection("fuel_logs"),
	}
}

func (r *FuelLogRepository) Insert(ctx context.Context, entry *models.FuelLogEntry) error {
	_, err := r.collection.InsertOne(ctx, entry)
	return err
}

// FindAll returns all fuel log entries, most recent first.
func (r *FuelLogRepository) FindAll(ctx context.Context) ([]models.FuelLogEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "time", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []models.FuelLogEntry
	for cursor.Next(ctx) {
		var entry models.FuelLogEntry
		if err := cursor.Decode(&entry); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, cursor.Err()
}

// FindMostRecent returns the latest entry, or ErrNotFound on an empty log.
func (r *FuelLogRepository) FindMostRecent(ctx context.Context) (*models.FuelLogEntry, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "time", Value: -1}})

	var entry models.FuelLogEntry
	err := r.collection.FindOne(ctx, bson.M{}, opts).Decode(&entry)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &entry, nil
}
