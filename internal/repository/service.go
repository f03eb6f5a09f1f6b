package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ojolmate-backend/internal/models"
)

type ServiceLogRepository struct {
	collection *mongo.Collection
}

func NewServiceLogRepository(db *mongo.Database) *ServiceLogRepository {
	return &ServiceLogRepository{
		collection: db.Collection("service_logs"),
	}
}

func (r *ServiceLogRepository) Insert(ctx context.Context, entry *models.ServiceLogEntry) error {
	_, err := r.collection.InsertOne(ctx, entry)
	return err
}

// FindAll returns all service log entries, most recent first.
func (r *ServiceLogRepository) FindAll(ctx context.Context) ([]models.ServiceLogEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []models.ServiceLogEntry
	for cursor.Next(ctx) {
		var entry models.ServiceLogEntry
		if err := cursor.Decode(&entry); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, cursor.Err()
}

func (r *ServiceLogRepository) FindByID(ctx context.Context, id int64) (*models.ServiceLogEntry, error) {
	var entry models.ServiceLogEntry
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&entry)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &entry, nil
}

// UpdateCompletion confirms an entry. The filter only matches unconfirmed
// entries, so a second confirmation attempt matches nothing and comes back as
// ErrAlreadyConfirmed rather than silently rewriting the state.
func (r *ServiceLogRepository) UpdateCompletion(ctx context.Context, id int64, state models.CompletionState) error {
	filter := bson.M{"_id": id, "completion": models.CompletionUnconfirmed}
	update := bson.M{"$set": bson.M{"completion": state}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount > 0 {
		return nil
	}

	if _, err := r.FindByID(ctx, id); err != nil {
		return err
	}
	return ErrAlreadyConfirmed
}
