package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ojolmate-backend/internal/models"
)

type HealthScoreRepository struct {
	collection *mongo.Collection
}

func NewHealthScoreRepository(db *mongo.Database) *HealthScoreRepository {
	return &HealthScoreRepository{
		collection: db.Collection("health_scores"),
	}
}

func (r *HealthScoreRepository) Insert(ctx context.Context, score *models.HealthScore) error {
	_, err := r.collection.InsertOne(ctx, score)
	return err
}

func (r *HealthScoreRepository) FindLatest(ctx context.Context) (*models.HealthScore, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "_id", Value: -1}})

	var score models.HealthScore
	err := r.collection.FindOne(ctx, bson.M{}, opts).Decode(&score)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &score, nil
}

// FindAll returns the score history, newest first.
func (r *HealthScoreRepository) FindAll(ctx context.Context) ([]models.HealthScore, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var scores []models.HealthScore
	for cursor.Next(ctx) {
		var score models.HealthScore
		if err := cursor.Decode(&score); err != nil {
			return nil, err
		}
		scores = append(scores, score)
	}

	return scores, cursor.Err()
}
