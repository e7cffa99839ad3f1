package repository

import (
	"context"
	"time"

	"productosml/internal/db"
	"productosml/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type RecommendationRepository struct {
	col *mongo.Collection
}

func NewRecommendationRepository() *RecommendationRepository {
	return &RecommendationRepository{
		col: db.DB().Collection("recommendations"),
	}
}

func (r *RecommendationRepository) Insert(ctx context.Context, rec *models.Recommendation) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	_, err := r.col.InsertOne(ctx, rec)
	return err
}

// FindByUser lista el historial de recomendaciones servidas a un usuario,
// de la más reciente a la más antigua.
func (r *RecommendationRepository) FindByUser(ctx context.Context, userID string, limit int64) ([]models.Recommendation, error) {
	cur, err := r.col.Find(ctx,
		bson.M{"userId": userID},
		options.Find().SetSort(bson.M{"createdAt": -1}).SetLimit(limit),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Recommendation
	for cur.Next(ctx) {
		var rec models.Recommendation
		if err := cur.Decode(&rec); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, cur.Err()
}
