package persistence

import (
	"context"

	"creatorpulse/domain/model"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

// TrackerRunRepository appends per-cycle audit documents to MongoDB.
type TrackerRunRepository struct{ db *mongo.Database }

func NewTrackerRunRepository(db *mongo.Database) *TrackerRunRepository {
	return &TrackerRunRepository{db: db}
}

func (r *TrackerRunRepository) Insert(ctx context.Context, run *model.TrackerRun) error {
	if r.db == nil {
		return nil
	}
	_, err := r.db.Collection("tracker_runs").InsertOne(ctx, run)
	return err
}
