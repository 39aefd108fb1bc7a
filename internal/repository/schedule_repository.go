package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	appErrors "github.com/nubac/wasender-backend/internal/errors"
	"github.com/nubac/wasender-backend/internal/model"
)

type ScheduleRepositoryInterface interface {
	DuePending(ctx context.Context, now time.Time, limit int) ([]model.Schedule, error)
	Claim(ctx context.Context, id string, at time.Time) error
	Requeue(ctx context.Context, id, cursor string, processedCount int) error
	MarkSent(ctx context.Context, id string, processedCount int, doneAt time.Time) error
	MarkFailed(ctx context.Context, id, reason string) error
	Create(ctx context.Context, s *model.Schedule) error
}

type ScheduleRepository struct {
	Coll *mongo.Collection
}

func NewScheduleRepository(db *mongo.Database) *ScheduleRepository {
	return &ScheduleRepository{Coll: db.Collection("schedules")}
}

// DuePending returns pending schedules due at or before now, across every
// tenant, oldest first. Cancelled schedules never match the status filter.
func (r *ScheduleRepository) DuePending(ctx context.Context, now time.Time, limit int) ([]model.Schedule, error) {
	filter := bson.M{
		"status":      model.ScheduleStatusPending,
		"scheduledAt": bson.M{"$lte": now},
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "scheduledAt", Value: 1}}).
		SetLimit(int64(limit))

	cur, err := r.Coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	schedules := []model.Schedule{}
	if err := cur.All(ctx, &schedules); err != nil {
		return nil, err
	}
	return schedules, nil
}

// Claim flips pending -> processing. The status is part of the filter, so a
// schedule already claimed (or cancelled) by someone else matches nothing and
// the caller gets ErrScheduleClaimed.
func (r *ScheduleRepository) Claim(ctx context.Context, id string, at time.Time) error {
	res, err := r.Coll.UpdateOne(ctx,
		bson.M{"_id": id, "status": model.ScheduleStatusPending},
		bson.M{"$set": bson.M{
			"status":       model.ScheduleStatusProcessing,
			"processingAt": at,
			"updatedAt":    at,
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return appErrors.ErrScheduleClaimed
	}
	return nil
}

// Requeue puts a partially processed schedule back to pending with the new
// cursor, so the next invocation resumes where this one left off.
func (r *ScheduleRepository) Requeue(ctx context.Context, id, cursor string, processedCount int) error {
	_, err := r.Coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"status":         model.ScheduleStatusPending,
			"cursor":         cursor,
			"processedCount": processedCount,
			"updatedAt":      time.Now(),
		},
	})
	return err
}

func (r *ScheduleRepository) MarkSent(ctx context.Context, id string, processedCount int, doneAt time.Time) error {
	_, err := r.Coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"status":         model.ScheduleStatusSent,
			"processedCount": processedCount,
			"doneAt":         doneAt,
			"updatedAt":      doneAt,
		},
		"$unset": bson.M{"cursor": ""},
	})
	return err
}

func (r *ScheduleRepository) MarkFailed(ctx context.Context, id, reason string) error {
	_, err := r.Coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"status":    model.ScheduleStatusFailed,
			"error":     reason,
			"updatedAt": time.Now(),
		},
	})
	return err
}

func (r *ScheduleRepository) Create(ctx context.Context, s *model.Schedule) error {
	now := time.Now()
	s.CreatedAt = now
	s.UpdatedAt = now
	if s.Status == "" {
		s.Status = model.ScheduleStatusPending
	}
	_, err := r.Coll.InsertOne(ctx, s)
	return err
}

var _ ScheduleRepositoryInterface = (*ScheduleRepository)(nil)
