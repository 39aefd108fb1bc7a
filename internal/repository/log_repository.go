package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/nubac/wasender-backend/internal/model"
)

type LogRepositoryInterface interface {
	Append(ctx context.Context, uid, logType string, payload map[string]any) error
}

type LogRepository struct {
	Coll *mongo.Collection
}

func NewLogRepository(db *mongo.Database) *LogRepository {
	return &LogRepository{Coll: db.Collection("logs")}
}

func (r *LogRepository) Append(ctx context.Context, uid, logType string, payload map[string]any) error {
	entry := model.LogEntry{
		ID:      uuid.NewString(),
		UID:     uid,
		Type:    logType,
		Payload: payload,
		TS:      time.Now(),
	}
	_, err := r.Coll.InsertOne(ctx, entry)
	return err
}

var _ LogRepositoryInterface = (*LogRepository)(nil)
