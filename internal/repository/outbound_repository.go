package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nubac/wasender-backend/internal/model"
)

type OutboundRecordRepositoryInterface interface {
	Upsert(ctx context.Context, rec *model.OutboundRecord) error
}

type OutboundRecordRepository struct {
	Coll *mongo.Collection
}

func NewOutboundRecordRepository(db *mongo.Database) *OutboundRecordRepository {
	return &OutboundRecordRepository{Coll: db.Collection("outbound")}
}

// Upsert writes the record under its message SID. A repeated SID replaces the
// existing document, keeping bookkeeping at-most-once per message.
func (r *OutboundRecordRepository) Upsert(ctx context.Context, rec *model.OutboundRecord) error {
	_, err := r.Coll.ReplaceOne(ctx,
		bson.M{"_id": rec.SID},
		rec,
		options.Replace().SetUpsert(true),
	)
	return err
}

var _ OutboundRecordRepositoryInterface = (*OutboundRecordRepository)(nil)
