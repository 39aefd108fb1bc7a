package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	appErrors "github.com/nubac/wasender-backend/internal/errors"
	"github.com/nubac/wasender-backend/internal/model"
)

type CampaignRepositoryInterface interface {
	GetByID(ctx context.Context, uid, id string) (*model.Campaign, error)
	Create(ctx context.Context, c *model.Campaign) error
}

type CampaignRepository struct {
	Coll *mongo.Collection
}

func NewCampaignRepository(db *mongo.Database) *CampaignRepository {
	return &CampaignRepository{Coll: db.Collection("campaigns")}
}

func (r *CampaignRepository) GetByID(ctx context.Context, uid, id string) (*model.Campaign, error) {
	var c model.Campaign
	err := r.Coll.FindOne(ctx, bson.M{"_id": id, "uid": uid}).Decode(&c)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, appErrors.NewCampaignNotFound(id)
		}
		return nil, err
	}
	return &c, nil
}

func (r *CampaignRepository) Create(ctx context.Context, c *model.Campaign) error {
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	_, err := r.Coll.InsertOne(ctx, c)
	return err
}

var _ CampaignRepositoryInterface = (*CampaignRepository)(nil)
