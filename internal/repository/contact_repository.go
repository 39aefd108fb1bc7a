package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nubac/wasender-backend/internal/model"
)

// ContactRepositoryInterface defines methods used by services
type ContactRepositoryInterface interface {
	FetchActivePage(ctx context.Context, uid string, tags []string, cursor string, limit int) ([]model.Contact, error)
	FindByPhone(ctx context.Context, phoneE164 string) (*model.Contact, error)
	TouchInbound(ctx context.Context, id string, at time.Time) error
	Create(ctx context.Context, c *model.Contact) error
}

// ContactRepository is the concrete implementation
type ContactRepository struct {
	Coll *mongo.Collection
}

func NewContactRepository(db *mongo.Database) *ContactRepository {
	return &ContactRepository{Coll: db.Collection("contacts")}
}

// FetchActivePage returns one page of a tenant's active contacts ordered by
// id, starting strictly after the cursor. An empty tags slice means no tag
// filter; a non-empty slice is matched as a logical OR.
func (r *ContactRepository) FetchActivePage(ctx context.Context, uid string, tags []string, cursor string, limit int) ([]model.Contact, error) {
	filter := bson.M{
		"uid":    uid,
		"status": model.ContactStatusActive,
	}
	if len(tags) > 0 {
		filter["tags"] = bson.M{"$in": tags}
	}
	if cursor != "" {
		filter["_id"] = bson.M{"$gt": cursor}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetLimit(int64(limit))

	cur, err := r.Coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	contacts := []model.Contact{}
	if err := cur.All(ctx, &contacts); err != nil {
		return nil, err
	}
	return contacts, nil
}

// FindByPhone looks a contact up by phone number across all tenants. Returns
// nil when no contact matches.
func (r *ContactRepository) FindByPhone(ctx context.Context, phoneE164 string) (*model.Contact, error) {
	var c model.Contact
	err := r.Coll.FindOne(ctx, bson.M{"phoneE164": phoneE164}).Decode(&c)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil // not found
		}
		return nil, err
	}
	return &c, nil
}

// TouchInbound records an inbound message timestamp, opening the 24h
// messaging window for that contact.
func (r *ContactRepository) TouchInbound(ctx context.Context, id string, at time.Time) error {
	_, err := r.Coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"lastInboundAt": at, "updatedAt": at},
	})
	return err
}

func (r *ContactRepository) Create(ctx context.Context, c *model.Contact) error {
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	if c.Status == "" {
		c.Status = model.ContactStatusActive
	}
	_, err := r.Coll.InsertOne(ctx, c)
	return err
}

var _ ContactRepositoryInterface = (*ContactRepository)(nil)
