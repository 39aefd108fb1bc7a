package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nubac/wasender-backend/internal/model"
)

type StateRepositoryInterface interface {
	Get(ctx context.Context, uid, phoneE164 string) (*model.ConversationState, error)
	Upsert(ctx context.Context, st *model.ConversationState) error
}

type StateRepository struct {
	Coll *mongo.Collection
}

func NewStateRepository(db *mongo.Database) *StateRepository {
	return &StateRepository{Coll: db.Collection("userStates")}
}

// Get returns the conversation state for a tenant/phone pair, or nil when the
// recipient has no state yet (idle).
func (r *StateRepository) Get(ctx context.Context, uid, phoneE164 string) (*model.ConversationState, error) {
	var st model.ConversationState
	err := r.Coll.FindOne(ctx, bson.M{"_id": model.PhoneHash(uid, phoneE164)}).Decode(&st)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &st, nil
}

func (r *StateRepository) Upsert(ctx context.Context, st *model.ConversationState) error {
	_, err := r.Coll.UpdateOne(ctx,
		bson.M{"_id": st.ID},
		bson.M{"$set": bson.M{
			"uid":              st.UID,
			"activeCampaignId": st.ActiveCampaignID,
			"state":            st.State,
			"invalidCount":     st.InvalidCount,
			"updatedAt":        st.UpdatedAt,
		}},
		options.Update().SetUpsert(true),
	)
	return err
}

var _ StateRepositoryInterface = (*StateRepository)(nil)
