package repository

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/nubac/wasender-backend/internal/model"
)

type MediaRepositoryInterface interface {
	// GetURL resolves a media id to its URL. Empty id or unknown id resolve
	// to "" without error.
	GetURL(ctx context.Context, uid, mediaID string) (string, error)
}

type MediaRepository struct {
	Coll *mongo.Collection
}

func NewMediaRepository(db *mongo.Database) *MediaRepository {
	return &MediaRepository{Coll: db.Collection("media")}
}

func (r *MediaRepository) GetURL(ctx context.Context, uid, mediaID string) (string, error) {
	if mediaID == "" {
		return "", nil
	}
	var m model.Media
	err := r.Coll.FindOne(ctx, bson.M{"_id": mediaID, "uid": uid}).Decode(&m)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return "", nil
		}
		return "", err
	}
	return m.URL, nil
}

var _ MediaRepositoryInterface = (*MediaRepository)(nil)

// CachedMediaRepository memoizes URL lookups. The worker resolves the same
// teaser media for every contact on a page, so the hit rate is high.
type CachedMediaRepository struct {
	inner MediaRepositoryInterface
	cache *gocache.Cache
}

func NewCachedMediaRepository(inner MediaRepositoryInterface) *CachedMediaRepository {
	return &CachedMediaRepository{
		inner: inner,
		cache: gocache.New(5*time.Minute, 10*time.Minute),
	}
}

func (r *CachedMediaRepository) GetURL(ctx context.Context, uid, mediaID string) (string, error) {
	if mediaID == "" {
		return "", nil
	}
	key := uid + ":" + mediaID
	if v, ok := r.cache.Get(key); ok {
		return v.(string), nil
	}
	url, err := r.inner.GetURL(ctx, uid, mediaID)
	if err != nil {
		return "", err
	}
	r.cache.SetDefault(key, url)
	return url, nil
}

var _ MediaRepositoryInterface = (*CachedMediaRepository)(nil)
