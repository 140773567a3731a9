package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mediculture/mediculture-backend/internal/community/domain"
	"github.com/mediculture/mediculture-backend/internal/db"
	"github.com/mediculture/mediculture-backend/internal/platform/query"
)

type PostRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewPostRepository(database *mongo.Database) *PostRepository {
	return &PostRepository{
		coll: database.Collection(db.CommunityPosts),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (r *PostRepository) List(ctx context.Context, q query.Query) ([]domain.Post, int64, error) {
	cur, err := r.coll.Find(ctx, q.Filter, q.FindOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("find posts: %w", err)
	}
	posts := []domain.Post{}
	if err := cur.All(ctx, &posts); err != nil {
		return nil, 0, fmt.Errorf("decode posts: %w", err)
	}

	total, err := r.coll.CountDocuments(ctx, q.Filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}
	return posts, total, nil
}

// GetApprovedByID hides unapproved posts the same way as missing ones.
func (r *PostRepository) GetApprovedByID(ctx context.Context, id string) (*domain.Post, error) {
	oid, ok := db.ObjectID(id)
	if !ok {
		return nil, domain.ErrPostNotFound
	}

	var p domain.Post
	err := r.coll.FindOne(ctx, bson.M{"_id": oid, "isApproved": true}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostRepository) Create(ctx context.Context, p *domain.Post) error {
	now := r.now()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	p.CreatedAt = now
	p.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

// Like records uid's like at most once. Liking an already liked post leaves
// it unchanged and still returns it.
func (r *PostRepository) Like(ctx context.Context, id, uid string) (*domain.Post, error) {
	oid, ok := db.ObjectID(id)
	if !ok {
		return nil, domain.ErrPostNotFound
	}

	now := r.now()
	filter := bson.M{
		"_id":          oid,
		"isApproved":   true,
		"likes.userId": bson.M{"$ne": uid},
	}
	update := bson.M{
		"$push": bson.M{"likes": domain.Like{UserID: uid, Timestamp: now}},
		"$set":  bson.M{"updatedAt": now},
	}

	p, err := r.findOneAndUpdate(ctx, filter, update)
	if errors.Is(err, domain.ErrPostNotFound) {
		// either missing or already liked
		return r.GetApprovedByID(ctx, id)
	}
	return p, err
}

// Unlike removes uid's like if present.
func (r *PostRepository) Unlike(ctx context.Context, id, uid string) (*domain.Post, error) {
	oid, ok := db.ObjectID(id)
	if !ok {
		return nil, domain.ErrPostNotFound
	}

	return r.findOneAndUpdate(ctx, bson.M{"_id": oid, "isApproved": true}, bson.M{
		"$pull": bson.M{"likes": bson.M{"userId": uid}},
		"$set":  bson.M{"updatedAt": r.now()},
	})
}

// AddComment appends c, assigning its id and timestamp.
func (r *PostRepository) AddComment(ctx context.Context, id string, c domain.Comment) (*domain.Post, error) {
	oid, ok := db.ObjectID(id)
	if !ok {
		return nil, domain.ErrPostNotFound
	}

	now := r.now()
	c.ID = primitive.NewObjectID()
	c.Timestamp = now

	return r.findOneAndUpdate(ctx, bson.M{"_id": oid, "isApproved": true}, bson.M{
		"$push": bson.M{"comments": c},
		"$set":  bson.M{"updatedAt": now},
	})
}

func (r *PostRepository) findOneAndUpdate(ctx context.Context, filter, update bson.M) (*domain.Post, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var p domain.Post
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostRepository) DeleteAll(ctx context.Context) error {
	_, err := r.coll.DeleteMany(ctx, bson.D{})
	return err
}
