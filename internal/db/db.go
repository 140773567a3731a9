package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names.
const (
	Users          = "users"
	Medicines      = "medicines"
	Appointments   = "appointments"
	CommunityPosts = "communityposts"
)

type Options struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
	PingTimeout    time.Duration
}

// DB owns the process-wide mongo client. It is safe for concurrent use.
type DB struct {
	Client   *mongo.Client
	Database *mongo.Database
}

func Open(ctx context.Context, opt Options) (*DB, error) {
	if opt.URI == "" {
		return nil, fmt.Errorf("MONGODB_URI is required")
	}
	if opt.ConnectTimeout == 0 {
		opt.ConnectTimeout = 10 * time.Second
	}
	if opt.PingTimeout == 0 {
		opt.PingTimeout = 3 * time.Second
	}

	cctx, cancel := context.WithTimeout(ctx, opt.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(cctx, options.Client().
		ApplyURI(opt.URI).
		SetConnectTimeout(opt.ConnectTimeout))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	// Fail fast
	pctx, pcancel := context.WithTimeout(ctx, opt.PingTimeout)
	defer pcancel()
	if err := client.Ping(pctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return New(client, opt.Database), nil
}

// New wraps an already connected client.
func New(client *mongo.Client, database string) *DB {
	return &DB{Client: client, Database: client.Database(database)}
}

// ObjectID parses a hex id from a URL. ok is false for anything that is not
// a well-formed ObjectID; callers report that as not found.
func ObjectID(hex string) (id primitive.ObjectID, ok bool) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

func (d *DB) Collection(name string) *mongo.Collection {
	return d.Database.Collection(name)
}

func (d *DB) Ping(ctx context.Context) error {
	return d.Client.Ping(ctx, readpref.Primary())
}

func (d *DB) Close(ctx context.Context) error {
	if d == nil || d.Client == nil {
		return nil
	}
	return d.Client.Disconnect(ctx)
}

// Counts returns the document count of each named collection.
func (d *DB) Counts(ctx context.Context, collections ...string) (map[string]int64, error) {
	out := make(map[string]int64, len(collections))
	for _, name := range collections {
		n, err := d.Collection(name).CountDocuments(ctx, bson.D{})
		if err != nil {
			return nil, fmt.Errorf("count %s: %w", name, err)
		}
		out[name] = n
	}
	return out, nil
}

// Indexes lists the indexes every collection needs. firebaseUid and email
// uniqueness on users is enforced here rather than in application code.
func Indexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		Users: {
			{Keys: bson.D{{Key: "firebaseUid", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		Medicines: {
			{Keys: bson.D{{Key: "isActive", Value: 1}, {Key: "category", Value: 1}}},
			{Keys: bson.D{{Key: "isActive", Value: 1}, {Key: "name", Value: 1}}},
		},
		Appointments: {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "appointmentDate", Value: -1}}},
		},
		CommunityPosts: {
			{Keys: bson.D{{Key: "isApproved", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "category", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
	}
}

// EnsureIndexes creates any missing indexes. Creating an existing index is a no-op.
func (d *DB) EnsureIndexes(ctx context.Context) error {
	for coll, models := range Indexes() {
		if _, err := d.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", coll, err)
		}
	}
	return nil
}
