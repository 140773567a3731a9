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

	"github.com/mediculture/mediculture-backend/internal/appointments/domain"
	"github.com/mediculture/mediculture-backend/internal/db"
	"github.com/mediculture/mediculture-backend/internal/platform/query"
)

type AppointmentRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewAppointmentRepository(database *mongo.Database) *AppointmentRepository {
	return &AppointmentRepository{
		coll: database.Collection(db.Appointments),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (r *AppointmentRepository) List(ctx context.Context, q query.Query) ([]domain.Appointment, int64, error) {
	cur, err := r.coll.Find(ctx, q.Filter, q.FindOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("find appointments: %w", err)
	}
	appts := []domain.Appointment{}
	if err := cur.All(ctx, &appts); err != nil {
		return nil, 0, fmt.Errorf("decode appointments: %w", err)
	}

	total, err := r.coll.CountDocuments(ctx, q.Filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count appointments: %w", err)
	}
	return appts, total, nil
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	oid, ok := db.ObjectID(id)
	if !ok {
		return nil, domain.ErrAppointmentNotFound
	}

	var a domain.Appointment
	err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrAppointmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts a and fills in its id and timestamps.
func (r *AppointmentRepository) Create(ctx context.Context, a *domain.Appointment) error {
	now := r.now()
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	a.CreatedAt = now
	a.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, a); err != nil {
		return fmt.Errorf("insert appointment: %w", err)
	}
	return nil
}

// UpdateStatus sets status unconditionally and returns the updated record.
func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id, status string) (*domain.Appointment, error) {
	oid, ok := db.ObjectID(id)
	if !ok {
		return nil, domain.ErrAppointmentNotFound
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": r.now()}}

	var a domain.Appointment
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrAppointmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AppointmentRepository) DeleteAll(ctx context.Context) error {
	_, err := r.coll.DeleteMany(ctx, bson.D{})
	return err
}
