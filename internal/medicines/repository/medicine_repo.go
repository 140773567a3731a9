package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mediculture/mediculture-backend/internal/db"
	"github.com/mediculture/mediculture-backend/internal/medicines/domain"
	"github.com/mediculture/mediculture-backend/internal/platform/query"
)

type MedicineRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewMedicineRepository(database *mongo.Database) *MedicineRepository {
	return &MedicineRepository{
		coll: database.Collection(db.Medicines),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// List runs a catalog query and counts every match, ignoring skip/limit.
func (r *MedicineRepository) List(ctx context.Context, q query.Query) ([]domain.Medicine, int64, error) {
	cur, err := r.coll.Find(ctx, q.Filter, q.FindOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("find medicines: %w", err)
	}
	medicines := []domain.Medicine{}
	if err := cur.All(ctx, &medicines); err != nil {
		return nil, 0, fmt.Errorf("decode medicines: %w", err)
	}

	total, err := r.coll.CountDocuments(ctx, q.Filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count medicines: %w", err)
	}
	return medicines, total, nil
}

// GetActiveByID returns the medicine only while it is active. Malformed ids
// are reported as not found.
func (r *MedicineRepository) GetActiveByID(ctx context.Context, id string) (*domain.Medicine, error) {
	oid, ok := db.ObjectID(id)
	if !ok {
		return nil, domain.ErrMedicineNotFound
	}

	var m domain.Medicine
	err := r.coll.FindOne(ctx, bson.M{"_id": oid, "isActive": true}).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrMedicineNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Categories returns the distinct categories of active medicines, sorted.
func (r *MedicineRepository) Categories(ctx context.Context) ([]string, error) {
	values, err := r.coll.Distinct(ctx, "category", bson.M{"isActive": true})
	if err != nil {
		return nil, fmt.Errorf("distinct categories: %w", err)
	}

	out := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out, nil
}

// Refs loads name and genericName for ids in one round trip. Unknown ids
// are absent from the result.
func (r *MedicineRepository) Refs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]domain.Ref, error) {
	out := make(map[primitive.ObjectID]domain.Ref, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	opts := options.Find().SetProjection(bson.M{"name": 1, "genericName": 1})
	cur, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, fmt.Errorf("find medicine refs: %w", err)
	}
	var refs []domain.Ref
	if err := cur.All(ctx, &refs); err != nil {
		return nil, fmt.Errorf("decode medicine refs: %w", err)
	}
	for _, ref := range refs {
		out[ref.ID] = ref
	}
	return out, nil
}

// InsertMany writes catalog entries, stamping timestamps and clamping
// ratings. The generated ids are written back into medicines. Nothing is
// written when any entry fails validation.
func (r *MedicineRepository) InsertMany(ctx context.Context, medicines []domain.Medicine) error {
	if len(medicines) == 0 {
		return nil
	}
	for i := range medicines {
		if err := medicines[i].Validate(); err != nil {
			return fmt.Errorf("medicine %d: %w", i, err)
		}
	}

	now := r.now()
	docs := make([]interface{}, len(medicines))
	for i := range medicines {
		m := &medicines[i]
		m.Normalize()
		if m.ID.IsZero() {
			m.ID = primitive.NewObjectID()
		}
		m.CreatedAt = now
		m.UpdatedAt = now
		docs[i] = m
	}

	if _, err := r.coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert medicines: %w", err)
	}
	return nil
}

func (r *MedicineRepository) DeleteAll(ctx context.Context) error {
	_, err := r.coll.DeleteMany(ctx, bson.D{})
	return err
}
