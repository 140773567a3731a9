package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mediculture/mediculture-backend/internal/db"
	"github.com/mediculture/mediculture-backend/internal/platform/apperr"
	"github.com/mediculture/mediculture-backend/internal/users/domain"
)

type UserRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewUserRepository(database *mongo.Database) *UserRepository {
	return &UserRepository{
		coll: database.Collection(db.Users),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// GetByFirebaseUID retrieves a user by their Firebase UID
func (r *UserRepository) GetByFirebaseUID(ctx context.Context, uid string) (*domain.User, error) {
	var user domain.User
	err := r.coll.FindOne(ctx, bson.M{"firebaseUid": uid}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpsertProfile writes the profile keyed by firebaseUid, creating it when
// absent. Provided top-level fields overwrite stored ones; defaults only
// apply on insert.
func (r *UserRepository) UpsertProfile(ctx context.Context, p domain.ProfileUpdate) (*domain.User, error) {
	now := r.now()
	update := bson.M{
		"$set":         profileSet(p, now),
		"$setOnInsert": profileDefaults(p, now),
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var user domain.User
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"firebaseUid": p.FirebaseUID}, update, opts).Decode(&user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			if strings.Contains(err.Error(), "email") {
				return nil, domain.ErrEmailTaken
			}
			return nil, apperr.Conflict("profile was modified concurrently, retry the request")
		}
		return nil, err
	}
	return &user, nil
}

func profileSet(p domain.ProfileUpdate, now time.Time) bson.M {
	set := bson.M{
		"email":       p.Email,
		"displayName": p.DisplayName,
		"updatedAt":   now,
	}
	if p.PhoneNumber != nil {
		set["phoneNumber"] = *p.PhoneNumber
	}
	if p.DateOfBirth != nil {
		set["dateOfBirth"] = *p.DateOfBirth
	}
	if p.Gender != nil {
		set["gender"] = *p.Gender
	}
	if p.Height != nil {
		set["height"] = *p.Height
	}
	if p.Weight != nil {
		set["weight"] = *p.Weight
	}
	if p.ProfilePicture != nil {
		set["profilePicture"] = *p.ProfilePicture
	}
	if p.Address != nil {
		set["address"] = p.Address
	}
	if p.MedicalInfo != nil {
		set["medicalInfo"] = p.MedicalInfo
	}
	if p.MembershipType != nil {
		set["membershipType"] = *p.MembershipType
	}
	return set
}

// profileDefaults must never name a path that profileSet writes.
func profileDefaults(p domain.ProfileUpdate, now time.Time) bson.M {
	defaults := bson.M{
		"preferences": domain.DefaultPreferences(),
		"healthStats": domain.HealthStats{LastUpdated: now},
		"isActive":    true,
		"createdAt":   now,
	}
	if p.MembershipType == nil {
		defaults["membershipType"] = domain.MembershipBasic
	}
	return defaults
}

// UpdatePreferences sets only the given preference sub-fields.
func (r *UserRepository) UpdatePreferences(ctx context.Context, uid string, p domain.PreferencesUpdate) (*domain.Preferences, error) {
	set := bson.M{"updatedAt": r.now()}
	if p.Notifications != nil {
		set["preferences.notifications"] = *p.Notifications
	}
	if p.Language != nil {
		set["preferences.language"] = *p.Language
	}
	if p.Theme != nil {
		set["preferences.theme"] = *p.Theme
	}

	user, err := r.findOneAndSet(ctx, uid, set)
	if err != nil {
		return nil, err
	}
	return &user.Preferences, nil
}

// UpdateHealthStats replaces the healthStats sub-document and nothing else.
func (r *UserRepository) UpdateHealthStats(ctx context.Context, uid string, stats domain.HealthStats) (*domain.HealthStats, error) {
	user, err := r.findOneAndSet(ctx, uid, bson.M{
		"healthStats": stats,
		"updatedAt":   r.now(),
	})
	if err != nil {
		return nil, err
	}
	return &user.HealthStats, nil
}

func (r *UserRepository) findOneAndSet(ctx context.Context, uid string, set bson.M) (*domain.User, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user domain.User
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"firebaseUid": uid}, bson.M{"$set": set}, opts).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) DeleteAll(ctx context.Context) error {
	_, err := r.coll.DeleteMany(ctx, bson.D{})
	return err
}
