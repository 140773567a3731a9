package service

import (
	"context"
	"strings"
	"time"

	"github.com/mediculture/mediculture-backend/internal/users/domain"
)

// UserStore is the persistence the service needs. *repository.UserRepository
// satisfies it.
type UserStore interface {
	GetByFirebaseUID(ctx context.Context, uid string) (*domain.User, error)
	UpsertProfile(ctx context.Context, p domain.ProfileUpdate) (*domain.User, error)
	UpdatePreferences(ctx context.Context, uid string, p domain.PreferencesUpdate) (*domain.Preferences, error)
	UpdateHealthStats(ctx context.Context, uid string, stats domain.HealthStats) (*domain.HealthStats, error)
}

type UserService struct {
	store UserStore
	now   func() time.Time
}

func NewUserService(store UserStore) *UserService {
	return &UserService{
		store: store,
		now:   time.Now,
	}
}

// GetProfile retrieves a user by Firebase UID
func (s *UserService) GetProfile(ctx context.Context, uid string) (*domain.User, error) {
	uid = strings.TrimSpace(uid)
	if uid == "" {
		return nil, domain.ErrFirebaseUIDNeeded
	}
	return s.store.GetByFirebaseUID(ctx, uid)
}

// SaveProfile creates the profile on first write and overwrites the provided
// fields afterwards. A second call never creates a second record.
func (s *UserService) SaveProfile(ctx context.Context, p domain.ProfileUpdate) (*domain.User, error) {
	p.FirebaseUID = strings.TrimSpace(p.FirebaseUID)
	p.Email = strings.TrimSpace(p.Email)
	p.DisplayName = strings.TrimSpace(p.DisplayName)

	if p.FirebaseUID == "" {
		return nil, domain.ErrFirebaseUIDNeeded
	}
	if p.Email == "" {
		return nil, domain.ErrEmailRequired
	}
	if p.DisplayName == "" {
		return nil, domain.ErrDisplayNameNeeded
	}
	if p.MedicalInfo != nil {
		normalizeLists(p.MedicalInfo)
	}

	return s.store.UpsertProfile(ctx, p)
}

// UpdatePreferences writes only the preference fields present in p.
func (s *UserService) UpdatePreferences(ctx context.Context, uid string, p domain.PreferencesUpdate) (*domain.Preferences, error) {
	uid = strings.TrimSpace(uid)
	if uid == "" {
		return nil, domain.ErrFirebaseUIDNeeded
	}
	if p.IsEmpty() {
		return nil, domain.ErrNoPreferences
	}
	return s.store.UpdatePreferences(ctx, uid, p)
}

// UpdateHealthStats replaces the user's health stats. lastUpdated is always
// the server's clock; whatever the caller sent is discarded.
func (s *UserService) UpdateHealthStats(ctx context.Context, uid string, stats domain.HealthStats) (*domain.HealthStats, error) {
	uid = strings.TrimSpace(uid)
	if uid == "" {
		return nil, domain.ErrFirebaseUIDNeeded
	}
	stats.LastUpdated = s.now().UTC()
	return s.store.UpdateHealthStats(ctx, uid, stats)
}

// normalizeLists stores empty lists rather than null so readers can range
// over them without a nil check on the client side.
func normalizeLists(m *domain.MedicalInfo) {
	if m.Allergies == nil {
		m.Allergies = []string{}
	}
	if m.ChronicConditions == nil {
		m.ChronicConditions = []string{}
	}
	if m.CurrentMedications == nil {
		m.CurrentMedications = []string{}
	}
}
