package service

import (
	"context"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mediculture/mediculture-backend/internal/cache"
	"github.com/mediculture/mediculture-backend/internal/medicines/domain"
	"github.com/mediculture/mediculture-backend/internal/platform/query"
)

// CategoriesCacheKey holds the distinct active categories.
const CategoriesCacheKey = "medicines:categories"

// MedicineStore is the persistence the service needs.
// *repository.MedicineRepository satisfies it.
type MedicineStore interface {
	List(ctx context.Context, q query.Query) ([]domain.Medicine, int64, error)
	GetActiveByID(ctx context.Context, id string) (*domain.Medicine, error)
	Categories(ctx context.Context) ([]string, error)
	Refs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]domain.Ref, error)
}

type MedicineService struct {
	store    MedicineStore
	cache    cache.Strings
	maxLimit int64
}

// NewMedicineService builds the catalog service. A nil cache disables
// caching; maxLimit <= 0 leaves page sizes uncapped.
func NewMedicineService(store MedicineStore, c cache.Strings, maxLimit int64) *MedicineService {
	if c == nil {
		c = cache.Noop{}
	}
	return &MedicineService{store: store, cache: c, maxLimit: maxLimit}
}

// ListResult is the catalog page plus its pagination block.
type ListResult struct {
	Medicines  []domain.Medicine `json:"medicines"`
	Pagination query.Pagination  `json:"pagination"`
}

func (s *MedicineService) List(ctx context.Context, p query.MedicineParams) (*ListResult, error) {
	q := query.Medicines(p, s.maxLimit)

	medicines, total, err := s.store.List(ctx, q)
	if err != nil {
		return nil, err
	}
	if medicines == nil {
		medicines = []domain.Medicine{}
	}
	return &ListResult{
		Medicines:  medicines,
		Pagination: q.Page.Pagination(total),
	}, nil
}

func (s *MedicineService) Get(ctx context.Context, id string) (*domain.Medicine, error) {
	return s.store.GetActiveByID(ctx, id)
}

// Categories serves from the cache when it can and refills it on a miss.
func (s *MedicineService) Categories(ctx context.Context) ([]string, error) {
	if cached, ok := s.cache.GetStrings(ctx, CategoriesCacheKey); ok {
		return cached, nil
	}

	categories, err := s.store.Categories(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetStrings(ctx, CategoriesCacheKey, categories)
	zerolog.Ctx(ctx).Debug().Int("count", len(categories)).Msg("categories cache refilled")
	return categories, nil
}

// Refs exposes the batched name lookup used to expand prescriptions.
func (s *MedicineService) Refs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]domain.Ref, error) {
	return s.store.Refs(ctx, ids)
}
