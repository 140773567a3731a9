package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mediculture/mediculture-backend/internal/appointments/domain"
	medicines "github.com/mediculture/mediculture-backend/internal/medicines/domain"
	"github.com/mediculture/mediculture-backend/internal/platform/apperr"
	"github.com/mediculture/mediculture-backend/internal/platform/query"
)

type AppointmentStore interface {
	List(ctx context.Context, q query.Query) ([]domain.Appointment, int64, error)
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
	Create(ctx context.Context, a *domain.Appointment) error
	UpdateStatus(ctx context.Context, id, status string) (*domain.Appointment, error)
}

// MedicineLookup resolves catalog names for prescription entries.
type MedicineLookup interface {
	Refs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]medicines.Ref, error)
}

type AppointmentService struct {
	store     AppointmentStore
	medicines MedicineLookup
	maxLimit  int64
}

func NewAppointmentService(store AppointmentStore, lookup MedicineLookup, maxLimit int64) *AppointmentService {
	return &AppointmentService{store: store, medicines: lookup, maxLimit: maxLimit}
}

type ListResult struct {
	Appointments []domain.Appointment `json:"appointments"`
	Pagination   query.Pagination     `json:"pagination"`
}

// List returns a user's appointments, newest first, with prescribed
// medicines expanded from the catalog.
func (s *AppointmentService) List(ctx context.Context, p query.AppointmentParams) (*ListResult, error) {
	q, err := query.Appointments(p, s.maxLimit)
	if err != nil {
		return nil, err
	}

	appts, total, err := s.store.List(ctx, q)
	if err != nil {
		return nil, err
	}
	if appts == nil {
		appts = []domain.Appointment{}
	}

	ptrs := make([]*domain.Appointment, len(appts))
	for i := range appts {
		ptrs[i] = &appts[i]
	}
	if err := s.expand(ctx, ptrs...); err != nil {
		return nil, err
	}

	return &ListResult{
		Appointments: appts,
		Pagination:   q.Page.Pagination(total),
	}, nil
}

func (s *AppointmentService) Get(ctx context.Context, id string) (*domain.Appointment, error) {
	a, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.expand(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Create books an appointment, applying the type and status defaults.
func (s *AppointmentService) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	a.UserID = strings.TrimSpace(a.UserID)
	if a.UserID == "" {
		return nil, apperr.BadRequest("userId is required")
	}
	if a.Type == "" {
		a.Type = domain.TypeConsultation
	}
	if a.Status == "" {
		a.Status = domain.StatusScheduled
	} else if !domain.IsStatus(a.Status) {
		return nil, domain.ErrInvalidStatus
	}
	if a.Symptoms == nil {
		a.Symptoms = []string{}
	}
	if a.Prescription.Medicines == nil {
		a.Prescription.Medicines = []domain.PrescribedMedicine{}
	}

	if err := s.store.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// UpdateStatus moves an appointment to any known status. There is no
// transition table: completed may go back to scheduled.
func (s *AppointmentService) UpdateStatus(ctx context.Context, id, status string) (*domain.Appointment, error) {
	if !domain.IsStatus(status) {
		return nil, domain.ErrInvalidStatus
	}
	return s.store.UpdateStatus(ctx, id, status)
}

// expand attaches catalog name/genericName to every prescribed medicine with
// one lookup for the whole batch. Ids missing from the catalog stay bare.
func (s *AppointmentService) expand(ctx context.Context, appts ...*domain.Appointment) error {
	if s.medicines == nil {
		return nil
	}
	ids := domain.MedicineIDs(appts...)
	if len(ids) == 0 {
		return nil
	}

	refs, err := s.medicines.Refs(ctx, ids)
	if err != nil {
		return err
	}
	if len(refs) < len(ids) {
		zerolog.Ctx(ctx).Debug().
			Int("requested", len(ids)).
			Int("found", len(refs)).
			Msg("prescription references missing from catalog")
	}

	for _, a := range appts {
		for i := range a.Prescription.Medicines {
			pm := &a.Prescription.Medicines[i]
			if pm.MedicineID == nil {
				continue
			}
			if ref, ok := refs[*pm.MedicineID]; ok {
				pm.Medicine = &ref
			}
		}
	}
	return nil
}
