// Package seed loads the sample catalog, user, appointments and posts used
// for local development and demos.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	appointments "github.com/mediculture/mediculture-backend/internal/appointments/domain"
	"github.com/mediculture/mediculture-backend/internal/cache"
	community "github.com/mediculture/mediculture-backend/internal/community/domain"
	medicines "github.com/mediculture/mediculture-backend/internal/medicines/domain"
	medicinessvc "github.com/mediculture/mediculture-backend/internal/medicines/service"
	users "github.com/mediculture/mediculture-backend/internal/users/domain"
)

type UserStore interface {
	UpsertProfile(ctx context.Context, p users.ProfileUpdate) (*users.User, error)
	UpdateHealthStats(ctx context.Context, uid string, stats users.HealthStats) (*users.HealthStats, error)
	DeleteAll(ctx context.Context) error
}

type MedicineStore interface {
	InsertMany(ctx context.Context, medicines []medicines.Medicine) error
	DeleteAll(ctx context.Context) error
}

type AppointmentStore interface {
	Create(ctx context.Context, a *appointments.Appointment) error
	DeleteAll(ctx context.Context) error
}

type PostStore interface {
	Create(ctx context.Context, p *community.Post) error
	DeleteAll(ctx context.Context) error
}

type Seeder struct {
	Users        UserStore
	Medicines    MedicineStore
	Appointments AppointmentStore
	Posts        PostStore
	Cache        cache.Strings
	Logger       zerolog.Logger
	Now          func() time.Time
}

type Result struct {
	Users        int
	Medicines    int
	Appointments int
	Posts        int
}

// Run inserts the sample data. With drop set every collection is emptied
// first; without it the user is upserted and everything else is appended.
func (s *Seeder) Run(ctx context.Context, drop bool) (*Result, error) {
	now := time.Now().UTC()
	if s.Now != nil {
		now = s.Now()
	}

	if drop {
		for name, del := range map[string]func(context.Context) error{
			"users":          s.Users.DeleteAll,
			"medicines":      s.Medicines.DeleteAll,
			"appointments":   s.Appointments.DeleteAll,
			"communityposts": s.Posts.DeleteAll,
		} {
			if err := del(ctx); err != nil {
				return nil, fmt.Errorf("clear %s: %w", name, err)
			}
		}
		s.Logger.Info().Msg("cleared existing data")
	}

	if _, err := s.Users.UpsertProfile(ctx, sampleProfile()); err != nil {
		return nil, fmt.Errorf("seed user: %w", err)
	}
	if _, err := s.Users.UpdateHealthStats(ctx, SampleUserUID, sampleHealthStats(now)); err != nil {
		return nil, fmt.Errorf("seed health stats: %w", err)
	}

	meds := sampleMedicines()
	if err := s.Medicines.InsertMany(ctx, meds); err != nil {
		return nil, fmt.Errorf("seed medicines: %w", err)
	}

	appts := sampleAppointments(meds[0])
	for i := range appts {
		if err := s.Appointments.Create(ctx, &appts[i]); err != nil {
			return nil, fmt.Errorf("seed appointment: %w", err)
		}
	}

	posts := samplePosts()
	for i := range posts {
		p := &posts[i]
		p.IsApproved = true
		p.Images = []string{}
		p.Likes = []community.Like{}
		p.Comments = []community.Comment{}
		if err := s.Posts.Create(ctx, p); err != nil {
			return nil, fmt.Errorf("seed post: %w", err)
		}
	}

	if s.Cache != nil {
		if err := s.Cache.Invalidate(ctx, medicinessvc.CategoriesCacheKey); err != nil {
			s.Logger.Warn().Err(err).Msg("could not invalidate categories cache")
		}
	}

	res := &Result{Users: 1, Medicines: len(meds), Appointments: len(appts), Posts: len(posts)}
	s.Logger.Info().
		Int("users", res.Users).
		Int("medicines", res.Medicines).
		Int("appointments", res.Appointments).
		Int("posts", res.Posts).
		Msg("sample data inserted")
	return res, nil
}
