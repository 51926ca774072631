package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/smartdoc/smartdoc-api/internal/core/domain"
	"github.com/smartdoc/smartdoc-api/internal/core/ports"
)

// DoctorService serves the public doctor directory and applies self-or-admin
// updates. Records are addressed by doctor profile id, not account id.
type DoctorService struct {
	doctors ports.DoctorRepository
	log     zerolog.Logger
}

func NewDoctorService(doctors ports.DoctorRepository, log zerolog.Logger) *DoctorService {
	return &DoctorService{doctors: doctors, log: log}
}

func (s *DoctorService) ListDoctors(ctx context.Context, filter ports.DoctorFilter) ([]domain.Doctor, error) {
	filter.Skip, filter.Limit = clampPage(filter.Skip, filter.Limit)
	return s.doctors.List(ctx, filter)
}

func (s *DoctorService) GetDoctor(ctx context.Context, id string) (*domain.Doctor, error) {
	return s.doctors.FindByID(ctx, id)
}

// UpdateDoctor patches the doctor and returns the fresh record. The actor
// must be the doctor's own account or an admin.
func (s *DoctorService) UpdateDoctor(ctx context.Context, id string, patch ports.DoctorUpdate, actor ports.Actor) (*domain.Doctor, error) {
	doctor, err := s.doctors.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role != domain.RoleAdmin && actor.ID != doctor.AccountID {
		return nil, domain.ErrForbidden
	}

	if err := s.doctors.Update(ctx, doctor.AccountID, patch); err != nil {
		return nil, err
	}

	s.log.Info().Str("doctor_id", id).Str("actor_id", actor.ID).Msg("doctor updated")
	return s.doctors.FindByID(ctx, id)
}
