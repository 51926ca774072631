package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/smartdoc/smartdoc-api/internal/core/domain"
	"github.com/smartdoc/smartdoc-api/internal/core/ports"
)

// HospitalService serves the public hospital directory and applies owner
// updates. Records are addressed by hospital profile id, not account id.
type HospitalService struct {
	hospitals ports.HospitalRepository
	log       zerolog.Logger
}

func NewHospitalService(hospitals ports.HospitalRepository, log zerolog.Logger) *HospitalService {
	return &HospitalService{hospitals: hospitals, log: log}
}

func (s *HospitalService) ListHospitals(ctx context.Context, skip, limit int) ([]domain.Hospital, error) {
	skip, limit = clampPage(skip, limit)
	return s.hospitals.List(ctx, skip, limit)
}

func (s *HospitalService) GetHospital(ctx context.Context, id string) (*domain.Hospital, error) {
	return s.hospitals.FindByID(ctx, id)
}

// UpdateHospital patches the hospital and returns the fresh record. The actor
// must own the hospital or be an admin.
func (s *HospitalService) UpdateHospital(ctx context.Context, id string, patch ports.HospitalUpdate, actor ports.Actor) (*domain.Hospital, error) {
	hospital, err := s.hospitals.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role != domain.RoleAdmin && actor.ID != hospital.AccountID {
		return nil, domain.ErrForbidden
	}

	if err := s.hospitals.Update(ctx, hospital.AccountID, patch); err != nil {
		return nil, err
	}

	s.log.Info().Str("hospital_id", id).Str("actor_id", actor.ID).Msg("hospital updated")
	return s.hospitals.FindByID(ctx, id)
}

// clampPage normalizes skip/limit query values shared by the directory
// listings.
func clampPage(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > defaultProfileLimit {
		limit = defaultProfileLimit
	}
	return skip, limit
}
