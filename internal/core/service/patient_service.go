package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/smartdoc/smartdoc-api/internal/core/domain"
	"github.com/smartdoc/smartdoc-api/internal/core/ports"
)

// PatientService serves the signed-in patient's own record. Unlike the
// directory services there is no lookup by id: patients only ever address
// themselves.
type PatientService struct {
	patients ports.PatientRepository
	log      zerolog.Logger
}

func NewPatientService(patients ports.PatientRepository, log zerolog.Logger) *PatientService {
	return &PatientService{patients: patients, log: log}
}

// GetOwnPatient returns the actor's patient record. A missing row is an
// error here, not the account-only degradation the profile view applies.
func (s *PatientService) GetOwnPatient(ctx context.Context, actor ports.Actor) (*domain.Patient, error) {
	return s.patients.FindByAccountID(ctx, actor.ID)
}

func (s *PatientService) UpdateOwnPatient(ctx context.Context, patch ports.PatientUpdate, actor ports.Actor) (*domain.Patient, error) {
	if _, err := s.patients.FindByAccountID(ctx, actor.ID); err != nil {
		return nil, err
	}
	if err := s.patients.Update(ctx, actor.ID, patch); err != nil {
		return nil, err
	}

	s.log.Info().Str("account_id", actor.ID).Msg("patient record updated")
	return s.patients.FindByAccountID(ctx, actor.ID)
}
