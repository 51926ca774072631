package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/smartdoc/smartdoc-api/internal/core/domain"
	"github.com/smartdoc/smartdoc-api/internal/core/ports"
)

const defaultProfileLimit = 100

// ProfileService merges accounts with their role profiles and applies
// partial updates under self-or-admin authorization.
type ProfileService struct {
	accounts  ports.AccountRepository
	hospitals ports.HospitalRepository
	doctors   ports.DoctorRepository
	patients  ports.PatientRepository
	log       zerolog.Logger
}

func NewProfileService(
	accounts ports.AccountRepository,
	hospitals ports.HospitalRepository,
	doctors ports.DoctorRepository,
	patients ports.PatientRepository,
	log zerolog.Logger,
) *ProfileService {
	return &ProfileService{
		accounts:  accounts,
		hospitals: hospitals,
		doctors:   doctors,
		patients:  patients,
		log:       log,
	}
}

// GetProfile loads the merged view for id. A missing role profile degrades to
// an account-only view rather than an error.
func (s *ProfileService) GetProfile(ctx context.Context, id string, actor ports.Actor) (*ports.ProfileView, error) {
	if actor.Role != domain.RoleAdmin && actor.ID != id {
		return nil, domain.ErrForbidden
	}
	return s.loadView(ctx, id)
}

// ListProfiles returns a page of merged views. Admin only.
func (s *ProfileService) ListProfiles(ctx context.Context, skip, limit int, actor ports.Actor) (*ports.ProfilePage, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > defaultProfileLimit {
		limit = defaultProfileLimit
	}

	accounts, total, err := s.accounts.List(ctx, skip, limit)
	if err != nil {
		return nil, err
	}

	profiles := make([]ports.ProfileView, 0, len(accounts))
	for _, account := range accounts {
		view, err := s.attachProfile(ctx, account)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *view)
	}

	return &ports.ProfilePage{Profiles: profiles, Total: total, Skip: skip, Limit: limit}, nil
}

// UpdateProfile applies the non-nil fields of patch to account id and returns
// the fresh merged view. An email change re-runs the uniqueness check scoped
// to other accounts; a nested patch that does not match the account role is
// ignored.
func (s *ProfileService) UpdateProfile(ctx context.Context, id string, patch ports.ProfileUpdate, actor ports.Actor) (*ports.ProfileView, error) {
	// Authorization before the account load, so a non-owner cannot tell a
	// missing id (404) apart from a foreign one (403).
	if actor.Role != domain.RoleAdmin && actor.ID != id {
		return nil, domain.ErrForbidden
	}
	account, err := s.accounts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Email != nil && *patch.Email != account.Email {
		if err := s.accounts.UpdateEmail(ctx, id, *patch.Email); err != nil {
			return nil, err
		}
	}

	switch account.Role {
	case domain.RoleHospital:
		if patch.Hospital != nil {
			if err := s.hospitals.Update(ctx, id, *patch.Hospital); err != nil && !errors.Is(err, domain.ErrHospitalNotFound) {
				return nil, err
			}
		}
	case domain.RoleDoctor:
		if patch.Doctor != nil {
			if err := s.doctors.Update(ctx, id, *patch.Doctor); err != nil && !errors.Is(err, domain.ErrDoctorNotFound) {
				return nil, err
			}
		}
	case domain.RolePatient:
		if patch.Patient != nil {
			if err := s.patients.Update(ctx, id, *patch.Patient); err != nil && !errors.Is(err, domain.ErrPatientNotFound) {
				return nil, err
			}
		}
	case domain.RoleAdmin:
		// admins carry no role profile; only the email is mutable
	}

	s.log.Info().Str("account_id", id).Str("actor_id", actor.ID).Msg("profile updated")
	return s.loadView(ctx, id)
}

func (s *ProfileService) loadView(ctx context.Context, id string) (*ports.ProfileView, error) {
	account, err := s.accounts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.attachProfile(ctx, account)
}

// attachProfile dispatches on the role enum to load the matching profile.
// Absence of the profile row is tolerated: the view stays account-only.
func (s *ProfileService) attachProfile(ctx context.Context, account *domain.Account) (*ports.ProfileView, error) {
	view := &ports.ProfileView{Account: account}

	switch account.Role {
	case domain.RoleAdmin:
		// no profile table for admins
	case domain.RoleHospital:
		hospital, err := s.hospitals.FindByAccountID(ctx, account.ID)
		if err != nil && !errors.Is(err, domain.ErrHospitalNotFound) {
			return nil, err
		}
		view.Hospital = hospital
	case domain.RoleDoctor:
		doctor, err := s.doctors.FindByAccountID(ctx, account.ID)
		if err != nil && !errors.Is(err, domain.ErrDoctorNotFound) {
			return nil, err
		}
		view.Doctor = doctor
	case domain.RolePatient:
		patient, err := s.patients.FindByAccountID(ctx, account.ID)
		if err != nil && !errors.Is(err, domain.ErrPatientNotFound) {
			return nil, err
		}
		view.Patient = patient
	}

	return view, nil
}
