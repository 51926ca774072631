package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/smartdoc/smartdoc-api/internal/core/domain"
	"github.com/smartdoc/smartdoc-api/internal/core/ports"
)

// AccessGuard resolves bearer tokens to accounts. Each stage fails closed:
// token verification, account lookup, status check, and for doctors the
// affiliated-hospital subscription check. The subscription is re-checked on
// every request so a lapse revokes access mid-session.
type AccessGuard struct {
	tokens    ports.TokenManager
	accounts  ports.AccountRepository
	doctors   ports.DoctorRepository
	hospitals ports.HospitalRepository
	log       zerolog.Logger
}

func NewAccessGuard(
	tokens ports.TokenManager,
	accounts ports.AccountRepository,
	doctors ports.DoctorRepository,
	hospitals ports.HospitalRepository,
	log zerolog.Logger,
) *AccessGuard {
	return &AccessGuard{
		tokens:    tokens,
		accounts:  accounts,
		doctors:   doctors,
		hospitals: hospitals,
		log:       log,
	}
}

// Authenticate verifies an access token and loads the active account behind
// it. It returns domain.ErrInvalidToken for verification failures, inactive
// or missing accounts, and domain.ErrSubscriptionInactive when a doctor's
// hospital has lapsed.
func (g *AccessGuard) Authenticate(ctx context.Context, token string) (*domain.Account, error) {
	subject, err := g.tokens.Verify(token, ports.TokenAccess)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	account, err := g.accounts.FindByID(ctx, subject)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, err
	}
	if account.Status != domain.StatusActive {
		return nil, domain.ErrInvalidToken
	}

	if account.Role == domain.RoleDoctor {
		doctor, err := g.doctors.FindByAccountID(ctx, account.ID)
		if err != nil {
			if errors.Is(err, domain.ErrDoctorNotFound) {
				return account, nil
			}
			return nil, err
		}
		hospital, err := g.hospitals.FindByID(ctx, doctor.HospitalID)
		if err != nil {
			return nil, err
		}
		if hospital.SubscriptionStatus != domain.SubscriptionActive {
			g.log.Warn().
				Str("account_id", account.ID).
				Str("hospital_id", hospital.ID).
				Msg("doctor access rejected, hospital subscription inactive")
			return nil, domain.ErrSubscriptionInactive
		}
	}

	return account, nil
}
