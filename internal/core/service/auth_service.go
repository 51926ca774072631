package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/smartdoc/smartdoc-api/internal/core/domain"
	"github.com/smartdoc/smartdoc-api/internal/core/ports"
)

const resetTicketTTL = time.Hour

// AuthService implements registration, login, and the password-reset flow.
type AuthService struct {
	accounts  ports.AccountRepository
	hospitals ports.HospitalRepository
	doctors   ports.DoctorRepository
	enroll    ports.EnrollmentStore
	tokens    ports.TokenManager
	tickets   ports.ResetTicketStore
	notifier  ports.ResetNotifier
	log       zerolog.Logger
}

func NewAuthService(
	accounts ports.AccountRepository,
	hospitals ports.HospitalRepository,
	doctors ports.DoctorRepository,
	enroll ports.EnrollmentStore,
	tokens ports.TokenManager,
	tickets ports.ResetTicketStore,
	notifier ports.ResetNotifier,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		accounts:  accounts,
		hospitals: hospitals,
		doctors:   doctors,
		enroll:    enroll,
		tokens:    tokens,
		tickets:   tickets,
		notifier:  notifier,
		log:       log,
	}
}

func (s *AuthService) RegisterAdmin(ctx context.Context, email, password string) (*ports.RegistrationResult, error) {
	account, err := s.newAccount(ctx, email, password, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}
	if err := s.enroll.CreateAdmin(ctx, account); err != nil {
		return nil, s.enrollmentError(err, account)
	}

	s.log.Info().Str("account_id", account.ID).Str("role", string(account.Role)).Msg("account registered")
	return s.registrationResult(account, nil, nil, nil)
}

func (s *AuthService) RegisterHospital(ctx context.Context, email, password string, profile ports.HospitalInput) (*ports.RegistrationResult, error) {
	account, err := s.newAccount(ctx, email, password, domain.RoleHospital)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	hospital := &domain.Hospital{
		ID:                 uuid.NewString(),
		AccountID:          account.ID,
		Name:               profile.Name,
		Phone:              profile.Phone,
		Address:            profile.Address,
		City:               profile.City,
		State:              profile.State,
		Country:            profile.Country,
		PostalCode:         profile.PostalCode,
		RegistrationNumber: profile.RegistrationNumber,
		Website:            profile.Website,
		Description:        profile.Description,
		Specialties:        profile.Specialties,
		EmergencyServices:  profile.EmergencyServices,
		BedCapacity:        profile.BedCapacity,
		SubscriptionStatus: domain.SubscriptionActive,
		Status:             domain.StatusActive,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.enroll.CreateHospital(ctx, account, hospital); err != nil {
		return nil, s.enrollmentError(err, account)
	}

	s.log.Info().Str("account_id", account.ID).Str("role", string(account.Role)).Msg("account registered")
	return s.registrationResult(account, hospital, nil, nil)
}

func (s *AuthService) RegisterDoctor(ctx context.Context, email, password string, profile ports.DoctorInput) (*ports.RegistrationResult, error) {
	// The affiliation check runs before any write so a rejected hospital
	// leaves neither an account nor a profile behind.
	hospital, err := s.hospitals.FindByID(ctx, profile.HospitalID)
	if err != nil {
		return nil, err
	}
	if hospital.SubscriptionStatus != domain.SubscriptionActive {
		return nil, domain.ErrSubscriptionInactive
	}

	account, err := s.newAccount(ctx, email, password, domain.RoleDoctor)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	doctor := &domain.Doctor{
		ID:                uuid.NewString(),
		AccountID:         account.ID,
		HospitalID:        hospital.ID,
		FirstName:         profile.FirstName,
		LastName:          profile.LastName,
		Phone:             profile.Phone,
		Gender:            profile.Gender,
		Specialization:    profile.Specialization,
		SubSpecialization: profile.SubSpecialization,
		Bio:               profile.Bio,
		Status:            domain.StatusActive,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.enroll.CreateDoctor(ctx, account, doctor); err != nil {
		return nil, s.enrollmentError(err, account)
	}

	s.log.Info().
		Str("account_id", account.ID).
		Str("hospital_id", hospital.ID).
		Str("role", string(account.Role)).
		Msg("account registered")
	return s.registrationResult(account, nil, doctor, nil)
}

func (s *AuthService) RegisterPatient(ctx context.Context, email, password string, profile ports.PatientInput) (*ports.RegistrationResult, error) {
	account, err := s.newAccount(ctx, email, password, domain.RolePatient)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	patient := &domain.Patient{
		ID:                    uuid.NewString(),
		AccountID:             account.ID,
		FirstName:             profile.FirstName,
		LastName:              profile.LastName,
		Phone:                 profile.Phone,
		DateOfBirth:           profile.DateOfBirth,
		Gender:                profile.Gender,
		Address:               profile.Address,
		City:                  profile.City,
		State:                 profile.State,
		Country:               profile.Country,
		PostalCode:            profile.PostalCode,
		EmergencyContactName:  profile.EmergencyContactName,
		EmergencyContactPhone: profile.EmergencyContactPhone,
		EmergencyContactRel:   profile.EmergencyContactRel,
		BloodGroup:            profile.BloodGroup,
		HeightCm:              profile.HeightCm,
		WeightKg:              profile.WeightKg,
		PreferredLanguage:     profile.PreferredLanguage,
		InsuranceProvider:     profile.InsuranceProvider,
		InsurancePolicyNumber: profile.InsurancePolicyNumber,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	if err := s.enroll.CreatePatient(ctx, account, patient); err != nil {
		return nil, s.enrollmentError(err, account)
	}

	s.log.Info().Str("account_id", account.ID).Str("role", string(account.Role)).Msg("account registered")
	return s.registrationResult(account, nil, nil, patient)
}

// Login resolves the account by email and verifies the password. Missing
// accounts and bad passwords fail identically so callers cannot probe which
// addresses are registered.
func (s *AuthService) Login(ctx context.Context, email, password string) (ports.TokenPair, error) {
	if email == "" || password == "" {
		return ports.TokenPair{}, domain.ErrInvalidCredentials
	}

	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return ports.TokenPair{}, domain.ErrInvalidCredentials
		}
		return ports.TokenPair{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return ports.TokenPair{}, domain.ErrInvalidCredentials
	}

	if account.Role == domain.RoleDoctor {
		if err := s.checkDoctorSubscription(ctx, account.ID); err != nil {
			return ports.TokenPair{}, err
		}
	}
	if account.Status != domain.StatusActive {
		return ports.TokenPair{}, domain.ErrAccountNotActive
	}

	if err := s.accounts.UpdateLastLogin(ctx, account.ID); err != nil {
		s.log.Error().Err(err).Str("account_id", account.ID).Msg("failed to update last login")
		return ports.TokenPair{}, err
	}

	pair, err := s.tokens.Pair(account.ID)
	if err != nil {
		return ports.TokenPair{}, err
	}

	s.log.Info().Str("account_id", account.ID).Str("role", string(account.Role)).Msg("login succeeded")
	return pair, nil
}

// ForgotPassword mints a single-use reset ticket when the email is known and
// queues the notification mail. The caller always gets the same answer.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil
		}
		return err
	}

	ticket, err := newResetTicket()
	if err != nil {
		return err
	}
	if err := s.tickets.Save(ctx, ticket, account.ID, resetTicketTTL); err != nil {
		return err
	}

	s.notifier.EnqueuePasswordReset(account.Email, ticket)
	s.log.Info().Str("account_id", account.ID).Msg("password reset ticket issued")
	return nil
}

// ResetPassword consumes the ticket and stores the re-hashed password. The
// ticket is single-use: a concurrent duplicate submission loses the atomic
// consume and fails.
func (s *AuthService) ResetPassword(ctx context.Context, ticket, newPassword string) error {
	if ticket == "" || newPassword == "" {
		return domain.ErrInvalidResetToken
	}

	accountID, err := s.tickets.Consume(ctx, ticket)
	if err != nil {
		return err
	}

	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.accounts.UpdatePassword(ctx, account.ID, string(hash)); err != nil {
		return err
	}

	s.log.Info().Str("account_id", account.ID).Msg("password reset")
	return nil
}

// newAccount builds the unsaved base account with a hashed secret. The email
// pre-check is advisory; the storage unique constraint is what decides races.
func (s *AuthService) newAccount(ctx context.Context, email, password string, role domain.Role) (*domain.Account, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if _, err := s.accounts.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &domain.Account{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Status:       domain.StatusActive,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

func (s *AuthService) registrationResult(account *domain.Account, h *domain.Hospital, d *domain.Doctor, p *domain.Patient) (*ports.RegistrationResult, error) {
	pair, err := s.tokens.Pair(account.ID)
	if err != nil {
		return nil, err
	}
	return &ports.RegistrationResult{Account: account, Hospital: h, Doctor: d, Patient: p, Tokens: pair}, nil
}

// enrollmentError logs the account-without-profile condition distinctly. The
// store rolls the whole transaction back, so no orphan is left behind, but
// the failure must not be mistaken for an ordinary write error.
func (s *AuthService) enrollmentError(err error, account *domain.Account) error {
	if errors.Is(err, domain.ErrDuplicateEmail) {
		return domain.ErrDuplicateEmail
	}
	s.log.Error().Err(err).
		Str("email", account.Email).
		Str("role", string(account.Role)).
		Msg("enrollment failed, account and profile rolled back")
	return err
}

func (s *AuthService) checkDoctorSubscription(ctx context.Context, accountID string) error {
	doctor, err := s.doctors.FindByAccountID(ctx, accountID)
	if err != nil {
		if errors.Is(err, domain.ErrDoctorNotFound) {
			// Account-only doctors (no profile row) are tolerated here; the
			// aggregator degrades the same way.
			return nil
		}
		return err
	}
	hospital, err := s.hospitals.FindByID(ctx, doctor.HospitalID)
	if err != nil {
		return err
	}
	if hospital.SubscriptionStatus != domain.SubscriptionActive {
		return domain.ErrSubscriptionInactive
	}
	return nil
}

// newResetTicket returns a 256-bit random opaque token, URL-safe encoded.
func newResetTicket() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
