package ports

import (
	"context"
	"time"

	"github.com/smartdoc/smartdoc-api/internal/core/domain"
)

// HospitalInput holds the profile fields of a hospital registration.
type HospitalInput struct {
	Name               string
	Phone              string
	Address            string
	City               string
	State              string
	Country            string
	PostalCode         string
	RegistrationNumber string
	Website            string
	Description        string
	Specialties        []string
	EmergencyServices  bool
	BedCapacity        *int
}

// DoctorInput holds the profile fields of a doctor registration.
type DoctorInput struct {
	HospitalID        string
	FirstName         string
	LastName          string
	Phone             string
	Gender            domain.Gender
	Specialization    string
	SubSpecialization string
	Bio               string
}

// PatientInput holds the profile fields of a patient registration.
type PatientInput struct {
	FirstName             string
	LastName              string
	Phone                 string
	DateOfBirth           time.Time
	Gender                domain.Gender
	Address               string
	City                  string
	State                 string
	Country               string
	PostalCode            string
	EmergencyContactName  string
	EmergencyContactPhone string
	EmergencyContactRel   string
	BloodGroup            domain.BloodGroup
	HeightCm              *float64
	WeightKg              *float64
	PreferredLanguage     string
	InsuranceProvider     string
	InsurancePolicyNumber string
}

// RegistrationResult is returned by all register operations. Exactly one of
// the profile pointers is set, matching the account role; admin registrations
// set none.
type RegistrationResult struct {
	Account  *domain.Account
	Hospital *domain.Hospital
	Doctor   *domain.Doctor
	Patient  *domain.Patient
	Tokens   TokenPair
}

// AuthService defines registration, login, and password-reset use cases.
type AuthService interface {
	RegisterAdmin(ctx context.Context, email, password string) (*RegistrationResult, error)
	RegisterHospital(ctx context.Context, email, password string, profile HospitalInput) (*RegistrationResult, error)
	RegisterDoctor(ctx context.Context, email, password string, profile DoctorInput) (*RegistrationResult, error)
	RegisterPatient(ctx context.Context, email, password string, profile PatientInput) (*RegistrationResult, error)
	Login(ctx context.Context, email, password string) (TokenPair, error)
	// ForgotPassword never reveals whether the email exists; a nil error only
	// means the request was accepted.
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, ticket, newPassword string) error
}

// AccessGuard resolves a bearer token to an active account, re-checking the
// affiliated hospital subscription for doctors on every call.
type AccessGuard interface {
	Authenticate(ctx context.Context, token string) (*domain.Account, error)
}

// ResetNotifier delivers password-reset mail off the request path.
type ResetNotifier interface {
	EnqueuePasswordReset(email, ticket string)
}

// Mailer sends transactional mail. Implementations must be safe for
// concurrent use.
type Mailer interface {
	SendPasswordReset(ctx context.Context, email, ticket string) error
}
