package ports

import (
	"context"
	"time"

	"github.com/smartdoc/smartdoc-api/internal/core/domain"
)

// HospitalUpdate carries the mutable hospital fields; nil means "leave as is".
type HospitalUpdate struct {
	Name              *string
	Phone             *string
	Address           *string
	City              *string
	State             *string
	Country           *string
	PostalCode        *string
	Website           *string
	Description       *string
	Specialties       *[]string
	EmergencyServices *bool
	BedCapacity       *int
}

// DoctorUpdate carries the mutable doctor fields; nil means "leave as is".
type DoctorUpdate struct {
	FirstName         *string
	LastName          *string
	Phone             *string
	Specialization    *string
	SubSpecialization *string
	Bio               *string
}

// PatientUpdate carries the mutable patient fields; nil means "leave as is".
type PatientUpdate struct {
	FirstName             *string
	LastName              *string
	Phone                 *string
	DateOfBirth           *time.Time
	Gender                *domain.Gender
	Address               *string
	City                  *string
	State                 *string
	Country               *string
	PostalCode            *string
	EmergencyContactName  *string
	EmergencyContactPhone *string
	EmergencyContactRel   *string
	PreferredLanguage     *string
	InsuranceProvider     *string
	InsurancePolicyNumber *string
}

// DoctorFilter narrows and pages the doctor directory listing. Empty string
// filters match everything.
type DoctorFilter struct {
	HospitalID     string
	Specialization string
	Skip           int
	Limit          int
}

// HospitalRepository defines persistence operations for hospital profiles.
type HospitalRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Hospital, error)
	FindByAccountID(ctx context.Context, accountID string) (*domain.Hospital, error)
	// ListForRegistration returns {id, name} for hospitals whose status and
	// subscription are both active.
	ListForRegistration(ctx context.Context) ([]domain.HospitalRef, error)
	List(ctx context.Context, skip, limit int) ([]domain.Hospital, error)
	Update(ctx context.Context, accountID string, patch HospitalUpdate) error
}

// DoctorRepository defines persistence operations for doctor profiles.
type DoctorRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Doctor, error)
	FindByAccountID(ctx context.Context, accountID string) (*domain.Doctor, error)
	List(ctx context.Context, filter DoctorFilter) ([]domain.Doctor, error)
	Update(ctx context.Context, accountID string, patch DoctorUpdate) error
}

// PatientRepository defines persistence operations for patient profiles.
type PatientRepository interface {
	FindByAccountID(ctx context.Context, accountID string) (*domain.Patient, error)
	Update(ctx context.Context, accountID string, patch PatientUpdate) error
}
