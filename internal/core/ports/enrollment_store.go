package ports

import (
	"context"

	"github.com/smartdoc/smartdoc-api/internal/core/domain"
)

// EnrollmentStore persists a new account together with its role profile in a
// single transaction. A duplicate email surfaces as domain.ErrDuplicateEmail
// derived from the storage-level unique constraint, so concurrent
// registrations with the same address cannot both commit.
type EnrollmentStore interface {
	// CreateAdmin persists an account with no role profile.
	CreateAdmin(ctx context.Context, account *domain.Account) error
	CreateHospital(ctx context.Context, account *domain.Account, hospital *domain.Hospital) error
	CreateDoctor(ctx context.Context, account *domain.Account, doctor *domain.Doctor) error
	CreatePatient(ctx context.Context, account *domain.Account, patient *domain.Patient) error
}
