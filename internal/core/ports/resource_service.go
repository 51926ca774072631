package ports

import (
	"context"

	"github.com/smartdoc/smartdoc-api/internal/core/domain"
)

// HospitalService exposes the public hospital directory and owner updates.
// Reads are unauthenticated; updates require the owning hospital account or
// an admin.
type HospitalService interface {
	ListHospitals(ctx context.Context, skip, limit int) ([]domain.Hospital, error)
	GetHospital(ctx context.Context, id string) (*domain.Hospital, error)
	// UpdateHospital patches the hospital addressed by profile id and returns
	// the fresh record.
	UpdateHospital(ctx context.Context, id string, patch HospitalUpdate, actor Actor) (*domain.Hospital, error)
}

// DoctorService exposes the public doctor directory and self-or-admin updates.
type DoctorService interface {
	ListDoctors(ctx context.Context, filter DoctorFilter) ([]domain.Doctor, error)
	GetDoctor(ctx context.Context, id string) (*domain.Doctor, error)
	UpdateDoctor(ctx context.Context, id string, patch DoctorUpdate, actor Actor) (*domain.Doctor, error)
}

// PatientService exposes the signed-in patient's own record. Patients address
// themselves, never other patients, so no id parameter exists.
type PatientService interface {
	GetOwnPatient(ctx context.Context, actor Actor) (*domain.Patient, error)
	UpdateOwnPatient(ctx context.Context, patch PatientUpdate, actor Actor) (*domain.Patient, error)
}
