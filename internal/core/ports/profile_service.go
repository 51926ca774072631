package ports

import (
	"context"

	"github.com/smartdoc/smartdoc-api/internal/core/domain"
)

// Actor identifies the authenticated account performing an operation.
type Actor struct {
	ID   string
	Role domain.Role
}

// ProfileView merges an account with its role profile. At most one profile
// pointer is set; all may be nil-profile for accounts without one (admins,
// or the degraded account-only case).
type ProfileView struct {
	Account  *domain.Account
	Hospital *domain.Hospital
	Doctor   *domain.Doctor
	Patient  *domain.Patient
}

// ProfileUpdate is the partial patch accepted by UpdateProfile. Only non-nil
// fields are applied; the nested patch must match the target account's role
// or it is ignored.
type ProfileUpdate struct {
	Email    *string
	Hospital *HospitalUpdate
	Doctor   *DoctorUpdate
	Patient  *PatientUpdate
}

// ProfilePage is a page of merged profile views plus the total account count.
type ProfilePage struct {
	Profiles []ProfileView
	Total    int64
	Skip     int
	Limit    int
}

// ProfileService defines profile aggregation and update use cases.
type ProfileService interface {
	// GetProfile loads the merged view for id. actor must be the owner or an
	// admin.
	GetProfile(ctx context.Context, id string, actor Actor) (*ProfileView, error)
	// ListProfiles is admin-only and paginated by skip/limit.
	ListProfiles(ctx context.Context, skip, limit int, actor Actor) (*ProfilePage, error)
	// UpdateProfile applies patch to account id and returns the fresh merged
	// view. actor must be the owner or an admin.
	UpdateProfile(ctx context.Context, id string, patch ProfileUpdate, actor Actor) (*ProfileView, error)
}
