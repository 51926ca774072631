package handler

import (
	"github.com/smartdoc/smartdoc-api/internal/core/domain"
	"github.com/smartdoc/smartdoc-api/internal/core/ports"
)

// --- Request types ---

// Patch fields are all pointers so absent JSON keys leave the stored value
// untouched; unknown keys are dropped by decoding.

type hospitalPatchRequest struct {
	Name              *string   `json:"name"`
	Phone             *string   `json:"phone"`
	Address           *string   `json:"address"`
	City              *string   `json:"city"`
	State             *string   `json:"state"`
	Country           *string   `json:"country"`
	PostalCode        *string   `json:"postal_code"`
	Website           *string   `json:"website"`
	Description       *string   `json:"description"`
	Specialties       *[]string `json:"specialties"`
	EmergencyServices *bool     `json:"emergency_services"`
	BedCapacity       *int      `json:"bed_capacity"`
}

type doctorPatchRequest struct {
	FirstName         *string `json:"first_name"`
	LastName          *string `json:"last_name"`
	Phone             *string `json:"phone"`
	Specialization    *string `json:"specialization"`
	SubSpecialization *string `json:"sub_specialization"`
	Bio               *string `json:"bio"`
}

type patientPatchRequest struct {
	FirstName             *string   `json:"first_name"`
	LastName              *string   `json:"last_name"`
	Phone                 *string   `json:"phone"`
	DateOfBirth           *dateOnly `json:"date_of_birth"`
	Gender                *string   `json:"gender" validate:"omitempty,oneof=male female other prefer_not_to_say"`
	Address               *string   `json:"address"`
	City                  *string   `json:"city"`
	State                 *string   `json:"state"`
	Country               *string   `json:"country"`
	PostalCode            *string   `json:"postal_code"`
	EmergencyContactName  *string   `json:"emergency_contact_name"`
	EmergencyContactPhone *string   `json:"emergency_contact_phone"`
	EmergencyContactRel   *string   `json:"emergency_contact_relationship"`
	PreferredLanguage     *string   `json:"preferred_language"`
	InsuranceProvider     *string   `json:"insurance_provider"`
	InsurancePolicyNumber *string   `json:"insurance_policy_number"`
}

type updateProfileRequest struct {
	Email    *string               `json:"email" validate:"omitempty,email"`
	Hospital *hospitalPatchRequest `json:"hospital"`
	Doctor   *doctorPatchRequest   `json:"doctor"`
	Patient  *patientPatchRequest  `json:"patient"`
}

// --- Response types ---

// profileResponse is the merged account + role-profile view. At most one
// profile key is present.
type profileResponse struct {
	User     *domain.Account  `json:"user"`
	Hospital *domain.Hospital `json:"hospital,omitempty"`
	Doctor   *domain.Doctor   `json:"doctor,omitempty"`
	Patient  *domain.Patient  `json:"patient,omitempty"`
}

type profilePaginationResponse struct {
	Total int64 `json:"total"`
	Skip  int   `json:"skip"`
	Limit int   `json:"limit"`
}

type listProfilesResponse struct {
	Data       []profileResponse         `json:"data"`
	Pagination profilePaginationResponse `json:"pagination"`
}

// --- Mapping ---

func toProfileResponse(v *ports.ProfileView) profileResponse {
	return profileResponse{
		User:     v.Account,
		Hospital: v.Hospital,
		Doctor:   v.Doctor,
		Patient:  v.Patient,
	}
}

func toListProfilesResponse(page *ports.ProfilePage) listProfilesResponse {
	items := make([]profileResponse, len(page.Profiles))
	for i := range page.Profiles {
		items[i] = toProfileResponse(&page.Profiles[i])
	}
	return listProfilesResponse{
		Data: items,
		Pagination: profilePaginationResponse{
			Total: page.Total,
			Skip:  page.Skip,
			Limit: page.Limit,
		},
	}
}

func toProfileUpdate(req updateProfileRequest) ports.ProfileUpdate {
	patch := ports.ProfileUpdate{Email: req.Email}
	if req.Hospital != nil {
		hospital := toHospitalUpdate(*req.Hospital)
		patch.Hospital = &hospital
	}
	if req.Doctor != nil {
		doctor := toDoctorUpdate(*req.Doctor)
		patch.Doctor = &doctor
	}
	if req.Patient != nil {
		patient := toPatientUpdate(*req.Patient)
		patch.Patient = &patient
	}
	return patch
}

func toHospitalUpdate(req hospitalPatchRequest) ports.HospitalUpdate {
	return ports.HospitalUpdate{
		Name:              req.Name,
		Phone:             req.Phone,
		Address:           req.Address,
		City:              req.City,
		State:             req.State,
		Country:           req.Country,
		PostalCode:        req.PostalCode,
		Website:           req.Website,
		Description:       req.Description,
		Specialties:       req.Specialties,
		EmergencyServices: req.EmergencyServices,
		BedCapacity:       req.BedCapacity,
	}
}

func toDoctorUpdate(req doctorPatchRequest) ports.DoctorUpdate {
	return ports.DoctorUpdate{
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Phone:             req.Phone,
		Specialization:    req.Specialization,
		SubSpecialization: req.SubSpecialization,
		Bio:               req.Bio,
	}
}

func toPatientUpdate(req patientPatchRequest) ports.PatientUpdate {
	patch := ports.PatientUpdate{
		FirstName:             req.FirstName,
		LastName:              req.LastName,
		Phone:                 req.Phone,
		Address:               req.Address,
		City:                  req.City,
		State:                 req.State,
		Country:               req.Country,
		PostalCode:            req.PostalCode,
		EmergencyContactName:  req.EmergencyContactName,
		EmergencyContactPhone: req.EmergencyContactPhone,
		EmergencyContactRel:   req.EmergencyContactRel,
		PreferredLanguage:     req.PreferredLanguage,
		InsuranceProvider:     req.InsuranceProvider,
		InsurancePolicyNumber: req.InsurancePolicyNumber,
	}
	if req.DateOfBirth != nil {
		patch.DateOfBirth = &req.DateOfBirth.Time
	}
	if req.Gender != nil {
		gender := domain.Gender(*req.Gender)
		patch.Gender = &gender
	}
	return patch
}
