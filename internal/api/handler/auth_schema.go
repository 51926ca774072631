package handler

import (
	"github.com/smartdoc/smartdoc-api/internal/core/domain"
	"github.com/smartdoc/smartdoc-api/internal/core/ports"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// messageResponse is the envelope for operations that return no data, such as
// logout and the password-reset flow.
type messageResponse struct {
	Message string `json:"message"`
}

// --- Request types ---

type credentials struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type registerAdminRequest struct {
	credentials
}

type registerHospitalRequest struct {
	credentials
	Name               string   `json:"name"                validate:"required"`
	Phone              string   `json:"phone"               validate:"required"`
	Address            string   `json:"address"             validate:"required"`
	City               string   `json:"city"                validate:"required"`
	State              string   `json:"state"               validate:"required"`
	Country            string   `json:"country"             validate:"required"`
	PostalCode         string   `json:"postal_code"         validate:"required"`
	RegistrationNumber string   `json:"registration_number" validate:"required"`
	Website            string   `json:"website"`
	Description        string   `json:"description"`
	Specialties        []string `json:"specialties"`
	EmergencyServices  bool     `json:"emergency_services"`
	BedCapacity        *int     `json:"bed_capacity"        validate:"omitempty,gt=0"`
}

type registerDoctorRequest struct {
	credentials
	HospitalID        string `json:"hospital_id"        validate:"required,uuid4"`
	FirstName         string `json:"first_name"         validate:"required"`
	LastName          string `json:"last_name"          validate:"required"`
	Phone             string `json:"phone"              validate:"required"`
	Gender            string `json:"gender"             validate:"omitempty,oneof=male female other prefer_not_to_say"`
	Specialization    string `json:"specialization"     validate:"required"`
	SubSpecialization string `json:"sub_specialization"`
	Bio               string `json:"bio"`
}

type registerPatientRequest struct {
	credentials
	FirstName             string    `json:"first_name"    validate:"required"`
	LastName              string    `json:"last_name"     validate:"required"`
	Phone                 string    `json:"phone"         validate:"required"`
	DateOfBirth           *dateOnly `json:"date_of_birth" validate:"required"`
	Gender                string    `json:"gender"        validate:"required,oneof=male female other prefer_not_to_say"`
	Address               string    `json:"address"`
	City                  string    `json:"city"`
	State                 string    `json:"state"`
	Country               string    `json:"country"`
	PostalCode            string    `json:"postal_code"`
	EmergencyContactName  string    `json:"emergency_contact_name"`
	EmergencyContactPhone string    `json:"emergency_contact_phone"`
	EmergencyContactRel   string    `json:"emergency_contact_relationship"`
	BloodGroup            string    `json:"blood_group"   validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	HeightCm              *float64  `json:"height_cm"     validate:"omitempty,gt=0"`
	WeightKg              *float64  `json:"weight_kg"     validate:"omitempty,gt=0"`
	PreferredLanguage     string    `json:"preferred_language"`
	InsuranceProvider     string    `json:"insurance_provider"`
	InsurancePolicyNumber string    `json:"insurance_policy_number"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	Token       string `json:"token"        validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// --- Response types ---

// registrationResponse carries the created account, the role profile, and the
// initial token pair. Exactly one profile key is present, matching the role;
// admin registrations carry none.
type registrationResponse struct {
	User     *domain.Account  `json:"user"`
	Hospital *domain.Hospital `json:"hospital,omitempty"`
	Doctor   *domain.Doctor   `json:"doctor,omitempty"`
	Patient  *domain.Patient  `json:"patient,omitempty"`
	Tokens   ports.TokenPair  `json:"tokens"`
}

func toRegistrationResponse(r *ports.RegistrationResult) registrationResponse {
	return registrationResponse{
		User:     r.Account,
		Hospital: r.Hospital,
		Doctor:   r.Doctor,
		Patient:  r.Patient,
		Tokens:   r.Tokens,
	}
}

// --- Request → Service input ---

func toHospitalInput(req registerHospitalRequest) ports.HospitalInput {
	return ports.HospitalInput{
		Name:               req.Name,
		Phone:              req.Phone,
		Address:            req.Address,
		City:               req.City,
		State:              req.State,
		Country:            req.Country,
		PostalCode:         req.PostalCode,
		RegistrationNumber: req.RegistrationNumber,
		Website:            req.Website,
		Description:        req.Description,
		Specialties:        req.Specialties,
		EmergencyServices:  req.EmergencyServices,
		BedCapacity:        req.BedCapacity,
	}
}

func toDoctorInput(req registerDoctorRequest) ports.DoctorInput {
	return ports.DoctorInput{
		HospitalID:        req.HospitalID,
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Phone:             req.Phone,
		Gender:            domain.Gender(req.Gender),
		Specialization:    req.Specialization,
		SubSpecialization: req.SubSpecialization,
		Bio:               req.Bio,
	}
}

func toPatientInput(req registerPatientRequest) ports.PatientInput {
	return ports.PatientInput{
		FirstName:             req.FirstName,
		LastName:              req.LastName,
		Phone:                 req.Phone,
		DateOfBirth:           req.DateOfBirth.Time,
		Gender:                domain.Gender(req.Gender),
		Address:               req.Address,
		City:                  req.City,
		State:                 req.State,
		Country:               req.Country,
		PostalCode:            req.PostalCode,
		EmergencyContactName:  req.EmergencyContactName,
		EmergencyContactPhone: req.EmergencyContactPhone,
		EmergencyContactRel:   req.EmergencyContactRel,
		BloodGroup:            domain.BloodGroup(req.BloodGroup),
		HeightCm:              req.HeightCm,
		WeightKg:              req.WeightKg,
		PreferredLanguage:     req.PreferredLanguage,
		InsuranceProvider:     req.InsuranceProvider,
		InsurancePolicyNumber: req.InsurancePolicyNumber,
	}
}
