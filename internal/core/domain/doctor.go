package domain

import (
	"errors"
	"time"
)

// Gender values accepted on doctor and patient profiles.
type Gender string

const (
	GenderMale        Gender = "male"
	GenderFemale      Gender = "female"
	GenderOther       Gender = "other"
	GenderUndisclosed Gender = "prefer_not_to_say"
)

var ErrDoctorNotFound = errors.New("doctor profile not found")

// Doctor is the role-specific profile for a doctor account. HospitalID must
// reference a hospital whose subscription is active; the affiliation is
// re-checked on every authenticated request.
type Doctor struct {
	ID                string        `json:"id"`
	AccountID         string        `json:"account_id"`
	HospitalID        string        `json:"hospital_id"`
	FirstName         string        `json:"first_name"`
	LastName          string        `json:"last_name"`
	Phone             string        `json:"phone"`
	Gender            Gender        `json:"gender,omitempty"`
	Specialization    string        `json:"specialization"`
	SubSpecialization string        `json:"sub_specialization,omitempty"`
	Bio               string        `json:"bio,omitempty"`
	Status            AccountStatus `json:"status"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}
