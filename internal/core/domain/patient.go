package domain

import (
	"errors"
	"time"
)

// BloodGroup values accepted on patient profiles.
type BloodGroup string

const (
	BloodAPositive  BloodGroup = "A+"
	BloodANegative  BloodGroup = "A-"
	BloodBPositive  BloodGroup = "B+"
	BloodBNegative  BloodGroup = "B-"
	BloodABPositive BloodGroup = "AB+"
	BloodABNegative BloodGroup = "AB-"
	BloodOPositive  BloodGroup = "O+"
	BloodONegative  BloodGroup = "O-"
)

var ErrPatientNotFound = errors.New("patient profile not found")

// Patient is the role-specific profile for a patient account.
type Patient struct {
	ID                    string     `json:"id"`
	AccountID             string     `json:"account_id"`
	FirstName             string     `json:"first_name"`
	LastName              string     `json:"last_name"`
	Phone                 string     `json:"phone"`
	DateOfBirth           time.Time  `json:"date_of_birth"`
	Gender                Gender     `json:"gender"`
	Address               string     `json:"address,omitempty"`
	City                  string     `json:"city,omitempty"`
	State                 string     `json:"state,omitempty"`
	Country               string     `json:"country,omitempty"`
	PostalCode            string     `json:"postal_code,omitempty"`
	EmergencyContactName  string     `json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone string     `json:"emergency_contact_phone,omitempty"`
	EmergencyContactRel   string     `json:"emergency_contact_relationship,omitempty"`
	BloodGroup            BloodGroup `json:"blood_group,omitempty"`
	HeightCm              *float64   `json:"height_cm,omitempty"`
	WeightKg              *float64   `json:"weight_kg,omitempty"`
	PreferredLanguage     string     `json:"preferred_language,omitempty"`
	InsuranceProvider     string     `json:"insurance_provider,omitempty"`
	InsurancePolicyNumber string     `json:"insurance_policy_number,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}
