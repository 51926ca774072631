package domain

import (
	"errors"
	"time"
)

// SubscriptionStatus gates access for a hospital and all of its affiliated
// doctors.
type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionExpired   SubscriptionStatus = "expired"
	SubscriptionSuspended SubscriptionStatus = "suspended"
)

var ErrHospitalNotFound = errors.New("hospital not found")
var ErrSubscriptionInactive = errors.New("hospital subscription is not active")

// Hospital is the role-specific profile for a hospital account, linked 1:1 to
// an Account via AccountID.
type Hospital struct {
	ID                 string             `json:"id"`
	AccountID          string             `json:"account_id"`
	Name               string             `json:"name"`
	Phone              string             `json:"phone"`
	Address            string             `json:"address"`
	City               string             `json:"city"`
	State              string             `json:"state"`
	Country            string             `json:"country"`
	PostalCode         string             `json:"postal_code"`
	RegistrationNumber string             `json:"registration_number"`
	Website            string             `json:"website,omitempty"`
	Description        string             `json:"description,omitempty"`
	Specialties        []string           `json:"specialties,omitempty"`
	EmergencyServices  bool               `json:"emergency_services"`
	BedCapacity        *int               `json:"bed_capacity,omitempty"`
	SubscriptionStatus SubscriptionStatus `json:"subscription_status"`
	Status             AccountStatus      `json:"status"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// HospitalRef is the lightweight view exposed on the public registration
// picklist.
type HospitalRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
