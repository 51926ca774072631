package domain

import (
	"errors"
	"time"
)

// Role identifies the kind of actor behind an account. Every account carries
// exactly one role, fixed at registration.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleHospital Role = "hospital"
	RoleDoctor   Role = "doctor"
	RolePatient  Role = "patient"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleHospital, RoleDoctor, RolePatient:
		return true
	}
	return false
}

// AccountStatus represents the lifecycle state of an account.
type AccountStatus string

const (
	StatusActive    AccountStatus = "active"
	StatusInactive  AccountStatus = "inactive"
	StatusSuspended AccountStatus = "suspended"
)

var ErrAccountNotFound = errors.New("account not found")
var ErrDuplicateEmail = errors.New("email already registered")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrAccountNotActive = errors.New("account is not active")
var ErrForbidden = errors.New("access forbidden")
var ErrInvalidToken = errors.New("invalid token")
var ErrInvalidResetToken = errors.New("invalid or expired reset token")

// Account is the base identity record shared by all roles.
type Account struct {
	ID           string        `json:"id"`
	Email        string        `json:"email"`
	PasswordHash string        `json:"-"`
	Role         Role          `json:"role"`
	Status       AccountStatus `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
	LastLogin    *time.Time    `json:"last_login,omitempty"`
}
