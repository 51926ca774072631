package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/smartdoc/smartdoc-api/internal/core/domain"
)

// EnrollmentStore writes a new account and its role profile in one
// transaction, so a profile failure rolls the account back and the pair is
// never partially visible. Duplicate emails surface from the unique index as
// domain.ErrDuplicateEmail, which is what decides concurrent registrations.
type EnrollmentStore struct {
	pool *pgxpool.Pool
}

func NewEnrollmentStore(pool *pgxpool.Pool) *EnrollmentStore {
	return &EnrollmentStore{pool: pool}
}

func (s *EnrollmentStore) CreateAdmin(ctx context.Context, account *domain.Account) error {
	return s.inTx(ctx, func(tx pgx.Tx) error {
		return insertAccount(ctx, tx, account)
	})
}

func (s *EnrollmentStore) CreateHospital(ctx context.Context, account *domain.Account, hospital *domain.Hospital) error {
	return s.inTx(ctx, func(tx pgx.Tx) error {
		if err := insertAccount(ctx, tx, account); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO hospitals (
				id, account_id, name, phone, address, city, state, country,
				postal_code, registration_number, website, description,
				specialties, emergency_services, bed_capacity,
				subscription_status, status, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`,
			hospital.ID, hospital.AccountID, hospital.Name, hospital.Phone,
			hospital.Address, hospital.City, hospital.State, hospital.Country,
			hospital.PostalCode, hospital.RegistrationNumber, hospital.Website,
			hospital.Description, hospital.Specialties, hospital.EmergencyServices,
			hospital.BedCapacity, hospital.SubscriptionStatus, hospital.Status,
			hospital.CreatedAt, hospital.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert hospital profile: %w", err)
		}
		return nil
	})
}

func (s *EnrollmentStore) CreateDoctor(ctx context.Context, account *domain.Account, doctor *domain.Doctor) error {
	return s.inTx(ctx, func(tx pgx.Tx) error {
		if err := insertAccount(ctx, tx, account); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO doctors (
				id, account_id, hospital_id, first_name, last_name, phone,
				gender, specialization, sub_specialization, bio, status,
				created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
			doctor.ID, doctor.AccountID, doctor.HospitalID, doctor.FirstName,
			doctor.LastName, doctor.Phone, nullableString(string(doctor.Gender)),
			doctor.Specialization, doctor.SubSpecialization, doctor.Bio,
			doctor.Status, doctor.CreatedAt, doctor.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert doctor profile: %w", err)
		}
		return nil
	})
}

func (s *EnrollmentStore) CreatePatient(ctx context.Context, account *domain.Account, patient *domain.Patient) error {
	return s.inTx(ctx, func(tx pgx.Tx) error {
		if err := insertAccount(ctx, tx, account); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO patients (
				id, account_id, first_name, last_name, phone, date_of_birth,
				gender, address, city, state, country, postal_code,
				emergency_contact_name, emergency_contact_phone,
				emergency_contact_relationship, blood_group, height_cm,
				weight_kg, preferred_language, insurance_provider,
				insurance_policy_number, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
				$14, $15, $16, $17, $18, $19, $20, $21, $22, $23)`,
			patient.ID, patient.AccountID, patient.FirstName, patient.LastName,
			patient.Phone, patient.DateOfBirth, patient.Gender, patient.Address,
			patient.City, patient.State, patient.Country, patient.PostalCode,
			patient.EmergencyContactName, patient.EmergencyContactPhone,
			patient.EmergencyContactRel, nullableString(string(patient.BloodGroup)),
			patient.HeightCm, patient.WeightKg, patient.PreferredLanguage,
			patient.InsuranceProvider, patient.InsurancePolicyNumber,
			patient.CreatedAt, patient.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert patient profile: %w", err)
		}
		return nil
	})
}

func (s *EnrollmentStore) inTx(ctx context.Context, fn func(pgx.Tx) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin enrollment: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit enrollment: %w", err)
	}
	return nil
}

func insertAccount(ctx context.Context, tx pgx.Tx, account *domain.Account) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO accounts (id, email, password_hash, role, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		account.ID, account.Email, account.PasswordHash, account.Role,
		account.Status, account.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "accounts_email_key") {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// nullableString maps an empty string to SQL NULL for optional enum columns.
func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
