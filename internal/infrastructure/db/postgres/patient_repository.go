package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/smartdoc/smartdoc-api/internal/core/domain"
	"github.com/smartdoc/smartdoc-api/internal/core/ports"
)

const patientColumns = `id, account_id, first_name, last_name, phone, date_of_birth,
	gender, address, city, state, country, postal_code, emergency_contact_name,
	emergency_contact_phone, emergency_contact_relationship, blood_group,
	height_cm, weight_kg, preferred_language, insurance_provider,
	insurance_policy_number, created_at, updated_at`

// PatientRepository persists patient profiles in PostgreSQL.
type PatientRepository struct {
	pool *pgxpool.Pool
}

func NewPatientRepository(pool *pgxpool.Pool) *PatientRepository {
	return &PatientRepository{pool: pool}
}

func (r *PatientRepository) FindByAccountID(ctx context.Context, accountID string) (*domain.Patient, error) {
	query := "SELECT " + patientColumns + " FROM patients WHERE account_id = $1"

	var p domain.Patient
	var bloodGroup *string
	err := r.pool.QueryRow(ctx, query, accountID).Scan(
		&p.ID,
		&p.AccountID,
		&p.FirstName,
		&p.LastName,
		&p.Phone,
		&p.DateOfBirth,
		&p.Gender,
		&p.Address,
		&p.City,
		&p.State,
		&p.Country,
		&p.PostalCode,
		&p.EmergencyContactName,
		&p.EmergencyContactPhone,
		&p.EmergencyContactRel,
		&bloodGroup,
		&p.HeightCm,
		&p.WeightKg,
		&p.PreferredLanguage,
		&p.InsuranceProvider,
		&p.InsurancePolicyNumber,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrPatientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan patient: %w", err)
	}
	if bloodGroup != nil {
		p.BloodGroup = domain.BloodGroup(*bloodGroup)
	}
	return &p, nil
}

func (r *PatientRepository) Update(ctx context.Context, accountID string, patch ports.PatientUpdate) error {
	b := newPatchBuilder()
	b.set("first_name", patch.FirstName)
	b.set("last_name", patch.LastName)
	b.set("phone", patch.Phone)
	if patch.DateOfBirth != nil {
		b.add("date_of_birth", *patch.DateOfBirth)
	}
	if patch.Gender != nil {
		b.add("gender", string(*patch.Gender))
	}
	b.set("address", patch.Address)
	b.set("city", patch.City)
	b.set("state", patch.State)
	b.set("country", patch.Country)
	b.set("postal_code", patch.PostalCode)
	b.set("emergency_contact_name", patch.EmergencyContactName)
	b.set("emergency_contact_phone", patch.EmergencyContactPhone)
	b.set("emergency_contact_relationship", patch.EmergencyContactRel)
	b.set("preferred_language", patch.PreferredLanguage)
	b.set("insurance_provider", patch.InsuranceProvider)
	b.set("insurance_policy_number", patch.InsurancePolicyNumber)
	if b.empty() {
		return nil
	}

	tag, err := r.pool.Exec(ctx, b.query("patients", accountID), b.args...)
	if err != nil {
		return fmt.Errorf("update patient: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPatientNotFound
	}
	return nil
}
