package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/smartdoc/smartdoc-api/internal/core/domain"
	"github.com/smartdoc/smartdoc-api/internal/core/ports"
)

const hospitalColumns = `id, account_id, name, phone, address, city, state, country,
	postal_code, registration_number, website, description, specialties,
	emergency_services, bed_capacity, subscription_status, status, created_at, updated_at`

// HospitalRepository persists hospital profiles in PostgreSQL.
type HospitalRepository struct {
	pool *pgxpool.Pool
}

func NewHospitalRepository(pool *pgxpool.Pool) *HospitalRepository {
	return &HospitalRepository{pool: pool}
}

func (r *HospitalRepository) FindByID(ctx context.Context, id string) (*domain.Hospital, error) {
	query := "SELECT " + hospitalColumns + " FROM hospitals WHERE id = $1"
	return r.scanHospital(r.pool.QueryRow(ctx, query, id))
}

func (r *HospitalRepository) FindByAccountID(ctx context.Context, accountID string) (*domain.Hospital, error) {
	query := "SELECT " + hospitalColumns + " FROM hospitals WHERE account_id = $1"
	return r.scanHospital(r.pool.QueryRow(ctx, query, accountID))
}

func (r *HospitalRepository) ListForRegistration(ctx context.Context) ([]domain.HospitalRef, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name FROM hospitals
		WHERE status = 'active' AND subscription_status = 'active'
		ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list hospitals: %w", err)
	}
	defer rows.Close()

	var refs []domain.HospitalRef
	for rows.Next() {
		var ref domain.HospitalRef
		if err := rows.Scan(&ref.ID, &ref.Name); err != nil {
			return nil, fmt.Errorf("scan hospital ref: %w", err)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list hospitals: %w", err)
	}
	return refs, nil
}

func (r *HospitalRepository) List(ctx context.Context, skip, limit int) ([]domain.Hospital, error) {
	query := "SELECT " + hospitalColumns + " FROM hospitals ORDER BY name LIMIT $1 OFFSET $2"
	rows, err := r.pool.Query(ctx, query, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("list hospitals: %w", err)
	}
	defer rows.Close()

	var hospitals []domain.Hospital
	for rows.Next() {
		h, err := r.scanHospital(rows)
		if err != nil {
			return nil, err
		}
		hospitals = append(hospitals, *h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list hospitals: %w", err)
	}
	return hospitals, nil
}

func (r *HospitalRepository) Update(ctx context.Context, accountID string, patch ports.HospitalUpdate) error {
	b := newPatchBuilder()
	b.set("name", patch.Name)
	b.set("phone", patch.Phone)
	b.set("address", patch.Address)
	b.set("city", patch.City)
	b.set("state", patch.State)
	b.set("country", patch.Country)
	b.set("postal_code", patch.PostalCode)
	b.set("website", patch.Website)
	b.set("description", patch.Description)
	if patch.Specialties != nil {
		b.add("specialties", *patch.Specialties)
	}
	if patch.EmergencyServices != nil {
		b.add("emergency_services", *patch.EmergencyServices)
	}
	if patch.BedCapacity != nil {
		b.add("bed_capacity", *patch.BedCapacity)
	}
	if b.empty() {
		return nil
	}

	tag, err := r.pool.Exec(ctx, b.query("hospitals", accountID), b.args...)
	if err != nil {
		return fmt.Errorf("update hospital: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrHospitalNotFound
	}
	return nil
}

func (r *HospitalRepository) scanHospital(row pgx.Row) (*domain.Hospital, error) {
	var h domain.Hospital
	err := row.Scan(
		&h.ID,
		&h.AccountID,
		&h.Name,
		&h.Phone,
		&h.Address,
		&h.City,
		&h.State,
		&h.Country,
		&h.PostalCode,
		&h.RegistrationNumber,
		&h.Website,
		&h.Description,
		&h.Specialties,
		&h.EmergencyServices,
		&h.BedCapacity,
		&h.SubscriptionStatus,
		&h.Status,
		&h.CreatedAt,
		&h.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrHospitalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan hospital: %w", err)
	}
	return &h, nil
}

// patchBuilder assembles a dynamic UPDATE ... SET clause from the non-nil
// fields of a typed patch.
type patchBuilder struct {
	cols []string
	args []any
}

func newPatchBuilder() *patchBuilder {
	return &patchBuilder{}
}

func (b *patchBuilder) set(col string, val *string) {
	if val != nil {
		b.add(col, *val)
	}
}

func (b *patchBuilder) add(col string, val any) {
	b.args = append(b.args, val)
	b.cols = append(b.cols, col+" = $"+strconv.Itoa(len(b.args)))
}

func (b *patchBuilder) empty() bool {
	return len(b.cols) == 0
}

// query finalizes the statement; the WHERE argument is appended last.
func (b *patchBuilder) query(table, accountID string) string {
	b.args = append(b.args, accountID)
	return "UPDATE " + table + " SET " + strings.Join(b.cols, ", ") +
		", updated_at = now() WHERE account_id = $" + strconv.Itoa(len(b.args))
}
