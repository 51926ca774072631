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

const doctorColumns = `id, account_id, hospital_id, first_name, last_name, phone,
	gender, specialization, sub_specialization, bio, status, created_at, updated_at`

// DoctorRepository persists doctor profiles in PostgreSQL.
type DoctorRepository struct {
	pool *pgxpool.Pool
}

func NewDoctorRepository(pool *pgxpool.Pool) *DoctorRepository {
	return &DoctorRepository{pool: pool}
}

func (r *DoctorRepository) FindByID(ctx context.Context, id string) (*domain.Doctor, error) {
	query := "SELECT " + doctorColumns + " FROM doctors WHERE id = $1"
	return r.scanDoctor(r.pool.QueryRow(ctx, query, id))
}

func (r *DoctorRepository) FindByAccountID(ctx context.Context, accountID string) (*domain.Doctor, error) {
	query := "SELECT " + doctorColumns + " FROM doctors WHERE account_id = $1"
	return r.scanDoctor(r.pool.QueryRow(ctx, query, accountID))
}

func (r *DoctorRepository) List(ctx context.Context, filter ports.DoctorFilter) ([]domain.Doctor, error) {
	query := "SELECT " + doctorColumns + " FROM doctors"
	var conds []string
	var args []any
	if filter.HospitalID != "" {
		args = append(args, filter.HospitalID)
		conds = append(conds, "hospital_id = $"+strconv.Itoa(len(args)))
	}
	if filter.Specialization != "" {
		args = append(args, filter.Specialization)
		conds = append(conds, "specialization ILIKE $"+strconv.Itoa(len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	args = append(args, filter.Limit, filter.Skip)
	query += " ORDER BY last_name, first_name LIMIT $" + strconv.Itoa(len(args)-1) +
		" OFFSET $" + strconv.Itoa(len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}
	defer rows.Close()

	var doctors []domain.Doctor
	for rows.Next() {
		d, err := r.scanDoctor(rows)
		if err != nil {
			return nil, err
		}
		doctors = append(doctors, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}
	return doctors, nil
}

func (r *DoctorRepository) scanDoctor(row pgx.Row) (*domain.Doctor, error) {
	var d domain.Doctor
	var gender *string
	err := row.Scan(
		&d.ID,
		&d.AccountID,
		&d.HospitalID,
		&d.FirstName,
		&d.LastName,
		&d.Phone,
		&gender,
		&d.Specialization,
		&d.SubSpecialization,
		&d.Bio,
		&d.Status,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrDoctorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan doctor: %w", err)
	}
	if gender != nil {
		d.Gender = domain.Gender(*gender)
	}
	return &d, nil
}

func (r *DoctorRepository) Update(ctx context.Context, accountID string, patch ports.DoctorUpdate) error {
	b := newPatchBuilder()
	b.set("first_name", patch.FirstName)
	b.set("last_name", patch.LastName)
	b.set("phone", patch.Phone)
	b.set("specialization", patch.Specialization)
	b.set("sub_specialization", patch.SubSpecialization)
	b.set("bio", patch.Bio)
	if b.empty() {
		return nil
	}

	tag, err := r.pool.Exec(ctx, b.query("doctors", accountID), b.args...)
	if err != nil {
		return fmt.Errorf("update doctor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDoctorNotFound
	}
	return nil
}
