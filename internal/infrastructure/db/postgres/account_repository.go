package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/smartdoc/smartdoc-api/internal/core/domain"
)

const accountColumns = "id, email, password_hash, role, status, created_at, last_login"

// AccountRepository persists base accounts in PostgreSQL.
type AccountRepository struct {
	pool *pgxpool.Pool
}

func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	query := "SELECT " + accountColumns + " FROM accounts WHERE LOWER(email) = LOWER($1)"
	return r.scanAccount(r.pool.QueryRow(ctx, query, email))
}

func (r *AccountRepository) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	query := "SELECT " + accountColumns + " FROM accounts WHERE id = $1"
	return r.scanAccount(r.pool.QueryRow(ctx, query, id))
}

func (r *AccountRepository) List(ctx context.Context, skip, limit int) ([]*domain.Account, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM accounts").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count accounts: %w", err)
	}

	query := "SELECT " + accountColumns + " FROM accounts ORDER BY created_at, id OFFSET $1 LIMIT $2"
	rows, err := r.pool.Query(ctx, query, skip, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		account, err := r.scanAccount(rows)
		if err != nil {
			return nil, 0, err
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list accounts: %w", err)
	}

	return accounts, total, nil
}

func (r *AccountRepository) UpdateLastLogin(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, "UPDATE accounts SET last_login = now() WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	tag, err := r.pool.Exec(ctx, "UPDATE accounts SET password_hash = $2 WHERE id = $1", id, passwordHash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) UpdateEmail(ctx context.Context, id, email string) error {
	tag, err := r.pool.Exec(ctx, "UPDATE accounts SET email = $2 WHERE id = $1", id, email)
	if err != nil {
		if isUniqueViolation(err, "accounts_email_key") {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("update email: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) scanAccount(row pgx.Row) (*domain.Account, error) {
	var account domain.Account
	err := row.Scan(
		&account.ID,
		&account.Email,
		&account.PasswordHash,
		&account.Role,
		&account.Status,
		&account.CreatedAt,
		&account.LastLogin,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan account: %w", err)
	}
	return &account, nil
}
