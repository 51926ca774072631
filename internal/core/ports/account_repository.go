package ports

import (
	"context"

	"github.com/smartdoc/smartdoc-api/internal/core/domain"
)

// AccountRepository defines persistence operations for base accounts.
type AccountRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	// List returns a page of accounts ordered by creation time and the total count.
	List(ctx context.Context, skip, limit int) ([]*domain.Account, int64, error)
	UpdateLastLogin(ctx context.Context, id string) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	// UpdateEmail fails with domain.ErrDuplicateEmail when another account
	// already owns the new address.
	UpdateEmail(ctx context.Context, id, email string) error
}
