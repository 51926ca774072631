package ports

import (
	"context"
	"time"
)

// ResetTicketStore holds single-use password-reset tickets in an ephemeral
// store with expiry.
type ResetTicketStore interface {
	Save(ctx context.Context, ticket, accountID string, ttl time.Duration) error
	// Consume atomically retrieves and deletes the ticket, returning the
	// account id it was minted for. A missing or expired ticket fails with
	// domain.ErrInvalidResetToken; a second Consume of the same ticket always
	// fails.
	Consume(ctx context.Context, ticket string) (string, error)
}
