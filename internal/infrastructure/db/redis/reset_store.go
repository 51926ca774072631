package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/smartdoc/smartdoc-api/internal/core/domain"
)

// ResetTicketStore holds password-reset tickets backed by Redis.
// Key format: reset_token:<ticket> -> account id, expiring with the ticket.
type ResetTicketStore struct {
	client *redis.Client
}

// NewResetTicketStore creates a ResetTicketStore wrapping the given client.
func NewResetTicketStore(client *redis.Client) *ResetTicketStore {
	return &ResetTicketStore{client: client}
}

// Save stores the ticket with the given time-to-live.
func (s *ResetTicketStore) Save(ctx context.Context, ticket, accountID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(ticket), accountID, ttl).Err(); err != nil {
		return fmt.Errorf("save reset ticket: %w", err)
	}
	return nil
}

// Consume retrieves and deletes the ticket in a single GETDEL, so exactly one
// of any set of concurrent consumers wins; the rest see the ticket as absent.
func (s *ResetTicketStore) Consume(ctx context.Context, ticket string) (string, error) {
	accountID, err := s.client.GetDel(ctx, s.key(ticket)).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrInvalidResetToken
	}
	if err != nil {
		return "", fmt.Errorf("consume reset ticket: %w", err)
	}
	return accountID, nil
}

func (s *ResetTicketStore) key(ticket string) string {
	return "reset_token:" + ticket
}
