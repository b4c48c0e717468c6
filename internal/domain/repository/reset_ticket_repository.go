package repository

import (
	"context"
	"errors"
	"time"

	"github.com/TheLMNTRIX/Sangath/internal/domain/entity"
)

var ErrTicketNotFound = errors.New("reset ticket not found or expired")

type ResetTicketRepository interface {
	// Put stores the single active ticket for the user, replacing any
	// existing one, expiring after ttl.
	Put(ctx context.Context, userKey, code string, ttl time.Duration) error
	// Get returns the active ticket or ErrTicketNotFound.
	Get(ctx context.Context, userKey string) (*entity.ResetTicket, error)
	// IncrementAttempts bumps the attempt counter and returns the new value.
	IncrementAttempts(ctx context.Context, userKey string) (int, error)
	Delete(ctx context.Context, userKey string) error
}
