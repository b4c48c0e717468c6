package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/TheLMNTRIX/Sangath/internal/domain/entity"
	domainRepo "github.com/TheLMNTRIX/Sangath/internal/domain/repository"

	"github.com/redis/go-redis/v9"
)

type resetTicketRepository struct {
	client *redis.Client
}

func NewResetTicketRepository(client *redis.Client) domainRepo.ResetTicketRepository {
	return &resetTicketRepository{client: client}
}

func ticketKey(userKey string) string {
	return fmt.Sprintf("reset_ticket:%s", userKey)
}

func (r *resetTicketRepository) Put(ctx context.Context, userKey, code string, ttl time.Duration) error {
	key := ticketKey(userKey)

	// Replace any active ticket wholesale so a stale attempt counter
	// never survives a re-request.
	pipe := r.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, "code", code, "attempts", 0)
	pipe.Expire(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store reset ticket: %w", err)
	}
	return nil
}

func (r *resetTicketRepository) Get(ctx context.Context, userKey string) (*entity.ResetTicket, error) {
	fields, err := r.client.HGetAll(ctx, ticketKey(userKey)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load reset ticket: %w", err)
	}
	if len(fields) == 0 {
		return nil, domainRepo.ErrTicketNotFound
	}

	attempts, _ := strconv.Atoi(fields["attempts"])
	return &entity.ResetTicket{Code: fields["code"], Attempts: attempts}, nil
}

func (r *resetTicketRepository) IncrementAttempts(ctx context.Context, userKey string) (int, error) {
	n, err := r.client.HIncrBy(ctx, ticketKey(userKey), "attempts", 1).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment reset attempts: %w", err)
	}
	return int(n), nil
}

func (r *resetTicketRepository) Delete(ctx context.Context, userKey string) error {
	if err := r.client.Del(ctx, ticketKey(userKey)).Err(); err != nil {
		return fmt.Errorf("failed to delete reset ticket: %w", err)
	}
	return nil
}
