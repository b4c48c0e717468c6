package repository

import (
	"context"

	"github.com/TheLMNTRIX/Sangath/internal/domain/entity"
)

type UserRepository interface {
	// Create stores a user at a fixed key (supervisor registration).
	// Fails with docstore.ErrAlreadyExists if the key is taken.
	Create(ctx context.Context, key string, user *entity.User) error
	// CreateWorker allocates a fresh worker id, stamps it on the user and
	// stores the document under it.
	CreateWorker(ctx context.Context, user *entity.User) (string, error)
	// FindByKey returns the user document at key or docstore.ErrNotFound.
	FindByKey(ctx context.Context, key string) (*entity.User, error)
	// FindByUID returns the first user document whose uid field matches,
	// together with its key, or docstore.ErrNotFound.
	FindByUID(ctx context.Context, uid string) (string, *entity.User, error)
	// Update merges fields into the user document at key.
	Update(ctx context.Context, key string, fields map[string]interface{}) error
	Delete(ctx context.Context, key string) error
	// ListWorkersBySupervisor returns workers created by the supervisor
	// with the given phone.
	ListWorkersBySupervisor(ctx context.Context, supervisorPhone string) ([]*entity.User, error)
	// ListWorkers returns every worker document.
	ListWorkers(ctx context.Context) ([]*entity.User, error)
}
