package repository

import (
	"context"

	"github.com/TheLMNTRIX/Sangath/internal/domain/entity"
	domainRepo "github.com/TheLMNTRIX/Sangath/internal/domain/repository"
	"github.com/TheLMNTRIX/Sangath/internal/infrastructure/docstore"
	"github.com/TheLMNTRIX/Sangath/pkg/idgen"
)

type userRepository struct {
	store     docstore.Store
	allocator *idgen.Allocator
}

func NewUserRepository(store docstore.Store, allocator *idgen.Allocator) domainRepo.UserRepository {
	return &userRepository{store: store, allocator: allocator}
}

func (r *userRepository) Create(ctx context.Context, key string, user *entity.User) error {
	data, err := docstore.Encode(user)
	if err != nil {
		return err
	}
	return r.store.Create(ctx, docstore.CollectionUsers, key, data)
}

func (r *userRepository) CreateWorker(ctx context.Context, user *entity.User) (string, error) {
	return r.allocator.Allocate(ctx, docstore.CollectionUsers, idgen.WorkerIDWidth, func(id string) (map[string]interface{}, error) {
		user.ASHAID = id
		return docstore.Encode(user)
	})
}

func (r *userRepository) FindByKey(ctx context.Context, key string) (*entity.User, error) {
	doc, err := r.store.Get(ctx, docstore.CollectionUsers, key)
	if err != nil {
		return nil, err
	}
	var user entity.User
	if err := docstore.Decode(doc, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByUID(ctx context.Context, uid string) (string, *entity.User, error) {
	docs, err := r.store.Query(ctx, docstore.CollectionUsers, "uid", uid)
	if err != nil {
		return "", nil, err
	}
	if len(docs) == 0 {
		return "", nil, docstore.ErrNotFound
	}
	var user entity.User
	if err := docstore.Decode(&docs[0], &user); err != nil {
		return "", nil, err
	}
	return docs[0].Key, &user, nil
}

func (r *userRepository) Update(ctx context.Context, key string, fields map[string]interface{}) error {
	return r.store.Update(ctx, docstore.CollectionUsers, key, fields)
}

func (r *userRepository) Delete(ctx context.Context, key string) error {
	return r.store.Delete(ctx, docstore.CollectionUsers, key)
}

func (r *userRepository) ListWorkersBySupervisor(ctx context.Context, supervisorPhone string) ([]*entity.User, error) {
	docs, err := r.store.Query(ctx, docstore.CollectionUsers, "supervisor_phone", supervisorPhone)
	if err != nil {
		return nil, err
	}
	return decodeUsers(docs)
}

func (r *userRepository) ListWorkers(ctx context.Context) ([]*entity.User, error) {
	docs, err := r.store.Query(ctx, docstore.CollectionUsers, "role", string(entity.RoleASHA))
	if err != nil {
		return nil, err
	}
	return decodeUsers(docs)
}

func decodeUsers(docs []docstore.Document) ([]*entity.User, error) {
	users := make([]*entity.User, 0, len(docs))
	for i := range docs {
		var user entity.User
		if err := docstore.Decode(&docs[i], &user); err != nil {
			return nil, err
		}
		users = append(users, &user)
	}
	return users, nil
}
