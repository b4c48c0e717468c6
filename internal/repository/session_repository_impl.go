package repository

import (
	"context"

	"github.com/TheLMNTRIX/Sangath/internal/domain/entity"
	domainRepo "github.com/TheLMNTRIX/Sangath/internal/domain/repository"
	"github.com/TheLMNTRIX/Sangath/internal/infrastructure/docstore"
)

type sessionRepository struct {
	store docstore.Store
}

func NewSessionRepository(store docstore.Store) domainRepo.SessionRepository {
	return &sessionRepository{store: store}
}

func (r *sessionRepository) Add(ctx context.Context, session *entity.Session) (string, error) {
	data, err := docstore.Encode(session)
	if err != nil {
		return "", err
	}
	key, err := r.store.Add(ctx, docstore.CollectionSessions, data)
	if err != nil {
		return "", err
	}
	session.ID = key
	return key, nil
}

func (r *sessionRepository) ListByPatient(ctx context.Context, patientID string) ([]*entity.Session, error) {
	docs, err := r.store.Query(ctx, docstore.CollectionSessions, "patient_id", patientID)
	if err != nil {
		return nil, err
	}
	return decodeSessions(docs)
}

func (r *sessionRepository) List(ctx context.Context) ([]*entity.Session, error) {
	docs, err := r.store.List(ctx, docstore.CollectionSessions)
	if err != nil {
		return nil, err
	}
	return decodeSessions(docs)
}

func (r *sessionRepository) DeleteByPatient(ctx context.Context, patientID string) error {
	docs, err := r.store.Query(ctx, docstore.CollectionSessions, "patient_id", patientID)
	if err != nil {
		return err
	}
	for i := range docs {
		if err := r.store.Delete(ctx, docstore.CollectionSessions, docs[i].Key); err != nil {
			return err
		}
	}
	return nil
}

func decodeSessions(docs []docstore.Document) ([]*entity.Session, error) {
	sessions := make([]*entity.Session, 0, len(docs))
	for i := range docs {
		var session entity.Session
		if err := docstore.Decode(&docs[i], &session); err != nil {
			return nil, err
		}
		session.ID = docs[i].Key
		sessions = append(sessions, &session)
	}
	return sessions, nil
}
