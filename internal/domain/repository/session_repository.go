package repository

import (
	"context"

	"github.com/TheLMNTRIX/Sangath/internal/domain/entity"
)

type SessionRepository interface {
	// Add stores a session under a generated key and returns the key.
	Add(ctx context.Context, session *entity.Session) (string, error)
	ListByPatient(ctx context.Context, patientID string) ([]*entity.Session, error)
	List(ctx context.Context) ([]*entity.Session, error)
	// DeleteByPatient removes every session belonging to the patient.
	DeleteByPatient(ctx context.Context, patientID string) error
}
