package repository

import (
	"context"

	"github.com/TheLMNTRIX/Sangath/internal/domain/entity"
)

type PatientRepository interface {
	// Create allocates a fresh patient id, stamps it on the patient and
	// stores the document under it.
	Create(ctx context.Context, patient *entity.Patient) (string, error)
	// Find returns the patient at key or docstore.ErrNotFound.
	Find(ctx context.Context, patientID string) (*entity.Patient, error)
	// Update merges fields into the patient document.
	Update(ctx context.Context, patientID string, fields map[string]interface{}) error
	Delete(ctx context.Context, patientID string) error
	// ListByAssignedWorker returns patients assigned to the worker key.
	ListByAssignedWorker(ctx context.Context, ashaID string) ([]*entity.Patient, error)
	List(ctx context.Context) ([]*entity.Patient, error)
}
