package repository

import (
	"context"

	"github.com/TheLMNTRIX/Sangath/internal/domain/entity"
	domainRepo "github.com/TheLMNTRIX/Sangath/internal/domain/repository"
	"github.com/TheLMNTRIX/Sangath/internal/infrastructure/docstore"
	"github.com/TheLMNTRIX/Sangath/pkg/idgen"
)

type patientRepository struct {
	store     docstore.Store
	allocator *idgen.Allocator
}

func NewPatientRepository(store docstore.Store, allocator *idgen.Allocator) domainRepo.PatientRepository {
	return &patientRepository{store: store, allocator: allocator}
}

func (r *patientRepository) Create(ctx context.Context, patient *entity.Patient) (string, error) {
	return r.allocator.Allocate(ctx, docstore.CollectionPatients, idgen.PatientIDWidth, func(id string) (map[string]interface{}, error) {
		patient.PatientID = id
		return docstore.Encode(patient)
	})
}

func (r *patientRepository) Find(ctx context.Context, patientID string) (*entity.Patient, error) {
	doc, err := r.store.Get(ctx, docstore.CollectionPatients, patientID)
	if err != nil {
		return nil, err
	}
	var patient entity.Patient
	if err := docstore.Decode(doc, &patient); err != nil {
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) Update(ctx context.Context, patientID string, fields map[string]interface{}) error {
	return r.store.Update(ctx, docstore.CollectionPatients, patientID, fields)
}

func (r *patientRepository) Delete(ctx context.Context, patientID string) error {
	return r.store.Delete(ctx, docstore.CollectionPatients, patientID)
}

func (r *patientRepository) ListByAssignedWorker(ctx context.Context, ashaID string) ([]*entity.Patient, error) {
	docs, err := r.store.Query(ctx, docstore.CollectionPatients, "assigned_ashaid", ashaID)
	if err != nil {
		return nil, err
	}
	return decodePatients(docs)
}

func (r *patientRepository) List(ctx context.Context) ([]*entity.Patient, error) {
	docs, err := r.store.List(ctx, docstore.CollectionPatients)
	if err != nil {
		return nil, err
	}
	return decodePatients(docs)
}

func decodePatients(docs []docstore.Document) ([]*entity.Patient, error) {
	patients := make([]*entity.Patient, 0, len(docs))
	for i := range docs {
		var patient entity.Patient
		if err := docstore.Decode(&docs[i], &patient); err != nil {
			return nil, err
		}
		patients = append(patients, &patient)
	}
	return patients, nil
}
