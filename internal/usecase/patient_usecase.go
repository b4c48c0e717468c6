package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/TheLMNTRIX/Sangath/internal/converter"
	"github.com/TheLMNTRIX/Sangath/internal/delivery/dto"
	"github.com/TheLMNTRIX/Sangath/internal/domain/entity"
	"github.com/TheLMNTRIX/Sangath/internal/domain/repository"
	"github.com/TheLMNTRIX/Sangath/internal/infrastructure/docstore"

	"github.com/sirupsen/logrus"
)

var (
	ErrPatientNotFound             = errors.New("patient not found")
	ErrHighRiskDescriptionRequired = errors.New("description is required when high risk is true")
)

type PatientUsecase interface {
	Create(ctx context.Context, principal *entity.Principal, req *dto.CreatePatientRequest) (*dto.CreatePatientResponse, error)
	Get(ctx context.Context, principal *entity.Principal, patientID string) (*dto.PatientResponse, error)
	List(ctx context.Context) ([]*dto.PatientResponse, error)
	MyPatients(ctx context.Context, principal *entity.Principal) ([]*dto.PatientResponse, error)
	Update(ctx context.Context, principal *entity.Principal, patientID string, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error)
	AssignWorker(ctx context.Context, patientID string, req *dto.AssignWorkerRequest) error
	Delete(ctx context.Context, patientID string) error
}

type patientUsecase struct {
	log         *logrus.Logger
	patientRepo repository.PatientRepository
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
}

func NewPatientUsecase(
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
) PatientUsecase {
	return &patientUsecase{
		log:         log,
		patientRepo: patientRepo,
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
	}
}

func (u *patientUsecase) Create(ctx context.Context, principal *entity.Principal, req *dto.CreatePatientRequest) (*dto.CreatePatientResponse, error) {
	if req.HighRisk && (req.HighRiskDescription == nil || *req.HighRiskDescription == "") {
		return nil, ErrHighRiskDescriptionRequired
	}

	if req.AssignedASHAID != nil {
		if err := u.verifyWorker(ctx, *req.AssignedASHAID); err != nil {
			return nil, err
		}
	}

	patient := &entity.Patient{
		Name:                req.Name,
		Age:                 req.Age,
		Gender:              req.Gender,
		District:            req.District,
		BlockNo:             req.BlockNo,
		WardNo:              req.WardNo,
		RCHID:               req.RCHID,
		PregnancyState:      req.PregnancyState,
		Contact:             req.Contact,
		Address:             req.Address,
		HighRisk:            req.HighRisk,
		HighRiskDescription: req.HighRiskDescription,
		AssignedASHAID:      req.AssignedASHAID,
		CreatedBy:           principal.DocID,
		CreatedAt:           time.Now().UTC(),
	}

	patientID, err := u.patientRepo.Create(ctx, patient)
	if err != nil {
		u.log.Warnf("Failed to create patient: %+v", err)
		return nil, err
	}

	u.log.WithField("patient_id", patientID).Info("Patient created")
	return &dto.CreatePatientResponse{PatientID: patientID}, nil
}

func (u *patientUsecase) Get(ctx context.Context, principal *entity.Principal, patientID string) (*dto.PatientResponse, error) {
	patient, err := u.find(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if !canReadPatient(principal, patient) {
		return nil, ErrForbidden
	}
	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) List(ctx context.Context) ([]*dto.PatientResponse, error) {
	patients, err := u.patientRepo.List(ctx)
	if err != nil {
		u.log.Warnf("Failed to list patients: %+v", err)
		return nil, err
	}
	return converter.PatientsToResponses(patients), nil
}

func (u *patientUsecase) MyPatients(ctx context.Context, principal *entity.Principal) ([]*dto.PatientResponse, error) {
	patients, err := u.patientRepo.ListByAssignedWorker(ctx, principal.DocID)
	if err != nil {
		u.log.Warnf("Failed to list assigned patients: %+v", err)
		return nil, err
	}
	return converter.PatientsToResponses(patients), nil
}

func (u *patientUsecase) Update(ctx context.Context, principal *entity.Principal, patientID string, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	patient, err := u.find(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if !canWritePatient(principal, patient) {
		return nil, ErrForbidden
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Age != nil {
		fields["age"] = *req.Age
	}
	if req.Gender != nil {
		fields["gender"] = *req.Gender
	}
	if req.District != nil {
		fields["district"] = *req.District
	}
	if req.BlockNo != nil {
		fields["block_no"] = *req.BlockNo
	}
	if req.WardNo != nil {
		fields["ward_no"] = *req.WardNo
	}
	if req.RCHID != nil {
		fields["rch_id"] = *req.RCHID
	}
	if req.PregnancyState != nil {
		fields["pregnancy_state"] = *req.PregnancyState
	}
	if req.Contact != nil {
		fields["contact"] = *req.Contact
	}
	if req.Address != nil {
		fields["address"] = *req.Address
	}
	// An empty-string description is treated as absent, same as on
	// create: it never overwrites a stored justification.
	if req.HighRiskDescription != nil && *req.HighRiskDescription != "" {
		fields["high_risk_description"] = *req.HighRiskDescription
	}

	if req.HighRisk != nil {
		fields["high_risk"] = *req.HighRisk
		if *req.HighRisk {
			// The justification must exist somewhere: either in this
			// request or already on the record.
			requestHas := req.HighRiskDescription != nil && *req.HighRiskDescription != ""
			storedHas := patient.HighRiskDescription != nil && *patient.HighRiskDescription != ""
			if !requestHas && !storedHas {
				return nil, ErrHighRiskDescriptionRequired
			}
		} else {
			// Dropping the flag clears the justification no matter what
			// the caller supplied.
			fields["high_risk_description"] = nil
		}
	}

	fields["last_updated"] = time.Now().UTC().Format(time.RFC3339Nano)

	if err := u.patientRepo.Update(ctx, patientID, fields); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, ErrPatientNotFound
		}
		u.log.Warnf("Failed to update patient %s: %+v", patientID, err)
		return nil, err
	}

	updated, err := u.find(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return converter.PatientToResponse(updated), nil
}

func (u *patientUsecase) AssignWorker(ctx context.Context, patientID string, req *dto.AssignWorkerRequest) error {
	if err := u.verifyWorker(ctx, req.ASHAID); err != nil {
		return err
	}
	if _, err := u.find(ctx, patientID); err != nil {
		return err
	}

	err := u.patientRepo.Update(ctx, patientID, map[string]interface{}{
		"assigned_ashaid": req.ASHAID,
		"last_updated":    time.Now().UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		u.log.Warnf("Failed to assign worker to patient %s: %+v", patientID, err)
		return err
	}

	u.log.WithFields(logrus.Fields{"patient_id": patientID, "asha_id": req.ASHAID}).Info("Worker assigned to patient")
	return nil
}

func (u *patientUsecase) Delete(ctx context.Context, patientID string) error {
	if _, err := u.find(ctx, patientID); err != nil {
		return err
	}

	if err := u.sessionRepo.DeleteByPatient(ctx, patientID); err != nil {
		u.log.Warnf("Failed to delete sessions of patient %s: %+v", patientID, err)
		return err
	}
	if err := u.patientRepo.Delete(ctx, patientID); err != nil {
		u.log.Warnf("Failed to delete patient %s: %+v", patientID, err)
		return err
	}

	u.log.WithField("patient_id", patientID).Info("Patient deleted")
	return nil
}

func (u *patientUsecase) find(ctx context.Context, patientID string) (*entity.Patient, error) {
	patient, err := u.patientRepo.Find(ctx, patientID)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, ErrPatientNotFound
	}
	if err != nil {
		u.log.Warnf("Failed to load patient %s: %+v", patientID, err)
		return nil, err
	}
	return patient, nil
}

func (u *patientUsecase) verifyWorker(ctx context.Context, ashaID string) error {
	worker, err := u.userRepo.FindByKey(ctx, ashaID)
	if errors.Is(err, docstore.ErrNotFound) {
		return ErrWorkerNotFound
	}
	if err != nil {
		u.log.Warnf("Failed to verify worker %s: %+v", ashaID, err)
		return err
	}
	if worker.Role != entity.RoleASHA {
		return ErrWorkerNotFound
	}
	return nil
}

func canReadPatient(principal *entity.Principal, patient *entity.Patient) bool {
	if principal.Role.OneOf(entity.RoleSupervisor, entity.RoleAdmin) {
		return true
	}
	return patient.AssignedASHAID != nil && *patient.AssignedASHAID == principal.DocID
}

func canWritePatient(principal *entity.Principal, patient *entity.Patient) bool {
	if principal.Role == entity.RoleSupervisor {
		return true
	}
	return patient.AssignedASHAID != nil && *patient.AssignedASHAID == principal.DocID
}
