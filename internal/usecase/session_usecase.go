package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/TheLMNTRIX/Sangath/internal/converter"
	"github.com/TheLMNTRIX/Sangath/internal/delivery/dto"
	"github.com/TheLMNTRIX/Sangath/internal/domain/entity"
	"github.com/TheLMNTRIX/Sangath/internal/domain/repository"
	"github.com/TheLMNTRIX/Sangath/internal/infrastructure/blob"
	"github.com/TheLMNTRIX/Sangath/internal/infrastructure/docstore"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Recording carries an uploaded audio stream into session creation.
type Recording struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

type SessionUsecase interface {
	Create(ctx context.Context, principal *entity.Principal, patientID string, req *dto.CreateSessionRequest, recording *Recording) (*dto.SessionResponse, error)
	ListByPatient(ctx context.Context, principal *entity.Principal, patientID string) ([]*dto.SessionResponse, error)
	List(ctx context.Context) ([]*dto.SessionResponse, error)
}

type sessionUsecase struct {
	log         *logrus.Logger
	sessionRepo repository.SessionRepository
	patientRepo repository.PatientRepository
	blobStore   blob.Store
}

func NewSessionUsecase(
	log *logrus.Logger,
	sessionRepo repository.SessionRepository,
	patientRepo repository.PatientRepository,
	blobStore blob.Store,
) SessionUsecase {
	return &sessionUsecase{
		log:         log,
		sessionRepo: sessionRepo,
		patientRepo: patientRepo,
		blobStore:   blobStore,
	}
}

func (u *sessionUsecase) Create(ctx context.Context, principal *entity.Principal, patientID string, req *dto.CreateSessionRequest, recording *Recording) (*dto.SessionResponse, error) {
	patient, err := u.patientRepo.Find(ctx, patientID)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, ErrPatientNotFound
	}
	if err != nil {
		u.log.Warnf("Failed to load patient %s: %+v", patientID, err)
		return nil, err
	}

	session := &entity.Session{
		PatientID:     patient.PatientID,
		ASHAID:        principal.DocID,
		SessionNumber: req.SessionNumber,
		Notes:         req.Notes,
		Score:         req.Score,
		CreatedAt:     time.Now().UTC(),
	}

	if recording != nil {
		key := fmt.Sprintf("recordings/%s/%s%s", patient.PatientID, uuid.NewString(), path.Ext(recording.Filename))
		url, err := u.blobStore.Put(ctx, key, recording.ContentType, recording.Body)
		if err != nil {
			u.log.Warnf("Failed to upload recording: %+v", err)
			return nil, err
		}
		session.RecordingURL = url
	}

	if _, err := u.sessionRepo.Add(ctx, session); err != nil {
		u.log.Warnf("Failed to store session: %+v", err)
		return nil, err
	}

	u.log.WithFields(logrus.Fields{"patient_id": patientID, "session": session.SessionNumber}).Info("Session recorded")
	return converter.SessionToResponse(session), nil
}

func (u *sessionUsecase) ListByPatient(ctx context.Context, principal *entity.Principal, patientID string) ([]*dto.SessionResponse, error) {
	patient, err := u.patientRepo.Find(ctx, patientID)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, ErrPatientNotFound
	}
	if err != nil {
		u.log.Warnf("Failed to load patient %s: %+v", patientID, err)
		return nil, err
	}
	if !canReadPatient(principal, patient) {
		return nil, ErrForbidden
	}

	sessions, err := u.sessionRepo.ListByPatient(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to list sessions of patient %s: %+v", patientID, err)
		return nil, err
	}
	return converter.SessionsToResponses(sessions), nil
}

func (u *sessionUsecase) List(ctx context.Context) ([]*dto.SessionResponse, error) {
	sessions, err := u.sessionRepo.List(ctx)
	if err != nil {
		u.log.Warnf("Failed to list sessions: %+v", err)
		return nil, err
	}
	return converter.SessionsToResponses(sessions), nil
}
