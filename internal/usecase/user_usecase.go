package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/TheLMNTRIX/Sangath/internal/converter"
	"github.com/TheLMNTRIX/Sangath/internal/delivery/dto"
	"github.com/TheLMNTRIX/Sangath/internal/domain/entity"
	"github.com/TheLMNTRIX/Sangath/internal/domain/repository"
	"github.com/TheLMNTRIX/Sangath/internal/infrastructure/docstore"
	"github.com/TheLMNTRIX/Sangath/internal/infrastructure/identity"

	"github.com/sirupsen/logrus"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrWorkerNotFound = errors.New("worker not found")
	ErrForbidden      = errors.New("operation not permitted for this role")
)

type UserUsecase interface {
	GetProfile(ctx context.Context, principal *entity.Principal) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, principal *entity.Principal, req *dto.UpdateProfileRequest) error
	CreateWorker(ctx context.Context, principal *entity.Principal, req *dto.CreateWorkerRequest) (*dto.CreateWorkerResponse, error)
	ListWorkers(ctx context.Context, principal *entity.Principal) ([]*dto.UserResponse, error)
	GetWorker(ctx context.Context, principal *entity.Principal, key string) (*dto.UserResponse, error)
	DeleteUser(ctx context.Context, key string) error
}

type userUsecase struct {
	log         *logrus.Logger
	identity    identity.Client
	userRepo    repository.UserRepository
	patientRepo repository.PatientRepository
}

func NewUserUsecase(
	log *logrus.Logger,
	identityClient identity.Client,
	userRepo repository.UserRepository,
	patientRepo repository.PatientRepository,
) UserUsecase {
	return &userUsecase{
		log:         log,
		identity:    identityClient,
		userRepo:    userRepo,
		patientRepo: patientRepo,
	}
}

func (u *userUsecase) GetProfile(ctx context.Context, principal *entity.Principal) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByKey(ctx, principal.DocID)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		u.log.Warnf("Failed to load profile: %+v", err)
		return nil, err
	}
	return converter.UserToResponse(user), nil
}

func (u *userUsecase) UpdateProfile(ctx context.Context, principal *entity.Principal, req *dto.UpdateProfileRequest) error {
	fields := map[string]interface{}{
		"first_login":       false,
		"profile_completed": true,
	}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.ProfilePictureURL != nil {
		fields["profile_picture_url"] = *req.ProfilePictureURL
	}
	if req.Location != nil {
		fields["location"] = *req.Location
	}
	if req.District != nil {
		fields["district"] = *req.District
	}
	if req.HealthFacility != nil {
		fields["health_facility"] = *req.HealthFacility
	}
	if req.EmployeeID != nil {
		fields["employee_id"] = *req.EmployeeID
	}
	if req.YearsOfExperience != nil {
		fields["years_of_experience"] = *req.YearsOfExperience
	}

	if req.Password != nil {
		if err := u.identity.UpdatePassword(ctx, principal.UID, *req.Password); err != nil {
			u.log.Warnf("Failed to update password: %+v", err)
			return err
		}
	}

	err := u.userRepo.Update(ctx, principal.DocID, fields)
	if errors.Is(err, docstore.ErrNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		u.log.Warnf("Failed to update profile: %+v", err)
	}
	return err
}

func (u *userUsecase) CreateWorker(ctx context.Context, principal *entity.Principal, req *dto.CreateWorkerRequest) (*dto.CreateWorkerResponse, error) {
	account, err := u.identity.CreateAccount(ctx, identity.CreateParams{
		Phone:       req.Phone,
		Email:       req.Email,
		DisplayName: req.Name,
	})
	if err != nil {
		u.log.Warnf("Failed to create worker identity account: %+v", err)
		return nil, err
	}

	worker := &entity.User{
		UID:             account.UID,
		Phone:           req.Phone,
		Email:           req.Email,
		Name:            req.Name,
		Role:            entity.RoleASHA,
		SupervisorPhone: principal.Phone,
		District:        req.District,
		Tehsil:          req.Tehsil,
		IsActive:        true,
		FirstLogin:      true,
		CreatedAt:       time.Now().UTC(),
	}

	ashaID, err := u.userRepo.CreateWorker(ctx, worker)
	if err != nil {
		if delErr := u.identity.DeleteAccount(ctx, account.UID); delErr != nil {
			u.log.Errorf("Failed to roll back identity account %s: %+v", account.UID, delErr)
		}
		u.log.Warnf("Failed to store worker document: %+v", err)
		return nil, err
	}

	u.log.WithField("asha_id", ashaID).Info("Worker account created")
	return &dto.CreateWorkerResponse{ASHAID: ashaID}, nil
}

func (u *userUsecase) ListWorkers(ctx context.Context, principal *entity.Principal) ([]*dto.UserResponse, error) {
	var (
		workers []*entity.User
		err     error
	)
	if principal.Role == entity.RoleAdmin {
		workers, err = u.userRepo.ListWorkers(ctx)
	} else {
		workers, err = u.userRepo.ListWorkersBySupervisor(ctx, principal.Phone)
	}
	if err != nil {
		u.log.Warnf("Failed to list workers: %+v", err)
		return nil, err
	}
	return converter.UsersToResponses(workers), nil
}

func (u *userUsecase) GetWorker(ctx context.Context, principal *entity.Principal, key string) (*dto.UserResponse, error) {
	if !principal.CanAccess(key, entity.RoleSupervisor, entity.RoleAdmin) {
		return nil, ErrForbidden
	}

	worker, err := u.userRepo.FindByKey(ctx, key)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, ErrWorkerNotFound
	}
	if err != nil {
		u.log.Warnf("Failed to load worker: %+v", err)
		return nil, err
	}
	if worker.Role != entity.RoleASHA {
		return nil, ErrWorkerNotFound
	}
	return converter.UserToResponse(worker), nil
}

// DeleteUser revokes the provider account, detaches the user from any
// assigned patients and removes the document, in that order. If
// revocation fails the whole operation is aborted so no stale credential
// can outlive its document.
func (u *userUsecase) DeleteUser(ctx context.Context, key string) error {
	user, err := u.userRepo.FindByKey(ctx, key)
	if errors.Is(err, docstore.ErrNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		u.log.Warnf("Failed to load user for deletion: %+v", err)
		return err
	}

	if err := u.identity.DeleteAccount(ctx, user.UID); err != nil && !errors.Is(err, identity.ErrAccountNotFound) {
		u.log.Errorf("Failed to revoke identity account %s: %+v", user.UID, err)
		return fmt.Errorf("identity revocation failed, user not deleted: %w", err)
	}

	if user.Role == entity.RoleASHA {
		patients, err := u.patientRepo.ListByAssignedWorker(ctx, key)
		if err != nil {
			u.log.Warnf("Failed to list assigned patients: %+v", err)
			return err
		}
		for _, patient := range patients {
			err := u.patientRepo.Update(ctx, patient.PatientID, map[string]interface{}{
				"assigned_ashaid": nil,
				"last_updated":    time.Now().UTC().Format(time.RFC3339Nano),
			})
			if err != nil {
				u.log.Warnf("Failed to unassign patient %s: %+v", patient.PatientID, err)
				return err
			}
		}
	}

	if err := u.userRepo.Delete(ctx, key); err != nil {
		u.log.Warnf("Failed to delete user document: %+v", err)
		return err
	}

	u.log.WithField("user", key).Info("User deleted")
	return nil
}
