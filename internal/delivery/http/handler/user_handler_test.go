package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/TheLMNTRIX/Sangath/internal/delivery/dto"
	"github.com/TheLMNTRIX/Sangath/internal/domain/entity"
	"github.com/TheLMNTRIX/Sangath/internal/usecase"
	"github.com/TheLMNTRIX/Sangath/pkg/validator"

	"github.com/gorilla/mux"
)

type fakeUserUsecase struct {
	getWorkerErr error
	deleteErr    error
	createErr    error
}

func (f *fakeUserUsecase) GetProfile(ctx context.Context, principal *entity.Principal) (*dto.UserResponse, error) {
	return &dto.UserResponse{Key: principal.DocID}, nil
}

func (f *fakeUserUsecase) UpdateProfile(ctx context.Context, principal *entity.Principal, req *dto.UpdateProfileRequest) error {
	return nil
}

func (f *fakeUserUsecase) CreateWorker(ctx context.Context, principal *entity.Principal, req *dto.CreateWorkerRequest) (*dto.CreateWorkerResponse, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &dto.CreateWorkerResponse{ASHAID: "123456"}, nil
}

func (f *fakeUserUsecase) ListWorkers(ctx context.Context, principal *entity.Principal) ([]*dto.UserResponse, error) {
	return nil, nil
}

func (f *fakeUserUsecase) GetWorker(ctx context.Context, principal *entity.Principal, key string) (*dto.UserResponse, error) {
	if f.getWorkerErr != nil {
		return nil, f.getWorkerErr
	}
	return &dto.UserResponse{Key: key}, nil
}

func (f *fakeUserUsecase) DeleteUser(ctx context.Context, key string) error {
	return f.deleteErr
}

func TestCreateWorkerValidation(t *testing.T) {
	h := NewUserHandler(&fakeUserUsecase{}, validator.NewValidator())

	rec := httptest.NewRecorder()
	req := authed(httptest.NewRequest(http.MethodPost, "/workers", strings.NewReader(`{"phone":"+919876543210","name":"Asha Worker"}`)), entity.RoleSupervisor)
	h.CreateWorker(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	req = authed(httptest.NewRequest(http.MethodPost, "/workers", strings.NewReader(`{"phone":"9876543210","name":"Asha Worker"}`)), entity.RoleSupervisor)
	h.CreateWorker(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bare phone status = %d, want 400", rec.Code)
	}
}

func TestGetWorkerStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"found", nil, http.StatusOK},
		{"forbidden", usecase.ErrForbidden, http.StatusForbidden},
		{"missing", usecase.ErrWorkerNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewUserHandler(&fakeUserUsecase{getWorkerErr: tt.err}, validator.NewValidator())
			router := mux.NewRouter()
			router.HandleFunc("/workers/{id}", h.GetWorker).Methods(http.MethodGet)

			rec := httptest.NewRecorder()
			req := authed(httptest.NewRequest(http.MethodGet, "/workers/123456", nil), entity.RoleASHA)
			router.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestDeleteUserStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"deleted", nil, http.StatusOK},
		{"missing", usecase.ErrUserNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewUserHandler(&fakeUserUsecase{deleteErr: tt.err}, validator.NewValidator())
			router := mux.NewRouter()
			router.HandleFunc("/users/{id}", h.DeleteUser).Methods(http.MethodDelete)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodDelete, "/users/123456", nil)
			router.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestGetProfileRequiresPrincipal(t *testing.T) {
	h := NewUserHandler(&fakeUserUsecase{}, validator.NewValidator())

	rec := httptest.NewRecorder()
	h.GetProfile(rec, httptest.NewRequest(http.MethodGet, "/users/me", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}
