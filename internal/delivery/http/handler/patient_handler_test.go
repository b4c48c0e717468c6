package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/TheLMNTRIX/Sangath/internal/delivery/dto"
	"github.com/TheLMNTRIX/Sangath/internal/delivery/http/middleware"
	"github.com/TheLMNTRIX/Sangath/internal/domain/entity"
	"github.com/TheLMNTRIX/Sangath/internal/usecase"
	"github.com/TheLMNTRIX/Sangath/pkg/validator"

	"github.com/gorilla/mux"
)

type fakePatientUsecase struct {
	createErr error
	getErr    error
	updateErr error
	assignErr error
	deleteErr error
	patient   *dto.PatientResponse
}

func (f *fakePatientUsecase) Create(ctx context.Context, principal *entity.Principal, req *dto.CreatePatientRequest) (*dto.CreatePatientResponse, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &dto.CreatePatientResponse{PatientID: "10000001"}, nil
}

func (f *fakePatientUsecase) Get(ctx context.Context, principal *entity.Principal, patientID string) (*dto.PatientResponse, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.patient, nil
}

func (f *fakePatientUsecase) List(ctx context.Context) ([]*dto.PatientResponse, error) {
	return nil, nil
}

func (f *fakePatientUsecase) MyPatients(ctx context.Context, principal *entity.Principal) ([]*dto.PatientResponse, error) {
	return nil, nil
}

func (f *fakePatientUsecase) Update(ctx context.Context, principal *entity.Principal, patientID string, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.patient, nil
}

func (f *fakePatientUsecase) AssignWorker(ctx context.Context, patientID string, req *dto.AssignWorkerRequest) error {
	return f.assignErr
}

func (f *fakePatientUsecase) Delete(ctx context.Context, patientID string) error {
	return f.deleteErr
}

func authed(req *http.Request, role entity.Role) *http.Request {
	principal := &entity.Principal{UID: "uid-t", Role: role, DocID: "caller"}
	return req.WithContext(middleware.WithPrincipal(req.Context(), principal))
}

func TestCreatePatientStatus(t *testing.T) {
	valid := `{"name":"Patient One","age":27,"gender":"F"}`

	tests := []struct {
		name string
		body string
		err  error
		want int
	}{
		{"created", valid, nil, http.StatusCreated},
		{"high risk without description", `{"name":"P","age":27,"gender":"F","high_risk":true}`, usecase.ErrHighRiskDescriptionRequired, http.StatusUnprocessableEntity},
		{"unknown worker", valid, usecase.ErrWorkerNotFound, http.StatusNotFound},
		{"bad pregnancy state", `{"name":"P","age":27,"gender":"F","pregnancy_state":"XYZ"}`, nil, http.StatusBadRequest},
		{"negative age", `{"name":"P","age":-1,"gender":"F"}`, nil, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewPatientHandler(&fakePatientUsecase{createErr: tt.err}, validator.NewValidator())
			rec := httptest.NewRecorder()
			req := authed(httptest.NewRequest(http.MethodPost, "/patients", strings.NewReader(tt.body)), entity.RoleSupervisor)
			h.CreatePatient(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestCreatePatientWithoutPrincipal(t *testing.T) {
	h := NewPatientHandler(&fakePatientUsecase{}, validator.NewValidator())
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/patients", strings.NewReader(`{"name":"P","age":1,"gender":"F"}`))
	h.CreatePatient(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestUpdatePatientStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"updated", nil, http.StatusOK},
		{"not found", usecase.ErrPatientNotFound, http.StatusNotFound},
		{"forbidden", usecase.ErrForbidden, http.StatusForbidden},
		{"high risk without description", usecase.ErrHighRiskDescriptionRequired, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewPatientHandler(&fakePatientUsecase{
				updateErr: tt.err,
				patient:   &dto.PatientResponse{PatientID: "10000001"},
			}, validator.NewValidator())

			router := mux.NewRouter()
			router.HandleFunc("/patients/{id}", h.UpdatePatient).Methods(http.MethodPatch)

			rec := httptest.NewRecorder()
			req := authed(httptest.NewRequest(http.MethodPatch, "/patients/10000001", strings.NewReader(`{"age":28}`)), entity.RoleASHA)
			router.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestDeletePatientStatus(t *testing.T) {
	h := NewPatientHandler(&fakePatientUsecase{deleteErr: usecase.ErrPatientNotFound}, validator.NewValidator())

	router := mux.NewRouter()
	router.HandleFunc("/patients/{id}", h.DeletePatient).Methods(http.MethodDelete)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/patients/00000000", nil)
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestAssignWorkerStatus(t *testing.T) {
	h := NewPatientHandler(&fakePatientUsecase{}, validator.NewValidator())

	router := mux.NewRouter()
	router.HandleFunc("/patients/{id}/assign", h.AssignWorker).Methods(http.MethodPost)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/patients/10000001/assign", strings.NewReader(`{"asha_id":"123456"}`))
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	// Missing asha_id fails validation before the usecase runs.
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/patients/10000001/assign", strings.NewReader(`{}`))
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
