package handler

import (
	"encoding/json"
	"net/http"

	"github.com/TheLMNTRIX/Sangath/internal/delivery/dto"
	"github.com/TheLMNTRIX/Sangath/internal/delivery/http/middleware"
	"github.com/TheLMNTRIX/Sangath/internal/usecase"
	"github.com/TheLMNTRIX/Sangath/pkg/response"
	"github.com/TheLMNTRIX/Sangath/pkg/validator"

	"github.com/gorilla/mux"
)

type PatientHandler struct {
	patientUsecase usecase.PatientUsecase
	validator      *validator.CustomValidator
}

func NewPatientHandler(patientUsecase usecase.PatientUsecase, validator *validator.CustomValidator) *PatientHandler {
	return &PatientHandler{
		patientUsecase: patientUsecase,
		validator:      validator,
	}
}

func (h *PatientHandler) CreatePatient(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req dto.CreatePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	created, err := h.patientUsecase.Create(r.Context(), principal, &req)
	if err != nil {
		switch err {
		case usecase.ErrHighRiskDescriptionRequired:
			response.UnprocessableEntity(w, "Description is required when high risk is true")
		case usecase.ErrWorkerNotFound:
			response.NotFound(w, "ASHA not found")
		default:
			response.UpstreamError(w, "Failed to create patient", err)
		}
		return
	}

	response.Success(w, http.StatusCreated, "Patient created successfully", created)
}

func (h *PatientHandler) GetPatient(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	patientID := mux.Vars(r)["id"]

	patient, err := h.patientUsecase.Get(r.Context(), principal, patientID)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		case usecase.ErrForbidden:
			response.Forbidden(w, "You don't have permission to access this patient")
		default:
			response.UpstreamError(w, "Failed to load patient", err)
		}
		return
	}

	response.Success(w, http.StatusOK, "", patient)
}

func (h *PatientHandler) ListPatients(w http.ResponseWriter, r *http.Request) {
	patients, err := h.patientUsecase.List(r.Context())
	if err != nil {
		response.UpstreamError(w, "Failed to list patients", err)
		return
	}

	response.Success(w, http.StatusOK, "", patients)
}

func (h *PatientHandler) MyPatients(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	patients, err := h.patientUsecase.MyPatients(r.Context(), principal)
	if err != nil {
		response.UpstreamError(w, "Failed to list patients", err)
		return
	}

	response.Success(w, http.StatusOK, "", patients)
}

func (h *PatientHandler) UpdatePatient(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	patientID := mux.Vars(r)["id"]

	var req dto.UpdatePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	patient, err := h.patientUsecase.Update(r.Context(), principal, patientID, &req)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		case usecase.ErrForbidden:
			response.Forbidden(w, "You don't have permission to update this patient")
		case usecase.ErrHighRiskDescriptionRequired:
			response.UnprocessableEntity(w, "Description is required when high risk is true")
		default:
			response.UpstreamError(w, "Failed to update patient", err)
		}
		return
	}

	response.Success(w, http.StatusOK, "Patient updated successfully", patient)
}

func (h *PatientHandler) AssignWorker(w http.ResponseWriter, r *http.Request) {
	patientID := mux.Vars(r)["id"]

	var req dto.AssignWorkerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.patientUsecase.AssignWorker(r.Context(), patientID, &req); err != nil {
		switch err {
		case usecase.ErrWorkerNotFound:
			response.NotFound(w, "ASHA not found")
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		default:
			response.UpstreamError(w, "Failed to assign ASHA", err)
		}
		return
	}

	response.Success(w, http.StatusOK, "ASHA assigned successfully", nil)
}

func (h *PatientHandler) DeletePatient(w http.ResponseWriter, r *http.Request) {
	patientID := mux.Vars(r)["id"]

	if err := h.patientUsecase.Delete(r.Context(), patientID); err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		default:
			response.UpstreamError(w, "Failed to delete patient", err)
		}
		return
	}

	response.Success(w, http.StatusOK, "Patient deleted successfully", nil)
}
