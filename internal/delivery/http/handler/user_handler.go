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

type UserHandler struct {
	userUsecase usecase.UserUsecase
	validator   *validator.CustomValidator
}

func NewUserHandler(userUsecase usecase.UserUsecase, validator *validator.CustomValidator) *UserHandler {
	return &UserHandler{
		userUsecase: userUsecase,
		validator:   validator,
	}
}

func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	profile, err := h.userUsecase.GetProfile(r.Context(), principal)
	if err != nil {
		switch err {
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found")
		default:
			response.UpstreamError(w, "Failed to load profile", err)
		}
		return
	}

	response.Success(w, http.StatusOK, "", profile)
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req dto.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.userUsecase.UpdateProfile(r.Context(), principal, &req); err != nil {
		switch err {
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found")
		default:
			response.UpstreamError(w, "Failed to update profile", err)
		}
		return
	}

	response.Success(w, http.StatusOK, "Profile updated successfully", nil)
}

func (h *UserHandler) CreateWorker(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req dto.CreateWorkerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	worker, err := h.userUsecase.CreateWorker(r.Context(), principal, &req)
	if err != nil {
		response.UpstreamError(w, "Failed to create worker account", err)
		return
	}

	response.Success(w, http.StatusCreated, "ASHA created successfully", worker)
}

func (h *UserHandler) ListWorkers(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	workers, err := h.userUsecase.ListWorkers(r.Context(), principal)
	if err != nil {
		response.UpstreamError(w, "Failed to list workers", err)
		return
	}

	response.Success(w, http.StatusOK, "", workers)
}

func (h *UserHandler) GetWorker(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	key := mux.Vars(r)["id"]

	worker, err := h.userUsecase.GetWorker(r.Context(), principal, key)
	if err != nil {
		switch err {
		case usecase.ErrForbidden:
			response.Forbidden(w, "You don't have permission to access this resource")
		case usecase.ErrWorkerNotFound:
			response.NotFound(w, "ASHA not found")
		default:
			response.UpstreamError(w, "Failed to load worker", err)
		}
		return
	}

	response.Success(w, http.StatusOK, "", worker)
}

func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["id"]

	if err := h.userUsecase.DeleteUser(r.Context(), key); err != nil {
		switch err {
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found")
		default:
			response.UpstreamError(w, "Failed to delete user", err)
		}
		return
	}

	response.Success(w, http.StatusOK, "User deleted successfully", nil)
}
