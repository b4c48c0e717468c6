package handler

import (
	"encoding/json"
	"net/http"

	"github.com/TheLMNTRIX/Sangath/internal/delivery/dto"
	"github.com/TheLMNTRIX/Sangath/internal/usecase"
	"github.com/TheLMNTRIX/Sangath/pkg/response"
	"github.com/TheLMNTRIX/Sangath/pkg/validator"
)

type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	validator   *validator.CustomValidator
}

func NewAuthHandler(authUsecase usecase.AuthUsecase, validator *validator.CustomValidator) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		validator:   validator,
	}
}

func (h *AuthHandler) RegisterSupervisor(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterSupervisorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.authUsecase.RegisterSupervisor(r.Context(), &req); err != nil {
		switch err {
		case usecase.ErrAlreadyRegistered:
			response.Conflict(w, "Phone number already registered")
		default:
			response.UpstreamError(w, "Registration failed", err)
		}
		return
	}

	response.Success(w, http.StatusCreated, "Supervisor registered successfully", nil)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	token, err := h.authUsecase.Login(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrAccountNotFound:
			response.Unauthorized(w, "Login failed")
		default:
			response.UpstreamError(w, "Login failed", err)
		}
		return
	}

	response.Success(w, http.StatusOK, "Login successful", token)
}

func (h *AuthHandler) RequestReset(w http.ResponseWriter, r *http.Request) {
	var req dto.ResetRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.authUsecase.RequestReset(r.Context(), &req); err != nil {
		switch err {
		case usecase.ErrAccountNotFound:
			response.NotFound(w, "Account not found")
		default:
			response.UpstreamError(w, "Failed to send reset code", err)
		}
		return
	}

	response.Success(w, http.StatusOK, "Reset code sent", nil)
}

func (h *AuthHandler) VerifyReset(w http.ResponseWriter, r *http.Request) {
	var req dto.ResetVerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	token, err := h.authUsecase.VerifyReset(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrAccountNotFound:
			response.NotFound(w, "Account not found")
		case usecase.ErrResetTicketNotFound:
			response.Unauthorized(w, "No active reset code, request a new one")
		case usecase.ErrResetCodeMismatch:
			response.Unauthorized(w, "Reset code does not match")
		case usecase.ErrTooManyResetAttempts:
			response.Unauthorized(w, "Too many attempts, request a new code")
		default:
			response.UpstreamError(w, "Reset verification failed", err)
		}
		return
	}

	response.Success(w, http.StatusOK, "Login successful", token)
}
