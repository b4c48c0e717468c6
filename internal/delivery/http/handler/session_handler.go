package handler

import (
	"net/http"
	"strconv"

	"github.com/TheLMNTRIX/Sangath/internal/delivery/dto"
	"github.com/TheLMNTRIX/Sangath/internal/delivery/http/middleware"
	"github.com/TheLMNTRIX/Sangath/internal/usecase"
	"github.com/TheLMNTRIX/Sangath/pkg/response"
	"github.com/TheLMNTRIX/Sangath/pkg/validator"

	"github.com/gorilla/mux"
)

// maxRecordingSize bounds the multipart payload for session uploads.
const maxRecordingSize = 64 << 20

type SessionHandler struct {
	sessionUsecase usecase.SessionUsecase
	validator      *validator.CustomValidator
}

func NewSessionHandler(sessionUsecase usecase.SessionUsecase, validator *validator.CustomValidator) *SessionHandler {
	return &SessionHandler{
		sessionUsecase: sessionUsecase,
		validator:      validator,
	}
}

// CreateSession accepts a multipart form with the session fields and an
// optional "file" part holding the audio recording.
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	patientID := mux.Vars(r)["id"]

	if err := r.ParseMultipartForm(maxRecordingSize); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid multipart form", nil)
		return
	}

	req := dto.CreateSessionRequest{Notes: r.FormValue("notes")}

	sessionNumber, err := strconv.Atoi(r.FormValue("session_number"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "session_number must be an integer", nil)
		return
	}
	req.SessionNumber = sessionNumber

	if raw := r.FormValue("score"); raw != "" {
		score, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "score must be a number", nil)
			return
		}
		req.Score = &score
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	var recording *usecase.Recording
	file, header, err := r.FormFile("file")
	if err == nil {
		defer file.Close()
		recording = &usecase.Recording{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Body:        file,
		}
	} else if err != http.ErrMissingFile {
		response.Error(w, http.StatusBadRequest, "Invalid file upload", nil)
		return
	}

	session, err := h.sessionUsecase.Create(r.Context(), principal, patientID, &req, recording)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		default:
			response.UpstreamError(w, "Failed to record session", err)
		}
		return
	}

	response.Success(w, http.StatusCreated, "Session recorded successfully", session)
}

func (h *SessionHandler) ListPatientSessions(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	patientID := mux.Vars(r)["id"]

	sessions, err := h.sessionUsecase.ListByPatient(r.Context(), principal, patientID)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		case usecase.ErrForbidden:
			response.Forbidden(w, "You don't have permission to access this patient")
		default:
			response.UpstreamError(w, "Failed to list sessions", err)
		}
		return
	}

	response.Success(w, http.StatusOK, "", sessions)
}

func (h *SessionHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.sessionUsecase.List(r.Context())
	if err != nil {
		response.UpstreamError(w, "Failed to list sessions", err)
		return
	}

	response.Success(w, http.StatusOK, "", sessions)
}
