package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/TheLMNTRIX/Sangath/internal/delivery/dto"
	"github.com/TheLMNTRIX/Sangath/internal/usecase"
	"github.com/TheLMNTRIX/Sangath/pkg/validator"
)

type fakeAuthUsecase struct {
	registerErr error
	loginErr    error
	requestErr  error
	verifyErr   error
	token       *dto.TokenResponse
}

func (f *fakeAuthUsecase) RegisterSupervisor(ctx context.Context, req *dto.RegisterSupervisorRequest) error {
	return f.registerErr
}

func (f *fakeAuthUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.token, nil
}

func (f *fakeAuthUsecase) RequestReset(ctx context.Context, req *dto.ResetRequestRequest) error {
	return f.requestErr
}

func (f *fakeAuthUsecase) VerifyReset(ctx context.Context, req *dto.ResetVerifyRequest) (*dto.TokenResponse, error) {
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	return f.token, nil
}

func postJSON(t *testing.T, h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	h(rec, req)
	return rec
}

func TestRegisterSupervisorStatus(t *testing.T) {
	valid := `{"phone":"+911234567890","name":"Supervisor One"}`

	tests := []struct {
		name string
		body string
		err  error
		want int
	}{
		{"created", valid, nil, http.StatusCreated},
		{"duplicate phone", valid, usecase.ErrAlreadyRegistered, http.StatusConflict},
		{"malformed body", `{"phone":`, nil, http.StatusBadRequest},
		{"phone without country code", `{"phone":"1234567890","name":"S"}`, nil, http.StatusBadRequest},
		{"missing name", `{"phone":"+911234567890"}`, nil, http.StatusBadRequest},
		{"short password", `{"phone":"+911234567890","name":"S","password":"short"}`, nil, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAuthHandler(&fakeAuthUsecase{registerErr: tt.err}, validator.NewValidator())
			rec := postJSON(t, h.RegisterSupervisor, tt.body)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestLoginStatus(t *testing.T) {
	h := NewAuthHandler(&fakeAuthUsecase{token: &dto.TokenResponse{AccessToken: "tok", TokenType: "bearer"}}, validator.NewValidator())

	rec := postJSON(t, h.Login, `{"identifier":"+911234567890"}`)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"access_token":"tok"`) {
		t.Errorf("body = %s", rec.Body.String())
	}

	denied := NewAuthHandler(&fakeAuthUsecase{loginErr: usecase.ErrAccountNotFound}, validator.NewValidator())
	rec = postJSON(t, denied.Login, `{"identifier":"nobody@example.org"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("unknown account status = %d, want 401", rec.Code)
	}
}

func TestVerifyResetStatus(t *testing.T) {
	valid := `{"phone":"+911234567890","code":"424242"}`

	tests := []struct {
		name string
		body string
		err  error
		want int
	}{
		{"verified", valid, nil, http.StatusOK},
		{"no ticket", valid, usecase.ErrResetTicketNotFound, http.StatusUnauthorized},
		{"wrong code", valid, usecase.ErrResetCodeMismatch, http.StatusUnauthorized},
		{"attempts exhausted", valid, usecase.ErrTooManyResetAttempts, http.StatusUnauthorized},
		{"unknown phone", valid, usecase.ErrAccountNotFound, http.StatusNotFound},
		{"non-numeric code", `{"phone":"+911234567890","code":"abcdef"}`, nil, http.StatusBadRequest},
		{"short code", `{"phone":"+911234567890","code":"42"}`, nil, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAuthHandler(&fakeAuthUsecase{verifyErr: tt.err, token: &dto.TokenResponse{AccessToken: "tok"}}, validator.NewValidator())
			rec := postJSON(t, h.VerifyReset, tt.body)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}
