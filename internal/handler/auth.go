package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/sakif/task-manager/internal/dto"
)

// AuthService is what AuthHandler needs from the service layer.
// *service.AuthService implements it; tests pass a stub.
type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (string, error)
	Login(ctx context.Context, req dto.LoginRequest) (string, error)
}

// AuthHandler serves the public account endpoints.
//
// HANDLER RESPONSIBILITIES:
//   - HandleRegister → create an account, answer with a token
//   - HandleLogin    → check credentials, answer with a token
//
// The handler only decodes JSON and maps errors. Validation, hashing and
// token issuing all live in the service.
type AuthHandler struct {
	auth   AuthService
	logger *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(auth AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

// HandleRegister creates a user account.
//
// HTTP: POST /auth/register
// REQUEST BODY: {"name": "Ana", "email": "ana@x.com", "password": "Abcdef1!"}
// RESPONSE:     201 {"token": "<jwt>"}
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}

	token, err := h.auth.Register(r.Context(), req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusCreated, dto.TokenResponse{Token: token})
}

// HandleLogin exchanges credentials for a token.
//
// HTTP: POST /auth/login
// REQUEST BODY: {"email": "ana@x.com", "password": "Abcdef1!"}
// RESPONSE:     200 {"token": "<jwt>"}
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}

	token, err := h.auth.Login(r.Context(), req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, dto.TokenResponse{Token: token})
}
