// Package service contains the business logic layer of the application.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (Business layer) → validates, enforces rules, orchestrates
//	Repository (Data layer)  → reads/writes to the database
//
// Services accept repository interfaces, never a concrete *sqlite.DB, so
// tests inject in-memory fakes and main.go picks SQLite or Postgres.
//
// Every failure a service returns is an *apperror.AppError. Expected ones
// (validation, conflict, not found, bad credentials) carry their own message;
// anything else is logged here with its detail and returned as Internal.
package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/sakif/task-manager/internal/apperror"
	"github.com/sakif/task-manager/internal/auth"
	"github.com/sakif/task-manager/internal/dto"
	"github.com/sakif/task-manager/internal/model"
	"github.com/sakif/task-manager/internal/repository"
	"github.com/sakif/task-manager/internal/validation"
)

// InvalidCredentialsMessage is the single message for every failed login.
// Unknown email and wrong password are indistinguishable to the client.
const InvalidCredentialsMessage = "invalid email or password"

// TokenIssuer mints access tokens. *auth.TokenService implements it.
type TokenIssuer interface {
	Generate(userID int64, email string) (string, error)
}

// PasswordHasher hashes and checks passwords. *auth.PasswordService implements it.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(hash, plaintext string) error
}

// AuthService handles registration and login.
//
//	AuthHandler (HTTP) → AuthService → UserRepository (DB)
//	                               ↘ TokenIssuer (JWT), PasswordHasher (bcrypt)
type AuthService struct {
	users     repository.UserRepository
	tokens    TokenIssuer
	passwords PasswordHasher
	logger    *slog.Logger
}

// NewAuthService creates an AuthService with all required dependencies.
func NewAuthService(
	users repository.UserRepository,
	tokens TokenIssuer,
	passwords PasswordHasher,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

// Register creates an account and returns an access token for it.
//
// Steps:
//  1. Validate name, email and password strength. Every violated rule is reported.
//  2. Reject an email that is already registered (Conflict, nothing written).
//  3. Hash the password; the plaintext goes no further than this method.
//  4. Insert the user and issue a token bound to the new ID.
//
// The existence check and the insert are two statements. If another request
// registers the same email in between, the unique index makes Create return
// Conflict, which is passed through unchanged.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (string, error) {
	if msgs := validation.Register(req.Name, req.Email, req.Password); len(msgs) > 0 {
		return "", apperror.Validation(msgs)
	}

	exists, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return "", s.internal("checking email", err)
	}
	if exists {
		s.logger.Warn("registration rejected: email already registered")
		return "", apperror.ConflictMessage("email already registered")
	}

	hash, err := s.passwords.Hash(req.Password)
	if err != nil {
		return "", s.internal("hashing password", err)
	}

	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return "", err
		}
		return "", s.internal("creating user", err)
	}

	s.logger.Info("user registered", slog.Int64("userID", user.ID))

	token, err := s.tokens.Generate(user.ID, user.Email)
	if err != nil {
		return "", s.internal("generating token", err, slog.Int64("userID", user.ID))
	}
	return token, nil
}

// Login checks the credentials and returns a fresh access token.
//
// An unknown email and a wrong password both produce the same Unauthorized
// error with InvalidCredentialsMessage as the message.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (string, error) {
	if msgs := validation.Login(req.Email, req.Password); len(msgs) > 0 {
		return "", apperror.Validation(msgs)
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			s.logger.Warn("login failed: unknown email")
			return "", apperror.Unauthorized(InvalidCredentialsMessage)
		}
		return "", s.internal("looking up user", err)
	}

	if err := s.passwords.Verify(user.PasswordHash, req.Password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			s.logger.Warn("login failed: wrong password", slog.Int64("userID", user.ID))
			return "", apperror.Unauthorized(InvalidCredentialsMessage)
		}
		return "", s.internal("verifying password", err, slog.Int64("userID", user.ID))
	}

	token, err := s.tokens.Generate(user.ID, user.Email)
	if err != nil {
		return "", s.internal("generating token", err, slog.Int64("userID", user.ID))
	}

	s.logger.Info("user logged in", slog.Int64("userID", user.ID))
	return token, nil
}

// internal logs an unexpected failure with its detail and returns the
// generic Internal error that is safe to show a client.
func (s *AuthService) internal(op string, err error, attrs ...any) error {
	return logInternal(s.logger, op, err, attrs...)
}

func logInternal(logger *slog.Logger, op string, err error, attrs ...any) error {
	args := append([]any{slog.String("op", op), slog.String("error", err.Error())}, attrs...)
	logger.Error("unexpected failure", args...)
	return apperror.Internal(err)
}
