package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dgarciab/admision/internal/app/models"
	"github.com/dgarciab/admision/internal/app/repositories"
	"github.com/dgarciab/admision/internal/pkg/apperrors"
	"github.com/dgarciab/admision/internal/pkg/auth"
)

// LoginSession tracks the consecutive failed attempts of one
// interactive login session. It resets on success and is discarded when
// the session ends.
type LoginSession struct {
	Attempts int
}

// AuthService verifies generated credentials against their stored
// bcrypt hashes, with a per-session attempt limit.
type AuthService struct {
	store       repositories.IStore
	maxAttempts int
	logger      zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(store repositories.IStore, maxAttempts int, logger zerolog.Logger) *AuthService {
	return &AuthService{
		store:       store,
		maxAttempts: maxAttempts,
		logger:      logger,
	}
}

// Login checks a username/password pair. Failed attempts accumulate on
// the session; once the limit is reached every further attempt is
// refused without touching the credential store. An unknown username
// and a wrong password produce the same message.
func (s *AuthService) Login(ctx context.Context, session *LoginSession, username, password string) models.OperationResult {
	if session.Attempts >= s.maxAttempts {
		s.logger.Warn().Str("username", username).Msg("Login attempt on a locked session")
		return models.FailResult(fmt.Sprintf(
			"Too many failed attempts. The session is locked after %d tries.", s.maxAttempts))
	}

	credential, err := s.verify(ctx, username, password)
	if err != nil {
		switch err {
		case apperrors.ErrInvalidCredentials:
			session.Attempts++
			remaining := s.maxAttempts - session.Attempts
			if remaining <= 0 {
				return models.FailResult(fmt.Sprintf(
					"Invalid username or password. The session is locked after %d tries.", s.maxAttempts))
			}
			return models.FailResult(fmt.Sprintf(
				"Invalid username or password. %d attempt(s) remaining.", remaining))
		case apperrors.ErrCredentialInactive:
			return models.FailResult("These credentials have been revoked.")
		default:
			return failureResult(err, s.logger)
		}
	}

	session.Attempts = 0
	s.logger.Info().Str("username", username).Str("role", string(credential.Role)).Msg("Login succeeded")
	return models.OperationResult{
		Success: true,
		Message: fmt.Sprintf("Welcome, %s (%s).", credential.Username, credential.Role.DisplayName()),
		Payload: credential,
	}
}

func (s *AuthService) verify(ctx context.Context, username, password string) (*models.AccessCredential, error) {
	credential, err := s.store.Repos().Credentials.GetByUsername(ctx, username)
	if err != nil {
		var nf *apperrors.NotFoundError
		if errors.As(err, &nf) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if !credential.Active {
		return nil, apperrors.ErrCredentialInactive
	}
	if !auth.CheckPassword(credential.PasswordHash, password) {
		return nil, apperrors.ErrInvalidCredentials
	}
	return credential, nil
}
