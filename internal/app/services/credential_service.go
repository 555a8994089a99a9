package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dgarciab/admision/internal/app/models"
	"github.com/dgarciab/admision/internal/app/repositories"
	"github.com/dgarciab/admision/internal/pkg/auth"
	"github.com/dgarciab/admision/internal/pkg/credentials"
)

// maxUsernameAttempts bounds the numeric-suffix retry when a derived
// username is already taken.
const maxUsernameAttempts = 100

// CredentialService issues access credentials for approved guardians
// and staff accounts.
type CredentialService struct {
	logger zerolog.Logger
}

// NewCredentialService creates a new CredentialService
func NewCredentialService(logger zerolog.Logger) *CredentialService {
	return &CredentialService{
		logger: logger,
	}
}

// Issue derives a username and password for a person, resolves username
// collisions with a numeric suffix, stores the credential (hashed
// password only) and returns it together with the plaintext password
// for the one-time notification. Must run inside the caller's
// transaction.
func (s *CredentialService) Issue(ctx context.Context, creds repositories.ICredentialRepository, person models.Person, role models.Role) (*models.AccessCredential, string, error) {
	username, password, err := credentials.Generate(person)
	if err != nil {
		return nil, "", err
	}

	username, err = s.resolveCollision(ctx, creds, username)
	if err != nil {
		return nil, "", err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("error hashing generated password: %w", err)
	}

	credential := &models.AccessCredential{
		Code:         uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		Active:       true,
	}

	if err := creds.Create(ctx, credential); err != nil {
		return nil, "", err
	}

	s.logger.Info().Str("username", username).Str("role", string(role)).Msg("Issued access credential")
	return credential, password, nil
}

// resolveCollision appends an increasing numeric suffix until the
// username is free. Generation alone gives no uniqueness guarantee.
func (s *CredentialService) resolveCollision(ctx context.Context, creds repositories.ICredentialRepository, base string) (string, error) {
	candidate := base
	for i := 2; i <= maxUsernameAttempts; i++ {
		taken, err := creds.UsernameExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s%d", base, i)
	}
	return "", fmt.Errorf("could not find a free username for %q", base)
}
