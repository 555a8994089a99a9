package repositories

import (
	"context"
	"fmt"

	"github.com/dgarciab/admision/internal/app/models"
	"github.com/dgarciab/admision/internal/db"
	"github.com/dgarciab/admision/internal/pkg/apperrors"
	"github.com/dgarciab/admision/internal/pkg/dberrors"
)

// CredentialRepository handles database operations for access credentials
type CredentialRepository struct {
	db db.Querier
}

// NewCredentialRepository creates a new credential repository
func NewCredentialRepository(q db.Querier) *CredentialRepository {
	return &CredentialRepository{
		db: q,
	}
}

// Create creates a new access credential
func (r *CredentialRepository) Create(ctx context.Context, credential *models.AccessCredential) error {
	query := `
		INSERT INTO access_credentials (code, username, password_hash, role, active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		credential.Code, credential.Username, credential.PasswordHash,
		credential.Role, credential.Active,
	).Scan(&credential.ID, &credential.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating credential: %w", err)
	}

	return nil
}

// GetByUsername retrieves a credential by username
func (r *CredentialRepository) GetByUsername(ctx context.Context, username string) (*models.AccessCredential, error) {
	query := `
		SELECT id, code, username, password_hash, role, active, created_at
		FROM access_credentials
		WHERE username = $1
	`

	var credential models.AccessCredential
	err := r.db.QueryRow(ctx, query, username).Scan(
		&credential.ID,
		&credential.Code,
		&credential.Username,
		&credential.PasswordHash,
		&credential.Role,
		&credential.Active,
		&credential.CreatedAt,
	)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.NewNotFoundError("AccessCredential", 0)
		}
		return nil, fmt.Errorf("error retrieving credential: %w", err)
	}

	return &credential, nil
}

// UsernameExists checks if a username is already taken
func (r *CredentialRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM access_credentials WHERE username = $1)`,
		username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking username existence: %w", err)
	}

	return exists, nil
}

// Deactivate marks a credential as inactive. Credentials are immutable
// otherwise, so this is the only update the repository offers.
func (r *CredentialRepository) Deactivate(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `UPDATE access_credentials SET active = FALSE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deactivating credential: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("AccessCredential", id)
	}

	return nil
}
