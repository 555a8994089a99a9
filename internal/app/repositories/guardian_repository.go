package repositories

import (
	"context"
	"fmt"

	"github.com/dgarciab/admision/internal/app/models"
	"github.com/dgarciab/admision/internal/db"
	"github.com/dgarciab/admision/internal/pkg/apperrors"
)

// GuardianRepository handles database operations for guardians
type GuardianRepository struct {
	db db.Querier
}

// NewGuardianRepository creates a new guardian repository
func NewGuardianRepository(q db.Querier) *GuardianRepository {
	return &GuardianRepository{
		db: q,
	}
}

// Create creates a new guardian
func (r *GuardianRepository) Create(ctx context.Context, guardian *models.Guardian) error {
	query := `
		INSERT INTO guardians (
			first_name, middle_name, last_name, second_last_name, age,
			national_id, email, phone, status, credential_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		guardian.FirstName, guardian.MiddleName, guardian.LastName, guardian.SecondLastName,
		guardian.Age, guardian.NationalID, guardian.Email, guardian.Phone,
		guardian.Status, guardian.CredentialID,
	).Scan(&guardian.ID, &guardian.CreatedAt)
	if err != nil {
		return err
	}

	return nil
}

// Update updates a guardian's derived admission state
func (r *GuardianRepository) Update(ctx context.Context, guardian *models.Guardian) error {
	query := `
		UPDATE guardians
		SET status = $1, credential_id = $2
		WHERE id = $3
	`

	cmdTag, err := r.db.Exec(ctx, query, guardian.Status, guardian.CredentialID, guardian.ID)
	if err != nil {
		return fmt.Errorf("error updating guardian: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("Guardian", guardian.ID)
	}

	return nil
}
