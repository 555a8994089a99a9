package repositories

import (
	"context"
	"fmt"

	"github.com/dgarciab/admision/internal/app/models"
	"github.com/dgarciab/admision/internal/db"
)

// StaffRepository handles database operations for staff accounts
type StaffRepository struct {
	db db.Querier
}

// NewStaffRepository creates a new staff repository
func NewStaffRepository(q db.Querier) *StaffRepository {
	return &StaffRepository{
		db: q,
	}
}

// Create creates a new staff account
func (r *StaffRepository) Create(ctx context.Context, staff *models.StaffAccount) error {
	query := `
		INSERT INTO staff_accounts (
			first_name, middle_name, last_name, second_last_name, age,
			national_id, role, email, credential_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		staff.FirstName, staff.MiddleName, staff.LastName, staff.SecondLastName,
		staff.Age, staff.NationalID, staff.Role, staff.Email, staff.CredentialID,
	).Scan(&staff.ID, &staff.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating staff account: %w", err)
	}

	return nil
}

// EmailExists checks if a staff email already exists
func (r *StaffRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM staff_accounts WHERE email = $1)`,
		email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking staff email existence: %w", err)
	}

	return exists, nil
}
