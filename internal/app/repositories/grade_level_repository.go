package repositories

import (
	"context"
	"fmt"

	"github.com/dgarciab/admision/internal/app/models"
	"github.com/dgarciab/admision/internal/db"
	"github.com/dgarciab/admision/internal/pkg/apperrors"
	"github.com/dgarciab/admision/internal/pkg/dberrors"
)

// GradeLevelRepository handles database operations for grade levels
type GradeLevelRepository struct {
	db db.Querier
}

// NewGradeLevelRepository creates a new grade level repository
func NewGradeLevelRepository(q db.Querier) *GradeLevelRepository {
	return &GradeLevelRepository{
		db: q,
	}
}

// Create creates a new grade level
func (r *GradeLevelRepository) Create(ctx context.Context, level *models.GradeLevel) error {
	query := `
		INSERT INTO grade_levels (name)
		VALUES ($1)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, level.Name).Scan(&level.ID)
	if err != nil {
		return fmt.Errorf("error creating grade level: %w", err)
	}

	return nil
}

// GetByID retrieves a grade level by ID
func (r *GradeLevelRepository) GetByID(ctx context.Context, id int64) (*models.GradeLevel, error) {
	var level models.GradeLevel
	err := r.db.QueryRow(ctx, `SELECT id, name FROM grade_levels WHERE id = $1`, id).
		Scan(&level.ID, &level.Name)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.NewNotFoundError("GradeLevel", id)
		}
		return nil, fmt.Errorf("error retrieving grade level: %w", err)
	}

	return &level, nil
}

// GetByName retrieves a grade level by its unique name
func (r *GradeLevelRepository) GetByName(ctx context.Context, name string) (*models.GradeLevel, error) {
	var level models.GradeLevel
	err := r.db.QueryRow(ctx, `SELECT id, name FROM grade_levels WHERE name = $1`, name).
		Scan(&level.ID, &level.Name)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.NewNotFoundError("GradeLevel", 0)
		}
		return nil, fmt.Errorf("error retrieving grade level: %w", err)
	}

	return &level, nil
}

// GetAll retrieves all grade levels
func (r *GradeLevelRepository) GetAll(ctx context.Context) ([]*models.GradeLevel, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM grade_levels ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var levels []*models.GradeLevel
	for rows.Next() {
		var level models.GradeLevel
		if err := rows.Scan(&level.ID, &level.Name); err != nil {
			return nil, err
		}
		levels = append(levels, &level)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return levels, nil
}
