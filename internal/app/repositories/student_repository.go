package repositories

import (
	"context"
	"fmt"

	"github.com/dgarciab/admision/internal/app/models"
	"github.com/dgarciab/admision/internal/db"
	"github.com/dgarciab/admision/internal/pkg/apperrors"
	"github.com/dgarciab/admision/internal/pkg/dberrors"
)

// StudentRepository handles database operations for students
type StudentRepository struct {
	db db.Querier
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(q db.Querier) *StudentRepository {
	return &StudentRepository{
		db: q,
	}
}

const studentColumns = `
	id, first_name, middle_name, last_name, second_last_name, age,
	national_id, status, grade_level_id, group_id, guardian_id, preinscription_id`

// Create creates a new student
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	query := `
		INSERT INTO students (
			first_name, middle_name, last_name, second_last_name, age,
			national_id, status, grade_level_id, group_id, guardian_id, preinscription_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		student.FirstName, student.MiddleName, student.LastName, student.SecondLastName,
		student.Age, student.NationalID, student.Status, student.GradeLevelID,
		student.GroupID, student.GuardianID, student.PreinscriptionID,
	).Scan(&student.ID)
	if err != nil {
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

// GetByID retrieves a student by ID
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	query := `SELECT` + studentColumns + ` FROM students WHERE id = $1`
	return r.scanOne(ctx, query, id)
}

// GetByIDForUpdate retrieves a student by ID and locks the row until
// the surrounding transaction ends
func (r *StudentRepository) GetByIDForUpdate(ctx context.Context, id int64) (*models.Student, error) {
	query := `SELECT` + studentColumns + ` FROM students WHERE id = $1 FOR UPDATE`
	return r.scanOne(ctx, query, id)
}

func (r *StudentRepository) scanOne(ctx context.Context, query string, id int64) (*models.Student, error) {
	var student models.Student
	err := r.db.QueryRow(ctx, query, id).Scan(
		&student.ID,
		&student.FirstName,
		&student.MiddleName,
		&student.LastName,
		&student.SecondLastName,
		&student.Age,
		&student.NationalID,
		&student.Status,
		&student.GradeLevelID,
		&student.GroupID,
		&student.GuardianID,
		&student.PreinscriptionID,
	)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.NewNotFoundError("Student", id)
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return &student, nil
}

// Update updates a student's admission state (status and placement)
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	query := `
		UPDATE students
		SET status = $1, group_id = $2
		WHERE id = $3
	`

	cmdTag, err := r.db.Exec(ctx, query, student.Status, student.GroupID, student.ID)
	if err != nil {
		return fmt.Errorf("error updating student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("Student", student.ID)
	}

	return nil
}
