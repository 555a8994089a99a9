package repositories

import (
	"context"
	"fmt"

	"github.com/dgarciab/admision/internal/app/models"
	"github.com/dgarciab/admision/internal/db"
	"github.com/dgarciab/admision/internal/pkg/apperrors"
	"github.com/dgarciab/admision/internal/pkg/dberrors"
)

// PreinscriptionRepository handles database operations for preinscriptions
type PreinscriptionRepository struct {
	db db.Querier
}

// NewPreinscriptionRepository creates a new preinscription repository
func NewPreinscriptionRepository(q db.Querier) *PreinscriptionRepository {
	return &PreinscriptionRepository{
		db: q,
	}
}

// Create creates a new preinscription
func (r *PreinscriptionRepository) Create(ctx context.Context, pre *models.Preinscription) error {
	query := `
		INSERT INTO preinscriptions (reference, registered_at, status, guardian_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		pre.Reference, pre.RegisteredAt, pre.Status, pre.GuardianID,
	).Scan(&pre.ID)
	if err != nil {
		return fmt.Errorf("error creating preinscription: %w", err)
	}

	return nil
}

// GetByStudentID loads the preinscription that owns a student, with its
// guardian and full student set attached
func (r *PreinscriptionRepository) GetByStudentID(ctx context.Context, studentID int64) (*models.Preinscription, error) {
	query := `
		SELECT p.id, p.reference, p.registered_at, p.status, p.guardian_id
		FROM preinscriptions p
		JOIN students s ON s.preinscription_id = p.id
		WHERE s.id = $1
	`

	pre, err := r.scanOne(ctx, query, studentID)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.NewMissingRelationError("Student", "preinscription")
		}
		return nil, err
	}

	if err := r.attachRelations(ctx, pre); err != nil {
		return nil, err
	}

	return pre, nil
}

// GetByReference loads a preinscription by its public reference code
func (r *PreinscriptionRepository) GetByReference(ctx context.Context, reference string) (*models.Preinscription, error) {
	query := `
		SELECT id, reference, registered_at, status, guardian_id
		FROM preinscriptions
		WHERE reference = $1
	`

	pre, err := r.scanOne(ctx, query, reference)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.NewNotFoundError("Preinscription", 0)
		}
		return nil, err
	}

	if err := r.attachRelations(ctx, pre); err != nil {
		return nil, err
	}

	return pre, nil
}

func (r *PreinscriptionRepository) scanOne(ctx context.Context, query string, arg any) (*models.Preinscription, error) {
	var pre models.Preinscription
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&pre.ID,
		&pre.Reference,
		&pre.RegisteredAt,
		&pre.Status,
		&pre.GuardianID,
	)
	if err != nil {
		return nil, err
	}
	return &pre, nil
}

// attachRelations loads the guardian and member students of a
// preinscription. The guardian shares the student slice, so aggregate
// recomputation sees one consistent set.
func (r *PreinscriptionRepository) attachRelations(ctx context.Context, pre *models.Preinscription) error {
	guardianQuery := `
		SELECT id, first_name, middle_name, last_name, second_last_name, age,
		       national_id, email, phone, status, credential_id, created_at
		FROM guardians
		WHERE id = $1
	`

	var guardian models.Guardian
	err := r.db.QueryRow(ctx, guardianQuery, pre.GuardianID).Scan(
		&guardian.ID,
		&guardian.FirstName,
		&guardian.MiddleName,
		&guardian.LastName,
		&guardian.SecondLastName,
		&guardian.Age,
		&guardian.NationalID,
		&guardian.Email,
		&guardian.Phone,
		&guardian.Status,
		&guardian.CredentialID,
		&guardian.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("error retrieving guardian: %w", err)
	}

	studentsQuery := `
		SELECT s.id, s.first_name, s.middle_name, s.last_name, s.second_last_name, s.age,
		       s.national_id, s.status, s.grade_level_id, s.group_id, s.guardian_id,
		       s.preinscription_id, gl.name, g.name
		FROM students s
		JOIN grade_levels gl ON gl.id = s.grade_level_id
		LEFT JOIN groups g ON g.id = s.group_id
		WHERE s.preinscription_id = $1
		ORDER BY s.id
	`

	rows, err := r.db.Query(ctx, studentsQuery, pre.ID)
	if err != nil {
		return fmt.Errorf("error retrieving students: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		var student models.Student
		var gradeLevelName string
		var groupName *string
		if err := rows.Scan(
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
			&gradeLevelName,
			&groupName,
		); err != nil {
			return fmt.Errorf("error scanning student: %w", err)
		}
		student.GradeLevel = &models.GradeLevel{ID: student.GradeLevelID, Name: gradeLevelName}
		if student.GroupID != nil && groupName != nil {
			student.Group = &models.Group{ID: *student.GroupID, Name: *groupName, GradeLevelID: student.GradeLevelID}
		}
		students = append(students, &student)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	guardian.Students = students
	pre.Guardian = &guardian
	pre.Students = students
	return nil
}

// UpdateStatus updates the aggregate status of a preinscription
func (r *PreinscriptionRepository) UpdateStatus(ctx context.Context, id int64, status models.ApprovalStatus) error {
	cmdTag, err := r.db.Exec(ctx, `UPDATE preinscriptions SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("error updating preinscription: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("Preinscription", id)
	}

	return nil
}
