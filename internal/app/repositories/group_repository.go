package repositories

import (
	"context"
	"fmt"

	"github.com/dgarciab/admision/internal/app/models"
	"github.com/dgarciab/admision/internal/db"
	"github.com/dgarciab/admision/internal/pkg/apperrors"
)

// GroupRepository handles database operations for class groups
type GroupRepository struct {
	db db.Querier
}

// NewGroupRepository creates a new group repository
func NewGroupRepository(q db.Querier) *GroupRepository {
	return &GroupRepository{
		db: q,
	}
}

// Create creates a new group
func (r *GroupRepository) Create(ctx context.Context, group *models.Group) error {
	query := `
		INSERT INTO groups (name, active, grade_level_id, teacher_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		group.Name, group.Active, group.GradeLevelID, group.TeacherID,
	).Scan(&group.ID, &group.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating group: %w", err)
	}

	return nil
}

// Update updates a group's activation flag and teacher assignment
func (r *GroupRepository) Update(ctx context.Context, group *models.Group) error {
	query := `
		UPDATE groups
		SET active = $1, teacher_id = $2
		WHERE id = $3
	`

	cmdTag, err := r.db.Exec(ctx, query, group.Active, group.TeacherID, group.ID)
	if err != nil {
		return fmt.Errorf("error updating group: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("Group", group.ID)
	}

	return nil
}

// ListByGradeLevel returns a grade level's groups in creation order with
// member counts attached
func (r *GroupRepository) ListByGradeLevel(ctx context.Context, gradeLevelID int64) ([]*models.Group, error) {
	return r.list(ctx, gradeLevelID, false)
}

// ListByGradeLevelForUpdate locks the group rows for the rest of the
// transaction before returning them, so concurrent placements into the
// same grade level serialize
func (r *GroupRepository) ListByGradeLevelForUpdate(ctx context.Context, gradeLevelID int64) ([]*models.Group, error) {
	return r.list(ctx, gradeLevelID, true)
}

func (r *GroupRepository) list(ctx context.Context, gradeLevelID int64, forUpdate bool) ([]*models.Group, error) {
	query := `
		SELECT id, name, active, grade_level_id, teacher_id, created_at
		FROM groups
		WHERE grade_level_id = $1
		ORDER BY id
	`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	rows, err := r.db.Query(ctx, query, gradeLevelID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving groups: %w", err)
	}
	defer rows.Close()

	var groups []*models.Group
	byID := make(map[int64]*models.Group)
	for rows.Next() {
		var group models.Group
		if err := rows.Scan(
			&group.ID,
			&group.Name,
			&group.Active,
			&group.GradeLevelID,
			&group.TeacherID,
			&group.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning group: %w", err)
		}
		groups = append(groups, &group)
		byID[group.ID] = &group
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(groups) == 0 {
		return groups, nil
	}

	// Member counts come from the placement links, which are the
	// authoritative record of who sits where.
	countQuery := `
		SELECT group_id, COUNT(*)
		FROM students
		WHERE group_id IS NOT NULL AND grade_level_id = $1
		GROUP BY group_id
	`

	countRows, err := r.db.Query(ctx, countQuery, gradeLevelID)
	if err != nil {
		return nil, fmt.Errorf("error counting group members: %w", err)
	}
	defer countRows.Close()

	for countRows.Next() {
		var groupID int64
		var count int
		if err := countRows.Scan(&groupID, &count); err != nil {
			return nil, fmt.Errorf("error scanning member count: %w", err)
		}
		if group, ok := byID[groupID]; ok {
			group.MemberCount = count
		}
	}
	if err := countRows.Err(); err != nil {
		return nil, err
	}

	return groups, nil
}
