package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dgarciab/admision/internal/app/models"
	"github.com/dgarciab/admision/internal/app/repositories"
	"github.com/dgarciab/admision/internal/pkg/apperrors"
)

// AssignmentService places approved students into class groups. Groups
// activate at minGroupSize members and never take more than
// maxGroupSize; when no existing group can take the student a new one
// is created, so placement never fails for lack of capacity.
type AssignmentService struct {
	minGroupSize int
	maxGroupSize int
	logger       zerolog.Logger
}

// NewAssignmentService creates a new AssignmentService
func NewAssignmentService(minGroupSize, maxGroupSize int, logger zerolog.Logger) *AssignmentService {
	return &AssignmentService{
		minGroupSize: minGroupSize,
		maxGroupSize: maxGroupSize,
		logger:       logger,
	}
}

// Assign places a student that just turned Approved into a group of its
// aspired grade level and persists the placement. It must run inside
// the caller's transaction (r is transaction-bound).
func (s *AssignmentService) Assign(ctx context.Context, r *repositories.Repositories, student *models.Student) (*models.Group, error) {
	if student.GradeLevelID == 0 {
		return nil, apperrors.ErrNoGradeLevel
	}

	level, err := r.GradeLevels.GetByID(ctx, student.GradeLevelID)
	if err != nil {
		return nil, err
	}

	groups, err := r.Groups.ListByGradeLevelForUpdate(ctx, level.ID)
	if err != nil {
		return nil, err
	}

	group := selectGroup(groups, s.maxGroupSize)
	if group == nil {
		group = &models.Group{
			Name:         fmt.Sprintf("%s-%d", level.Name, len(groups)+1),
			Active:       false,
			GradeLevelID: level.ID,
		}
		if err := r.Groups.Create(ctx, group); err != nil {
			return nil, err
		}
		s.logger.Info().Str("group", group.Name).Msg("Created new group")
	}

	wasActive := group.Active
	if err := group.Admit(student, s.minGroupSize, s.maxGroupSize); err != nil {
		return nil, err
	}

	if group.Active != wasActive {
		s.logger.Info().Str("group", group.Name).Int("members", group.MemberCount).Msg("Group reached minimum size and was activated")
	}

	if err := r.Groups.Update(ctx, group); err != nil {
		return nil, err
	}

	return group, nil
}

// selectGroup picks the group that should receive the next student, or
// nil when a new group must be created. Priority:
//  1. the fullest inactive group with room (fastest path to activation)
//  2. the emptiest active group with room (load balancing)
//
// Ties break by creation order; groups arrive ordered oldest first.
func selectGroup(groups []*models.Group, maxSize int) *models.Group {
	var best *models.Group
	for _, g := range groups {
		if g.Active || !g.HasRoom(maxSize) {
			continue
		}
		if best == nil || g.MemberCount > best.MemberCount {
			best = g
		}
	}
	if best != nil {
		return best
	}

	for _, g := range groups {
		if !g.Active || !g.HasRoom(maxSize) {
			continue
		}
		if best == nil || g.MemberCount < best.MemberCount {
			best = g
		}
	}
	return best
}
