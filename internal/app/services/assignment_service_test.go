package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgarciab/admision/internal/app/models"
	"github.com/dgarciab/admision/internal/pkg/apperrors"
)

func TestSelectGroup(t *testing.T) {
	group := func(id int64, members int, active bool) *models.Group {
		return &models.Group{ID: id, Name: fmt.Sprintf("g-%d", id), MemberCount: members, Active: active}
	}

	tests := []struct {
		name   string
		groups []*models.Group
		wantID int64 // 0 means a new group must be created
	}{
		{
			name:   "no groups",
			groups: nil,
			wantID: 0,
		},
		{
			name:   "prefers fullest inactive group",
			groups: []*models.Group{group(1, 1, false), group(2, 4, false), group(3, 2, true)},
			wantID: 2,
		},
		{
			name:   "falls back to emptiest active group",
			groups: []*models.Group{group(1, 10, true), group(2, 6, true)},
			wantID: 2,
		},
		{
			name:   "skips full groups",
			groups: []*models.Group{group(1, models.MaxGroupSize, true), group(2, 8, true)},
			wantID: 2,
		},
		{
			name:   "all full means new group",
			groups: []*models.Group{group(1, models.MaxGroupSize, true), group(2, models.MaxGroupSize, true)},
			wantID: 0,
		},
		{
			name:   "inactive beats emptier active",
			groups: []*models.Group{group(1, 2, true), group(2, 3, false)},
			wantID: 2,
		},
		{
			name:   "tie breaks by creation order",
			groups: []*models.Group{group(1, 3, false), group(2, 3, false)},
			wantID: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := selectGroup(tt.groups, models.MaxGroupSize)
			if tt.wantID == 0 {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.wantID, got.ID)
		})
	}
}

// assignFixture seeds one grade level and returns the pieces needed to
// call Assign directly.
func assignFixture(t *testing.T) (*AssignmentService, *fakeStore, *models.GradeLevel) {
	t.Helper()
	data := &memData{}
	store := newFakeStore(data)

	level := &models.GradeLevel{Name: "Jardín"}
	require.NoError(t, store.Repos().GradeLevels.Create(context.Background(), level))

	service := NewAssignmentService(models.MinGroupSize, models.MaxGroupSize, testLogger())
	return service, store, level
}

func approvedStudent(levelID int64) *models.Student {
	return &models.Student{
		Person:       models.Person{FirstName: "Samuel", LastName: "Muñoz", Age: 5, NationalID: "1102030405"},
		Status:       models.StatusApproved,
		GradeLevelID: levelID,
	}
}

func TestAssign_FirstStudentCreatesInactiveGroup(t *testing.T) {
	service, store, level := assignFixture(t)

	student := approvedStudent(level.ID)
	group, err := service.Assign(context.Background(), store.Repos(), student)
	require.NoError(t, err)

	assert.Equal(t, "Jardín-1", group.Name)
	assert.False(t, group.Active)
	assert.Equal(t, 1, group.MemberCount)
	require.NotNil(t, student.GroupID)
	assert.Equal(t, group.ID, *student.GroupID)
}

func TestAssign_ActivatesGroupAtMinimumSize(t *testing.T) {
	service, store, level := assignFixture(t)
	ctx := context.Background()

	existing := &models.Group{Name: "Jardín-1", GradeLevelID: level.ID, MemberCount: models.MinGroupSize - 1}
	require.NoError(t, store.Repos().Groups.Create(ctx, existing))

	group, err := service.Assign(ctx, store.Repos(), approvedStudent(level.ID))
	require.NoError(t, err)

	assert.Equal(t, existing.ID, group.ID)
	assert.True(t, group.Active)
	assert.Equal(t, models.MinGroupSize, group.MemberCount)
}

func TestAssign_AllGroupsFullCreatesNextGroup(t *testing.T) {
	service, store, level := assignFixture(t)
	ctx := context.Background()

	for i := 1; i <= 2; i++ {
		full := &models.Group{
			Name:         fmt.Sprintf("Jardín-%d", i),
			GradeLevelID: level.ID,
			Active:       true,
			MemberCount:  models.MaxGroupSize,
		}
		require.NoError(t, store.Repos().Groups.Create(ctx, full))
	}

	group, err := service.Assign(ctx, store.Repos(), approvedStudent(level.ID))
	require.NoError(t, err)

	assert.Equal(t, "Jardín-3", group.Name)
	assert.False(t, group.Active)
	assert.Equal(t, 1, group.MemberCount)
}

func TestAssign_FailsWithoutGradeLevel(t *testing.T) {
	service, store, _ := assignFixture(t)

	student := approvedStudent(0)
	_, err := service.Assign(context.Background(), store.Repos(), student)

	assert.ErrorIs(t, err, apperrors.ErrNoGradeLevel)
}
