package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgarciab/admision/internal/app/models"
)

// admissionFixture holds a wired AdmissionService over fake
// repositories, with one preinscription pre-loaded.
type admissionFixture struct {
	data     *memData
	store    *fakeStore
	notifier *fakeNotifier
	service  *AdmissionService
	pre      *models.Preinscription
	guardian *models.Guardian
}

// newAdmissionFixture seeds one grade level, one guardian and
// studentCount pending students in a single preinscription.
func newAdmissionFixture(t *testing.T, studentCount int) *admissionFixture {
	t.Helper()

	data := &memData{}
	store := newFakeStore(data)
	ctx := context.Background()

	level := &models.GradeLevel{Name: "Transición"}
	require.NoError(t, store.Repos().GradeLevels.Create(ctx, level))

	guardian := &models.Guardian{
		Person: models.Person{
			FirstName:  "Carolina",
			LastName:   "Muñoz",
			Age:        34,
			NationalID: "1020304050",
		},
		Email:  "carolina@example.com",
		Phone:  "3001234567",
		Status: models.StatusPending,
	}
	require.NoError(t, store.Repos().Guardians.Create(ctx, guardian))

	pre := &models.Preinscription{
		Reference:  "ref-1",
		Status:     models.StatusPending,
		GuardianID: guardian.ID,
		Guardian:   guardian,
	}
	require.NoError(t, store.Repos().Preinscriptions.Create(ctx, pre))

	for i := 0; i < studentCount; i++ {
		student := &models.Student{
			Person: models.Person{
				FirstName:  "Samuel",
				LastName:   "Muñoz",
				Age:        5,
				NationalID: fmt.Sprintf("110203040%d", i),
			},
			Status:           models.StatusPending,
			GradeLevelID:     level.ID,
			GuardianID:       guardian.ID,
			PreinscriptionID: pre.ID,
		}
		require.NoError(t, store.Repos().Students.Create(ctx, student))
		pre.Students = append(pre.Students, student)
	}
	guardian.Students = pre.Students

	notifier := &fakeNotifier{}
	service := NewAdmissionService(
		store,
		NewAssignmentService(models.MinGroupSize, models.MaxGroupSize, testLogger()),
		NewCredentialService(testLogger()),
		notifier,
		testLogger(),
	)

	return &admissionFixture{
		data:     data,
		store:    store,
		notifier: notifier,
		service:  service,
		pre:      pre,
		guardian: guardian,
	}
}

func TestApproveStudent_SingleStudentIssuesCredentials(t *testing.T) {
	fx := newAdmissionFixture(t, 1)

	result := fx.service.ApproveStudent(context.Background(), 1)

	require.True(t, result.Success, result.Message)
	assert.Contains(t, result.Message, "placed in group Transición-1")
	assert.Contains(t, result.Message, "Access credentials were issued")

	student := fx.pre.Students[0]
	assert.Equal(t, models.StatusApproved, student.Status)
	require.NotNil(t, student.GroupID)

	require.Len(t, fx.data.groups, 1)
	group := fx.data.groups[0]
	assert.Equal(t, "Transición-1", group.Name)
	assert.Equal(t, 1, group.MemberCount)
	assert.False(t, group.Active)

	assert.Equal(t, models.StatusApproved, fx.guardian.Status)
	assert.Equal(t, models.StatusApproved, fx.pre.Status)
	require.NotNil(t, fx.guardian.CredentialID)

	require.Len(t, fx.notifier.sent, 1)
	notice := fx.notifier.sent[0]
	assert.Equal(t, "carolina@example.com", notice.Email)
	assert.Equal(t, "cmunoz", notice.Username)
	assert.Len(t, notice.Password, 8)
	assert.Equal(t, "Guardian", notice.RoleName)
}

func TestApproveStudent_PartialApprovalMentionsPending(t *testing.T) {
	fx := newAdmissionFixture(t, 3)

	result := fx.service.ApproveStudent(context.Background(), 2)

	require.True(t, result.Success, result.Message)
	assert.Contains(t, result.Message, "2 student(s) of this preinscription remain pending")

	// The guardian turned Approved, so the credential goes out now even
	// though siblings are still pending.
	require.NotNil(t, fx.guardian.CredentialID)
	assert.Len(t, fx.notifier.sent, 1)
	assert.Equal(t, models.StatusApproved, fx.pre.Status)
	assert.Equal(t, models.StatusPending, fx.pre.Students[0].Status)
}

func TestApproveStudent_SecondApprovalIssuesNoSecondCredential(t *testing.T) {
	fx := newAdmissionFixture(t, 2)
	ctx := context.Background()

	require.True(t, fx.service.ApproveStudent(ctx, 1).Success)
	result := fx.service.ApproveStudent(ctx, 2)

	require.True(t, result.Success, result.Message)
	assert.Contains(t, result.Message, "Access credentials were issued")
	assert.Len(t, fx.notifier.sent, 1)
	assert.Len(t, fx.data.credentials, 1)

	// Both students share the one group of the grade level.
	require.Len(t, fx.data.groups, 1)
	assert.Equal(t, 2, fx.data.groups[0].MemberCount)
}

func TestApproveStudent_AlreadyDecided(t *testing.T) {
	fx := newAdmissionFixture(t, 1)
	ctx := context.Background()

	require.True(t, fx.service.ApproveStudent(ctx, 1).Success)
	result := fx.service.ApproveStudent(ctx, 1)

	require.False(t, result.Success)
	assert.Contains(t, result.Message, "current status is APPROVED")
	assert.Len(t, fx.notifier.sent, 1)
}

func TestApproveStudent_UnknownStudent(t *testing.T) {
	fx := newAdmissionFixture(t, 1)

	result := fx.service.ApproveStudent(context.Background(), 99)

	require.False(t, result.Success)
	assert.Equal(t, "Student was not found.", result.Message)
	assert.Empty(t, fx.notifier.sent)
}

func TestApproveStudent_NotificationFailureDoesNotFailOperation(t *testing.T) {
	fx := newAdmissionFixture(t, 1)
	fx.notifier.fail = true

	result := fx.service.ApproveStudent(context.Background(), 1)

	require.True(t, result.Success, result.Message)
	require.NotNil(t, fx.guardian.CredentialID)
}

func TestRejectStudent_PartialRejectionKeepsCredential(t *testing.T) {
	fx := newAdmissionFixture(t, 2)
	ctx := context.Background()

	require.True(t, fx.service.ApproveStudent(ctx, 1).Success)
	result := fx.service.RejectStudent(ctx, 2)

	require.True(t, result.Success, result.Message)
	assert.Contains(t, result.Message, "was rejected")
	assert.NotContains(t, result.Message, "revoked")

	require.NotNil(t, fx.guardian.CredentialID)
	assert.True(t, fx.data.credentials[0].Active)
	assert.Equal(t, models.StatusApproved, fx.pre.Status)
}

func TestRejectStudent_FullRejectionRevokesCredential(t *testing.T) {
	fx := newAdmissionFixture(t, 2)
	ctx := context.Background()

	// A previously issued credential is revoked once no student of the
	// preinscription remains admitted.
	credential := &models.AccessCredential{Username: "cmunoz", Role: models.RoleGuardian, Active: true}
	require.NoError(t, fx.store.Repos().Credentials.Create(ctx, credential))
	fx.guardian.CredentialID = &credential.ID

	require.True(t, fx.service.RejectStudent(ctx, 1).Success)
	result := fx.service.RejectStudent(ctx, 2)

	require.True(t, result.Success, result.Message)
	assert.Contains(t, result.Message, "credentials were revoked")

	assert.Nil(t, fx.guardian.CredentialID)
	assert.False(t, credential.Active)
	assert.Equal(t, models.StatusRejected, fx.pre.Status)
	assert.Equal(t, models.StatusRejected, fx.guardian.Status)
}

func TestRejectStudent_WithoutCredentialMentionsNoRevocation(t *testing.T) {
	fx := newAdmissionFixture(t, 1)

	result := fx.service.RejectStudent(context.Background(), 1)

	require.True(t, result.Success, result.Message)
	assert.Contains(t, result.Message, "All students of this preinscription were rejected.")
	assert.NotContains(t, result.Message, "revoked")
	assert.Nil(t, fx.pre.Students[0].GroupID)
}

func TestRejectStudent_AlreadyDecided(t *testing.T) {
	fx := newAdmissionFixture(t, 1)
	ctx := context.Background()

	require.True(t, fx.service.RejectStudent(ctx, 1).Success)
	result := fx.service.RejectStudent(ctx, 1)

	require.False(t, result.Success)
	assert.Contains(t, result.Message, "current status is REJECTED")
}
