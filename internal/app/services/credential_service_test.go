package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgarciab/admision/internal/app/models"
	"github.com/dgarciab/admision/internal/pkg/auth"
)

func TestIssue_StoresHashedCredential(t *testing.T) {
	data := &memData{}
	store := newFakeStore(data)
	service := NewCredentialService(testLogger())

	person := models.Person{FirstName: "Carolina", LastName: "Muñoz"}
	credential, password, err := service.Issue(context.Background(), store.Repos().Credentials, person, models.RoleGuardian)
	require.NoError(t, err)

	assert.Equal(t, "cmunoz", credential.Username)
	assert.Equal(t, models.RoleGuardian, credential.Role)
	assert.True(t, credential.Active)
	assert.NotEmpty(t, credential.Code)
	assert.Len(t, password, 8)

	// Only the hash is persisted; the plaintext must verify against it.
	assert.NotEqual(t, password, credential.PasswordHash)
	assert.True(t, auth.CheckPassword(credential.PasswordHash, password))
	require.Len(t, data.credentials, 1)
}

func TestIssue_ResolvesUsernameCollisions(t *testing.T) {
	data := &memData{}
	store := newFakeStore(data)
	service := NewCredentialService(testLogger())
	ctx := context.Background()

	person := models.Person{FirstName: "Carolina", LastName: "Muñoz"}

	first, _, err := service.Issue(ctx, store.Repos().Credentials, person, models.RoleGuardian)
	require.NoError(t, err)
	second, _, err := service.Issue(ctx, store.Repos().Credentials, person, models.RoleGuardian)
	require.NoError(t, err)
	third, _, err := service.Issue(ctx, store.Repos().Credentials, person, models.RoleGuardian)
	require.NoError(t, err)

	assert.Equal(t, "cmunoz", first.Username)
	assert.Equal(t, "cmunoz2", second.Username)
	assert.Equal(t, "cmunoz3", third.Username)
}

func TestIssue_FailsWithoutNames(t *testing.T) {
	data := &memData{}
	store := newFakeStore(data)
	service := NewCredentialService(testLogger())

	_, _, err := service.Issue(context.Background(), store.Repos().Credentials, models.Person{LastName: "Muñoz"}, models.RoleGuardian)
	assert.Error(t, err)
	assert.Empty(t, data.credentials)
}
