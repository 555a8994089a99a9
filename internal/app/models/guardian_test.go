package models

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgarciab/admision/internal/pkg/apperrors"
)

func validGuardian() *Guardian {
	return &Guardian{
		Person: Person{
			FirstName:  "Carolina",
			LastName:   "Muñoz",
			Age:        34,
			NationalID: "1020304050",
		},
		Email:  "carolina@example.com",
		Phone:  "3001234567",
		Status: StatusPending,
	}
}

func TestGuardianValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Guardian)
		wantField string
	}{
		{name: "valid", mutate: func(g *Guardian) {}},
		{name: "under age", mutate: func(g *Guardian) { g.Age = 17 }, wantField: "age"},
		{name: "over age", mutate: func(g *Guardian) { g.Age = 81 }, wantField: "age"},
		{name: "bad email", mutate: func(g *Guardian) { g.Email = "not-an-email" }, wantField: "email"},
		{name: "email without tld", mutate: func(g *Guardian) { g.Email = "a@b" }, wantField: "email"},
		{name: "short phone", mutate: func(g *Guardian) { g.Phone = "30012" }, wantField: "phone"},
		{name: "alphabetic phone", mutate: func(g *Guardian) { g.Phone = "30012345ab" }, wantField: "phone"},
		{name: "bad national id", mutate: func(g *Guardian) { g.NationalID = "123" }, wantField: "nationalId"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			guardian := validGuardian()
			tt.mutate(guardian)

			err := guardian.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var ve *apperrors.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.wantField, ve.Field)
		})
	}
}

func TestGuardianAddStudent(t *testing.T) {
	guardian := validGuardian()
	guardian.ID = 7

	for i := 0; i < MaxStudentsPerGuardian; i++ {
		student := validStudent()
		student.NationalID = fmt.Sprintf("110203040%d", i)
		require.NoError(t, guardian.AddStudent(student, MaxStudentsPerGuardian))
		assert.Equal(t, guardian.ID, student.GuardianID)
	}
	require.Len(t, guardian.Students, MaxStudentsPerGuardian)

	var ce *apperrors.CapacityExceededError
	err := guardian.AddStudent(validStudent(), MaxStudentsPerGuardian)
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, MaxStudentsPerGuardian, ce.Limit)
	assert.Len(t, guardian.Students, MaxStudentsPerGuardian)
}

func TestGuardianRecomputeStatus(t *testing.T) {
	tests := []struct {
		name     string
		statuses []ApprovalStatus
		want     ApprovalStatus
	}{
		{name: "no students", statuses: nil, want: StatusPending},
		{name: "all pending", statuses: []ApprovalStatus{StatusPending, StatusPending}, want: StatusPending},
		{name: "one approved", statuses: []ApprovalStatus{StatusApproved, StatusPending}, want: StatusApproved},
		{name: "approved among rejected", statuses: []ApprovalStatus{StatusRejected, StatusApproved}, want: StatusApproved},
		{name: "all rejected", statuses: []ApprovalStatus{StatusRejected, StatusRejected}, want: StatusRejected},
		{name: "rejected with pending", statuses: []ApprovalStatus{StatusRejected, StatusPending}, want: StatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			guardian := validGuardian()
			for _, status := range tt.statuses {
				guardian.Students = append(guardian.Students, &Student{Status: status})
			}

			assert.Equal(t, tt.want, guardian.RecomputeStatus())
			assert.Equal(t, tt.want, guardian.Status)
		})
	}
}

func TestPersonFullName(t *testing.T) {
	person := Person{FirstName: "Ana", LastName: "García"}
	assert.Equal(t, "Ana García", person.FullName())

	person.MiddleName = "María"
	person.SecondLastName = "Pérez"
	assert.Equal(t, "Ana María García Pérez", person.FullName())
}
