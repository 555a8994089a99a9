package models

import (
	"regexp"
	"time"

	"github.com/dgarciab/admision/internal/pkg/apperrors"
)

// Guardian defines the guardian (acudiente) model based on the
// 'guardians' table. A guardian registers a preinscription and owns up
// to MaxStudentsPerGuardian students. Its approval status is derived
// from the students' statuses and is never set independently.
type Guardian struct {
	ID int64 `json:"id" db:"id"`
	Person
	Email        string         `json:"email" db:"email"`
	Phone        string         `json:"phone" db:"phone"`
	Status       ApprovalStatus `json:"status" db:"status"`
	CredentialID *int64         `json:"credentialId,omitempty" db:"credential_id"` // Nullable
	CreatedAt    time.Time      `json:"createdAt" db:"created_at"`
	Students     []*Student     `json:"students,omitempty"` // Relation, no db tag
}

// Guardian age bounds in years.
const (
	guardianMinAge = 18
	guardianMaxAge = 80
)

var emailPattern = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,4}$`)

// Validate checks the guardian's field-level rules. It returns a
// ValidationError naming the offending field, or nil.
func (g *Guardian) Validate() error {
	if err := g.validateNames(); err != nil {
		return err
	}
	if g.Age < guardianMinAge || g.Age > guardianMaxAge {
		return apperrors.NewValidationError("age", "guardian age must be between 18 and 80")
	}
	if err := g.validateNationalID(); err != nil {
		return err
	}
	if !emailPattern.MatchString(g.Email) {
		return apperrors.NewValidationError("email", "invalid email address")
	}
	if len(g.Phone) != 10 {
		return apperrors.NewValidationError("phone", "phone must be exactly 10 digits")
	}
	for _, r := range g.Phone {
		if r < '0' || r > '9' {
			return apperrors.NewValidationError("phone", "phone must be exactly 10 digits")
		}
	}
	return nil
}

// AddStudent appends a student to the guardian and sets the back
// reference. Fails with CapacityExceededError once the guardian already
// owns limit students (MaxStudentsPerGuardian in a default deployment).
func (g *Guardian) AddStudent(s *Student, limit int) error {
	if len(g.Students) >= limit {
		return apperrors.NewCapacityExceededError("guardian students", limit)
	}
	s.GuardianID = g.ID
	g.Students = append(g.Students, s)
	return nil
}

// RecomputeStatus derives the guardian's approval status from its
// students: Rejected only when every student is rejected, Approved as
// soon as any student is approved, Pending otherwise. Student
// transitions are terminal, so the derived status never regresses.
func (g *Guardian) RecomputeStatus() ApprovalStatus {
	g.Status = deriveAggregateStatus(g.Students)
	return g.Status
}

// deriveAggregateStatus is the pure recomputation shared by guardian and
// preinscription so the two aggregates can never drift apart.
func deriveAggregateStatus(students []*Student) ApprovalStatus {
	if len(students) == 0 {
		return StatusPending
	}
	allRejected := true
	anyApproved := false
	for _, s := range students {
		if s.Status != StatusRejected {
			allRejected = false
		}
		if s.Status == StatusApproved {
			anyApproved = true
		}
	}
	if allRejected {
		return StatusRejected
	}
	if anyApproved {
		return StatusApproved
	}
	return StatusPending
}
