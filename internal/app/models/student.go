package models

import "github.com/dgarciab/admision/internal/pkg/apperrors"

// Student defines the student model based on the 'students' table.
// Status and GroupID are the only fields the admission workflow mutates
// after creation; the aspired grade level is immutable.
type Student struct {
	ID int64 `json:"id" db:"id"`
	Person
	Status           ApprovalStatus `json:"status" db:"status"`
	GradeLevelID     int64          `json:"gradeLevelId" db:"grade_level_id"`
	GroupID          *int64         `json:"groupId,omitempty" db:"group_id"` // Null until approved and placed
	GuardianID       int64          `json:"guardianId" db:"guardian_id"`
	PreinscriptionID int64          `json:"preinscriptionId" db:"preinscription_id"`
	GradeLevel       *GradeLevel    `json:"gradeLevel,omitempty"` // Relation, no db tag
	Group            *Group         `json:"group,omitempty"`      // Relation, no db tag
}

// Student age bounds in years.
const (
	studentMinAge = 3
	studentMaxAge = 18
)

// Validate checks the student's field-level rules. It returns a
// ValidationError naming the offending field, or nil.
func (s *Student) Validate() error {
	if err := s.validateNames(); err != nil {
		return err
	}
	if s.Age < studentMinAge || s.Age > studentMaxAge {
		return apperrors.NewValidationError("age", "student age must be between 3 and 18")
	}
	if err := s.validateNationalID(); err != nil {
		return err
	}
	if s.GradeLevelID == 0 {
		return apperrors.NewValidationError("gradeLevel", "aspired grade level is required")
	}
	return nil
}

// Approve transitions the student from Pending to Approved. The caller
// recomputes the guardian and preinscription aggregates afterwards.
func (s *Student) Approve() error {
	if s.Status != StatusPending {
		return apperrors.NewInvalidStateError(string(s.Status), "approve student")
	}
	s.Status = StatusApproved
	return nil
}

// Reject transitions the student from Pending to Rejected. A rejected
// student's group stays null permanently.
func (s *Student) Reject() error {
	if s.Status != StatusPending {
		return apperrors.NewInvalidStateError(string(s.Status), "reject student")
	}
	s.Status = StatusRejected
	return nil
}
