package models

// ApprovalStatus defines the admission state of a student, guardian or
// preinscription. Pending is the only state that allows a transition;
// Approved and Rejected are terminal.
type ApprovalStatus string

const (
	StatusPending  ApprovalStatus = "PENDING"
	StatusApproved ApprovalStatus = "APPROVED"
	StatusRejected ApprovalStatus = "REJECTED"
)

// IsTerminal reports whether the status allows no further transition.
func (s ApprovalStatus) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// Role defines the role a credential or staff account is bound to.
type Role string

const (
	RoleGuardian      Role = "GUARDIAN"
	RoleTeacher       Role = "TEACHER"
	RoleDirector      Role = "DIRECTOR"
	RoleAdministrator Role = "ADMINISTRATOR"
)

// DisplayName returns the human-readable role name used in notifications.
func (r Role) DisplayName() string {
	switch r {
	case RoleGuardian:
		return "Guardian"
	case RoleTeacher:
		return "Teacher"
	case RoleDirector:
		return "Director"
	case RoleAdministrator:
		return "Administrator"
	}
	return string(r)
}

// Capacity limits of the admission domain. The configuration layer uses
// these as defaults and may override them per deployment.
const (
	MaxStudentsPerGuardian = 4
	MinGroupSize           = 5
	MaxGroupSize           = 25
	MaxLoginAttempts       = 3
)
