package models

import (
	"time"

	"github.com/dgarciab/admision/internal/pkg/apperrors"
)

// Preinscription defines a single admission application based on the
// 'preinscriptions' table: one guardian with one to four students. The
// aggregate status is recomputed after every member transition.
type Preinscription struct {
	ID           int64          `json:"id" db:"id"`
	Reference    string         `json:"reference" db:"reference"` // UUID shown to the guardian
	RegisteredAt time.Time      `json:"registeredAt" db:"registered_at"`
	Status       ApprovalStatus `json:"status" db:"status"`
	GuardianID   int64          `json:"guardianId" db:"guardian_id"`
	Guardian     *Guardian      `json:"guardian,omitempty"` // Relation, no db tag
	Students     []*Student     `json:"students,omitempty"` // Relation, no db tag
}

// findStudent returns the member student with the given id, or nil.
func (p *Preinscription) findStudent(studentID int64) *Student {
	for _, s := range p.Students {
		if s.ID == studentID {
			return s
		}
	}
	return nil
}

// PendingCount returns how many member students are still pending.
func (p *Preinscription) PendingCount() int {
	count := 0
	for _, s := range p.Students {
		if s.Status == StatusPending {
			count++
		}
	}
	return count
}

// ApproveStudent approves the member student with the given id and
// recomputes the guardian and preinscription aggregate statuses. It
// returns true when this transition turned the guardian Approved for
// the first time, which is the trigger for credential issuance.
func (p *Preinscription) ApproveStudent(studentID int64) (bool, error) {
	student := p.findStudent(studentID)
	if student == nil {
		return false, apperrors.NewNotFoundError("Student", studentID)
	}
	if err := student.Approve(); err != nil {
		return false, err
	}

	wasApproved := p.Guardian != nil && p.Guardian.Status == StatusApproved
	p.recomputeAggregates()
	firstApproval := !wasApproved && p.Guardian != nil && p.Guardian.Status == StatusApproved
	return firstApproval, nil
}

// RejectStudent rejects the member student with the given id and
// recomputes the aggregate statuses. It returns true when the rejection
// left every member student rejected, which is the trigger for
// revoking the guardian's credential.
func (p *Preinscription) RejectStudent(studentID int64) (bool, error) {
	student := p.findStudent(studentID)
	if student == nil {
		return false, apperrors.NewNotFoundError("Student", studentID)
	}
	if err := student.Reject(); err != nil {
		return false, err
	}

	p.recomputeAggregates()
	return p.Status == StatusRejected, nil
}

// recomputeAggregates rederives both aggregate statuses from the member
// students. The guardian and preinscription share the same derivation.
func (p *Preinscription) recomputeAggregates() {
	p.Status = deriveAggregateStatus(p.Students)
	if p.Guardian != nil {
		p.Guardian.Status = deriveAggregateStatus(p.Students)
	}
}
