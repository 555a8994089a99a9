package models

import (
	"time"

	"github.com/dgarciab/admision/internal/pkg/apperrors"
)

// Group defines a capacity-bounded cohort within a grade level, based
// on the 'groups' table. A group activates once it reaches the minimum
// size and never deactivates. MemberCount is derived from the students
// currently placed in the group; Student.GroupID is the authoritative
// placement link.
type Group struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"` // e.g. "Pre-Jardín-1"
	Active       bool      `json:"active" db:"active"`
	GradeLevelID int64     `json:"gradeLevelId" db:"grade_level_id"`
	TeacherID    *int64    `json:"teacherId,omitempty" db:"teacher_id"` // Nullable
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	MemberCount  int       `json:"memberCount" db:"-"`
}

// HasRoom reports whether the group can take another student.
func (g *Group) HasRoom(maxSize int) bool {
	return g.MemberCount < maxSize
}

// Admit places a student into the group: checks capacity, sets the
// placement link and recomputes the activation flag. Activation is
// monotonic; an active group never deactivates.
func (g *Group) Admit(s *Student, minSize, maxSize int) error {
	if !g.HasRoom(maxSize) {
		return apperrors.NewCapacityExceededError("group "+g.Name, maxSize)
	}
	s.GroupID = &g.ID
	g.MemberCount++
	if g.MemberCount >= minSize {
		g.Active = true
	}
	return nil
}
