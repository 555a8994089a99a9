package models

// GradeLevel defines an academic tier students aspire to, based on the
// 'grade_levels' table. Grade levels are created at setup time and are
// immutable once a group or student references them.
type GradeLevel struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"` // Unique, e.g. "Pre-Jardín"
}
