package models

import "time"

// AccessCredential defines a generated login credential based on the
// 'access_credentials' table. Credentials are immutable after creation
// except for deactivation. Only the bcrypt hash of the generated
// password is stored; the plaintext exists once, in the notification
// sent to its owner.
type AccessCredential struct {
	ID           int64     `json:"id" db:"id"`
	Code         string    `json:"code" db:"code"` // UUID, stable external reference
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         Role      `json:"role" db:"role"`
	Active       bool      `json:"active" db:"active"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// StaffAccount defines a staff member (teacher, director or
// administrator) based on the 'staff_accounts' table. Staff share the
// person fields with guardians and students; the role tag selects which
// rules apply instead of subtype polymorphism.
type StaffAccount struct {
	ID int64 `json:"id" db:"id"`
	Person
	Role         Role      `json:"role" db:"role"`
	Email        string    `json:"email" db:"email"`
	CredentialID *int64    `json:"credentialId,omitempty" db:"credential_id"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
