package models

import (
	"strings"
	"unicode"

	"github.com/dgarciab/admision/internal/pkg/apperrors"
)

// Person holds the name and identity fields shared by guardians,
// students and staff accounts. Role-specific rules (age ranges, contact
// fields) live on the embedding types.
type Person struct {
	FirstName      string `json:"firstName" db:"first_name"`
	MiddleName     string `json:"middleName,omitempty" db:"middle_name"`
	LastName       string `json:"lastName" db:"last_name"`
	SecondLastName string `json:"secondLastName,omitempty" db:"second_last_name"`
	Age            int    `json:"age" db:"age"`
	NationalID     string `json:"nationalId" db:"national_id"`
}

// FullName returns the person's names joined with single spaces,
// skipping the optional middle and second last names when empty.
func (p Person) FullName() string {
	parts := make([]string, 0, 4)
	for _, part := range []string{p.FirstName, p.MiddleName, p.LastName, p.SecondLastName} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, " ")
}

// validateNames checks the shared name rules: first and last name are
// required and every present name must be 2-30 alphabetic characters.
func (p Person) validateNames() error {
	if err := validateNameField("firstName", p.FirstName, true); err != nil {
		return err
	}
	if err := validateNameField("middleName", p.MiddleName, false); err != nil {
		return err
	}
	if err := validateNameField("lastName", p.LastName, true); err != nil {
		return err
	}
	return validateNameField("secondLastName", p.SecondLastName, false)
}

func validateNameField(field, value string, required bool) error {
	if value == "" {
		if required {
			return apperrors.NewValidationError(field, "name is required")
		}
		return nil
	}
	runes := []rune(value)
	if len(runes) < 2 || len(runes) > 30 {
		return apperrors.NewValidationError(field, "name must be 2-30 characters long")
	}
	for _, r := range runes {
		if !unicode.IsLetter(r) {
			return apperrors.NewValidationError(field, "name must contain only letters")
		}
	}
	return nil
}

// validateNationalID checks that the national ID is exactly ten digits.
func (p Person) validateNationalID() error {
	if len(p.NationalID) != 10 {
		return apperrors.NewValidationError("nationalId", "national ID must be exactly 10 digits")
	}
	for _, r := range p.NationalID {
		if r < '0' || r > '9' {
			return apperrors.NewValidationError("nationalId", "national ID must be exactly 10 digits")
		}
	}
	return nil
}
