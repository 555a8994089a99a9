package credentials

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/dgarciab/admision/internal/app/models"
	"github.com/dgarciab/admision/internal/pkg/apperrors"
)

// PasswordLength is the length of generated passwords.
const PasswordLength = 8

// passwordAlphabet is the fixed alphabet generated passwords draw from.
const passwordAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789*+-.$"

// diacriticStripper decomposes characters and drops the combining marks,
// so "Muñoz" becomes "Munoz" and "José" becomes "Jose".
var diacriticStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// GenerateUsername derives a username from a person's name: first
// letter of the first name, first letter of the middle name if present,
// the full last name lower-cased with whitespace stripped, and the
// first letter of the second last name if present. Diacritics and any
// character outside [a-z0-9] are removed. Uniqueness is not guaranteed
// here; the issuer resolves collisions against the credential store.
func GenerateUsername(firstName, middleName, lastName, secondLastName string) string {
	var b strings.Builder
	b.WriteString(firstInitial(firstName))
	b.WriteString(firstInitial(middleName))
	b.WriteString(strings.Join(strings.Fields(lastName), ""))
	b.WriteString(firstInitial(secondLastName))
	return sanitize(b.String())
}

// firstInitial returns the first rune of a trimmed name, or "".
func firstInitial(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return string([]rune(name)[0])
}

// sanitize lower-cases, strips diacritics and removes anything outside
// [a-z0-9].
func sanitize(s string) string {
	s = strings.ToLower(s)
	if stripped, _, err := transform.String(diacriticStripper, s); err == nil {
		s = stripped
	}
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// GeneratePassword produces an 8-character password drawn uniformly
// from the fixed alphabet.
func GeneratePassword() (string, error) {
	max := big.NewInt(int64(len(passwordAlphabet)))
	b := make([]byte, PasswordLength)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate password: %w", err)
		}
		b[i] = passwordAlphabet[n.Int64()]
	}
	return string(b), nil
}

// Generate derives a username and a fresh password for a person. It
// fails with a ValidationError when the first or last name is empty.
func Generate(person models.Person) (username, password string, err error) {
	if strings.TrimSpace(person.FirstName) == "" {
		return "", "", apperrors.NewValidationError("firstName", "first name is required for credential generation")
	}
	if strings.TrimSpace(person.LastName) == "" {
		return "", "", apperrors.NewValidationError("lastName", "last name is required for credential generation")
	}

	username = GenerateUsername(person.FirstName, person.MiddleName, person.LastName, person.SecondLastName)
	password, err = GeneratePassword()
	if err != nil {
		return "", "", err
	}
	return username, password, nil
}
