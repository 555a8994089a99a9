package credentials

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgarciab/admision/internal/app/models"
)

func TestGenerateUsername(t *testing.T) {
	tests := []struct {
		name       string
		first      string
		middle     string
		last       string
		secondLast string
		expected   string
	}{
		{
			name:     "full name with middle and second last",
			first:    "Carlos", middle: "Andrés", last: "Muñoz", secondLast: "Pérez",
			expected: "camunozp",
		},
		{
			name:     "no middle name",
			first:    "Laura", last: "García",
			expected: "lgarcia",
		},
		{
			name:     "last name with inner whitespace",
			first:    "Ana", last: "De La Cruz",
			expected: "adelacruz",
		},
		{
			name:     "diacritics stripped everywhere",
			first:    "Óscar", middle: "Iván", last: "Ñáñez",
			expected: "oinanez",
		},
		{
			name:     "non alphanumeric characters dropped",
			first:    "Mary", last: "O'Brien",
			expected: "mobrien",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateUsername(tt.first, tt.middle, tt.last, tt.secondLast)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestGeneratePassword(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		pw, err := GeneratePassword()
		require.NoError(t, err)
		assert.Len(t, pw, PasswordLength)
		for _, r := range pw {
			assert.True(t, strings.ContainsRune(passwordAlphabet, r),
				"password %q contains %q outside the alphabet", pw, r)
		}
		seen[pw] = true
	}
	// 50 draws from a 67^8 space should not collide into one value.
	assert.Greater(t, len(seen), 1)
}

func TestGenerate(t *testing.T) {
	t.Run("derives username and password", func(t *testing.T) {
		username, password, err := Generate(models.Person{
			FirstName: "Diana", MiddleName: "Sofía", LastName: "Rojas", SecondLastName: "Lima",
		})
		require.NoError(t, err)
		assert.Equal(t, "dsrojasl", username)
		assert.Len(t, password, PasswordLength)
	})

	t.Run("empty first name fails", func(t *testing.T) {
		_, _, err := Generate(models.Person{LastName: "Rojas"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "firstName")
	})

	t.Run("empty last name fails", func(t *testing.T) {
		_, _, err := Generate(models.Person{FirstName: "Diana"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "lastName")
	})
}
