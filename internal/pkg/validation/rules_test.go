package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidUsername(t *testing.T) {
	testCases := []struct {
		name     string
		username string
		valid    bool
	}{
		{"valid mixed case", "User42", true},
		{"valid all lower", "spieler", true},
		{"valid max length", "abcdefgh12345678", true},
		{"contains admin lowercase", "admin123", false},
		{"contains admin mixed case", "Administrator", false},
		{"admin in the middle", "xxAdMiNxx", false},
		{"too short", "ab", false},
		{"too long with invalid char", "this_is_17_chars!", false},
		{"underscore not allowed", "user_42", false},
		{"empty", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.valid, ValidUsername(tc.username))
		})
	}
}

func TestValidPassword(t *testing.T) {
	assert.True(t, ValidPassword("secret12"))
	assert.False(t, ValidPassword("short1"))
	assert.False(t, ValidPassword("lettersonly"))
	assert.False(t, ValidPassword("12345678"))
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("user@example.com"))
	assert.False(t, ValidEmail("not-an-email"))
	assert.False(t, ValidEmail(""))
}

func TestStringValidation(t *testing.T) {
	assert.True(t, NewStringValidation("hello").WithMinLength(2).WithMaxLength(10).Validate())
	assert.False(t, NewStringValidation("").Validate())
	assert.True(t, NewStringValidation("").WithRequired(false).Validate())
	assert.False(t, NewStringValidation("toolongvalue").WithMaxLength(5).Validate())
}
