package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSecurePassword(t *testing.T) {
	password, err := GenerateSecurePassword(12)
	require.NoError(t, err)
	assert.Len(t, password, 12)

	assert.True(t, strings.ContainsAny(password, upperChars), "expected an uppercase letter in %q", password)
	assert.True(t, strings.ContainsAny(password, lowerChars), "expected a lowercase letter in %q", password)
	assert.True(t, strings.ContainsAny(password, digitChars), "expected a digit in %q", password)
	assert.True(t, strings.ContainsAny(password, punctChars), "expected a punctuation character in %q", password)
}

func TestGenerateSecurePassword_Unique(t *testing.T) {
	first, err := GenerateSecurePassword(12)
	require.NoError(t, err)
	second, err := GenerateSecurePassword(12)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestGenerateSecurePassword_TooShort(t *testing.T) {
	_, err := GenerateSecurePassword(3)
	assert.Error(t, err)
}
