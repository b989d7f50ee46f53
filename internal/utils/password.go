package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	upperChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowerChars = "abcdefghijklmnopqrstuvwxyz"
	digitChars = "0123456789"
	punctChars = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"
)

// GenerateSecurePassword generates a cryptographically secure random password
// of the given length containing at least one uppercase letter, one lowercase
// letter, one digit and one punctuation character.
func GenerateSecurePassword(length int) (string, error) {
	if length < 4 {
		return "", fmt.Errorf("password length %d too short to cover all character classes", length)
	}

	classes := []string{upperChars, lowerChars, digitChars, punctChars}
	alphabet := upperChars + lowerChars + digitChars + punctChars

	password := make([]byte, length)

	// One character from each class so the result always mixes classes.
	for i, class := range classes {
		ch, err := randomChar(class)
		if err != nil {
			return "", err
		}
		password[i] = ch
	}

	for i := len(classes); i < length; i++ {
		ch, err := randomChar(alphabet)
		if err != nil {
			return "", err
		}
		password[i] = ch
	}

	if err := shuffle(password); err != nil {
		return "", err
	}

	return string(password), nil
}

func randomChar(alphabet string) (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
	if err != nil {
		return 0, fmt.Errorf("failed to generate random index: %w", err)
	}
	return alphabet[n.Int64()], nil
}

func shuffle(b []byte) error {
	for i := len(b) - 1; i > 0; i-- {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return fmt.Errorf("failed to shuffle password: %w", err)
		}
		j := n.Int64()
		b[i], b[j] = b[j], b[i]
	}
	return nil
}
