package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a plaintext password using bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

// CheckPasswordHash compares a plaintext password with a bcrypt hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GenerateSecureRandomString returns lengthInBytes random bytes, hex encoded (twice as many characters).
func GenerateSecureRandomString(lengthInBytes int) (string, error) {
	if lengthInBytes <= 0 {
		return "", fmt.Errorf("lengthInBytes must be positive")
	}
	b := make([]byte, lengthInBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// GenerateVerificationCode returns a uniformly random numeric code of the given number of digits,
// zero padded, as sent by email or SMS.
func GenerateVerificationCode(digits int) (string, error) {
	if digits <= 0 || digits > 18 {
		return "", fmt.Errorf("digits must be between 1 and 18, got %d", digits)
	}
	limit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil)
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}
	return fmt.Sprintf("%0*d", digits, n.Int64()), nil
}

// GenerateBackupCode returns a one-time recovery code in the form "xxxx-xxxx" (lowercase hex).
func GenerateBackupCode() (string, error) {
	raw, err := GenerateSecureRandomString(4)
	if err != nil {
		return "", err
	}
	return raw[:4] + "-" + raw[4:], nil
}

// NormalizeCode strips the whitespace and separators users tend to type into a verification or backup code.
func NormalizeCode(code string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n':
			return -1
		}
		return r
	}, strings.ToLower(code))
}
