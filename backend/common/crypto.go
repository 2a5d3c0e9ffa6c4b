package common

import (
	"golang.org/x/crypto/bcrypt"
)

// Password2Hash hashes a plaintext password with bcrypt. The predecessor of
// this service stored unsalted fast hashes; bcrypt replaces that.
func Password2Hash(password string) (string, error) {
	hashBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashBytes), nil
}

// ValidatePasswordAndHash reports whether password matches the stored hash.
func ValidatePasswordAndHash(password string, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
