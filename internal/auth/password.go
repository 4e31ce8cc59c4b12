package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes an operator password with bcrypt for storage in
// users.password_hash
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// ComparePassword checks a login attempt against the stored hash; a non-nil
// error means the credentials do not match
func ComparePassword(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}
