package service

import "golang.org/x/crypto/bcrypt"

// bcryptCost is the fixed work factor for password hashing. The salt is
// embedded in the bcrypt output, so no separate salt storage is needed.
const bcryptCost = 10

// HashPassword produces a bcrypt hash of the password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored bcrypt hash.
// A malformed hash is treated the same as a mismatch so callers cannot
// distinguish the two failure modes.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
