package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword derives the bcrypt hash stored on a chat account.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword reports whether password matches the stored hash.
// Auto-provisioned accounts carry an empty hash and never match.
func CheckPassword(password, hashedPassword string) bool {
	if hashedPassword == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
