package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword returns the bcrypt hash of the plaintext password. The salt is
// embedded in the hash; the plaintext is never stored.
func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether the candidate plaintext matches the stored
// bcrypt hash.
func CheckPassword(hash, candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(candidate)) == nil
}
