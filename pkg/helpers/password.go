package helpers

import "golang.org/x/crypto/bcrypt"

// HashSecret hashes a plain text credential secret using bcrypt
func HashSecret(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CompareHashAndSecret compares a bcrypt hash with a plain secret
func CompareHashAndSecret(hash string, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
