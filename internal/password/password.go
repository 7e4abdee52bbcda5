package password

import "golang.org/x/crypto/bcrypt"

// bcryptCost is the work factor for password hashing.
const bcryptCost = 10

// Hasher produces and verifies one-way password digests.
type Hasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

type bcryptHasher struct{}

// NewHasher returns a bcrypt-backed Hasher.
func NewHasher() Hasher {
	return bcryptHasher{}
}

// Hash derives a salted digest from the plaintext password.
func (bcryptHasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches the stored digest.
// bcrypt's comparison is constant-time with respect to the plaintext.
func (bcryptHasher) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
