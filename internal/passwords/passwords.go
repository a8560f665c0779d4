package passwords

import "golang.org/x/crypto/bcrypt"

// Cost matches the original deployment's bcrypt work factor: high enough to
// resist brute force, low enough to keep a verify under ~100ms.
const Cost = 12

// Hash produces a salted one-way digest of the plaintext. The plaintext is
// never stored or logged.
func Hash(plaintext string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), Cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify reports whether plaintext matches the stored hash. Malformed hashes
// read as a mismatch rather than surfacing internals.
func Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
