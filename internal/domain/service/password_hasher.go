package service

// PasswordHasher defines the interface for one-way password hashing.
// Implementations must use an adaptive cost function; plain digests are not
// acceptable for credentials.
type PasswordHasher interface {
	// Hash derives a salted hash from the plaintext password.
	Hash(password string) (string, error)

	// Check reports whether the plaintext password matches the stored hash.
	Check(hashedPassword, password string) bool
}
