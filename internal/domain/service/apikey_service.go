package service

// APIKeyGenerator defines the interface for minting and fingerprinting API
// key secrets. The plaintext secret is shown to the caller exactly once at
// creation time; only its digest is ever persisted.
type APIKeyGenerator interface {
	// Generate returns a new random secret with the service prefix, its
	// digest for storage, and the display prefix kept for identification.
	Generate() (secret string, hash string, displayPrefix string, err error)

	// HashSecret computes the storage digest of a presented secret so it
	// can be looked up against persisted keys.
	HashSecret(secret string) string
}
