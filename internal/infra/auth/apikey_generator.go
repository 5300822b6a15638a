// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"

	"github.com/pkg/errors"

	"crm/internal/domain/service"
)

// secretPrefix marks every generated key so leaked secrets are recognizable
// in logs and secret scanners.
const secretPrefix = "sk_"

// secretBytes is the entropy of the random portion before hex encoding.
const secretBytes = 24

// displayPrefixLen is how many leading characters of the secret are stored
// in plaintext for identification in listings.
const displayPrefixLen = 11

// apiKeyGenerator mints high-entropy API key secrets and fingerprints them
// with SHA-256. The digest, not the secret, is what gets persisted; lookup
// happens by recomputing the digest of a presented secret.
type apiKeyGenerator struct{}

// NewAPIKeyGenerator is the constructor for apiKeyGenerator.
func NewAPIKeyGenerator() service.APIKeyGenerator {
	return &apiKeyGenerator{}
}

// Generate returns a fresh secret, its storage digest and the display prefix.
func (g *apiKeyGenerator) Generate() (string, string, string, error) {
	buf := make([]byte, secretBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", "", "", errors.Wrap(err, "failed to generate api key entropy")
	}

	secret := secretPrefix + hex.EncodeToString(buf)
	return secret, g.HashSecret(secret), secret[:displayPrefixLen], nil
}

// HashSecret computes the hex-encoded SHA-256 digest of a secret.
func (g *apiKeyGenerator) HashSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}
