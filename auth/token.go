package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// Plaintext bearer tokens have the form "<id>|<secret>". The id locates the
// row; only a SHA-256 digest of the secret is persisted, so a database leak
// does not leak usable credentials.

const tokenSecretBytes = 20

// newTokenSecret produces a 40-character hex secret from crypto/rand.
func newTokenSecret() (string, error) {
	buf := make([]byte, tokenSecretBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token secret: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// hashTokenSecret returns the hex-encoded SHA-256 digest of a secret.
func hashTokenSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

// composePlaintext builds the client-facing token string.
func composePlaintext(id int64, secret string) string {
	return fmt.Sprintf("%d|%s", id, secret)
}

// splitPlaintext parses a presented token into its id and secret parts.
func splitPlaintext(plaintext string) (int64, string, bool) {
	idPart, secret, found := strings.Cut(plaintext, "|")
	if !found || secret == "" {
		return 0, "", false
	}
	id, err := strconv.ParseInt(idPart, 10, 64)
	if err != nil || id <= 0 {
		return 0, "", false
	}
	return id, secret, true
}

// secretMatches compares a presented secret against a stored digest in
// constant time.
func secretMatches(secret, hash string) bool {
	computed := hashTokenSecret(secret)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(hash)) == 1
}
