package session

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/oklog/ulid/v2"
)

// tokenSecretLen is the number of random bytes appended to the token.
const tokenSecretLen = 16

// NewToken generates an opaque session token.
// Format: <ulid>.<hex secret>. The ULID part gives tokens a rough
// creation ordering for inspection in Redis; the secret part carries
// the entropy.
func NewToken() (string, error) {
	secret := make([]byte, tokenSecretLen)
	if _, err := rand.Read(secret); err != nil {
		return "", fmt.Errorf("generate token secret: %w", err)
	}

	return ulid.Make().String() + "." + hex.EncodeToString(secret), nil
}
