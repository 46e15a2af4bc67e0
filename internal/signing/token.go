// Package signing holds the access-token primitives for the public
// countersignature page.
package signing

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// tokenBytes gives the access token 128 bits of entropy. The token is the
// only credential protecting a signing link, so it must be infeasible to
// guess or enumerate.
const tokenBytes = 16

// NewAccessToken returns a fresh random token as 32 lowercase hex characters.
func NewAccessToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
