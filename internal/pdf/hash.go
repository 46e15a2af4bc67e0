package pdf

import (
	"crypto/sha256"
	"fmt"
	"strings"
	"time"
)

// IntegrityHash derives the authenticity code printed on the signature stamp
// and persisted with the contract: SHA-256 over the access token, the
// signature timestamp (RFC 3339) and the signer's CPF digits, truncated to 16
// uppercase hex characters. Verifiable after the fact from data the system
// already stores, but not forgeable without the token.
func IntegrityHash(token string, signedAt time.Time, cpfDigits string) string {
	base := fmt.Sprintf("%s-%s-%s", token, signedAt.Format(time.RFC3339), cpfDigits)
	sum := sha256.Sum256([]byte(base))
	return strings.ToUpper(fmt.Sprintf("%x", sum))[:16]
}
