package canon

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content fingerprints.
// The version suffix allows the algorithm to change without collisions.
const (
	DomainSnapshot = "thingstodo/snapshot/v1"
)

// hashWithDomain computes SHA256(domain + 0x00 + data).
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Fingerprint computes the content hash of a name -> status mapping.
// Equal mappings always produce equal fingerprints, whatever map iteration
// order or codec produced them.
func Fingerprint(items map[string]bool) (string, error) {
	if items == nil {
		items = map[string]bool{}
	}
	data, err := MarshalCanonical(items)
	if err != nil {
		return "", fmt.Errorf("fingerprint: %w", err)
	}
	return hashWithDomain(DomainSnapshot, data), nil
}

// ShortFingerprint truncates a fingerprint for display.
func ShortFingerprint(fp string) string {
	if len(fp) <= 12 {
		return fp
	}
	return fp[:12]
}
