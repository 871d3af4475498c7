package utils

import (
	"crypto/sha256"
	"fmt"
	"strings"
)

// HashKey hashes an ordered list of strings, case- and whitespace-insensitively.
// It is used to build bounded cache keys from free-text addresses.
func HashKey(parts ...string) string {
	normalized := make([]string, len(parts))
	for i, part := range parts {
		normalized[i] = strings.ToLower(strings.TrimSpace(part))
	}
	hash := sha256.Sum256([]byte(strings.Join(normalized, "\x1f")))
	return fmt.Sprintf("%x", hash)
}
